// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkgconfig

import (
	"testing"

	"github.com/goplus/nativelib/pkgs/pcfile"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(Entry{Name: "base", Package: "base", Module: "base._init_base"})
	r.Register(Entry{Name: "widgets", Package: "w", Module: "w._init_widgets"})

	if got, ok := r.Lookup("base", pcfile.LoaderVar); !ok || got != "base._init_base" {
		t.Errorf("Lookup(base) = %q, %v", got, ok)
	}
	if _, ok := r.Lookup("base", "libdir"); ok {
		t.Error("Lookup answered a non-loader variable")
	}
	if _, ok := r.Lookup("missing", pcfile.LoaderVar); ok {
		t.Error("Lookup found an unregistered unit")
	}

	r.Register(Entry{Name: "base", Package: "base2", Module: "base2._init_base"})
	if got, _ := r.Lookup("base", pcfile.LoaderVar); got != "base2._init_base" {
		t.Errorf("Lookup(base) after re-register = %q", got)
	}
	if n := len(r.Entries()); n != 3 {
		t.Errorf("len(Entries()) = %d, want 3", n)
	}
}

func TestRegistryZeroValue(t *testing.T) {
	var r Registry
	if _, ok := r.Lookup("a", pcfile.LoaderVar); ok {
		t.Error("zero Registry found an entry")
	}
	r.Register(Entry{Name: "a", Module: "a._init_a"})
	if got, ok := r.Lookup("a", pcfile.LoaderVar); !ok || got != "a._init_a" {
		t.Errorf("Lookup(a) = %q, %v", got, ok)
	}
}

func TestChain(t *testing.T) {
	calls := 0
	first := func(name, variable string) (string, bool) {
		calls++
		if name == "a" {
			return "from-first", true
		}
		return "", false
	}
	second := func(name, variable string) (string, bool) {
		calls++
		return "from-second", true
	}
	lookup := Chain(nil, first, second)

	if got, ok := lookup("a", "v"); !ok || got != "from-first" {
		t.Errorf("lookup(a) = %q, %v", got, ok)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if got, ok := lookup("b", "v"); !ok || got != "from-second" {
		t.Errorf("lookup(b) = %q, %v", got, ok)
	}
	if _, ok := Chain()("a", "v"); ok {
		t.Error("empty chain found a value")
	}
}
