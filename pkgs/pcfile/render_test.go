// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcfile

import (
	"errors"
	"slices"
	"testing"
)

func render(t *testing.T, u *Unit, fb Fallbacks) string {
	t.Helper()
	vars, err := ResolveVariables(u)
	if err != nil {
		t.Fatalf("ResolveVariables() error = %v", err)
	}
	doc, err := Render(u, vars, fb)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return doc.String()
}

func TestRenderFull(t *testing.T) {
	u := &Unit{
		Path:            "pkg/foo.pc",
		Name:            "foo",
		Description:     "Foo library",
		Version:         "1.2.3",
		IncludeDir:      "pkg/include",
		LibDir:          "pkg/lib",
		SharedLibraries: []string{"foo", "foo_extra"},
		Requires:        []string{"bar", "baz"},
		RequiresPrivate: []string{"qux"},
		ExtraCflags:     "-DFOO=1",
		LibsPrivate:     "-lm -lpthread",
		Variables:       Variables{{"datadir", "${prefix}/share"}},
	}
	want := `prefix=${pcfiledir}
includedir=${prefix}/include
libdir=${prefix}/lib
datadir=${prefix}/share

Name: foo
Description: Foo library
Version: 1.2.3
Requires: bar baz
Requires.private: qux
Libs: -L${libdir} -lfoo -lfoo_extra
Libs.private: -lm -lpthread
Cflags: -I${includedir} -DFOO=1
`
	if got := render(t, u, Fallbacks{}); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderMinimal(t *testing.T) {
	u := &Unit{Path: "pkg/foo.pc"}
	want := "prefix=${pcfiledir}\n\nName: foo\nDescription: pkg description\n"
	if got := render(t, u, Fallbacks{Description: "pkg description"}); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderWidgets(t *testing.T) {
	u := &Unit{
		Path:            "widgets/widgets.pc",
		Name:            "widgets",
		Description:     "Widgets",
		SharedLibraries: []string{"widgets"},
		Requires:        []string{"base"},
	}
	vars, err := ResolveVariables(u)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Render(u, vars, Fallbacks{})
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"Requires: base", "Libs: -L${libdir} -lwidgets"} {
		if !slices.Contains(doc, line) {
			t.Errorf("descriptor misses %q:\n%s", line, doc)
		}
	}
	for _, line := range doc {
		if len(line) >= 7 && line[:7] == "Cflags:" {
			t.Errorf("unexpected %q", line)
		}
	}
}

func TestRenderFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		unit     Unit
		fb       Fallbacks
		wantDesc string
		wantVer  string
	}{
		{"unit wins", Unit{Path: "a.pc", Description: "U", Version: "2"}, Fallbacks{"P", "1"}, "Description: U", "Version: 2"},
		{"package fallback", Unit{Path: "a.pc"}, Fallbacks{"P", "1"}, "Description: P", "Version: 1"},
		{"no version", Unit{Path: "a.pc"}, Fallbacks{Description: "P"}, "Description: P", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Render(&tt.unit, Variables{{PrefixVar, Prefix}}, tt.fb)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Contains(doc, tt.wantDesc) {
				t.Errorf("missing %q in %v", tt.wantDesc, doc)
			}
			hasVersion := slices.ContainsFunc(doc, func(s string) bool { return len(s) > 8 && s[:8] == "Version:" })
			if tt.wantVer == "" && hasVersion {
				t.Errorf("unexpected Version line in %v", doc)
			}
			if tt.wantVer != "" && !slices.Contains(doc, tt.wantVer) {
				t.Errorf("missing %q in %v", tt.wantVer, doc)
			}
		})
	}
}

func TestRenderNoDescription(t *testing.T) {
	u := &Unit{Path: "pkg/foo.pc"}
	_, err := Render(u, Variables{{PrefixVar, Prefix}}, Fallbacks{Version: "1.0"})
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("Render() error = %v, want ErrConfig", err)
	}
}

func TestRenderMultiLineValues(t *testing.T) {
	tests := []struct {
		field string
		unit  Unit
		fb    Fallbacks
	}{
		{"description", Unit{Path: "foo.pc", Description: "Foo\nlibrary"}, Fallbacks{}},
		{"description", Unit{Path: "foo.pc"}, Fallbacks{Description: "Foo\n"}},
		{"version", Unit{Path: "foo.pc", Description: "Foo", Version: "1.0\r\n"}, Fallbacks{}},
		{"version", Unit{Path: "foo.pc", Description: "Foo"}, Fallbacks{Version: "1.0\n2.0"}},
		{"requires", Unit{Path: "foo.pc", Description: "Foo", Requires: []string{"a\nb"}}, Fallbacks{}},
		{"requires_private", Unit{Path: "foo.pc", Description: "Foo", RequiresPrivate: []string{"z\n"}}, Fallbacks{}},
		{"libs_private", Unit{Path: "foo.pc", Description: "Foo", LibsPrivate: "-lm\n-lz"}, Fallbacks{}},
		{"extra_cflags", Unit{Path: "foo.pc", Description: "Foo", ExtraCflags: "-DA\n-DB"}, Fallbacks{}},
		{"name", Unit{Path: "foo.pc", Name: "fo\no", Description: "Foo"}, Fallbacks{}},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			_, err := Render(&tt.unit, Variables{{PrefixVar, Prefix}}, tt.fb)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Render() error = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	u := &Unit{
		Path:            "pkg/foo.pc",
		IncludeDir:      "pkg/include",
		SharedLibraries: []string{"b", "a"},
		Variables:       Variables{{"y", "1"}, {"x", "2"}, {"w", "3"}},
	}
	fb := Fallbacks{Description: "d", Version: "v"}
	first := render(t, u, fb)
	for range 10 {
		if got := render(t, u, fb); got != first {
			t.Fatalf("Render() not deterministic:\n%s\n---\n%s", got, first)
		}
	}
}
