// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pkgconfig implements the cross-package variable protocol: asking
// a descriptor, by name, for the value of one of its variables.
package pkgconfig

import (
	"slices"

	"github.com/goplus/nativelib/pkgs/pcfile"
)

// LookupFunc returns the value of variable in the descriptor called name.
// ok is false when the descriptor or the variable does not exist.
type LookupFunc func(name, variable string) (value string, ok bool)

// Chain returns a LookupFunc answering with the first lookup that knows the
// variable. Nil lookups are skipped.
func Chain(lookups ...LookupFunc) LookupFunc {
	return func(name, variable string) (string, bool) {
		for _, lookup := range lookups {
			if lookup == nil {
				continue
			}
			if v, ok := lookup(name, variable); ok {
				return v, true
			}
		}
		return "", false
	}
}

// Entry advertises the loader module of one unit.
type Entry struct {
	Name    string // descriptor name
	Package string // importable package holding the descriptor
	Module  string // fully qualified loader module
}

// Registry is the append-only table of units that ship a loader module.
// It is not safe for concurrent use.
type Registry struct {
	entries []Entry
	index   map[string]int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends e. A later entry for the same name shadows earlier ones
// in Lookup.
func (r *Registry) Register(e Entry) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[e.Name] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Lookup answers loader-module queries for registered units.
func (r *Registry) Lookup(name, variable string) (string, bool) {
	if variable != pcfile.LoaderVar {
		return "", false
	}
	i, ok := r.index[name]
	if !ok {
		return "", false
	}
	return r.entries[i].Module, true
}
