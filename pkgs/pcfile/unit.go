// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pcfile renders relocatable pkg-config descriptors for units of
// prebuilt shared libraries shipped inside a package.
package pcfile

import (
	"path"
	"strings"
)

// Reserved variable names. User-supplied variables may not use them.
const (
	PrefixVar     = "prefix"
	IncludeDirVar = "includedir"
	LibDirVar     = "libdir"

	// LoaderVar advertises the import path of a unit's loader module to
	// other packages querying the descriptor.
	LoaderVar = "pkgconf_pypi_initpy"
)

// Prefix is the anchor every path variable is expressed against: the
// directory containing the descriptor, as expanded by pkg-config.
const Prefix = "${pcfiledir}"

// IsReserved reports whether name is one of the variables computed by
// ResolveVariables or the coordinator.
func IsReserved(name string) bool {
	switch name {
	case PrefixVar, IncludeDirVar, LibDirVar, LoaderVar:
		return true
	}
	return false
}

// Variable is a single "name=value" assignment of a descriptor.
type Variable struct {
	Name  string
	Value string
}

// Variables is an ordered set of descriptor variables.
type Variables []Variable

// Get returns the value of the named variable.
func (vs Variables) Get(name string) (string, bool) {
	for _, v := range vs {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing variable in place, or appends it.
func (vs *Variables) Set(name, value string) {
	for i := range *vs {
		if (*vs)[i].Name == name {
			(*vs)[i].Value = value
			return
		}
	}
	*vs = append(*vs, Variable{Name: name, Value: value})
}

// Unit declares one descriptor and the shared libraries it describes.
// All paths are slash separated and relative to the package root.
type Unit struct {
	Name            string // defaults to the descriptor file stem
	Description     string
	Version         string
	Path            string // descriptor path, e.g. "mypkg/foo.pc"
	IncludeDir      string
	LibDir          string
	SharedLibraries []string // base names in link order
	Requires        []string
	RequiresPrivate []string
	ExtraCflags     string
	LibsPrivate     string
	Variables       Variables

	// EnableIf gates generation of the unit. A nil predicate is always true.
	EnableIf func() (bool, error)
}

// UnitName returns the pkg-config name of the unit.
func (u *Unit) UnitName() string {
	if u.Name != "" {
		return u.Name
	}
	return strings.TrimSuffix(path.Base(u.Path), ".pc")
}

// Dir returns the directory holding the descriptor; "." at the package root.
func (u *Unit) Dir() string {
	return path.Dir(path.Clean(u.Path))
}

// LibraryDir returns the directory the shared libraries are expected in.
func (u *Unit) LibraryDir() string {
	if u.LibDir != "" {
		return path.Clean(u.LibDir)
	}
	return u.Dir()
}

// LoaderModule returns the module name of the unit's loader.
func (u *Unit) LoaderModule() string {
	return "_init_" + u.UnitName()
}

// LoaderPath returns the location of the loader module source file.
func (u *Unit) LoaderPath() string {
	return path.Join(u.Dir(), u.LoaderModule()+".py")
}

// HasLibraries reports whether the unit owns any shared library.
func (u *Unit) HasLibraries() bool {
	return len(u.SharedLibraries) > 0
}

// Active evaluates the activation predicate.
func (u *Unit) Active() (bool, error) {
	if u.EnableIf == nil {
		return true, nil
	}
	return u.EnableIf()
}
