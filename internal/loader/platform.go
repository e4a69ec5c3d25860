// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package loader

// Platform holds everything that differs between the loaders generated on
// different hosts: library file naming and the ctypes calls used to load.
type Platform struct {
	GOOS string

	libPrefix string
	libSuffix string

	// imports are the ctypes imports inside the load routine.
	imports string
	// load is the expression loading the library at lib_path.
	load string
	// hint completes "<file> could not be loaded." when the file exists but
	// fails to load.
	hint string
}

var (
	windows = &Platform{
		GOOS:      "windows",
		libSuffix: ".dll",
		imports:   "from ctypes import cdll",
		load:      "cdll.LoadLibrary(lib_path)",
		hint:      "Do you have the Visual Studio C++ Redistributable installed?",
	}
	darwin = &Platform{
		GOOS:      "darwin",
		libPrefix: "lib",
		libSuffix: ".dylib",
		// RTLD_GLOBAL lets libraries loaded afterwards resolve symbols
		// against this one.
		imports: "from ctypes import CDLL, RTLD_GLOBAL",
		load:    "CDLL(lib_path, mode=RTLD_GLOBAL)",
		hint:    "There is a missing dependency.",
	}
	unix = &Platform{
		libPrefix: "lib",
		libSuffix: ".so",
		imports:   "from ctypes import cdll",
		load:      "cdll.LoadLibrary(lib_path)",
		hint:      "There is a missing dependency.",
	}
)

var platforms = map[string]*Platform{
	"windows": windows,
	"darwin":  darwin,
	"ios":     darwin,
}

// PlatformFor returns the loader platform for goos. Operating systems
// without a dedicated entry use ELF shared object conventions.
func PlatformFor(goos string) *Platform {
	if p, ok := platforms[goos]; ok {
		return p
	}
	p := *unix
	p.GOOS = goos
	return &p
}

// LibraryFile returns the on-disk file name of the shared library name.
func (p *Platform) LibraryFile(name string) string {
	return p.libPrefix + name + p.libSuffix
}
