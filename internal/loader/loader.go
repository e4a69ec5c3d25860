// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package loader synthesizes the Python modules that load a unit's bundled
// shared libraries at import time.
package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goplus/nativelib/internal/pkgconfig"
	"github.com/goplus/nativelib/pkgs/pcfile"
)

// Header marks synthesized files.
const Header = "# This file is automatically generated, DO NOT EDIT"

// Spec is the input of one loader module.
type Spec struct {
	Path      string   // loader module file on disk
	Libraries []string // library files on disk, in load order
	Requires  []string // peer descriptors whose loaders are imported first
}

// Synthesizer generates loader modules for one host platform.
type Synthesizer struct {
	Platform *Platform
	Lookup   pkgconfig.LookupFunc
	Logger   *zap.Logger
}

// Synthesize returns the source of the loader module described by spec.
//
// Each required peer whose descriptor advertises a loader module is
// imported. Peers that advertise none are skipped. When spec has libraries,
// the module loads them once at import and binds the handle (or the list
// of handles, for more than one library) at module scope.
func (s *Synthesizer) Synthesize(spec *Spec) (string, error) {
	p := s.Platform
	if p == nil {
		return "", fmt.Errorf("loader: no platform")
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lines := []string{Header, "# fmt: off", ""}

	for _, req := range spec.Requires {
		module, ok := "", false
		if s.Lookup != nil {
			module, ok = s.Lookup(req, pcfile.LoaderVar)
		}
		if !ok {
			logger.Debug("peer has no loader", zap.String("peer", req))
			continue
		}
		if !IsModulePath(module) {
			logger.Warn("ignoring invalid loader module", zap.String("peer", req), zap.String("module", module))
			continue
		}
		lines = append(lines, "import "+module)
	}
	if lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}

	if len(spec.Libraries) > 0 {
		body, err := s.loadRoutine(spec)
		if err != nil {
			return "", err
		}
		lines = append(lines, body...)
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n", nil
}

func (s *Synthesizer) loadRoutine(spec *Spec) ([]string, error) {
	p := s.Platform
	multi := len(spec.Libraries) > 1
	root := filepath.Dir(spec.Path)

	lines := []string{
		"def __load_library():",
		"    from os.path import abspath, join, dirname, exists",
		"    " + p.imports,
		"",
	}
	if multi {
		lines = append(lines, "    libs = []")
	}
	lines = append(lines, "    root = abspath(dirname(__file__))")

	for _, lib := range spec.Libraries {
		components, err := relComponents(root, lib)
		if err != nil {
			return nil, err
		}
		name := filepath.Base(lib)

		load := "return " + p.load
		if multi {
			load = "libs.append(" + p.load + ")"
		}
		lines = append(lines,
			"",
			"    lib_path = join(root, "+components+")",
			"",
			"    try:",
			"        "+load,
			"    except OSError:",
			"        if not exists(lib_path):",
			"            raise FileNotFoundError("+strconv.Quote(name+" was not found on your system. Is this package correctly installed?")+")",
			"        raise OSError("+strconv.Quote(name+" could not be loaded. "+p.hint)+")",
		)
	}
	if multi {
		lines = append(lines, "", "    return libs")
	}
	lines = append(lines, "", "__lib = __load_library()")
	return lines, nil
}

// relComponents returns the path of lib relative to dir as a list of quoted
// Python string literals.
func relComponents(dir, lib string) (string, error) {
	rel, err := filepath.Rel(dir, lib)
	if err != nil {
		return "", fmt.Errorf("loader: %w", err)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		if part == ".." {
			return "", fmt.Errorf("loader: %s is not below %s", lib, dir)
		}
		quoted[i] = strconv.Quote(part)
	}
	return strings.Join(quoted, ", "), nil
}

// IsModulePath reports whether s is a dotted sequence of identifiers.
func IsModulePath(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			switch {
			case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9' && i > 0:
			default:
				return false
			}
		}
	}
	return true
}
