// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build runs a generation pass: it turns unit declarations into
// descriptors and loader modules below a package root.
package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goplus/nativelib/internal/env"
	"github.com/goplus/nativelib/internal/loader"
	"github.com/goplus/nativelib/internal/pkgconfig"
	"github.com/goplus/nativelib/pkgs/pcfile"
)

// Options carries what the host build tool provides to a pass.
type Options struct {
	// Root is the package root all unit paths are relative to.
	Root string

	// Fallbacks supply description and version for units without them.
	Fallbacks pcfile.Fallbacks

	// ImportPath maps a slash-separated directory relative to Root to its
	// importable package name. Nil joins the path elements with dots.
	ImportPath func(dir string) (string, error)

	// Registry receives the loader module of every generated unit once the
	// pass succeeds. It is also consulted when resolving peers.
	Registry *pkgconfig.Registry

	// Lookup resolves peers that are neither in the pass nor in Registry,
	// typically by querying installed descriptors.
	Lookup pkgconfig.LookupFunc

	// Platform selects the loader flavor. Nil means the running host.
	Platform *loader.Platform

	Logger *zap.Logger
}

// Result describes the output of a successful pass.
type Result struct {
	// Artifacts lists generated files relative to Root, slash separated,
	// in generation order.
	Artifacts []string

	// SearchPaths lists the absolute directories holding the generated
	// descriptors, for the host to merge into its pkg-config search path.
	SearchPaths []string

	// Entries are the loader modules registered by this pass.
	Entries []pkgconfig.Entry
}

// Generator produces descriptors and loader modules.
type Generator struct {
	opts Options
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = pkgconfig.NewRegistry()
	}
	if opts.Platform == nil {
		opts.Platform = loader.PlatformFor(env.Current().GOOS)
	}
	if opts.ImportPath == nil {
		opts.ImportPath = dottedPath
	}
	return &Generator{opts: opts}
}

// plan is everything known about a unit before anything is written.
type plan struct {
	unit       *pcfile.Unit
	descriptor pcfile.Document
	libraries  []string // absolute library files
	entry      *pkgconfig.Entry
}

// Generate runs one pass over units. Inactive units are skipped. All active
// units are validated, and their libraries located, before the first file
// is written: a failure leaves the filesystem untouched.
func (g *Generator) Generate(units []*pcfile.Unit) (*Result, error) {
	active, err := g.active(units)
	if err != nil {
		return nil, err
	}

	plans := make([]*plan, 0, len(active))
	pending := pkgconfig.NewRegistry()
	for _, u := range active {
		p, err := g.plan(u)
		if err != nil {
			return nil, err
		}
		if p.entry != nil {
			pending.Register(*p.entry)
		}
		plans = append(plans, p)
	}

	synth := &loader.Synthesizer{
		Platform: g.opts.Platform,
		Lookup:   pkgconfig.Chain(pending.Lookup, g.opts.Registry.Lookup, g.opts.Lookup),
		Logger:   g.opts.Logger,
	}

	res := &Result{}
	seen := make(map[string]bool)
	for _, p := range plans {
		u := p.unit
		if err := g.write(u.Path, []byte(p.descriptor.String())); err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, u.Path)

		dir := g.abs(u.Dir())
		if !seen[dir] {
			seen[dir] = true
			res.SearchPaths = append(res.SearchPaths, dir)
		}

		if p.entry == nil {
			continue
		}
		source, err := synth.Synthesize(&loader.Spec{
			Path:      g.abs(u.LoaderPath()),
			Libraries: p.libraries,
			Requires:  u.Requires,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", u.UnitName(), err)
		}
		if err := g.write(u.LoaderPath(), []byte(source)); err != nil {
			return nil, err
		}
		res.Artifacts = append(res.Artifacts, u.LoaderPath())
	}

	res.Entries = pending.Entries()
	for _, e := range res.Entries {
		g.opts.Registry.Register(e)
	}
	return res, nil
}

// Clean removes the files a pass over units would generate. Missing files
// are ignored. It returns the removed paths relative to Root.
func (g *Generator) Clean(units []*pcfile.Unit) ([]string, error) {
	active, err := g.active(units)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, u := range active {
		for _, rel := range []string{u.Path, u.LoaderPath()} {
			name := g.abs(rel)
			g.opts.Logger.Debug("deleting", zap.String("path", name))
			err := os.Remove(name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return removed, err
			}
			removed = append(removed, rel)
		}
	}
	return removed, nil
}

func (g *Generator) active(units []*pcfile.Unit) ([]*pcfile.Unit, error) {
	var active []*pcfile.Unit
	names := make(map[string]bool)
	for _, u := range units {
		ok, err := u.Active()
		if err != nil {
			return nil, &pcfile.ConfigError{Unit: u.UnitName(), Field: "enable_if", Err: err}
		}
		if !ok {
			g.opts.Logger.Info("skipped", zap.String("pcfile", u.Path),
				zap.String("reason", "enable_if did not match current environment"))
			continue
		}
		name := u.UnitName()
		if names[name] {
			return nil, &pcfile.ConfigError{Unit: name, Err: errors.New("declared more than once")}
		}
		names[name] = true
		active = append(active, u)
	}
	return active, nil
}

func (g *Generator) plan(u *pcfile.Unit) (*plan, error) {
	name := u.UnitName()
	vars, err := pcfile.ResolveVariables(u)
	if err != nil {
		return nil, err
	}

	p := &plan{unit: u}
	if u.HasLibraries() {
		pkg, err := g.opts.ImportPath(u.Dir())
		if err != nil {
			return nil, &pcfile.ConfigError{Unit: name, Field: "pcfile", Err: err}
		}
		module := u.LoaderModule()
		if pkg != "" {
			module = pkg + "." + module
		}
		if !loader.IsModulePath(module) {
			return nil, &pcfile.ConfigError{Unit: name, Field: "pcfile",
				Err: fmt.Errorf("%s is not an importable module", module)}
		}
		vars.Set(pcfile.LoaderVar, module)
		p.entry = &pkgconfig.Entry{Name: name, Package: pkg, Module: module}

		libdir := g.abs(u.LibraryDir())
		for _, lib := range u.SharedLibraries {
			file := filepath.Join(libdir, g.opts.Platform.LibraryFile(lib))
			if _, err := os.Stat(file); err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil, &pcfile.MissingArtifactError{Unit: name, Path: file}
				}
				return nil, err
			}
			p.libraries = append(p.libraries, file)
		}
	}

	if p.descriptor, err = pcfile.Render(u, vars, g.opts.Fallbacks); err != nil {
		return nil, err
	}
	return p, nil
}

func (g *Generator) write(rel string, content []byte) error {
	name := g.abs(rel)
	written, err := WriteFile(name, content)
	if err != nil {
		return err
	}
	if written {
		g.opts.Logger.Info("generating", zap.String("path", name))
	} else {
		g.opts.Logger.Debug("unchanged", zap.String("path", name))
	}
	return nil
}

func (g *Generator) abs(rel string) string {
	return filepath.Join(g.opts.Root, filepath.FromSlash(rel))
}

func dottedPath(dir string) (string, error) {
	if dir == "." || dir == "" {
		return "", nil
	}
	return strings.ReplaceAll(dir, "/", "."), nil
}
