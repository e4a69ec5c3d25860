// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the nativelib.yaml file declaring a package's
// descriptors.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goplus/nativelib/pkgs/pcfile"
)

// DefaultFile is the configuration file name looked up in the package root.
const DefaultFile = "nativelib.yaml"

// File is the decoded configuration of one package.
type File struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Version     string   `yaml:"version,omitempty"`
	Sources     []string `yaml:"sources,omitempty"` // directory prefixes not part of import paths
	PCFiles     []PCFile `yaml:"pcfile,omitempty"`
}

// PCFile declares one descriptor.
type PCFile struct {
	PCFile          string    `yaml:"pcfile"`
	Name            string    `yaml:"name,omitempty"`
	Description     string    `yaml:"description,omitempty"`
	Version         string    `yaml:"version,omitempty"`
	IncludeDir      string    `yaml:"includedir,omitempty"`
	LibDir          string    `yaml:"libdir,omitempty"`
	SharedLibraries []string  `yaml:"shared_libraries,omitempty"`
	Requires        []string  `yaml:"requires,omitempty"`
	RequiresPrivate []string  `yaml:"requires_private,omitempty"`
	ExtraCflags     string    `yaml:"extra_cflags,omitempty"`
	LibsPrivate     string    `yaml:"libs_private,omitempty"`
	Variables       Variables `yaml:"variables,omitempty"`
	EnableIf        string    `yaml:"enable_if,omitempty"`
}

// Variables is a YAML mapping decoded in document order.
type Variables pcfile.Variables

// UnmarshalYAML implements yaml.Unmarshaler.
func (vs *Variables) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: variables must be a mapping", node.Line)
	}
	out := make(Variables, 0, len(node.Content)/2)
	seen := make(map[string]int, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: variable %s must be a string", val.Line, key.Value)
		}
		if line, ok := seen[key.Value]; ok {
			return fmt.Errorf("line %d: variable %s already defined at line %d", key.Line, key.Value, line)
		}
		seen[key.Value] = key.Line
		out = append(out, pcfile.Variable{Name: key.Value, Value: val.Value})
	}
	*vs = out
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping declaration order.
func (vs Variables) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range vs {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Value},
		)
	}
	return node, nil
}

// Load reads the configuration file at name.
func Load(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// Parse decodes and validates a configuration. Unknown keys are errors.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &pcfile.ConfigError{Err: err}
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	names := make(map[string]int)
	for i, pc := range f.PCFiles {
		field := func(name string) string {
			return fmt.Sprintf("pcfile[%d].%s", i, name)
		}
		if pc.PCFile == "" {
			return &pcfile.ConfigError{Field: field("pcfile"), Err: errors.New("required")}
		}
		if !strings.HasSuffix(pc.PCFile, ".pc") {
			return &pcfile.ConfigError{Field: field("pcfile"), Err: fmt.Errorf("%s must end with .pc", pc.PCFile)}
		}
		if err := unique(pc.SharedLibraries); err != nil {
			return &pcfile.ConfigError{Field: field("shared_libraries"), Err: err}
		}
		for _, lib := range pc.SharedLibraries {
			if lib == "" || strings.ContainsAny(lib, `/\`) {
				return &pcfile.ConfigError{Field: field("shared_libraries"), Err: fmt.Errorf("invalid library name %q", lib)}
			}
		}
		if err := unique(pc.Requires); err != nil {
			return &pcfile.ConfigError{Field: field("requires"), Err: err}
		}
		if err := unique(pc.RequiresPrivate); err != nil {
			return &pcfile.ConfigError{Field: field("requires_private"), Err: err}
		}
		if pc.EnableIf != "" {
			// gated units may share a name; build rejects duplicates once active
			continue
		}
		name := pc.unit().UnitName()
		if j, ok := names[name]; ok {
			return &pcfile.ConfigError{Field: field("name"), Err: fmt.Errorf("%s already declared by pcfile[%d]", name, j)}
		}
		names[name] = i
	}
	return nil
}

func unique(items []string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			return fmt.Errorf("duplicate entry %q", item)
		}
		seen[item] = true
	}
	return nil
}

func (pc *PCFile) unit() *pcfile.Unit {
	return &pcfile.Unit{
		Name:            pc.Name,
		Description:     pc.Description,
		Version:         pc.Version,
		Path:            pc.PCFile,
		IncludeDir:      pc.IncludeDir,
		LibDir:          pc.LibDir,
		SharedLibraries: pc.SharedLibraries,
		Requires:        pc.Requires,
		RequiresPrivate: pc.RequiresPrivate,
		ExtraCflags:     pc.ExtraCflags,
		LibsPrivate:     pc.LibsPrivate,
		Variables:       pcfile.Variables(pc.Variables),
	}
}

// Units converts the declarations into units whose enable_if predicates
// are evaluated against markers.
func (f *File) Units(markers map[string]string) ([]*pcfile.Unit, error) {
	units := make([]*pcfile.Unit, 0, len(f.PCFiles))
	for i := range f.PCFiles {
		pc := &f.PCFiles[i]
		u := pc.unit()
		if pc.EnableIf != "" {
			pred, err := Predicate(pc.EnableIf, markers)
			if err != nil {
				return nil, &pcfile.ConfigError{Field: fmt.Sprintf("pcfile[%d].enable_if", i), Err: err}
			}
			u.EnableIf = pred
		}
		units = append(units, u)
	}
	return units, nil
}

// Fallbacks returns the package-level description and version.
func (f *File) Fallbacks() pcfile.Fallbacks {
	return pcfile.Fallbacks{Description: f.Description, Version: f.Version}
}

// ImportPath maps a directory relative to the package root to its
// importable package, dropping the first matching source prefix.
func (f *File) ImportPath(dir string) (string, error) {
	dir = path.Clean(dir)
	for _, src := range f.Sources {
		src = strings.Trim(path.Clean(src), "/")
		if dir == src {
			return "", nil
		}
		if rest, ok := strings.CutPrefix(dir, src+"/"); ok {
			dir = rest
			break
		}
	}
	if dir == "." {
		return "", nil
	}
	return strings.ReplaceAll(dir, "/", "."), nil
}
