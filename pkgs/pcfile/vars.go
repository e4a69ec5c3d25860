// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcfile

import (
	"path"
	"strings"

	"golang.org/x/mod/module"
)

// ResolveVariables computes the variable block of u's descriptor. Include
// and library directories become ${prefix}-relative so the descriptor stays
// valid wherever the package is installed. User variables follow the
// computed ones in declaration order.
func ResolveVariables(u *Unit) (Variables, error) {
	name := u.UnitName()
	if err := checkDescriptorPath(name, u.Path); err != nil {
		return nil, err
	}
	dir := u.Dir()

	vars := Variables{{Name: PrefixVar, Value: Prefix}}

	if u.IncludeDir != "" {
		v, err := prefixed(name, "includedir", dir, u.IncludeDir)
		if err != nil {
			return nil, err
		}
		vars = append(vars, Variable{Name: IncludeDirVar, Value: v})
	}

	if u.HasLibraries() {
		v := "${" + PrefixVar + "}"
		if u.LibDir != "" {
			var err error
			if v, err = prefixed(name, "libdir", dir, u.LibDir); err != nil {
				return nil, err
			}
		}
		vars = append(vars, Variable{Name: LibDirVar, Value: v})
	}

	for _, v := range u.Variables {
		if IsReserved(v.Name) {
			return nil, configErrorf(name, "variables", "variables may not contain %s", v.Name)
		}
		if v.Name == "" {
			return nil, configErrorf(name, "variables", "empty variable name")
		}
		if err := singleLine(name, "variables", v.Value); err != nil {
			return nil, err
		}
		vars.Set(v.Name, v.Value)
	}
	return vars, nil
}

func checkDescriptorPath(name, p string) error {
	if p == "" {
		return configErrorf(name, "pcfile", "descriptor path not provided")
	}
	if !strings.HasSuffix(p, ".pc") {
		return configErrorf(name, "pcfile", "%s must end with .pc", p)
	}
	if err := module.CheckFilePath(path.Clean(p)); err != nil {
		return &ConfigError{Unit: name, Field: "pcfile", Err: err}
	}
	return nil
}

// prefixed expresses target as a path below the descriptor directory dir.
func prefixed(name, field, dir, target string) (string, error) {
	target = path.Clean(target)
	if target == dir {
		return "${" + PrefixVar + "}", nil
	}
	if err := module.CheckFilePath(target); err != nil {
		return "", &ConfigError{Unit: name, Field: field, Err: err}
	}
	rel := target
	if dir != "." {
		var ok bool
		if rel, ok = strings.CutPrefix(target, dir+"/"); !ok {
			return "", configErrorf(name, field, "%s is not inside %s", target, dir)
		}
	}
	return "${" + PrefixVar + "}/" + rel, nil
}
