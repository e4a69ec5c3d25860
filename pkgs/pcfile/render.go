// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcfile

import "strings"

// Fallbacks are package-level metadata used when a unit leaves the
// corresponding field empty.
type Fallbacks struct {
	Description string
	Version     string
}

// Document is a rendered descriptor, one entry per line.
type Document []string

// String returns the descriptor text with a trailing newline.
func (d Document) String() string {
	return strings.Join(d, "\n") + "\n"
}

// Render assembles the descriptor of u from its resolved variables.
// The output depends only on its inputs.
func Render(u *Unit, vars Variables, fb Fallbacks) (Document, error) {
	name := u.UnitName()

	description := u.Description
	if description == "" {
		description = fb.Description
	}
	if description == "" {
		return nil, configErrorf(name, "description", "description not provided")
	}

	doc := make(Document, 0, len(vars)+10)
	for _, v := range vars {
		doc = append(doc, v.Name+"="+v.Value)
	}
	doc = append(doc, "",
		"Name: "+name,
		"Description: "+description,
	)

	version := u.Version
	if version == "" {
		version = fb.Version
	}
	for _, f := range []struct{ field, value string }{
		{"name", name},
		{"description", description},
		{"version", version},
		{"requires", strings.Join(u.Requires, " ")},
		{"requires_private", strings.Join(u.RequiresPrivate, " ")},
		{"libs_private", u.LibsPrivate},
		{"extra_cflags", u.ExtraCflags},
	} {
		if err := singleLine(name, f.field, f.value); err != nil {
			return nil, err
		}
	}
	if version != "" {
		doc = append(doc, "Version: "+version)
	}

	if len(u.Requires) > 0 {
		doc = append(doc, "Requires: "+strings.Join(u.Requires, " "))
	}
	if len(u.RequiresPrivate) > 0 {
		doc = append(doc, "Requires.private: "+strings.Join(u.RequiresPrivate, " "))
	}

	if u.HasLibraries() {
		libs := []string{"-L${" + LibDirVar + "}"}
		for _, lib := range u.SharedLibraries {
			libs = append(libs, "-l"+lib)
		}
		doc = append(doc, "Libs: "+strings.Join(libs, " "))
	}
	if u.LibsPrivate != "" {
		doc = append(doc, "Libs.private: "+u.LibsPrivate)
	}

	var cflags []string
	if u.IncludeDir != "" {
		cflags = append(cflags, "-I${"+IncludeDirVar+"}")
	}
	if u.ExtraCflags != "" {
		cflags = append(cflags, u.ExtraCflags)
	}
	if len(cflags) > 0 {
		doc = append(doc, "Cflags: "+strings.Join(cflags, " "))
	}
	return doc, nil
}

// singleLine rejects values that would split a descriptor line.
func singleLine(unit, field, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return configErrorf(unit, field, "%q spans multiple lines", value)
	}
	return nil
}
