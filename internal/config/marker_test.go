// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "testing"

var linuxMarkers = map[string]string{
	"os_name":          "posix",
	"sys_platform":     "linux",
	"platform_system":  "Linux",
	"platform_machine": "x86_64",
	"platform_release": "6.1.0",
}

func TestPredicate(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{`platform_system == "Linux"`, true},
		{`platform_system != "Linux"`, false},
		{`os_name == "nt" || sys_platform == "linux"`, true},
		{`platform_system == "Linux" && platform_machine == "aarch64"`, false},
		{`!(sys_platform == "win32")`, true},
		{`true`, true},
		{`false`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			pred, err := Predicate(tt.expr, linuxMarkers)
			if err != nil {
				t.Fatalf("Predicate() error = %v", err)
			}
			got, err := pred()
			if err != nil {
				t.Fatalf("predicate error = %v", err)
			}
			if got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredicateErrors(t *testing.T) {
	for _, expr := range []string{
		`platform_system ==`,
		`python_version == "3.12"`,
	} {
		if _, err := Predicate(expr, linuxMarkers); err == nil {
			t.Errorf("Predicate(%q) succeeded", expr)
		}
	}

	for _, expr := range []string{
		`platform_system`,
		`"yes"`,
		`null`,
	} {
		pred, err := Predicate(expr, linuxMarkers)
		if err != nil {
			t.Fatalf("Predicate(%q) error = %v", expr, err)
		}
		if _, err := pred(); err == nil {
			t.Errorf("predicate %q evaluated to a boolean", expr)
		}
	}
}
