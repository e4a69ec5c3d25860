// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcfile

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig indicates an invalid or incomplete unit declaration.
	ErrConfig = errors.New("invalid configuration")

	// ErrMissingArtifact indicates a declared shared library is absent on disk.
	ErrMissingArtifact = errors.New("missing artifact")
)

// ConfigError reports a unit declaration that cannot produce a valid
// descriptor.
type ConfigError struct {
	Unit  string // unit name, empty for package-level problems
	Field string // offending field, if known
	Err   error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Unit != "" && e.Field != "":
		return fmt.Sprintf("%s: %s: %v", e.Unit, e.Field, e.Err)
	case e.Unit != "":
		return fmt.Sprintf("%s: %v", e.Unit, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(unit, field, format string, args ...any) error {
	return &ConfigError{Unit: unit, Field: field, Err: fmt.Errorf(format, args...)}
}

// MissingArtifactError reports a shared library that was declared but not
// found where the descriptor says it lives.
type MissingArtifactError struct {
	Unit string
	Path string // expected location on disk
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s: shared library not found: %s", e.Unit, e.Path)
}

func (e *MissingArtifactError) Is(target error) bool {
	return target == ErrMissingArtifact
}
