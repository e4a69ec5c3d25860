// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile writes content to name unless the file already holds exactly
// that content, in which case it is left untouched (including its
// modification time). Missing parent directories are created.
// It reports whether the file was written.
func WriteFile(name string, content []byte) (written bool, err error) {
	old, err := os.ReadFile(name)
	switch {
	case err == nil:
		if bytes.Equal(old, content) {
			return false, nil
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			return false, err
		}
	default:
		return false, err
	}
	if err := os.WriteFile(name, content, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
