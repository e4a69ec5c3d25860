// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pkgconfig

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/goplus/nativelib/internal/env"
)

// Client queries installed descriptors through the pkg-config tool.
type Client struct {
	pkgConfig  string
	searchPath []string
}

// Option configures Client.
type Option func(*Client)

// WithPath sets a custom pkg-config executable path.
func WithPath(path string) Option {
	return func(c *Client) {
		c.pkgConfig = path
	}
}

// WithSearchPath adds directories searched before PKG_CONFIG_PATH.
func WithSearchPath(dirs ...string) Option {
	return func(c *Client) {
		c.searchPath = append(c.searchPath, dirs...)
	}
}

// New creates a Client running "pkg-config" from PATH unless configured
// otherwise.
func New(opts ...Option) *Client {
	c := &Client{pkgConfig: "pkg-config"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Variable returns the value of variable declared by the descriptor name.
func (c *Client) Variable(ctx context.Context, name, variable string) (string, error) {
	cmd := exec.CommandContext(ctx, c.pkgConfig, "--variable="+variable, name)
	if len(c.searchPath) > 0 {
		cmd.Env = append(os.Environ(),
			"PKG_CONFIG_PATH="+env.SearchPath(os.Getenv("PKG_CONFIG_PATH"), c.searchPath...))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("pkg-config %s: %s", name, msg)
		}
		return "", fmt.Errorf("pkg-config %s: %w", name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Lookup is the LookupFunc form of Variable. Any failure, including a
// missing pkg-config binary, and an empty value both mean "not found".
func (c *Client) Lookup(name, variable string) (string, bool) {
	v, err := c.Variable(context.Background(), name, variable)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}
