// Copyright (c) 2026 The XGo Authors (xgo.dev). All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env describes the host a generation pass runs on.
package env

import (
	"os"
	"runtime"
	"strings"
)

// Platform identifies the host that generates a package. Loader code is
// synthesized for this platform only.
type Platform struct {
	GOOS    string
	GOARCH  string
	Machine string // hardware name as reported by the kernel
	Release string // kernel release, empty if unknown
}

// Current returns the platform of the running process.
func Current() Platform {
	p := Platform{
		GOOS:   runtime.GOOS,
		GOARCH: runtime.GOARCH,
	}
	p.Machine, p.Release = uname()
	if p.Machine == "" {
		p.Machine = machineOf(p.GOOS, p.GOARCH)
	}
	return p
}

// System returns the operating system name in the spelling used by
// environment markers ("Linux", "Darwin", "Windows", ...).
func (p Platform) System() string {
	switch p.GOOS {
	case "":
		return ""
	case "darwin", "ios":
		return "Darwin"
	case "freebsd":
		return "FreeBSD"
	case "netbsd":
		return "NetBSD"
	case "openbsd":
		return "OpenBSD"
	}
	return strings.ToUpper(p.GOOS[:1]) + p.GOOS[1:]
}

// Markers returns the environment marker variables activation predicates
// are evaluated against.
func (p Platform) Markers() map[string]string {
	osName := "posix"
	sysPlatform := p.GOOS
	switch p.GOOS {
	case "windows":
		osName, sysPlatform = "nt", "win32"
	case "ios":
		sysPlatform = "darwin"
	}
	return map[string]string{
		"os_name":          osName,
		"sys_platform":     sysPlatform,
		"platform_system":  p.System(),
		"platform_machine": p.Machine,
		"platform_release": p.Release,
	}
}

// machineOf names the hardware when the kernel cannot be asked. Windows
// reports PROCESSOR_ARCHITECTURE spellings.
func machineOf(goos, goarch string) string {
	if goos == "windows" {
		switch goarch {
		case "amd64":
			return "AMD64"
		case "386":
			return "x86"
		case "arm64":
			return "ARM64"
		}
		return strings.ToUpper(goarch)
	}
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "i686"
	case "arm64":
		return "aarch64"
	}
	return goarch
}

// SearchPath prepends dirs to the list-separated path value current,
// dropping duplicates and empty entries. The result is suitable for
// PKG_CONFIG_PATH.
func SearchPath(current string, dirs ...string) string {
	var out []string
	seen := make(map[string]bool)
	add := func(d string) {
		if d == "" || seen[d] {
			return
		}
		seen[d] = true
		out = append(out, d)
	}
	for _, d := range dirs {
		add(d)
	}
	for _, d := range strings.Split(current, string(os.PathListSeparator)) {
		add(d)
	}
	return strings.Join(out, string(os.PathListSeparator))
}
