// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package version

import (
	"runtime"
	"runtime/debug"
)

// Version is overridden at build time through -ldflags
var Version = "dev"

type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
}

// Info reports the linked version and, when the binary carries vcs stamps,
// the commit it was built from.
func Info() BuildInfo {
	info := BuildInfo{Version: Version, GoVersion: runtime.Version()}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.Commit = s.Value
		}
	}

	return info
}
