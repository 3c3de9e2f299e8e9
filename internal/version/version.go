// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Set via -ldflags "-X github.com/olegiv/ozpolat-cms/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string `json:"version"`    // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string `json:"git_commit"` // Short git commit hash (e.g., "abc1234")
	BuildTime string `json:"build_time"` // Build timestamp in RFC3339 format
}

// Current returns the version information of the running binary.
func Current() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

// String formats the info for --version output.
func (i Info) String() string {
	s := i.Version
	if i.GitCommit != "" {
		s += " (" + i.GitCommit + ")"
	}
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}
