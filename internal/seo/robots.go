// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
)

// RobotsConfig holds configuration for robots.txt generation.
type RobotsConfig struct {
	SiteURL       string   // Base URL for the sitemap reference
	DisallowAll   bool     // Block all crawlers (staging)
	DisallowPaths []string // Paths to disallow in addition to the defaults
}

// defaultDisallow keeps crawlers out of the API and the admin panel.
var defaultDisallow = []string{"/api/", "/admin"}

// BuildRobots generates the robots.txt content.
func BuildRobots(cfg RobotsConfig) string {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")

	if cfg.DisallowAll {
		sb.WriteString("Disallow: /\n")
		return sb.String()
	}

	for _, path := range append(append([]string{}, defaultDisallow...), cfg.DisallowPaths...) {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}
	sb.WriteString("Allow: /\n")

	if cfg.SiteURL != "" {
		sb.WriteString("\nSitemap: ")
		sb.WriteString(strings.TrimSuffix(cfg.SiteURL, "/"))
		sb.WriteString("/sitemap.xml\n")
	}
	return sb.String()
}
