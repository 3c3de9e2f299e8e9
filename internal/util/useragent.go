// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mileusna/useragent"
)

// maxUserAgentLen caps the raw header kept when it cannot be parsed.
const maxUserAgentLen = 200

// SummarizeUserAgent reduces a User-Agent header to "Browser Version / OS",
// with a device suffix for phones, tablets and bots.
func SummarizeUserAgent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	ua := useragent.Parse(raw)
	if ua.Name == "" && ua.OS == "" {
		if len(raw) > maxUserAgentLen {
			raw = raw[:maxUserAgentLen]
		}
		return raw
	}

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	if major, _, _ := strings.Cut(ua.Version, "."); major != "" {
		browser += " " + major
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}

	summary := browser + " / " + os
	switch {
	case ua.Bot:
		summary += " (bot)"
	case ua.Tablet:
		summary += " (tablet)"
	case ua.Mobile:
		summary += " (mobile)"
	}
	return summary
}
