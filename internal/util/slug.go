// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides slug generation, upload path helpers and
// client address handling shared across the server.
package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonSlugRun matches every run of characters that may not appear in a slug.
var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a URL-friendly slug.
// Accents are folded (Ç→c, ş→s), remaining non-Latin letters are
// transliterated (ı→i), and every run of other characters becomes a
// single hyphen. The result is lowercase with no leading or trailing
// hyphen, and Slugify(Slugify(s)) == Slugify(s).
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	result := strings.ToLower(unidecode.Unidecode(folded))
	result = nonSlugRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// UniqueSlug returns base, or base with the first free "-N" suffix
// (N starting at 2) when taken reports base as already used.
func UniqueSlug(base string, taken func(string) bool) string {
	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
