// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
	"unicode"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "turkish title",
			input:    "Yeni Ofis Açılışı",
			expected: "yeni-ofis-acilisi",
		},
		{
			name:     "turkish capitals",
			input:    "İSTANBUL ŞANTİYESİ ĞÜÖ",
			expected: "istanbul-santiyesi-guo",
		},
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation runs",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Proje 2024 / Etap 2",
			expected: "proje-2024-etap-2",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "german umlauts",
			input:    "Über München",
			expected: "uber-munchen",
		},
		{
			name:     "leading and trailing noise",
			input:    "  --Hello World--  ",
			expected: "hello-world",
		},
		{
			name:     "underscores",
			input:    "snake_case_title",
			expected: "snake-case-title",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^*()",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyIdempotentAndClean(t *testing.T) {
	inputs := []string{
		"Yeni Ofis Açılışı",
		"Riverside Towers",
		"  Çok   boşluklu\tbaşlık\n",
		"日本語タイトル",
		"a--b__c..d",
		"Şikayet / Öneri",
		"100% Müşteri Memnuniyeti",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := Slugify(in)
			if twice := Slugify(once); twice != once {
				t.Errorf("Slugify not idempotent: %q -> %q -> %q", in, once, twice)
			}
			if once != Slugify(in) {
				t.Errorf("Slugify not deterministic for %q", in)
			}
			if strings.IndexFunc(once, unicode.IsSpace) >= 0 {
				t.Errorf("Slugify(%q) = %q contains whitespace", in, once)
			}
			if once != "" && !IsValidSlug(once) {
				t.Errorf("Slugify(%q) = %q is not a valid slug", in, once)
			}
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"haber": true, "haber-2": true}
	taken := func(s string) bool { return used[s] }

	if got := UniqueSlug("yeni", taken); got != "yeni" {
		t.Errorf("UniqueSlug(free) = %q, want yeni", got)
	}
	if got := UniqueSlug("haber", taken); got != "haber-3" {
		t.Errorf("UniqueSlug(taken) = %q, want haber-3", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"hello-world", true},
		{"page-123", true},
		{"123", true},
		{"", false},
		{"Hello-World", false},
		{"hello world", false},
		{"-hello", false},
		{"hello-", false},
		{"hello--world", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
