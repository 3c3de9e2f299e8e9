// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"strings"
	"testing"
)

func TestSummarizeUserAgent(t *testing.T) {
	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	got := SummarizeUserAgent(chrome)
	if got != "Chrome 120 / Windows" {
		t.Errorf("SummarizeUserAgent(chrome) = %q", got)
	}

	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	if got := SummarizeUserAgent(iphone); !strings.HasSuffix(got, "(mobile)") {
		t.Errorf("SummarizeUserAgent(iphone) = %q, want mobile suffix", got)
	}

	if got := SummarizeUserAgent("   "); got != "" {
		t.Errorf("SummarizeUserAgent(blank) = %q", got)
	}
}
