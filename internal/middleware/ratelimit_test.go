// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter("contact", 0.001, 2)
	h := rl.Middleware(http.HandlerFunc(okHandler))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = ip + ":1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := range 2 {
		if code := send("203.0.113.1"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, code)
		}
	}
	if code := send("203.0.113.1"); code != http.StatusTooManyRequests {
		t.Errorf("third request: status = %d, want 429", code)
	}
	if code := send("203.0.113.2"); code != http.StatusOK {
		t.Errorf("other client: status = %d, want 200", code)
	}
}

func TestRateLimiterHTML(t *testing.T) {
	rl := NewRateLimiter("pages", 0.001, 1)
	h := rl.HTMLMiddleware(http.HandlerFunc(okHandler))

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/iletisim", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Errorf("request %d: status = %d, want %d", i, rr.Code, want)
		}
	}
}

func TestLimiterCacheReusesLimiter(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	if lc.get("a") != lc.get("a") {
		t.Error("expected the same limiter for the same key")
	}
	if lc.get("a") == lc.get("b") {
		t.Error("expected distinct limiters for distinct keys")
	}
}
