// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/cache"
)

func TestStaticCache(t *testing.T) {
	h := StaticCache(3600)(http.HandlerFunc(okHandler))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/a.jpg", nil))

	if got := rr.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}
}

func TestResponseCache(t *testing.T) {
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mc.Close() }()
	rc := NewResponseCache(mc, time.Minute)

	calls := 0
	body := "v1"
	h := rc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
			return
		}
		w.WriteHeader(http.StatusCreated)
	}))

	get := func(headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/projects?category=ongoing", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	first := get(nil)
	if first.Header().Get("X-Cache") != "MISS" || first.Body.String() != "v1" {
		t.Fatalf("first response: cache=%q body=%q", first.Header().Get("X-Cache"), first.Body.String())
	}

	body = "v2"
	second := get(nil)
	if second.Header().Get("X-Cache") != "HIT" || second.Body.String() != "v1" {
		t.Errorf("second response: cache=%q body=%q", second.Header().Get("X-Cache"), second.Body.String())
	}
	if second.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type not restored: %q", second.Header().Get("Content-Type"))
	}

	if admin := get(map[string]string{"Authorization": "Bearer t"}); admin.Body.String() != "v2" {
		t.Errorf("authenticated request served from cache: %q", admin.Body.String())
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects", nil))
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST status = %d", rr.Code)
	}

	if third := get(nil); third.Body.String() != "v2" {
		t.Errorf("cache not invalidated after write: %q", third.Body.String())
	}
	if calls != 4 {
		t.Errorf("handler calls = %d, want 4", calls)
	}
}
