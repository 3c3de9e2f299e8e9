// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/cache"
)

// StaticCache adds Cache-Control headers for static files.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
			next.ServeHTTP(w, r)
		})
	}
}

// ResponseCacheKeyPrefix prefixes every key the response cache writes.
const ResponseCacheKeyPrefix = "resp:"

// cachedResponse is what the response cache stores per URL.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// ResponseCache serves anonymous GET requests from c and drops every
// cached response after a successful mutation. Admin requests always
// reach the handler so they see unpublished data.
type ResponseCache struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewResponseCache returns a response cache storing entries for ttl.
func NewResponseCache(c cache.Cache, ttl time.Duration) *ResponseCache {
	return &ResponseCache{cache: c, ttl: ttl}
}

// Invalidate drops every cached response.
func (rc *ResponseCache) Invalidate(r *http.Request) {
	if err := rc.cache.DeleteByPrefix(r.Context(), ResponseCacheKeyPrefix); err != nil {
		slog.Warn("failed to invalidate response cache", "error", err)
	}
}

// Middleware caches reads and invalidates on writes.
func (rc *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if rec.status < 400 {
				rc.Invalidate(r)
			}
			return
		}

		if r.Method == http.MethodHead || IsAdmin(r) || BearerToken(r) != "" {
			next.ServeHTTP(w, r)
			return
		}

		key := ResponseCacheKeyPrefix + r.URL.RequestURI()
		if data, err := rc.cache.Get(r.Context(), key); err == nil {
			var cr cachedResponse
			if json.Unmarshal(data, &cr) == nil {
				w.Header().Set("Content-Type", cr.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cr.Status)
				_, _ = w.Write(cr.Body)
				return
			}
		}

		rec := &bodyRecorder{statusRecorder: statusRecorder{ResponseWriter: w, status: http.StatusOK}}
		w.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(rec, r)

		if rec.status != http.StatusOK {
			return
		}
		data, err := json.Marshal(cachedResponse{
			Status:      rec.status,
			ContentType: w.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rc.cache.Set(r.Context(), key, data, rc.ttl); err != nil {
			slog.Warn("failed to store cached response", "key", key, "error", err)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

type bodyRecorder struct {
	statusRecorder
	body bytes.Buffer
}

func (b *bodyRecorder) Write(p []byte) (int, error) {
	b.body.Write(p)
	return b.statusRecorder.Write(p)
}
