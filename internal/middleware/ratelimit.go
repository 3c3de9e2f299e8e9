// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/olegiv/ozpolat-cms/internal/util"
)

// maxTrackedClients bounds the limiter map; it is reset when exceeded.
const maxTrackedClients = 10000

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()
	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[K]*rate.Limiter)
	}
	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	name  string
	cache *limiterCache[string]
}

// NewRateLimiter allows rps requests per second per client with the given
// burst. name appears in log lines.
func NewRateLimiter(name string, rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{name: name, cache: newLimiterCache[string](rps, burst)}
}

// Allow reports whether the client at ip may make another request.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.cache.get(ip).Allow()
}

// Middleware rejects excess API requests with a JSON 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := util.ClientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "limiter", rl.name, "ip", ip, "path", r.URL.Path)
			WriteAPIError(w, http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HTMLMiddleware rejects excess page requests with a plain-text 429.
func (rl *RateLimiter) HTMLMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := util.ClientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("rate limit exceeded", "limiter", rl.name, "ip", ip, "path", r.URL.Path)
			http.Error(w, "Çok fazla istek. Lütfen biraz sonra tekrar deneyin.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
