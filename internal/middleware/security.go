// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS.
	IsDevelopment bool

	// ContentSecurityPolicy is sent on HTML responses only; JSON and
	// uploaded files do not need it.
	ContentSecurityPolicy string

	// HSTSMaxAge in seconds. Set to 0 to disable HSTS.
	HSTSMaxAge            int
	HSTSIncludeSubDomains bool

	FrameOptions      string
	ReferrerPolicy    string
	PermissionsPolicy string
}

// cspDirectives are emitted in this order.
var cspDirectives = [][2]string{
	{"default-src", "'self'"},
	{"script-src", "'self' 'unsafe-inline'"},
	{"style-src", "'self' 'unsafe-inline' https://fonts.googleapis.com"},
	{"img-src", "'self' data: blob: https:"},
	{"font-src", "'self' data: https://fonts.gstatic.com"},
	{"media-src", "'self' blob:"},
	{"frame-src", "https://www.google.com https://maps.google.com"},
	{"connect-src", "'self'"},
	{"object-src", "'none'"},
	{"base-uri", "'self'"},
	{"form-action", "'self'"},
}

// DefaultSecurityHeadersConfig returns the headers used by the public site.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	parts := make([]string, 0, len(cspDirectives))
	for _, d := range cspDirectives {
		parts = append(parts, d[0]+" "+d[1])
	}

	return SecurityHeadersConfig{
		IsDevelopment:         isDev,
		ContentSecurityPolicy: strings.Join(parts, "; "),
		HSTSMaxAge:            31536000, // 1 year
		HSTSIncludeSubDomains: !isDev,
		FrameOptions:          "SAMEORIGIN",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=(), payment=(), usb=(), browsing-topics=()",
	}
}

// SecurityHeaders adds security headers to every response.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	hsts := ""
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.ContentSecurityPolicy != "" && !strings.HasPrefix(r.URL.Path, "/api/") && !strings.HasPrefix(r.URL.Path, "/uploads/") {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}
