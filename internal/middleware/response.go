// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for admin authentication,
// rate limiting, CSRF protection, security headers and response caching.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Error codes shared by middleware and API handlers.
const (
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeRateLimited  = "rate_limit_exceeded"
	CodeTimeout      = "timeout"
)

// APIError is the JSON body of every failed API request.
type APIError struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{Error: message, Code: code, Details: details})
}
