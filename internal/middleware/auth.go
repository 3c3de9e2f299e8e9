// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin holds the Principal of an authenticated admin.
const ContextKeyAdmin ContextKey = "admin"

// Authentication sources.
const (
	SourceToken   = "token"
	SourceSession = "session"
)

// Principal describes how the current admin authenticated.
type Principal struct {
	ID     string
	Role   string
	Source string
}

// AdminAuth recognises admins by bearer token or cookie session.
type AdminAuth struct {
	auth     *auth.Authenticator
	sessions *session.Manager
}

// NewAdminAuth returns the admin gate. sessions may be nil when cookie
// sessions are disabled.
func NewAdminAuth(a *auth.Authenticator, sessions *session.Manager) *AdminAuth {
	return &AdminAuth{auth: a, sessions: sessions}
}

// Detect adds the admin Principal to the context when the request carries
// valid credentials. Anonymous requests pass through unchanged.
func (a *AdminAuth) Detect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := a.authenticate(r); p != nil {
			r = r.WithContext(context.WithValue(r.Context(), ContextKeyAdmin, p))
		}
		next.ServeHTTP(w, r)
	})
}

// Require rejects requests without admin credentials with 401.
func (a *AdminAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := GetAdmin(r)
		if p == nil {
			p = a.authenticate(r)
		}
		if p == nil {
			WriteAPIError(w, http.StatusUnauthorized, CodeUnauthorized, "Authentication required", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ContextKeyAdmin, p)))
	})
}

func (a *AdminAuth) authenticate(r *http.Request) *Principal {
	if token := BearerToken(r); token != "" {
		claims, err := a.auth.Verify(token)
		if err != nil {
			return nil
		}
		return &Principal{ID: claims.Subject, Role: claims.Role, Source: SourceToken}
	}
	if a.sessions != nil && a.sessions.IsAdmin(r.Context()) {
		return &Principal{ID: auth.AdminSubject, Role: auth.RoleAdmin, Source: SourceSession}
	}
	return nil
}

// GetAdmin returns the authenticated admin, or nil.
func GetAdmin(r *http.Request) *Principal {
	p, _ := r.Context().Value(ContextKeyAdmin).(*Principal)
	return p
}

// IsAdmin reports whether the request was made by an authenticated admin.
func IsAdmin(r *http.Request) bool {
	return GetAdmin(r) != nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
