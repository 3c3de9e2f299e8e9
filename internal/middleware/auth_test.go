// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/session"
)

func newTestAdminAuth(t *testing.T) (*AdminAuth, *auth.Authenticator, *session.Manager) {
	t.Helper()
	a, err := auth.NewAuthenticator("pass", "0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	sm := session.New(nil, time.Hour, true)
	return NewAdminAuth(a, sm), a, sm
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequireRejectsAnonymous(t *testing.T) {
	gate, _, sm := newTestAdminAuth(t)
	h := sm.LoadAndSave(gate.Require(http.HandlerFunc(okHandler)))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	var body APIError
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Code != CodeUnauthorized {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestRequireAcceptsBearerToken(t *testing.T) {
	gate, a, sm := newTestAdminAuth(t)
	token, _, err := a.Issue()
	if err != nil {
		t.Fatal(err)
	}

	var got *Principal
	h := sm.LoadAndSave(gate.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAdmin(r)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got == nil || got.Source != SourceToken || got.Role != auth.RoleAdmin {
		t.Errorf("principal = %+v", got)
	}
}

func TestRequireRejectsBadToken(t *testing.T) {
	gate, _, sm := newTestAdminAuth(t)
	h := sm.LoadAndSave(gate.Require(http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodDelete, "/api/news/1", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestDetectWithSession(t *testing.T) {
	gate, _, sm := newTestAdminAuth(t)

	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := sm.LogIn(r.Context()); err != nil {
			t.Errorf("LogIn: %v", err)
		}
	}))
	rr := httptest.NewRecorder()
	login.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie")
	}

	var got *Principal
	h := sm.LoadAndSave(gate.Detect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetAdmin(r)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/careers", nil)
	req.AddCookie(cookies[0])
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got == nil || got.Source != SourceSession {
		t.Fatalf("principal = %+v, want session admin", got)
	}

	got = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/careers", nil))
	if got != nil {
		t.Errorf("anonymous request detected as admin: %+v", got)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := BearerToken(req); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
