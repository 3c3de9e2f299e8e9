// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/client"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	if err := run(t.Context(), []string{"version"}, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "ozpolatctl ") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHashPassword(t *testing.T) {
	var out bytes.Buffer
	if err := run(t.Context(), []string{"hash-password"}, strings.NewReader("iskele\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	ok, err := auth.CheckPassword("iskele", strings.TrimSpace(out.String()))
	if err != nil || !ok {
		t.Fatalf("CheckPassword on printed hash = %v, %v", ok, err)
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if err := run(t.Context(), []string{"hash-password"}, strings.NewReader("\n"), &bytes.Buffer{}); err == nil {
		t.Fatal("empty password accepted")
	}
}

func TestUnknownCommand(t *testing.T) {
	err := run(t.Context(), []string{"-api", "http://localhost:1", "frobnicate"}, nil, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "frobnicate") {
		t.Fatalf("error = %v", err)
	}
}

func TestUnreadUsesStoredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer stored" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"Unauthorized"}`))
			return
		}
		_, _ = w.Write([]byte(`{"count":4}`))
	}))
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	args := []string{"-api", srv.URL, "-token-file", tokenFile, "unread"}

	if err := run(t.Context(), args, nil, &bytes.Buffer{}); err == nil {
		t.Fatal("unread without token succeeded")
	}

	if err := client.NewFileTokenStore(tokenFile).SetToken("stored"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	var out bytes.Buffer
	if err := run(t.Context(), args, nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "4" {
		t.Errorf("output = %q, want 4", out.String())
	}
}
