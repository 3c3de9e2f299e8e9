// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestTrustedHosts(t *testing.T) {
	got := TrustedHosts([]string{"https://admin.ozpolat.com.tr", "http://localhost:5173", "not a url", ""})
	want := []string{"admin.ozpolat.com.tr", "localhost:5173"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TrustedHosts() = %v, want %v", got, want)
	}
}

func TestCSRF(t *testing.T) {
	h := CSRF(CSRFConfig{
		AuthKey:        []byte("12345678901234567890123456789012"),
		TrustedOrigins: []string{"admin.example.com"},
	})(http.HandlerFunc(okHandler))

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{"non-browser client", http.MethodPost, nil, http.StatusOK},
		{"same origin", http.MethodPost, map[string]string{"Sec-Fetch-Site": "same-origin"}, http.StatusOK},
		{"cross site read", http.MethodGet, map[string]string{"Sec-Fetch-Site": "cross-site"}, http.StatusOK},
		{"cross site write", http.MethodPost, map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example"}, http.StatusForbidden},
		{"cross site with bearer", http.MethodPost, map[string]string{"Sec-Fetch-Site": "cross-site", "Origin": "https://evil.example", "Authorization": "Bearer x"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://site.example/api/projects", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
