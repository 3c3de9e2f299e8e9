// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http/httptest"
	"testing"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		private bool
	}{
		{"loopback", "127.0.0.1", true},
		{"10.x.x.x", "10.0.0.1", true},
		{"172.16.x.x", "172.16.0.1", true},
		{"192.168.x.x", "192.168.1.1", true},
		{"link-local", "169.254.1.1", true},
		{"CGNAT", "100.64.0.1", true},
		{"documentation", "203.0.113.1", true},
		{"ipv6 loopback", "::1", true},
		{"ipv6 ula", "fd00::1", true},
		{"public cloudflare", "1.1.1.1", false},
		{"public turkish isp", "78.160.0.1", false},
		{"172.15.x.x public", "172.15.255.255", false},
		{"public ipv6", "2606:4700::1111", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.private {
				t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
			}
		})
	}

	if !IsPrivateIP(nil) {
		t.Error("IsPrivateIP(nil) should be true")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "203.0.113.9:5555", "203.0.113.9"},
		{"remote without port", nil, "203.0.113.9", "203.0.113.9"},
		{"real ip wins", map[string]string{"X-Real-IP": "1.2.3.4", "X-Forwarded-For": "5.6.7.8"}, "10.0.0.1:1", "1.2.3.4"},
		{"first forwarded", map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.2"}, "10.0.0.1:1", "5.6.7.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
