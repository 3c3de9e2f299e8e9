// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-32-bytes-long!!!"

func requiredEnv(t *testing.T) {
	t.Helper()
	os.Clearenv()
	t.Setenv("OZ_SESSION_SECRET", testSecret)
	t.Setenv("OZ_ADMIN_PASSWORD", "admin123")
}

func TestLoad_Defaults(t *testing.T) {
	requiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.StoreDriver != StoreFile {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreFile)
	}
	if cfg.DataPath != "./data/db.json" {
		t.Errorf("DataPath = %q, want %q", cfg.DataPath, "./data/db.json")
	}
	if cfg.ServerPort != 5000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 5000)
	}
	if cfg.SessionLifetime != 7*24*time.Hour {
		t.Errorf("SessionLifetime = %v, want 168h", cfg.SessionLifetime)
	}
	if cfg.MaxUploadSize != 50<<20 {
		t.Errorf("MaxUploadSize = %d, want %d", cfg.MaxUploadSize, 50<<20)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true, want false")
	}
	if !cfg.Seed {
		t.Error("Seed = false, want true")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	requiredEnv(t)
	t.Setenv("OZ_SERVER_HOST", "0.0.0.0")
	t.Setenv("OZ_SERVER_PORT", "3000")
	t.Setenv("OZ_ENV", "production")
	t.Setenv("OZ_STORE_DRIVER", "sqlite")
	t.Setenv("OZ_DATA_PATH", "/var/lib/oz/site.db")
	t.Setenv("OZ_TRUSTED_ORIGINS", "https://admin.example.com,https://example.com")
	t.Setenv("OZ_SITE_URL", "https://example.com/")
	t.Setenv("OZ_CACHE_TYPE", "redis")
	t.Setenv("OZ_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("OZ_STORE_SEED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerAddr() != "0.0.0.0:3000" {
		t.Errorf("ServerAddr() = %q", cfg.ServerAddr())
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if cfg.StoreDriver != StoreSQLite || cfg.DataPath != "/var/lib/oz/site.db" {
		t.Errorf("store = %q %q", cfg.StoreDriver, cfg.DataPath)
	}
	if len(cfg.TrustedOrigins) != 2 || cfg.TrustedOrigins[0] != "https://admin.example.com" {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
	if cfg.SiteURL != "https://example.com" {
		t.Errorf("SiteURL = %q, want trailing slash trimmed", cfg.SiteURL)
	}
	if !cfg.UseRedisCache() {
		t.Error("UseRedisCache() = false, want true")
	}
	if cfg.Seed {
		t.Error("Seed = true, want OZ_STORE_SEED=false honored")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"short secret", map[string]string{"OZ_SESSION_SECRET": "short"}, "at least 32 bytes"},
		{"weak secret in production", map[string]string{
			"OZ_ENV": "production", "OZ_SESSION_SECRET": "change-me-to-32-byte-secret-key!",
		}, "known default"},
		{"unknown driver", map[string]string{"OZ_STORE_DRIVER": "postgres"}, "OZ_STORE_DRIVER"},
		{"mongo without uri", map[string]string{"OZ_STORE_DRIVER": "mongo"}, "OZ_MONGO_URI"},
		{"redis without url", map[string]string{"OZ_CACHE_TYPE": "redis"}, "OZ_REDIS_URL"},
		{"unknown cache", map[string]string{"OZ_CACHE_TYPE": "memcached"}, "OZ_CACHE_TYPE"},
		{"zero upload files", map[string]string{"OZ_MAX_UPLOAD_FILES": "0"}, "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Clearenv()
	t.Setenv("OZ_SESSION_SECRET", testSecret)
	if _, err := Load(); err == nil {
		t.Error("Load() without OZ_ADMIN_PASSWORD should fail")
	}
}

func TestLoadDotEnv(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), ".env")
	content := "OZ_ADMIN_PASSWORD=from-file\nOZ_SESSION_SECRET=" + testSecret + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OZ_ADMIN_PASSWORD", "from-env")

	LoadDotEnv(path)

	if got := os.Getenv("OZ_ADMIN_PASSWORD"); got != "from-env" {
		t.Errorf("OZ_ADMIN_PASSWORD = %q, existing env must win", got)
	}
	if got := os.Getenv("OZ_SESSION_SECRET"); got != testSecret {
		t.Errorf("OZ_SESSION_SECRET = %q, want value from file", got)
	}
	os.Unsetenv("OZ_SESSION_SECRET")
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"abcABC123abcABC123abcABC123abcAB", true},
		{"abc-def-ghi-jkl-mno-pqr-stu-vwx!", false},
	}
	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
