// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	url := os.Getenv("OZ_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: OZ_TEST_REDIS_URL not set")
	}
	return url
}

func TestRedisCache(t *testing.T) {
	url := skipIfNoRedis(t)

	c, err := NewRedisCacheFromURL(url, "oztest:", time.Minute)
	if err != nil {
		t.Fatalf("failed to create Redis cache: %v", err)
	}
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	_ = c.Clear(ctx)

	if err := c.Set(ctx, "api:/projects", []byte("[]"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Set(ctx, "page:/", []byte("<html>"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "api:/projects")
	if err != nil || string(got) != "[]" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := c.DeleteByPrefix(ctx, "api:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}
	if _, err := c.Get(ctx, "api:/projects"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
	if _, err := c.Get(ctx, "page:/"); err != nil {
		t.Errorf("page:/ should remain: %v", err)
	}

	if err := c.Ping(ctx); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestNewRedisCacheInvalidURL(t *testing.T) {
	if _, err := NewRedisCacheFromURL("not-a-url", "", 0); err == nil {
		t.Error("expected error for invalid URL")
	}
}
