// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"time"
)

// Cache backend types.
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Config selects and tunes a cache backend.
type Config struct {
	Type       string
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
	MaxSize    int
}

// New creates the cache described by cfg.
func New(cfg Config) (Cache, error) {
	switch cfg.Type {
	case "", TypeMemory:
		return NewMemoryCache(MemoryCacheOptions{
			DefaultTTL:      cfg.DefaultTTL,
			MaxSize:         cfg.MaxSize,
			CleanupInterval: time.Minute,
		}), nil
	case TypeRedis:
		return NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}
