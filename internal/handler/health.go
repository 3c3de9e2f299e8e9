// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the non-API endpoints: health, sitemap.xml and
// robots.txt.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/version"
)

// Health statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// checkTimeout bounds each dependency check.
const checkTimeout = 2 * time.Second

// minFreeSpace is the free space below which the disk check degrades.
const minFreeSpace = 100 * 1024 * 1024

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	store      Pinger
	cache      Pinger
	uploadsDir string
	startTime  time.Time
}

// NewHealthHandler creates a new health handler. cache may be nil.
func NewHealthHandler(store, cache Pinger, uploadsDir string) *HealthHandler {
	return &HealthHandler{
		store:      store,
		cache:      cache,
		uploadsDir: uploadsDir,
		startTime:  time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for anonymous callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed response shown to admins.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health. The store must be reachable for a 200;
// cache and disk problems only degrade the status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"store": h.ping(r.Context(), h.store),
		"disk":  h.checkDiskSpace(),
	}
	if h.cache != nil {
		checks["cache"] = h.ping(r.Context(), h.cache)
	}

	overall := StatusHealthy
	for name, c := range checks {
		switch {
		case c.Status == StatusUnhealthy && name == "store":
			overall = StatusUnhealthy
		case c.Status != StatusHealthy && overall == StatusHealthy:
			overall = StatusDegraded
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if overall == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if !middleware.IsAdmin(r) {
		_ = json.NewEncoder(w).Encode(HealthStatusPublic{Status: overall})
		return
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Version,
		Checks:    checks,
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = systemInfo()
	}
	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
}

func (h *HealthHandler) ping(ctx context.Context, p Pinger) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start).String()
	if err != nil {
		return Check{Status: StatusUnhealthy, Message: err.Error(), Latency: latency}
	}
	return Check{Status: StatusHealthy, Latency: latency}
}

// checkDiskSpace checks available disk space in the uploads directory.
func (h *HealthHandler) checkDiskSpace() Check {
	if _, err := os.Stat(h.uploadsDir); os.IsNotExist(err) {
		return Check{Status: StatusHealthy, Message: "Uploads directory does not exist yet"}
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(h.uploadsDir, &stat); err != nil {
		return Check{Status: StatusDegraded, Message: "Failed to check disk space: " + err.Error()}
	}

	available := stat.Bavail * uint64(stat.Bsize)
	if available < minFreeSpace {
		return Check{Status: StatusDegraded, Message: "Low disk space: " + formatBytes(available) + " available"}
	}
	return Check{Status: StatusHealthy, Message: formatBytes(available) + " available"}
}

func systemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
