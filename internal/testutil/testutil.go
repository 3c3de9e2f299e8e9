// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the site packages.
package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary SQLite database with migrations applied.
// It is closed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "ozpolat-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// FileStore returns a store on a JSON file in a temporary directory.
// seed fills a new file with the default content.
func FileStore(t *testing.T, seed bool) *store.Store {
	t.Helper()
	return store.New(store.NewFileBackend(filepath.Join(t.TempDir(), "db.json"), seed))
}

// SQLiteStore returns a store on a fresh TestDB, together with the
// database so callers can share it with the session store.
func SQLiteStore(t *testing.T) (*store.Store, *sql.DB) {
	t.Helper()
	db := TestDB(t)
	return store.New(store.NewSQLiteBackend(db)), db
}

// Services wires the content services over st with uploads in a
// temporary directory, which is returned.
func Services(t *testing.T, st *store.Store, limits service.UploadLimits) (*service.Services, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	uploads := service.NewUploadService(dir, limits, TestLoggerSilent())
	return service.New(st, uploads), dir
}
