// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// Job names.
const (
	JobSweepUploads = "sweep-uploads"
	JobBackup       = "backup"
	JobGeoIPReload  = "geoip-reload"
)

// DocumentReader reads the current site document.
type DocumentReader interface {
	Read(ctx context.Context) (*model.Document, error)
}

// OrphanSweeper removes upload files nothing references.
type OrphanSweeper interface {
	SweepOrphans(ctx context.Context, referenced map[string]bool, minAge time.Duration, dryRun bool) (*service.SweepResult, error)
}

// Reloader reopens a file-backed resource.
type Reloader interface {
	Reload() error
}

// SweepJob finds uploads no entity points to. Files younger than minAge
// are left alone so an upload is not swept before its entity is saved.
// Orphans are only logged unless remove is set.
func SweepJob(docs DocumentReader, uploads OrphanSweeper, minAge time.Duration, remove bool, logger *slog.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		doc, err := docs.Read(ctx)
		if err != nil {
			return fmt.Errorf("reading document: %w", err)
		}
		res, err := uploads.SweepOrphans(ctx, service.ReferencedUploads(doc), minAge, !remove)
		if err != nil {
			return err
		}
		if len(res.Orphans) > 0 {
			logger.Info("orphan uploads", "count", len(res.Orphans), "removed", res.Removed, "files", res.Orphans)
		}
		return nil
	}
}

// backupPrefix and backupLayout name backup files db-20060102-150405.json.
const (
	backupPrefix = "db-"
	backupLayout = "20060102-150405"
)

// Backup writes the document as indented JSON into dir and prunes all
// but the newest retain backups. A non-positive retain keeps everything.
func Backup(ctx context.Context, docs DocumentReader, dir string, retain int, now time.Time) (string, error) {
	doc, err := docs.Read(ctx)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding backup: %w", err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	name := filepath.Join(dir, backupPrefix+now.UTC().Format(backupLayout)+".json")
	tmp := name + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	if err := os.Rename(tmp, name); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("writing backup: %w", err)
	}

	if retain > 0 {
		if err := pruneBackups(dir, retain); err != nil {
			return name, err
		}
	}
	return name, nil
}

func pruneBackups(dir string, retain int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), backupPrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	// Timestamps sort lexically.
	sort.Strings(names)
	for len(names) > retain {
		if err := os.Remove(filepath.Join(dir, names[0])); err != nil {
			return fmt.Errorf("pruning backups: %w", err)
		}
		names = names[1:]
	}
	return nil
}

// BackupJob wraps Backup for the scheduler.
func BackupJob(docs DocumentReader, dir string, retain int, logger *slog.Logger) func(context.Context) error {
	return func(ctx context.Context) error {
		name, err := Backup(ctx, docs, dir, retain, time.Now())
		if err != nil {
			return err
		}
		logger.Info("document backed up", "file", name)
		return nil
	}
}

// ReloadJob reopens r, for example after the GeoIP database was updated
// on disk.
func ReloadJob(r Reloader) func(context.Context) error {
	return func(context.Context) error {
		return r.Reload()
	}
}
