// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

// FileBackend keeps the document as one JSON file. Every operation holds
// a mutex, and writes replace the file via temp file + rename.
type FileBackend struct {
	path string
	seed bool
	mu   sync.Mutex
}

// NewFileBackend returns a backend for the JSON file at path. When seed is
// true a missing file reads as an empty document with default settings.
func NewFileBackend(path string, seed bool) *FileBackend {
	return &FileBackend{path: path, seed: seed}
}

// Path returns the document location.
func (b *FileBackend) Path() string {
	return b.path
}

// Load implements Backend.
func (b *FileBackend) Load(_ context.Context) (*model.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load()
}

// Save implements Backend.
func (b *FileBackend) Save(_ context.Context, doc *model.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save(doc)
}

// Transact implements Backend.
func (b *FileBackend) Transact(ctx context.Context, fn func(doc *model.Document) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := b.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return b.save(doc)
}

// Ping implements Backend.
func (b *FileBackend) Ping(_ context.Context) error {
	_, err := os.Stat(b.path)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && b.seed {
		if _, dirErr := os.Stat(filepath.Dir(b.path)); dirErr != nil {
			return unavailable("stat directory", dirErr)
		}
		return nil
	}
	return unavailable("stat", err)
}

// Close implements Backend.
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) load() (*model.Document, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && b.seed {
			return model.NewDocument(), nil
		}
		return nil, unavailable("read", err)
	}

	doc := &model.Document{Settings: model.DefaultSettings()}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, unavailable("decode", err)
	}
	doc.Normalize()
	return doc, nil
}

func (b *FileBackend) save(doc *model.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return unavailable("encode", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return unavailable("create directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return unavailable("create temp file", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return unavailable("write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return unavailable("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("close temp file", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return unavailable("chmod temp file", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return unavailable(fmt.Sprintf("rename to %s", b.path), err)
	}
	committed = true
	return nil
}
