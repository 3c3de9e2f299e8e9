// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store persists the site document. A Backend owns the storage
// medium; Store is the facade the services talk to.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/util"
)

// Store errors.
var (
	// ErrUnavailable reports that the document could not be read or written.
	ErrUnavailable = errors.New("store unavailable")
	// ErrNotFound reports that a record is absent from its collection.
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports that another writer committed first.
	ErrConflict = errors.New("concurrent write conflict")
)

// Backend is a storage medium for the site document.
//
// Transact loads the document, hands it to fn and persists the result
// only when fn returns nil. Errors from fn are returned unchanged.
type Backend interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	Transact(ctx context.Context, fn func(doc *model.Document) error) error
	Ping(ctx context.Context) error
	Close() error
}

// Store is the document facade used by the services.
type Store struct {
	backend Backend
}

// New wraps a backend.
func New(b Backend) *Store {
	return &Store{backend: b}
}

// Read loads the whole document.
func (s *Store) Read(ctx context.Context) (*model.Document, error) {
	return s.backend.Load(ctx)
}

// Write replaces the whole document.
func (s *Store) Write(ctx context.Context, doc *model.Document) error {
	doc.Normalize()
	return s.backend.Save(ctx, doc)
}

// Update runs a read-modify-write cycle inside one backend transaction.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	return s.backend.Transact(ctx, func(doc *model.Document) error {
		if err := fn(doc); err != nil {
			return err
		}
		doc.Normalize()
		return nil
	})
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// GenerateID returns a random UUIDv4 string. taken may be nil; when set,
// ids it reports as used are regenerated.
func GenerateID(taken func(string) bool) string {
	for {
		id := uuid.NewString()
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// GenerateSlug derives a URL slug from a title.
func GenerateSlug(title string) string {
	return util.Slugify(title)
}

// unavailable wraps err so it matches ErrUnavailable.
func unavailable(op string, err error) error {
	return &opError{op: op, err: err}
}

type opError struct {
	op  string
	err error
}

func (e *opError) Error() string {
	return "store: " + e.op + ": " + e.err.Error()
}

func (e *opError) Unwrap() []error {
	return []error{ErrUnavailable, e.err}
}
