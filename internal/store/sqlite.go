// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

// SQLiteBackend stores each collection as one JSON row of the
// collections table. Writes only touch rows whose body changed.
type SQLiteBackend struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteBackend returns a backend on a migrated database. The caller
// owns db and closes it.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db, now: time.Now}
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Load implements Backend.
func (b *SQLiteBackend) Load(ctx context.Context) (*model.Document, error) {
	doc, _, err := loadRows(ctx, b.db)
	return doc, err
}

// Save implements Backend.
func (b *SQLiteBackend) Save(ctx context.Context, doc *model.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.inTx(ctx, func(tx *sql.Tx) error {
		_, bodies, err := loadRows(ctx, tx)
		if err != nil {
			return err
		}
		return b.saveRows(ctx, tx, doc, bodies)
	})
}

// Transact implements Backend.
func (b *SQLiteBackend) Transact(ctx context.Context, fn func(doc *model.Document) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.inTx(ctx, func(tx *sql.Tx) error {
		doc, bodies, err := loadRows(ctx, tx)
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		return b.saveRows(ctx, tx, doc, bodies)
	})
}

// Ping implements Backend.
func (b *SQLiteBackend) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// Close implements Backend. The database handle is left open.
func (b *SQLiteBackend) Close() error {
	return nil
}

func (b *SQLiteBackend) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable("commit", err)
	}
	return nil
}

// collectionTargets maps collection names to the document fields they fill.
func collectionTargets(doc *model.Document) map[string]any {
	return map[string]any{
		model.CollectionProjects:   &doc.Projects,
		model.CollectionNews:       &doc.News,
		model.CollectionCareers:    &doc.Careers,
		model.CollectionGallery:    &doc.Gallery,
		model.CollectionReferences: &doc.References,
		model.CollectionContacts:   &doc.Contacts,
		model.CollectionSettings:   &doc.Settings,
	}
}

// loadRows reads every collection row. It also returns the raw bodies so
// a later save can skip unchanged collections.
func loadRows(ctx context.Context, q querier) (*model.Document, map[string]string, error) {
	rows, err := q.QueryContext(ctx, `SELECT name, body FROM collections`)
	if err != nil {
		return nil, nil, unavailable("query collections", err)
	}
	defer func() { _ = rows.Close() }()

	doc := model.NewDocument()
	targets := collectionTargets(doc)
	bodies := make(map[string]string, len(targets))

	for rows.Next() {
		var name, body string
		if err := rows.Scan(&name, &body); err != nil {
			return nil, nil, unavailable("scan collection", err)
		}
		target, ok := targets[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(body), target); err != nil {
			return nil, nil, unavailable(fmt.Sprintf("decode %s", name), err)
		}
		bodies[name] = body
	}
	if err := rows.Err(); err != nil {
		return nil, nil, unavailable("iterate collections", err)
	}

	doc.Normalize()
	return doc, bodies, nil
}

func (b *SQLiteBackend) saveRows(ctx context.Context, q querier, doc *model.Document, previous map[string]string) error {
	doc.Normalize()
	targets := collectionTargets(doc)
	now := b.now().UTC()

	for _, name := range model.Collections {
		body, err := json.Marshal(targets[name])
		if err != nil {
			return unavailable(fmt.Sprintf("encode %s", name), err)
		}
		if prev, ok := previous[name]; ok && prev == string(body) {
			continue
		}
		_, err = q.ExecContext(ctx,
			`INSERT INTO collections (name, body, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			name, string(body), now)
		if err != nil {
			return unavailable(fmt.Sprintf("write %s", name), err)
		}
	}
	return nil
}
