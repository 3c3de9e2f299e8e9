// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session manages the admin cookie session.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// CookieName is the name of the admin session cookie.
const CookieName = "oz_session"

const keyAdmin = "admin"

// Manager wraps an scs session manager with the admin login state.
type Manager struct {
	*scs.SessionManager
}

// New creates a session manager. Sessions are kept in the sessions table
// of db, or in memory when db is nil.
func New(db *sql.DB, lifetime time.Duration, isDev bool) *Manager {
	sm := scs.New()
	if db != nil {
		sm.Store = sqlite3store.New(db)
	} else {
		sm.Store = memstore.New()
	}

	if lifetime > 0 {
		sm.Lifetime = lifetime
	}
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// LogIn marks the session as admin. The token is renewed first.
func (m *Manager) LogIn(ctx context.Context) error {
	if err := m.RenewToken(ctx); err != nil {
		return err
	}
	m.Put(ctx, keyAdmin, true)
	return nil
}

// LogOut destroys the session.
func (m *Manager) LogOut(ctx context.Context) error {
	return m.Destroy(ctx)
}

// IsAdmin reports whether the session belongs to a logged-in admin.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	return m.GetBool(ctx, keyAdmin)
}
