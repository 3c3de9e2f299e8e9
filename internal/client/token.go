// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore keeps the admin bearer token between calls.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// MemoryTokenStore keeps the token for the life of the process.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore returns an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Token implements TokenStore.
func (s *MemoryTokenStore) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// SetToken implements TokenStore.
func (s *MemoryTokenStore) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// ClearToken implements TokenStore.
func (s *MemoryTokenStore) ClearToken() error {
	return s.SetToken("")
}

// FileTokenStore keeps the token in a file readable only by the owner,
// so CLI invocations can share a login.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore stores the token at path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// DefaultTokenPath is the token file under the user's config directory.
func DefaultTokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ozpolat", "token"), nil
}

// Token implements TokenStore. A missing file means no token.
func (s *FileTokenStore) Token() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SetToken implements TokenStore.
func (s *FileTokenStore) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// ClearToken implements TokenStore.
func (s *FileTokenStore) ClearToken() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
