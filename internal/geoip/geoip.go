// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves visitor IP addresses to ISO country codes using a
// MaxMind GeoLite2-Country database.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"

	"github.com/olegiv/ozpolat-cms/internal/util"
)

// Local is reported for loopback and private addresses.
const Local = "LOCAL"

// Lookup maps IPs to countries. A Lookup without a database still
// recognises local addresses and returns "" for everything else.
type Lookup struct {
	mu      sync.RWMutex
	db      *maxminddb.Reader
	path    string
	modTime time.Time
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path yields a Lookup that
// only detects local addresses.
func Open(path string) (*Lookup, error) {
	l := &Lookup{path: path}
	if path == "" {
		return l, nil
	}
	if err := l.load(); err != nil {
		return l, err
	}
	return l, nil
}

// load opens the database unless the file on disk is unchanged.
// Caller must hold mu for writing or own l exclusively.
func (l *Lookup) load() error {
	info, err := os.Stat(l.path)
	if err != nil {
		return fmt.Errorf("geoip database %s: %w", l.path, err)
	}
	if l.db != nil && info.ModTime().Equal(l.modTime) {
		return nil
	}

	db, err := maxminddb.Open(l.path)
	if err != nil {
		return fmt.Errorf("opening geoip database: %w", err)
	}
	if l.db != nil {
		_ = l.db.Close()
	}
	l.db = db
	l.modTime = info.ModTime()
	return nil
}

// Reload reopens the database when the file has been replaced.
func (l *Lookup) Reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path == "" {
		return nil
	}
	return l.load()
}

// Enabled reports whether a database is loaded.
func (l *Lookup) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Country returns the two-letter ISO code for ip, Local for private and
// reserved addresses, or "" when unknown.
func (l *Lookup) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if util.IsPrivateIP(parsed) {
		return Local
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.db == nil {
		return ""
	}

	var rec countryRecord
	if err := l.db.Lookup(parsed, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}

// Close releases the database.
func (l *Lookup) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
