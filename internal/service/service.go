// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the content rules for every entity on top
// of the document store.
package service

import (
	"time"

	"github.com/olegiv/ozpolat-cms/internal/store"
)

// base carries what every entity service needs.
type base struct {
	store *store.Store
	now   func() time.Time
}

func (b base) timestamp() time.Time {
	return b.now().UTC().Truncate(time.Millisecond)
}

// Services groups the entity services.
type Services struct {
	Projects   *ProjectService
	News       *NewsService
	Careers    *CareerService
	Gallery    *GalleryService
	References *ReferenceService
	Contacts   *ContactService
	Settings   *SettingsService
	Uploads    *UploadService
}

// New builds every service on st. uploads may be nil when the caller
// never stores files.
func New(st *store.Store, uploads *UploadService) *Services {
	return NewWithClock(st, uploads, time.Now)
}

// NewWithClock is New with an explicit time source.
func NewWithClock(st *store.Store, uploads *UploadService, now func() time.Time) *Services {
	b := base{store: st, now: now}
	return &Services{
		Projects:   &ProjectService{base: b},
		News:       &NewsService{base: b},
		Careers:    &CareerService{base: b},
		Gallery:    &GalleryService{base: b},
		References: &ReferenceService{base: b},
		Contacts:   &ContactService{base: b},
		Settings:   &SettingsService{base: b},
		Uploads:    uploads,
	}
}

// setIf assigns *src to *dst when src is non-nil.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// indexOf returns the position of the first element whose id matches.
func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

// cloneStrings copies s, mapping nil to an empty slice.
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
