// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/store"
)

// ErrNotFound matches every NotFoundError.
var ErrNotFound = store.ErrNotFound

// NotFoundError reports a missing record of the named entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError lists invalid input fields and why they were rejected.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// UploadError rejects an upload before anything is persisted. Status is
// the HTTP status the rejection maps to.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

func errTooLarge(name string, limit int64) error {
	return &UploadError{
		Status:  http.StatusRequestEntityTooLarge,
		Message: fmt.Sprintf("file %q exceeds the maximum size of %d MB", name, limit/(1024*1024)),
	}
}

func errUnsupportedType(name, mime string) error {
	return &UploadError{
		Status:  http.StatusUnsupportedMediaType,
		Message: fmt.Sprintf("file %q has unsupported type %s", name, mime),
	}
}

func errUploadRequest(msg string) error {
	return &UploadError{Status: http.StatusBadRequest, Message: msg}
}
