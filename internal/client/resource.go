// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"net/http"
	"net/url"
)

// Success is the body of delete and other acknowledgement responses.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// resource implements the CRUD calls shared by every collection. T is
// the record type, In the create payload and P the partial update.
type resource[T, In, P any] struct {
	c    *Client
	path string
}

func (r resource[T, In, P]) list(ctx context.Context, query url.Values, authed bool) ([]T, error) {
	path := r.path
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	var out []T
	if err := r.c.doJSON(ctx, http.MethodGet, path, nil, authed, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by id.
func (r resource[T, In, P]) Get(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.c.doJSON(ctx, http.MethodGet, r.path+"/"+url.PathEscape(id), nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a record from a JSON payload.
func (r resource[T, In, P]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	if err := r.c.doJSON(ctx, http.MethodPost, r.path, in, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update changes the fields set in p.
func (r resource[T, In, P]) Update(ctx context.Context, id string, p P) (*T, error) {
	var out T
	if err := r.c.doJSON(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), p, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a record.
func (r resource[T, In, P]) Delete(ctx context.Context, id string) error {
	return r.c.doJSON(ctx, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, true, nil)
}

// CreateForm adds a record from a multipart form, for payloads with files.
func (r resource[T, In, P]) CreateForm(ctx context.Context, form *Form) (*T, error) {
	var out T
	if err := r.c.doForm(ctx, http.MethodPost, r.path, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateForm changes a record from a multipart form.
func (r resource[T, In, P]) UpdateForm(ctx context.Context, id string, form *Form) (*T, error) {
	var out T
	if err := r.c.doForm(ctx, http.MethodPut, r.path+"/"+url.PathEscape(id), form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
