// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/service"
)

// maxMultipartMemory is kept in memory before parts spill to disk.
const maxMultipartMemory = 32 << 20

// multipartOverhead is allowed on top of the file size limits.
const multipartOverhead = 1 << 20

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseMultipart parses a multipart body bounded by the upload limits.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	limits := h.svc.Uploads.Limits()
	maxBody := limits.MaxFileSize*int64(limits.MaxFiles) + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, r, err)
			return false
		}
		writeBadRequest(w, "Invalid multipart form")
		return false
	}
	return true
}

func fieldError(field, msg string) error {
	return &service.ValidationError{Fields: map[string]string{field: msg}}
}

// formString returns a pointer to the field's value, or nil when absent.
func formString(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func formValue(r *http.Request, key string) string {
	if v := formString(r, key); v != nil {
		return *v
	}
	return ""
}

func formStrings(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.Value[key]
}

func formBool(r *http.Request, key string) (*bool, error) {
	v := formString(r, key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(*v))
	if err != nil {
		return nil, fieldError(key, "must be true or false")
	}
	return &b, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	v := formString(r, key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*v))
	if err != nil {
		return nil, fieldError(key, "must be a whole number")
	}
	return &n, nil
}

// formJSON decodes a field carrying a JSON document. It reports whether
// the field was present.
func formJSON(r *http.Request, key string, dst any) (bool, error) {
	v := formString(r, key)
	if v == nil || strings.TrimSpace(*v) == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(*v), dst); err != nil {
		return false, fieldError(key, "must be valid JSON")
	}
	return true, nil
}

func formFiles(r *http.Request, key string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[key]
}

func formFile(r *http.Request, key string) *multipart.FileHeader {
	if files := formFiles(r, key); len(files) > 0 {
		return files[0]
	}
	return nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) (*bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fieldError(key, "must be true or false")
	}
	return &b, nil
}
