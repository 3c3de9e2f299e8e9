// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/ozpolat-cms/internal/service"
)

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// MultiUploadResponse is returned by POST /api/upload/multiple.
type MultiUploadResponse struct {
	Success bool                 `json:"success"`
	Files   []service.StoredFile `json:"files"`
}

// Upload handles POST /api/upload with "file" and "folder" fields.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	fh := formFile(r, "file")
	if fh == nil {
		h.writeError(w, r, fieldError("file", "is required"))
		return
	}

	sf, err := h.svc.Uploads.Save(formValue(r, "folder"), fh)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, UploadResponse{Success: true, URL: sf.URL, Filename: sf.Filename})
}

// UploadMultiple handles POST /api/upload/multiple with "files" and
// "folder" fields. Nothing is written unless every file is accepted.
func (h *Handler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	files := formFiles(r, "files")
	if len(files) == 0 {
		h.writeError(w, r, fieldError("files", "is required"))
		return
	}

	stored, err := h.svc.Uploads.SaveAll(formValue(r, "folder"), files)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, MultiUploadResponse{Success: true, Files: stored})
}
