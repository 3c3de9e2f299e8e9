// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// GalleryUploadResponse is returned by the multi-file upload.
type GalleryUploadResponse struct {
	Success bool                `json:"success"`
	Items   []model.GalleryItem `json:"items"`
}

// BulkDeleteRequest is the body of DELETE /api/gallery/bulk.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// ListGallery handles GET /api/gallery.
func (h *Handler) ListGallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.Gallery.List(r.Context(), service.GalleryFilter{
		Type:     q.Get("type"),
		Category: q.Get("category"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// GetGalleryItem handles GET /api/gallery/{id}.
func (h *Handler) GetGalleryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Gallery.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// CreateGalleryItem handles POST /api/gallery for files uploaded earlier.
func (h *Handler) CreateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var in service.GalleryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if in.Type == "" {
		in.Type = string(model.GalleryImage)
	}
	item, err := h.svc.Gallery.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

// UploadGalleryItem handles POST /api/gallery/upload: one "file" plus
// alt, category and, for videos, a thumbnail file or URL.
func (h *Handler) UploadGalleryItem(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	fh := formFile(r, "file")
	if fh == nil {
		h.writeError(w, r, fieldError("file", "is required"))
		return
	}

	stored, err := h.svc.Uploads.Save(model.FolderGallery, fh)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	saved := []string{stored.URL}

	in := galleryInput(*stored, formValue(r, "alt"), formValue(r, "category"))
	in.Thumbnail = formValue(r, "thumbnail")
	if thumb := formFile(r, "thumbnail"); thumb != nil {
		t, err := h.svc.Uploads.Save(model.FolderGallery, thumb)
		if err != nil {
			h.svc.Uploads.Remove(saved...)
			h.writeError(w, r, err)
			return
		}
		in.Thumbnail = t.URL
		saved = append(saved, t.URL)
	}

	item, err := h.svc.Gallery.Create(r.Context(), in)
	if err != nil {
		h.svc.Uploads.Remove(saved...)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

// UploadGalleryItems handles POST /api/gallery/upload/multiple. Every
// file is checked before any is written, and all items are added in one
// store write.
func (h *Handler) UploadGalleryItems(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	files := formFiles(r, "files")
	if len(files) == 0 {
		h.writeError(w, r, fieldError("files", "is required"))
		return
	}

	stored, err := h.svc.Uploads.SaveAll(model.FolderGallery, files)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	category := formValue(r, "category")
	inputs := make([]service.GalleryInput, len(stored))
	for i, sf := range stored {
		inputs[i] = galleryInput(sf, "", category)
	}

	items, err := h.svc.Gallery.CreateMany(r.Context(), inputs)
	if err != nil {
		h.svc.Uploads.Remove(service.URLs(stored)...)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, GalleryUploadResponse{Success: true, Items: items})
}

// UpdateGalleryItem handles PUT /api/gallery/{id}.
func (h *Handler) UpdateGalleryItem(w http.ResponseWriter, r *http.Request) {
	var patch service.GalleryPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	item, err := h.svc.Gallery.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// DeleteGalleryItem handles DELETE /api/gallery/{id}.
func (h *Handler) DeleteGalleryItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Gallery item deleted")
}

// BulkDeleteGallery handles DELETE /api/gallery/bulk.
func (h *Handler) BulkDeleteGallery(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Gallery.BulkDelete(r.Context(), req.IDs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func galleryInput(sf service.StoredFile, alt, category string) service.GalleryInput {
	typ := model.GalleryImage
	if model.IsVideoMime(sf.MimeType) {
		typ = model.GalleryVideo
	}
	return service.GalleryInput{
		URL:      sf.URL,
		Alt:      alt,
		Category: category,
		Type:     string(typ),
	}
}
