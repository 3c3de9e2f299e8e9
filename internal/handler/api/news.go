// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// ListNews handles GET /api/news.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.svc.News.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, news)
}

// GetNews handles GET /api/news/{id}; the id may also be a slug.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.News.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, n)
}

// CreateNews handles POST /api/news with JSON or a multipart form with an
// optional "image" file.
func (h *Handler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var in service.NewsInput
	var image *service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		in = service.NewsInput{
			Title:   formValue(r, "title"),
			Content: formValue(r, "content"),
			Excerpt: formValue(r, "excerpt"),
			Image:   formValue(r, "image"),
			Date:    formValue(r, "date"),
		}
		var err error
		if image, err = h.saveOptional(r, "image", model.FolderNews); err != nil {
			h.writeError(w, r, err)
			return
		}
		if image != nil {
			in.Image = image.URL
		}
	} else if !decodeJSON(w, r, &in) {
		return
	}

	n, err := h.svc.News.Create(r.Context(), in)
	if err != nil {
		h.removeOptional(image)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, n)
}

// UpdateNews handles PUT /api/news/{id}.
func (h *Handler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var patch service.NewsPatch
	var image *service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		patch = service.NewsPatch{
			Title:   formString(r, "title"),
			Content: formString(r, "content"),
			Excerpt: formString(r, "excerpt"),
			Image:   formString(r, "image"),
			Date:    formString(r, "date"),
		}
		var err error
		if image, err = h.saveOptional(r, "image", model.FolderNews); err != nil {
			h.writeError(w, r, err)
			return
		}
		if image != nil {
			patch.Image = &image.URL
		}
	} else if !decodeJSON(w, r, &patch) {
		return
	}

	n, err := h.svc.News.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.removeOptional(image)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, n)
}

// DeleteNews handles DELETE /api/news/{id}.
func (h *Handler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.News.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "News deleted")
}

// saveOptional stores the file in field key when one was sent.
func (h *Handler) saveOptional(r *http.Request, key, folder string) (*service.StoredFile, error) {
	fh := formFile(r, key)
	if fh == nil {
		return nil, nil
	}
	return h.svc.Uploads.Save(folder, fh)
}

func (h *Handler) removeOptional(f *service.StoredFile) {
	if f != nil {
		h.svc.Uploads.Remove(f.URL)
	}
}
