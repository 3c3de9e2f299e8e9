// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// ListCareers handles GET /api/careers. Inactive postings are listed
// only for admins asking with all=true.
func (h *Handler) ListCareers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	careers, err := h.svc.Careers.List(r.Context(), service.CareerFilter{
		Type:            q.Get("type"),
		Department:      q.Get("department"),
		IncludeInactive: q.Get("all") == "true" && middleware.IsAdmin(r),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, careers)
}

// GetCareer handles GET /api/careers/{id}.
func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Careers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// CreateCareer handles POST /api/careers.
func (h *Handler) CreateCareer(w http.ResponseWriter, r *http.Request) {
	var in service.CareerInput
	if !decodeJSON(w, r, &in) {
		return
	}
	c, err := h.svc.Careers.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, c)
}

// UpdateCareer handles PUT /api/careers/{id}.
func (h *Handler) UpdateCareer(w http.ResponseWriter, r *http.Request) {
	var patch service.CareerPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	c, err := h.svc.Careers.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// DeleteCareer handles DELETE /api/careers/{id}.
func (h *Handler) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Careers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Career deleted")
}
