// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// ReorderRequest is the body of PUT /api/references/reorder.
type ReorderRequest struct {
	Orders []service.OrderUpdate `json:"orders"`
}

// ListReferences handles GET /api/references.
func (h *Handler) ListReferences(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true" && middleware.IsAdmin(r)
	refs, err := h.svc.References.List(r.Context(), all)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, refs)
}

// GetReference handles GET /api/references/{id}.
func (h *Handler) GetReference(w http.ResponseWriter, r *http.Request) {
	ref, err := h.svc.References.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ref)
}

// CreateReference handles POST /api/references with JSON or a multipart
// form whose "logo" may be a file.
func (h *Handler) CreateReference(w http.ResponseWriter, r *http.Request) {
	var in service.ReferenceInput
	var logo *service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		order, err := formInt(r, "order")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		active, err := formBool(r, "isActive")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		in = service.ReferenceInput{
			Name:        formValue(r, "name"),
			Logo:        formValue(r, "logo"),
			Website:     formValue(r, "website"),
			Description: formValue(r, "description"),
			Order:       order,
			IsActive:    active,
		}
		if logo, err = h.saveOptional(r, "logo", model.FolderReferences); err != nil {
			h.writeError(w, r, err)
			return
		}
		if logo != nil {
			in.Logo = logo.URL
		}
	} else if !decodeJSON(w, r, &in) {
		return
	}

	ref, err := h.svc.References.Create(r.Context(), in)
	if err != nil {
		h.removeOptional(logo)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, ref)
}

// UpdateReference handles PUT /api/references/{id}.
func (h *Handler) UpdateReference(w http.ResponseWriter, r *http.Request) {
	var patch service.ReferencePatch
	var logo *service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		order, err := formInt(r, "order")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		active, err := formBool(r, "isActive")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		patch = service.ReferencePatch{
			Name:        formString(r, "name"),
			Logo:        formString(r, "logo"),
			Website:     formString(r, "website"),
			Description: formString(r, "description"),
			Order:       order,
			IsActive:    active,
		}
		if logo, err = h.saveOptional(r, "logo", model.FolderReferences); err != nil {
			h.writeError(w, r, err)
			return
		}
		if logo != nil {
			patch.Logo = &logo.URL
		}
	} else if !decodeJSON(w, r, &patch) {
		return
	}

	ref, err := h.svc.References.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.removeOptional(logo)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, ref)
}

// ReorderReferences handles PUT /api/references/reorder.
func (h *Handler) ReorderReferences(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.References.Reorder(r.Context(), req.Orders); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "")
}

// DeleteReference handles DELETE /api/references/{id}.
func (h *Handler) DeleteReference(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.References.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Reference deleted")
}
