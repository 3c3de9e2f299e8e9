// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.svc.Projects.List(r.Context(), service.ProjectFilter{
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{id}.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// CreateProject handles POST /api/projects with a JSON body or a
// multipart form carrying an "image" file and repeated "gallery" files.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	var stored []service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		in = service.ProjectInput{
			Title:       formValue(r, "title"),
			Description: formValue(r, "description"),
			Category:    formValue(r, "category"),
			Image:       formValue(r, "image"),
			Location:    formValue(r, "location"),
			Year:        formValue(r, "year"),
			Details:     formValue(r, "details"),
			Gallery:     append([]string{}, formStrings(r, "galleryUrls")...),
		}

		image, gallery, err := h.saveProjectFiles(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if image != nil {
			in.Image = image.URL
			stored = append(stored, *image)
		}
		in.Gallery = append(in.Gallery, service.URLs(gallery)...)
		stored = append(stored, gallery...)
	} else if !decodeJSON(w, r, &in) {
		return
	}

	p, err := h.svc.Projects.Create(r.Context(), in)
	if err != nil {
		h.svc.Uploads.Remove(service.URLs(stored)...)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// UpdateProject handles PUT /api/projects/{id}. Multipart gallery files
// are appended unless replaceGallery is true.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch service.ProjectPatch
	var stored []service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		replace, err := formBool(r, "replaceGallery")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		patch = service.ProjectPatch{
			Title:       formString(r, "title"),
			Description: formString(r, "description"),
			Category:    formString(r, "category"),
			Image:       formString(r, "image"),
			Location:    formString(r, "location"),
			Year:        formString(r, "year"),
			Details:     formString(r, "details"),
		}

		image, gallery, err := h.saveProjectFiles(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if image != nil {
			patch.Image = &image.URL
			stored = append(stored, *image)
		}
		stored = append(stored, gallery...)

		urls := append([]string{}, formStrings(r, "galleryUrls")...)
		urls = append(urls, service.URLs(gallery)...)
		if replace != nil && *replace {
			patch.Gallery = &urls
		} else {
			patch.AppendGallery = urls
		}
	} else if !decodeJSON(w, r, &patch) {
		return
	}

	p, err := h.svc.Projects.Update(r.Context(), id, patch)
	if err != nil {
		h.svc.Uploads.Remove(service.URLs(stored)...)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// DeleteProject handles DELETE /api/projects/{id}.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Project deleted")
}

// saveProjectFiles stores the optional cover image and gallery files.
func (h *Handler) saveProjectFiles(r *http.Request) (*service.StoredFile, []service.StoredFile, error) {
	var image *service.StoredFile
	if fh := formFile(r, "image"); fh != nil {
		sf, err := h.svc.Uploads.Save(model.FolderProjects, fh)
		if err != nil {
			return nil, nil, err
		}
		image = sf
	}

	files := formFiles(r, "gallery")
	if len(files) == 0 {
		return image, nil, nil
	}
	gallery, err := h.svc.Uploads.SaveAll(model.FolderProjects, files)
	if err != nil {
		if image != nil {
			h.svc.Uploads.Remove(image.URL)
		}
		return nil, nil, err
	}
	return image, gallery, nil
}
