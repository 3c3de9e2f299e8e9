// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Settings.Get(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

// UpdateSettings handles PUT /api/settings. Multipart forms carry
// socialMedia, stats and heroSlides as JSON strings; "heroImages" files
// fill the image of each slide that has none, in order.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch service.SettingsPatch
	var stored []service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		var err error
		if patch, stored, err = h.settingsPatchFromForm(r); err != nil {
			h.writeError(w, r, err)
			return
		}
	} else if !decodeJSON(w, r, &patch) {
		return
	}

	st, err := h.svc.Settings.Update(r.Context(), patch)
	if err != nil {
		h.svc.Uploads.Remove(service.URLs(stored)...)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) settingsPatchFromForm(r *http.Request) (service.SettingsPatch, []service.StoredFile, error) {
	patch := service.SettingsPatch{
		CompanyName:  formString(r, "companyName"),
		Phone:        formString(r, "phone"),
		Email:        formString(r, "email"),
		Address:      formString(r, "address"),
		WorkingHours: formString(r, "workingHours"),
		AboutText:    formString(r, "aboutText"),
		MissionText:  formString(r, "missionText"),
		VisionText:   formString(r, "visionText"),
	}

	var social service.SocialMediaInput
	if ok, err := formJSON(r, "socialMedia", &social); err != nil {
		return patch, nil, err
	} else if ok {
		patch.SocialMedia = &social
	}

	var stats service.StatsInput
	if ok, err := formJSON(r, "stats", &stats); err != nil {
		return patch, nil, err
	} else if ok {
		patch.Stats = &stats
	}

	var slides []service.HeroSlideInput
	ok, err := formJSON(r, "heroSlides", &slides)
	if err != nil {
		return patch, nil, err
	}
	if !ok {
		return patch, nil, nil
	}

	var stored []service.StoredFile
	if images := formFiles(r, "heroImages"); len(images) > 0 {
		if stored, err = h.svc.Uploads.SaveAll(model.FolderHero, images); err != nil {
			return patch, nil, err
		}
		next := 0
		for i := range slides {
			if next == len(stored) {
				break
			}
			if slides[i].Image == "" {
				slides[i].Image = stored[next].URL
				next++
			}
		}
	}
	patch.HeroSlides = &slides
	return patch, stored, nil
}

// AddHeroSlide handles POST /api/settings/hero-slide.
func (h *Handler) AddHeroSlide(w http.ResponseWriter, r *http.Request) {
	var in service.HeroSlideInput
	var image *service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		order, err := formInt(r, "order")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		in = service.HeroSlideInput{
			Title:       formValue(r, "title"),
			Subtitle:    formValue(r, "subtitle"),
			Description: formValue(r, "description"),
			Image:       formValue(r, "image"),
			CtaText:     formValue(r, "ctaText"),
			CtaLink:     formValue(r, "ctaLink"),
			Order:       order,
		}
		if image, err = h.saveOptional(r, "image", model.FolderHero); err != nil {
			h.writeError(w, r, err)
			return
		}
		if image != nil {
			in.Image = image.URL
		}
	} else if !decodeJSON(w, r, &in) {
		return
	}

	st, err := h.svc.Settings.AddHeroSlide(r.Context(), in)
	if err != nil {
		h.removeOptional(image)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, st)
}

// UpdateHeroSlide handles PUT /api/settings/hero-slide/{id}.
func (h *Handler) UpdateHeroSlide(w http.ResponseWriter, r *http.Request) {
	var patch service.HeroSlidePatch
	var image *service.StoredFile

	if isMultipart(r) {
		if !h.parseMultipart(w, r) {
			return
		}
		order, err := formInt(r, "order")
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		patch = service.HeroSlidePatch{
			Title:       formString(r, "title"),
			Subtitle:    formString(r, "subtitle"),
			Description: formString(r, "description"),
			Image:       formString(r, "image"),
			CtaText:     formString(r, "ctaText"),
			CtaLink:     formString(r, "ctaLink"),
			Order:       order,
		}
		if image, err = h.saveOptional(r, "image", model.FolderHero); err != nil {
			h.writeError(w, r, err)
			return
		}
		if image != nil {
			patch.Image = &image.URL
		}
	} else if !decodeJSON(w, r, &patch) {
		return
	}

	st, err := h.svc.Settings.UpdateHeroSlide(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.removeOptional(image)
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, st)
}

// DeleteHeroSlide handles DELETE /api/settings/hero-slide/{id}.
func (h *Handler) DeleteHeroSlide(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Settings.DeleteHeroSlide(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Hero slide deleted")
}
