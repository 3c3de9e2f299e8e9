// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const entityHeroSlide = "Hero slide"

// SettingsService reads and updates the settings singleton.
type SettingsService struct {
	base
}

// SocialMediaInput replaces the whole socialMedia object.
type SocialMediaInput struct {
	Facebook  string `json:"facebook" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	Linkedin  string `json:"linkedin" validate:"omitempty,url"`
	Twitter   string `json:"twitter" validate:"omitempty,url"`
}

// StatsInput replaces the whole stats object.
type StatsInput struct {
	Experience        int `json:"experience" validate:"gte=0"`
	OngoingProjects   int `json:"ongoingProjects" validate:"gte=0"`
	CompletedProjects int `json:"completedProjects" validate:"gte=0"`
}

// SettingsPatch changes only the non-nil fields. Nested objects are
// replaced wholesale, not merged field by field.
type SettingsPatch struct {
	CompanyName  *string           `json:"companyName" validate:"omitempty,notblank,max=200"`
	Phone        *string           `json:"phone" validate:"omitempty,max=50"`
	Email        *string           `json:"email" validate:"omitempty,email"`
	Address      *string           `json:"address"`
	WorkingHours *string           `json:"workingHours"`
	SocialMedia  *SocialMediaInput `json:"socialMedia"`
	Stats        *StatsInput       `json:"stats"`
	AboutText    *string           `json:"aboutText"`
	MissionText  *string           `json:"missionText"`
	VisionText   *string           `json:"visionText"`
	HeroSlides   *[]HeroSlideInput `json:"heroSlides" validate:"omitempty,dive"`
}

// HeroSlideInput is one slide in a create or replace request. ID is
// kept when replacing the list and generated when empty.
type HeroSlideInput struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"notblank,max=200"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CtaText     string `json:"ctaText"`
	CtaLink     string `json:"ctaLink"`
	Order       *int   `json:"order"`
}

// HeroSlidePatch changes only the non-nil fields of one slide.
type HeroSlidePatch struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=200"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	CtaText     *string `json:"ctaText"`
	CtaLink     *string `json:"ctaLink"`
	Order       *int    `json:"order"`
}

// Get returns the settings with hero slides sorted by order.
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return sortedSettings(doc.Settings), nil
}

// Update merges p into the settings.
func (s *SettingsService) Update(ctx context.Context, p SettingsPatch) (*model.Settings, error) {
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.Settings
	err := s.store.Update(ctx, func(doc *model.Document) error {
		cur := doc.Settings
		setIf(&cur.CompanyName, p.CompanyName)
		setIf(&cur.Phone, p.Phone)
		setIf(&cur.Email, p.Email)
		setIf(&cur.Address, p.Address)
		setIf(&cur.WorkingHours, p.WorkingHours)
		setIf(&cur.AboutText, p.AboutText)
		setIf(&cur.MissionText, p.MissionText)
		setIf(&cur.VisionText, p.VisionText)
		if p.SocialMedia != nil {
			cur.SocialMedia = model.SocialMedia(*p.SocialMedia)
		}
		if p.Stats != nil {
			cur.Stats = model.Stats(*p.Stats)
		}
		if p.HeroSlides != nil {
			cur.HeroSlides = buildSlides(*p.HeroSlides)
		}
		doc.Settings = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedSettings(updated), nil
}

// AddHeroSlide appends a slide. A nil Order places it last.
func (s *SettingsService) AddHeroSlide(ctx context.Context, in HeroSlideInput) (*model.Settings, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return nil, err
	}

	var updated model.Settings
	err := s.store.Update(ctx, func(doc *model.Document) error {
		slides := doc.Settings.HeroSlides
		order := 0
		for _, sl := range slides {
			if sl.Order >= order {
				order = sl.Order + 1
			}
		}
		if in.Order != nil {
			order = *in.Order
		}
		doc.Settings.HeroSlides = append(slides, model.HeroSlide{
			ID: store.GenerateID(func(id string) bool {
				return indexOf(slides, id, slideID) >= 0
			}),
			Title:       in.Title,
			Subtitle:    in.Subtitle,
			Description: in.Description,
			Image:       in.Image,
			CtaText:     in.CtaText,
			CtaLink:     in.CtaLink,
			Order:       order,
		})
		updated = doc.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedSettings(updated), nil
}

// UpdateHeroSlide merges p into the slide with the given id.
func (s *SettingsService) UpdateHeroSlide(ctx context.Context, id string, p HeroSlidePatch) (*model.Settings, error) {
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.Settings
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Settings.HeroSlides, id, slideID)
		if i < 0 {
			return notFound(entityHeroSlide, id)
		}
		cur := doc.Settings.HeroSlides[i]
		setIf(&cur.Title, p.Title)
		setIf(&cur.Subtitle, p.Subtitle)
		setIf(&cur.Description, p.Description)
		setIf(&cur.Image, p.Image)
		setIf(&cur.CtaText, p.CtaText)
		setIf(&cur.CtaLink, p.CtaLink)
		setIf(&cur.Order, p.Order)
		doc.Settings.HeroSlides[i] = cur
		updated = doc.Settings
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sortedSettings(updated), nil
}

// DeleteHeroSlide removes the slide with the given id.
func (s *SettingsService) DeleteHeroSlide(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		slides := doc.Settings.HeroSlides
		i := indexOf(slides, id, slideID)
		if i < 0 {
			return notFound(entityHeroSlide, id)
		}
		doc.Settings.HeroSlides = append(slides[:i], slides[i+1:]...)
		return nil
	})
}

// buildSlides turns a replacement list into slides, generating missing
// ids and defaulting order to the list position.
func buildSlides(in []HeroSlideInput) []model.HeroSlide {
	out := make([]model.HeroSlide, 0, len(in))
	for i, sl := range in {
		order := i
		if sl.Order != nil {
			order = *sl.Order
		}
		id := sl.ID
		if id == "" || indexOf(out, id, slideID) >= 0 {
			id = store.GenerateID(func(c string) bool { return indexOf(out, c, slideID) >= 0 })
		}
		out = append(out, model.HeroSlide{
			ID:          id,
			Title:       strings.TrimSpace(sl.Title),
			Subtitle:    sl.Subtitle,
			Description: sl.Description,
			Image:       sl.Image,
			CtaText:     sl.CtaText,
			CtaLink:     sl.CtaLink,
			Order:       order,
		})
	}
	return out
}

func sortedSettings(st model.Settings) *model.Settings {
	slides := make([]model.HeroSlide, len(st.HeroSlides))
	copy(slides, st.HeroSlides)
	model.SortHeroSlides(slides)
	st.HeroSlides = slides
	return &st
}

func slideID(s model.HeroSlide) string { return s.ID }
