// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const entityCareer = "Career"

// CareerService manages job postings.
type CareerService struct {
	base
}

// CareerFilter narrows List. Inactive postings are hidden unless
// IncludeInactive is set.
type CareerFilter struct {
	Type            string
	Department      string
	IncludeInactive bool
}

// CareerInput is the payload for creating a posting.
type CareerInput struct {
	Title        string   `json:"title" validate:"notblank,max=200"`
	Department   string   `json:"department"`
	Location     string   `json:"location"`
	Type         string   `json:"type" validate:"career_type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	IsActive     *bool    `json:"isActive"`
}

// CareerPatch changes only the non-nil fields.
type CareerPatch struct {
	Title        *string   `json:"title" validate:"omitempty,notblank,max=200"`
	Department   *string   `json:"department"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type" validate:"omitempty,career_type"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
	IsActive     *bool     `json:"isActive"`
}

// List returns postings in insertion order.
func (s *CareerService) List(ctx context.Context, f CareerFilter) ([]model.Career, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	typ := model.CareerType("")
	if f.Type != "" {
		typ = model.NormalizeCareerType(f.Type)
	}

	out := make([]model.Career, 0, len(doc.Careers))
	for _, c := range doc.Careers {
		if !f.IncludeInactive && !c.IsActive {
			continue
		}
		if typ != "" && c.Type != typ {
			continue
		}
		if f.Department != "" && !strings.EqualFold(c.Department, f.Department) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Get returns one posting, active or not.
func (s *CareerService) Get(ctx context.Context, id string) (*model.Career, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Careers, id, careerID)
	if i < 0 {
		return nil, notFound(entityCareer, id)
	}
	c := doc.Careers[i]
	return &c, nil
}

// Create validates in and appends a posting. IsActive defaults to true.
func (s *CareerService) Create(ctx context.Context, in CareerInput) (*model.Career, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Type = string(model.NormalizeCareerType(in.Type))
	if err := check(in); err != nil {
		return nil, err
	}

	var created model.Career
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.timestamp()
		created = model.Career{
			ID: store.GenerateID(func(id string) bool {
				return indexOf(doc.Careers, id, careerID) >= 0
			}),
			Title:        in.Title,
			Department:   in.Department,
			Location:     in.Location,
			Type:         model.CareerType(in.Type),
			Description:  in.Description,
			Requirements: cloneStrings(in.Requirements),
			IsActive:     in.IsActive == nil || *in.IsActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		doc.Careers = append(doc.Careers, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges p into the posting.
func (s *CareerService) Update(ctx context.Context, id string, p CareerPatch) (*model.Career, error) {
	if p.Type != nil {
		t := string(model.NormalizeCareerType(*p.Type))
		p.Type = &t
	}
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.Career
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Careers, id, careerID)
		if i < 0 {
			return notFound(entityCareer, id)
		}
		cur := doc.Careers[i]

		setIf(&cur.Title, p.Title)
		setIf(&cur.Department, p.Department)
		setIf(&cur.Location, p.Location)
		if p.Type != nil {
			cur.Type = model.CareerType(*p.Type)
		}
		setIf(&cur.Description, p.Description)
		if p.Requirements != nil {
			cur.Requirements = cloneStrings(*p.Requirements)
		}
		setIf(&cur.IsActive, p.IsActive)
		cur.UpdatedAt = s.timestamp()

		doc.Careers[i] = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the posting.
func (s *CareerService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Careers, id, careerID)
		if i < 0 {
			return notFound(entityCareer, id)
		}
		doc.Careers = append(doc.Careers[:i], doc.Careers[i+1:]...)
		return nil
	})
}

func careerID(c model.Career) string { return c.ID }
