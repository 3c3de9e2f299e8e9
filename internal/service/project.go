// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const entityProject = "Project"

// ProjectService manages portfolio projects.
type ProjectService struct {
	base
}

// ProjectFilter narrows List. Zero fields match everything.
type ProjectFilter struct {
	Category string
}

// ProjectInput is the payload for creating a project.
type ProjectInput struct {
	Title       string   `json:"title" validate:"notblank,max=200"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"project_category"`
	Image       string   `json:"image"`
	Location    string   `json:"location"`
	Year        string   `json:"year" validate:"max=20"`
	Details     string   `json:"details"`
	Gallery     []string `json:"gallery"`
}

// ProjectPatch changes only the non-nil fields. AppendGallery is added
// after Gallery is applied.
type ProjectPatch struct {
	Title         *string   `json:"title" validate:"omitempty,notblank,max=200"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category" validate:"omitempty,project_category"`
	Image         *string   `json:"image"`
	Location      *string   `json:"location"`
	Year          *string   `json:"year" validate:"omitempty,max=20"`
	Details       *string   `json:"details"`
	Gallery       *[]string `json:"gallery"`
	AppendGallery []string  `json:"-"`
}

// List returns projects in insertion order.
func (s *ProjectService) List(ctx context.Context, f ProjectFilter) ([]model.Project, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	category := model.ProjectCategory("")
	if f.Category != "" {
		category = model.NormalizeProjectCategory(f.Category)
	}

	out := make([]model.Project, 0, len(doc.Projects))
	for _, p := range doc.Projects {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Projects, id, projectID)
	if i < 0 {
		return nil, notFound(entityProject, id)
	}
	p := doc.Projects[i]
	return &p, nil
}

// Create validates in and appends a new project.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	in.Category = string(model.NormalizeProjectCategory(in.Category))
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return nil, err
	}

	var created model.Project
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.timestamp()
		created = model.Project{
			ID: store.GenerateID(func(id string) bool {
				return indexOf(doc.Projects, id, projectID) >= 0
			}),
			Title:       in.Title,
			Description: in.Description,
			Category:    model.ProjectCategory(in.Category),
			Image:       in.Image,
			Location:    in.Location,
			Year:        in.Year,
			Details:     in.Details,
			Gallery:     cloneStrings(in.Gallery),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if created.Image == "" {
			created.Image = model.DefaultProjectImage
		}
		doc.Projects = append(doc.Projects, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges p into the project with the given id.
func (s *ProjectService) Update(ctx context.Context, id string, p ProjectPatch) (*model.Project, error) {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return nil, invalid("title", "must not be blank")
		}
		p.Title = &t
	}
	if p.Category != nil {
		c := string(model.NormalizeProjectCategory(*p.Category))
		p.Category = &c
	}
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.Project
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Projects, id, projectID)
		if i < 0 {
			return notFound(entityProject, id)
		}
		cur := doc.Projects[i]

		setIf(&cur.Title, p.Title)
		setIf(&cur.Description, p.Description)
		if p.Category != nil {
			cur.Category = model.ProjectCategory(*p.Category)
		}
		setIf(&cur.Image, p.Image)
		setIf(&cur.Location, p.Location)
		setIf(&cur.Year, p.Year)
		setIf(&cur.Details, p.Details)
		if p.Gallery != nil {
			cur.Gallery = cloneStrings(*p.Gallery)
		}
		cur.Gallery = append(cur.Gallery, p.AppendGallery...)
		cur.UpdatedAt = s.timestamp()

		doc.Projects[i] = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the project. Its files stay on disk.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Projects, id, projectID)
		if i < 0 {
			return notFound(entityProject, id)
		}
		doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
		return nil
	})
}

func projectID(p model.Project) string { return p.ID }
