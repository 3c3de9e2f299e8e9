// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const entityReference = "Reference"

// ReferenceService manages client and partner logos.
type ReferenceService struct {
	base
}

// ReferenceInput is the payload for creating a reference. A nil Order
// places the reference after the current last one.
type ReferenceInput struct {
	Name        string `json:"name" validate:"notblank,max=200"`
	Logo        string `json:"logo" validate:"notblank"`
	Website     string `json:"website" validate:"omitempty,url"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
	IsActive    *bool  `json:"isActive"`
}

// ReferencePatch changes only the non-nil fields.
type ReferencePatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=200"`
	Logo        *string `json:"logo" validate:"omitempty,notblank"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// OrderUpdate moves one reference to a new sort position.
type OrderUpdate struct {
	ID    string `json:"id" validate:"notblank"`
	Order int    `json:"order"`
}

// List returns references sorted by order. Inactive ones are included
// only when all is true.
func (s *ReferenceService) List(ctx context.Context, all bool) ([]model.Reference, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Reference, 0, len(doc.References))
	for _, r := range doc.References {
		if !all && !r.IsActive {
			continue
		}
		out = append(out, r)
	}
	model.SortReferences(out)
	return out, nil
}

// Get returns one reference.
func (s *ReferenceService) Get(ctx context.Context, id string) (*model.Reference, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.References, id, referenceID)
	if i < 0 {
		return nil, notFound(entityReference, id)
	}
	r := doc.References[i]
	return &r, nil
}

// Create validates in and appends a reference.
func (s *ReferenceService) Create(ctx context.Context, in ReferenceInput) (*model.Reference, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return nil, err
	}

	var created model.Reference
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.timestamp()
		order := nextOrder(doc.References)
		if in.Order != nil {
			order = *in.Order
		}
		created = model.Reference{
			ID: store.GenerateID(func(id string) bool {
				return indexOf(doc.References, id, referenceID) >= 0
			}),
			Name:        in.Name,
			Logo:        in.Logo,
			Website:     in.Website,
			Description: in.Description,
			Order:       order,
			IsActive:    in.IsActive == nil || *in.IsActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		doc.References = append(doc.References, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges p into the reference.
func (s *ReferenceService) Update(ctx context.Context, id string, p ReferencePatch) (*model.Reference, error) {
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.Reference
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.References, id, referenceID)
		if i < 0 {
			return notFound(entityReference, id)
		}
		cur := doc.References[i]
		setIf(&cur.Name, p.Name)
		setIf(&cur.Logo, p.Logo)
		setIf(&cur.Website, p.Website)
		setIf(&cur.Description, p.Description)
		setIf(&cur.Order, p.Order)
		setIf(&cur.IsActive, p.IsActive)
		cur.UpdatedAt = s.timestamp()

		doc.References[i] = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Reorder applies every order update in one write. If any id is unknown
// nothing is changed.
func (s *ReferenceService) Reorder(ctx context.Context, orders []OrderUpdate) error {
	if len(orders) == 0 {
		return invalid("orders", "must contain at least one entry")
	}
	for _, o := range orders {
		if err := check(o); err != nil {
			return err
		}
	}

	return s.store.Update(ctx, func(doc *model.Document) error {
		idx := make([]int, len(orders))
		for k, o := range orders {
			i := indexOf(doc.References, o.ID, referenceID)
			if i < 0 {
				return notFound(entityReference, o.ID)
			}
			idx[k] = i
		}
		now := s.timestamp()
		for k, o := range orders {
			doc.References[idx[k]].Order = o.Order
			doc.References[idx[k]].UpdatedAt = now
		}
		return nil
	})
}

// Delete removes the reference.
func (s *ReferenceService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.References, id, referenceID)
		if i < 0 {
			return notFound(entityReference, id)
		}
		doc.References = append(doc.References[:i], doc.References[i+1:]...)
		return nil
	})
}

func nextOrder(refs []model.Reference) int {
	if len(refs) == 0 {
		return 0
	}
	top := refs[0].Order
	for _, r := range refs[1:] {
		if r.Order > top {
			top = r.Order
		}
	}
	return top + 1
}

func referenceID(r model.Reference) string { return r.ID }
