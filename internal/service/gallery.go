// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const entityGallery = "Gallery item"

// GalleryService manages gallery photos and videos.
type GalleryService struct {
	base
}

// GalleryFilter narrows List. Zero fields match everything.
type GalleryFilter struct {
	Type     string
	Category string
}

// GalleryInput is the payload for creating an item.
type GalleryInput struct {
	URL       string `json:"url" validate:"notblank"`
	Alt       string `json:"alt" validate:"max=300"`
	Category  string `json:"category" validate:"max=100"`
	Type      string `json:"type" validate:"gallery_type"`
	Thumbnail string `json:"thumbnail"`
}

// GalleryPatch changes only the non-nil fields.
type GalleryPatch struct {
	Alt       *string `json:"alt" validate:"omitempty,max=300"`
	Category  *string `json:"category" validate:"omitempty,max=100"`
	Thumbnail *string `json:"thumbnail"`
}

// BulkDeleteResult reports how many of the requested ids were removed.
type BulkDeleteResult struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

// List returns items in insertion order.
func (s *GalleryService) List(ctx context.Context, f GalleryFilter) ([]model.GalleryItem, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.GalleryItem, 0, len(doc.Gallery))
	for _, g := range doc.Gallery {
		if f.Type != "" && string(g.Type) != f.Type {
			continue
		}
		if f.Category != "" && g.Category != f.Category {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// Get returns one item.
func (s *GalleryService) Get(ctx context.Context, id string) (*model.GalleryItem, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Gallery, id, galleryID)
	if i < 0 {
		return nil, notFound(entityGallery, id)
	}
	g := doc.Gallery[i]
	return &g, nil
}

// Create appends one item.
func (s *GalleryService) Create(ctx context.Context, in GalleryInput) (*model.GalleryItem, error) {
	items, err := s.CreateMany(ctx, []GalleryInput{in})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// CreateMany validates every input and appends them all in one write.
// Nothing is stored if any input is invalid.
func (s *GalleryService) CreateMany(ctx context.Context, inputs []GalleryInput) ([]model.GalleryItem, error) {
	if len(inputs) == 0 {
		return nil, invalid("files", "is required")
	}
	for _, in := range inputs {
		if err := check(in); err != nil {
			return nil, err
		}
		if in.Thumbnail != "" && model.GalleryType(in.Type) != model.GalleryVideo {
			return nil, invalid("thumbnail", "is only allowed for videos")
		}
	}

	var created []model.GalleryItem
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.timestamp()
		created = make([]model.GalleryItem, 0, len(inputs))
		for _, in := range inputs {
			item := model.GalleryItem{
				ID: store.GenerateID(func(id string) bool {
					return indexOf(doc.Gallery, id, galleryID) >= 0
				}),
				URL:       in.URL,
				Alt:       in.Alt,
				Category:  in.Category,
				Type:      model.GalleryType(in.Type),
				Thumbnail: in.Thumbnail,
				CreatedAt: now,
			}
			doc.Gallery = append(doc.Gallery, item)
			created = append(created, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges p into the item.
func (s *GalleryService) Update(ctx context.Context, id string, p GalleryPatch) (*model.GalleryItem, error) {
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.GalleryItem
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Gallery, id, galleryID)
		if i < 0 {
			return notFound(entityGallery, id)
		}
		cur := doc.Gallery[i]
		setIf(&cur.Alt, p.Alt)
		setIf(&cur.Category, p.Category)
		if p.Thumbnail != nil {
			if *p.Thumbnail != "" && cur.Type != model.GalleryVideo {
				return invalid("thumbnail", "is only allowed for videos")
			}
			cur.Thumbnail = *p.Thumbnail
		}
		doc.Gallery[i] = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes one item. The file stays on disk.
func (s *GalleryService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Gallery, id, galleryID)
		if i < 0 {
			return notFound(entityGallery, id)
		}
		doc.Gallery = append(doc.Gallery[:i], doc.Gallery[i+1:]...)
		return nil
	})
}

// BulkDelete removes every listed item that exists. Unknown and repeated
// ids are ignored, so the result does not depend on their order.
func (s *GalleryService) BulkDelete(ctx context.Context, ids []string) (*BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, invalid("ids", "must contain at least one id")
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	deleted := 0
	err := s.store.Update(ctx, func(doc *model.Document) error {
		kept := doc.Gallery[:0]
		for _, g := range doc.Gallery {
			if _, ok := wanted[g.ID]; ok {
				deleted++
				continue
			}
			kept = append(kept, g)
		}
		doc.Gallery = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BulkDeleteResult{Success: true, Deleted: deleted}, nil
}

func galleryID(g model.GalleryItem) string { return g.ID }
