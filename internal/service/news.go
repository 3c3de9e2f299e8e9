// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/content"
	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
	"github.com/olegiv/ozpolat-cms/internal/util"
)

const entityNews = "News"

// NewsService manages news articles.
type NewsService struct {
	base
}

// NewsInput is the payload for creating an article.
type NewsInput struct {
	Title   string `json:"title" validate:"notblank,max=200"`
	Content string `json:"content" validate:"notblank"`
	Excerpt string `json:"excerpt"`
	Image   string `json:"image"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// NewsPatch changes only the non-nil fields.
type NewsPatch struct {
	Title   *string `json:"title" validate:"omitempty,notblank,max=200"`
	Content *string `json:"content" validate:"omitempty,notblank"`
	Excerpt *string `json:"excerpt"`
	Image   *string `json:"image"`
	Date    *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// View adds the rendered body to an article.
func View(n model.News) model.NewsView {
	return model.NewsView{News: n, ContentHTML: string(content.RenderMarkdown(n.Content))}
}

// List returns every article in insertion order.
func (s *NewsService) List(ctx context.Context) ([]model.NewsView, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.NewsView, 0, len(doc.News))
	for _, n := range doc.News {
		out = append(out, View(n))
	}
	return out, nil
}

// Get finds an article by id or, failing that, by slug.
func (s *NewsService) Get(ctx context.Context, idOrSlug string) (*model.NewsView, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.News, idOrSlug, newsID)
	if i < 0 {
		i = indexOf(doc.News, idOrSlug, newsSlug)
	}
	if i < 0 {
		return nil, notFound(entityNews, idOrSlug)
	}
	v := View(doc.News[i])
	return &v, nil
}

// Create validates in, derives slug and defaults and appends the article.
func (s *NewsService) Create(ctx context.Context, in NewsInput) (*model.NewsView, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := check(in); err != nil {
		return nil, err
	}
	slug := store.GenerateSlug(in.Title)
	if slug == "" {
		return nil, invalid("title", "must contain at least one letter or digit")
	}

	var created model.News
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.timestamp()
		created = model.News{
			ID: store.GenerateID(func(id string) bool {
				return indexOf(doc.News, id, newsID) >= 0
			}),
			Title:     in.Title,
			Content:   in.Content,
			Excerpt:   in.Excerpt,
			Image:     in.Image,
			Date:      in.Date,
			Slug:      uniqueNewsSlug(doc.News, slug, ""),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if created.Excerpt == "" {
			created.Excerpt = content.Truncate(in.Content, model.NewsExcerptLength)
		}
		if created.Image == "" {
			created.Image = model.DefaultNewsImage
		}
		if created.Date == "" {
			created.Date = now.Format(model.NewsDateLayout)
		}
		doc.News = append(doc.News, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	v := View(created)
	return &v, nil
}

// Update merges p into the article. A changed title recomputes the slug.
func (s *NewsService) Update(ctx context.Context, id string, p NewsPatch) (*model.NewsView, error) {
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		p.Title = &t
	}
	if err := check(p); err != nil {
		return nil, err
	}
	if p.Title != nil && store.GenerateSlug(*p.Title) == "" {
		return nil, invalid("title", "must contain at least one letter or digit")
	}

	var updated model.News
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.News, id, newsID)
		if i < 0 {
			return notFound(entityNews, id)
		}
		cur := doc.News[i]

		if p.Title != nil && *p.Title != cur.Title {
			cur.Title = *p.Title
			cur.Slug = uniqueNewsSlug(doc.News, store.GenerateSlug(cur.Title), cur.ID)
		}
		setIf(&cur.Content, p.Content)
		setIf(&cur.Excerpt, p.Excerpt)
		setIf(&cur.Image, p.Image)
		setIf(&cur.Date, p.Date)
		cur.UpdatedAt = s.timestamp()

		doc.News[i] = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	v := View(updated)
	return &v, nil
}

// Delete removes the article.
func (s *NewsService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.News, id, newsID)
		if i < 0 {
			return notFound(entityNews, id)
		}
		doc.News = append(doc.News[:i], doc.News[i+1:]...)
		return nil
	})
}

// uniqueNewsSlug suffixes want until no article other than selfID uses it.
func uniqueNewsSlug(news []model.News, want, selfID string) string {
	return util.UniqueSlug(want, func(slug string) bool {
		for _, n := range news {
			if n.ID != selfID && n.Slug == slug {
				return true
			}
		}
		return false
	})
}

func newsID(n model.News) string   { return n.ID }
func newsSlug(n model.News) string { return n.Slug }
