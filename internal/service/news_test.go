// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

func TestNewsSlugFromTurkishTitle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	n, err := svc.News.Create(ctx, NewsInput{
		Title:   "Yeni Ofis Açılışı",
		Content: "Ankara'daki yeni ofisimiz açıldı.",
		Excerpt: "Yeni ofis",
	})
	require.NoError(t, err)
	assert.Equal(t, "yeni-ofis-acilisi", n.Slug)
	assert.Equal(t, "Yeni ofis", n.Excerpt)
	assert.Equal(t, model.DefaultNewsImage, n.Image)
	assert.Equal(t, "2025-03-01", n.Date)

	bySlug, err := svc.News.Get(ctx, "yeni-ofis-acilisi")
	require.NoError(t, err)
	assert.Equal(t, n.ID, bySlug.ID)

	byID, err := svc.News.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, byID)
}

func TestNewsDuplicateTitlesGetSuffixedSlugs(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	var slugs []string
	for range 3 {
		n, err := svc.News.Create(ctx, NewsInput{Title: "Şantiye Haberi", Content: "x"})
		require.NoError(t, err)
		slugs = append(slugs, n.Slug)
	}
	assert.Equal(t, []string{"santiye-haberi", "santiye-haberi-2", "santiye-haberi-3"}, slugs)
}

func TestNewsSlugChangesOnlyWithTitle(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	n, err := svc.News.Create(ctx, NewsInput{Title: "İlk Başlık", Content: "a"})
	require.NoError(t, err)
	assert.Equal(t, "ilk-baslik", n.Slug)

	u, err := svc.News.Update(ctx, n.ID, NewsPatch{Content: ptr("b")})
	require.NoError(t, err)
	assert.Equal(t, "ilk-baslik", u.Slug)

	u, err = svc.News.Update(ctx, n.ID, NewsPatch{Title: ptr("İlk Başlık")})
	require.NoError(t, err)
	assert.Equal(t, "ilk-baslik", u.Slug)

	u, err = svc.News.Update(ctx, n.ID, NewsPatch{Title: ptr("Güncel Başlık")})
	require.NoError(t, err)
	assert.Equal(t, "guncel-baslik", u.Slug)
	assert.Equal(t, "b", u.Content)

	_, err = svc.News.Get(ctx, "ilk-baslik")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewsRenamedToExistingTitleIsSuffixed(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.News.Create(ctx, NewsInput{Title: "Duyuru", Content: "a"})
	require.NoError(t, err)
	other, err := svc.News.Create(ctx, NewsInput{Title: "Başka", Content: "b"})
	require.NoError(t, err)

	u, err := svc.News.Update(ctx, other.ID, NewsPatch{Title: ptr("Duyuru")})
	require.NoError(t, err)
	assert.Equal(t, "duyuru-2", u.Slug)
}

func TestNewsDefaultExcerpt(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	long := strings.Repeat("ğ", 200)
	n, err := svc.News.Create(ctx, NewsInput{Title: "Uzun", Content: long})
	require.NoError(t, err)
	assert.Equal(t, model.NewsExcerptLength, utf8.RuneCountInString(n.Excerpt))
}

func TestNewsRendersContent(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	n, err := svc.News.Create(ctx, NewsInput{
		Title:   "Markdown",
		Content: "**kalın** metin <script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.Contains(t, n.ContentHTML, "<strong>kalın</strong>")
	assert.NotContains(t, n.ContentHTML, "<script>")

	list, err := svc.News.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, n.ContentHTML, list[0].ContentHTML)
}

func TestNewsValidation(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	_, err := svc.News.Create(ctx, NewsInput{Title: "Başlık"})
	requireValidation(t, err, "content")

	_, err = svc.News.Create(ctx, NewsInput{Title: "Başlık", Content: "x", Date: "01.03.2025"})
	requireValidation(t, err, "date")

	_, err = svc.News.Create(ctx, NewsInput{Title: "!!!", Content: "x"})
	requireValidation(t, err, "title")
}

func TestNewsDelete(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()

	n, err := svc.News.Create(ctx, NewsInput{Title: "Silinecek", Content: "x"})
	require.NoError(t, err)
	require.NoError(t, svc.News.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.News.Delete(ctx, n.ID), ErrNotFound)
}
