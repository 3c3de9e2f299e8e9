// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// News defaults.
const (
	DefaultNewsImage  = "/uploads/news/default.jpg"
	NewsExcerptLength = 150
	NewsDateLayout    = "2006-01-02"
)

// News is a company news article. Slug is derived from Title.
type News struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Image     string    `json:"image"`
	Date      string    `json:"date"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewsView is News as served to readers, with rendered content.
type NewsView struct {
	News
	ContentHTML string `json:"contentHtml,omitempty"`
}
