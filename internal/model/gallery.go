// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// GalleryType is the media kind of a gallery item.
type GalleryType string

// Gallery item types.
const (
	GalleryImage GalleryType = "image"
	GalleryVideo GalleryType = "video"
)

// Valid reports whether t is a known gallery type.
func (t GalleryType) Valid() bool {
	return t == GalleryImage || t == GalleryVideo
}

// GalleryItem is a photo or video in the public gallery.
// Thumbnail is only set for videos.
type GalleryItem struct {
	ID        string      `json:"id"`
	URL       string      `json:"url"`
	Alt       string      `json:"alt,omitempty"`
	Category  string      `json:"category,omitempty"`
	Type      GalleryType `json:"type"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}
