// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the content entities stored in the site document.
package model

import (
	"strings"
	"time"
)

// ProjectCategory distinguishes ongoing from completed projects.
type ProjectCategory string

// Project categories.
const (
	ProjectOngoing   ProjectCategory = "ongoing"
	ProjectCompleted ProjectCategory = "completed"
)

// DefaultProjectImage is used when a project is created without a cover image.
const DefaultProjectImage = "/uploads/projects/default.jpg"

// projectCategoryAliases maps the category names used by the first version
// of the site onto the current values.
var projectCategoryAliases = map[string]ProjectCategory{
	"devam-eden": ProjectOngoing,
	"tamamlanan": ProjectCompleted,
}

// NormalizeProjectCategory lowercases s and resolves legacy aliases.
// Unknown values are returned as-is so validation can reject them.
func NormalizeProjectCategory(s string) ProjectCategory {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := projectCategoryAliases[s]; ok {
		return c
	}
	return ProjectCategory(s)
}

// Valid reports whether c is a known category.
func (c ProjectCategory) Valid() bool {
	return c == ProjectOngoing || c == ProjectCompleted
}

// Project is a construction project shown in the portfolio.
type Project struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    ProjectCategory `json:"category"`
	Image       string          `json:"image"`
	Location    string          `json:"location"`
	Year        string          `json:"year"`
	Details     string          `json:"details,omitempty"`
	Gallery     []string        `json:"gallery"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
