// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"sort"
	"time"
)

// Reference is a client or partner logo shown on the home page.
// Order is a sort key; it is neither contiguous nor unique.
type Reference struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Logo        string    `json:"logo"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SortReferences orders refs by Order, keeping insertion order for ties.
func SortReferences(refs []Reference) {
	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].Order < refs[j].Order
	})
}
