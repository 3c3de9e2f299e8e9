// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// CareerType is the employment type of a job posting.
type CareerType string

// Career types.
const (
	CareerFullTime   CareerType = "full-time"
	CareerPartTime   CareerType = "part-time"
	CareerInternship CareerType = "internship"
)

var careerTypeAliases = map[string]CareerType{
	"tam-zamanli":  CareerFullTime,
	"yari-zamanli": CareerPartTime,
	"staj":         CareerInternship,
}

// NormalizeCareerType lowercases s and resolves the Turkish aliases.
func NormalizeCareerType(s string) CareerType {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := careerTypeAliases[s]; ok {
		return t
	}
	return CareerType(s)
}

// Valid reports whether t is a known employment type.
func (t CareerType) Valid() bool {
	switch t {
	case CareerFullTime, CareerPartTime, CareerInternship:
		return true
	default:
		return false
	}
}

// Career is an open position.
type Career struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Department   string     `json:"department"`
	Location     string     `json:"location"`
	Type         CareerType `json:"type"`
	Description  string     `json:"description"`
	Requirements []string   `json:"requirements"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
