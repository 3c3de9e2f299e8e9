// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "sort"

// SettingsID is the fixed id of the settings singleton.
const SettingsID = 1

// SocialMedia holds the company's social profile URLs.
type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
}

// Stats are the headline numbers on the home page.
type Stats struct {
	Experience        int `json:"experience"`
	OngoingProjects   int `json:"ongoingProjects"`
	CompletedProjects int `json:"completedProjects"`
}

// HeroSlide is one slide of the home page carousel.
type HeroSlide struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	CtaText     string `json:"ctaText"`
	CtaLink     string `json:"ctaLink"`
	Order       int    `json:"order"`
}

// Settings is the site-wide configuration singleton.
type Settings struct {
	ID           int         `json:"id"`
	CompanyName  string      `json:"companyName"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	Address      string      `json:"address"`
	WorkingHours string      `json:"workingHours"`
	SocialMedia  SocialMedia `json:"socialMedia"`
	Stats        Stats       `json:"stats"`
	AboutText    string      `json:"aboutText"`
	MissionText  string      `json:"missionText"`
	VisionText   string      `json:"visionText"`
	HeroSlides   []HeroSlide `json:"heroSlides"`
}

// DefaultSettings returns the settings used to seed an empty document.
func DefaultSettings() Settings {
	return Settings{
		ID:           SettingsID,
		CompanyName:  "Özpolat İnşaat",
		WorkingHours: "Pazartesi - Cumartesi: 08:00 - 18:00",
		HeroSlides:   []HeroSlide{},
	}
}

// SortHeroSlides orders slides by Order, keeping insertion order for ties.
func SortHeroSlides(slides []HeroSlide) {
	sort.SliceStable(slides, func(i, j int) bool {
		return slides[i].Order < slides[j].Order
	})
}
