// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/content"
	"github.com/olegiv/ozpolat-cms/internal/model"
)

// descriptionLength caps meta descriptions.
const descriptionLength = 160

// Meta holds the SEO tags rendered in a page head.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	OGImage     string
	SiteName    string
}

// PageData describes one rendered page.
type PageData struct {
	Title       string
	Description string
	Path        string
	Image       string
	Article     bool
}

// BuildMeta creates Meta for page with site-wide fallbacks. A nil page
// yields the home page tags.
func BuildMeta(page *PageData, settings model.Settings, siteURL string) Meta {
	siteURL = strings.TrimSuffix(siteURL, "/")
	m := Meta{
		Title:       settings.CompanyName,
		Description: truncate(content.PlainText(settings.AboutText)),
		Canonical:   siteURL + "/",
		OGType:      "website",
		SiteName:    settings.CompanyName,
	}
	if page == nil {
		return m
	}

	if page.Title != "" {
		m.Title = page.Title + " | " + settings.CompanyName
	}
	if page.Description != "" {
		m.Description = truncate(content.PlainText(page.Description))
	}
	if page.Path != "" {
		m.Canonical = siteURL + page.Path
	}
	if page.Image != "" {
		m.OGImage = AbsoluteURL(page.Image, siteURL)
	}
	if page.Article {
		m.OGType = "article"
	}
	return m
}

// OrganizationSchema is JSON-LD for the company.
type OrganizationSchema struct {
	Context   string         `json:"@context,omitempty"`
	Type      string         `json:"@type"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	Email     string         `json:"email,omitempty"`
	Telephone string         `json:"telephone,omitempty"`
	Address   *AddressSchema `json:"address,omitempty"`
	SameAs    []string       `json:"sameAs,omitempty"`
}

// AddressSchema is a JSON-LD PostalAddress.
type AddressSchema struct {
	Type          string `json:"@type"`
	StreetAddress string `json:"streetAddress"`
}

// NewsArticleSchema is JSON-LD for a news article.
type NewsArticleSchema struct {
	Context       string             `json:"@context"`
	Type          string             `json:"@type"`
	Headline      string             `json:"headline"`
	Description   string             `json:"description,omitempty"`
	Image         string             `json:"image,omitempty"`
	DatePublished string             `json:"datePublished,omitempty"`
	DateModified  string             `json:"dateModified,omitempty"`
	Publisher     OrganizationSchema `json:"publisher"`
}

// BuildOrganizationSchema returns the Organization JSON-LD for the site.
func BuildOrganizationSchema(settings model.Settings, siteURL string) template.JS {
	return marshalJSONLD(organization(settings, siteURL))
}

// BuildNewsArticleSchema returns the NewsArticle JSON-LD for n.
func BuildNewsArticleSchema(n model.News, settings model.Settings, siteURL string) template.JS {
	pub := organization(settings, siteURL)
	pub.Context = ""
	return marshalJSONLD(NewsArticleSchema{
		Context:       "https://schema.org",
		Type:          "NewsArticle",
		Headline:      n.Title,
		Description:   truncate(n.Excerpt),
		Image:         AbsoluteURL(n.Image, siteURL),
		DatePublished: n.Date,
		DateModified:  n.UpdatedAt.UTC().Format(time.RFC3339),
		Publisher:     pub,
	})
}

func organization(settings model.Settings, siteURL string) OrganizationSchema {
	org := OrganizationSchema{
		Context:   "https://schema.org",
		Type:      "Organization",
		Name:      settings.CompanyName,
		URL:       strings.TrimSuffix(siteURL, "/"),
		Email:     settings.Email,
		Telephone: settings.Phone,
	}
	if settings.Address != "" {
		org.Address = &AddressSchema{Type: "PostalAddress", StreetAddress: settings.Address}
	}
	sm := settings.SocialMedia
	for _, link := range []string{sm.Facebook, sm.Instagram, sm.Linkedin, sm.Twitter} {
		if link != "" {
			org.SameAs = append(org.SameAs, link)
		}
	}
	return org
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(data)
}

func truncate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	cut := content.Truncate(s, descriptionLength)
	if cut == s {
		return s
	}
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

// AbsoluteURL prefixes relative paths with siteURL.
func AbsoluteURL(u, siteURL string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return strings.TrimSuffix(siteURL, "/") + u
}
