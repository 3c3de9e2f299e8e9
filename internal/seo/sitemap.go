// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds sitemap.xml, robots.txt, page meta tags and JSON-LD
// structured data for the public site.
package seo

import (
	"encoding/xml"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// StaticPage is a fixed public page listed in the sitemap.
type StaticPage struct {
	Path       string
	ChangeFreq ChangeFreq
	Priority   string
}

// StaticPages are the public pages that exist regardless of content.
var StaticPages = []StaticPage{
	{"/", ChangeFreqDaily, "1.0"},
	{"/kurumsal", ChangeFreqMonthly, "0.8"},
	{"/projeler", ChangeFreqWeekly, "0.9"},
	{"/haberler", ChangeFreqWeekly, "0.8"},
	{"/galeri", ChangeFreqWeekly, "0.7"},
	{"/kariyer", ChangeFreqWeekly, "0.6"},
	{"/iletisim", ChangeFreqMonthly, "0.7"},
}

// SitemapBuilder builds sitemap XML from site content.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

func (b *SitemapBuilder) add(path string, freq ChangeFreq, priority string, updated time.Time) {
	u := SitemapURL{Loc: b.siteURL + path, ChangeFreq: freq, Priority: priority}
	if !updated.IsZero() {
		u.LastMod = updated.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddStatic adds the fixed public pages.
func (b *SitemapBuilder) AddStatic() {
	for _, p := range StaticPages {
		b.add(p.Path, p.ChangeFreq, p.Priority, time.Time{})
	}
}

// AddProjects adds one entry per project detail page.
func (b *SitemapBuilder) AddProjects(projects []model.Project) {
	for _, p := range projects {
		b.add("/projeler/"+url.PathEscape(p.ID), ChangeFreqMonthly, "0.7", p.UpdatedAt)
	}
}

// AddNews adds one entry per news article.
func (b *SitemapBuilder) AddNews(news []model.News) {
	for _, n := range news {
		b.add("/haberler/"+url.PathEscape(n.Slug), ChangeFreqMonthly, "0.6", n.UpdatedAt)
	}
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	data, err := xml.MarshalIndent(Sitemap{XMLNS: XMLNamespace, URLs: b.urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// BuildSitemap returns the sitemap for every public page of doc.
func BuildSitemap(siteURL string, doc *model.Document) ([]byte, error) {
	b := NewSitemapBuilder(siteURL)
	b.AddStatic()
	b.AddProjects(doc.Projects)
	b.AddNews(doc.News)
	return b.Build()
}
