// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/seo"
)

// DocumentReader reads the current site document.
type DocumentReader interface {
	Read(ctx context.Context) (*model.Document, error)
}

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	docs    DocumentReader
	siteURL string
	robots  seo.RobotsConfig
	logger  *slog.Logger
}

// NewSEOHandler creates a new SEO handler. Non-production deployments
// should set disallowAll so crawlers skip them.
func NewSEOHandler(docs DocumentReader, siteURL string, disallowAll bool, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{
		docs:    docs,
		siteURL: siteURL,
		robots:  seo.RobotsConfig{SiteURL: siteURL, DisallowAll: disallowAll},
		logger:  logger,
	}
}

// Sitemap handles GET /sitemap.xml.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docs.Read(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "sitemap: reading document", "error", err)
		http.Error(w, "Sitemap unavailable", http.StatusServiceUnavailable)
		return
	}

	body, err := seo.BuildSitemap(h.siteURL, doc)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "sitemap: building", "error", err)
		http.Error(w, "Sitemap unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(body)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.BuildRobots(h.robots)))
}
