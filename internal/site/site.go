// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site serves the public, server-rendered pages.
package site

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/render"
	"github.com/olegiv/ozpolat-cms/internal/seo"
	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

// Number of items shown in the home page sections.
const (
	homeProjects = 6
	homeNews     = 3
)

// CountryResolver maps a client IP to an ISO country code.
type CountryResolver interface {
	Country(ip string) string
}

// Handler renders the public pages.
type Handler struct {
	svc      *service.Services
	renderer *render.Renderer
	geo      CountryResolver
	siteURL  string
	logger   *slog.Logger
}

// NewHandler creates the public site handler. geo may be nil.
func NewHandler(svc *service.Services, renderer *render.Renderer, geo CountryResolver, siteURL string, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		renderer: renderer,
		geo:      geo,
		siteURL:  siteURL,
		logger:   logger,
	}
}

// Routes returns the page router. contactLimiter throttles form posts
// and may be nil.
func (h *Handler) Routes(contactLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Home)
	r.Get("/kurumsal", h.About)
	r.Get("/projeler", h.Projects)
	r.Get("/projeler/{id}", h.Project)
	r.Get("/haberler", h.NewsList)
	r.Get("/haberler/{slug}", h.Article)
	r.Get("/galeri", h.Gallery)
	r.Get("/kariyer", h.Careers)
	r.Get("/iletisim", h.Contact)

	submit := http.Handler(http.HandlerFunc(h.SubmitContact))
	if contactLimiter != nil {
		submit = contactLimiter.HTMLMiddleware(submit)
	}
	r.Method(http.MethodPost, "/iletisim", submit)

	r.NotFound(h.NotFound)
	return r
}

// page loads the settings and fills the data shared by every page.
func (h *Handler) page(r *http.Request, nav string, meta *seo.PageData) (render.TemplateData, error) {
	settings, err := h.svc.Settings.Get(r.Context())
	if err != nil {
		return render.TemplateData{}, err
	}
	return render.TemplateData{
		Meta:     seo.BuildMeta(meta, *settings, h.siteURL),
		Schema:   seo.BuildOrganizationSchema(*settings, h.siteURL),
		Settings: *settings,
		Nav:      nav,
	}, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data render.TemplateData) {
	if err := h.renderer.Render(w, r, status, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "rendering page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fail renders the not-found page for missing records and the error
// page for anything else.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.NotFound(w, r)
		return
	}

	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	h.logger.ErrorContext(r.Context(), "page failed", "path", r.URL.Path, "error", err)

	data, perr := h.page(r, "", &seo.PageData{Title: "Hata"})
	if perr != nil {
		http.Error(w, http.StatusText(status), status)
		return
	}
	h.render(w, r, status, "pages/error", data)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data, err := h.page(r, "", &seo.PageData{Title: "Sayfa bulunamadı", Path: r.URL.Path})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.render(w, r, http.StatusNotFound, "pages/notfound", data)
}

type homeData struct {
	Projects   []model.Project
	News       []model.NewsView
	References []model.Reference
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data, err := h.page(r, "/", nil)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	projects, err := h.svc.Projects.List(r.Context(), service.ProjectFilter{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	news, err := h.svc.News.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	refs, err := h.svc.References.List(r.Context(), false)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data.Data = homeData{
		Projects:   projects[:min(len(projects), homeProjects)],
		News:       news[:min(len(news), homeNews)],
		References: refs,
	}
	h.render(w, r, http.StatusOK, "pages/home", data)
}

// About renders the company page.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	data, err := h.page(r, "/kurumsal", &seo.PageData{Title: "Kurumsal", Path: "/kurumsal"})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	refs, err := h.svc.References.List(r.Context(), false)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Data = homeData{References: refs}
	h.render(w, r, http.StatusOK, "pages/about", data)
}

type projectsData struct {
	Category string
	Projects []model.Project
}

// Projects renders the project list, optionally filtered by category.
// Unknown categories show every project.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if !model.ProjectCategory(category).Valid() {
		category = ""
	}

	data, err := h.page(r, "/projeler", &seo.PageData{Title: "Projeler", Path: "/projeler"})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	projects, err := h.svc.Projects.List(r.Context(), service.ProjectFilter{Category: category})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Data = projectsData{Category: category, Projects: projects}
	h.render(w, r, http.StatusOK, "pages/projects", data)
}

// Project renders a project detail page.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := h.page(r, "/projeler", &seo.PageData{
		Title:       p.Title,
		Description: p.Description,
		Path:        "/projeler/" + p.ID,
		Image:       p.Image,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Data = p
	h.render(w, r, http.StatusOK, "pages/project", data)
}

// NewsList renders all news, newest first.
func (h *Handler) NewsList(w http.ResponseWriter, r *http.Request) {
	data, err := h.page(r, "/haberler", &seo.PageData{Title: "Haberler", Path: "/haberler"})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	news, err := h.svc.News.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Data = news
	h.render(w, r, http.StatusOK, "pages/news", data)
}

// Article renders one news article with NewsArticle JSON-LD.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.News.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := h.page(r, "/haberler", &seo.PageData{
		Title:       n.Title,
		Description: n.Excerpt,
		Path:        "/haberler/" + n.Slug,
		Image:       n.Image,
		Article:     true,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Schema = seo.BuildNewsArticleSchema(n.News, data.Settings, h.siteURL)
	data.Data = n
	h.render(w, r, http.StatusOK, "pages/article", data)
}

// Gallery renders every gallery item.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	data, err := h.page(r, "/galeri", &seo.PageData{Title: "Galeri", Path: "/galeri"})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.svc.Gallery.List(r.Context(), service.GalleryFilter{Category: r.URL.Query().Get("category")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Data = items
	h.render(w, r, http.StatusOK, "pages/gallery", data)
}

// Careers renders the open positions.
func (h *Handler) Careers(w http.ResponseWriter, r *http.Request) {
	data, err := h.page(r, "/kariyer", &seo.PageData{Title: "Kariyer", Path: "/kariyer"})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	careers, err := h.svc.Careers.List(r.Context(), service.CareerFilter{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Data = careers
	h.render(w, r, http.StatusOK, "pages/careers", data)
}
