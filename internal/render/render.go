// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the public page templates and executes them with
// the site-wide data every page needs.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/ozpolat-cms/internal/content"
	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/seo"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	now            func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		now:            time.Now,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page under pages/ together with the base
// layout and all partials. Pages are named "pages/<file>" without the
// extension.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := templateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}
	pages, err := templateFiles(templatesFS, "pages")
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	const baseLayout = "layouts/base.html"
	for _, tmplPath := range pages {
		name := "pages/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

		// Parse in order: base layout, partials, page template
		files := append([]string{baseLayout}, partials...)
		files = append(files, tmplPath)

		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return nil
}

// templateFiles returns all .html files in a directory. A missing
// directory yields no files.
func templateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// FormatDate renders a date as "2 Ocak 2026".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), turkishMonths[t.Month()-1], t.Year())
}

// formatNewsDate renders a stored YYYY-MM-DD date, falling back to the
// raw value.
func formatNewsDate(s string) string {
	t, err := time.Parse(model.NewsDateLayout, s)
	if err != nil {
		return s
	}
	return FormatDate(t)
}

var categoryLabels = map[model.ProjectCategory]string{
	model.ProjectOngoing:   "Devam Eden",
	model.ProjectCompleted: "Tamamlanan",
}

var careerTypeLabels = map[model.CareerType]string{
	model.CareerFullTime:   "Tam Zamanlı",
	model.CareerPartTime:   "Yarı Zamanlı",
	model.CareerInternship: "Staj",
}

// templateFuncs returns custom template functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate":     FormatDate,
		"formatNewsDate": formatNewsDate,
		"truncate": func(s string, length int) string {
			if t := content.Truncate(s, length); t != s {
				return t + "..."
			}
			return s
		},
		"markdown":   content.RenderMarkdown,
		"plain":      content.PlainText,
		"category":   func(c model.ProjectCategory) string { return categoryLabels[c] },
		"careerType": func(t model.CareerType) string { return careerTypeLabels[t] },
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Meta        seo.Meta
	Schema      template.JS
	Settings    model.Settings
	Nav         string // path of the active menu entry
	Data        any
	Form        map[string]string
	Errors      map[string]string
	Flash       string
	FlashType   string
	CurrentYear int
}

// Render renders the named page with the given status.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()

	// Get flash message from session
	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), "flash"); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), "flash_type")
			if data.FlashType == "" {
				data.FlashType = FlashSuccess
			}
		}
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a page template is loaded.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), "flash", message)
		r.sessionManager.Put(req.Context(), "flash_type", flashType)
	}
}
