// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/render"
	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/session"
	"github.com/olegiv/ozpolat-cms/internal/testutil"
	"github.com/olegiv/ozpolat-cms/web"
)

const siteURL = "https://ozpolat.example"

type fixedCountry string

func (c fixedCountry) Country(string) string { return string(c) }

type testSite struct {
	t       *testing.T
	handler http.Handler
	svc     *service.Services
}

func newTestSite(t *testing.T) *testSite {
	t.Helper()
	svc, _ := testutil.Services(t, testutil.FileStore(t, true), service.UploadLimits{})

	sm := session.New(nil, time.Hour, true)
	renderer, err := render.New(render.Config{TemplatesFS: web.TemplatesRoot(), SessionManager: sm.SessionManager})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	h := NewHandler(svc, renderer, fixedCountry("TR"), siteURL, testutil.TestLoggerSilent())
	return &testSite{t: t, handler: sm.LoadAndSave(h.Routes(nil)), svc: svc}
}

func (s *testSite) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testSite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.RemoteAddr = "203.0.113.10:5555"
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func TestFreshSiteServesPages(t *testing.T) {
	s := newTestSite(t)
	for _, path := range []string{"/", "/projeler", "/haberler", "/galeri", "/kariyer", "/iletisim"} {
		if w := s.get(path); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}

func expectBody(t *testing.T, w *httptest.ResponseRecorder, status int, contains ...string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, status, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range contains {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHome(t *testing.T) {
	s := newTestSite(t)
	ctx := context.Background()

	if _, err := s.svc.Projects.Create(ctx, service.ProjectInput{Title: "Riverside Towers", Category: "ongoing", Location: "İstanbul"}); err != nil {
		t.Fatal(err)
	}
	active := true
	if _, err := s.svc.References.Create(ctx, service.ReferenceInput{Name: "Acme", Logo: "/uploads/references/acme.png", IsActive: &active}); err != nil {
		t.Fatal(err)
	}

	w := s.get("/")
	expectBody(t, w, http.StatusOK,
		"Riverside Towers",
		"Devam Eden",
		`alt="Acme"`,
		`<link rel="canonical" href="https://ozpolat.example/">`,
		`"@type":"Organization"`,
	)
}

func TestProjects(t *testing.T) {
	s := newTestSite(t)
	ctx := context.Background()
	ongoing, err := s.svc.Projects.Create(ctx, service.ProjectInput{Title: "Riverside Towers", Category: "ongoing"})
	if err != nil {
		t.Fatalf("Create project: %v", err)
	}
	if _, err := s.svc.Projects.Create(ctx, service.ProjectInput{Title: "Park Evleri", Category: "completed"}); err != nil {
		t.Fatalf("Create projects: %v", err)
	}

	t.Run("filtered", func(t *testing.T) {
		w := s.get("/projeler?category=ongoing")
		expectBody(t, w, http.StatusOK, "Riverside Towers")
		if strings.Contains(w.Body.String(), "Park Evleri") {
			t.Error("completed project shown under ongoing filter")
		}
	})

	t.Run("unknown category shows all", func(t *testing.T) {
		expectBody(t, s.get("/projeler?category=planned"), http.StatusOK, "Riverside Towers", "Park Evleri")
	})

	t.Run("detail", func(t *testing.T) {
		expectBody(t, s.get("/projeler/"+ongoing.ID), http.StatusOK,
			"<h1>Riverside Towers</h1>",
			"<title>Riverside Towers | Özpolat İnşaat</title>",
			model.DefaultProjectImage,
		)
	})

	t.Run("missing", func(t *testing.T) {
		expectBody(t, s.get("/projeler/nope"), http.StatusNotFound, "Sayfa bulunamadı")
	})
}

func TestArticle(t *testing.T) {
	s := newTestSite(t)
	n, err := s.svc.News.Create(context.Background(), service.NewsInput{
		Title:   "Yeni Ofis Açılışı",
		Content: "Yeni ofisimiz **açıldı**.",
		Date:    "2026-02-14",
	})
	if err != nil {
		t.Fatal(err)
	}
	if n.Slug != "yeni-ofis-acilisi" {
		t.Fatalf("slug = %q", n.Slug)
	}

	expectBody(t, s.get("/haberler"), http.StatusOK, `href="/haberler/yeni-ofis-acilisi"`)
	expectBody(t, s.get("/haberler/yeni-ofis-acilisi"), http.StatusOK,
		"<strong>açıldı</strong>",
		"14 Şubat 2026",
		`"@type":"NewsArticle"`,
		`<meta property="og:type" content="article">`,
	)
	expectBody(t, s.get("/haberler/"+n.ID), http.StatusOK, "Yeni Ofis Açılışı")
	expectBody(t, s.get("/haberler/eski-haber"), http.StatusNotFound)
}

func TestCareers_ActiveOnly(t *testing.T) {
	s := newTestSite(t)
	ctx := context.Background()
	inactive := false
	if _, err := s.svc.Careers.Create(ctx, service.CareerInput{Title: "Şantiye Şefi", Type: "full-time", Requirements: []string{"İnşaat mühendisliği"}}); err != nil {
		t.Fatalf("Create careers: %v", err)
	}
	if _, err := s.svc.Careers.Create(ctx, service.CareerInput{Title: "Muhasebe Stajyeri", Type: "internship", IsActive: &inactive}); err != nil {
		t.Fatalf("Create careers: %v", err)
	}

	w := s.get("/kariyer")
	expectBody(t, w, http.StatusOK, "Şantiye Şefi", "Tam Zamanlı", "<li>İnşaat mühendisliği</li>")
	if strings.Contains(w.Body.String(), "Muhasebe Stajyeri") {
		t.Error("inactive position listed")
	}
}

func TestGallery(t *testing.T) {
	s := newTestSite(t)
	ctx := context.Background()
	if _, err := s.svc.Gallery.Create(ctx, service.GalleryInput{URL: "/uploads/gallery/a.jpg", Alt: "Şantiye", Type: "image"}); err != nil {
		t.Fatalf("Create gallery: %v", err)
	}
	if _, err := s.svc.Gallery.Create(ctx, service.GalleryInput{URL: "/uploads/gallery/b.mp4", Type: "video", Thumbnail: "/uploads/gallery/b.jpg"}); err != nil {
		t.Fatalf("Create gallery: %v", err)
	}

	expectBody(t, s.get("/galeri"), http.StatusOK,
		`<img src="/uploads/gallery/a.jpg" alt="Şantiye"`,
		`<video src="/uploads/gallery/b.mp4" controls preload="none" poster="/uploads/gallery/b.jpg">`,
	)
}

func TestContact_Submit(t *testing.T) {
	s := newTestSite(t)

	w := s.postForm("/iletisim", url.Values{
		"name":    {"Ayşe Yılmaz"},
		"email":   {"ayse@example.com"},
		"subject": {string(model.SubjectQuote)},
		"message": {"Riverside Towers için fiyat almak istiyorum."},
	})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/iletisim" {
		t.Fatalf("status = %d, location = %q", w.Code, w.Header().Get("Location"))
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no session cookie after submit")
	}
	expectBody(t, s.get("/iletisim", cookie), http.StatusOK, contactSentMessage)

	msgs, err := s.svc.Contacts.List(context.Background(), service.ContactFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(msgs) != 1 {
		t.Fatalf("stored %d messages, want 1", len(msgs))
	}
	got := msgs[0]
	if got.Country != "TR" || got.IPAddress != "203.0.113.10" || got.IsRead {
		t.Errorf("stored contact = %+v", got)
	}
	if !strings.HasPrefix(got.UserAgent, "Chrome") {
		t.Errorf("UserAgent = %q, want a summary", got.UserAgent)
	}
}

func TestContact_Invalid(t *testing.T) {
	s := newTestSite(t)

	w := s.postForm("/iletisim", url.Values{
		"name":    {"Ayşe Yılmaz"},
		"email":   {"not-an-email"},
		"subject": {"Spam"},
		"message": {"Merhaba"},
	})
	expectBody(t, w, http.StatusUnprocessableEntity,
		`value="Ayşe Yılmaz"`,
		fieldErrorMessage,
	)

	msgs, _ := s.svc.Contacts.List(context.Background(), service.ContactFilter{})
	if len(msgs) != 0 {
		t.Errorf("stored %d messages, want 0", len(msgs))
	}
}

func TestStaticPages(t *testing.T) {
	s := newTestSite(t)
	tests := []struct {
		path string
		want string
	}{
		{"/kurumsal", "<h1>Kurumsal</h1>"},
		{"/haberler", "Henüz haber bulunmuyor."},
		{"/iletisim", `<option>Genel Bilgi</option>`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := s.get(tt.path)
			expectBody(t, w, http.StatusOK, tt.want, `class="active"`)
		})
	}
}

func TestNotFound(t *testing.T) {
	s := newTestSite(t)
	expectBody(t, s.get("/olmayan-sayfa"), http.StatusNotFound, "Sayfa bulunamadı")
}
