// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

func TestProjectLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/projects", map[string]string{
		"title":    "Riverside Towers",
		"category": "ongoing",
		"location": "Ankara",
		"year":     "2024",
	}, true)
	expectStatus(t, rr, http.StatusCreated)
	created := decode[model.Project](t, rr)
	if created.ID == "" || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("created = %+v", created)
	}

	rr = api.request(http.MethodGet, "/api/projects?category=ongoing", nil, false)
	expectStatus(t, rr, http.StatusOK)
	list := decode[[]model.Project](t, rr)
	if len(list) != 1 || list[0].ID != created.ID || list[0].Category != model.ProjectOngoing {
		t.Fatalf("list = %+v", list)
	}

	rr = api.request(http.MethodGet, "/api/projects/"+created.ID, nil, false)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[model.Project](t, rr); !reflect.DeepEqual(got, created) {
		t.Errorf("GET = %+v, want %+v", got, created)
	}

	rr = api.request(http.MethodPut, "/api/projects/"+created.ID, map[string]string{"year": "2025"}, true)
	expectStatus(t, rr, http.StatusOK)
	updated := decode[model.Project](t, rr)
	if updated.Year != "2025" || updated.Location != "Ankara" {
		t.Errorf("partial update clobbered fields: %+v", updated)
	}

	rr = api.request(http.MethodDelete, "/api/projects/"+created.ID, nil, true)
	expectStatus(t, rr, http.StatusOK)
	if !decode[successResponse](t, rr).Success {
		t.Error("delete did not acknowledge success")
	}
	rr = api.request(http.MethodDelete, "/api/projects/"+created.ID, nil, true)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestProjectMultipartGallery(t *testing.T) {
	api := newTestAPI(t)
	img := pngBytes(t)

	rr := api.multipart(http.MethodPost, "/api/projects", map[string][]string{
		"title":    {"Vadi Konutları"},
		"category": {"devam-eden"},
	}, []testFile{
		{field: "image", name: "cover.png", data: img},
		{field: "gallery", name: "g1.png", data: img},
	})
	expectStatus(t, rr, http.StatusCreated)
	p := decode[model.Project](t, rr)
	if p.Category != model.ProjectOngoing || len(p.Gallery) != 1 || p.Image == model.DefaultProjectImage {
		t.Fatalf("created = %+v", p)
	}

	rr = api.multipart(http.MethodPut, "/api/projects/"+p.ID, nil, []testFile{
		{field: "gallery", name: "g2.png", data: img},
	})
	expectStatus(t, rr, http.StatusOK)
	if got := decode[model.Project](t, rr); len(got.Gallery) != 2 {
		t.Errorf("append gallery = %v", got.Gallery)
	}

	rr = api.multipart(http.MethodPut, "/api/projects/"+p.ID, map[string][]string{
		"replaceGallery": {"true"},
	}, []testFile{
		{field: "gallery", name: "g3.png", data: img},
	})
	expectStatus(t, rr, http.StatusOK)
	if got := decode[model.Project](t, rr); len(got.Gallery) != 1 {
		t.Errorf("replace gallery = %v", got.Gallery)
	}
}

func TestProjectMultipartRejectsBadCategoryWithoutKeepingFiles(t *testing.T) {
	api := newTestAPI(t)

	rr := api.multipart(http.MethodPost, "/api/projects", map[string][]string{
		"title":    {"X"},
		"category": {"planned"},
	}, []testFile{{field: "image", name: "cover.png", data: pngBytes(t)}})
	expectStatus(t, rr, http.StatusBadRequest)

	if n := countFiles(t, api.uploads); n != 0 {
		t.Errorf("%d files left behind", n)
	}
}

func TestNewsBySlug(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/news", map[string]string{
		"title":   "Yeni Ofis Açılışı",
		"content": "Yeni ofisimiz **Ankara**'da açıldı.",
	}, true)
	expectStatus(t, rr, http.StatusCreated)
	created := decode[model.NewsView](t, rr)
	if created.Slug != "yeni-ofis-acilisi" {
		t.Fatalf("slug = %q", created.Slug)
	}

	rr = api.request(http.MethodGet, "/api/news/yeni-ofis-acilisi", nil, false)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[model.NewsView](t, rr); got.ID != created.ID {
		t.Errorf("by slug = %+v", got)
	}
}

func TestCareersAllOnlyForAdmin(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/careers", map[string]any{
		"title":    "Şantiye Şefi",
		"type":     "full-time",
		"isActive": false,
	}, true)
	expectStatus(t, rr, http.StatusCreated)

	rr = api.request(http.MethodGet, "/api/careers?all=true", nil, false)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[[]model.Career](t, rr); len(got) != 0 {
		t.Errorf("anonymous all=true listed %d postings", len(got))
	}

	rr = api.request(http.MethodGet, "/api/careers?all=true", nil, true)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[[]model.Career](t, rr); len(got) != 1 {
		t.Errorf("admin all=true listed %d postings", len(got))
	}
}

func TestReferencesReorder(t *testing.T) {
	api := newTestAPI(t)
	ctx := context.Background()

	a, err := api.svc.References.Create(ctx, service.ReferenceInput{Name: "A", Logo: "/uploads/references/a.png"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := api.svc.References.Create(ctx, service.ReferenceInput{Name: "B", Logo: "/uploads/references/b.png"})
	if err != nil {
		t.Fatal(err)
	}

	rr := api.request(http.MethodPut, "/api/references/reorder", ReorderRequest{Orders: []service.OrderUpdate{
		{ID: a.ID, Order: 5},
		{ID: "missing", Order: 0},
	}}, true)
	expectStatus(t, rr, http.StatusNotFound)

	rr = api.request(http.MethodPut, "/api/references/reorder", ReorderRequest{Orders: []service.OrderUpdate{
		{ID: a.ID, Order: 5},
		{ID: b.ID, Order: 1},
	}}, true)
	expectStatus(t, rr, http.StatusOK)

	rr = api.request(http.MethodGet, "/api/references", nil, false)
	expectStatus(t, rr, http.StatusOK)
	refs := decode[[]model.Reference](t, rr)
	if len(refs) != 2 || refs[0].ID != b.ID || refs[1].ID != a.ID {
		t.Errorf("order after reorder = %+v", refs)
	}
}

func TestContactFlow(t *testing.T) {
	api := newTestAPI(t)

	req := map[string]string{
		"name":    "Ayşe Yılmaz",
		"email":   "ayse@example.com",
		"subject": "Teklif Talebi",
		"message": "<b>Merhaba</b>, villa projesi için teklif rica ederim.",
	}
	rr := api.request(http.MethodPost, "/api/contact", req, false)
	expectStatus(t, rr, http.StatusCreated)
	if body := decode[successResponse](t, rr); !body.Success || body.Message != ContactCreatedMessage {
		t.Errorf("create body = %+v", body)
	}

	rr = api.request(http.MethodGet, "/api/contact/unread-count", nil, true)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[UnreadCountResponse](t, rr).Count; got != 1 {
		t.Errorf("unread = %d", got)
	}

	rr = api.request(http.MethodGet, "/api/contact?isRead=false", nil, true)
	expectStatus(t, rr, http.StatusOK)
	contacts := decode[[]model.Contact](t, rr)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %+v", contacts)
	}
	c := contacts[0]
	if c.Country != "TR" || c.IPAddress == "" || c.Message != "Merhaba, villa projesi için teklif rica ederim." {
		t.Errorf("stored contact = %+v", c)
	}

	rr = api.request(http.MethodPut, "/api/contact/"+c.ID+"/read", nil, true)
	expectStatus(t, rr, http.StatusOK)
	if got := decode[model.Contact](t, rr); !got.IsRead || got.Message != c.Message {
		t.Errorf("after mark read = %+v", got)
	}

	rr = api.request(http.MethodGet, "/api/contact/unread-count", nil, true)
	if got := decode[UnreadCountResponse](t, rr).Count; got != 0 {
		t.Errorf("unread after read = %d", got)
	}

	rr = api.request(http.MethodGet, "/api/contact?isRead=maybe", nil, true)
	expectStatus(t, rr, http.StatusBadRequest)

	rr = api.request(http.MethodDelete, "/api/contact/"+c.ID, nil, true)
	expectStatus(t, rr, http.StatusOK)
}

func TestContactValidation(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/contact", map[string]string{
		"name":    "A",
		"email":   "not-an-email",
		"subject": "Başka",
		"message": "x",
	}, false)
	expectStatus(t, rr, http.StatusBadRequest)
}

func TestSettingsMultipartReplacesNestedObjects(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPut, "/api/settings", map[string]any{
		"socialMedia": map[string]string{
			"facebook":  "https://facebook.com/ozpolat",
			"instagram": "https://instagram.com/ozpolat",
		},
	}, true)
	expectStatus(t, rr, http.StatusOK)

	rr = api.multipart(http.MethodPut, "/api/settings", map[string][]string{
		"phone":       {"+90 312 000 00 00"},
		"socialMedia": {`{"linkedin":"https://linkedin.com/company/ozpolat"}`},
		"stats":       {`{"experience":25,"ongoingProjects":4,"completedProjects":60}`},
	}, nil)
	expectStatus(t, rr, http.StatusOK)
	st := decode[model.Settings](t, rr)

	want := model.SocialMedia{Linkedin: "https://linkedin.com/company/ozpolat"}
	if st.SocialMedia != want {
		t.Errorf("socialMedia = %+v, want wholesale replacement %+v", st.SocialMedia, want)
	}
	if st.Stats.Experience != 25 || st.Phone != "+90 312 000 00 00" {
		t.Errorf("settings = %+v", st)
	}

	rr = api.multipart(http.MethodPut, "/api/settings", map[string][]string{
		"stats": {`{"experience":`},
	}, nil)
	expectStatus(t, rr, http.StatusBadRequest)
}

func TestHeroSlides(t *testing.T) {
	api := newTestAPI(t)

	rr := api.multipart(http.MethodPost, "/api/settings/hero-slide", map[string][]string{
		"title": {"Güvenle İnşa Ediyoruz"},
	}, []testFile{{field: "image", name: "hero.png", data: pngBytes(t)}})
	expectStatus(t, rr, http.StatusCreated)
	st := decode[model.Settings](t, rr)
	if len(st.HeroSlides) != 1 || st.HeroSlides[0].ID == "" || st.HeroSlides[0].Image == "" {
		t.Fatalf("slides = %+v", st.HeroSlides)
	}
	id := st.HeroSlides[0].ID

	rr = api.multipart(http.MethodPut, "/api/settings/hero-slide/"+id, map[string][]string{
		"order": {"not-a-number"},
	}, nil)
	expectStatus(t, rr, http.StatusBadRequest)

	rr = api.request(http.MethodDelete, "/api/settings/hero-slide/"+id, nil, true)
	expectStatus(t, rr, http.StatusOK)
	rr = api.request(http.MethodDelete, "/api/settings/hero-slide/"+id, nil, true)
	expectStatus(t, rr, http.StatusNotFound)
}
