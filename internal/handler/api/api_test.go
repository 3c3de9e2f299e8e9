// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/auth"
	"github.com/olegiv/ozpolat-cms/internal/middleware"
	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/session"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const (
	testPassword = "şantiye-2025"
	testSecret   = "0123456789abcdef0123456789abcdef"
)

type fixedCountry string

func (c fixedCountry) Country(string) string { return string(c) }

type testAPI struct {
	t       *testing.T
	handler http.Handler
	svc     *service.Services
	uploads string
	token   string
}

type testFile struct {
	field string
	name  string
	data  []byte
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dir := t.TempDir()

	st := store.New(store.NewFileBackend(filepath.Join(dir, "db.json"), true))
	uploadsDir := filepath.Join(dir, "uploads")
	uploads := service.NewUploadService(uploadsDir, service.UploadLimits{MaxFileSize: 1 << 20, MaxFiles: 3}, nil)
	svc := service.New(st, uploads)

	a, err := auth.NewAuthenticator(testPassword, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	token, _, err := a.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	sm := session.New(nil, time.Hour, true)

	h := NewHandler(svc, a, sm, fixedCountry("TR"), nil)
	r := chi.NewRouter()
	r.Mount("/api", h.Routes(RouterOptions{Gate: middleware.NewAdminAuth(a, sm)}))

	return &testAPI{
		t:       t,
		handler: sm.LoadAndSave(r),
		svc:     svc,
		uploads: uploadsDir,
		token:   token,
	}
}

// request sends a JSON request, authenticated with the bearer token when
// authed is true.
func (a *testAPI) request(method, path string, body any, authed bool, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) multipart(method, path string, fields map[string][]string, files []testFile) *httptest.ResponseRecorder {
	a.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, vals := range fields {
		for _, v := range vals {
			if err := mw.WriteField(k, v); err != nil {
				a.t.Fatalf("WriteField: %v", err)
			}
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			a.t.Fatalf("CreateFormFile: %v", err)
		}
		if _, err := fw.Write(f.data); err != nil {
			a.t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		a.t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)
	rr := httptest.NewRecorder()
	a.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T from %q: %v", v, rr.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rr.Code, want, rr.Body.String())
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// countFiles returns how many regular files exist under root.
func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk uploads: %v", err)
	}
	return n
}

func TestLoginWithWrongPassword(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/auth/login", LoginRequest{Password: "yanlış"}, false)
	expectStatus(t, rr, http.StatusUnauthorized)

	body := decode[successResponse](t, rr)
	if body.Success || body.Message != "Invalid password" {
		t.Errorf("body = %+v", body)
	}
}

func TestLoginIssuesTokenAndSession(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/auth/login", LoginRequest{Password: testPassword}, false)
	expectStatus(t, rr, http.StatusOK)
	login := decode[LoginResponse](t, rr)
	if !login.Success || login.Token == "" {
		t.Fatalf("login = %+v", login)
	}

	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	api.token = login.Token
	rr = api.request(http.MethodGet, "/api/auth/check", nil, true)
	expectStatus(t, rr, http.StatusOK)
	check := decode[CheckResponse](t, rr)
	if !check.Authenticated || check.User == nil || check.User.Role != auth.RoleAdmin {
		t.Errorf("check with token = %+v", check)
	}

	rr = api.request(http.MethodGet, "/api/auth/check", nil, false, cookie)
	expectStatus(t, rr, http.StatusOK)

	rr = api.request(http.MethodPost, "/api/auth/logout", nil, false, cookie)
	expectStatus(t, rr, http.StatusOK)

	rr = api.request(http.MethodGet, "/api/auth/check", nil, false, cookie)
	expectStatus(t, rr, http.StatusUnauthorized)
	if decode[CheckResponse](t, rr).Authenticated {
		t.Error("session still authenticated after logout")
	}
}

func TestFailedLoginEndsExistingSession(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodPost, "/api/auth/login", LoginRequest{Password: testPassword}, false)
	expectStatus(t, rr, http.StatusOK)
	cookie := rr.Result().Cookies()[0]

	rr = api.request(http.MethodPost, "/api/auth/login", LoginRequest{Password: "wrong"}, false, cookie)
	expectStatus(t, rr, http.StatusUnauthorized)

	rr = api.request(http.MethodGet, "/api/auth/check", nil, false, cookie)
	expectStatus(t, rr, http.StatusUnauthorized)
}

func TestMutationsRequireAdmin(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/news/x"},
		{http.MethodDelete, "/api/careers/x"},
		{http.MethodDelete, "/api/gallery/bulk"},
		{http.MethodPut, "/api/references/reorder"},
		{http.MethodGet, "/api/contact"},
		{http.MethodGet, "/api/contact/unread-count"},
		{http.MethodPut, "/api/settings"},
		{http.MethodPost, "/api/settings/hero-slide"},
		{http.MethodPost, "/api/upload"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := api.request(tt.method, tt.path, map[string]string{}, false)
			expectStatus(t, rr, http.StatusUnauthorized)
			if body := decode[middleware.APIError](t, rr); body.Code != middleware.CodeUnauthorized {
				t.Errorf("code = %q", body.Code)
			}
		})
	}
}

func TestErrorMapping(t *testing.T) {
	api := newTestAPI(t)

	rr := api.request(http.MethodGet, "/api/projects/missing", nil, false)
	expectStatus(t, rr, http.StatusNotFound)
	if body := decode[middleware.APIError](t, rr); body.Code != CodeNotFound || body.Success {
		t.Errorf("not found body = %+v", body)
	}

	rr = api.request(http.MethodDelete, "/api/news/missing", nil, true)
	expectStatus(t, rr, http.StatusNotFound)

	rr = api.request(http.MethodPost, "/api/projects", map[string]string{"category": "ongoing"}, true)
	expectStatus(t, rr, http.StatusBadRequest)
	body := decode[middleware.APIError](t, rr)
	if body.Code != CodeValidation || body.Details["title"] == "" {
		t.Errorf("validation body = %+v", body)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/careers", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+api.token)
	rr = httptest.NewRecorder()
	api.handler.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusBadRequest)

	rr = api.request(http.MethodGet, "/api/nothing-here", nil, false)
	expectStatus(t, rr, http.StatusNotFound)
}
