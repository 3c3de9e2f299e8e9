// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client is a typed Go client for the site's REST API.
//
// Requests marked as authenticated carry the bearer token held by the
// client's TokenStore. Non-2xx responses are returned as *APIError. The
// client never retries or caches.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

const defaultTimeout = 60 * time.Second

// Client talks to one API base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	Auth       *AuthAPI
	Projects   *ProjectsAPI
	News       *NewsAPI
	Careers    *CareersAPI
	Gallery    *GalleryAPI
	References *ReferencesAPI
	Contact    *ContactAPI
	Settings   *SettingsAPI
	Uploads    *UploadsAPI
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore sets where the admin token is kept. The default keeps
// it in memory.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a client for baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c: c}
	c.Projects = &ProjectsAPI{resource[model.Project, service.ProjectInput, service.ProjectPatch]{c: c, path: "/api/projects"}}
	c.News = &NewsAPI{resource[model.NewsView, service.NewsInput, service.NewsPatch]{c: c, path: "/api/news"}}
	c.Careers = &CareersAPI{resource[model.Career, service.CareerInput, service.CareerPatch]{c: c, path: "/api/careers"}}
	c.Gallery = &GalleryAPI{resource[model.GalleryItem, service.GalleryInput, service.GalleryPatch]{c: c, path: "/api/gallery"}}
	c.References = &ReferencesAPI{resource[model.Reference, service.ReferenceInput, service.ReferencePatch]{c: c, path: "/api/references"}}
	c.Contact = &ContactAPI{c: c}
	c.Settings = &SettingsAPI{c: c}
	c.Uploads = &UploadsAPI{c: c}
	return c, nil
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FileURL turns a stored path such as "/uploads/news/a.jpg" into an
// absolute URL. Absolute URLs and empty paths are returned unchanged.
func (c *Client) FileURL(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// File is one file part of a multipart upload.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Form is a multipart request body.
type Form struct {
	Values url.Values
	Files  []File
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, vals := range f.Values {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				return nil, "", err
			}
		}
	}
	for _, file := range f.Files {
		part, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", file.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// doJSON sends body as JSON and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		rdr = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, rdr, "application/json", authed, out)
}

// doForm sends a multipart body. Uploads are always authenticated.
func (c *Client) doForm(ctx context.Context, method, path string, form *Form, out any) error {
	rdr, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("encoding form: %w", err)
	}
	return c.do(ctx, method, path, rdr, contentType, true, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		token, err := c.tokens.Token()
		if err != nil {
			return fmt.Errorf("loading token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
