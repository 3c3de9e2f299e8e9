// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/service"
)

// LoginResult is the body of a successful login.
type LoginResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CheckResult is the body of an auth check.
type CheckResult struct {
	Authenticated bool `json:"authenticated"`
	User          *struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user,omitempty"`
}

// AuthAPI logs the admin in and out.
type AuthAPI struct {
	c *Client
}

// Login exchanges the admin password for a token and stores it. A
// rejected password drops any token already held, leaving the client
// anonymous.
func (a *AuthAPI) Login(ctx context.Context, password string) (*LoginResult, error) {
	var out LoginResult
	body := map[string]string{"password": password}
	if err := a.c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, false, &out); err != nil {
		if IsUnauthorized(err) {
			if clearErr := a.c.tokens.ClearToken(); clearErr != nil {
				return nil, errors.Join(err, clearErr)
			}
		}
		return nil, err
	}
	if out.Token != "" {
		if err := a.c.tokens.SetToken(out.Token); err != nil {
			return &out, err
		}
	}
	return &out, nil
}

// Check reports whether the stored token is still valid. An expired or
// missing token yields Authenticated false, not an error.
func (a *AuthAPI) Check(ctx context.Context) (*CheckResult, error) {
	var out CheckResult
	err := a.c.doJSON(ctx, http.MethodGet, "/api/auth/check", nil, true, &out)
	if IsUnauthorized(err) {
		return &CheckResult{Authenticated: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session and always forgets the stored token.
func (a *AuthAPI) Logout(ctx context.Context) error {
	err := a.c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, true, nil)
	if clearErr := a.c.tokens.ClearToken(); err == nil {
		err = clearErr
	}
	return err
}

// IsAuthenticated reports whether a token is stored. It does not ask the
// server; use Check for that.
func (a *AuthAPI) IsAuthenticated() bool {
	token, err := a.c.tokens.Token()
	return err == nil && token != ""
}

// ProjectsAPI manages projects.
type ProjectsAPI struct {
	resource[model.Project, service.ProjectInput, service.ProjectPatch]
}

// List returns projects, optionally of one category.
func (a *ProjectsAPI) List(ctx context.Context, category string) ([]model.Project, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	return a.list(ctx, q, false)
}

// NewsAPI manages news articles.
type NewsAPI struct {
	resource[model.NewsView, service.NewsInput, service.NewsPatch]
}

// List returns all news, newest first.
func (a *NewsAPI) List(ctx context.Context) ([]model.NewsView, error) {
	return a.list(ctx, nil, false)
}

// CareerFilter narrows a careers listing.
type CareerFilter struct {
	All        bool // include inactive postings; admin only
	Type       string
	Department string
}

// CareersAPI manages job postings.
type CareersAPI struct {
	resource[model.Career, service.CareerInput, service.CareerPatch]
}

// List returns postings. Inactive ones are included only for an
// authenticated admin asking for All.
func (a *CareersAPI) List(ctx context.Context, f CareerFilter) ([]model.Career, error) {
	q := url.Values{}
	if f.All {
		q.Set("all", "true")
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Department != "" {
		q.Set("department", f.Department)
	}
	return a.list(ctx, q, f.All)
}

// SetActive toggles a posting's visibility.
func (a *CareersAPI) SetActive(ctx context.Context, id string, active bool) (*model.Career, error) {
	return a.Update(ctx, id, service.CareerPatch{IsActive: &active})
}

// GalleryUploadResult is the body of a multi-file gallery upload.
type GalleryUploadResult struct {
	Success bool                `json:"success"`
	Items   []model.GalleryItem `json:"items"`
}

// GalleryAPI manages gallery items.
type GalleryAPI struct {
	resource[model.GalleryItem, service.GalleryInput, service.GalleryPatch]
}

// List returns items, optionally filtered by type and category.
func (a *GalleryAPI) List(ctx context.Context, typ, category string) ([]model.GalleryItem, error) {
	q := url.Values{}
	if typ != "" {
		q.Set("type", typ)
	}
	if category != "" {
		q.Set("category", category)
	}
	return a.list(ctx, q, false)
}

// Upload stores one file and creates an item for it. thumbnail may be nil.
func (a *GalleryAPI) Upload(ctx context.Context, file File, alt, category string, thumbnail *File) (*model.GalleryItem, error) {
	file.Field = "file"
	form := &Form{Values: url.Values{"alt": {alt}, "category": {category}}, Files: []File{file}}
	if thumbnail != nil {
		thumb := *thumbnail
		thumb.Field = "thumbnail"
		form.Files = append(form.Files, thumb)
	}
	var out model.GalleryItem
	if err := a.c.doForm(ctx, http.MethodPost, "/api/gallery/upload", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadMany stores files and creates one item per file. Either every
// file is accepted or none is.
func (a *GalleryAPI) UploadMany(ctx context.Context, files []File, category string) ([]model.GalleryItem, error) {
	form := &Form{Values: url.Values{"category": {category}}}
	for _, f := range files {
		f.Field = "files"
		form.Files = append(form.Files, f)
	}
	var out GalleryUploadResult
	if err := a.c.doForm(ctx, http.MethodPost, "/api/gallery/upload/multiple", form, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// BulkDelete removes the listed items. Unknown ids are skipped and the
// result reports how many were removed.
func (a *GalleryAPI) BulkDelete(ctx context.Context, ids []string) (*service.BulkDeleteResult, error) {
	var out service.BulkDeleteResult
	body := map[string][]string{"ids": ids}
	if err := a.c.doJSON(ctx, http.MethodDelete, "/api/gallery/bulk", body, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReferencesAPI manages client references.
type ReferencesAPI struct {
	resource[model.Reference, service.ReferenceInput, service.ReferencePatch]
}

// List returns references by order. all includes inactive ones and
// requires an admin token.
func (a *ReferencesAPI) List(ctx context.Context, all bool) ([]model.Reference, error) {
	q := url.Values{}
	if all {
		q.Set("all", "true")
	}
	return a.list(ctx, q, all)
}

// Reorder sets the order of several references at once.
func (a *ReferencesAPI) Reorder(ctx context.Context, orders []service.OrderUpdate) error {
	body := map[string][]service.OrderUpdate{"orders": orders}
	return a.c.doJSON(ctx, http.MethodPut, "/api/references/reorder", body, true, nil)
}

// ContactFilter narrows the admin message list.
type ContactFilter struct {
	IsRead    *bool
	IsReplied *bool
	Subject   string
}

// ContactAPI sends and manages contact messages.
type ContactAPI struct {
	c *Client
}

// Send posts a visitor message. It needs no token.
func (a *ContactAPI) Send(ctx context.Context, in service.ContactInput) (*Success, error) {
	var out Success
	if err := a.c.doJSON(ctx, http.MethodPost, "/api/contact", in, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns messages, newest first.
func (a *ContactAPI) List(ctx context.Context, f ContactFilter) ([]model.Contact, error) {
	q := url.Values{}
	if f.IsRead != nil {
		q.Set("isRead", strconv.FormatBool(*f.IsRead))
	}
	if f.IsReplied != nil {
		q.Set("isReplied", strconv.FormatBool(*f.IsReplied))
	}
	if f.Subject != "" {
		q.Set("subject", f.Subject)
	}
	path := "/api/contact"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []model.Contact
	if err := a.c.doJSON(ctx, http.MethodGet, path, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount returns the number of unread messages.
func (a *ContactAPI) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := a.c.doJSON(ctx, http.MethodGet, "/api/contact/unread-count", nil, true, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// Get fetches one message.
func (a *ContactAPI) Get(ctx context.Context, id string) (*model.Contact, error) {
	return a.contact(ctx, http.MethodGet, "/api/contact/"+url.PathEscape(id), nil)
}

// Update changes the read/replied flags or the admin notes.
func (a *ContactAPI) Update(ctx context.Context, id string, p service.ContactPatch) (*model.Contact, error) {
	return a.contact(ctx, http.MethodPut, "/api/contact/"+url.PathEscape(id), p)
}

// MarkRead marks a message as read.
func (a *ContactAPI) MarkRead(ctx context.Context, id string) (*model.Contact, error) {
	return a.contact(ctx, http.MethodPut, "/api/contact/"+url.PathEscape(id)+"/read", nil)
}

// MarkReplied marks a message as replied.
func (a *ContactAPI) MarkReplied(ctx context.Context, id string) (*model.Contact, error) {
	return a.contact(ctx, http.MethodPut, "/api/contact/"+url.PathEscape(id)+"/replied", nil)
}

// Delete removes a message.
func (a *ContactAPI) Delete(ctx context.Context, id string) error {
	return a.c.doJSON(ctx, http.MethodDelete, "/api/contact/"+url.PathEscape(id), nil, true, nil)
}

func (a *ContactAPI) contact(ctx context.Context, method, path string, body any) (*model.Contact, error) {
	var out model.Contact
	if err := a.c.doJSON(ctx, method, path, body, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SettingsAPI reads and changes the site settings.
type SettingsAPI struct {
	c *Client
}

// Get returns the settings. It needs no token.
func (a *SettingsAPI) Get(ctx context.Context) (*model.Settings, error) {
	var out model.Settings
	if err := a.c.doJSON(ctx, http.MethodGet, "/api/settings", nil, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update merges p into the settings.
func (a *SettingsAPI) Update(ctx context.Context, p service.SettingsPatch) (*model.Settings, error) {
	return a.settings(ctx, http.MethodPut, "/api/settings", p)
}

// AddHeroSlide appends a carousel slide.
func (a *SettingsAPI) AddHeroSlide(ctx context.Context, in service.HeroSlideInput) (*model.Settings, error) {
	return a.settings(ctx, http.MethodPost, "/api/settings/hero-slide", in)
}

// UpdateHeroSlide changes one slide.
func (a *SettingsAPI) UpdateHeroSlide(ctx context.Context, id string, p service.HeroSlidePatch) (*model.Settings, error) {
	return a.settings(ctx, http.MethodPut, "/api/settings/hero-slide/"+url.PathEscape(id), p)
}

// DeleteHeroSlide removes one slide.
func (a *SettingsAPI) DeleteHeroSlide(ctx context.Context, id string) error {
	return a.c.doJSON(ctx, http.MethodDelete, "/api/settings/hero-slide/"+url.PathEscape(id), nil, true, nil)
}

func (a *SettingsAPI) settings(ctx context.Context, method, path string, body any) (*model.Settings, error) {
	var out model.Settings
	if err := a.c.doJSON(ctx, method, path, body, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadResult describes one stored file.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// UploadsAPI stores files that are not tied to one record.
type UploadsAPI struct {
	c *Client
}

// Upload stores one file in folder.
func (a *UploadsAPI) Upload(ctx context.Context, file File, folder string) (*UploadResult, error) {
	file.Field = "file"
	var out UploadResult
	form := &Form{Values: url.Values{"folder": {folder}}, Files: []File{file}}
	if err := a.c.doForm(ctx, http.MethodPost, "/api/upload", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadMany stores several files in folder.
func (a *UploadsAPI) UploadMany(ctx context.Context, files []File, folder string) ([]UploadResult, error) {
	form := &Form{Values: url.Values{"folder": {folder}}}
	for _, f := range files {
		f.Field = "files"
		form.Files = append(form.Files, f)
	}
	var out struct {
		Files []UploadResult `json:"files"`
	}
	if err := a.c.doForm(ctx, http.MethodPost, "/api/upload/multiple", form, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}
