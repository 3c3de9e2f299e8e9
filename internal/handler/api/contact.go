// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/util"
)

// ContactCreatedMessage is shown to visitors after a message is stored.
const ContactCreatedMessage = "Mesajınız başarıyla gönderildi. En kısa sürede size dönüş yapacağız."

// UnreadCountResponse is the body of GET /api/contact/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// CreateContact handles the public POST /api/contact.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if !decodeJSON(w, r, &in) {
		return
	}

	ip := util.ClientIP(r)
	meta := service.ContactMeta{
		IPAddress: ip,
		UserAgent: util.SummarizeUserAgent(r.UserAgent()),
	}
	if h.geo != nil {
		meta.Country = h.geo.Country(ip)
	}

	c, err := h.svc.Contacts.Create(r.Context(), in, meta)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "contact message received", "id", c.ID, "subject", c.Subject, "country", c.Country)
	WriteJSON(w, http.StatusCreated, successResponse{Success: true, Message: ContactCreatedMessage})
}

// ListContacts handles GET /api/contact.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	isRead, err := queryBool(r, "isRead")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	isReplied, err := queryBool(r, "isReplied")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	contacts, err := h.svc.Contacts.List(r.Context(), service.ContactFilter{
		IsRead:    isRead,
		IsReplied: isReplied,
		Subject:   r.URL.Query().Get("subject"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, contacts)
}

// UnreadCount handles GET /api/contact/unread-count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Contacts.UnreadCount(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, UnreadCountResponse{Count: n})
}

// GetContact handles GET /api/contact/{id}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// UpdateContact handles PUT /api/contact/{id}.
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var patch service.ContactPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	c, err := h.svc.Contacts.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// MarkContactRead handles PUT /api/contact/{id}/read.
func (h *Handler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Contacts.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// MarkContactReplied handles PUT /api/contact/{id}/replied.
func (h *Handler) MarkContactReplied(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Contacts.MarkReplied(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

// DeleteContact handles DELETE /api/contact/{id}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeSuccess(w, "Message deleted")
}
