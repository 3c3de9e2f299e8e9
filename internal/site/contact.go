// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/render"
	"github.com/olegiv/ozpolat-cms/internal/seo"
	"github.com/olegiv/ozpolat-cms/internal/service"
	"github.com/olegiv/ozpolat-cms/internal/util"
)

// maxContactForm caps the urlencoded contact form body.
const maxContactForm = 64 << 10

// Messages shown on the contact page.
const (
	contactSentMessage = "Mesajınız başarıyla gönderildi. En kısa sürede size dönüş yapacağız."
	fieldErrorMessage  = "Lütfen bu alanı kontrol edin."
)

var contactFields = []string{"name", "email", "phone", "subject", "message"}

// Contact renders the contact form.
func (h *Handler) Contact(w http.ResponseWriter, r *http.Request) {
	data, err := h.contactPage(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "pages/contact", data)
}

func (h *Handler) contactPage(r *http.Request) (render.TemplateData, error) {
	data, err := h.page(r, "/iletisim", &seo.PageData{Title: "İletişim", Path: "/iletisim"})
	if err != nil {
		return data, err
	}
	data.Data = model.ContactSubjects
	return data, nil
}

// SubmitContact stores a message from the contact form. Invalid input
// re-renders the form with 422; success redirects back with a flash.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactForm)
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := make(map[string]string, len(contactFields))
	for _, f := range contactFields {
		form[f] = strings.TrimSpace(r.PostForm.Get(f))
	}

	ip := util.ClientIP(r)
	meta := service.ContactMeta{
		IPAddress: ip,
		UserAgent: util.SummarizeUserAgent(r.UserAgent()),
	}
	if h.geo != nil {
		meta.Country = h.geo.Country(ip)
	}

	_, err := h.svc.Contacts.Create(r.Context(), service.ContactInput{
		Name:    form["name"],
		Email:   form["email"],
		Phone:   form["phone"],
		Subject: form["subject"],
		Message: form["message"],
	}, meta)

	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		data, perr := h.contactPage(r)
		if perr != nil {
			h.fail(w, r, perr)
			return
		}
		data.Form = form
		data.Errors = make(map[string]string, len(validation.Fields))
		for field := range validation.Fields {
			data.Errors[field] = fieldErrorMessage
		}
		h.render(w, r, http.StatusUnprocessableEntity, "pages/contact", data)
	case err != nil:
		h.fail(w, r, err)
	default:
		h.renderer.SetFlash(r, contactSentMessage, render.FlashSuccess)
		http.Redirect(w, r, "/iletisim", http.StatusSeeOther)
	}
}
