// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"sort"
	"strings"

	"github.com/olegiv/ozpolat-cms/internal/content"
	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/store"
)

const entityContact = "Contact"

// ContactCreatedMessage is returned to visitors after a successful submit.
const ContactCreatedMessage = "Mesajınız başarıyla gönderildi. En kısa sürede size dönüş yapacağız."

// ContactService manages contact form messages.
type ContactService struct {
	base
}

// ContactInput is what a visitor submits.
type ContactInput struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"contact_subject"`
	Message string `json:"message" validate:"notblank,max=5000"`
}

// ContactMeta describes the request a message arrived with.
type ContactMeta struct {
	IPAddress string
	Country   string
	UserAgent string
}

// ContactFilter narrows List. Nil pointers match everything.
type ContactFilter struct {
	IsRead    *bool
	IsReplied *bool
	Subject   string
}

// ContactPatch changes only the non-nil fields.
type ContactPatch struct {
	IsRead     *bool   `json:"isRead"`
	IsReplied  *bool   `json:"isReplied"`
	AdminNotes *string `json:"adminNotes" validate:"omitempty,max=5000"`
}

// Create stores a visitor message with markup stripped.
func (s *ContactService) Create(ctx context.Context, in ContactInput, meta ContactMeta) (*model.Contact, error) {
	in.Name = content.PlainText(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = content.PlainText(in.Phone)
	in.Message = content.PlainText(in.Message)
	if err := check(in); err != nil {
		return nil, err
	}

	var created model.Contact
	err := s.store.Update(ctx, func(doc *model.Document) error {
		now := s.timestamp()
		created = model.Contact{
			ID: store.GenerateID(func(id string) bool {
				return indexOf(doc.Contacts, id, contactID) >= 0
			}),
			Name:      in.Name,
			Email:     in.Email,
			Phone:     in.Phone,
			Subject:   model.ContactSubject(in.Subject),
			Message:   in.Message,
			IPAddress: meta.IPAddress,
			Country:   meta.Country,
			UserAgent: meta.UserAgent,
			CreatedAt: now,
			UpdatedAt: now,
		}
		doc.Contacts = append(doc.Contacts, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// List returns matching messages, newest first.
func (s *ContactService) List(ctx context.Context, f ContactFilter) ([]model.Contact, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Contact, 0, len(doc.Contacts))
	for i := len(doc.Contacts) - 1; i >= 0; i-- {
		c := doc.Contacts[i]
		if f.IsRead != nil && c.IsRead != *f.IsRead {
			continue
		}
		if f.IsReplied != nil && c.IsReplied != *f.IsReplied {
			continue
		}
		if f.Subject != "" && string(c.Subject) != f.Subject {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns one message.
func (s *ContactService) Get(ctx context.Context, id string) (*model.Contact, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(doc.Contacts, id, contactID)
	if i < 0 {
		return nil, notFound(entityContact, id)
	}
	c := doc.Contacts[i]
	return &c, nil
}

// UnreadCount returns the number of unread messages.
func (s *ContactService) UnreadCount(ctx context.Context) (int, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range doc.Contacts {
		if !c.IsRead {
			n++
		}
	}
	return n, nil
}

// Update merges p into the message.
func (s *ContactService) Update(ctx context.Context, id string, p ContactPatch) (*model.Contact, error) {
	if err := check(p); err != nil {
		return nil, err
	}

	var updated model.Contact
	err := s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Contacts, id, contactID)
		if i < 0 {
			return notFound(entityContact, id)
		}
		cur := doc.Contacts[i]
		setIf(&cur.IsRead, p.IsRead)
		setIf(&cur.IsReplied, p.IsReplied)
		setIf(&cur.AdminNotes, p.AdminNotes)
		cur.UpdatedAt = s.timestamp()

		doc.Contacts[i] = cur
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// MarkRead sets isRead. Repeating it is harmless.
func (s *ContactService) MarkRead(ctx context.Context, id string) (*model.Contact, error) {
	read := true
	return s.Update(ctx, id, ContactPatch{IsRead: &read})
}

// MarkReplied sets isReplied. Repeating it is harmless.
func (s *ContactService) MarkReplied(ctx context.Context, id string) (*model.Contact, error) {
	replied := true
	return s.Update(ctx, id, ContactPatch{IsReplied: &replied})
}

// Delete removes the message.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(doc *model.Document) error {
		i := indexOf(doc.Contacts, id, contactID)
		if i < 0 {
			return notFound(entityContact, id)
		}
		doc.Contacts = append(doc.Contacts[:i], doc.Contacts[i+1:]...)
		return nil
	})
}

func contactID(c model.Contact) string { return c.ID }
