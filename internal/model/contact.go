// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ContactSubject is the category a visitor picks on the contact form.
type ContactSubject string

// Contact subjects offered by the form.
const (
	SubjectGeneral     ContactSubject = "Genel Bilgi"
	SubjectQuote       ContactSubject = "Teklif Talebi"
	SubjectPartnership ContactSubject = "İş Birliği"
	SubjectComplaint   ContactSubject = "Şikayet / Öneri"
	SubjectOther       ContactSubject = "Diğer"
)

// ContactSubjects lists the subjects in form order.
var ContactSubjects = []ContactSubject{
	SubjectGeneral,
	SubjectQuote,
	SubjectPartnership,
	SubjectComplaint,
	SubjectOther,
}

// Valid reports whether s is one of ContactSubjects.
func (s ContactSubject) Valid() bool {
	for _, known := range ContactSubjects {
		if s == known {
			return true
		}
	}
	return false
}

// Contact is a message left through the contact form.
type Contact struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone,omitempty"`
	Subject    ContactSubject `json:"subject"`
	Message    string         `json:"message"`
	IsRead     bool           `json:"isRead"`
	IsReplied  bool           `json:"isReplied"`
	AdminNotes string         `json:"adminNotes,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	Country    string         `json:"country,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
