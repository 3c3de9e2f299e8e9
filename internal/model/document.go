// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Collection names as they appear in the serialized document.
const (
	CollectionProjects   = "projects"
	CollectionNews       = "news"
	CollectionCareers    = "careers"
	CollectionGallery    = "gallery"
	CollectionReferences = "references"
	CollectionContacts   = "contacts"
	CollectionSettings   = "settings"
)

// Collections lists every collection name in document order.
var Collections = []string{
	CollectionProjects,
	CollectionNews,
	CollectionCareers,
	CollectionGallery,
	CollectionReferences,
	CollectionContacts,
	CollectionSettings,
}

// Document is the root aggregate holding every collection of the site.
type Document struct {
	Projects   []Project     `json:"projects" bson:"projects"`
	News       []News        `json:"news" bson:"news"`
	Careers    []Career      `json:"careers" bson:"careers"`
	Gallery    []GalleryItem `json:"gallery" bson:"gallery"`
	References []Reference   `json:"references" bson:"references"`
	Contacts   []Contact     `json:"contacts" bson:"contacts"`
	Settings   Settings      `json:"settings" bson:"settings"`
}

// NewDocument returns an empty document with default settings.
func NewDocument() *Document {
	d := &Document{Settings: DefaultSettings()}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones so they serialize as
// [] rather than null, and pins the settings id.
func (d *Document) Normalize() {
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.News == nil {
		d.News = []News{}
	}
	if d.Careers == nil {
		d.Careers = []Career{}
	}
	if d.Gallery == nil {
		d.Gallery = []GalleryItem{}
	}
	if d.References == nil {
		d.References = []Reference{}
	}
	if d.Contacts == nil {
		d.Contacts = []Contact{}
	}
	if d.Settings.HeroSlides == nil {
		d.Settings.HeroSlides = []HeroSlide{}
	}
	d.Settings.ID = SettingsID
	for i := range d.Projects {
		if d.Projects[i].Gallery == nil {
			d.Projects[i].Gallery = []string{}
		}
	}
	for i := range d.Careers {
		if d.Careers[i].Requirements == nil {
			d.Careers[i].Requirements = []string{}
		}
	}
}
