// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the public page templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var Templates embed.FS

//go:embed all:static
var Static embed.FS

// TemplatesRoot returns the templates with the "templates/" prefix removed.
func TemplatesRoot() fs.FS {
	sub, err := fs.Sub(Templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticRoot returns the static assets with the "static/" prefix removed.
func StaticRoot() fs.FS {
	sub, err := fs.Sub(Static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
