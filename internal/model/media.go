// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"path/filepath"
	"strings"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypePDF  = "application/pdf"
	MimeTypeMP4  = "video/mp4"
	MimeTypeWebM = "video/webm"
)

// Upload folders under the uploads root.
const (
	FolderProjects   = "projects"
	FolderNews       = "news"
	FolderHero       = "hero"
	FolderGallery    = "gallery"
	FolderReferences = "references"
	FolderGeneral    = "general"
)

// UploadFolders lists every folder an upload may target.
var UploadFolders = []string{
	FolderProjects,
	FolderNews,
	FolderHero,
	FolderGallery,
	FolderReferences,
	FolderGeneral,
}

// UploadURLPrefix is the public path prefix of stored uploads.
const UploadURLPrefix = "/uploads/"

// Default image bounds; larger images are downscaled to fit.
const (
	MaxImageWidth  = 1920
	MaxImageHeight = 1080
)

// AllowedMimeTypes maps accepted upload MIME types to their canonical
// file extension.
var AllowedMimeTypes = map[string]string{
	MimeTypeJPEG: ".jpg",
	MimeTypePNG:  ".png",
	MimeTypeGIF:  ".gif",
	MimeTypeWebP: ".webp",
	MimeTypeMP4:  ".mp4",
	MimeTypeWebM: ".webm",
	MimeTypePDF:  ".pdf",
}

// IsValidFolder reports whether name is a known upload folder.
func IsValidFolder(name string) bool {
	for _, f := range UploadFolders {
		if f == name {
			return true
		}
	}
	return false
}

// IsImageMime reports whether the MIME type is an image.
func IsImageMime(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// IsVideoMime reports whether the MIME type is a video.
func IsVideoMime(mime string) bool {
	return strings.HasPrefix(mime, "video/")
}

// MimeTypeFromExtension guesses the MIME type from a file name.
// It returns "" for extensions that are not accepted.
func MimeTypeFromExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return MimeTypeJPEG
	case ".png":
		return MimeTypePNG
	case ".gif":
		return MimeTypeGIF
	case ".webp":
		return MimeTypeWebP
	case ".mp4":
		return MimeTypeMP4
	case ".webm":
		return MimeTypeWebM
	case ".pdf":
		return MimeTypePDF
	default:
		return ""
	}
}
