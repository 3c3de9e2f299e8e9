// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ValidatePathWithinBase returns an error unless targetPath resolves to
// basePath or somewhere below it.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: path escapes base directory")
	}

	return nil
}

// SafeJoinPath joins components onto basePath and rejects results that
// escape it.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	fullPath := filepath.Join(append([]string{basePath}, components...)...)
	if err := ValidatePathWithinBase(basePath, fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}

// UploadURL builds the public path of a stored upload.
func UploadURL(prefix, folder, filename string) string {
	return path.Join("/", prefix, folder, filename)
}

// UploadFilePath maps a public upload path such as
// "/uploads/gallery/x.jpg" to its location under root. It returns
// ok=false for paths outside prefix or that try to escape root.
func UploadFilePath(root, prefix, urlPath string) (string, bool) {
	prefix = "/" + strings.Trim(prefix, "/") + "/"
	cleaned := path.Clean(urlPath)
	if !strings.HasPrefix(urlPath, prefix) || !strings.HasPrefix(cleaned, prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(cleaned, prefix)
	full, err := SafeJoinPath(root, filepath.FromSlash(rel))
	if err != nil {
		return "", false
	}
	return full, true
}
