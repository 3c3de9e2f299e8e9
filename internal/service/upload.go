// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ozpolat-cms/internal/imaging"
	"github.com/olegiv/ozpolat-cms/internal/model"
	"github.com/olegiv/ozpolat-cms/internal/util"
)

// Default upload limits.
const (
	DefaultMaxUploadSize  = 20 * 1024 * 1024
	DefaultMaxUploadFiles = 20
)

// sniffLen is how many bytes are read to detect a file's type.
const sniffLen = 512

// UploadLimits bounds a single upload request.
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

// StoredFile describes a file written under the uploads root.
type StoredFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// UploadService validates uploaded files and writes them under root.
type UploadService struct {
	root      string
	prefix    string
	limits    UploadLimits
	processor *imaging.Processor
	logger    *slog.Logger
}

// NewUploadService returns a service storing files under root. Zero
// limits fall back to the defaults.
func NewUploadService(root string, limits UploadLimits, logger *slog.Logger) *UploadService {
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = DefaultMaxUploadSize
	}
	if limits.MaxFiles <= 0 {
		limits.MaxFiles = DefaultMaxUploadFiles
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{
		root:      root,
		prefix:    strings.Trim(model.UploadURLPrefix, "/"),
		limits:    limits,
		processor: imaging.NewProcessor(model.MaxImageWidth, model.MaxImageHeight),
		logger:    logger,
	}
}

// Root returns the directory uploads are stored in.
func (s *UploadService) Root() string {
	return s.root
}

// Limits returns the effective upload limits.
func (s *UploadService) Limits() UploadLimits {
	return s.limits
}

// pendingFile is a file that passed validation and is ready to be written.
type pendingFile struct {
	header *multipart.FileHeader
	mime   string
}

// Validate checks count, size and type of every file without writing
// anything.
func (s *UploadService) Validate(files []*multipart.FileHeader) error {
	_, err := s.validate(files)
	return err
}

func (s *UploadService) validate(files []*multipart.FileHeader) ([]pendingFile, error) {
	if len(files) == 0 {
		return nil, errUploadRequest("no file uploaded")
	}
	if len(files) > s.limits.MaxFiles {
		return nil, errUploadRequest(fmt.Sprintf("too many files: %d (maximum %d)", len(files), s.limits.MaxFiles))
	}

	pending := make([]pendingFile, 0, len(files))
	for _, fh := range files {
		if fh.Size > s.limits.MaxFileSize {
			return nil, errTooLarge(fh.Filename, s.limits.MaxFileSize)
		}
		mime, err := sniffHeader(fh)
		if err != nil {
			return nil, err
		}
		pending = append(pending, pendingFile{header: fh, mime: mime})
	}
	return pending, nil
}

// Save stores one file in folder.
func (s *UploadService) Save(folder string, fh *multipart.FileHeader) (*StoredFile, error) {
	stored, err := s.SaveAll(folder, []*multipart.FileHeader{fh})
	if err != nil {
		return nil, err
	}
	return &stored[0], nil
}

// SaveAll validates every file first and then writes them all to folder.
// If a write fails the files already written are removed.
func (s *UploadService) SaveAll(folder string, files []*multipart.FileHeader) ([]StoredFile, error) {
	if folder == "" {
		folder = model.FolderGeneral
	}
	if !model.IsValidFolder(folder) {
		return nil, errUploadRequest(fmt.Sprintf("invalid folder %q", folder))
	}

	pending, err := s.validate(files)
	if err != nil {
		return nil, err
	}

	stored := make([]StoredFile, 0, len(pending))
	for _, p := range pending {
		sf, err := s.write(folder, p)
		if err != nil {
			s.removeStored(stored)
			return nil, err
		}
		stored = append(stored, *sf)
	}
	return stored, nil
}

// Remove deletes stored uploads by public URL. Missing files and URLs
// outside the uploads root are ignored.
func (s *UploadService) Remove(urls ...string) {
	for _, u := range urls {
		path, ok := util.UploadFilePath(s.root, s.prefix, u)
		if !ok {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("failed to remove upload", "url", u, "error", err)
		}
	}
}

// URLs returns the public URLs of stored files.
func URLs(files []StoredFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.URL
	}
	return out
}

func (s *UploadService) removeStored(files []StoredFile) {
	s.Remove(URLs(files)...)
}

func (s *UploadService) write(folder string, p pendingFile) (*StoredFile, error) {
	f, err := p.header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %q: %w", p.header.Filename, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, s.limits.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload %q: %w", p.header.Filename, err)
	}
	if int64(len(data)) > s.limits.MaxFileSize {
		return nil, errTooLarge(p.header.Filename, s.limits.MaxFileSize)
	}

	mime := p.mime
	ext := model.AllowedMimeTypes[mime]
	if model.IsImageMime(mime) {
		res, err := s.processor.Process(data)
		if err != nil {
			return nil, errUnsupportedType(p.header.Filename, mime)
		}
		data, mime, ext = res.Data, res.MimeType, res.Ext
	}

	dir, err := util.SafeJoinPath(s.root, folder)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing upload %q: %w", p.header.Filename, err)
	}

	return &StoredFile{
		URL:      util.UploadURL(s.prefix, folder, filename),
		Filename: filename,
		MimeType: mime,
		Size:     int64(len(data)),
	}, nil
}

// sniffHeader detects the type of an uploaded file from its first bytes.
// Videos that content sniffing cannot classify fall back to the extension.
func sniffHeader(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload %q: %w", fh.Filename, err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading upload %q: %w", fh.Filename, err)
	}
	if n == 0 {
		return "", errUploadRequest(fmt.Sprintf("file %q is empty", fh.Filename))
	}

	mime := imaging.DetectMimeType(head[:n])
	if _, ok := model.AllowedMimeTypes[mime]; ok {
		return mime, nil
	}
	if byExt := model.MimeTypeFromExtension(fh.Filename); model.IsVideoMime(byExt) && mime == "application/octet-stream" {
		return byExt, nil
	}
	return "", errUnsupportedType(fh.Filename, mime)
}

// SweepResult reports what an orphan sweep found.
type SweepResult struct {
	Orphans []string
	Removed int
}

// SweepOrphans finds files under root that no URL in referenced points
// to and that are older than minAge. They are deleted unless dryRun.
func (s *UploadService) SweepOrphans(ctx context.Context, referenced map[string]bool, minAge time.Duration, dryRun bool) (*SweepResult, error) {
	res := &SweepResult{}
	cutoff := time.Now().Add(-minAge)

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		url := "/" + s.prefix + "/" + filepath.ToSlash(rel)
		if referenced[url] || isDefaultAsset(url) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		res.Orphans = append(res.Orphans, url)
		if dryRun {
			return nil
		}
		if err := os.Remove(path); err != nil {
			s.logger.Warn("failed to remove orphan upload", "url", url, "error", err)
			return nil
		}
		res.Removed++
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("sweeping uploads: %w", err)
	}
	return res, nil
}

func isDefaultAsset(url string) bool {
	return url == model.DefaultProjectImage || url == model.DefaultNewsImage
}

// ReferencedUploads collects every upload URL the document points to.
// The shared default images are left out; SweepOrphans never removes them.
func ReferencedUploads(doc *model.Document) map[string]bool {
	refs := make(map[string]bool)
	add := func(u string) {
		if strings.HasPrefix(u, model.UploadURLPrefix) && !isDefaultAsset(u) {
			refs[u] = true
		}
	}
	for _, p := range doc.Projects {
		add(p.Image)
		for _, g := range p.Gallery {
			add(g)
		}
	}
	for _, n := range doc.News {
		add(n.Image)
	}
	for _, g := range doc.Gallery {
		add(g.URL)
		add(g.Thumbnail)
	}
	for _, r := range doc.References {
		add(r.Logo)
	}
	for _, h := range doc.Settings.HeroSlides {
		add(h.Image)
	}
	return refs
}
