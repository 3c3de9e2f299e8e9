// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging normalizes uploaded images: EXIF orientation is applied,
// oversized images are scaled down and the result is re-encoded.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/olegiv/ozpolat-cms/internal/model"
)

// ErrUnsupportedFormat is returned for data that is not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultQuality is the JPEG quality used for re-encoded images.
const DefaultQuality = 90

// Result is a processed image ready to be stored.
type Result struct {
	Data     []byte
	MimeType string
	Ext      string
	Width    int
	Height   int
}

// Processor fits images into a bounding box.
type Processor struct {
	maxWidth  int
	maxHeight int
	quality   int
}

// NewProcessor returns a processor that scales images down to fit within
// maxWidth x maxHeight. Smaller images keep their size.
func NewProcessor(maxWidth, maxHeight int) *Processor {
	return &Processor{maxWidth: maxWidth, maxHeight: maxHeight, quality: DefaultQuality}
}

// Process decodes data, applies EXIF orientation, downscales and
// re-encodes it. GIFs are returned unchanged so animations survive.
// WebP has no pure Go encoder and is re-encoded as JPEG.
func (p *Processor) Process(data []byte) (*Result, error) {
	format := detectFormat(data)
	if format == "" {
		return nil, ErrUnsupportedFormat
	}

	if format == "gif" {
		cfg, err := gif.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode gif: %w", err)
		}
		return &Result{Data: data, MimeType: model.MimeTypeGIF, Ext: ".gif", Width: cfg.Width, Height: cfg.Height}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	img = applyOrientation(img, readExifOrientation(bytes.NewReader(data)))

	b := img.Bounds()
	if p.maxWidth > 0 && p.maxHeight > 0 && (b.Dx() > p.maxWidth || b.Dy() > p.maxHeight) {
		img = imaging.Fit(img, p.maxWidth, p.maxHeight, imaging.Lanczos)
	}

	if format == "webp" {
		format = "jpeg"
	}
	encoded, err := encodeImage(img, format, p.quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b = img.Bounds()
	return &Result{
		Data:     encoded,
		MimeType: formatToMimeType(format),
		Ext:      formatToExt(format),
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

// DetectMimeType sniffs the MIME type of data.
func DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// readExifOrientation reads the EXIF orientation tag from image data.
// Returns 1 (normal) if orientation cannot be determined.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}

	return orientation
}

// applyOrientation undoes the camera rotation recorded in EXIF
// orientation values 2 through 8.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	default:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// detectFormat maps sniffed content to one of jpeg, png, gif or webp.
// Anything else, TIFF included, yields "".
func detectFormat(data []byte) string {
	switch DetectMimeType(data) {
	case model.MimeTypeJPEG:
		return "jpeg"
	case model.MimeTypePNG:
		return "png"
	case model.MimeTypeGIF:
		return "gif"
	case model.MimeTypeWebP:
		return "webp"
	default:
		return ""
	}
}

func formatToMimeType(format string) string {
	switch format {
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	default:
		return model.MimeTypeJPEG
	}
}

func formatToExt(format string) string {
	switch format {
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
