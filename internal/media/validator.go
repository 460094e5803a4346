package media

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

type Category int

const (
	CategoryUnknown Category = iota
	CategoryImage
	CategoryVideo
)

var imageExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
}

var videoExtensions = map[string]struct{}{
	"mp4": {}, "avi": {}, "mov": {}, "webm": {},
}

// Validator checks uploaded files against the configured allow-lists and size
// ceilings before any bytes are persisted.
type Validator struct {
	MaxImageBytes int64
	MaxVideoBytes int64
	Sniffer       Sniffer
}

func NewValidator(maxImageMB, maxVideoMB int, sniffer Sniffer) *Validator {
	return &Validator{
		MaxImageBytes: int64(maxImageMB) * 1024 * 1024,
		MaxVideoBytes: int64(maxVideoMB) * 1024 * 1024,
		Sniffer:       sniffer,
	}
}

// Validate returns ok with a human-readable message, or not-ok with a
// user-displayable reason. The handle's read position is untouched.
func (v *Validator) Validate(fh *multipart.FileHeader) (bool, string) {
	if fh == nil || fh.Filename == "" {
		return false, "file is empty or unreadable"
	}

	ext := Extension(fh.Filename)
	if ext == "" {
		return false, "file has no extension"
	}

	category := CategoryFor(ext)
	if category == CategoryUnknown {
		return false, fmt.Sprintf("file type .%s is not allowed", ext)
	}

	// A signature mismatch is authoritative even when the extension passed.
	if sniffed, ok := v.Sniffer.Detect(fh); ok && !categoryAccepts(category, sniffed) {
		return false, fmt.Sprintf("file content (%s) does not match its .%s extension", sniffed, ext)
	}

	limit := v.MaxImageBytes
	kind := "image"
	if category == CategoryVideo {
		limit = v.MaxVideoBytes
		kind = "video"
	}
	if fh.Size > limit {
		return false, fmt.Sprintf("%s too large: maximum size is %dMB", kind, limit/(1024*1024))
	}

	return true, "file is valid"
}

// Extension returns the lowercased filename extension without the dot.
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(strings.TrimSpace(filename))), ".")
}

// CategoryFor maps an extension onto the image or video allow-set.
func CategoryFor(ext string) Category {
	if _, ok := imageExtensions[ext]; ok {
		return CategoryImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return CategoryVideo
	}
	return CategoryUnknown
}

func categoryAccepts(category Category, mimeType string) bool {
	switch category {
	case CategoryImage:
		return strings.HasPrefix(mimeType, "image/")
	case CategoryVideo:
		return strings.HasPrefix(mimeType, "video/")
	default:
		return false
	}
}
