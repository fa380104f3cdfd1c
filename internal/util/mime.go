package util

import (
	"mime"
	"path/filepath"
	"strings"
)

// IsImageMIME reports whether a declared content type is an image type.
// Parameters such as charset are ignored.
func IsImageMIME(mimeType string) bool {
	cleaned := strings.ToLower(strings.TrimSpace(mimeType))
	if mediaType, _, err := mime.ParseMediaType(cleaned); err == nil {
		cleaned = mediaType
	}
	return strings.HasPrefix(cleaned, "image/")
}

func IsImageExtension(extension string) bool {
	switch strings.ToLower(strings.TrimSpace(extension)) {
	case ".png", ".jpg", ".jpeg", ".jpe", ".jfif", ".gif", ".webp", ".bmp", ".dib", ".tiff", ".tif", ".heic", ".heif", ".avif":
		return true
	default:
		return false
	}
}

// DeclaredImage checks what the client claims to be sending. An empty content
// type falls back to the filename extension; the bytes are sniffed later anyway.
func DeclaredImage(contentType string, filename string) bool {
	if strings.TrimSpace(contentType) == "" || strings.EqualFold(strings.TrimSpace(contentType), "application/octet-stream") {
		return IsImageExtension(filepath.Ext(filename))
	}
	return IsImageMIME(contentType)
}
