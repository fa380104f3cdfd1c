package util

import (
	"path"
	"strings"

	"github.com/gosimple/slug"
)

const (
	fallbackStem = "image"
	maxStemRunes = 60
)

// FileStem returns the base name of a client-supplied filename without its
// extension. Both slash styles are treated as separators.
func FileStem(name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// SlugStem turns a client filename into a URL-safe object key fragment.
func SlugStem(name string) string {
	s := slug.Make(FileStem(name))
	if s == "" {
		return fallbackStem
	}
	if runes := []rune(s); len(runes) > maxStemRunes {
		s = strings.Trim(string(runes[:maxStemRunes]), "-")
	}
	return s
}
