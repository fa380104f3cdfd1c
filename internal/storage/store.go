// Package storage holds uploaded item and claim photos. Keys are slash
// separated, relative, and never contain "..".
package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var ErrObjectNotFound = errors.New("object not found")

// ImageStore persists encoded images and returns the URL clients fetch them from.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFor maps a URL returned by Put back to its key. URLs this store did not
	// issue report false.
	KeyFor(rawURL string) (string, bool)
}

func keyAfter(rawURL string, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(rawURL), prefix)
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	unescaped, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	key, err := CleanKey(unescaped)
	if err != nil {
		return "", false
	}
	return key, true
}
