package storage

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"lost-and-found/pkg/apierror"
)

// KeyValidator maps object keys onto files below a fixed root.
type KeyValidator struct {
	rootAbs string
}

func NewKeyValidator(root string) (*KeyValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload root cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}

	return &KeyValidator{rootAbs: rootAbs}, nil
}

func (v *KeyValidator) RootAbs() string {
	return v.rootAbs
}

// CleanKey normalises separators and rejects empty, hidden, control-character
// and traversal keys.
func CleanKey(key string) (string, error) {
	normalized := strings.Trim(strings.ReplaceAll(strings.TrimSpace(key), `\`, "/"), "/")
	if normalized == "" {
		return "", apierror.New("INVALID_KEY", "object key cannot be empty", key, http.StatusBadRequest)
	}

	if hasControlCharacters(normalized) {
		return "", apierror.New("INVALID_KEY", "object key contains invalid characters", key, http.StatusBadRequest)
	}

	for _, segment := range strings.Split(normalized, "/") {
		switch {
		case segment == "..":
			return "", apierror.New("PATH_TRAVERSAL", "path traversal attempt detected", key, http.StatusForbidden)
		case segment == "" || segment == ".":
			return "", apierror.New("INVALID_KEY", "object key has an empty segment", key, http.StatusBadRequest)
		case strings.HasPrefix(segment, "."):
			return "", apierror.New("INVALID_KEY", "hidden object names are not allowed", key, http.StatusBadRequest)
		}
	}

	return normalized, nil
}

// Resolve returns the absolute file path for key.
func (v *KeyValidator) Resolve(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	resolvedAbs, err := filepath.Abs(filepath.Join(v.rootAbs, filepath.FromSlash(cleaned)))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(v.rootAbs, resolvedAbs) || resolvedAbs == v.rootAbs {
		return "", apierror.New("PATH_TRAVERSAL", "resolved path is outside upload root", key, http.StatusForbidden)
	}

	return resolvedAbs, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) || char == '\x00' {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	return strings.HasPrefix(candidateAbs, rootAbs+string(filepath.Separator))
}
