package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images below a directory that the HTTP server exposes
// under URLPrefix.
type LocalStore struct {
	validator *KeyValidator
	baseURL   string
}

const URLPrefix = "/uploads/"

func NewLocal(root string, publicBaseURL string) (*LocalStore, error) {
	validator, err := NewKeyValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &LocalStore{
		validator: validator,
		baseURL:   strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

func (s *LocalStore) Root() string {
	return s.validator.RootAbs()
}

// Put writes to a temporary sibling first so readers never see a partial file.
func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	resolved, err := s.validator.Resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create parent directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(resolved), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close %q: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("chmod %q: %w", key, err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename %q: %w", key, err)
	}

	cleaned, _ := CleanKey(key)
	return s.URL(cleaned), nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	resolved, err := s.validator.Resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("remove %q: %w", key, err)
	}

	return nil
}

func (s *LocalStore) KeyFor(rawURL string) (string, bool) {
	return keyAfter(rawURL, s.baseURL+URLPrefix)
}

// URL is the public address of an already-cleaned key.
func (s *LocalStore) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return s.baseURL + URLPrefix + strings.Join(segments, "/")
}
