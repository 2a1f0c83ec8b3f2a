package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

// ImageTypes are the accepted profile picture formats.
var ImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Store saves uploaded media and returns the public URL path it is served at.
type Store interface {
	Save(ctx context.Context, dir string, content io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// LocalStore writes files under root and serves them from baseURL.
type LocalStore struct {
	root     string
	baseURL  string
	maxBytes int64
	allowed  map[string]bool
}

func NewLocalStore(root, baseURL string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &LocalStore{
		root:     root,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		allowed:  ImageTypes,
	}, nil
}

// Save sniffs the content type from the bytes, never from the client's
// filename or header.
func (s *LocalStore) Save(ctx context.Context, dir string, content io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	mt := mimetype.Detect(data)
	if !s.allowed[mt.String()] {
		return "", fmt.Errorf("%w: %s", ErrInvalidContentType, mt.String())
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.New().String() + mt.Extension()
	target := filepath.Join(s.root, dir, name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return path.Join(s.baseURL, dir, name), nil
}

// Delete removes a file previously returned by Save. Unknown URLs are ignored.
func (s *LocalStore) Delete(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}
