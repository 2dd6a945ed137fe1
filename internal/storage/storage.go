package storage

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrObjectExists is returned by Upload when overwrite is false and the path is taken
	ErrObjectExists = errors.New("storage: object already exists")
	// ErrObjectNotFound is returned when a path has no object
	ErrObjectNotFound = errors.New("storage: object not found")
)

// BlobStore holds payment proof images addressed by relative path
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string, overwrite bool) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Exists(ctx context.Context, path string) (bool, error)
	// PublicURL returns a directly reachable URL, or "" when objects are not publicly served
	PublicURL(path string) string
}

// ValidContentTypes returns allowed MIME types for proof uploads
func ValidContentTypes() map[string]bool {
	return map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
	}
}

// MaxFileSize returns the default maximum proof size (5MB)
func MaxFileSize() int64 {
	return 5 * 1024 * 1024
}

// IsValidContentType checks if the content type is allowed
func IsValidContentType(contentType string) bool {
	return ValidContentTypes()[contentType]
}
