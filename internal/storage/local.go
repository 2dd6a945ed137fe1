package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage handles proof storage on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Upload writes data at the relative path, creating parent directories
func (s *LocalStorage) Upload(ctx context.Context, path string, data []byte, contentType string, overwrite bool) error {
	filePath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(filePath)
		return fmt.Errorf("failed to save file: %w", err)
	}
	return f.Close()
}

// Open returns the stored object for reading
func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	filePath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return f, err
}

// Exists checks if a file exists
func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	filePath, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// PublicURL is empty: local proofs are only served through signed links
func (s *LocalStorage) PublicURL(path string) string {
	return ""
}

// Delete removes a file
func (s *LocalStorage) Delete(path string) error {
	filePath, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(filePath)
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(path string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(path))
}

// resolve maps a relative object path into basePath, rejecting traversal
func (s *LocalStorage) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.basePath, clean), nil
}
