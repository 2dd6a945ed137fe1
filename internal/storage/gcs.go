package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCSStore keeps proofs in a Google Cloud Storage bucket
type GCSStore struct {
	client *gcs.Client
	bucket string
	public bool
}

// NewGCSStore connects with application default credentials
func NewGCSStore(ctx context.Context, bucket string, public bool) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, public: public}, nil
}

// Upload writes data to the bucket. Without overwrite the write is conditional on the
// object not existing yet.
func (s *GCSStore) Upload(ctx context.Context, path string, data []byte, contentType string, overwrite bool) error {
	obj := s.client.Bucket(s.bucket).Object(path)
	if !overwrite {
		obj = obj.If(gcs.Conditions{DoesNotExist: true})
	}

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "private, max-age=0"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return nil
}

// Open streams an object from the bucket
func (s *GCSStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(path).NewReader(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	return r, err
}

// Exists checks the object's attributes
func (s *GCSStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(path).Attrs(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return false, nil
	}
	return err == nil, err
}

// PublicURL returns the storage.googleapis.com URL when the bucket is public
func (s *GCSStore) PublicURL(path string) string {
	if !s.public {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, path)
}

// Close releases the client
func (s *GCSStore) Close() error {
	return s.client.Close()
}
