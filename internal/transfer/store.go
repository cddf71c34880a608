package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

// BucketStore is the slice of object storage the transfer client
// needs. The production implementation is Cloud Storage; tests use an
// in-memory fake.
type BucketStore interface {
	// Exists reports whether the named object is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Read opens the named object. Fails with glossary.ErrNotFound if
	// it is absent.
	Read(ctx context.Context, name string) (io.ReadCloser, error)

	// Write replaces the named object with the contents of r.
	Write(ctx context.Context, name string, r io.Reader) error

	// List returns all object names in the bucket.
	List(ctx context.Context) ([]string, error)
}

// GCSStore is a BucketStore backed by one Cloud Storage bucket.
type GCSStore struct {
	bucket *storage.BucketHandle
}

// NewGCSStore wraps the named bucket of an existing storage client.
func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{bucket: client.Bucket(bucket)}
}

func (s *GCSStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.bucket.Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, mapStorageError(err)
	}
	return true, nil
}

func (s *GCSStore) Read(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := s.bucket.Object(name).NewReader(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return r, nil
}

func (s *GCSStore) Write(ctx context.Context, name string, r io.Reader) error {
	w := s.bucket.Object(name).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return mapStorageError(err)
	}
	if err := w.Close(); err != nil {
		return mapStorageError(err)
	}
	return nil
}

func (s *GCSStore) List(ctx context.Context) ([]string, error) {
	var names []string
	it := s.bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return names, nil
		}
		if err != nil {
			return nil, mapStorageError(err)
		}
		names = append(names, attrs.Name)
	}
}

// mapStorageError folds Cloud Storage failures into the shared error
// taxonomy so callers can errors.Is them uniformly.
func mapStorageError(err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%w: %v", glossary.ErrNotFound, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return fmt.Errorf("%w: %v", glossary.ErrAuthentication, err)
		case 403:
			return fmt.Errorf("%w: %v", glossary.ErrPermissionDenied, err)
		case 404:
			return fmt.Errorf("%w: %v", glossary.ErrNotFound, err)
		case 409:
			return fmt.Errorf("%w: %v", glossary.ErrAlreadyExists, err)
		}
		return err
	}
	return fmt.Errorf("%w: %v", glossary.ErrTransient, err)
}
