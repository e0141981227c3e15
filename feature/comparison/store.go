package comparison

import (
	"context"
	"errors"
	"fmt"

	"table-reconciler/core/dataset"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"

	"github.com/google/uuid"
)

const (
	uploadsPrefix = "uploads/"
	resultsPrefix = "results/"
)

var (
	// ErrInvalidID is returned for ids that are not UUIDs.
	ErrInvalidID = errors.New("invalid id")
	// ErrUploadExpired is returned when an uploaded file is no longer stored.
	ErrUploadExpired = errors.New("upload expired or unknown")
	// ErrResultExpired is returned when a comparison result is no longer stored.
	ErrResultExpired = errors.New("result expired or unknown")
)

// Store persists uploaded datasets and comparison results in object storage.
type Store struct {
	client storage.Client
	bucket string
}

// NewStore creates a store over bucket.
func NewStore(client storage.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// objectName validates id and returns its object key under prefix.
func objectName(prefix, id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return prefix + u.String(), nil
}

// SaveUpload stores an uploaded dataset under id.
func (s *Store) SaveUpload(ctx context.Context, id string, ds *dataset.Dataset) error {
	name, err := objectName(uploadsPrefix, id)
	if err != nil {
		return err
	}
	return storage.PutJSON(ctx, s.client, s.bucket, name, ds)
}

// LoadUpload loads the dataset stored under id.
func (s *Store) LoadUpload(ctx context.Context, id string) (*dataset.Dataset, error) {
	name, err := objectName(uploadsPrefix, id)
	if err != nil {
		return nil, err
	}
	var ds dataset.Dataset
	if err := storage.GetJSON(ctx, s.client, s.bucket, name, &ds); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUploadExpired, err)
		}
		return nil, err
	}
	return &ds, nil
}

// SaveResult stores a comparison result under id.
func (s *Store) SaveResult(ctx context.Context, id string, res *reconcile.Result) error {
	name, err := objectName(resultsPrefix, id)
	if err != nil {
		return err
	}
	return storage.PutJSON(ctx, s.client, s.bucket, name, res)
}

// LoadResult loads the comparison result stored under id.
func (s *Store) LoadResult(ctx context.Context, id string) (*reconcile.Result, error) {
	name, err := objectName(resultsPrefix, id)
	if err != nil {
		return nil, err
	}
	var res reconcile.Result
	if err := storage.GetJSON(ctx, s.client, s.bucket, name, &res); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrResultExpired, err)
		}
		return nil, err
	}
	return &res, nil
}

// Clear removes every stored upload and result and returns how many objects
// were deleted.
func (s *Store) Clear(ctx context.Context) (int, error) {
	total := 0
	for _, prefix := range []string{uploadsPrefix, resultsPrefix} {
		n, err := storage.RemovePrefix(ctx, s.client, s.bucket, prefix)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
