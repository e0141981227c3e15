package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when an object does not exist.
var ErrNotFound = errors.New("object not found")

// ContentTypeJSONZstd is the content type of objects written by PutJSON.
const ContentTypeJSONZstd = "application/zstd"

// EnsureBucket creates bucket when it does not exist yet.
func EnsureBucket(ctx context.Context, client Client, bucket, region string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// PutJSON stores v as zstd-compressed JSON under name.
func PutJSON(ctx context.Context, client Client, bucket, name string, v any) error {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("failed to create encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(v); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to compress %s: %w", name, err)
	}

	size := int64(buf.Len())
	_, err = client.PutObject(ctx, bucket, name, &buf, size, minio.PutObjectOptions{
		ContentType: ContentTypeJSONZstd,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return nil
}

// GetJSON loads an object written by PutJSON into v. It returns ErrNotFound
// when the object does not exist.
func GetJSON(ctx context.Context, client Client, bucket, name string, v any) error {
	obj, err := client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return wrapNotFound(name, err)
	}
	defer obj.Close()

	dec, err := zstd.NewReader(obj)
	if err != nil {
		return wrapNotFound(name, err)
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(v); err != nil {
		return wrapNotFound(name, err)
	}
	return nil
}

// RemovePrefix deletes every object under prefix and returns how many were
// removed.
func RemovePrefix(ctx context.Context, client Client, bucket, prefix string) (int, error) {
	var objects []minio.ObjectInfo
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return 0, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		objects = append(objects, obj)
	}
	if len(objects) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		objectsCh <- obj
	}
	close(objectsCh)

	for rErr := range client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		return 0, fmt.Errorf("failed to remove %s: %w", rErr.ObjectName, rErr.Err)
	}
	return len(objects), nil
}

// wrapNotFound maps a missing-key response to ErrNotFound.
func wrapNotFound(name string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return fmt.Errorf("failed to read %s: %w", name, err)
}
