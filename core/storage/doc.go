// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface so uploads and
// reconciliation results can be persisted to AWS S3 or a self-hosted MinIO
// instance, and mocked in tests (see core/storage/mocks).
//
// # Operations
//
//   - EnsureBucket: Creates the working bucket on first use.
//   - PutJSON / GetJSON: Store and load values as zstd-compressed JSON.
//   - RemovePrefix: Deletes everything under a prefix (e.g. on shutdown).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.PutJSON(ctx, client, config.Bucket, "results/"+id, result)
package storage
