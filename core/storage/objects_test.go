package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"table-reconciler/core/storage"
	"table-reconciler/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   string   `json:"id"`
	Rows []string `json:"rows"`
}

func TestPutGetJSON(t *testing.T) {
	ctx := context.Background()
	client := new(mocks.Client)

	var stored []byte
	client.On("PutObject", mock.Anything, "bucket", "results/abc", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			assert.Equal(t, int64(len(data)), args.Get(4).(int64))
			stored = data
		}).
		Return(minio.UploadInfo{}, nil)

	in := payload{ID: "abc", Rows: []string{"a", "b"}}
	require.NoError(t, storage.PutJSON(ctx, client, "bucket", "results/abc", in))
	require.NotEmpty(t, stored)

	client.On("GetObject", mock.Anything, "bucket", "results/abc", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(stored)), nil)

	var out payload
	require.NoError(t, storage.GetJSON(ctx, client, "bucket", "results/abc", &out))
	assert.Equal(t, in, out)
}

func TestGetJSON_NotFound(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "bucket", "results/gone", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

	var out payload
	err := storage.GetJSON(context.Background(), client, "bucket", "results/gone", &out)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(true, nil)
		require.NoError(t, storage.EnsureBucket(ctx, client, "bucket", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "bucket").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "bucket", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)
		require.NoError(t, storage.EnsureBucket(ctx, client, "bucket", "us-east-1"))
		client.AssertExpectations(t)
	})
}

func TestRemovePrefix(t *testing.T) {
	client := new(mocks.Client)

	listed := make(chan minio.ObjectInfo, 2)
	listed <- minio.ObjectInfo{Key: "uploads/a"}
	listed <- minio.ObjectInfo{Key: "uploads/b"}
	close(listed)
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(listed))
	client.On("RemoveObjects", mock.Anything, "bucket", mock.Anything, mock.Anything).Return(nil)

	n, err := storage.RemovePrefix(context.Background(), client, "bucket", "uploads/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	client.AssertExpectations(t)
}
