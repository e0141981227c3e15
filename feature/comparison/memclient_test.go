package comparison

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
)

// memClient is an in-memory storage.Client for round-trip tests.
type memClient struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemClient() *memClient {
	return &memClient{objects: make(map[string][]byte)}
}

func (m *memClient) BucketExists(context.Context, string) (bool, error) { return true, nil }

func (m *memClient) MakeBucket(context.Context, string, minio.MakeBucketOptions) error { return nil }

func (m *memClient) PutObject(_ context.Context, _, name string, r io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	m.mu.Lock()
	m.objects[name] = data
	m.mu.Unlock()
	return minio.UploadInfo{Key: name, Size: int64(len(data))}, nil
}

func (m *memClient) GetObject(_ context.Context, _, name string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	m.mu.Lock()
	data, ok := m.objects[name]
	m.mu.Unlock()
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Key: name, StatusCode: 404}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memClient) ListObjects(_ context.Context, _ string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	m.mu.Lock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, opts.Prefix) {
			keys = append(keys, k)
		}
	}
	m.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func (m *memClient) RemoveObjects(_ context.Context, _ string, objectsCh <-chan minio.ObjectInfo, _ minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	m.mu.Lock()
	for obj := range objectsCh {
		delete(m.objects, obj.Key)
	}
	m.mu.Unlock()
	ch := make(chan minio.RemoveObjectError)
	close(ch)
	return ch
}

func (m *memClient) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
