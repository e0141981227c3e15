package comparison

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"table-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_LoadsOnce(t *testing.T) {
	cache := newResultCache(time.Minute)
	want := &reconcile.Result{ComparandLabel: "f.csv"}

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context, string) (*reconcile.Result, error) {
		calls.Add(1)
		<-release
		return want, nil
	}

	var wg sync.WaitGroup
	results := make([]*reconcile.Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := cache.Get(context.Background(), "id", load)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}

	// Let the callers pile up on the in-flight load before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, res := range results {
		assert.Same(t, want, res)
	}

	_, err := cache.Get(context.Background(), "id", load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "concurrent misses share a load")
}

func TestResultCache_Expiry(t *testing.T) {
	cache := newResultCache(time.Minute)
	now := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	calls := 0
	load := func(context.Context, string) (*reconcile.Result, error) {
		calls++
		return &reconcile.Result{}, nil
	}

	ctx := context.Background()
	_, err := cache.Get(ctx, "id", load)
	require.NoError(t, err)
	_, err = cache.Get(ctx, "id", load)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "id", load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestResultCache_PutAndReset(t *testing.T) {
	cache := newResultCache(time.Minute)
	res := &reconcile.Result{}
	cache.Put("id", res)

	failing := func(context.Context, string) (*reconcile.Result, error) {
		return nil, errors.New("should not load")
	}
	got, err := cache.Get(context.Background(), "id", failing)
	require.NoError(t, err)
	assert.Same(t, res, got)

	cache.Reset()
	_, err = cache.Get(context.Background(), "id", failing)
	assert.EqualError(t, err, "should not load")
}

func TestResultCache_ZeroTTL(t *testing.T) {
	cache := newResultCache(0)
	calls := 0
	load := func(context.Context, string) (*reconcile.Result, error) {
		calls++
		return &reconcile.Result{}, nil
	}

	for i := 0; i < 3; i++ {
		_, err := cache.Get(context.Background(), "id", load)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
}
