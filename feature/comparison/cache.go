package comparison

import (
	"context"
	"sync"
	"time"

	"table-reconciler/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// cachedResult is a loaded result and when it was loaded.
type cachedResult struct {
	result *reconcile.Result
	loaded time.Time
}

// resultCache keeps recently used results in memory so paging through a
// result does not download it from storage on every request.
type resultCache struct {
	mu      sync.RWMutex
	entries map[string]cachedResult
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		entries: make(map[string]cachedResult),
		ttl:     ttl,
		now:     time.Now,
	}
}

// expired reports whether e is older than the cache TTL. A zero TTL
// disables caching.
func (c *resultCache) expired(e cachedResult) bool {
	if c.ttl <= 0 {
		return true
	}
	return c.now().Sub(e.loaded) > c.ttl
}

func (c *resultCache) lookup(id string) (*reconcile.Result, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	if !ok || c.expired(e) {
		return nil, false
	}
	return e.result, true
}

// Put stores res under id and drops expired entries.
func (c *resultCache) Put(id string, res *reconcile.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, k)
		}
	}
	c.entries[id] = cachedResult{result: res, loaded: c.now()}
}

// Get returns the cached result for id, calling load on a miss. Concurrent
// misses for the same id share one load.
func (c *resultCache) Get(ctx context.Context, id string, load func(context.Context, string) (*reconcile.Result, error)) (*reconcile.Result, error) {
	if res, ok := c.lookup(id); ok {
		return res, nil
	}

	v, err, _ := c.sf.Do(id, func() (any, error) {
		// Another caller may have filled the entry while we waited.
		if res, ok := c.lookup(id); ok {
			return res, nil
		}
		res, err := load(ctx, id)
		if err != nil {
			return nil, err
		}
		c.Put(id, res)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*reconcile.Result), nil
}

// Reset drops every entry.
func (c *resultCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]cachedResult)
	c.mu.Unlock()
}
