package cache

import (
	"context"
	"sync"
)

// MemoryCache keeps view versions in process. Used when no Redis is
// configured and in tests.
type MemoryCache struct {
	mu       sync.Mutex
	versions map[string]int64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{versions: map[string]int64{}}
}

func (c *MemoryCache) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[path]++
	return nil
}

func (c *MemoryCache) Version(_ context.Context, path string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[path], nil
}
