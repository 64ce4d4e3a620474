package memory

import (
	"context"
	"sync"

	"github.com/aretw0/tmsim/pkg/domain"
)

// Cache implements ports.DocumentCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get returns a copy of the cached document.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return clone(data), nil
}

// Set stores a copy of data.
func (c *Cache) Set(ctx context.Context, key string, data []byte) error {
	copied := clone(data)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached documents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
