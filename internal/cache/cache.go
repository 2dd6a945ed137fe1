package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// SnapshotCache keeps the last successful reads so the roster can still be shown
// when the database is unreachable
type SnapshotCache interface {
	// Get decodes the cached value into dst and reports whether it was found
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// CustomersKey is the cache key of the customer list for a scope
func CustomersKey(scopeKey string) string {
	return "customers:" + scopeKey
}

// PaymentsKey is the cache key of the payments of one period
func PaymentsKey(period string) string {
	return "payments:" + period
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-process SnapshotCache used when Redis is not configured
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates a memory cache. A zero ttl never expires entries.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	entry := memoryEntry{data: data}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}
