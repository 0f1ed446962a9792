package data

import (
	"sync"
	"time"

	"stylegrid/internal/model"
)

// DefaultCacheTTL bounds how long a fetched table is reused before the
// source is consulted again.
const DefaultCacheTTL = 24 * time.Hour

type cacheEntry struct {
	table     *model.RawTable
	expiresAt time.Time
}

// TableCache is a time-boxed cache of normalized tables keyed by source key.
// Entries are replaced atomically and invalidated by expiry only. The cache
// is safe for concurrent use; cached tables must be treated as read-only.
type TableCache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration

	stop chan struct{}
	once sync.Once
}

// NewTableCache creates a cache with the given TTL (DefaultCacheTTL if ttl
// is zero) and starts its background sweep.
func NewTableCache(ttl time.Duration) *TableCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &TableCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get returns a cached table if present and not expired.
func (c *TableCache) Get(key string) (*model.RawTable, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.table, true
}

// Set stores a table under key, replacing any previous entry.
func (c *TableCache) Set(key string, table *model.RawTable) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{
		table:     table,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *TableCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

// Close stops the background sweep.
func (c *TableCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// sweep periodically removes expired entries.
func (c *TableCache) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.store {
				if now.After(entry.expiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
