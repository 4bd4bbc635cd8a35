package store

import (
	"sync"
	"time"
)

type cacheEntry struct {
	payload  string
	storedAt time.Time
}

// PayloadCache is a concurrency-safe in-memory TTL cache for raw upstream
// payloads, keyed by the full request parameters. It keeps repeated dashboard
// refreshes for the same location from hammering GES DISC.
type PayloadCache struct {
	mu   sync.RWMutex
	data map[string]cacheEntry

	maxEntries int           // <= 0 means unlimited
	ttl        time.Duration // <= 0 means no expiry
}

// NewPayloadCache creates a PayloadCache with optional limits.
func NewPayloadCache(maxEntries int, ttl time.Duration) *PayloadCache {
	return &PayloadCache{
		data:       make(map[string]cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Get returns the cached payload for key, treating expired entries as misses.
func (c *PayloadCache) Get(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if c.ttl > 0 && time.Since(entry.storedAt) > c.ttl {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.payload, true
}

// Put stores a payload, evicting the oldest entry when over capacity.
func (c *PayloadCache) Put(key, payload string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cacheEntry{payload: payload, storedAt: time.Now()}

	if c.maxEntries > 0 && len(c.data) > c.maxEntries {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.data {
			if oldestKey == "" || e.storedAt.Before(oldest) {
				oldestKey = k
				oldest = e.storedAt
			}
		}
		delete(c.data, oldestKey)
	}
}

// Len reports the number of cached entries, including any not yet expired.
func (c *PayloadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
