package memory

import (
	"sync"
	"time"
)

// Cache is a TTL key/value store for normalized upstream responses. The
// clock is injectable so tests can expire entries deterministically.
type Cache struct {
	mu    sync.RWMutex
	now   func() time.Time
	items map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

// NewCache builds a cache; a nil now func defaults to time.Now.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{now: now, items: make(map[string]cacheEntry)}
}

// Get returns a live entry, evicting it when expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores a value for ttl from now.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheEntry{value: value, expires: c.now().Add(ttl)}
}

// Reset drops all entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheEntry)
}
