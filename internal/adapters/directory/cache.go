package directory

import (
	"sync"
	"time"
)

// Default cache configuration constants.
const (
	defaultCacheSize = 100
	defaultCacheTTL  = 5 * time.Minute
)

type cacheItem struct {
	person    Person
	expiresAt time.Time
	addedAt   time.Time
}

// ttlCache is an explicit bounded lookup cache: entries expire after a
// TTL and the oldest entry is evicted once the size cap is hit. It
// replaces unbounded process-lifetime memoization.
type ttlCache struct {
	mu      sync.Mutex
	items   map[string]cacheItem
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

func newTTLCache(maxSize int, ttl time.Duration) *ttlCache {
	if maxSize <= 0 {
		maxSize = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ttlCache{
		items:   make(map[string]cacheItem),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *ttlCache) get(key string) (Person, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[key]
	if !ok {
		return Person{}, false
	}
	if c.now().After(item.expiresAt) {
		delete(c.items, key)
		return Person{}, false
	}
	return item.person, true
}

func (c *ttlCache) put(key string, p Person) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()

	// Drop expired entries first; evict the oldest if still at capacity.
	for k, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, k)
		}
	}
	if len(c.items) >= c.maxSize {
		oldestKey := ""
		var oldestAt time.Time
		for k, item := range c.items {
			if oldestKey == "" || item.addedAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = item.addedAt
			}
		}
		delete(c.items, oldestKey)
	}

	c.items[key] = cacheItem{person: p, expiresAt: now.Add(c.ttl), addedAt: now}
}

func (c *ttlCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
