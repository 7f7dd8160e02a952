package cache

import (
	"sync"
	"time"
)

type entry struct {
	val []byte
	exp time.Time
}

// MemoryCache keeps byte values for a fixed TTL. Expired entries are dropped
// lazily on Get and swept on Set.
type MemoryCache struct {
	mu  sync.RWMutex
	m   map[string]entry
	ttl time.Duration
	now func() time.Time
}

func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{m: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.exp) {
		c.mu.Lock()
		if cur, ok := c.m[key]; ok && !c.now().Before(cur.exp) {
			delete(c.m, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.val, true
}

func (c *MemoryCache) Set(key string, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.m {
		if now.After(e.exp) {
			delete(c.m, k)
		}
	}
	c.m[key] = entry{val: val, exp: now.Add(c.ttl)}
}

// Replace drops every other entry and stores val under key, leaving at most
// one entry in the cache.
func (c *MemoryCache) Replace(key string, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
	c.m[key] = entry{val: val, exp: c.now().Add(c.ttl)}
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
