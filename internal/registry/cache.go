package registry

import (
	"sort"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	data      any
	createdAt time.Time
	expiresAt time.Time
}

// Cache is an in-memory store of prior registry responses keyed by the
// normalized request parameters. Expired entries are retained until
// overwritten or cleared so that Stale can serve them as a best-effort
// fallback when the upstream is unreachable.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: map[string]cacheEntry{},
		now:     time.Now,
	}
}

// CacheKey derives a key from the endpoint and the alphabetically-sorted
// parameter set, so logically equal requests collide regardless of the
// order the parameters were supplied in.
func CacheKey(endpoint string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return endpoint + "?" + strings.Join(pairs, "&")
}

// Get returns the cached payload for key if it has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// Stale returns whatever payload is held for key, expired or not.
func (c *Cache) Stale(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.data, true
}

func (c *Cache) Put(key string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.entries[key] = cacheEntry{data: data, createdAt: now, expiresAt: now.Add(c.ttl)}
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]cacheEntry{}
}

// Stats reports the current entry count and keys, for diagnostics.
func (c *Cache) Stats() (int, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return len(c.entries), keys
}
