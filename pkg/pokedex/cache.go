package pokedex

import (
	"strings"
	"sync"
)

// Cache memoizes normalized single-Pokemon lookups for the lifetime of the
// session. Keys are lowercased names or raw numeric-id strings; name and id
// keys for the same Pokemon are stored independently, with no
// canonicalization across the two forms. Unbounded, never evicts: the
// dataset is small and read-mostly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Record
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Record)}
}

// CacheKey normalizes a query into its cache-key form.
func CacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached record for a key, or nil on a miss.
func (c *Cache) Get(key string) *Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[CacheKey(key)]
}

// Put stores a record under a key.
func (c *Cache) Put(key string, record *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[CacheKey(key)] = record
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
