package store

import (
	"sort"
	"sync"
	"time"
)

// Cache maps signature keys to the last confirmed argument text.
// There is no eviction; the last write for a key wins.
type Cache interface {
	Get(key string) (string, bool)
	Put(key, value string)
}

// Template is a cached argument text with its bookkeeping timestamps.
type Template struct {
	Key       string    `json:"key" yaml:"key"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// MemoryCache is a Cache that lives for the process lifetime.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Template
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Template)}
}

// Get returns the cached text for key.
func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.entries[key]
	return t.Content, ok
}

// Put stores value under key.
func (c *MemoryCache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	t, ok := c.entries[key]
	if !ok {
		t = Template{Key: key, CreatedAt: now}
	}
	t.Content = value
	t.UpdatedAt = now
	c.entries[key] = t
}

// List returns all entries sorted by key.
func (c *MemoryCache) List() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.entries))
	for _, t := range c.entries {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Delete removes key. Returns true if it was present.
func (c *MemoryCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

// Reset clears every entry and returns how many were removed.
func (c *MemoryCache) Reset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]Template)
	return n
}
