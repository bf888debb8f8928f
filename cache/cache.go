package cache

import "sync"

// Cache is a concurrency-safe set of successfully loaded URLs.
type Cache struct {
	mu   sync.RWMutex
	urls map[string]struct{}
}

// New creates a new empty Cache.
func New() *Cache {
	return &Cache{
		urls: make(map[string]struct{}),
	}
}

// Has reports whether url completed a successful load before.
func (c *Cache) Has(url string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.urls[url]
	return ok
}

// Add marks url as successfully loaded. Adding an existing URL is a no-op.
func (c *Cache) Add(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.urls[url] = struct{}{}
}

// Len returns the number of cached URLs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.urls)
}

// URLs returns a snapshot of the cached URLs in no particular order.
func (c *Cache) URLs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	urls := make([]string, 0, len(c.urls))
	for u := range c.urls {
		urls = append(urls, u)
	}
	return urls
}
