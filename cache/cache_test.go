package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCacheAddAndHas(t *testing.T) {
	c := New()
	url := "https://cdn.jsdelivr.net/npm/lodash@4.17.21/lodash.min.js"

	if c.Has(url) {
		t.Error("expected empty cache to miss")
	}

	c.Add(url)
	if !c.Has(url) {
		t.Error("expected cache to hit after Add")
	}
}

func TestCacheAddIdempotent(t *testing.T) {
	c := New()
	c.Add("https://unpkg.com/vue@3")
	c.Add("https://unpkg.com/vue@3")

	if c.Len() != 1 {
		t.Errorf("expected 1 entry after duplicate Add, got %d", c.Len())
	}
}

func TestCacheDistinctURLs(t *testing.T) {
	c := New()
	c.Add("https://unpkg.com/vue@3.4.0/index.js")

	// Same package through a different provider is a different key.
	if c.Has("https://cdn.jsdelivr.net/npm/vue@3.4.0/index.js") {
		t.Error("cache must key by exact URL, not package identity")
	}
}

func TestCacheURLsSnapshot(t *testing.T) {
	c := New()
	c.Add("https://a.example.com/x.js")
	c.Add("https://b.example.com/y.js")

	urls := c.URLs()
	if len(urls) != 2 {
		t.Fatalf("expected 2 URLs, got %d", len(urls))
	}
	seen := map[string]bool{}
	for _, u := range urls {
		seen[u] = true
	}
	if !seen["https://a.example.com/x.js"] || !seen["https://b.example.com/y.js"] {
		t.Errorf("snapshot missing entries: %v", urls)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			url := fmt.Sprintf("https://cdn.example.com/pkg-%d.js", n%4)
			c.Add(url)
			c.Has(url)
		}(i)
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("expected 4 distinct URLs, got %d", c.Len())
	}
}
