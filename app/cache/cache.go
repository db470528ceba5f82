// Package cache provides the whole-page cache used by the home feed.
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// PageCache caches rendered pages for a fixed TTL. Entries expire on their
// own or go away together via Clear; nothing else invalidates them.
type PageCache struct {
	cache *ristretto.Cache[string, []byte]
	ttl   time.Duration
}

// NewPageCache creates a PageCache with the given time-to-live
func NewPageCache(ttl time.Duration) (*PageCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e4,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &PageCache{cache: c, ttl: ttl}, nil
}

// TTL returns the configured time-to-live
func (p *PageCache) TTL() time.Duration {
	return p.ttl
}

// Get returns the cached page for key, if fresh
func (p *PageCache) Get(key string) ([]byte, bool) {
	return p.cache.Get(key)
}

// Set stores a rendered page under key for the configured TTL. The write is
// synchronous: the entry is visible to Get as soon as Set returns.
func (p *PageCache) Set(key string, page []byte) {
	p.cache.SetWithTTL(key, page, int64(len(page)), p.ttl)
	p.cache.Wait()
}

// Clear drops every cached page
func (p *PageCache) Clear() {
	p.cache.Clear()
}
