package services

import (
	"sync"
	"sync/atomic"
	"time"
)

// MarkupCache keeps compiled published markup in memory for a short TTL
// so viewer traffic does not recompile (or hit the database) per scan.
// Entries are invalidated explicitly on publish and project updates.
type MarkupCache struct {
	entries sync.Map // map[string]*markupCacheEntry, keyed by slug
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

type markupCacheEntry struct {
	markup    string
	createdAt time.Time
}

func NewMarkupCache(ttl time.Duration) *MarkupCache {
	return &MarkupCache{ttl: ttl}
}

// Get returns the cached markup for a slug if it is still fresh.
func (c *MarkupCache) Get(slug string) (string, bool) {
	v, ok := c.entries.Load(slug)
	if !ok {
		c.misses.Add(1)
		return "", false
	}
	entry := v.(*markupCacheEntry)
	if time.Since(entry.createdAt) > c.ttl {
		c.entries.Delete(slug)
		c.misses.Add(1)
		return "", false
	}
	c.hits.Add(1)
	return entry.markup, true
}

func (c *MarkupCache) Set(slug, markup string) {
	c.entries.Store(slug, &markupCacheEntry{markup: markup, createdAt: time.Now()})
}

// Invalidate drops one slug, called when its project changes.
func (c *MarkupCache) Invalidate(slug string) {
	c.entries.Delete(slug)
}

// Stats reports lifetime hit/miss counts.
func (c *MarkupCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
