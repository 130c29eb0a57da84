package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkupCacheHitAndInvalidate(t *testing.T) {
	c := NewMarkupCache(time.Minute)

	_, ok := c.Get("demo")
	assert.False(t, ok)

	c.Set("demo", "<html></html>")
	got, ok := c.Get("demo")
	assert.True(t, ok)
	assert.Equal(t, "<html></html>", got)

	c.Invalidate("demo")
	_, ok = c.Get("demo")
	assert.False(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(2), misses)
}

func TestMarkupCacheExpiry(t *testing.T) {
	c := NewMarkupCache(10 * time.Millisecond)
	c.Set("demo", "<html></html>")
	time.Sleep(20 * time.Millisecond)
	_, ok := c.Get("demo")
	assert.False(t, ok)
}
