package vanilla

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	data  []byte
	built time.Time
}

// CachedSource keeps vanilla bytes in memory for a TTL.
// Concurrent reads of the same path share one underlying read.
type CachedSource struct {
	next Source
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]entry
	sf      singleflight.Group
	now     func() time.Time
}

// NewCachedSource wraps next. A zero ttl disables caching.
func NewCachedSource(next Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *CachedSource) expired(e entry) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

func (c *CachedSource) Read(ctx context.Context, relativePath string) ([]byte, error) {
	// Fast path
	c.mu.RLock()
	e, ok := c.entries[relativePath]
	c.mu.RUnlock()
	if ok && !c.expired(e) {
		return e.data, nil
	}

	result, err, _ := c.sf.Do(relativePath, func() (interface{}, error) {
		c.mu.RLock()
		e, ok := c.entries[relativePath]
		c.mu.RUnlock()
		if ok && !c.expired(e) {
			return e.data, nil
		}

		data, err := c.next.Read(ctx, relativePath)
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[relativePath] = entry{data: data, built: c.now()}
			c.mu.Unlock()
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Invalidate drops the cached copy of relativePath.
func (c *CachedSource) Invalidate(relativePath string) {
	c.mu.Lock()
	delete(c.entries, relativePath)
	c.mu.Unlock()
}
