package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// CacheTTL returns the configured cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// cachedEntity holds a resolved entity and when it was resolved.
type cachedEntity struct {
	entity Entity
	built  time.Time
}

// CachedRegistry wraps a Registry with a TTL cache.
// Concurrent lookups of the same key share a single inner call.
type CachedRegistry struct {
	inner Registry
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedEntity
	sf      singleflight.Group
}

// NewCachedRegistry creates a cache in front of inner. A zero ttl disables caching.
func NewCachedRegistry(inner Registry, ttl time.Duration) *CachedRegistry {
	return &CachedRegistry{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedEntity),
	}
}

func (c *CachedRegistry) expired(e cachedEntity) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// Resolve returns the cached entity for key, or resolves it through the inner registry.
// Not-found results are never cached.
func (c *CachedRegistry) Resolve(ctx context.Context, key string) (Entity, error) {
	if c.ttl == 0 {
		return c.inner.Resolve(ctx, key)
	}

	// Fast path: fresh entry
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.expired(entry) {
		return entry.entity, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight slot
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !c.expired(entry) {
			return entry.entity, nil
		}

		entity, err := c.inner.Resolve(ctx, key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cachedEntity{entity: entity, built: c.now()}
		c.mu.Unlock()

		return entity, nil
	})
	if err != nil {
		return nil, err
	}

	entity, _ := result.(Entity)
	return entity, nil
}

// Invalidate drops the cached entry for key.
func (c *CachedRegistry) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Purge drops every cached entry.
func (c *CachedRegistry) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]cachedEntity)
	c.mu.Unlock()
}

// Len returns the number of cached entries, fresh or not.
func (c *CachedRegistry) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
