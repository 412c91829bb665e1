package render

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ComponentCache memoizes loaded components by reference key. Concurrent
// first loads of the same key share one Provider call. The cache is owned
// by whoever creates it; pass the same cache to every composer that should
// share loads.
type ComponentCache struct {
	mu         sync.RWMutex
	components map[string]Component
	group      singleflight.Group
}

// NewComponentCache creates an empty cache.
func NewComponentCache() *ComponentCache {
	return &ComponentCache{components: make(map[string]Component)}
}

// Load returns the cached component for ref, loading it through p on the
// first call. Failed loads are not cached.
func (c *ComponentCache) Load(ctx context.Context, p Provider, ref ComponentRef) (Component, error) {
	key := ref.Key()

	c.mu.RLock()
	comp, ok := c.components[key]
	c.mu.RUnlock()
	if ok {
		return comp, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.components[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := p.Load(ctx, ref)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.components[key] = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Component), nil
}

// Len returns the number of cached components.
func (c *ComponentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.components)
}

// Forget drops the cached component for ref.
func (c *ComponentCache) Forget(ref ComponentRef) {
	c.mu.Lock()
	delete(c.components, ref.Key())
	c.mu.Unlock()
	c.group.Forget(ref.Key())
}
