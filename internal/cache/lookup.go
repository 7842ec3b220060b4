package cache

import (
	"context"
	"sync"
)

// FetchFunc batch-fetches display names for the given missing keys. It must
// return one entry per key it could resolve; unresolved keys are simply
// absent from the result.
type FetchFunc func(ctx context.Context, missing []string) (map[string]string, error)

// LookupCache is an additive-only code -> display-name cache scoped to one
// service instance. Reference tables are append-mostly, so entries are never
// invalidated; staleness after an external rename is an accepted limitation.
type LookupCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewLookupCache() *LookupCache {
	return &LookupCache{entries: make(map[string]string)}
}

// Resolve returns the display names for keys, issuing at most one fetch for
// the keys not yet cached. A fully warm call performs no fetch at all.
func (c *LookupCache) Resolve(ctx context.Context, keys []string, fetch FetchFunc) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	var missing []string

	c.mu.RLock()
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if name, ok := c.entries[key]; ok {
			result[key] = name
		} else {
			missing = append(missing, key)
		}
	}
	c.mu.RUnlock()

	if len(missing) == 0 {
		return result, nil
	}

	fetched, err := fetch(ctx, missing)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for key, name := range fetched {
		c.entries[key] = name
		result[key] = name
	}
	c.mu.Unlock()

	return result, nil
}

// Len reports the number of cached entries.
func (c *LookupCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
