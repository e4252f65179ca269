package domain

import "sync"

// ModuleResolutionCache memoizes the mapping of import specifiers to resolved file locations.
// It is owned by one entry point node and reused across its rebuilds.
type ModuleResolutionCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewModuleResolutionCache creates an empty ModuleResolutionCache.
func NewModuleResolutionCache() *ModuleResolutionCache {
	return &ModuleResolutionCache{
		entries: make(map[string]string),
	}
}

// Lookup returns the resolved location of specifier if it is cached.
func (c *ModuleResolutionCache) Lookup(specifier string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resolved, ok := c.entries[specifier]
	return resolved, ok
}

// Store records the resolved location of specifier.
func (c *ModuleResolutionCache) Store(specifier, resolved string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[specifier] = resolved
}

// Resolve returns the cached location of specifier or resolves and caches it.
// Failed resolutions are not cached.
func (c *ModuleResolutionCache) Resolve(specifier string, resolve func(string) (string, error)) (string, error) {
	if resolved, ok := c.Lookup(specifier); ok {
		return resolved, nil
	}

	resolved, err := resolve(specifier)
	if err != nil {
		return "", err
	}
	c.Store(specifier, resolved)
	return resolved, nil
}

// Len returns the number of cached resolutions.
func (c *ModuleResolutionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached resolution.
func (c *ModuleResolutionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
