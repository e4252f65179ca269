package domain

import (
	"fmt"
	"sync"

	"go.trai.ch/zerr"
)

// CacheSlot names a lazily constructed resource held by a NodeCache.
type CacheSlot string

const (
	// SlotModuleResolution holds the node's *ModuleResolutionCache.
	SlotModuleResolution CacheSlot = "moduleResolutionCache"
	// SlotStylesheetProcessor holds the node's stylesheet processor.
	SlotStylesheetProcessor CacheSlot = "stylesheetProcessor"
	// SlotShimProcessing holds the compatibility-shim gate. It is only used in the build-wide shared cache.
	SlotShimProcessing CacheSlot = "shimProcessingCache"
)

// NodeCache is a table of named, lazily constructed resources.
// A resource survives rebuild cycles until the cache is reset.
type NodeCache struct {
	mu    sync.Mutex
	slots map[CacheSlot]*cacheEntry
}

type cacheEntry struct {
	mu    sync.Mutex
	ready bool
	value any
}

// NewNodeCache creates an empty NodeCache.
func NewNodeCache() *NodeCache {
	return &NodeCache{
		slots: make(map[CacheSlot]*cacheEntry),
	}
}

// GetOrCreate returns the value stored in slot. If the slot is empty, factory is invoked,
// its result stored and returned. At most one factory runs per slot at a time; callers
// for the same slot wait for it. A failing factory leaves the slot empty.
func (c *NodeCache) GetOrCreate(slot CacheSlot, factory func() (any, error)) (any, error) {
	entry := c.entry(slot)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.ready {
		return entry.value, nil
	}

	value, err := factory()
	if err != nil {
		return nil, err
	}
	entry.value = value
	entry.ready = true
	return value, nil
}

// Has reports whether slot holds a constructed value.
func (c *NodeCache) Has(slot CacheSlot) bool {
	c.mu.Lock()
	entry, ok := c.slots[slot]
	c.mu.Unlock()
	if !ok {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.ready
}

// Delete drops the value stored in slot.
func (c *NodeCache) Delete(slot CacheSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.slots, slot)
}

// Reset drops every slot.
func (c *NodeCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots = make(map[CacheSlot]*cacheEntry)
}

func (c *NodeCache) entry(slot CacheSlot) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.slots[slot]
	if !ok {
		entry = &cacheEntry{}
		c.slots[slot] = entry
	}
	return entry
}

// Memo is the typed form of GetOrCreate.
// A slot holding nil yields the zero T. It fails with ErrCacheSlotType when the slot
// holds a value of another type.
func Memo[T any](c *NodeCache, slot CacheSlot, factory func() (T, error)) (T, error) {
	var zero T

	value, err := c.GetOrCreate(slot, func() (any, error) {
		return factory()
	})
	if err != nil {
		return zero, err
	}

	if value == nil {
		return zero, nil
	}
	typed, ok := value.(T)
	if !ok {
		err := zerr.With(zerr.Wrap(ErrCacheSlotType, "memo"), "slot", string(slot))
		return zero, zerr.With(err, "type", fmt.Sprintf("%T", value))
	}
	return typed, nil
}
