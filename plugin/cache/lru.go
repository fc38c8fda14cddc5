// Package cache provides a small in-memory LRU cache with per-entry TTL.
// It backs the TTS audio proxy and the equivalents handler; entries are
// plain byte slices so callers decide their own encoding.
package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultCapacity = 256
	defaultTTL      = 10 * time.Minute
)

// LRU is an LRU cache with TTL support, safe for concurrent use.
type LRU struct {
	capacity   int
	defaultTTL time.Duration

	mu    sync.Mutex
	items map[string]*entry
	order *list.List
}

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time
	element   *list.Element
}

// NewLRU creates a cache evicting least-recently-used entries beyond
// capacity. Non-positive arguments fall back to defaults.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRU{
		capacity:   capacity,
		defaultTTL: ttl,
		items:      make(map[string]*entry),
		order:      list.New(),
	}
}

// Get returns the cached value and whether it was present and fresh.
func (c *LRU) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.remove(e)
		return nil, false
	}

	c.order.MoveToFront(e.element)
	return e.value, true
}

// Set stores value under key. A non-positive ttl uses the cache default.
func (c *LRU) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(ttl)
		c.order.MoveToFront(e.element)
		return
	}

	for len(c.items) >= c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.remove(oldest.Value.(*entry))
	}

	e := &entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	e.element = c.order.PushFront(e)
	c.items[key] = e
}

// Delete removes key if present.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		c.remove(e)
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *LRU) remove(e *entry) {
	c.order.Remove(e.element)
	delete(c.items, e.key)
}
