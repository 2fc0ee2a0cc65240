// Marquee - Item-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const (
	defaultCapacity = 10000
	defaultTTL      = 5 * time.Minute

	// janitorInterval is how often Serve sweeps expired entries.
	janitorInterval = time.Minute
)

// lruEntry is one cached value.
type lruEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// LRU is a bounded in-memory Store with per-entry expiry.
// Lookups and inserts are O(1); the least recently used entry is evicted
// when capacity is reached.
type LRU struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	items    map[string]*list.Element
	stats    Stats
	now      func() time.Time
}

// NewLRU creates an LRU store. Non-positive arguments select defaults.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRU{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

// Name implements Store.
func (c *LRU) Name() string { return string(BackendMemory) }

// Get implements Store. Expired entries are removed on access.
func (c *LRU) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	entry := el.Value.(*lruEntry) //nolint:errcheck,forcetypeassert // only *lruEntry is stored
	if c.now().After(entry.expiresAt) {
		c.remove(el)
		c.stats.Misses++
		c.stats.Evictions++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.stats.Hits++
	return entry.value, true
}

// Set implements Store.
func (c *LRU) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(ttl)
	if el, ok := c.items[key]; ok {
		entry := el.Value.(*lruEntry) //nolint:errcheck,forcetypeassert // only *lruEntry is stored
		entry.value = value
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	for len(c.items) > c.capacity {
		c.remove(c.order.Back())
		c.stats.Evictions++
	}
}

// Len returns the number of entries, including expired ones not yet swept.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats implements Store.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.items)
	return s
}

// CleanupExpired removes every expired entry and returns how many were removed.
func (c *LRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*lruEntry).expiresAt) { //nolint:forcetypeassert // only *lruEntry is stored
			c.remove(el)
			removed++
		}
		el = prev
	}
	c.stats.Evictions += int64(removed)
	return removed
}

// Serve sweeps expired entries until ctx is cancelled. It satisfies
// suture.Service so the janitor runs under the supervisor tree.
func (c *LRU) Serve(ctx context.Context) error {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.CleanupExpired()
		}
	}
}

// String returns the service name used by the supervisor.
func (c *LRU) String() string { return "cache-janitor" }

// remove must be called with mu held.
func (c *LRU) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*lruEntry).key) //nolint:forcetypeassert // only *lruEntry is stored
}
