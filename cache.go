package main

import (
	"fmt"
	"sync"
)

const (
	cacheKeyTextPrefix = 100
	cacheCapacity      = 100
	cacheEvictBatch    = 10
)

// cacheKey fingerprints a request by the first 100 characters of its text,
// the app name and the model. Texts that differ only past the prefix cutoff
// intentionally share an entry; near-identical screens should not each pay
// for a backend call.
func cacheKey(text, appName, model string) string {
	prefix := text
	if len(prefix) > cacheKeyTextPrefix {
		prefix = prefix[:cacheKeyTextPrefix]
	}
	return fmt.Sprintf("%s|%s|%s", prefix, appName, model)
}

// resultCache is a bounded insertion-ordered store. When an insert pushes it
// past capacity, the 10 oldest-inserted entries are dropped in one batch.
// Entries are never re-promoted on access and never mutated after insertion.
type resultCache[T any] struct {
	mu       sync.Mutex
	entries  map[string]T
	order    []string
	capacity int

	hits   int64
	misses int64
}

func newResultCache[T any](capacity int) *resultCache[T] {
	if capacity <= 0 {
		capacity = cacheCapacity
	}
	return &resultCache[T]{
		entries:  make(map[string]T, capacity),
		capacity: capacity,
	}
}

func (c *resultCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *resultCache[T]) Put(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = value

	if len(c.order) > c.capacity {
		evict := cacheEvictBatch
		if evict > len(c.order) {
			evict = len(c.order)
		}
		for _, old := range c.order[:evict] {
			delete(c.entries, old)
		}
		c.order = append([]string(nil), c.order[evict:]...)
	}
}

func (c *resultCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Counters returns lifetime hit and miss totals.
func (c *resultCache[T]) Counters() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// HitRate is hits/(hits+misses), 0 when the cache was never consulted.
func (c *resultCache[T]) HitRate() float64 {
	hits, misses := c.Counters()
	lookups := hits + misses
	if lookups == 0 {
		return 0
	}
	return float64(hits) / float64(lookups)
}
