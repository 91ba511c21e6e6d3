// Package cache implements the bounded response cache of the query
// pipeline: fingerprint -> envelope with per-entry TTL, LRU eviction
// under a byte budget and a periodic sweep of expired entries.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Config bounds the cache.
type Config struct {
	// MaxMemoryBytes is the byte budget for all entries combined.
	MaxMemoryBytes int64
	// DefaultTTL applies when Set is called without an explicit TTL.
	DefaultTTL time.Duration
	// CleanupInterval is the period of the expired-entry sweep.
	CleanupInterval time.Duration
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries     int    `json:"entries"`
	MemoryBytes int64  `json:"memory_bytes"`
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Evictions   uint64 `json:"evictions"`
	Expirations uint64 `json:"expirations"`
}

type entry[V any] struct {
	key   string
	value V
	size  int64

	createdAt    time.Time
	lastAccessed time.Time
	accessCount  uint64
	ttl          time.Duration

	prev *entry[V]
	next *entry[V]
}

func (e *entry[V]) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Smart is a thread-safe LRU+TTL cache with a memory budget. All
// operations serialize under a single mutex; hits are O(1).
type Smart[V any] struct {
	cfg    Config
	sizeOf func(V) int64

	mu     sync.Mutex
	items  map[string]*entry[V]
	head   *entry[V] // LRU end
	tail   *entry[V] // MRU end
	memory int64

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

// New creates a cache. sizeOf estimates the byte footprint of a value
// and must be consistent for the lifetime of the cache.
func New[V any](cfg Config, sizeOf func(V) int64) *Smart[V] {
	if cfg.MaxMemoryBytes <= 0 {
		cfg.MaxMemoryBytes = 100 << 20
	}
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 30 * time.Minute
	}
	return &Smart[V]{
		cfg:    cfg,
		sizeOf: sizeOf,
		items:  make(map[string]*entry[V]),
	}
}

// DefaultTTL returns the configured default time-to-live.
func (c *Smart[V]) DefaultTTL() time.Duration {
	return c.cfg.DefaultTTL
}

// Get returns the value stored under key while it is fresh. An expired
// entry is removed on access.
func (c *Smart[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}

	now := time.Now()
	if e.expired(now) {
		c.removeLocked(e)
		c.expirations++
		c.misses++
		return zero, false
	}

	e.lastAccessed = now
	e.accessCount++
	c.moveToTailLocked(e)
	c.hits++
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Smart[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.cfg.DefaultTTL)
}

// SetTTL stores value under key with an explicit TTL. A value larger
// than the whole budget is refused silently. Older entries are evicted
// LRU-first until the new entry fits.
func (c *Smart[V]) SetTTL(key string, value V, ttl time.Duration) {
	size := c.sizeOf(value)
	if size > c.cfg.MaxMemoryBytes {
		slog.Debug("cache: entrada maior que o orçamento, ignorada",
			slog.String("key", key), slog.Int64("size", size))
		return
	}
	if ttl <= 0 {
		ttl = c.cfg.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.items[key]; ok {
		c.removeLocked(old)
	}

	for c.memory+size > c.cfg.MaxMemoryBytes && c.head != nil {
		c.removeLocked(c.head)
		c.evictions++
	}

	now := time.Now()
	e := &entry[V]{
		key:          key,
		value:        value,
		size:         size,
		createdAt:    now,
		lastAccessed: now,
		ttl:          ttl,
	}
	c.items[key] = e
	c.pushTailLocked(e)
	c.memory += size
}

// Delete removes key if present.
func (c *Smart[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeLocked(e)
	}
}

// Clear removes every entry. Counters survive.
func (c *Smart[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V])
	c.head, c.tail = nil, nil
	c.memory = 0
}

// Stats returns a snapshot of the counters.
func (c *Smart[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Entries:     len(c.items),
		MemoryBytes: c.memory,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
	}
}

// EvictHalf drops half of the entries, LRU first. Invoked when the
// hosting process reports memory pressure.
func (c *Smart[V]) EvictHalf() {
	c.mu.Lock()
	defer c.mu.Unlock()

	drop := (len(c.items) + 1) / 2
	for i := 0; i < drop && c.head != nil; i++ {
		c.removeLocked(c.head)
		c.evictions++
	}
	slog.Warn("cache: despejo de emergência", slog.Int("removidos", drop))
}

// Sweep removes every expired entry and returns how many were dropped.
func (c *Smart[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for e := c.head; e != nil; {
		next := e.next
		if e.expired(now) {
			c.removeLocked(e)
			c.expirations++
			removed++
		}
		e = next
	}
	return removed
}

// Start runs the periodic sweeper until ctx is done. pressure, when
// non-nil, delivers memory-pressure signals that trigger EvictHalf;
// tests drive it deterministically.
func (c *Smart[V]) Start(ctx context.Context, pressure <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(c.cfg.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.Sweep(); n > 0 {
					slog.Debug("cache: varredura", slog.Int("expirados", n))
				}
			case _, ok := <-pressure:
				if !ok {
					pressure = nil
					continue
				}
				c.EvictHalf()
			}
		}
	}()
}

// removeLocked unlinks e from the list and the map.
func (c *Smart[V]) removeLocked(e *entry[V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil

	delete(c.items, e.key)
	c.memory -= e.size
}

// pushTailLocked appends e at the MRU end.
func (c *Smart[V]) pushTailLocked(e *entry[V]) {
	if c.tail == nil {
		c.head, c.tail = e, e
		return
	}
	c.tail.next = e
	e.prev = c.tail
	c.tail = e
}

// moveToTailLocked refreshes e's LRU position.
func (c *Smart[V]) moveToTailLocked(e *entry[V]) {
	if c.tail == e {
		return
	}
	// Unlink without touching the map or memory accounting.
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev, e.next = nil, nil
	c.pushTailLocked(e)
}
