// Package cache implements a bounded, TTL-aware, LRU-evicting in-memory
// store with get-or-compute semantics and performance counters.
//
// Design Choices:
//   - A sync.RWMutex-protected map plus a container/list doubly-linked list:
//     O(1) lookup through the map, O(1) eviction and promotion through the
//     list. The list keeps most-recently-used entries at the front; the back
//     element is always the eviction candidate.
//   - Expiry is dual: lazy (detected on read) and active (a background sweep
//     purges entries nobody re-reads). A read that detects expiry re-acquires
//     the exclusive lock and rechecks before removing, since the lock does
//     not support a read-to-write upgrade.
//   - Loads are coalesced per key: concurrent get-or-compute calls for the
//     same key share a single loader execution. Distinct keys never block
//     one another on the load path.
//   - Counters are lock-free atomics, deliberately outside the map's lock,
//     so they stay monotonic and race-free under any interleaving.
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/O-tero/pagination-engine/pkg/logging"
)

// DefaultSweepInterval is how often the background sweep purges expired
// entries when no interval is configured.
const DefaultSweepInterval = time.Minute

// Options tunes optional cache behavior. The zero value gives the defaults.
type Options struct {
	// SweepInterval is the period of the background expiry sweep. Zero means
	// DefaultSweepInterval; a negative value disables the sweep entirely and
	// leaves expiry to lazy detection on reads.
	SweepInterval time.Duration
	// Logger receives sweep and eviction diagnostics. Nil means no logging.
	Logger *logging.Logger
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	element   *list.Element
}

func (e *entry[K, V]) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// Cache is a bounded TTL+LRU key/value store. It is safe for concurrent use
// by multiple goroutines and lives for the owning process's lifetime; call
// Close to stop its background sweep.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	lru     *list.List

	maxEntries int
	defaultTTL time.Duration

	counters counters
	flights  coalescer[K, V]

	log       *logging.Logger
	stopSweep chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a cache holding at most maxEntries entries, each living for
// defaultTTL unless overridden per put. maxEntries must be >= 1 and
// defaultTTL > 0.
func New[K comparable, V any](maxEntries int, defaultTTL time.Duration, opts Options) (*Cache[K, V], error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("cache: maxEntries must be >= 1, got %d", maxEntries)
	}
	if defaultTTL <= 0 {
		return nil, fmt.Errorf("cache: defaultTTL must be positive, got %v", defaultTTL)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	c := &Cache[K, V]{
		entries:    make(map[K]*entry[K, V], maxEntries),
		lru:        list.New(),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		log:        log,
		stopSweep:  make(chan struct{}),
	}
	c.flights.init()

	interval := opts.SweepInterval
	if interval == 0 {
		interval = DefaultSweepInterval
	}
	if interval > 0 {
		c.wg.Add(1)
		go c.runSweep(interval)
	}

	return c, nil
}

// Get returns the value for key if present and not expired, updating LRU
// recency. An expired entry is removed and recorded as both a miss and an
// eviction.
//
// Complexity: O(1).
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.RLock()
	ent, ok := c.entries[key]
	expired := ok && ent.expired(time.Now())
	c.mu.RUnlock()

	if !ok {
		c.counters.misses.Add(1)
		return zero, false
	}

	if expired {
		// Re-acquire exclusive and recheck: the entry may have been removed
		// or refreshed since the optimistic read.
		c.mu.Lock()
		cur, still := c.entries[key]
		if still && cur == ent && cur.expired(time.Now()) {
			c.removeLocked(cur)
			c.mu.Unlock()
			c.counters.misses.Add(1)
			c.counters.evictions.Add(1)
			return zero, false
		}
		if !still {
			c.mu.Unlock()
			c.counters.misses.Add(1)
			return zero, false
		}
		// Refreshed by a concurrent put; fall through to the hit path.
		ent = cur
		c.lru.MoveToFront(ent.element)
		v := ent.value
		c.mu.Unlock()
		c.counters.hits.Add(1)
		return v, true
	}

	// Recency promotion is a write: take the exclusive lock and recheck the
	// entry is still the one observed.
	c.mu.Lock()
	cur, still := c.entries[key]
	if !still {
		c.mu.Unlock()
		c.counters.misses.Add(1)
		return zero, false
	}
	c.lru.MoveToFront(cur.element)
	v := cur.value
	c.mu.Unlock()
	c.counters.hits.Add(1)
	return v, true
}

// peek reads the live value for key without touching counters or recency.
// Used by the load path to double-check after winning a flight.
func (c *Cache[K, V]) peek(key K) (V, bool) {
	var zero V
	c.mu.RLock()
	defer c.mu.RUnlock()

	ent, ok := c.entries[key]
	if !ok || ent.expired(time.Now()) {
		return zero, false
	}
	return ent.value, true
}

// Put inserts or overwrites key with the default TTL.
func (c *Cache[K, V]) Put(key K, value V) {
	c.PutTTL(key, value, 0)
}

// PutTTL inserts or overwrites key with an explicit TTL. A non-positive ttl
// falls back to the configured default. If the insertion pushes the cache
// over capacity, the least-recently-used entry is evicted.
//
// Complexity: O(1).
func (c *Cache[K, V]) PutTTL(key K, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	expiresAt := time.Now().Add(ttl)

	c.mu.Lock()
	if ent, ok := c.entries[key]; ok {
		ent.value = value
		ent.expiresAt = expiresAt
		c.lru.MoveToFront(ent.element)
		c.mu.Unlock()
		return
	}

	ent := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	ent.element = c.lru.PushFront(ent)
	c.entries[key] = ent

	evicted := false
	var evictedKey K
	if c.lru.Len() > c.maxEntries {
		evictedKey, evicted = c.evictOldestLocked()
	}
	c.mu.Unlock()

	if evicted {
		c.counters.evictions.Add(1)
		c.log.Debug("evicted LRU entry", logging.Fields{"key": fmt.Sprint(evictedKey)})
	}
}

// Invalidate removes key. Returns whether the key was present.
func (c *Cache[K, V]) Invalidate(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(ent)
	return true
}

// InvalidateAll removes every entry.
func (c *Cache[K, V]) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[K, V], c.maxEntries)
	c.lru = list.New()
}

// InvalidateMatching removes every entry whose key satisfies pred and
// returns how many were removed. Useful for clearing one source's namespace
// out of a shared cache.
func (c *Cache[K, V]) InvalidateMatching(pred func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var doomed []*entry[K, V]
	for key, ent := range c.entries {
		if pred(key) {
			doomed = append(doomed, ent)
		}
	}
	for _, ent := range doomed {
		c.removeLocked(ent)
	}
	return len(doomed)
}

// Len returns the current number of entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int {
	return c.maxEntries
}

// Stats returns an immutable snapshot of the performance counters. Each call
// rebuilds the snapshot from the live counters.
func (c *Cache[K, V]) Stats() Stats {
	return c.counters.snapshot(c.Len(), c.maxEntries)
}

// Close stops the background sweep. The cache remains readable afterwards;
// Close only releases the goroutine.
func (c *Cache[K, V]) Close() {
	c.closeOnce.Do(func() {
		close(c.stopSweep)
	})
	c.wg.Wait()
}

// removeLocked unlinks an entry. Caller holds the write lock.
func (c *Cache[K, V]) removeLocked(ent *entry[K, V]) {
	c.lru.Remove(ent.element)
	delete(c.entries, ent.key)
}

// evictOldestLocked removes the least-recently-used entry. Caller holds the
// write lock.
func (c *Cache[K, V]) evictOldestLocked() (K, bool) {
	var zero K
	oldest := c.lru.Back()
	if oldest == nil {
		return zero, false
	}
	ent := oldest.Value.(*entry[K, V])
	c.removeLocked(ent)
	return ent.key, true
}
