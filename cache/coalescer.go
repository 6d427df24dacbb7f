package cache

import (
	"context"
	"sync"
	"time"
)

// Loader computes the value for a key on a cache miss.
type Loader[V any] func(ctx context.Context) (V, error)

// GetOrCompute returns the cached value for key, invoking load on a miss.
// A successful load is cached with the default TTL and counted as a load
// success along with its latency; a failed load is counted as a load failure,
// wrapped in *LoadError, and nothing is cached.
//
// Loads are coalesced: when several goroutines miss on the same key at once,
// exactly one loader runs and every caller receives its outcome. Calls for
// distinct keys proceed independently.
func (c *Cache[K, V]) GetOrCompute(ctx context.Context, key K, load Loader[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	return c.flights.do(key, func() (V, error) {
		// A racing caller may have stored the value between the miss and
		// this flight winning the key.
		if v, ok := c.peek(key); ok {
			return v, nil
		}

		start := time.Now()
		v, err := load(ctx)
		if err != nil {
			c.counters.loadFailures.Add(1)
			var zero V
			return zero, &LoadError{Key: key, Err: err}
		}

		c.counters.loadSuccesses.Add(1)
		c.counters.loadTime.Add(int64(time.Since(start)))
		c.Put(key, v)
		return v, nil
	})
}

// call is one in-flight load for a specific key.
type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// coalescer deduplicates concurrent loads per key. Duplicate callers wait
// for the original flight and receive the same result.
type coalescer[K comparable, V any] struct {
	mu    sync.Mutex
	calls map[K]*call[V]
}

func (f *coalescer[K, V]) init() {
	f.calls = make(map[K]*call[V])
}

// do executes fn, ensuring only one execution is in flight for key at a
// time.
func (f *coalescer[K, V]) do(key K, fn func() (V, error)) (V, error) {
	f.mu.Lock()
	if cl, exists := f.calls[key]; exists {
		f.mu.Unlock()
		cl.wg.Wait()
		return cl.val, cl.err
	}

	cl := &call[V]{}
	cl.wg.Add(1)
	f.calls[key] = cl
	f.mu.Unlock()

	cl.val, cl.err = fn()

	f.mu.Lock()
	delete(f.calls, key)
	f.mu.Unlock()
	cl.wg.Done()

	return cl.val, cl.err
}

// inFlight returns the number of loads currently executing. Used in tests
// and diagnostics.
func (f *coalescer[K, V]) inFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
