package cache

import "context"

// Lookup is the outcome of an asynchronous read.
type Lookup[V any] struct {
	Value V
	Found bool
}

// Outcome is the outcome of an asynchronous load.
type Outcome[V any] struct {
	Value V
	Err   error
}

// GetAsync performs Get off the calling goroutine. The returned channel
// receives exactly one Lookup and is then closed.
func (c *Cache[K, V]) GetAsync(key K) <-chan Lookup[V] {
	out := make(chan Lookup[V], 1)
	go func() {
		defer close(out)
		v, ok := c.Get(key)
		out <- Lookup[V]{Value: v, Found: ok}
	}()
	return out
}

// PutAsync performs Put off the calling goroutine. The returned channel is
// closed once the value is stored.
func (c *Cache[K, V]) PutAsync(key K, value V) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Put(key, value)
	}()
	return done
}

// GetOrComputeAsync performs GetOrCompute off the calling goroutine. The
// returned channel receives exactly one Outcome and is then closed. A load
// that has started runs to completion and is recorded in the stats even if
// the receiver abandons the channel.
func (c *Cache[K, V]) GetOrComputeAsync(ctx context.Context, key K, load Loader[V]) <-chan Outcome[V] {
	out := make(chan Outcome[V], 1)
	go func() {
		defer close(out)
		v, err := c.GetOrCompute(ctx, key, load)
		out <- Outcome[V]{Value: v, Err: err}
	}()
	return out
}
