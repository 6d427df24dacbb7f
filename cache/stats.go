package cache

import (
	"fmt"
	"sync/atomic"
	"time"
)

// counters are the live performance counters. They are plain atomics,
// independent of the map's lock, so increments never contend with reads or
// writes of the backing store.
type counters struct {
	hits          atomic.Int64
	misses        atomic.Int64
	evictions     atomic.Int64
	loadSuccesses atomic.Int64
	loadFailures  atomic.Int64
	loadTime      atomic.Int64 // cumulative nanoseconds
}

// Stats is an immutable snapshot of cache performance. It is rebuilt from
// the live counters on every request and never mutated in place.
type Stats struct {
	HitCount         int64         `json:"hit_count" msgpack:"hit_count"`
	MissCount        int64         `json:"miss_count" msgpack:"miss_count"`
	EvictionCount    int64         `json:"eviction_count" msgpack:"eviction_count"`
	LoadSuccessCount int64         `json:"load_success_count" msgpack:"load_success_count"`
	LoadFailureCount int64         `json:"load_failure_count" msgpack:"load_failure_count"`
	TotalLoadTime    time.Duration `json:"total_load_time_ns" msgpack:"total_load_time_ns"`
	CurrentSize      int           `json:"current_size" msgpack:"current_size"`
	MaxSize          int           `json:"max_size" msgpack:"max_size"`
}

func (c *counters) snapshot(currentSize, maxSize int) Stats {
	return Stats{
		HitCount:         c.hits.Load(),
		MissCount:        c.misses.Load(),
		EvictionCount:    c.evictions.Load(),
		LoadSuccessCount: c.loadSuccesses.Load(),
		LoadFailureCount: c.loadFailures.Load(),
		TotalLoadTime:    time.Duration(c.loadTime.Load()),
		CurrentSize:      currentSize,
		MaxSize:          maxSize,
	}
}

// RequestCount is the total number of lookups observed.
func (s Stats) RequestCount() int64 {
	return s.HitCount + s.MissCount
}

// HitRate is the fraction of lookups served from the cache, in [0, 1].
// Zero when no lookups have happened yet.
func (s Stats) HitRate() float64 {
	total := s.RequestCount()
	if total == 0 {
		return 0
	}
	return float64(s.HitCount) / float64(total)
}

// Utilization is the fraction of capacity currently occupied, in [0, 1].
func (s Stats) Utilization() float64 {
	if s.MaxSize == 0 {
		return 0
	}
	return float64(s.CurrentSize) / float64(s.MaxSize)
}

// AverageLoadTime is the mean latency of successful loads, zero when none
// have completed.
func (s Stats) AverageLoadTime() time.Duration {
	if s.LoadSuccessCount == 0 {
		return 0
	}
	return s.TotalLoadTime / time.Duration(s.LoadSuccessCount)
}

// LoadError wraps a loader failure surfaced by GetOrCompute. The failed key
// and underlying cause are preserved for errors.Is/As inspection.
type LoadError struct {
	Key any
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cache: load for key %v failed: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
