// Package metrics exposes cache performance counters as Prometheus
// metrics without the cache knowing about Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/O-tero/pagination-engine/cache"
)

// StatsSource is anything that can produce a cache stats snapshot.
type StatsSource interface {
	Stats() cache.Stats
}

// CacheCollector adapts a StatsSource into a prometheus.Collector. Each
// scrape takes a fresh snapshot, so no counters are duplicated in the
// collector itself.
type CacheCollector struct {
	source StatsSource

	hits        *prometheus.Desc
	misses      *prometheus.Desc
	evictions   *prometheus.Desc
	loadsOK     *prometheus.Desc
	loadsFailed *prometheus.Desc
	loadSeconds *prometheus.Desc
	size        *prometheus.Desc
	capacity    *prometheus.Desc
	hitRate     *prometheus.Desc
}

// NewCacheCollector builds a collector over source. Metrics are prefixed
// with namespace when it is non-empty and labelled with the cache name.
func NewCacheCollector(namespace, name string, source StatsSource) *CacheCollector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", metric),
			help, nil, labels,
		)
	}
	return &CacheCollector{
		source:      source,
		hits:        desc("hits_total", "Lookups served from the cache."),
		misses:      desc("misses_total", "Lookups that missed the cache."),
		evictions:   desc("evictions_total", "Entries removed by capacity or expiry."),
		loadsOK:     desc("loads_success_total", "Loader invocations that succeeded."),
		loadsFailed: desc("loads_failure_total", "Loader invocations that failed."),
		loadSeconds: desc("load_duration_seconds_total", "Cumulative time spent in successful loads."),
		size:        desc("entries", "Entries currently cached."),
		capacity:    desc("capacity", "Maximum number of entries."),
		hitRate:     desc("hit_ratio", "Fraction of lookups served from the cache."),
	}
}

// Describe implements prometheus.Collector.
func (c *CacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.loadsOK
	ch <- c.loadsFailed
	ch <- c.loadSeconds
	ch <- c.size
	ch <- c.capacity
	ch <- c.hitRate
}

// Collect implements prometheus.Collector.
func (c *CacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.HitCount))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.MissCount))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.EvictionCount))
	ch <- prometheus.MustNewConstMetric(c.loadsOK, prometheus.CounterValue, float64(s.LoadSuccessCount))
	ch <- prometheus.MustNewConstMetric(c.loadsFailed, prometheus.CounterValue, float64(s.LoadFailureCount))
	ch <- prometheus.MustNewConstMetric(c.loadSeconds, prometheus.CounterValue, s.TotalLoadTime.Seconds())
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.CurrentSize))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.MaxSize))
	ch <- prometheus.MustNewConstMetric(c.hitRate, prometheus.GaugeValue, s.HitRate())
}

var _ prometheus.Collector = (*CacheCollector)(nil)
