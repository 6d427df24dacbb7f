package cache

import (
	"time"

	"github.com/O-tero/pagination-engine/pkg/logging"
)

// runSweep periodically purges expired entries so memory is not held by
// entries nobody re-reads. The sweep takes the same exclusive section as any
// other mutation.
func (c *Cache[K, V]) runSweep(interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopSweep:
			return
		case <-ticker.C:
			if n := c.removeExpired(); n > 0 {
				c.counters.evictions.Add(int64(n))
				c.log.Debug("sweep removed expired entries", logging.Fields{"count": n})
			}
		}
	}
}

// removeExpired drops every entry past its expiry and returns how many were
// removed.
func (c *Cache[K, V]) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var doomed []*entry[K, V]
	for _, ent := range c.entries {
		if ent.expired(now) {
			doomed = append(doomed, ent)
		}
	}
	for _, ent := range doomed {
		c.removeLocked(ent)
	}
	return len(doomed)
}
