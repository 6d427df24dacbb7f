package cache

import (
	"testing"
	"time"
)

func TestStats_Ratios(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		hitRate  float64
		utilized float64
	}{
		{
			name:     "no traffic",
			stats:    Stats{MaxSize: 10},
			hitRate:  0,
			utilized: 0,
		},
		{
			name:     "three quarters hits",
			stats:    Stats{HitCount: 3, MissCount: 1, CurrentSize: 5, MaxSize: 10},
			hitRate:  0.75,
			utilized: 0.5,
		},
		{
			name:     "full cache all misses",
			stats:    Stats{MissCount: 4, CurrentSize: 10, MaxSize: 10},
			hitRate:  0,
			utilized: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.HitRate(); got != tt.hitRate {
				t.Errorf("HitRate() = %v, want %v", got, tt.hitRate)
			}
			if got := tt.stats.Utilization(); got != tt.utilized {
				t.Errorf("Utilization() = %v, want %v", got, tt.utilized)
			}
		})
	}
}

func TestStats_AverageLoadTime(t *testing.T) {
	s := Stats{LoadSuccessCount: 4, TotalLoadTime: 200 * time.Millisecond}
	if got := s.AverageLoadTime(); got != 50*time.Millisecond {
		t.Errorf("AverageLoadTime() = %v, want 50ms", got)
	}

	if got := (Stats{}).AverageLoadTime(); got != 0 {
		t.Errorf("AverageLoadTime() with no loads = %v, want 0", got)
	}
}

func TestStats_SnapshotIsDetached(t *testing.T) {
	c := newTestCache(t, 4, time.Minute)

	c.Put(key(1), "v")
	c.Get(key(1))

	before := c.Stats()
	c.Get(key(2)) // miss after the snapshot

	if before.MissCount != 0 {
		t.Errorf("snapshot mutated by later activity: MissCount = %d", before.MissCount)
	}
	if after := c.Stats(); after.MissCount != 1 {
		t.Errorf("fresh snapshot MissCount = %d, want 1", after.MissCount)
	}
}
