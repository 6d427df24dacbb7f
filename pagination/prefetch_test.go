package pagination

import (
	"context"
	"testing"
	"time"

	"github.com/O-tero/pagination-engine/config"
)

func prefetchConfig() config.Config {
	cfg := testConfig()
	cfg.AsyncEnabled = true
	cfg.PrefetchWorkers = 2
	cfg.PrefetchRPS = 100
	return cfg
}

func waitForPrefetch(t *testing.T, svc *Service[string], check func(PrefetchStats) bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		stats, ok := svc.PrefetchStats()
		if !ok {
			t.Fatal("PrefetchStats reported disabled")
		}
		if check(stats) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("prefetch did not settle, stats = %+v", stats)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPrefetch_WarmsNeighbors(t *testing.T) {
	src := newMockSource(23)
	svc := newTestService(t, src, prefetchConfig())
	ctx := context.Background()

	queued := svc.Prefetch(3, 1)
	if queued != 2 {
		t.Fatalf("Prefetch queued %d pages, want 2", queued)
	}

	waitForPrefetch(t, svc, func(s PrefetchStats) bool { return s.Succeeded == 2 })

	// Warmed pages must now be cache hits, not source fetches.
	fetchBefore, _ := src.calls()
	for _, page := range []int{2, 4} {
		if _, err := svc.GetPage(ctx, page); err != nil {
			t.Fatalf("GetPage(%d): %v", page, err)
		}
	}
	if fetchAfter, _ := src.calls(); fetchAfter != fetchBefore {
		t.Errorf("warmed pages hit the source: fetch %d->%d", fetchBefore, fetchAfter)
	}
}

func TestPrefetch_ClampsToRange(t *testing.T) {
	src := newMockSource(23)
	svc := newTestService(t, src, prefetchConfig())

	// Around page 1 only page 2 is a real neighbor; page 0 is skipped at
	// queue time.
	if queued := svc.Prefetch(1, 1); queued != 1 {
		t.Errorf("Prefetch(1, 1) queued %d, want 1", queued)
	}
}

func TestPrefetch_SwallowsFailures(t *testing.T) {
	src := newMockSource(23)
	svc := newTestService(t, src, prefetchConfig())

	// Pages past the end fail inside the workers without surfacing.
	if queued := svc.Prefetch(7, 1); queued != 2 {
		t.Fatalf("queued %d, want 2", queued)
	}

	waitForPrefetch(t, svc, func(s PrefetchStats) bool { return s.Failed == 2 })
}

func TestPrefetch_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.AsyncEnabled = false
	src := newMockSource(23)
	svc := newTestService(t, src, cfg)

	if queued := svc.Prefetch(3, 2); queued != 0 {
		t.Errorf("disabled prefetch queued %d pages", queued)
	}
	if _, ok := svc.PrefetchStats(); ok {
		t.Error("PrefetchStats reported enabled")
	}
}

func TestPrefetch_ZeroRadius(t *testing.T) {
	src := newMockSource(23)
	svc := newTestService(t, src, prefetchConfig())

	if queued := svc.Prefetch(3, 0); queued != 0 {
		t.Errorf("zero radius queued %d pages", queued)
	}
}
