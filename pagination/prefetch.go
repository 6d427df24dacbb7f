package pagination

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/O-tero/pagination-engine/pkg/logging"
)

const (
	prefetchQueueSize = 256
	prefetchTimeout   = 5 * time.Second
)

// PrefetchStats is a snapshot of the background warming counters.
// Throttled counts loads abandoned while waiting on the rate limiter;
// Dropped counts pages that did not fit in the queue.
type PrefetchStats struct {
	Queued    int64 `json:"queued"`
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
	Throttled int64 `json:"throttled"`
	Dropped   int64 `json:"dropped"`
}

// prefetcher warms pages in the background through a small worker pool.
// Loads are rate limited and deduplicated; failures are logged and
// swallowed so warming never surfaces errors to callers.
type prefetcher[T any] struct {
	svc     *Service[T]
	tasks   chan int
	limiter *rate.Limiter
	flights singleflight.Group
	log     *logging.Logger

	queued    atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	throttled atomic.Int64
	dropped   atomic.Int64

	stop chan struct{}
	wg   sync.WaitGroup
}

func newPrefetcher[T any](svc *Service[T], workers, rps int, log *logging.Logger) *prefetcher[T] {
	p := &prefetcher[T]{
		svc:     svc,
		tasks:   make(chan int, prefetchQueueSize),
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		log:     log,
		stop:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// enqueue offers pages to the queue without blocking. Pages that do not
// fit are dropped and counted.
func (p *prefetcher[T]) enqueue(pages []int) int {
	accepted := 0
	for _, page := range pages {
		select {
		case p.tasks <- page:
			accepted++
		default:
			p.dropped.Add(1)
		}
	}
	p.queued.Add(int64(accepted))
	return accepted
}

func (p *prefetcher[T]) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			return
		case page := <-p.tasks:
			p.warm(page)
		}
	}
}

func (p *prefetcher[T]) warm(page int) {
	ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
	defer cancel()
	if err := p.limiter.Wait(ctx); err != nil {
		p.throttled.Add(1)
		return
	}
	key := p.svc.pageKey(page)
	_, err, _ := p.flights.Do(key.String(), func() (any, error) {
		return p.svc.GetPage(ctx, page)
	})
	if err != nil {
		p.failed.Add(1)
		p.log.Debug("prefetch failed", logging.Fields{
			"page":  page,
			"error": err.Error(),
		})
		return
	}
	p.succeeded.Add(1)
}

func (p *prefetcher[T]) snapshot() PrefetchStats {
	return PrefetchStats{
		Queued:    p.queued.Load(),
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Throttled: p.throttled.Load(),
		Dropped:   p.dropped.Load(),
	}
}

func (p *prefetcher[T]) shutdown() {
	close(p.stop)
	p.wg.Wait()
}
