// Package pagination orchestrates page retrieval: it validates page
// numbers against a fresh element count, fetches page slices from a data
// source, assembles navigation windows, and serves repeated requests from
// a bounded TTL cache with request coalescing.
package pagination

import (
	"context"
	"sync"
	"time"

	"github.com/O-tero/pagination-engine/cache"
	"github.com/O-tero/pagination-engine/config"
	"github.com/O-tero/pagination-engine/datasource"
	"github.com/O-tero/pagination-engine/pkg/logging"
	"github.com/O-tero/pagination-engine/pkg/models"
)

// Service answers page requests for a single data source. All methods are
// safe for concurrent use. The zero value is not usable; construct with
// NewService.
type Service[T any] struct {
	source datasource.DataSource[T]
	cfg    config.Config
	log    *logging.Logger

	cache     *cache.Cache[cache.Key, *models.PaginatedResult[T]]
	ownsCache bool

	prefetch  *prefetcher[T]
	closeOnce sync.Once
}

// Option configures a Service at construction time.
type Option[T any] func(*Service[T])

// WithLogger routes the service's diagnostics to l instead of the no-op
// default.
func WithLogger[T any](l *logging.Logger) Option[T] {
	return func(s *Service[T]) { s.log = l }
}

// WithCache installs a shared page store instead of a service-owned one.
// The service will invalidate only its own source's entries in it and will
// not close it. Ignored when caching is disabled in the configuration.
func WithCache[T any](c *cache.Cache[cache.Key, *models.PaginatedResult[T]]) Option[T] {
	return func(s *Service[T]) {
		s.cache = c
		s.ownsCache = false
	}
}

// NewService validates cfg and builds a service over source. When caching
// is enabled and no shared store is supplied, the service creates and owns
// its own store and closes it on Close.
func NewService[T any](source datasource.DataSource[T], cfg config.Config, opts ...Option[T]) (*Service[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Service[T]{
		source: source,
		cfg:    cfg,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.CacheEnabled && s.cache == nil {
		store, err := cache.New[cache.Key, *models.PaginatedResult[T]](cfg.CacheMaxSize, cfg.CacheTTL, cache.Options{
			SweepInterval: cfg.SweepInterval,
			Logger:        s.log,
		})
		if err != nil {
			return nil, err
		}
		s.cache = store
		s.ownsCache = true
	}
	if !cfg.CacheEnabled {
		s.cache = nil
	}
	if cfg.AsyncEnabled && s.cache != nil {
		s.prefetch = newPrefetcher(s, cfg.PrefetchWorkers, cfg.PrefetchRPS, s.log)
	}
	return s, nil
}

// Source reports the identifier of the underlying data source.
func (s *Service[T]) Source() string {
	return s.source.Identifier()
}

// PageSize reports the configured page size.
func (s *Service[T]) PageSize() int {
	return s.cfg.PageSize
}

func (s *Service[T]) pageKey(page int) cache.Key {
	return cache.NewKey(s.source.Identifier(), page, s.cfg.PageSize)
}

func (s *Service[T]) count(ctx context.Context) (int, error) {
	total, err := s.source.Count(ctx)
	if err != nil {
		return 0, &DataSourceError{Op: "count", Err: err}
	}
	return total, nil
}

// loadPage performs a full uncached page build: fresh count, bounds check,
// fetch, window assembly.
func (s *Service[T]) loadPage(ctx context.Context, page int) (*models.PaginatedResult[T], error) {
	total, err := s.count(ctx)
	if err != nil {
		return nil, err
	}
	info := models.NewPageInfo(page, total, s.cfg.PageSize)
	if page > info.TotalPages {
		return nil, &InvalidPageError{Requested: page, TotalPages: info.TotalPages}
	}
	items, err := s.source.Fetch(ctx, info.Offset, s.cfg.PageSize)
	if err != nil {
		return nil, &DataSourceError{Op: "fetch", Err: err}
	}
	window := models.NewNavigationWindow(page, info.TotalPages, s.cfg.MaxVisible())
	meta := models.NewMetadata()
	meta.Set("source", s.source.Identifier())
	meta.Set("fetched_at", time.Now().UTC().Format(time.RFC3339))
	return models.NewPaginatedResult(items, info, window, meta), nil
}

// GetPage returns the requested page, serving from cache when possible. A
// page below 1 fails immediately with InvalidPageError; a page past the end
// is detected against a fresh count. Concurrent requests for the same page
// share a single load.
func (s *Service[T]) GetPage(ctx context.Context, page int) (*models.PaginatedResult[T], error) {
	if page < 1 {
		total, err := s.count(ctx)
		if err != nil {
			return nil, err
		}
		info := models.NewPageInfo(1, total, s.cfg.PageSize)
		return nil, &InvalidPageError{Requested: page, TotalPages: info.TotalPages}
	}
	if s.cache == nil {
		return s.loadPage(ctx, page)
	}
	res, err := s.cache.GetOrCompute(ctx, s.pageKey(page), func(ctx context.Context) (*models.PaginatedResult[T], error) {
		return s.loadPage(ctx, page)
	})
	if err != nil {
		return nil, unwrapLoad(err)
	}
	return res, nil
}

// GetFirstPage returns page 1.
func (s *Service[T]) GetFirstPage(ctx context.Context) (*models.PaginatedResult[T], error) {
	return s.GetPage(ctx, 1)
}

// GetLastPage determines the final page from a fresh count and returns it.
func (s *Service[T]) GetLastPage(ctx context.Context) (*models.PaginatedResult[T], error) {
	total, err := s.count(ctx)
	if err != nil {
		return nil, err
	}
	info := models.NewPageInfo(1, total, s.cfg.PageSize)
	return s.GetPage(ctx, info.TotalPages)
}

// GetNextPage returns the page after current. The second return is false
// when current already is the last page, in which case no fetch happens.
func (s *Service[T]) GetNextPage(ctx context.Context, current *models.PaginatedResult[T]) (*models.PaginatedResult[T], bool, error) {
	if current == nil || !current.PageInfo.HasNextPage() {
		return nil, false, nil
	}
	res, err := s.GetPage(ctx, current.PageInfo.CurrentPage+1)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// GetPreviousPage returns the page before current. The second return is
// false when current already is the first page.
func (s *Service[T]) GetPreviousPage(ctx context.Context, current *models.PaginatedResult[T]) (*models.PaginatedResult[T], bool, error) {
	if current == nil || !current.PageInfo.HasPreviousPage() {
		return nil, false, nil
	}
	res, err := s.GetPage(ctx, current.PageInfo.CurrentPage-1)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

// GetPages returns pages start through end inclusive, in order. The fetch
// is all-or-nothing: the first failing page aborts the batch and its error
// is returned, with no partial results.
func (s *Service[T]) GetPages(ctx context.Context, start, end int) ([]*models.PaginatedResult[T], error) {
	if start > end {
		return nil, ErrInvalidRange
	}
	results := make([]*models.PaginatedResult[T], 0, end-start+1)
	for page := start; page <= end; page++ {
		res, err := s.GetPage(ctx, page)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// IsValidPage reports whether page is within the current page range. Data
// source failures count as invalid.
func (s *Service[T]) IsValidPage(ctx context.Context, page int) bool {
	if page < 1 {
		return false
	}
	total, err := s.count(ctx)
	if err != nil {
		return false
	}
	info := models.NewPageInfo(1, total, s.cfg.PageSize)
	return page <= info.TotalPages
}

// Prefetch queues the pages within radius of current for background
// warming and reports how many were accepted. Warming is advisory:
// failures are swallowed and a full queue drops pages rather than block.
// Returns 0 when prefetching is disabled.
func (s *Service[T]) Prefetch(current, radius int) int {
	if s.prefetch == nil || radius < 1 {
		return 0
	}
	pages := make([]int, 0, 2*radius)
	for p := current - radius; p <= current+radius; p++ {
		if p >= 1 && p != current {
			pages = append(pages, p)
		}
	}
	return s.prefetch.enqueue(pages)
}

// InvalidateCache removes every cached page belonging to this service's
// data source. No-op when caching is disabled.
func (s *Service[T]) InvalidateCache() {
	if s.cache == nil {
		return
	}
	id := s.source.Identifier()
	removed := s.cache.InvalidateMatching(func(k cache.Key) bool {
		return k.Source == id
	})
	if removed > 0 {
		s.log.Debug("cache invalidated", logging.Fields{"source": id, "removed": removed})
	}
}

// InvalidatePage removes a single cached page. No-op when caching is
// disabled or the page is not cached.
func (s *Service[T]) InvalidatePage(page int) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(s.pageKey(page))
}

// Stats returns a snapshot of the page cache counters. The second return
// is false when caching is disabled.
func (s *Service[T]) Stats() (cache.Stats, bool) {
	if s.cache == nil {
		return cache.Stats{}, false
	}
	return s.cache.Stats(), true
}

// PrefetchStats returns a snapshot of the background warming counters. The
// second return is false when prefetching is disabled.
func (s *Service[T]) PrefetchStats() (PrefetchStats, bool) {
	if s.prefetch == nil {
		return PrefetchStats{}, false
	}
	return s.prefetch.snapshot(), true
}

// Close stops the prefetch workers and, when the service owns its page
// store, releases it. Safe to call more than once.
func (s *Service[T]) Close() {
	s.closeOnce.Do(func() {
		if s.prefetch != nil {
			s.prefetch.shutdown()
		}
		if s.ownsCache && s.cache != nil {
			s.cache.Close()
		}
	})
}
