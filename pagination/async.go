package pagination

import (
	"context"

	"github.com/O-tero/pagination-engine/pkg/models"
)

// PageOutcome carries the result of an asynchronous single-page request.
type PageOutcome[T any] struct {
	Result *models.PaginatedResult[T]
	Err    error
}

// PagesOutcome carries the result of an asynchronous multi-page request.
type PagesOutcome[T any] struct {
	Results []*models.PaginatedResult[T]
	Err     error
}

// GetPageAsync runs GetPage in a goroutine. The returned channel receives
// exactly one outcome and is then closed. Concurrent requests for the same
// cached page still share a single load.
func (s *Service[T]) GetPageAsync(ctx context.Context, page int) <-chan PageOutcome[T] {
	ch := make(chan PageOutcome[T], 1)
	go func() {
		defer close(ch)
		res, err := s.GetPage(ctx, page)
		ch <- PageOutcome[T]{Result: res, Err: err}
	}()
	return ch
}

// GetFirstPageAsync runs GetFirstPage in a goroutine.
func (s *Service[T]) GetFirstPageAsync(ctx context.Context) <-chan PageOutcome[T] {
	return s.GetPageAsync(ctx, 1)
}

// GetLastPageAsync runs GetLastPage in a goroutine.
func (s *Service[T]) GetLastPageAsync(ctx context.Context) <-chan PageOutcome[T] {
	ch := make(chan PageOutcome[T], 1)
	go func() {
		defer close(ch)
		res, err := s.GetLastPage(ctx)
		ch <- PageOutcome[T]{Result: res, Err: err}
	}()
	return ch
}

// GetPagesAsync runs GetPages in a goroutine.
func (s *Service[T]) GetPagesAsync(ctx context.Context, start, end int) <-chan PagesOutcome[T] {
	ch := make(chan PagesOutcome[T], 1)
	go func() {
		defer close(ch)
		results, err := s.GetPages(ctx, start, end)
		ch <- PagesOutcome[T]{Results: results, Err: err}
	}()
	return ch
}
