// Package datasource defines the contract between the pagination engine and
// the systems that actually hold data, plus an in-memory implementation for
// static collections.
package datasource

import "context"

// FetchResult is the outcome of an asynchronous fetch.
type FetchResult[T any] struct {
	Items []T
	Err   error
}

// CountResult is the outcome of an asynchronous count.
type CountResult struct {
	Total int
	Err   error
}

// DataSource supplies slices of an ordered dataset to the pagination engine.
//
// Contract:
//   - Fetch(ctx, offset, limit) returns up to limit items starting at the
//     0-based offset. An offset at or past the end returns an empty slice,
//     not an error. offset must be >= 0 and limit >= 1.
//   - Count returns the non-negative total, best-effort consistent with
//     Fetch. The engine re-counts rather than assuming totals stay frozen
//     between calls.
//   - Identifier returns a stable string unique to the logical
//     dataset+configuration; it namespaces cache keys, so two sources that
//     can return different data must never share an identifier.
//   - The async forms deliver the same semantics off the calling goroutine:
//     the returned channel receives exactly one result and is then closed.
//
// Implementations are expected to be safe for concurrent use.
type DataSource[T any] interface {
	Fetch(ctx context.Context, offset, limit int) ([]T, error)
	FetchAsync(ctx context.Context, offset, limit int) <-chan FetchResult[T]
	Count(ctx context.Context) (int, error)
	CountAsync(ctx context.Context) <-chan CountResult
	Identifier() string
}

// GoFetch runs fetch on its own goroutine and delivers the single result on
// the returned channel. Implementations can build FetchAsync with it.
func GoFetch[T any](ctx context.Context, fetch func(context.Context) ([]T, error)) <-chan FetchResult[T] {
	out := make(chan FetchResult[T], 1)
	go func() {
		defer close(out)
		items, err := fetch(ctx)
		out <- FetchResult[T]{Items: items, Err: err}
	}()
	return out
}

// GoCount runs count on its own goroutine and delivers the single result on
// the returned channel.
func GoCount(ctx context.Context, count func(context.Context) (int, error)) <-chan CountResult {
	out := make(chan CountResult, 1)
	go func() {
		defer close(out)
		total, err := count(ctx)
		out <- CountResult{Total: total, Err: err}
	}()
	return out
}

// Funcs adapts plain functions into a DataSource, for callers that do not
// want to define a type.
type Funcs[T any] struct {
	FetchFunc func(ctx context.Context, offset, limit int) ([]T, error)
	CountFunc func(ctx context.Context) (int, error)
	ID        string
}

func (f Funcs[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	return f.FetchFunc(ctx, offset, limit)
}

func (f Funcs[T]) FetchAsync(ctx context.Context, offset, limit int) <-chan FetchResult[T] {
	return GoFetch(ctx, func(ctx context.Context) ([]T, error) {
		return f.FetchFunc(ctx, offset, limit)
	})
}

func (f Funcs[T]) Count(ctx context.Context) (int, error) {
	return f.CountFunc(ctx)
}

func (f Funcs[T]) CountAsync(ctx context.Context) <-chan CountResult {
	return GoCount(ctx, f.CountFunc)
}

func (f Funcs[T]) Identifier() string {
	return f.ID
}
