package datasource

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
)

// SliceOption configures a SliceSource at construction.
type SliceOption[T any] func(*sliceConfig[T])

type sliceConfig[T any] struct {
	filter func(T) bool
	less   func(a, b T) bool
	tag    string
}

// WithFilter keeps only items satisfying pred. Applied once at construction.
func WithFilter[T any](pred func(T) bool) SliceOption[T] {
	return func(c *sliceConfig[T]) { c.filter = pred }
}

// WithSort orders the snapshot by less. Applied once at construction, with a
// stable sort so equal items keep their input order.
func WithSort[T any](less func(a, b T) bool) SliceOption[T] {
	return func(c *sliceConfig[T]) { c.less = less }
}

// WithConfigTag distinguishes two sources built from the same name with
// different filter or sort configurations. The tag feeds the identifier, so
// differently configured views never share a cache namespace.
func WithConfigTag[T any](tag string) SliceOption[T] {
	return func(c *sliceConfig[T]) { c.tag = tag }
}

// SliceSource serves pages from an in-memory collection. The backing slice
// is snapshotted, filtered, and sorted once at construction and immutable
// afterwards, so Fetch is a constant-time slice expression.
type SliceSource[T any] struct {
	items []T
	id    string
}

// NewSliceSource snapshots items under the given logical name. The input
// slice is copied; later mutations of it do not affect the source.
func NewSliceSource[T any](name string, items []T, opts ...SliceOption[T]) *SliceSource[T] {
	var cfg sliceConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	snapshot := make([]T, 0, len(items))
	for _, item := range items {
		if cfg.filter == nil || cfg.filter(item) {
			snapshot = append(snapshot, item)
		}
	}

	if cfg.less != nil {
		sort.SliceStable(snapshot, func(i, j int) bool {
			return cfg.less(snapshot[i], snapshot[j])
		})
	}

	return &SliceSource[T]{
		items: snapshot,
		id:    fingerprint(name, cfg.tag, len(snapshot)),
	}
}

// fingerprint derives a stable identifier from the logical name, the
// configuration tag, and the snapshot length, so distinct configurations get
// distinct cache namespaces.
func fingerprint(name, tag string, size int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d", name, tag, size)
	return fmt.Sprintf("%s#%016x", name, h.Sum64())
}

func (s *SliceSource[T]) Fetch(ctx context.Context, offset, limit int) ([]T, error) {
	if offset < 0 {
		return nil, fmt.Errorf("datasource: offset must be >= 0, got %d", offset)
	}
	if limit < 1 {
		return nil, fmt.Errorf("datasource: limit must be >= 1, got %d", limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if offset >= len(s.items) {
		return []T{}, nil
	}

	end := offset + limit
	if end > len(s.items) {
		end = len(s.items)
	}

	page := make([]T, end-offset)
	copy(page, s.items[offset:end])
	return page, nil
}

func (s *SliceSource[T]) FetchAsync(ctx context.Context, offset, limit int) <-chan FetchResult[T] {
	return GoFetch(ctx, func(ctx context.Context) ([]T, error) {
		return s.Fetch(ctx, offset, limit)
	})
}

func (s *SliceSource[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.items), nil
}

func (s *SliceSource[T]) CountAsync(ctx context.Context) <-chan CountResult {
	return GoCount(ctx, s.Count)
}

func (s *SliceSource[T]) Identifier() string {
	return s.id
}
