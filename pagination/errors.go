package pagination

import (
	"errors"
	"fmt"

	"github.com/O-tero/pagination-engine/cache"
)

// ErrInvalidRange reports a multi-page request whose start page is greater
// than its end page.
var ErrInvalidRange = errors.New("pagination: start page must be <= end page")

// InvalidPageError reports a page request outside [1, TotalPages]. It
// carries both values for message composition; the caller must supply a
// corrected page, the engine never retries on its own.
type InvalidPageError struct {
	Requested  int
	TotalPages int
}

func (e *InvalidPageError) Error() string {
	return fmt.Sprintf("pagination: page %d out of range [1, %d]", e.Requested, e.TotalPages)
}

// DataSourceError wraps a failure surfaced by the data source. It is
// propagated unmodified to the caller; the engine does not retry data source
// failures.
type DataSourceError struct {
	Op  string // "fetch" or "count"
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("pagination: data source %s failed: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// unwrapLoad strips the cache's load wrapper from errors produced by this
// package's own loaders, so callers see the typed error that actually
// occurred. Anything else passes through untouched.
func unwrapLoad(err error) error {
	var invalid *InvalidPageError
	if errors.As(err, &invalid) {
		return invalid
	}
	var source *DataSourceError
	if errors.As(err, &source) {
		return source
	}
	var load *cache.LoadError
	if errors.As(err, &load) {
		return load
	}
	return err
}
