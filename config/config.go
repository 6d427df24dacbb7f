// Package config holds the runtime configuration of the pagination engine
// and its validation rules. Impossible settings are rejected before any
// component is constructed.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every tunable of the engine.
type Config struct {
	// PageSize is the number of items per page. Must be >= 1.
	PageSize int
	// SidePages is the navigation window radius: how many page numbers are
	// shown on each side of the current page. Must be >= 0.
	SidePages int
	// CacheEnabled turns the page cache on.
	CacheEnabled bool
	// CacheMaxSize bounds the number of cached pages. Must be >= 1 when the
	// cache is enabled.
	CacheMaxSize int
	// CacheTTL is how long a cached page stays fresh. Must be positive when
	// the cache is enabled.
	CacheTTL time.Duration
	// SweepInterval is the period of the cache's background expiry sweep.
	// Zero selects the cache's default; negative disables the sweep.
	SweepInterval time.Duration
	// AsyncEnabled turns on the background prefetcher. The channel-returning
	// methods work regardless.
	AsyncEnabled bool
	// PrefetchWorkers is the number of goroutines warming the cache. Must be
	// >= 1 when prefetching is active.
	PrefetchWorkers int
	// PrefetchRPS caps data source requests per second issued by the
	// prefetcher. Must be >= 1 when prefetching is active.
	PrefetchRPS int
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		PageSize:        20,
		SidePages:       2,
		CacheEnabled:    true,
		CacheMaxSize:    100,
		CacheTTL:        5 * time.Minute,
		AsyncEnabled:    true,
		PrefetchWorkers: 2,
		PrefetchRPS:     50,
	}
}

// MaxVisible is the navigation window width derived from SidePages.
func (c Config) MaxVisible() int {
	return 2*c.SidePages + 1
}

// Error reports an impossible configuration value. It is returned by
// Validate and FromEnv before anything is built from the faulty config.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Validate checks the configuration and returns a *Error describing the
// first impossible setting found.
func (c Config) Validate() error {
	if c.PageSize < 1 {
		return &Error{Field: "PageSize", Reason: fmt.Sprintf("must be >= 1, got %d", c.PageSize)}
	}
	if c.SidePages < 0 {
		return &Error{Field: "SidePages", Reason: fmt.Sprintf("must be >= 0, got %d", c.SidePages)}
	}
	if c.CacheEnabled {
		if c.CacheMaxSize < 1 {
			return &Error{Field: "CacheMaxSize", Reason: fmt.Sprintf("must be >= 1, got %d", c.CacheMaxSize)}
		}
		if c.CacheTTL <= 0 {
			return &Error{Field: "CacheTTL", Reason: fmt.Sprintf("must be positive, got %v", c.CacheTTL)}
		}
	}
	if c.AsyncEnabled && c.CacheEnabled {
		if c.PrefetchWorkers < 1 {
			return &Error{Field: "PrefetchWorkers", Reason: fmt.Sprintf("must be >= 1, got %d", c.PrefetchWorkers)}
		}
		if c.PrefetchRPS < 1 {
			return &Error{Field: "PrefetchRPS", Reason: fmt.Sprintf("must be >= 1, got %d", c.PrefetchRPS)}
		}
	}
	return nil
}

// FromEnv builds a configuration from PAGER_* environment variables,
// starting from Default for anything unset, and validates the result.
//
// Recognized variables: PAGER_PAGE_SIZE, PAGER_SIDE_PAGES,
// PAGER_CACHE_ENABLED, PAGER_CACHE_MAX_SIZE, PAGER_CACHE_TTL,
// PAGER_SWEEP_INTERVAL, PAGER_ASYNC_ENABLED, PAGER_PREFETCH_WORKERS,
// PAGER_PREFETCH_RPS. Durations use Go syntax ("30s", "5m").
func FromEnv() (Config, error) {
	c := Default()

	var err error
	if c.PageSize, err = envInt("PAGER_PAGE_SIZE", c.PageSize); err != nil {
		return Config{}, err
	}
	if c.SidePages, err = envInt("PAGER_SIDE_PAGES", c.SidePages); err != nil {
		return Config{}, err
	}
	if c.CacheEnabled, err = envBool("PAGER_CACHE_ENABLED", c.CacheEnabled); err != nil {
		return Config{}, err
	}
	if c.CacheMaxSize, err = envInt("PAGER_CACHE_MAX_SIZE", c.CacheMaxSize); err != nil {
		return Config{}, err
	}
	if c.CacheTTL, err = envDuration("PAGER_CACHE_TTL", c.CacheTTL); err != nil {
		return Config{}, err
	}
	if c.SweepInterval, err = envDuration("PAGER_SWEEP_INTERVAL", c.SweepInterval); err != nil {
		return Config{}, err
	}
	if c.AsyncEnabled, err = envBool("PAGER_ASYNC_ENABLED", c.AsyncEnabled); err != nil {
		return Config{}, err
	}
	if c.PrefetchWorkers, err = envInt("PAGER_PREFETCH_WORKERS", c.PrefetchWorkers); err != nil {
		return Config{}, err
	}
	if c.PrefetchRPS, err = envInt("PAGER_PREFETCH_RPS", c.PrefetchRPS); err != nil {
		return Config{}, err
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &Error{Field: name, Reason: fmt.Sprintf("is not an integer: %q", raw)}
	}
	return v, nil
}

func envBool(name string, fallback bool) (bool, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &Error{Field: name, Reason: fmt.Sprintf("is not a boolean: %q", raw)}
	}
	return v, nil
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &Error{Field: name, Reason: fmt.Sprintf("is not a duration: %q", raw)}
	}
	return v, nil
}
