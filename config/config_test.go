package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"page size zero", func(c *Config) { c.PageSize = 0 }, "PageSize"},
		{"page size negative", func(c *Config) { c.PageSize = -5 }, "PageSize"},
		{"negative side pages", func(c *Config) { c.SidePages = -1 }, "SidePages"},
		{"cache size zero", func(c *Config) { c.CacheMaxSize = 0 }, "CacheMaxSize"},
		{"cache ttl zero", func(c *Config) { c.CacheTTL = 0 }, "CacheTTL"},
		{"prefetch workers zero", func(c *Config) { c.PrefetchWorkers = 0 }, "PrefetchWorkers"},
		{"prefetch rps zero", func(c *Config) { c.PrefetchRPS = 0 }, "PrefetchRPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)

			err := c.Validate()
			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *Error", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_CacheSettingsIgnoredWhenDisabled(t *testing.T) {
	c := Default()
	c.CacheEnabled = false
	c.CacheMaxSize = 0
	c.CacheTTL = 0

	if err := c.Validate(); err != nil {
		t.Errorf("Validate() with cache disabled = %v, want nil", err)
	}
}

func TestMaxVisible(t *testing.T) {
	c := Config{SidePages: 2}
	if got := c.MaxVisible(); got != 5 {
		t.Errorf("MaxVisible() = %d, want 5", got)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PAGER_PAGE_SIZE", "50")
	t.Setenv("PAGER_CACHE_TTL", "30s")
	t.Setenv("PAGER_ASYNC_ENABLED", "false")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", c.PageSize)
	}
	if c.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", c.CacheTTL)
	}
	if c.AsyncEnabled {
		t.Error("AsyncEnabled = true, want false")
	}
	// Unset variables keep defaults.
	if c.SidePages != Default().SidePages {
		t.Errorf("SidePages = %d, want default %d", c.SidePages, Default().SidePages)
	}
}

func TestFromEnv_ParseErrors(t *testing.T) {
	t.Setenv("PAGER_PAGE_SIZE", "many")

	_, err := FromEnv()
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("FromEnv = %v, want *Error", err)
	}
}

func TestFromEnv_ValidatesResult(t *testing.T) {
	t.Setenv("PAGER_PAGE_SIZE", "0")

	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv accepted PageSize=0")
	}
}
