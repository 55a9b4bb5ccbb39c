package dexconfig

import (
	"context"
	"sync"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultTTL is how long a fetched snapshot stays fresh.
const DefaultTTL = 60 * time.Second

type (
	// Cache keeps the last fetched configuration snapshot and refreshes it
	// once it is older than the TTL.
	Cache struct {
		fetcher fetcher
		logger  log.Logger
		ttl     time.Duration

		mu        sync.Mutex
		snapshot  *Config
		fetchedAt time.Time
	}

	// CacheOption is the type for cache options that can be passed to NewCache function.
	CacheOption func(*Cache)

	fetcher interface {
		FetchConfig(ctx context.Context) (Config, error)
	}
)

// NewCache returns an empty cache backed by the given fetcher.
func NewCache(f fetcher, opts ...CacheOption) *Cache {
	c := &Cache{fetcher: f, logger: log.NewNopLogger(), ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTTL overrides the snapshot time-to-live.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger used to report refresh failures.
func WithLogger(logger log.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// GetOrRefresh returns the cached snapshot, refetching it when it is missing
// or expired at the given time. A failed refresh falls back to Default()
// and is only logged.
func (c *Cache) GetOrRefresh(ctx context.Context, now time.Time) Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && now.Sub(c.fetchedAt) <= c.ttl {
		return *c.snapshot
	}

	cfg, err := c.fetcher.FetchConfig(ctx)
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to refresh dex config, using defaults", "err", err)
		cfg = Default()
	}

	c.snapshot = &cfg
	c.fetchedAt = now

	return cfg
}

// FetchedAt returns the time of the last refresh attempt.
func (c *Cache) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}
