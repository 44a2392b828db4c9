package later

import (
	"time"

	"github.com/later-app/laterd/internal/repository/postgres"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	databaseURL   string
	pool          postgres.PoolConfig
	searchTimeout time.Duration
	debounce      time.Duration
}

// WithDatabaseURL sets the Postgres connection URL.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.databaseURL = url
	}
}

// WithPool overrides the connection pool settings.
func WithPool(maxOpen, maxIdle int, connMaxLifetime time.Duration) Option {
	return func(c *clientConfig) {
		c.pool = postgres.PoolConfig{
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: connMaxLifetime,
		}
	}
}

// WithSearchTimeout bounds one whole search aggregation.
func WithSearchTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.searchTimeout = d
	}
}

// WithDebounce sets the debounce window for live search sessions.
func WithDebounce(d time.Duration) Option {
	return func(c *clientConfig) {
		c.debounce = d
	}
}
