// Package later is the embedded SDK for the Later search service. It
// wires the Postgres search adapters directly, without the HTTP layer,
// for tools and backend jobs that live next to the database.
package later

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
	"github.com/later-app/laterd/internal/repository/postgres"
	"github.com/later-app/laterd/internal/usecase/livesearch"
	searchuc "github.com/later-app/laterd/internal/usecase/search"
)

// searcher is substituted in tests.
type searcher interface {
	Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error)
}

// Client is the later SDK entry point.
type Client struct {
	db       *sql.DB
	svc      searcher
	debounce time.Duration
}

// New creates a later Client, connects to the database, and applies
// pending schema migrations.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		pool: postgres.DefaultPoolConfig(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.databaseURL == "" {
		return nil, errors.New("later: database URL required (use WithDatabaseURL)")
	}

	db, err := postgres.Open(cfg.databaseURL, cfg.pool)
	if err != nil {
		return nil, fmt.Errorf("later: connect: %w", err)
	}

	svc := searchuc.New(
		postgres.NewNotes(db),
		postgres.NewTodoLists(db),
		postgres.NewLists(db),
		postgres.NewTodoItems(db),
		postgres.NewListItems(db),
	)
	if cfg.searchTimeout > 0 {
		svc = svc.WithTimeout(cfg.searchTimeout)
	}

	return &Client{db: db, svc: svc, debounce: cfg.debounce}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.db != nil {
		_ = c.db.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search starts a query builder scoped to one owner and space.
func (c *Client) Search(ownerID, spaceID string) *SearchBuilder {
	return &SearchBuilder{svc: c.svc, ownerID: ownerID, spaceID: spaceID}
}

// Live opens a debounced live search session scoped to one owner and
// space. The caller owns the returned controller and must Close it.
func (c *Client) Live(ownerID, spaceID string) *livesearch.Controller {
	ctrl := livesearch.NewController(c.svc, ownerID, spaceID)
	if c.debounce > 0 {
		ctrl = ctrl.WithDebounce(c.debounce)
	}
	return ctrl
}
