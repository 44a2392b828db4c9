package postgres

import (
	"context"
	"database/sql"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
)

// Lists is the search adapter for the lists table.
type Lists struct {
	db executor
}

// NewLists creates the lists adapter.
func NewLists(db *sql.DB) *Lists { return &Lists{db: db} }

// Kind returns the content kind this adapter serves.
func (a *Lists) Kind() content.Kind { return content.KindList }

// Search issues one full-text query against lists, newest first.
func (a *Lists) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	return searchContainers(ctx, a.db, "lists", content.KindList, q, ownerID)
}
