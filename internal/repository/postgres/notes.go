package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
)

const noteColumns = `id, space_id, owner_id, title, content, tags, created_at, updated_at`

// Notes is the search adapter for the notes table.
type Notes struct {
	db executor
}

// NewNotes creates the notes adapter.
func NewNotes(db *sql.DB) *Notes { return &Notes{db: db} }

// Kind returns the content kind this adapter serves.
func (a *Notes) Kind() content.Kind { return content.KindNote }

// Search issues one full-text query against notes, newest first.
// The tag filter must be composed before the phrase predicate.
func (a *Notes) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	b := &clauseBuilder{}
	b.where("owner_id = " + b.arg(ownerID))
	b.where("space_id = " + b.arg(q.SpaceID()))
	if len(q.Tags()) > 0 {
		b.where("tags @> " + b.arg(pq.Array(q.Tags())))
	}
	b.where("to_tsvector('english', title || ' ' || content) @@ plainto_tsquery('english', " + b.arg(q.Phrase()) + ")")

	stmt := `SELECT ` + noteColumns + ` FROM notes` + b.whereSQL() +
		` ORDER BY updated_at DESC LIMIT ` + b.arg(q.Limit()) + ` OFFSET ` + b.arg(q.Offset())

	rows, err := a.db.QueryContext(ctx, stmt, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	var out []result.Result
	for rows.Next() {
		var row noteRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, row.normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}
