package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
)

const containerColumns = `id, space_id, owner_id, name, created_at, updated_at`

// TodoLists is the search adapter for the todo_lists table.
// Containers carry no tags, so the query's tag filter does not apply.
type TodoLists struct {
	db executor
}

// NewTodoLists creates the todo lists adapter.
func NewTodoLists(db *sql.DB) *TodoLists { return &TodoLists{db: db} }

// Kind returns the content kind this adapter serves.
func (a *TodoLists) Kind() content.Kind { return content.KindTodoList }

// Search issues one full-text query against todo_lists, newest first.
func (a *TodoLists) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	return searchContainers(ctx, a.db, "todo_lists", content.KindTodoList, q, ownerID)
}

// searchContainers is shared by the two container tables; they have the
// same columns and the same name-only text index.
func searchContainers(
	ctx context.Context, db executor, table string, kind content.Kind,
	q query.Query, ownerID string,
) ([]result.Result, error) {
	b := &clauseBuilder{}
	b.where("owner_id = " + b.arg(ownerID))
	b.where("space_id = " + b.arg(q.SpaceID()))
	b.where("to_tsvector('english', name) @@ plainto_tsquery('english', " + b.arg(q.Phrase()) + ")")

	stmt := `SELECT ` + containerColumns + ` FROM ` + table + b.whereSQL() +
		` ORDER BY updated_at DESC LIMIT ` + b.arg(q.Limit()) + ` OFFSET ` + b.arg(q.Offset())

	rows, err := db.QueryContext(ctx, stmt, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", table, err)
	}
	defer rows.Close()

	var out []result.Result
	for rows.Next() {
		var row containerRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, row.normalize(kind))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}
