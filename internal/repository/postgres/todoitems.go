package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
	"github.com/later-app/laterd/internal/logger"
	"github.com/later-app/laterd/internal/metrics"
)

const todoItemColumns = `i.id, i.todo_list_id, i.title, i.description, i.done, i.tags,
	i.created_at, i.updated_at, p.id, p.name, p.updated_at`

// TodoItems is the search adapter for the todo_items table. Items carry
// no space or owner of their own, so scoping runs through an inner join
// to the parent todo list, and results sort by the parent's updatedAt.
type TodoItems struct {
	db executor
}

// NewTodoItems creates the todo items adapter.
func NewTodoItems(db *sql.DB) *TodoItems { return &TodoItems{db: db} }

// Kind returns the content kind this adapter serves.
func (a *TodoItems) Kind() content.Kind { return content.KindTodoItem }

// Search issues one full-text query against todo_items joined to their
// parent lists. Rows with broken parent linkage are logged and skipped.
func (a *TodoItems) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	b := &clauseBuilder{}
	b.where("p.owner_id = " + b.arg(ownerID))
	b.where("p.space_id = " + b.arg(q.SpaceID()))
	if len(q.Tags()) > 0 {
		b.where("i.tags @> " + b.arg(pq.Array(q.Tags())))
	}
	b.where("to_tsvector('english', i.title || ' ' || coalesce(i.description, '')) @@ plainto_tsquery('english', " + b.arg(q.Phrase()) + ")")

	stmt := `SELECT ` + todoItemColumns +
		` FROM todo_items i INNER JOIN todo_lists p ON p.id = i.todo_list_id` + b.whereSQL() +
		` ORDER BY p.updated_at DESC LIMIT ` + b.arg(q.Limit()) + ` OFFSET ` + b.arg(q.Offset())

	rows, err := a.db.QueryContext(ctx, stmt, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search todo_items: %w", err)
	}
	defer rows.Close()

	log := logger.FromContext(ctx)
	var out []result.Result
	for rows.Next() {
		var row todoItemRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("scan todo_item: %w", err)
		}
		res, err := row.normalize()
		if err != nil {
			metrics.NormalizationSkipsTotal.WithLabelValues(string(content.KindTodoItem)).Inc()
			log.Warn("skipping todo item without parent linkage",
				zap.String("id", row.id), zap.Error(err))
			continue
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todo_items: %w", err)
	}
	return out, nil
}
