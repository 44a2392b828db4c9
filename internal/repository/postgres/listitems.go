package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
	"github.com/later-app/laterd/internal/logger"
	"github.com/later-app/laterd/internal/metrics"
)

const listItemColumns = `i.id, i.list_id, i.title, i.checked, i.created_at, i.updated_at,
	p.id, p.name, p.updated_at`

// ListItems is the search adapter for the list_items table. Like todo
// items, scoping runs through the parent join and results sort by the
// parent's updatedAt. List items carry no tags.
type ListItems struct {
	db executor
}

// NewListItems creates the list items adapter.
func NewListItems(db *sql.DB) *ListItems { return &ListItems{db: db} }

// Kind returns the content kind this adapter serves.
func (a *ListItems) Kind() content.Kind { return content.KindListItem }

// Search issues one full-text query against list_items joined to their
// parent lists. Rows with broken parent linkage are logged and skipped.
func (a *ListItems) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	b := &clauseBuilder{}
	b.where("p.owner_id = " + b.arg(ownerID))
	b.where("p.space_id = " + b.arg(q.SpaceID()))
	b.where("to_tsvector('english', i.title) @@ plainto_tsquery('english', " + b.arg(q.Phrase()) + ")")

	stmt := `SELECT ` + listItemColumns +
		` FROM list_items i INNER JOIN lists p ON p.id = i.list_id` + b.whereSQL() +
		` ORDER BY p.updated_at DESC LIMIT ` + b.arg(q.Limit()) + ` OFFSET ` + b.arg(q.Offset())

	rows, err := a.db.QueryContext(ctx, stmt, b.args...)
	if err != nil {
		return nil, fmt.Errorf("search list_items: %w", err)
	}
	defer rows.Close()

	log := logger.FromContext(ctx)
	var out []result.Result
	for rows.Next() {
		var row listItemRow
		if err := row.scan(rows); err != nil {
			return nil, fmt.Errorf("scan list_item: %w", err)
		}
		res, err := row.normalize()
		if err != nil {
			metrics.NormalizationSkipsTotal.WithLabelValues(string(content.KindListItem)).Inc()
			log.Warn("skipping list item without parent linkage",
				zap.String("id", row.id), zap.Error(err))
			continue
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list_items: %w", err)
	}
	return out, nil
}
