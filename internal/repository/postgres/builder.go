package postgres

import (
	"fmt"
	"strings"
)

// clauseBuilder accumulates WHERE clauses with positional args. The
// adapters compose their filters through it in a fixed order: owner,
// space, tags, phrase. The order is structural, not semantic, but it
// keeps the generated SQL and placeholder numbering byte-stable for a
// given query shape.
type clauseBuilder struct {
	clauses []string
	args    []any
}

// arg registers a query argument and returns its placeholder.
func (b *clauseBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// where appends one WHERE clause.
func (b *clauseBuilder) where(clause string) {
	b.clauses = append(b.clauses, clause)
}

// whereSQL renders the accumulated clauses, empty when there are none.
func (b *clauseBuilder) whereSQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}
