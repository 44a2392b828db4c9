package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/result"
)

// previewRunes caps content snippets carried on search results.
const previewRunes = 160

// noteRow is a raw notes row.
type noteRow struct {
	id        string
	spaceID   string
	ownerID   string
	title     string
	content   string
	tags      pq.StringArray
	createdAt time.Time
	updatedAt time.Time
}

func (r *noteRow) scan(rows *sql.Rows) error {
	return rows.Scan(
		&r.id, &r.spaceID, &r.ownerID, &r.title, &r.content,
		&r.tags, &r.createdAt, &r.updatedAt,
	)
}

// normalize maps a notes row into the canonical result shape.
func (r *noteRow) normalize() result.Result {
	rec := content.Note{
		ID: r.id, SpaceID: r.spaceID, OwnerID: r.ownerID,
		Title: r.title, Content: r.content, Tags: r.tags,
		CreatedAt: r.createdAt, UpdatedAt: r.updatedAt,
	}
	return result.New(
		r.id, content.KindNote, r.title, "", snippet(r.content),
		r.tags, r.updatedAt, rec,
	)
}

// containerRow is a raw todo_lists or lists row; the two tables share a shape.
type containerRow struct {
	id        string
	spaceID   string
	ownerID   string
	name      string
	createdAt time.Time
	updatedAt time.Time
}

func (r *containerRow) scan(rows *sql.Rows) error {
	return rows.Scan(&r.id, &r.spaceID, &r.ownerID, &r.name, &r.createdAt, &r.updatedAt)
}

// normalize maps a container row into the canonical result shape.
func (r *containerRow) normalize(kind content.Kind) result.Result {
	var rec content.Record
	switch kind {
	case content.KindTodoList:
		rec = content.TodoList{
			ID: r.id, SpaceID: r.spaceID, OwnerID: r.ownerID, Name: r.name,
			CreatedAt: r.createdAt, UpdatedAt: r.updatedAt,
		}
	default:
		rec = content.List{
			ID: r.id, SpaceID: r.spaceID, OwnerID: r.ownerID, Name: r.name,
			CreatedAt: r.createdAt, UpdatedAt: r.updatedAt,
		}
	}
	return result.New(r.id, kind, r.name, "", "", nil, r.updatedAt, rec)
}

// todoItemRow is a raw todo_items row with the joined parent fields.
type todoItemRow struct {
	id          string
	todoListID  string
	title       string
	description sql.NullString
	done        bool
	tags        pq.StringArray
	createdAt   time.Time
	updatedAt   time.Time

	parentID        sql.NullString
	parentName      sql.NullString
	parentUpdatedAt sql.NullTime
}

func (r *todoItemRow) scan(rows *sql.Rows) error {
	return rows.Scan(
		&r.id, &r.todoListID, &r.title, &r.description, &r.done,
		&r.tags, &r.createdAt, &r.updatedAt,
		&r.parentID, &r.parentName, &r.parentUpdatedAt,
	)
}

// normalize maps a todo item row into the canonical result shape. The
// sort key is the parent list's updatedAt. A row without parent linkage
// returns an error; the adapter skips it rather than failing the search.
func (r *todoItemRow) normalize() (result.Result, error) {
	rec := content.TodoItem{
		ID: r.id, TodoListID: r.todoListID, Title: r.title,
		Description: r.description.String, Done: r.done, Tags: r.tags,
		CreatedAt: r.createdAt, UpdatedAt: r.updatedAt,
	}
	return result.NewChild(
		r.id, content.KindTodoItem, r.title, r.parentName.String,
		snippet(r.description.String), r.tags,
		r.parentID.String, r.parentName.String, r.parentUpdatedAt.Time, rec,
	)
}

// listItemRow is a raw list_items row with the joined parent fields.
type listItemRow struct {
	id        string
	listID    string
	title     string
	checked   bool
	createdAt time.Time
	updatedAt time.Time

	parentID        sql.NullString
	parentName      sql.NullString
	parentUpdatedAt sql.NullTime
}

func (r *listItemRow) scan(rows *sql.Rows) error {
	return rows.Scan(
		&r.id, &r.listID, &r.title, &r.checked, &r.createdAt, &r.updatedAt,
		&r.parentID, &r.parentName, &r.parentUpdatedAt,
	)
}

// normalize maps a list item row into the canonical result shape.
func (r *listItemRow) normalize() (result.Result, error) {
	rec := content.ListItem{
		ID: r.id, ListID: r.listID, Title: r.title, Checked: r.checked,
		CreatedAt: r.createdAt, UpdatedAt: r.updatedAt,
	}
	return result.NewChild(
		r.id, content.KindListItem, r.title, r.parentName.String, "", nil,
		r.parentID.String, r.parentName.String, r.parentUpdatedAt.Time, rec,
	)
}

// snippet truncates content to a display-sized preview.
func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= previewRunes {
		return s
	}
	return string(runes[:previewRunes]) + "…"
}
