package content

import "time"

// Record is the original typed row behind a search result. The search
// core carries it opaquely; consumers switch on RecordKind to render or
// navigate. Adding a kind without handling it here is a compile-time
// miss at the switch sites, not a runtime type test.
type Record interface {
	RecordKind() Kind
}

// Note is a free-form note inside a space.
type Note struct {
	ID        string
	SpaceID   string
	OwnerID   string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordKind implements Record.
func (Note) RecordKind() Kind { return KindNote }

// TodoList is a container of todo items.
type TodoList struct {
	ID        string
	SpaceID   string
	OwnerID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordKind implements Record.
func (TodoList) RecordKind() Kind { return KindTodoList }

// List is a container of plain list items (shopping lists and the like).
type List struct {
	ID        string
	SpaceID   string
	OwnerID   string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordKind implements Record.
func (List) RecordKind() Kind { return KindList }

// TodoItem belongs to a TodoList. It carries no space or owner of its
// own; scoping is inherited from the parent list.
type TodoItem struct {
	ID          string
	TodoListID  string
	Title       string
	Description string
	Done        bool
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordKind implements Record.
func (TodoItem) RecordKind() Kind { return KindTodoItem }

// ListItem belongs to a List.
type ListItem struct {
	ID        string
	ListID    string
	Title     string
	Checked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordKind implements Record.
func (ListItem) RecordKind() Kind { return KindListItem }
