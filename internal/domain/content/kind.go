package content

// Kind identifies one searchable content type.
type Kind string

// Content kind constants.
const (
	KindNote     Kind = "note"
	KindTodoList Kind = "todo_list"
	KindList     Kind = "list"
	// KindTodoItem and KindListItem are child kinds: they belong to a
	// parent container and surface in search with parent linkage.
	KindTodoItem Kind = "todo_item"
	KindListItem Kind = "list_item"
)

// All returns every searchable kind in canonical merge order.
// The aggregator merges per-kind results in this order so output is
// deterministic regardless of which backend call finishes first.
func All() []Kind {
	return []Kind{KindNote, KindTodoList, KindList, KindTodoItem, KindListItem}
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case KindNote, KindTodoList, KindList, KindTodoItem, KindListItem:
		return true
	}
	return false
}

// IsContainer reports whether the kind is a top-level container.
// Child kinds (todo_item, list_item) return false.
func (k Kind) IsContainer() bool {
	return k == KindNote || k == KindTodoList || k == KindList
}

// HasTags reports whether records of this kind carry tags.
// Containers other than notes don't hold tags in this domain, and
// neither do list items.
func (k Kind) HasTags() bool {
	return k == KindNote || k == KindTodoItem
}
