package result

import (
	"fmt"
	"time"

	"github.com/later-app/laterd/internal/domain/content"
)

// Result is a single normalized search hit. Rows from the five content
// tables are mapped into this one shape before merging.
type Result struct {
	id         string
	kind       content.Kind
	title      string
	subtitle   string
	preview    string
	tags       []string
	updatedAt  time.Time
	parentID   string
	parentName string
	record     content.Record
}

// New creates a search result for a container kind.
func New(
	id string, kind content.Kind, title, subtitle, preview string,
	tags []string, updatedAt time.Time, record content.Record,
) Result {
	return Result{
		id: id, kind: kind, title: title, subtitle: subtitle, preview: preview,
		tags: tags, updatedAt: updatedAt, record: record,
	}
}

// NewChild creates a search result for a child kind with parent
// linkage. updatedAt is the parent's timestamp, not the child's own:
// a todo item surfaces at the position of its list's last activity.
// Missing linkage is a data-integrity condition the caller treats as a
// recoverable skip, never as an aggregation failure.
func NewChild(
	id string, kind content.Kind, title, subtitle, preview string,
	tags []string, parentID, parentName string, parentUpdatedAt time.Time,
	record content.Record,
) (Result, error) {
	if parentID == "" || parentName == "" {
		return Result{}, fmt.Errorf("%s %s: missing parent linkage", kind, id)
	}
	return Result{
		id: id, kind: kind, title: title, subtitle: subtitle, preview: preview,
		tags: tags, updatedAt: parentUpdatedAt,
		parentID: parentID, parentName: parentName, record: record,
	}, nil
}

// ID returns the row's own identity.
func (r *Result) ID() string { return r.id }

// Kind returns the content kind tag.
func (r *Result) Kind() content.Kind { return r.kind }

// Title returns the display title.
func (r *Result) Title() string { return r.title }

// Subtitle returns the display subtitle, empty when absent.
func (r *Result) Subtitle() string { return r.subtitle }

// Preview returns the content snippet, empty when absent.
func (r *Result) Preview() string { return r.preview }

// Tags returns the row's tags, empty for kinds without tags.
func (r *Result) Tags() []string { return r.tags }

// UpdatedAt returns the recency sort key. For child kinds this is the
// parent container's updatedAt.
func (r *Result) UpdatedAt() time.Time { return r.updatedAt }

// ParentID returns the parent container's id, empty for containers.
func (r *Result) ParentID() string { return r.parentID }

// ParentName returns the parent container's display name, empty for containers.
func (r *Result) ParentName() string { return r.parentName }

// Record returns the original typed row for the consumer to render.
func (r *Result) Record() content.Record { return r.record }

// IsChildItem reports whether the result carries parent linkage.
func (r *Result) IsChildItem() bool { return !r.kind.IsContainer() }
