package livesearch

import (
	"fmt"

	"github.com/later-app/laterd/internal/domain"
	"github.com/later-app/laterd/internal/domain/content"
)

// Filters narrows a live search session. Kinds keeps the three-way
// meaning of the query value object: nil searches all kinds, a non-nil
// empty slice searches nothing, a non-empty slice restricts.
type Filters struct {
	kinds []content.Kind
	tags  []string
}

// SetKinds restricts the session to the given kinds. Every kind must be
// one of the known content kinds. Passing nil restores the all-kinds
// default, passing an empty non-nil slice disables all kinds.
func (f *Filters) SetKinds(kinds []content.Kind) error {
	if kinds == nil {
		f.kinds = nil
		return nil
	}
	for _, k := range kinds {
		if !k.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrInvalidKind, k)
		}
	}
	f.kinds = append([]content.Kind(nil), kinds...)
	return nil
}

// SetTags sets the tag filter. Tags only constrain kinds that carry tags.
func (f *Filters) SetTags(tags []string) {
	if tags == nil {
		f.tags = nil
		return
	}
	f.tags = append([]string(nil), tags...)
}

// Reset clears all filters back to the unrestricted default.
func (f *Filters) Reset() {
	f.kinds = nil
	f.tags = nil
}

// HasActive reports whether any filter narrows the session. An empty
// non-nil kind set counts as active: it excludes everything.
func (f *Filters) HasActive() bool {
	return f.kinds != nil || len(f.tags) > 0
}

// Kinds returns a copy of the kind restriction, preserving nil.
func (f *Filters) Kinds() []content.Kind {
	if f.kinds == nil {
		return nil
	}
	return append([]content.Kind(nil), f.kinds...)
}

// Tags returns a copy of the tag filter.
func (f *Filters) Tags() []string {
	if f.tags == nil {
		return nil
	}
	return append([]string(nil), f.tags...)
}
