package query

import (
	"strings"

	"github.com/later-app/laterd/internal/domain/content"
)

// Search parameter limits.
const (
	// MaxPhraseLength is the maximum allowed search phrase length in
	// runes, measured after whitespace trimming.
	MaxPhraseLength = 500
	DefaultLimit    = 50
	MaxLimit        = 200
)

// Query is one immutable search invocation. A Query is never mutated;
// With* methods derive copies. The phrase is trimmed on construction,
// length and scope checks belong to the validator in usecase/search.
//
// Kinds carries a three-way meaning: nil means all kinds, a non-nil
// empty slice means "search nothing" (honored as an empty result, not
// as all), and a non-empty slice restricts which adapters run.
type Query struct {
	phrase  string
	spaceID string
	kinds   []content.Kind
	tags    []string
	limit   int
	offset  int
}

// New creates a normalized query: phrase trimmed, pagination defaulted.
func New(phrase, spaceID string) Query {
	return Query{
		phrase:  strings.TrimSpace(phrase),
		spaceID: spaceID,
		limit:   DefaultLimit,
	}
}

// WithPhrase derives a copy with a new trimmed phrase.
func (q Query) WithPhrase(phrase string) Query {
	q.phrase = strings.TrimSpace(phrase)
	return q
}

// WithKinds derives a copy restricted to the given kinds.
// Passing nil restores the all-kinds default.
func (q Query) WithKinds(kinds []content.Kind) Query {
	if kinds == nil {
		q.kinds = nil
		return q
	}
	q.kinds = append([]content.Kind(nil), kinds...)
	return q
}

// WithTags derives a copy with a tag filter. Tags apply only to kinds
// that carry them; the rest ignore the filter.
func (q Query) WithTags(tags []string) Query {
	if tags == nil {
		q.tags = nil
		return q
	}
	q.tags = append([]string(nil), tags...)
	return q
}

// WithLimit derives a copy with a new limit, clamped to [1, MaxLimit].
func (q Query) WithLimit(limit int) Query {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	q.limit = limit
	return q
}

// WithOffset derives a copy with a new offset. Negative offsets reset to 0.
func (q Query) WithOffset(offset int) Query {
	if offset < 0 {
		offset = 0
	}
	q.offset = offset
	return q
}

// Phrase returns the trimmed search phrase.
func (q Query) Phrase() string { return q.phrase }

// SpaceID returns the tenant scope.
func (q Query) SpaceID() string { return q.spaceID }

// Kinds returns the restricted kind set, or nil for all kinds.
func (q Query) Kinds() []content.Kind { return q.kinds }

// Tags returns the tag filter.
func (q Query) Tags() []string { return q.tags }

// Limit returns the pagination window size applied after the merge.
func (q Query) Limit() int { return q.limit }

// Offset returns the pagination offset applied after the merge.
func (q Query) Offset() int { return q.offset }

// FetchWindow derives the window each adapter is asked for. The final
// offset/limit window applies to the merged cross-kind sequence, so
// every adapter must return the first offset+limit rows of its own
// ordering for the merged window to be complete.
func (q Query) FetchWindow() Query {
	q.limit = q.offset + q.limit
	q.offset = 0
	return q
}

// ActiveKinds resolves the kind set the aggregator fans out to:
// all five kinds when unrestricted, the explicit set otherwise.
func (q Query) ActiveKinds() []content.Kind {
	if q.kinds == nil {
		return content.All()
	}
	return q.kinds
}
