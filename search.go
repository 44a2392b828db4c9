package later

import (
	"context"
	"fmt"
	"time"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
)

// Content kinds accepted by Kinds.
const (
	KindNote     = string(content.KindNote)
	KindTodoList = string(content.KindTodoList)
	KindList     = string(content.KindList)
	KindTodoItem = string(content.KindTodoItem)
	KindListItem = string(content.KindListItem)
)

// SearchResult is one normalized hit.
type SearchResult struct {
	ID         string
	Kind       string
	Title      string
	Subtitle   string
	Preview    string
	Tags       []string
	UpdatedAt  time.Time
	ParentID   string
	ParentName string
}

// SearchBuilder is a fluent builder for one search query.
type SearchBuilder struct {
	svc     searcher
	ownerID string
	spaceID string

	phrase string
	kinds  []string
	tags   []string
	limit  int
	offset int
}

// Phrase sets the search phrase.
func (b *SearchBuilder) Phrase(phrase string) *SearchBuilder {
	b.phrase = phrase
	return b
}

// Kinds restricts the query to the given content kinds. Calling it with
// no arguments restricts the query to nothing; not calling it at all
// searches every kind.
func (b *SearchBuilder) Kinds(kinds ...string) *SearchBuilder {
	if kinds == nil {
		kinds = []string{}
	}
	b.kinds = kinds
	return b
}

// Tags adds a tag filter. Only kinds that carry tags are constrained.
func (b *SearchBuilder) Tags(tags ...string) *SearchBuilder {
	b.tags = tags
	return b
}

// Limit sets the maximum number of results across all kinds.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Offset skips the first n results of the merged sequence.
func (b *SearchBuilder) Offset(n int) *SearchBuilder {
	b.offset = n
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) ([]SearchResult, error) {
	q := query.New(b.phrase, b.spaceID).WithTags(b.tags)
	if b.kinds != nil {
		kinds := make([]content.Kind, len(b.kinds))
		for i, k := range b.kinds {
			kinds[i] = content.Kind(k)
		}
		q = q.WithKinds(kinds)
	}
	if b.limit > 0 {
		q = q.WithLimit(b.limit)
	}
	if b.offset > 0 {
		q = q.WithOffset(b.offset)
	}

	results, err := b.svc.Search(ctx, q, b.ownerID)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResults(results), nil
}

func fromResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			ID:         r.ID(),
			Kind:       string(r.Kind()),
			Title:      r.Title(),
			Subtitle:   r.Subtitle(),
			Preview:    r.Preview(),
			Tags:       r.Tags(),
			UpdatedAt:  r.UpdatedAt(),
			ParentID:   r.ParentID(),
			ParentName: r.ParentName(),
		}
	}
	return out
}
