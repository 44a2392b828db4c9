package search

import (
	"context"

	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
)

// Adapter translates a search query into one backend call for a single
// content kind and returns normalized results, newest first. Child-kind
// adapters order by the parent container's updatedAt.
type Adapter interface {
	Kind() content.Kind
	Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error)
}
