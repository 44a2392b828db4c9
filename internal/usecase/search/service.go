package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/later-app/laterd/internal/domain"
	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
	"github.com/later-app/laterd/internal/metrics"
)

// DefaultTimeout bounds one whole fan-out/fan-in aggregation.
const DefaultTimeout = 10 * time.Second

// Service aggregates search across the per-kind adapters: validate,
// fan out concurrently, normalize (in the adapters), merge, sort by
// recency, window. Every call re-queries the backend; debouncing at
// the controller layer bounds call frequency, so there is no cache.
type Service struct {
	adapters map[content.Kind]Adapter
	timeout  time.Duration
}

// New creates a search service over the given adapters.
func New(adapters ...Adapter) *Service {
	m := make(map[content.Kind]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Kind()] = a
	}
	return &Service{adapters: m, timeout: DefaultTimeout}
}

// WithTimeout overrides the per-aggregation timeout.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Search runs one aggregation. Validation failures surface before any
// backend call; an empty phrase or an explicit empty kind set
// short-circuits to an empty result with zero backend calls.
//
// Aggregation is fail-fast: if any kind's sub-query fails the whole
// search fails with the failing kind identified. Partial results on
// partial failure would be a product-level change, not a fix here.
func (s *Service) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	kinds := q.ActiveKinds()
	if q.Phrase() == "" || len(kinds) == 0 {
		metrics.AggregationsTotal.WithLabelValues("short_circuit").Inc()
		return []result.Result{}, nil
	}
	for _, k := range kinds {
		if _, ok := s.adapters[k]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, k)
		}
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fetch := q.FetchWindow()
	perKind := make([][]result.Result, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		i, k := i, k
		adapter := s.adapters[k]
		g.Go(func() error {
			metrics.BackendQueriesTotal.WithLabelValues(string(k)).Inc()
			rows, err := adapter.Search(gctx, fetch, ownerID)
			if err != nil {
				return domain.NewQueryFailed(k, err)
			}
			perKind[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		metrics.AggregationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("aggregate search: %w", err)
	}

	// Merge in fixed kind order so the stable sort below breaks
	// timestamp ties deterministically, independent of which backend
	// call finished first.
	var merged []result.Result
	for _, rows := range perKind {
		merged = append(merged, rows...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].UpdatedAt().After(merged[j].UpdatedAt())
	})

	metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	metrics.AggregationsTotal.WithLabelValues("ok").Inc()
	return window(merged, q.Offset(), q.Limit()), nil
}

// validate gates aggregation with synchronous checks before any backend call.
func validate(q query.Query) error {
	if strings.TrimSpace(q.SpaceID()) == "" {
		return domain.ErrScopeRequired
	}
	if n := utf8.RuneCountInString(q.Phrase()); n > query.MaxPhraseLength {
		return fmt.Errorf("%w: %d runes (max %d)", domain.ErrQueryTooLong, n, query.MaxPhraseLength)
	}
	return nil
}

// window applies the offset/limit pagination over the merged sequence.
// The limit bounds the final cross-kind list, not any single kind.
func window(merged []result.Result, offset, limit int) []result.Result {
	if offset >= len(merged) {
		return []result.Result{}
	}
	end := offset + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[offset:end]
}
