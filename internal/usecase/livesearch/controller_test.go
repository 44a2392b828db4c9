package livesearch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/later-app/laterd/internal/domain"
	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
)

const testDebounce = 20 * time.Millisecond

type stubSearcher struct {
	mu      sync.Mutex
	calls   []query.Query
	results []result.Result
	err     error
	block   chan struct{} // when set, Search waits here before returning
}

func (s *stubSearcher) Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, q)
	block := s.block
	s.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubSearcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubSearcher) lastCall() query.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

func waitForStatus(t *testing.T, ch chan State, want Status) State {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			if !ok {
				t.Fatalf("subscription closed while waiting for %s", want)
			}
			if s.Status == want {
				return s
			}
		case <-deadline:
			t.Fatalf("timed out waiting for status %s", want)
		}
	}
}

func TestControllerDebouncesBurst(t *testing.T) {
	searcher := &stubSearcher{results: []result.Result{
		result.New("n1", content.KindNote, "groceries", "", "", nil, time.Now(), nil),
	}}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(testDebounce)
	defer c.Close()
	ch := c.Subscribe()

	// A typing burst inside the debounce window.
	for _, phrase := range []string{"g", "gr", "gro", "groc"} {
		if err := c.SetPhrase(phrase); err != nil {
			t.Fatalf("SetPhrase: %v", err)
		}
	}

	state := waitForStatus(t, ch, StatusReady)
	if len(state.Results) != 1 || state.Results[0].ID() != "n1" {
		t.Fatalf("unexpected results: %+v", state.Results)
	}
	if n := searcher.callCount(); n != 1 {
		t.Fatalf("expected a single aggregation for the burst, got %d", n)
	}
	if got := searcher.lastCall().Phrase(); got != "groc" {
		t.Fatalf("expected final phrase to win, got %q", got)
	}
}

func TestControllerFlipsToLoadingImmediately(t *testing.T) {
	searcher := &stubSearcher{}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(time.Hour)
	defer c.Close()

	if err := c.SetPhrase("g"); err != nil {
		t.Fatalf("SetPhrase: %v", err)
	}
	if got := c.Snapshot().Status; got != StatusLoading {
		t.Fatalf("expected loading before the debounce elapses, got %s", got)
	}
	if searcher.callCount() != 0 {
		t.Fatal("query must wait out the debounce window")
	}
}

func TestControllerDiscardsStaleResult(t *testing.T) {
	block := make(chan struct{})
	searcher := &stubSearcher{block: block, results: []result.Result{
		result.New("old", content.KindNote, "old", "", "", nil, time.Now(), nil),
	}}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(testDebounce)
	defer c.Close()
	ch := c.Subscribe()

	if err := c.SetPhrase("first"); err != nil {
		t.Fatalf("SetPhrase: %v", err)
	}
	// Wait until the first aggregation is in flight, then supersede it.
	deadline := time.After(2 * time.Second)
	for searcher.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("first aggregation never started")
		case <-time.After(time.Millisecond):
		}
	}
	if err := c.SetPhrase("second"); err != nil {
		t.Fatalf("SetPhrase: %v", err)
	}

	// Release the searcher: both queries finish, only the second may publish.
	searcher.mu.Lock()
	searcher.block = nil
	searcher.mu.Unlock()
	close(block)

	waitForStatus(t, ch, StatusReady)
	if got := searcher.lastCall().Phrase(); got != "second" {
		t.Fatalf("expected last query phrase %q, got %q", "second", got)
	}
	if c.Snapshot().Status != StatusReady {
		t.Fatalf("expected ready, got %s", c.Snapshot().Status)
	}
	if n := searcher.callCount(); n != 2 {
		t.Fatalf("expected both generations to query, got %d", n)
	}
}

func TestControllerPublishesFailure(t *testing.T) {
	searcher := &stubSearcher{err: errors.New("backend down")}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(testDebounce)
	defer c.Close()
	ch := c.Subscribe()

	if err := c.SetPhrase("tax"); err != nil {
		t.Fatalf("SetPhrase: %v", err)
	}
	state := waitForStatus(t, ch, StatusFailed)
	if state.Err == nil {
		t.Fatal("failed state must carry the error")
	}
}

func TestControllerFilterChangeRequeries(t *testing.T) {
	searcher := &stubSearcher{}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(testDebounce)
	defer c.Close()
	ch := c.Subscribe()

	if err := c.SetPhrase("tax"); err != nil {
		t.Fatalf("SetPhrase: %v", err)
	}
	waitForStatus(t, ch, StatusReady)

	if err := c.SetKinds([]content.Kind{content.KindTodoItem}); err != nil {
		t.Fatalf("SetKinds: %v", err)
	}
	waitForStatus(t, ch, StatusReady)

	q := searcher.lastCall()
	if q.Phrase() != "tax" {
		t.Fatalf("filter change must keep the phrase, got %q", q.Phrase())
	}
	if kinds := q.Kinds(); len(kinds) != 1 || kinds[0] != content.KindTodoItem {
		t.Fatalf("expected todo_item restriction, got %v", kinds)
	}

	if err := c.ResetFilters(); err != nil {
		t.Fatalf("ResetFilters: %v", err)
	}
	waitForStatus(t, ch, StatusReady)
	if kinds := searcher.lastCall().Kinds(); kinds != nil {
		t.Fatalf("reset must restore nil kinds, got %v", kinds)
	}
}

func TestControllerRejectsUnknownKind(t *testing.T) {
	searcher := &stubSearcher{}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(time.Hour)
	defer c.Close()

	err := c.SetKinds([]content.Kind{content.Kind("bookmark")})
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
	if got := c.Snapshot().Status; got != StatusIdle {
		t.Fatalf("rejected input must not touch state, got %s", got)
	}
}

func TestControllerHasActiveFilters(t *testing.T) {
	c := NewController(&stubSearcher{}, "owner-1", "space-1").WithDebounce(time.Hour)
	defer c.Close()

	if c.HasActiveFilters() {
		t.Fatal("fresh session must report no active filters")
	}
	if err := c.SetKinds([]content.Kind{content.KindNote}); err != nil {
		t.Fatalf("SetKinds: %v", err)
	}
	if !c.HasActiveFilters() {
		t.Fatal("kind restriction must count as an active filter")
	}
	if err := c.ResetFilters(); err != nil {
		t.Fatalf("ResetFilters: %v", err)
	}
	if c.HasActiveFilters() {
		t.Fatal("reset must clear active filters")
	}
	if err := c.SetTags([]string{"finance"}); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	if !c.HasActiveFilters() {
		t.Fatal("tag filter must count as an active filter")
	}
	if err := c.SetTags(nil); err != nil {
		t.Fatalf("SetTags: %v", err)
	}
	if err := c.SetKinds([]content.Kind{}); err != nil {
		t.Fatalf("SetKinds: %v", err)
	}
	if !c.HasActiveFilters() {
		t.Fatal("an empty kind set excludes everything and is active")
	}
}

func TestControllerClearAbandonsPendingQuery(t *testing.T) {
	searcher := &stubSearcher{}
	c := NewController(searcher, "owner-1", "space-1").WithDebounce(50 * time.Millisecond)
	defer c.Close()

	if err := c.SetPhrase("tax"); err != nil {
		t.Fatalf("SetPhrase: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := c.Snapshot().Status; got != StatusIdle {
		t.Fatalf("expected idle after clear, got %s", got)
	}

	time.Sleep(100 * time.Millisecond)
	if n := searcher.callCount(); n != 0 {
		t.Fatalf("cleared session must not query, got %d calls", n)
	}
	if got := c.Snapshot().Status; got != StatusIdle {
		t.Fatalf("expected idle to persist, got %s", got)
	}
}

func TestControllerClosedRejectsInput(t *testing.T) {
	searcher := &stubSearcher{}
	c := NewController(searcher, "owner-1", "space-1")
	ch := c.Subscribe()
	c.Close()
	c.Close() // idempotent

	if err := c.SetPhrase("tax"); !errors.Is(err, domain.ErrControllerClosed) {
		t.Fatalf("expected ErrControllerClosed, got %v", err)
	}
	if err := c.Clear(); !errors.Is(err, domain.ErrControllerClosed) {
		t.Fatalf("expected ErrControllerClosed, got %v", err)
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected subscription to be closed")
	}
}

func TestControllerSubscribeAfterClose(t *testing.T) {
	c := NewController(&stubSearcher{}, "owner-1", "space-1")
	c.Close()
	ch := c.Subscribe()
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel from Subscribe after Close")
	}
}
