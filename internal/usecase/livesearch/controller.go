package livesearch

import (
	"context"
	"sync"
	"time"

	"github.com/later-app/laterd/internal/domain"
	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
	"github.com/later-app/laterd/internal/metrics"
)

// DefaultDebounce is the pause after the last input change before a
// search fires.
const DefaultDebounce = 300 * time.Millisecond

// Status is the lifecycle phase of a live search session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// State is one published snapshot of a live search session. Results is
// only meaningful when Status is ready, Err when Status is failed.
type State struct {
	Status  Status
	Results []result.Result
	Err     error
}

// Searcher runs one search aggregation. Satisfied by usecase/search.Service.
type Searcher interface {
	Search(ctx context.Context, q query.Query, ownerID string) ([]result.Result, error)
}

// Controller drives one live search session: it debounces input
// changes, runs at most one aggregation per settled burst, and
// discards results that a newer input change has superseded.
//
// Every input change bumps a generation counter and flips the session
// to loading immediately; the query itself waits out the debounce
// window. A finished aggregation publishes its result only if its
// generation is still current, so subscribers never observe a newer
// state being overwritten by an older, slower query.
type Controller struct {
	searcher Searcher
	ownerID  string
	spaceID  string
	debounce time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	phrase  string
	filters Filters
	gen     uint64
	timer   *time.Timer
	state   State
	subs    map[chan State]struct{}
	closed  bool
}

// NewController creates an idle session scoped to one owner and space.
func NewController(searcher Searcher, ownerID, spaceID string) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		searcher: searcher,
		ownerID:  ownerID,
		spaceID:  spaceID,
		debounce: DefaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
		state:    State{Status: StatusIdle, Results: []result.Result{}},
		subs:     make(map[chan State]struct{}),
	}
}

// WithDebounce overrides the debounce window.
func (c *Controller) WithDebounce(d time.Duration) *Controller {
	if d > 0 {
		c.debounce = d
	}
	return c
}

// SetPhrase records a keystroke-level phrase change and restarts the
// debounce window.
func (c *Controller) SetPhrase(phrase string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrControllerClosed
	}
	c.phrase = phrase
	c.scheduleLocked()
	return nil
}

// SetKinds restricts the session to the given kinds and restarts the
// debounce window. Unknown kinds are rejected without touching state.
func (c *Controller) SetKinds(kinds []content.Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrControllerClosed
	}
	if err := c.filters.SetKinds(kinds); err != nil {
		return err
	}
	c.scheduleLocked()
	return nil
}

// SetTags sets the tag filter and restarts the debounce window.
func (c *Controller) SetTags(tags []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrControllerClosed
	}
	c.filters.SetTags(tags)
	c.scheduleLocked()
	return nil
}

// ResetFilters drops all filters and restarts the debounce window.
func (c *Controller) ResetFilters() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrControllerClosed
	}
	c.filters.Reset()
	c.scheduleLocked()
	return nil
}

// Clear resets the session to idle: phrase dropped, pending query
// abandoned, no aggregation fired.
func (c *Controller) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrControllerClosed
	}
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.phrase = ""
	c.publishLocked(State{Status: StatusIdle, Results: []result.Result{}})
	return nil
}

// HasActiveFilters reports whether a kind or tag filter currently
// narrows the session.
func (c *Controller) HasActiveFilters() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.HasActive()
}

// Snapshot returns the last published state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel receiving every published state. Sends
// are best-effort: a subscriber that falls behind misses intermediate
// states and catches up on the next publish.
func (c *Controller) Subscribe() chan State {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan State, 8)
	if c.closed {
		close(ch)
		return ch
	}
	c.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (c *Controller) Unsubscribe(ch chan State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.subs[ch]; ok {
		delete(c.subs, ch)
		close(ch)
	}
}

// Close ends the session. Pending and in-flight work is abandoned and
// all subscriber channels are closed. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.cancel()
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}

// scheduleLocked supersedes any pending or in-flight query, flips the
// session to loading, and arms the debounce timer. Caller holds c.mu.
func (c *Controller) scheduleLocked() {
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.publishLocked(State{Status: StatusLoading, Results: []result.Result{}})
	c.timer = time.AfterFunc(c.debounce, func() { c.run(gen) })
}

// run executes the aggregation for one generation once the debounce
// window has elapsed. The generation is checked both before querying,
// against timers that fired during teardown, and after, so a slow
// query can never overwrite the state of a newer one.
func (c *Controller) run(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	q := query.New(c.phrase, c.spaceID).
		WithKinds(c.filters.Kinds()).
		WithTags(c.filters.Tags())
	c.mu.Unlock()

	results, err := c.searcher.Search(c.ctx, q, c.ownerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen {
		metrics.StaleResultsTotal.Inc()
		return
	}
	if err != nil {
		c.publishLocked(State{Status: StatusFailed, Results: []result.Result{}, Err: err})
		return
	}
	c.publishLocked(State{Status: StatusReady, Results: results})
}

// publishLocked stores the state and fans it out to subscribers.
// Caller holds c.mu.
func (c *Controller) publishLocked(s State) {
	c.state = s
	for ch := range c.subs {
		select {
		case ch <- s:
		default:
		}
	}
}
