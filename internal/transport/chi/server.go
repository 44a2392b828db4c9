package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/later-app/laterd/internal/domain"
	"github.com/later-app/laterd/internal/domain/content"
	"github.com/later-app/laterd/internal/domain/search/query"
	"github.com/later-app/laterd/internal/domain/search/result"
	searchuc "github.com/later-app/laterd/internal/usecase/search"
)

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeUnauthorized     = "unauthorized"
	codeQueryFailed      = "query_failed"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON error body for every non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Pinger reports backend connectivity for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server exposes the search API over chi.
type Server struct {
	search        *searchuc.Service
	db            Pinger
	logger        *zap.Logger
	debounce      time.Duration
	defaultLimit  int
	maxLimit      int
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, db Pinger, logger *zap.Logger) *Server {
	s := &Server{
		search:       search,
		db:           db,
		logger:       logger,
		debounce:     300 * time.Millisecond,
		defaultLimit: query.DefaultLimit,
		maxLimit:     query.MaxLimit,
	}
	s.errorHandlers = []errorHandler{
		queryFailedHandler,
		sentinelHandler(domain.ErrScopeRequired, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidKind, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// WithDebounce sets the debounce window handed to live search sessions.
func (s *Server) WithDebounce(d time.Duration) *Server {
	if d > 0 {
		s.debounce = d
	}
	return s
}

// WithLimits sets the page size applied when a request omits a limit and
// the cap a requested limit is clamped to. The domain's own hard cap
// still applies on top.
func (s *Server) WithLimits(defaultLimit, maxLimit int) *Server {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/api/v1/search", s.Search)
	r.Get("/api/v1/search/live", s.LiveSearch)
}

// searchRequest is the POST /api/v1/search body. Kinds distinguishes
// absent (all kinds) from present-but-empty (no kinds) via the pointer.
type searchRequest struct {
	Phrase  string    `json:"phrase"`
	SpaceID string    `json:"space_id"`
	Kinds   *[]string `json:"kinds,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	Limit   *int      `json:"limit,omitempty"`
	Offset  *int      `json:"offset,omitempty"`
}

type searchResultItem struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	Preview    string    `json:"preview,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
	ParentID   string    `json:"parent_id,omitempty"`
	ParentName string    `json:"parent_name,omitempty"`
}

type searchResponse struct {
	Items  []searchResultItem `json:"items"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
	Total  int                `json:"total"`
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing user identity")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	q, err := s.queryFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), q, ownerID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Items:  resultsToItems(results),
		Limit:  q.Limit(),
		Offset: q.Offset(),
		Total:  len(results),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, map[string]string{"status": status})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) queryFromRequest(req searchRequest) (query.Query, error) {
	q := query.New(req.Phrase, req.SpaceID).WithTags(req.Tags).WithLimit(s.defaultLimit)
	if req.Kinds != nil {
		kinds, err := kindsFromStrings(*req.Kinds)
		if err != nil {
			return query.Query{}, err
		}
		q = q.WithKinds(kinds)
	}
	if req.Limit != nil {
		limit := *req.Limit
		if limit > s.maxLimit {
			limit = s.maxLimit
		}
		q = q.WithLimit(limit)
	}
	if req.Offset != nil {
		q = q.WithOffset(*req.Offset)
	}
	return q, nil
}

func kindsFromStrings(ss []string) ([]content.Kind, error) {
	kinds := make([]content.Kind, 0, len(ss))
	for _, s := range ss {
		k := content.Kind(s)
		if !k.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidKind, s)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func resultsToItems(results []result.Result) []searchResultItem {
	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}
	return items
}

func resultToItem(r *result.Result) searchResultItem {
	return searchResultItem{
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

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrScopeRequired,
		domain.ErrQueryTooLong,
		domain.ErrInvalidKind,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// queryFailedHandler handles backend sub-query failures, naming the failing kind.
func queryFailedHandler(w http.ResponseWriter, err error, msg string) bool {
	var qErr *domain.QueryFailedError
	if !errors.As(err, &qErr) {
		return false
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Code:    codeQueryFailed,
		Message: "search backend failed",
		Kind:    string(qErr.Kind),
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
