package domain

import (
	"errors"
	"fmt"

	"github.com/later-app/laterd/internal/domain/content"
)

var (
	// ErrScopeRequired signals a search query without a space scope.
	ErrScopeRequired = errors.New("space scope required")
	// ErrQueryTooLong signals a search phrase over the length limit.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidKind signals an unknown content kind.
	ErrInvalidKind = errors.New("invalid content kind")
	// ErrControllerClosed signals input sent to a torn-down live search controller.
	ErrControllerClosed = errors.New("controller closed")
)

// QueryFailedError wraps a backend failure with the content kind whose
// sub-query failed. Aggregation is fail-fast: the first failing kind
// aborts the whole search.
type QueryFailedError struct {
	Kind content.Kind
	Err  error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Kind, e.Err)
}

func (e *QueryFailedError) Unwrap() error { return e.Err }

// NewQueryFailed creates a query failure for the given kind.
func NewQueryFailed(kind content.Kind, err error) error {
	return &QueryFailedError{Kind: kind, Err: err}
}
