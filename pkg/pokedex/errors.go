package pokedex

import (
	"context"
	"errors"
	"fmt"
)

// NotFoundError means no source recognized the query. The UI renders a
// "not found" state for it; it is never retried automatically.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pokemon %q not found in any source", e.Query)
}

// IsNotFound returns true if err (or any wrapped error) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NoEvolutionDataError means the species exists but declares no evolution
// chain. Surfaced as an empty-chain display, not a failure.
type NoEvolutionDataError struct {
	Name string
}

func (e *NoEvolutionDataError) Error() string {
	return fmt.Sprintf("no evolution data for %q", e.Name)
}

// IsNoEvolutionData returns true if err is a NoEvolutionDataError.
func IsNoEvolutionData(err error) bool {
	var ne *NoEvolutionDataError
	return errors.As(err, &ne)
}

// HTTPError represents a non-2xx HTTP response from an upstream source.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with
// the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsCancelled reports whether err stems from a superseded or torn-down
// operation. Callers swallow these silently.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
