package fetch

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// Error is returned once a fetch has exhausted its retries or failed permanently.
// It matches domain.ErrFetch with errors.Is.
type Error struct {
	URL      string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

// Unwrap exposes both the sentinel and the last underlying failure.
func (e *Error) Unwrap() []error {
	return []error{domain.ErrFetch, e.Err}
}

// StatusError represents a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Permanent reports whether retrying the request is pointless.
// Server errors, timeouts and rate limiting are retried; other client errors are not.
func (e *StatusError) Permanent() bool {
	switch {
	case e.StatusCode >= 500:
		return false
	case e.StatusCode == http.StatusTooManyRequests, e.StatusCode == http.StatusRequestTimeout:
		return false
	default:
		return e.StatusCode >= 400
	}
}

// Is lets 429 responses match domain.ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// IsNotFound checks if the error indicates the page does not exist.
func IsNotFound(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusNotFound
	}
	return false
}
