package driven

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// SourceAdapter fetches event announcements from one organisation and
// normalises them into canonical events.
//
// Implementations own their own HTTP session and share no mutable state
// with other adapters, so several may run concurrently.
type SourceAdapter interface {
	// Organization returns the organisation name the adapter is registered under.
	Organization() string

	// FetchAndNormalize returns every valid event found at the source.
	// Invalid records are dropped silently. A source with nothing valid
	// returns an empty slice and no error. A fetch that exhausts its retries
	// returns an error wrapping domain.ErrFetch.
	FetchAndNormalize(ctx context.Context) ([]domain.Event, error)
}

// Fetcher retrieves remote content with retries and a per-call timeout.
type Fetcher interface {
	// Fetch returns the response body for url.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// FetchJSON decodes the JSON response body for url into out.
	FetchJSON(ctx context.Context, url string, out any) error
}
