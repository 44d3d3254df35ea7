package driven

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// EventStore persists pipeline output.
type EventStore interface {
	// Replace discards all stored events and writes events in their place.
	Replace(ctx context.Context, events []domain.Event) error

	// Append upserts events by ID, leaving other stored events untouched.
	Append(ctx context.Context, events []domain.Event) error

	// Get retrieves an event by ID.
	// Returns domain.ErrNotFound if the event does not exist.
	Get(ctx context.Context, id string) (*domain.Event, error)

	// List returns events matching filter, ordered by date then name.
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)

	// Clear removes all events.
	Clear(ctx context.Context) error
}

// RunStore persists pipeline run reports.
type RunStore interface {
	// SaveRun creates or updates a run report by ID.
	SaveRun(ctx context.Context, report *domain.RunReport) error

	// ListRuns returns recent runs, most recent first.
	// A limit of zero or less returns all runs.
	ListRuns(ctx context.Context, limit int) ([]domain.RunReport, error)
}
