package driving

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// EventService provides read access to stored events.
type EventService interface {
	// List returns stored events matching filter.
	List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)

	// Get returns one stored event by ID.
	Get(ctx context.Context, id string) (*domain.Event, error)

	// Count returns the number of stored events.
	Count(ctx context.Context) (int, error)
}
