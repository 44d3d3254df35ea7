package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
)

// Ensure EventService implements the interface.
var _ driving.EventService = (*EventService)(nil)

// EventService provides read access to stored events.
type EventService struct {
	store driven.EventStore
}

// NewEventService creates a new event service.
func NewEventService(store driven.EventStore) *EventService {
	return &EventService{store: store}
}

// List returns stored events matching filter.
func (s *EventService) List(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	if filter.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", domain.ErrInvalidInput)
	}
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrInvalidInput, d)
		}
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return nil, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidInput, filter.From, filter.To)
	}
	return s.store.List(ctx, filter)
}

// Get returns one stored event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty event id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Count returns the number of stored events.
func (s *EventService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
