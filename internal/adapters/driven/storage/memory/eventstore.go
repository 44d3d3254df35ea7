package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore is an in-memory implementation of driven.EventStore.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[string]domain.Event),
	}
}

// Replace discards stored events and writes events in their place.
func (s *EventStore) Replace(_ context.Context, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]domain.Event, len(events))
	s.put(events)
	return nil
}

// Append upserts events by ID.
func (s *EventStore) Append(_ context.Context, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(events)
	return nil
}

func (s *EventStore) put(events []domain.Event) {
	for i := range events {
		e := events[i]
		e.EnsureID()
		s.events[e.ID] = e
	}
}

// Get retrieves an event by ID.
func (s *EventStore) Get(_ context.Context, id string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// List returns events matching filter, ordered by date then name.
func (s *EventStore) List(_ context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []domain.Event{}
	for id := range s.events {
		e := s.events[id]
		if filter.Matches(&e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Count returns the number of stored events.
func (s *EventStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events), nil
}

// Clear removes all events.
func (s *EventStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]domain.Event)
	return nil
}
