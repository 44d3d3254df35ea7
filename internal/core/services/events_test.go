package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siria/internal/core/domain"
)

func seededEventService(t *testing.T) (*EventService, []domain.Event) {
	t.Helper()
	store := newMockEventStore()
	events := []domain.Event{
		testEvent("Curso", "A", "2025-04-01", "https://a.org/curso"),
		testEvent("Foro", "B", "2025-05-01", "https://b.org/foro"),
		testEvent("Congreso", "C", "2025-06-01", "https://c.org/congreso"),
	}
	events[0].Category = domain.CategoryVocationalTraining
	events[1].Category = domain.CategoryCooperation
	events[2].Category = domain.CategoryCooperation
	events[2].Country = "Colombia"
	require.NoError(t, store.Replace(context.Background(), events))
	return NewEventService(store), events
}

func TestEventService_List(t *testing.T) {
	svc, _ := seededEventService(t)
	ctx := context.Background()

	all, err := svc.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	coop, err := svc.List(ctx, domain.EventFilter{Category: domain.CategoryCooperation})
	require.NoError(t, err)
	assert.Len(t, coop, 2)

	co, err := svc.List(ctx, domain.EventFilter{Country: "Colombia"})
	require.NoError(t, err)
	require.Len(t, co, 1)
	assert.Equal(t, "Congreso", co[0].Name)

	window, err := svc.List(ctx, domain.EventFilter{From: "2025-04-15", To: "2025-05-31"})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "Foro", window[0].Name)

	limited, err := svc.List(ctx, domain.EventFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestEventService_List_InvalidFilter(t *testing.T) {
	svc, _ := seededEventService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter domain.EventFilter
	}{
		{"negative limit", domain.EventFilter{Limit: -1}},
		{"malformed from", domain.EventFilter{From: "01/04/2025"}},
		{"malformed to", domain.EventFilter{To: "2025-4-1"}},
		{"inverted range", domain.EventFilter{From: "2025-06-01", To: "2025-04-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(ctx, tt.filter)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestEventService_Get(t *testing.T) {
	svc, events := seededEventService(t)
	ctx := context.Background()

	got, err := svc.Get(ctx, events[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Foro", got.Name)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventService_Count(t *testing.T) {
	svc, _ := seededEventService(t)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
