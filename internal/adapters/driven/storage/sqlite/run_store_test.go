package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siria/internal/core/domain"
)

func TestRunStore_SaveAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runs := store.RunStore()
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	first := &domain.RunReport{
		ID:                 "run-1",
		StartedAt:          start,
		EndedAt:            start.Add(2 * time.Minute),
		EventsScraped:      40,
		EventsClassified:   40,
		EventsDeduplicated: 35,
		EventsStored:       30,
		Status:             domain.RunStatusSuccess,
	}
	second := &domain.RunReport{
		ID:           "run-2",
		Organization: "Fundación ONCE",
		StartedAt:    start.Add(time.Hour),
		EndedAt:      start.Add(time.Hour + time.Minute),
		Status:       domain.RunStatusFailed,
		Errors:       []string{"fetch failed: https://www.fundaciononce.es", "store events: disk full"},
	}
	require.NoError(t, runs.SaveRun(ctx, first))
	require.NoError(t, runs.SaveRun(ctx, second))

	got, err := runs.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, *second, got[0])
	assert.Equal(t, *first, got[1])
	assert.Nil(t, got[1].Errors)

	limited, err := runs.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "run-2", limited[0].ID)
}

func TestRunStore_SaveRunUpdates(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	runs := store.RunStore()

	report := &domain.RunReport{
		ID:        "run-1",
		StartedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:    domain.RunStatusEmpty,
	}
	require.NoError(t, runs.SaveRun(ctx, report))

	report.Status = domain.RunStatusSuccess
	report.EventsStored = 7
	require.NoError(t, runs.SaveRun(ctx, report))

	got, err := runs.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.RunStatusSuccess, got[0].Status)
	assert.Equal(t, 7, got[0].EventsStored)
	assert.True(t, got[0].EndedAt.IsZero())
}

func TestRunStore_SaveRun_Invalid(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	assert.ErrorIs(t, store.RunStore().SaveRun(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.RunStore().SaveRun(ctx, &domain.RunReport{}), domain.ErrInvalidInput)
}

func TestRunStore_ListRuns_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	got, err := store.RunStore().ListRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
