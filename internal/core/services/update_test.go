package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// --- Mock implementations for pipeline testing ---

// mockEventStore implements driven.EventStore for testing.
type mockEventStore struct {
	mu         sync.Mutex
	events     map[string]domain.Event
	replaced   int
	appended   int
	replaceErr error
	appendErr  error
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: make(map[string]domain.Event)}
}

func (m *mockEventStore) Replace(_ context.Context, events []domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced++
	m.events = make(map[string]domain.Event, len(events))
	for _, e := range events {
		m.events[e.ID] = e
	}
	return nil
}

func (m *mockEventStore) Append(_ context.Context, events []domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.appended++
	for _, e := range events {
		m.events[e.ID] = e
	}
	return nil
}

func (m *mockEventStore) Get(_ context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (m *mockEventStore) List(_ context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Event{}
	for _, e := range m.events {
		if filter.Matches(&e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *mockEventStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events), nil
}

func (m *mockEventStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = make(map[string]domain.Event)
	return nil
}

// mockRunStore implements driven.RunStore for testing.
type mockRunStore struct {
	mu      sync.Mutex
	runs    []domain.RunReport
	saveErr error
}

func (m *mockRunStore) SaveRun(_ context.Context, r *domain.RunReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs = append(m.runs, *r)
	return nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.RunReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.RunReport, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		out = append(out, m.runs[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ driven.EventStore = (*mockEventStore)(nil)
	_ driven.RunStore   = (*mockRunStore)(nil)
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type pipelineFixture struct {
	service *UpdateService
	store   *mockEventStore
	runs    *mockRunStore
	metrics *mockMetrics
}

func newPipelineFixture(adapters ...driven.SourceAdapter) *pipelineFixture {
	f := &pipelineFixture{
		store:   newMockEventStore(),
		runs:    &mockRunStore{},
		metrics: newMockMetrics(),
	}
	f.service = NewUpdateService(
		NewCollector(adapters),
		NewClassifier(nil),
		NewDeduplicator(0),
		f.store,
		WithRunStore(f.runs),
		WithUpdateMetrics(f.metrics),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

// --- Tests ---

func TestUpdateService_RunFullUpdate(t *testing.T) {
	captureLogs(t)

	upcoming := testEvent("Curso de formación profesional", "A", "2025-03-10", "https://a.org/curso")
	past := testEvent("Taller de empleo", "A", "2025-02-01", "https://a.org/taller")
	today := testEvent("Jornada de acogida a refugiados", "B", "2025-03-01", "https://b.org/jornada")
	dup := upcoming
	dup.Organization = "B"

	f := newPipelineFixture(
		&mockAdapter{org: "A", events: []domain.Event{upcoming, past}},
		&mockAdapter{org: "B", events: []domain.Event{today, dup}},
	)

	report, err := f.service.RunFullUpdate(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, domain.RunStatusSuccess, report.Status)
	assert.Empty(t, report.Organization)
	assert.Equal(t, 4, report.EventsScraped)
	assert.Equal(t, 4, report.EventsClassified)
	assert.Equal(t, 3, report.EventsDeduplicated)
	assert.Equal(t, 2, report.EventsStored)
	assert.Equal(t, fixedNow, report.StartedAt)
	assert.Equal(t, fixedNow, report.EndedAt)

	assert.Equal(t, 1, f.store.replaced)
	stored, err := f.store.Get(context.Background(), upcoming.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryVocationalTraining, stored.Category)

	stored, err = f.store.Get(context.Background(), today.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryMigrantSupport, stored.Category)

	_, err = f.store.Get(context.Background(), past.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.Len(t, f.runs.runs, 1)
	assert.Equal(t, report.ID, f.runs.runs[0].ID)

	assert.Equal(t, 4, f.metrics.stages[StageCollected])
	assert.Equal(t, 3, f.metrics.stages[StageDeduplicated])
	assert.Equal(t, 2, f.metrics.stages[StageStored])
	assert.Equal(t, []string{"success"}, f.metrics.runs)
}

func TestUpdateService_RunFullUpdate_ReplacesPreviousEvents(t *testing.T) {
	captureLogs(t)

	f := newPipelineFixture(&mockAdapter{org: "A", events: []domain.Event{
		testEvent("Curso", "A", "2025-04-01", "https://a.org/curso"),
	}})
	stale := testEvent("Viejo", "Z", "2025-03-05", "https://z.org/viejo")
	require.NoError(t, f.store.Append(context.Background(), []domain.Event{stale}))

	_, err := f.service.RunFullUpdate(context.Background())
	require.NoError(t, err)

	n, _ := f.store.Count(context.Background())
	assert.Equal(t, 1, n)
}

func TestUpdateService_RunFullUpdate_Empty(t *testing.T) {
	logs := captureLogs(t)

	f := newPipelineFixture(&mockAdapter{org: "A"}, &mockAdapter{org: "B", err: domain.ErrFetch})
	require.NoError(t, f.store.Append(context.Background(), []domain.Event{
		testEvent("Previo", "A", "2025-03-05", "https://a.org/previo"),
	}))

	report, err := f.service.RunFullUpdate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusEmpty, report.Status)
	assert.Zero(t, report.EventsScraped)
	assert.Zero(t, report.EventsStored)
	assert.Zero(t, f.store.replaced)

	n, _ := f.store.Count(context.Background())
	assert.Equal(t, 1, n, "previous events survive an empty run")

	require.Len(t, f.runs.runs, 1)
	assert.Equal(t, domain.RunStatusEmpty, f.runs.runs[0].Status)
	assert.Contains(t, logs.String(), "No events scraped")
}

func TestUpdateService_RunFullUpdate_StoreFailure(t *testing.T) {
	captureLogs(t)

	f := newPipelineFixture(&mockAdapter{org: "A", events: []domain.Event{
		testEvent("Curso", "A", "2025-04-01", "https://a.org/curso"),
	}})
	f.store.replaceErr = errors.New("disk full")

	report, err := f.service.RunFullUpdate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, domain.RunStatusFailed, report.Status)
	assert.Zero(t, report.EventsStored)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "store events")

	require.Len(t, f.runs.runs, 1)
	assert.Equal(t, domain.RunStatusFailed, f.runs.runs[0].Status)
}

func TestUpdateService_RunFullUpdate_RunStoreFailureIsNotFatal(t *testing.T) {
	logs := captureLogs(t)

	f := newPipelineFixture(&mockAdapter{org: "A", events: []domain.Event{
		testEvent("Curso", "A", "2025-04-01", "https://a.org/curso"),
	}})
	f.runs.saveErr = errors.New("locked")

	report, err := f.service.RunFullUpdate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusSuccess, report.Status)
	assert.Contains(t, logs.String(), "Failed to save run report")
}

func TestUpdateService_RunOrganization(t *testing.T) {
	captureLogs(t)

	f := newPipelineFixture(
		&mockAdapter{org: "A", events: []domain.Event{
			testEvent("Curso", "A", "2025-04-01", "https://a.org/curso"),
		}},
		&mockAdapter{org: "B", err: domain.ErrFetch},
	)
	kept := testEvent("Otro", "Z", "2025-03-05", "https://z.org/otro")
	require.NoError(t, f.store.Append(context.Background(), []domain.Event{kept}))

	t.Run("appends", func(t *testing.T) {
		report, err := f.service.RunOrganization(context.Background(), "A")
		require.NoError(t, err)
		assert.Equal(t, "A", report.Organization)
		assert.Equal(t, domain.RunStatusSuccess, report.Status)
		assert.Equal(t, 1, report.EventsStored)

		n, _ := f.store.Count(context.Background())
		assert.Equal(t, 2, n)
		assert.Zero(t, f.store.replaced)
	})

	t.Run("adapter failure", func(t *testing.T) {
		report, err := f.service.RunOrganization(context.Background(), "B")
		require.ErrorIs(t, err, domain.ErrFetch)
		assert.Equal(t, domain.RunStatusFailed, report.Status)
	})

	t.Run("unknown organization", func(t *testing.T) {
		report, err := f.service.RunOrganization(context.Background(), "Nobody")
		require.ErrorIs(t, err, domain.ErrUnknownOrganization)
		assert.Nil(t, report)
	})
}

func TestUpdateService_RecentRuns(t *testing.T) {
	captureLogs(t)

	f := newPipelineFixture(&mockAdapter{org: "A"})
	_, _ = f.service.RunFullUpdate(context.Background())
	_, _ = f.service.RunFullUpdate(context.Background())

	runs, err := f.service.RecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	noStore := NewUpdateService(NewCollector(nil), NewClassifier(nil), NewDeduplicator(0), newMockEventStore())
	runs, err = noStore.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFilterByDateRange(t *testing.T) {
	now := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)

	events := []domain.Event{
		{Name: "today", Date: "2025-03-01"},
		{Name: "yesterday", Date: "2025-02-28"},
		{Name: "last day", Date: "2025-03-31"},
		{Name: "after window", Date: "2025-04-01"},
		{Name: "no date", Date: ""},
		{Name: "bad date", Date: "2025-13-01"},
	}

	out := FilterByDateRange(events, now, 1)

	names := make([]string, 0, len(out))
	for _, e := range out {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"today", "last day"}, names)
}

func TestFilterByDateRange_DefaultWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	events := []domain.Event{
		{Name: "edge", Date: "2026-02-24"},
		{Name: "beyond", Date: "2026-02-25"},
	}

	out := FilterByDateRange(events, now, 0)
	require.Len(t, out, 1)
	assert.Equal(t, "edge", out[0].Name)
}
