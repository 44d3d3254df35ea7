package mcp

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// mockEventService is a mock implementation of driving.EventService.
type mockEventService struct {
	events     []domain.Event
	event      *domain.Event
	err        error
	lastFilter domain.EventFilter
}

func (m *mockEventService) List(_ context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	m.lastFilter = filter
	return m.events, m.err
}

func (m *mockEventService) Get(_ context.Context, _ string) (*domain.Event, error) {
	return m.event, m.err
}

func (m *mockEventService) Count(_ context.Context) (int, error) {
	return len(m.events), m.err
}

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.SourceConfig
	err     error
}

func (m *mockSourceService) List(_ context.Context) ([]domain.SourceConfig, error) {
	return m.sources, m.err
}

func (m *mockSourceService) Get(_ context.Context, organization string) (*domain.SourceConfig, error) {
	for i := range m.sources {
		if m.sources[i].OrganizationName == organization {
			return &m.sources[i], nil
		}
	}
	return nil, domain.ErrUnknownOrganization
}

// mockUpdateService is a mock implementation of driving.UpdateService.
type mockUpdateService struct {
	runs      []domain.RunReport
	err       error
	lastLimit int
}

func (m *mockUpdateService) RunFullUpdate(_ context.Context) (*domain.RunReport, error) {
	return nil, m.err
}

func (m *mockUpdateService) RunOrganization(_ context.Context, _ string) (*domain.RunReport, error) {
	return nil, m.err
}

func (m *mockUpdateService) RecentRuns(_ context.Context, limit int) ([]domain.RunReport, error) {
	m.lastLimit = limit
	return m.runs, m.err
}
