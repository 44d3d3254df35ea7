package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// mockCollector is a mock implementation of driving.Collector.
type mockCollector struct {
	events      []domain.Event
	err         error
	lastOrg     string
	concurrency int
}

func (m *mockCollector) RunAll(_ context.Context, maxConcurrency int) []domain.Event {
	m.concurrency = maxConcurrency
	return m.events
}

func (m *mockCollector) RunOne(_ context.Context, organization string) ([]domain.Event, error) {
	m.lastOrg = organization
	return m.events, m.err
}

func (m *mockCollector) Organizations() []string { return []string{"Fundación ONCE"} }

// mockClassifier stamps a fixed category.
type mockClassifier struct{ calls int }

func (m *mockClassifier) Classify(_ context.Context, _ *domain.Event) string {
	return domain.CategoryCooperation
}

func (m *mockClassifier) ClassifyWithRules(_ *domain.Event) string {
	return domain.CategoryCooperation
}

func (m *mockClassifier) ClassifyBatch(_ context.Context, events []domain.Event) []domain.Event {
	m.calls++
	for i := range events {
		events[i].Category = domain.CategoryCooperation
	}
	return events
}

// mockDeduplicator drops nothing and counts calls.
type mockDeduplicator struct{ calls int }

func (m *mockDeduplicator) Deduplicate(events []domain.Event, _ bool) []domain.Event {
	m.calls++
	return events
}

func (m *mockDeduplicator) FindDuplicates(_ []domain.Event) [][]int { return nil }

func (m *mockDeduplicator) Similarity(_, _ *domain.Event) float64 { return 0 }

func (m *mockDeduplicator) MergeDuplicateInfo(_ []domain.Event) (domain.Event, bool) {
	return domain.Event{}, false
}

// mockUpdateService is a mock implementation of driving.UpdateService.
type mockUpdateService struct {
	report  *domain.RunReport
	runs    []domain.RunReport
	err     error
	fullRun int
	lastOrg string
}

func (m *mockUpdateService) RunFullUpdate(_ context.Context) (*domain.RunReport, error) {
	m.fullRun++
	return m.report, m.err
}

func (m *mockUpdateService) RunOrganization(_ context.Context, organization string) (*domain.RunReport, error) {
	m.lastOrg = organization
	return m.report, m.err
}

func (m *mockUpdateService) RecentRuns(_ context.Context, _ int) ([]domain.RunReport, error) {
	return m.runs, m.err
}

// mockEventService is a mock implementation of driving.EventService.
type mockEventService struct {
	events     []domain.Event
	err        error
	lastFilter domain.EventFilter
}

func (m *mockEventService) List(_ context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	m.lastFilter = filter
	return m.events, m.err
}

func (m *mockEventService) Get(_ context.Context, _ string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (m *mockEventService) Count(_ context.Context) (int, error) { return len(m.events), nil }

// mockSourceService is a mock implementation of driving.SourceService.
type mockSourceService struct {
	sources []domain.SourceConfig
}

func (m *mockSourceService) List(_ context.Context) ([]domain.SourceConfig, error) {
	return m.sources, nil
}

func (m *mockSourceService) Get(_ context.Context, _ string) (*domain.SourceConfig, error) {
	return nil, domain.ErrUnknownOrganization
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	provider    domain.AIProvider
	model       string
	apiKey      string
	validateErr error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(s *domain.AppSettings) error {
	m.settings = *s
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.provider, m.model, m.apiKey = provider, model, apiKey
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.validateErr }

func (m *mockSettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	return domain.DefaultSchedulerConfig()
}

// mockScheduler blocks until its context is cancelled.
type mockScheduler struct {
	mu      sync.Mutex
	started bool
	stopped bool
}

func (m *mockScheduler) Start(ctx context.Context) error {
	m.mu.Lock()
	m.started = true
	m.mu.Unlock()
	<-ctx.Done()
	return nil
}

func (m *mockScheduler) Stop() error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
	return nil
}

type testServices struct {
	collector    *mockCollector
	classifier   *mockClassifier
	deduplicator *mockDeduplicator
	update       *mockUpdateService
	events       *mockEventService
	sources      *mockSourceService
	settings     *mockSettingsService
	scheduler    *mockScheduler
}

func sampleEvents() []domain.Event {
	return []domain.Event{
		{
			ID:           "e1",
			Name:         "Feria de empleo inclusivo",
			Organization: "Fundación ONCE",
			Date:         "2026-11-20",
			Link:         "https://www.fundaciononce.es/es/eventos/feria",
			Country:      "España",
			Category:     domain.CategoryLabourInclusion,
		},
		{
			ID:           "e2",
			Name:         "Jornada de acogida",
			Organization: "CEAR",
			Date:         "2026-12-02",
			Link:         "https://www.cear.es/eventos/jornada",
			Country:      "España",
			Category:     domain.CategoryMigrantSupport,
		},
	}
}

// setupTestServices installs mocks for every service and returns a cleanup func.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		collector:    &mockCollector{events: sampleEvents()},
		classifier:   &mockClassifier{},
		deduplicator: &mockDeduplicator{},
		update: &mockUpdateService{report: &domain.RunReport{
			ID:           "run-1",
			StartedAt:    time.Date(2026, 10, 12, 3, 0, 0, 0, time.UTC),
			EndedAt:      time.Date(2026, 10, 12, 3, 1, 0, 0, time.UTC),
			EventsStored: 2,
			Status:       domain.RunStatusSuccess,
		}},
		events: &mockEventService{events: sampleEvents()},
		sources: &mockSourceService{sources: []domain.SourceConfig{
			{Kind: domain.SourceKindONCE, OrganizationName: "Fundación ONCE", BaseURL: "https://www.fundaciononce.es"},
			{OrganizationName: "CEAR", BaseURL: "https://www.cear.es", Disabled: true},
		}},
		settings:  &mockSettingsService{settings: domain.DefaultAppSettings()},
		scheduler: &mockScheduler{},
	}

	SetServices(&Services{
		Collector:    ts.collector,
		Classifier:   ts.classifier,
		Deduplicator: ts.deduplicator,
		Update:       ts.update,
		Events:       ts.events,
		Sources:      ts.sources,
		Settings:     ts.settings,
		Scheduler:    ts.scheduler,
	})

	return ts, func() { SetServices(&Services{}) }
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setContext gives every command in the tree ctx. Cobra keeps a
// subcommand's context across executions otherwise.
func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		setContext(c, ctx)
	}
}

// execute runs the root command with args and returns stdout and stderr combined.
func execute(args ...string) (string, error) {
	return executeContext(context.Background(), args...)
}

func executeContext(ctx context.Context, args ...string) (string, error) {
	resetFlags(rootCmd)
	setContext(rootCmd, ctx)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
