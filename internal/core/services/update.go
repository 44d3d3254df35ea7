package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
	"github.com/custodia-labs/siria/internal/logger"
)

// Ensure UpdateService implements the interface.
var _ driving.UpdateService = (*UpdateService)(nil)

// Pipeline stage names reported to the metrics recorder.
const (
	StageCollected    = "collected"
	StageClassified   = "classified"
	StageDeduplicated = "deduplicated"
	StageStored       = "stored"
)

// daysPerMonth approximates a month when sizing the stored date window.
const daysPerMonth = 30

// UpdateService coordinates collection, classification, deduplication and
// storage.
type UpdateService struct {
	collector    driving.Collector
	classifier   driving.Classifier
	deduplicator driving.Deduplicator
	events       driven.EventStore
	runs         driven.RunStore
	metrics      driven.MetricsRecorder
	settings     domain.PipelineSettings
	now          func() time.Time
}

// UpdateOption configures an UpdateService.
type UpdateOption func(*UpdateService)

// WithRunStore persists run reports.
func WithRunStore(runs driven.RunStore) UpdateOption {
	return func(s *UpdateService) { s.runs = runs }
}

// WithUpdateMetrics records stage counts and run durations.
func WithUpdateMetrics(m driven.MetricsRecorder) UpdateOption {
	return func(s *UpdateService) { s.metrics = m }
}

// WithPipelineSettings overrides the default pipeline settings.
func WithPipelineSettings(p domain.PipelineSettings) UpdateOption {
	return func(s *UpdateService) { s.settings = p }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) UpdateOption {
	return func(s *UpdateService) { s.now = now }
}

// NewUpdateService creates a pipeline coordinator.
func NewUpdateService(
	collector driving.Collector,
	classifier driving.Classifier,
	deduplicator driving.Deduplicator,
	events driven.EventStore,
	opts ...UpdateOption,
) *UpdateService {
	s := &UpdateService{
		collector:    collector,
		classifier:   classifier,
		deduplicator: deduplicator,
		events:       events,
		settings:     domain.DefaultPipelineSettings(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunFullUpdate collects from every source and replaces the stored events.
func (s *UpdateService) RunFullUpdate(ctx context.Context) (*domain.RunReport, error) {
	report := s.newReport("")
	logger.Section("Weekly update")

	events := s.collector.RunAll(ctx, s.settings.MaxConcurrency)
	return s.process(ctx, report, events, s.events.Replace)
}

// RunOrganization collects from one source and appends to the stored events.
func (s *UpdateService) RunOrganization(ctx context.Context, organization string) (*domain.RunReport, error) {
	if !slices.Contains(s.collector.Organizations(), organization) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOrganization, organization)
	}

	report := s.newReport(organization)
	logger.Section("Update " + organization)

	events, err := s.collector.RunOne(ctx, organization)
	if err != nil {
		return s.fail(ctx, report, fmt.Errorf("collect %s: %w", organization, err))
	}
	return s.process(ctx, report, events, s.events.Append)
}

// RecentRuns returns the latest run reports, most recent first.
func (s *UpdateService) RecentRuns(ctx context.Context, limit int) ([]domain.RunReport, error) {
	if s.runs == nil {
		return []domain.RunReport{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

func (s *UpdateService) newReport(organization string) *domain.RunReport {
	return &domain.RunReport{
		ID:           uuid.New().String(),
		Organization: organization,
		StartedAt:    s.now(),
	}
}

// process runs the stages after collection and writes with store.
func (s *UpdateService) process(
	ctx context.Context,
	report *domain.RunReport,
	events []domain.Event,
	store func(context.Context, []domain.Event) error,
) (*domain.RunReport, error) {
	report.EventsScraped = len(events)
	s.stage(StageCollected, len(events))
	logger.Info("Scraped %d events", len(events))

	if len(events) == 0 {
		logger.Warn("No events scraped, skipping storage")
		report.Status = domain.RunStatusEmpty
		return s.finish(ctx, report), nil
	}

	events = s.classifier.ClassifyBatch(ctx, events)
	report.EventsClassified = len(events)
	s.stage(StageClassified, len(events))

	events = s.deduplicator.Deduplicate(events, s.settings.KeepFirst)
	report.EventsDeduplicated = len(events)
	s.stage(StageDeduplicated, len(events))

	events = FilterByDateRange(events, s.now(), s.settings.MonthsAhead)
	logger.Info("After date filtering: %d events", len(events))

	if err := store(ctx, events); err != nil {
		return s.fail(ctx, report, fmt.Errorf("store events: %w", err))
	}
	report.EventsStored = len(events)
	s.stage(StageStored, len(events))

	report.Status = domain.RunStatusSuccess
	logger.Info("Update completed: %d events stored", report.EventsStored)
	return s.finish(ctx, report), nil
}

func (s *UpdateService) fail(ctx context.Context, report *domain.RunReport, err error) (*domain.RunReport, error) {
	logger.WithError(err).Error("update failed")
	report.Status = domain.RunStatusFailed
	report.Errors = append(report.Errors, err.Error())
	return s.finish(ctx, report), err
}

// finish stamps the end time and saves the report. A report that cannot be
// saved is logged; it never changes the run outcome.
func (s *UpdateService) finish(ctx context.Context, report *domain.RunReport) *domain.RunReport {
	report.EndedAt = s.now()
	if s.metrics != nil {
		s.metrics.PipelineRun(string(report.Status), report.Duration())
	}
	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, report); err != nil {
			logger.Warn("Failed to save run report %s: %v", report.ID, err)
		}
	}
	return report
}

func (s *UpdateService) stage(name string, n int) {
	if s.metrics != nil {
		s.metrics.PipelineStage(name, n)
	}
}

// FilterByDateRange keeps events dated from today up to monthsAhead months
// later, counting a month as 30 days. Both ends are inclusive. Events with
// an empty or malformed date are dropped. A non-positive monthsAhead selects
// domain.DefaultMonthsAhead.
func FilterByDateRange(events []domain.Event, now time.Time, monthsAhead int) []domain.Event {
	if monthsAhead <= 0 {
		monthsAhead = domain.DefaultMonthsAhead
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, daysPerMonth*monthsAhead)

	out := make([]domain.Event, 0, len(events))
	for i := range events {
		d, ok := events[i].ParsedDate()
		if !ok {
			if events[i].Date != "" {
				logger.Debug("Dropping %q: unparseable date %q", events[i].Name, events[i].Date)
			}
			continue
		}
		if d.Before(today) || d.After(end) {
			continue
		}
		out = append(out, events[i])
	}
	return out
}
