package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driven"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
	"github.com/custodia-labs/siria/internal/logger"
)

// Ensure Collector implements the interface.
var _ driving.Collector = (*Collector)(nil)

// Collector runs a fixed registry of source adapters with bounded parallelism.
// One adapter failing never fails the run.
type Collector struct {
	adapters []driven.SourceAdapter
	byName   map[string]driven.SourceAdapter
	metrics  driven.MetricsRecorder
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectorMetrics records per-adapter outcomes.
func WithCollectorMetrics(m driven.MetricsRecorder) CollectorOption {
	return func(c *Collector) { c.metrics = m }
}

// NewCollector creates a collector over adapters. Registry order is kept;
// a later adapter with a duplicate organisation name shadows the earlier one
// for RunOne.
func NewCollector(adapters []driven.SourceAdapter, opts ...CollectorOption) *Collector {
	c := &Collector{
		adapters: adapters,
		byName:   make(map[string]driven.SourceAdapter, len(adapters)),
	}
	for _, a := range adapters {
		c.byName[a.Organization()] = a
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// adapterResult is the tagged outcome of one adapter run.
type adapterResult struct {
	organization string
	events       []domain.Event
	err          error
}

// RunAll runs every adapter with at most maxConcurrency in flight and returns
// the union of their events in completion order.
func (c *Collector) RunAll(ctx context.Context, maxConcurrency int) []domain.Event {
	if maxConcurrency <= 0 {
		maxConcurrency = domain.DefaultMaxConcurrency
	}
	logger.Section("Collection")
	logger.Info("Running %d sources (max %d concurrent)", len(c.adapters), maxConcurrency)

	results := make(chan adapterResult, len(c.adapters))

	var g errgroup.Group
	g.SetLimit(maxConcurrency)
	go func() {
		for _, a := range c.adapters {
			g.Go(func() error {
				results <- c.run(ctx, a)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	events := []domain.Event{}
	failed := 0
	for r := range results {
		if r.err != nil {
			failed++
			logger.WithError(r.err).WithField("organization", r.organization).Error("source adapter failed")
			continue
		}
		logger.Info("%s: %d events", r.organization, len(r.events))
		events = append(events, r.events...)
	}

	logger.Info("Collected %d events from %d sources (%d failed)", len(events), len(c.adapters), failed)
	return events
}

// RunOne runs the adapter registered under organization.
func (c *Collector) RunOne(ctx context.Context, organization string) ([]domain.Event, error) {
	a, ok := c.byName[organization]
	if !ok {
		logger.Warn("No source registered for organization %q", organization)
		return []domain.Event{}, nil
	}

	r := c.run(ctx, a)
	if r.err != nil {
		return nil, r.err
	}
	return r.events, nil
}

// Organizations lists registered organisation names in registry order.
func (c *Collector) Organizations() []string {
	names := make([]string, 0, len(c.adapters))
	for _, a := range c.adapters {
		names = append(names, a.Organization())
	}
	return names
}

// run executes one adapter, turning a panic into a failure result.
func (c *Collector) run(ctx context.Context, a driven.SourceAdapter) (r adapterResult) {
	r.organization = a.Organization()
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			r.events = nil
			r.err = fmt.Errorf("%s: panic: %v", r.organization, p)
		}
		if c.metrics != nil {
			c.metrics.AdapterRun(r.organization, len(r.events), r.err, time.Since(start))
		}
	}()

	r.events, r.err = a.FetchAndNormalize(ctx)
	if r.err != nil {
		r.events = nil
	}
	return r
}
