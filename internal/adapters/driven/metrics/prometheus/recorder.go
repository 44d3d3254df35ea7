// Package prometheus records pipeline metrics with the Prometheus client.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/siria/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

const namespace = "siria"

// Adapter run outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder exposes pipeline measurements as Prometheus metrics.
type Recorder struct {
	registry *prometheus.Registry

	adapterRuns     *prometheus.CounterVec
	adapterEvents   *prometheus.CounterVec
	adapterDuration *prometheus.HistogramVec
	runDuration     *prometheus.HistogramVec
	stageEvents     *prometheus.GaugeVec
	lastRun         prometheus.Gauge
}

// NewRecorder creates a recorder registered on its own registry.
func NewRecorder() *Recorder {
	return NewRecorderWithRegistry(prometheus.NewRegistry())
}

// NewRecorderWithRegistry registers the metrics on reg.
// It panics if the metrics are already registered there.
func NewRecorderWithRegistry(reg *prometheus.Registry) *Recorder {
	r := &Recorder{registry: reg}

	r.adapterRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "adapter_runs_total",
		Help:      "Source adapter executions by outcome",
	}, []string{"organization", "outcome"})
	r.adapterEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "adapter_events_total",
		Help:      "Valid events produced by each source adapter",
	}, []string{"organization"})
	r.adapterDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "adapter_duration_seconds",
		Help:      "Time spent fetching and normalising one source",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
	}, []string{"organization"})
	r.runDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_run_duration_seconds",
		Help:      "Duration of full pipeline runs by status",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"status"})
	r.stageEvents = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pipeline_events",
		Help:      "Events leaving each pipeline stage in the last run",
	}, []string{"stage"})
	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pipeline_last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed pipeline run",
	})

	reg.MustRegister(
		r.adapterRuns, r.adapterEvents, r.adapterDuration,
		r.runDuration, r.stageEvents, r.lastRun,
	)
	return r
}

// AdapterRun records one adapter execution.
func (r *Recorder) AdapterRun(organization string, events int, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	r.adapterRuns.WithLabelValues(organization, outcome).Inc()
	r.adapterEvents.WithLabelValues(organization).Add(float64(events))
	r.adapterDuration.WithLabelValues(organization).Observe(elapsed.Seconds())
}

// PipelineStage records the event count leaving stage.
func (r *Recorder) PipelineStage(stage string, events int) {
	r.stageEvents.WithLabelValues(stage).Set(float64(events))
}

// PipelineRun records a completed run.
func (r *Recorder) PipelineRun(status string, elapsed time.Duration) {
	r.runDuration.WithLabelValues(status).Observe(elapsed.Seconds())
	r.lastRun.SetToCurrentTime()
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
