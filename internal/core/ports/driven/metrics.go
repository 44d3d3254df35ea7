package driven

import "time"

// MetricsRecorder receives pipeline measurements.
// This is an optional service - when nil, nothing is recorded.
type MetricsRecorder interface {
	// AdapterRun records one adapter execution and how many events it produced.
	AdapterRun(organization string, events int, err error, elapsed time.Duration)

	// PipelineStage records the event count leaving a pipeline stage.
	PipelineStage(stage string, events int)

	// PipelineRun records the duration and status of a full run.
	PipelineRun(status string, elapsed time.Duration)
}
