package domain

import "time"

// RunStatus is the outcome of a pipeline run.
type RunStatus string

// Run statuses.
const (
	// RunStatusSuccess means events were stored.
	RunStatusSuccess RunStatus = "success"

	// RunStatusEmpty means collection produced nothing and storage was skipped.
	RunStatusEmpty RunStatus = "empty"

	// RunStatusFailed means a stage after collection failed.
	RunStatusFailed RunStatus = "failed"
)

// RunReport summarises one pipeline run.
type RunReport struct {
	// ID is a unique identifier for the run.
	ID string `json:"id"`

	// Organization is set when the run targeted a single source.
	Organization string `json:"organization,omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// EndedAt is when the run finished.
	EndedAt time.Time `json:"ended_at"`

	// EventsScraped counts events returned by collection.
	EventsScraped int `json:"events_scraped"`

	// EventsClassified counts events passed through classification.
	EventsClassified int `json:"events_classified"`

	// EventsDeduplicated counts events left after deduplication.
	EventsDeduplicated int `json:"events_deduplicated"`

	// EventsStored counts events written after date filtering.
	EventsStored int `json:"events_stored"`

	// Status is the run outcome.
	Status RunStatus `json:"status"`

	// Errors holds non-fatal and fatal error messages.
	Errors []string `json:"errors,omitempty"`
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// EventFilter narrows event listings. Zero fields match everything.
type EventFilter struct {
	// Category matches exactly.
	Category string

	// Country matches exactly.
	Country string

	// Organization matches exactly.
	Organization string

	// From is an inclusive YYYY-MM-DD lower bound.
	From string

	// To is an inclusive YYYY-MM-DD upper bound.
	To string

	// Limit caps the result size. Zero means no limit.
	Limit int
}

// Matches reports whether e passes the filter.
func (f EventFilter) Matches(e *Event) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Country != "" && e.Country != f.Country {
		return false
	}
	if f.Organization != "" && e.Organization != f.Organization {
		return false
	}
	// YYYY-MM-DD compares correctly as a string.
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}
	return true
}
