package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown adapter or catalogue format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// AI-assisted classification is disabled and rules are used instead.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Source Errors.

	// ErrFetch indicates a network fetch failed after exhausting its retries.
	// Callers may retry the whole operation later.
	ErrFetch = errors.New("fetch failed")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnknownOrganization indicates no source adapter is registered
	// under the requested organisation name.
	ErrUnknownOrganization = errors.New("unknown organization")

	// Pipeline Errors.

	// ErrInvalidLabel indicates a classifier answered with a label outside the taxonomy.
	ErrInvalidLabel = errors.New("invalid category label")

	// ErrNoEvents indicates a collection run produced no events at all.
	ErrNoEvents = errors.New("no events collected")
)
