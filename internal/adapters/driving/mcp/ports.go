package mcp

import (
	"github.com/custodia-labs/siria/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Events reads stored events.
	Events driving.EventService

	// Sources lists configured organisations.
	Sources driving.SourceService

	// Updates exposes run history.
	Updates driving.UpdateService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Events == nil {
		return ErrMissingEventService
	}
	// Sources and Updates are optional
	return nil
}
