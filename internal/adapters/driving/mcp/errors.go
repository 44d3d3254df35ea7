// Package mcp provides an MCP (Model Context Protocol) server adapter for SIRIA.
// It lets AI assistants browse the stored third-sector events and the
// configured organisations.
package mcp

import "errors"

// ErrMissingEventService is returned when the event service is not provided.
var ErrMissingEventService = errors.New("mcp: event service is required")
