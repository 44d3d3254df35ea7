package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// defaultListLimit caps list_events when the caller sets no limit.
const defaultListLimit = 50

// ListEventsInput is the input schema for the list_events tool.
type ListEventsInput struct {
	Category     string `json:"category,omitempty" jsonschema:"exact taxonomy category"`
	Country      string `json:"country,omitempty" jsonschema:"exact country name, e.g. España"`
	Organization string `json:"organization,omitempty" jsonschema:"exact organisation name"`
	From         string `json:"from,omitempty" jsonschema:"inclusive start date YYYY-MM-DD"`
	To           string `json:"to,omitempty" jsonschema:"inclusive end date YYYY-MM-DD"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of events to return (default 50)"`
}

// ListEventsOutput is the output schema for the list_events tool.
type ListEventsOutput struct {
	Events []EventOutput `json:"events"`
	Count  int           `json:"count"`
}

// EventOutput is the tool representation of a stored event.
type EventOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	Modality     string `json:"modality,omitempty"`
	Location     string `json:"location,omitempty"`
	Link         string `json:"link"`
	Country      string `json:"country"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
}

func toEventOutput(e *domain.Event) EventOutput {
	return EventOutput{
		ID:           e.ID,
		Name:         e.Name,
		Organization: e.Organization,
		Date:         e.Date,
		Time:         e.Time,
		Modality:     string(e.Modality),
		Location:     e.Location,
		Link:         e.Link,
		Country:      e.Country,
		Category:     e.Category,
		Description:  e.Description,
	}
}

// GetEventInput is the input schema for the get_event tool.
type GetEventInput struct {
	ID string `json:"id" jsonschema:"event identifier"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_events",
		Description: "List upcoming third-sector events, optionally filtered by category, country, organisation or date range",
	}, s.handleListEvents)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_event",
		Description: "Get one stored event by its identifier",
	}, s.handleGetEvent)
}

// handleListEvents handles the list_events tool invocation.
func (s *Server) handleListEvents(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListEventsInput,
) (*mcp.CallToolResult, ListEventsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	if input.Category != "" && !domain.IsTaxonomyCategory(input.Category) {
		return nil, ListEventsOutput{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidInput, input.Category)
	}

	events, err := s.ports.Events.List(ctx, domain.EventFilter{
		Category:     input.Category,
		Country:      input.Country,
		Organization: input.Organization,
		From:         input.From,
		To:           input.To,
		Limit:        limit,
	})
	if err != nil {
		return nil, ListEventsOutput{}, err
	}

	output := ListEventsOutput{
		Events: make([]EventOutput, len(events)),
		Count:  len(events),
	}
	for i := range events {
		output.Events[i] = toEventOutput(&events[i])
	}

	return nil, output, nil
}

// handleGetEvent handles the get_event tool invocation.
func (s *Server) handleGetEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetEventInput,
) (*mcp.CallToolResult, EventOutput, error) {
	if input.ID == "" {
		return nil, EventOutput{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	event, err := s.ports.Events.Get(ctx, input.ID)
	if err != nil {
		return nil, EventOutput{}, fmt.Errorf("event %s: %w", input.ID, err)
	}
	return nil, toEventOutput(event), nil
}
