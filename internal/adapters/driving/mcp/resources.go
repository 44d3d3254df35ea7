package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/siria/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for SIRIA resources.
	uriScheme = "siria://"

	jsonMIME = "application/json"

	// recentRunsLimit is how many run reports the runs resource returns.
	recentRunsLimit = 10
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "organizations",
		Name:        "organizations",
		Description: "Organisations whose event pages are collected",
		MIMEType:    jsonMIME,
	}, s.handleOrganizationsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "The fixed event taxonomy, in classification order",
		MIMEType:    jsonMIME,
	}, s.handleCategoriesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Most recent pipeline run reports",
		MIMEType:    jsonMIME,
	}, s.handleRunsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "events/{eventId}",
		Name:        "event",
		Description: "A single stored event",
		MIMEType:    jsonMIME,
	}, s.handleEventResource)
}

// handleOrganizationsResource returns the configured organisations.
func (s *Server) handleOrganizationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sources == nil {
		return jsonResult(req.Params.URI, []struct{}{})
	}

	sources, err := s.ports.Sources.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	type organizationInfo struct {
		Name      string `json:"name"`
		Kind      string `json:"kind"`
		EventsURL string `json:"events_url"`
		Country   string `json:"country"`
		Enabled   bool   `json:"enabled"`
	}

	infos := make([]organizationInfo, len(sources))
	for i := range sources {
		src := sources[i].WithDefaults()
		infos[i] = organizationInfo{
			Name:      src.OrganizationName,
			Kind:      src.Kind.String(),
			EventsURL: src.EventsURL,
			Country:   src.Country,
			Enabled:   !src.Disabled,
		}
	}

	return jsonResult(req.Params.URI, infos)
}

// handleCategoriesResource returns the taxonomy.
func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResult(req.Params.URI, domain.Taxonomy())
}

// handleRunsResource returns recent run reports.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Updates == nil {
		return jsonResult(req.Params.URI, []struct{}{})
	}

	runs, err := s.ports.Updates.RecentRuns(ctx, recentRunsLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return jsonResult(req.Params.URI, runs)
}

// handleEventResource returns one stored event.
func (s *Server) handleEventResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractEventID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	event, err := s.ports.Events.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}

	return jsonResult(req.Params.URI, event)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: jsonMIME,
			Text:     string(data),
		}},
	}, nil
}

// extractEventID extracts the event ID from a URI like siria://events/{eventId}.
func extractEventID(uri string) string {
	const prefix = uriScheme + "events/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
