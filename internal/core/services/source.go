package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/siria/internal/core/domain"
	"github.com/custodia-labs/siria/internal/core/ports/driving"
)

// Ensure SourceService implements the interface.
var _ driving.SourceService = (*SourceService)(nil)

// SourceService serves the organisation catalogue loaded at startup.
type SourceService struct {
	sources []domain.SourceConfig
}

// NewSourceService creates a source service over a loaded catalogue.
func NewSourceService(sources []domain.SourceConfig) *SourceService {
	out := make([]domain.SourceConfig, len(sources))
	for i := range sources {
		out[i] = sources[i].WithDefaults()
	}
	return &SourceService{sources: out}
}

// List returns all configured sources.
func (s *SourceService) List(_ context.Context) ([]domain.SourceConfig, error) {
	out := make([]domain.SourceConfig, len(s.sources))
	copy(out, s.sources)
	return out, nil
}

// Get retrieves a source by organisation name, ignoring case.
func (s *SourceService) Get(_ context.Context, organization string) (*domain.SourceConfig, error) {
	for i := range s.sources {
		if strings.EqualFold(s.sources[i].OrganizationName, organization) {
			cfg := s.sources[i]
			return &cfg, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOrganization, organization)
}
