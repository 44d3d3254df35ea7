package driving

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// SourceService exposes the configured organisation sources.
type SourceService interface {
	// List returns every configured source in catalogue order, disabled ones included.
	List(ctx context.Context) ([]domain.SourceConfig, error)

	// Get returns the source for an organisation name.
	// Returns domain.ErrUnknownOrganization if none matches.
	Get(ctx context.Context, organization string) (*domain.SourceConfig, error)
}
