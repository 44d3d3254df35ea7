package driving

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// UpdateService runs the whole ingestion pipeline and stores the result.
type UpdateService interface {
	// RunFullUpdate collects from every source, classifies, deduplicates,
	// keeps upcoming events and replaces the stored set.
	// A run that collects nothing reports RunStatusEmpty and writes nothing.
	RunFullUpdate(ctx context.Context) (*domain.RunReport, error)

	// RunOrganization does the same for one source and appends instead of replacing.
	RunOrganization(ctx context.Context, organization string) (*domain.RunReport, error)

	// RecentRuns returns the latest run reports, most recent first.
	RecentRuns(ctx context.Context, limit int) ([]domain.RunReport, error)
}
