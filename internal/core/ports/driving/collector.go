package driving

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// Collector runs the registered source adapters.
type Collector interface {
	// RunAll runs every adapter with at most maxConcurrency in flight.
	// A non-positive maxConcurrency uses the default of 5.
	// Adapter failures are logged and contribute no events; RunAll never fails.
	// The result order is unspecified.
	RunAll(ctx context.Context, maxConcurrency int) []domain.Event

	// RunOne runs the adapter registered under organization.
	// An unknown organisation logs a warning and returns no events and no error.
	RunOne(ctx context.Context, organization string) ([]domain.Event, error)

	// Organizations lists registered organisation names in registry order.
	Organizations() []string
}
