package driving

import (
	"context"

	"github.com/custodia-labs/siria/internal/core/domain"
)

// Classifier assigns each event one taxonomy category.
type Classifier interface {
	// Classify returns the category for event. An event already carrying
	// a taxonomy category keeps it.
	Classify(ctx context.Context, event *domain.Event) string

	// ClassifyWithRules applies the keyword rules and organisation overrides only.
	// It always returns a taxonomy value.
	ClassifyWithRules(event *domain.Event) string

	// ClassifyBatch sets Category on every event in place and returns the slice.
	ClassifyBatch(ctx context.Context, events []domain.Event) []domain.Event
}
