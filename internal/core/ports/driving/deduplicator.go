package driving

import "github.com/custodia-labs/siria/internal/core/domain"

// Deduplicator removes exact and near duplicate events.
type Deduplicator interface {
	// Deduplicate drops repeated IDs, then collapses each near-duplicate
	// cluster to its first member (keepFirst) or its last.
	Deduplicate(events []domain.Event, keepFirst bool) []domain.Event

	// FindDuplicates returns the index clusters of size > 1 found in events.
	FindDuplicates(events []domain.Event) [][]int

	// Similarity returns the weighted similarity of two events in [0,1].
	Similarity(a, b *domain.Event) float64

	// MergeDuplicateInfo folds a cluster into one record.
	// The boolean is false when events is empty.
	MergeDuplicateInfo(events []domain.Event) (domain.Event, bool)
}
