package driven

import "context"

// AIClassifier asks an external model for a category label.
// This is an optional service. Absence changes accuracy, never correctness.
//
// Implementations must be safe for concurrent use.
type AIClassifier interface {
	// Classify returns one taxonomy label for the event described.
	// Any error, including a label outside the taxonomy, means "no answer".
	Classify(ctx context.Context, name, description, organization string) (string, error)
}
