package categorizer

import "context"

// Strategy defines one method of assigning a category to a transaction
// description. Strategies are consulted in a fixed order; the first one that
// reports a match decides the category.
type Strategy interface {
	// Classify attempts to categorize a description using this strategy.
	// Returns the category, whether the strategy matched, and any error
	// encountered while consulting its backing data.
	Classify(ctx context.Context, description string) (string, bool, error)

	// Name returns the name of this strategy for logging and debugging.
	Name() string
}
