// Package categorizer assigns spending categories to transaction
// descriptions. The decision has two tiers: a learned mapping recorded from a
// user correction wins unconditionally, otherwise the ordered keyword rule
// table decides, otherwise the transaction stays Uncategorized. Keeping user
// intent in a separate override layer means the rule table itself never
// changes and stays shareable across accounts.
package categorizer

import (
	"context"
	"fmt"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
)

// Categorizer combines the learned mapping store and the keyword rule set
// into a single classification decision per description.
type Categorizer struct {
	strategies []Strategy
	learned    *LearnedMappingStore
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer with learned mappings consulted before
// keyword rules. The learned store may still be unloaded; call Load on it
// before the first classification pass.
func NewCategorizer(learned *LearnedMappingStore, keywords *KeywordStrategy, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}

	strategies := make([]Strategy, 0, 2)
	if learned != nil {
		strategies = append(strategies, learned)
	}
	if keywords != nil {
		strategies = append(strategies, keywords)
	}

	return &Categorizer{
		strategies: strategies,
		learned:    learned,
		logger:     logger,
	}
}

// Classify returns the category for a description: learned mapping first,
// keyword rules second, Uncategorized as the terminal default. Classify is
// pure over the description; the income rule for positive amounts belongs to
// the ingestion pipeline.
func (c *Categorizer) Classify(ctx context.Context, description string) (string, error) {
	for _, strategy := range c.strategies {
		category, found, err := strategy.Classify(ctx, description)
		if err != nil {
			return "", fmt.Errorf("%s strategy: %w", strategy.Name(), err)
		}
		if found {
			return category, nil
		}
	}
	return models.CategoryUncategorized, nil
}

// Record persists a user correction through the learned mapping store, so
// the same description classifies to the corrected category from now on.
func (c *Categorizer) Record(ctx context.Context, description, category string) error {
	if c.learned == nil {
		return fmt.Errorf("no learned mapping store configured")
	}
	if !models.IsKnownCategory(category) {
		return fmt.Errorf("unknown category: %s", category)
	}
	return c.learned.Record(ctx, description, category)
}

// Learned returns the underlying learned mapping store, or nil when none is
// configured.
func (c *Categorizer) Learned() *LearnedMappingStore {
	return c.learned
}
