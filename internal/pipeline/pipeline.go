// Package pipeline orchestrates one statement import: normalized rows are
// deduplicated against the stored history, new rows are categorized and
// merged in, and the result is persisted. Re-running the same import is a
// no-op by construction.
package pipeline

import (
	"context"
	"sort"

	"pvillar/hogarfin/internal/categorizer"
	"pvillar/hogarfin/internal/history"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/parsererror"
)

// Result is the outcome of one ingest: the merged transaction set as stored,
// the outcome counts, and the rejections carried over from parsing.
type Result struct {
	Transactions []models.Transaction
	Stats        models.ImportStats
	Rejections   []*parsererror.RowError
}

// Pipeline merges parsed statements into stored history.
type Pipeline struct {
	categorizer *categorizer.Categorizer
	history     *history.Repository
	logger      logging.Logger
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(cat *categorizer.Categorizer, repo *history.Repository, logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Pipeline{categorizer: cat, history: repo, logger: logger}
}

// Ingest merges the parsed rows into the history stored under key, tagging
// every row with the data user, and persists the merged set. Duplicate rows
// (same identity key as stored history or an earlier row of this batch) are
// skipped; a skipped duplicate carrying a category backfills a stored row
// that is still uncategorized. The merged set is ordered ascending by date,
// ties keeping row order with the newest import last.
func (p *Pipeline) Ingest(ctx context.Context, parsed *parser.Result, key, dataUser string) (*Result, error) {
	existing, err := p.history.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	result := &Result{Rejections: parsed.Rejections}
	result.Stats.Rejected = len(parsed.Rejections)

	merged := make([]models.Transaction, len(existing))
	copy(merged, existing)

	position := make(map[string]int, len(merged))
	for i := range merged {
		position[merged[i].IdentityKey()] = i
	}

	for _, row := range parsed.Transactions {
		tx := row
		tx.SourceUser = dataUser

		id := tx.IdentityKey()
		if at, seen := position[id]; seen {
			result.Stats.SkippedDuplicate++
			// A duplicate from a canonical re-ingest can still teach us
			// the category of a stored row that never got one.
			if tx.IsCategorized() && !merged[at].IsCategorized() {
				merged[at].Category = tx.Category
				result.Stats.Updated++
			}
			continue
		}

		if err := p.categorize(ctx, &tx); err != nil {
			return nil, err
		}

		position[id] = len(merged)
		merged = append(merged, tx)
		result.Stats.Imported++
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date.Time)
	})

	if err := p.history.Save(ctx, key, merged); err != nil {
		return nil, err
	}

	result.Transactions = merged
	result.Stats.LogSummary(p.logger, key)
	return result, nil
}

// Recategorize re-runs classification over the stored history: uncategorized
// rows are classified again, so newly learned mappings and rule changes reach
// old data. Explicit categories are left alone.
func (p *Pipeline) Recategorize(ctx context.Context, key string) (int, error) {
	transactions, err := p.history.Load(ctx, key)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range transactions {
		if transactions[i].IsCategorized() {
			continue
		}
		tx := transactions[i]
		if err := p.categorize(ctx, &tx); err != nil {
			return 0, err
		}
		if tx.Category != transactions[i].Category && tx.Category != models.CategoryUncategorized {
			transactions[i].Category = tx.Category
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}
	if err := p.history.Save(ctx, key, transactions); err != nil {
		return 0, err
	}
	return changed, nil
}

// categorize assigns tx its category: income rule first, a category already
// carried by the row second, classification last.
func (p *Pipeline) categorize(ctx context.Context, tx *models.Transaction) error {
	if tx.IsIncome() {
		tx.Category = models.CategoryIncome
		return nil
	}
	if tx.IsCategorized() {
		// Canonical re-ingest rows keep their category.
		return nil
	}

	category, err := p.categorizer.Classify(ctx, tx.Description)
	if err != nil {
		return err
	}
	tx.Category = category
	return nil
}
