// Package reviewer drives the correction flow: listing expenses that still
// need a category and recording accepted corrections so future imports learn
// from them.
package reviewer

import (
	"context"
	"fmt"

	"pvillar/hogarfin/internal/categorizer"
	"pvillar/hogarfin/internal/history"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/textutils"
)

// Reviewer lists pending transactions and applies corrections.
type Reviewer struct {
	history     *history.Repository
	categorizer *categorizer.Categorizer
	suggester   Suggester
	logger      logging.Logger
}

// NewReviewer creates a reviewer. The suggester is optional; without one,
// SuggestFor fails and the flow is manual-only.
func NewReviewer(repo *history.Repository, cat *categorizer.Categorizer, suggester Suggester, logger logging.Logger) *Reviewer {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Reviewer{
		history:     repo,
		categorizer: cat,
		suggester:   suggester,
		logger:      logger,
	}
}

// Pending returns the stored expenses still uncategorized, in stored order.
func (r *Reviewer) Pending(ctx context.Context, key string) ([]models.Transaction, error) {
	transactions, err := r.history.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	var pending []models.Transaction
	for _, tx := range transactions {
		if tx.IsExpense() && !tx.IsCategorized() {
			pending = append(pending, tx)
		}
	}
	return pending, nil
}

// SuggestFor asks the configured suggester for a candidate category. The
// candidate is validated against the expense category set before it is
// returned; it is never applied here.
func (r *Reviewer) SuggestFor(ctx context.Context, description string) (string, error) {
	if r.suggester == nil {
		return "", fmt.Errorf("no suggester configured")
	}

	category, err := r.suggester.Suggest(ctx, description)
	if err != nil {
		return "", err
	}
	if !isExpenseCategory(category) {
		return "", fmt.Errorf("suggested category %q is outside the category set", category)
	}
	return category, nil
}

// Correct records description→category as a learned correction and applies
// it to stored rows with the same normalized description that are still
// uncategorized. Returns the number of stored rows updated.
func (r *Reviewer) Correct(ctx context.Context, key, description, category string) (int, error) {
	if !isExpenseCategory(category) {
		return 0, fmt.Errorf("not a valid correction category: %s", category)
	}
	if err := r.categorizer.Record(ctx, description, category); err != nil {
		return 0, err
	}

	transactions, err := r.history.Load(ctx, key)
	if err != nil {
		return 0, err
	}

	target := textutils.NormalizeKey(description)
	updated := 0
	for i := range transactions {
		if transactions[i].IsCategorized() {
			continue
		}
		if textutils.NormalizeKey(transactions[i].Description) != target {
			continue
		}
		transactions[i].Category = category
		updated++
	}

	if updated > 0 {
		if err := r.history.Save(ctx, key, transactions); err != nil {
			return 0, err
		}
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldUpdated, Value: updated},
	).Info("Recorded category correction")
	return updated, nil
}

func isExpenseCategory(category string) bool {
	for _, c := range models.ExpenseCategories() {
		if c == category {
			return true
		}
	}
	return false
}
