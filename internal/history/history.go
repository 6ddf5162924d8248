// Package history is the transaction repository: one data user's merged
// transaction set, stored as a table on the storage collaborator under the
// tenant data key.
package history

import (
	"context"
	"fmt"

	"pvillar/hogarfin/internal/currencyutils"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/storage"
	"pvillar/hogarfin/internal/textutils"
)

// Repository loads and saves transaction sets.
type Repository struct {
	backend storage.Backend
	logger  logging.Logger
}

// NewRepository creates a repository on the given backend.
func NewRepository(backend storage.Backend, logger logging.Logger) *Repository {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Repository{backend: backend, logger: logger}
}

// Load returns the transactions stored under key, in stored order. A key
// never written yields an empty history, not an error.
func (r *Repository) Load(ctx context.Context, key string) ([]models.Transaction, error) {
	rows, err := r.backend.ReadTable(ctx, key)
	if storage.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			// Header row.
			continue
		}
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, fmt.Errorf("stored history %s row %d: %w", key, i, err)
		}
		if tx.Description == "" {
			continue
		}
		transactions = append(transactions, tx)
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldKey, Value: key},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Debug("Loaded transaction history")
	return transactions, nil
}

// Save replaces the transactions stored under key.
func (r *Repository) Save(ctx context.Context, key string, transactions []models.Transaction) error {
	rows := make([][]string, 0, len(transactions)+1)
	rows = append(rows, models.CanonicalHeader())
	for _, tx := range transactions {
		rows = append(rows, transactionToRow(tx))
	}

	if err := r.backend.WriteTable(ctx, key, rows); err != nil {
		return err
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldKey, Value: key},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Debug("Saved transaction history")
	return nil
}

func transactionToRow(tx models.Transaction) []string {
	return []string{
		tx.Date.ISO(),
		tx.Description,
		tx.Amount.StringFixed(2),
		tx.CardSuffix,
		tx.Category,
		tx.SourceUser,
	}
}

func rowToTransaction(row []string) (models.Transaction, error) {
	var tx models.Transaction

	if err := tx.Date.UnmarshalCSV(field(row, 0)); err != nil {
		return models.Transaction{}, err
	}
	tx.Description = textutils.CleanDescription(field(row, 1))

	amount, err := currencyutils.ParseAmount(field(row, 2))
	if err != nil {
		return models.Transaction{}, err
	}
	tx.Amount = amount

	tx.CardSuffix = textutils.CleanDescription(field(row, 3))
	tx.Category = textutils.CleanDescription(field(row, 4))
	tx.SourceUser = textutils.CleanDescription(field(row, 5))
	return tx, nil
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
