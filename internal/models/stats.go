// Package models provides the data structures used throughout the application.
package models

import (
	"pvillar/hogarfin/internal/logging"
)

// ImportStats tracks the outcome counts of one statement import.
type ImportStats struct {
	Imported         int // Rows added to the transaction set
	SkippedDuplicate int // Rows whose identity key was already present
	Rejected         int // Rows dropped by the normalizer
	Updated          int // Existing rows that picked up a category backfill
}

// Total returns the number of rows the import saw.
func (s ImportStats) Total() int {
	return s.Imported + s.SkippedDuplicate + s.Rejected
}

// Merge adds another import's counts into this one.
func (s *ImportStats) Merge(other ImportStats) {
	s.Imported += other.Imported
	s.SkippedDuplicate += other.SkippedDuplicate
	s.Rejected += other.Rejected
	s.Updated += other.Updated
}

// LogSummary logs a summary of the import outcome.
func (s ImportStats) LogSummary(logger logging.Logger, source string) {
	if logger == nil {
		return
	}

	logger.Info("Import summary",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: logging.FieldImported, Value: s.Imported},
		logging.Field{Key: logging.FieldSkipped, Value: s.SkippedDuplicate},
		logging.Field{Key: logging.FieldRejected, Value: s.Rejected},
		logging.Field{Key: logging.FieldUpdated, Value: s.Updated},
		logging.Field{Key: logging.FieldCount, Value: s.Total()},
	)
}
