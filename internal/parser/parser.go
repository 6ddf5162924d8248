// Package parser defines the interface every statement parser implements and
// the result shape the ingestion pipeline consumes.
package parser

import (
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/parsererror"
)

// Result is what a statement parser hands the ingestion pipeline: canonical
// rows in source order, plus the rejection recorded for every row that failed
// normalization. A malformed row lands in Rejections, never in an error
// return; only structural failures (unreadable file, missing required
// column) surface as errors.
type Result struct {
	Transactions []models.Transaction
	Rejections   []*parsererror.RowError
}

// StatementParser turns one raw statement export into canonical rows.
// Implementations exist per source format (CSV, XLSX, camt.053 XML, PDF).
type StatementParser interface {
	// ParseFile reads and normalizes the statement at path.
	ParseFile(path string) (*Result, error)

	// ValidateFormat reports whether the file looks like this parser's
	// format, without fully parsing it.
	ValidateFormat(path string) (bool, error)
}
