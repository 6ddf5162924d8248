package statementparser

import (
	"strings"

	"pvillar/hogarfin/internal/parsererror"
	"pvillar/hogarfin/internal/textutils"
)

// Canonical field names. Raw exports name their columns freely; each
// canonical field owns a list of accepted aliases and the first alias found
// in the header wins.
const (
	FieldDescription = "description"
	FieldDate        = "date"
	FieldAmount      = "amount"
	FieldCard        = "card"
	FieldCategory    = "category"
)

// fieldAliases maps each canonical field to its accepted column names,
// case-insensitive. Spanish names first: they are what the bank exports
// actually carry. The canonical export header is included so exported files
// re-ingest cleanly.
var fieldAliases = map[string][]string{
	FieldDescription: {"concepto", "concept", "description", "descripción", "descripcion"},
	FieldDate:        {"fecha", "date", "fecha valor"},
	FieldAmount:      {"importe", "amount", "cantidad"},
	FieldCard:        {"tarjeta", "card"},
	FieldCategory:    {"categoría", "categoria", "category"},
}

// requiredFields are the canonical fields an import cannot proceed without.
// Card and category columns are optional.
var requiredFields = []string{FieldDescription, FieldDate, FieldAmount}

// resolveColumns maps each canonical field to its column index in header.
// A required field with no matching alias fails the whole import with
// MissingColumnError; optional fields simply stay unmapped.
func resolveColumns(header []string) (map[string]int, error) {
	columns := mapColumns(header)
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			return nil, &parsererror.MissingColumnError{Field: field, Found: header}
		}
	}
	return columns, nil
}

// mapColumns resolves whatever canonical fields the header carries, without
// requiring completeness.
func mapColumns(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, name := range header {
		normalized[i] = textutils.NormalizeKey(name)
	}

	columns := make(map[string]int)
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if idx := indexOf(normalized, alias); idx >= 0 {
				columns[field] = idx
				break
			}
		}
	}
	return columns
}

// findHeaderRow locates the real header row. Statement exports carry
// metadata lines (account holder, export date, blank separators) above the
// header; the header is the first row where the three required fields all
// resolve. When no row qualifies, the returned index is -1 and the second
// value is the row that resolved the most fields, so the missing-column
// error names the field the presumable header actually lacks.
func findHeaderRow(rows [][]string) (int, []string) {
	bestCount := -1
	var bestRow []string
	for i, row := range rows {
		count := len(mapColumns(row))
		if _, err := resolveColumns(row); err == nil {
			return i, row
		}
		if count > bestCount {
			bestCount = count
			bestRow = row
		}
	}
	return -1, bestRow
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if strings.EqualFold(v, target) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
