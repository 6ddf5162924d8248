package statementparser

import (
	"pvillar/hogarfin/internal/currencyutils"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/parsererror"
	"pvillar/hogarfin/internal/textutils"
)

// NormalizeTable converts raw tabular records into canonical rows. The
// header row is located first (metadata lines above it are ignored), column
// aliases are resolved eagerly, and every data row below the header is
// normalized independently: a row with an unparsable amount or date is
// rejected with its row index and raw value while the rest of the batch
// proceeds. Only a missing required column fails the whole table.
func NormalizeTable(rows [][]string) (*parser.Result, error) {
	headerIdx, header := findHeaderRow(rows)
	if headerIdx < 0 {
		_, err := resolveColumns(header)
		return nil, err
	}

	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &parser.Result{}
	rowNum := 0
	for _, row := range rows[headerIdx+1:] {
		rowNum++

		description := textutils.CleanDescription(cell(row, columns[FieldDescription]))
		if description == "" {
			// Separator or metadata line, not data.
			continue
		}

		rawAmount := cell(row, columns[FieldAmount])
		amount, err := currencyutils.ParseAmount(rawAmount)
		if err != nil {
			result.Rejections = append(result.Rejections,
				parsererror.NewUnparsableAmount(rowNum, rawAmount, err))
			continue
		}

		rawDate := cell(row, columns[FieldDate])
		var date models.ISODate
		if err := date.UnmarshalCSV(rawDate); err != nil {
			result.Rejections = append(result.Rejections,
				parsererror.NewUnparsableDate(rowNum, rawDate, err))
			continue
		}

		tx := models.Transaction{
			Date:        date,
			Description: description,
			Amount:      amount,
		}
		if idx, ok := columns[FieldCard]; ok {
			tx.CardSuffix = textutils.CleanDescription(cell(row, idx))
		}
		if idx, ok := columns[FieldCategory]; ok {
			// A category column appears when re-ingesting a canonical
			// export; unknown labels are dropped, not guessed at.
			if category := textutils.CleanDescription(cell(row, idx)); models.IsKnownCategory(category) {
				tx.Category = category
			}
		}

		result.Transactions = append(result.Transactions, tx)
	}

	return result, nil
}
