package statementparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/parsererror"
)

// ExcelParser reads XLSX statement exports. Only the first sheet is read;
// bank exports put the transactions there and use further sheets, when
// present, for summaries this parser does not need.
type ExcelParser struct {
	parser.BaseParser
}

// NewExcelParser creates an XLSX statement parser.
func NewExcelParser(logger logging.Logger) *ExcelParser {
	return &ExcelParser{BaseParser: parser.NewBaseParser(logger)}
}

// ParseFile reads and normalizes the XLSX statement at path.
func (p *ExcelParser) ParseFile(path string) (*parser.Result, error) {
	rows, err := p.readRows(path)
	if err != nil {
		return nil, err
	}

	result, err := NormalizeTable(rows)
	if err != nil {
		return nil, err
	}

	p.GetLogger().WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldRejected, Value: len(result.Rejections)},
	).Info("Parsed XLSX statement")
	return result, nil
}

// ValidateFormat reports whether the file opens as a workbook with a
// recognizable header row on its first sheet.
func (p *ExcelParser) ValidateFormat(path string) (bool, error) {
	rows, err := p.readRows(path)
	if err != nil {
		return false, nil
	}
	idx, _ := findHeaderRow(rows)
	return idx >= 0, nil
}

func (p *ExcelParser) readRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "XLSX workbook",
			Msg:            err.Error(),
		}
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.GetLogger().WithError(err).Warn("Failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "XLSX workbook with at least one sheet",
			Msg:            "workbook has no sheets",
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}
