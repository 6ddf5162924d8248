// Package pdfparser reads Trade-Republic-style PDF statements. The text is
// extracted with pdftotext in layout mode; the transaction table carries
// FECHA, DESCRIPCIÓN, ENTRADA DE DINERO and SALIDA DE DINERO columns and the
// money column a value sits in decides its sign.
package pdfparser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"pvillar/hogarfin/internal/currencyutils"
	"pvillar/hogarfin/internal/dateutils"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/parsererror"
	"pvillar/hogarfin/internal/textutils"
)

var (
	// "01 dic 2025 TRANSFERENCIA PABLO ..." — date first, rest of line after.
	dateLinePattern = regexp.MustCompile(`^\s*(\d{1,2}\s+[A-Za-z]{3,}\.?\s+\d{4})\s+(.*)$`)

	// Spanish-locale money token, optional euro sign.
	amountPattern = regexp.MustCompile(`-?\d{1,3}(?:\.\d{3})*,\d{2}\s*€?`)
)

// PDFParser implements parser.StatementParser for Trade-Republic-style PDF
// statements.
type PDFParser struct {
	parser.BaseParser
	extractor PDFExtractor
}

// NewPDFParser creates a PDF statement parser backed by pdftotext.
func NewPDFParser(logger logging.Logger) *PDFParser {
	return NewPDFParserWithExtractor(logger, NewRealPDFExtractor())
}

// NewPDFParserWithExtractor creates a PDF statement parser with a custom text
// extractor.
func NewPDFParserWithExtractor(logger logging.Logger, extractor PDFExtractor) *PDFParser {
	return &PDFParser{
		BaseParser: parser.NewBaseParser(logger),
		extractor:  extractor,
	}
}

// ParseFile extracts the statement text and normalizes its transaction rows.
func (p *PDFParser) ParseFile(path string) (*parser.Result, error) {
	text, err := p.extractor.ExtractText(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF statement",
			Msg:            err.Error(),
		}
	}

	layout, ok := findLayout(text)
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "statement with FECHA and DESCRIPCIÓN columns",
			Msg:            "transaction table header not found",
		}
	}

	result := parseLines(strings.Split(text, "\n"), layout)

	p.GetLogger().WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldRejected, Value: len(result.Rejections)},
	).Info("Parsed PDF statement")
	return result, nil
}

// ValidateFormat reports whether the extracted text carries the statement's
// transaction table header.
func (p *PDFParser) ValidateFormat(path string) (bool, error) {
	text, err := p.extractor.ExtractText(path)
	if err != nil {
		return false, nil
	}
	_, ok := findLayout(text)
	return ok, nil
}

// columnLayout records the horizontal start offsets of the money columns in
// the table header. Values are right-aligned under their header, so a money
// token is assigned to the rightmost column starting at or before the token's
// end.
type columnLayout struct {
	entrada int
	salida  int
	saldo   int
}

// findLayout locates the transaction table header and measures its money
// column offsets.
func findLayout(text string) (columnLayout, bool) {
	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		if !strings.Contains(upper, "FECHA") {
			continue
		}
		if !strings.Contains(upper, "DESCRIPCIÓN") && !strings.Contains(upper, "DESCRIPCION") &&
			!strings.Contains(upper, "DESCRIPTION") {
			continue
		}
		return columnLayout{
			entrada: strings.Index(upper, "ENTRADA"),
			salida:  strings.Index(upper, "SALIDA"),
			saldo:   strings.Index(upper, "SALDO"),
		}, true
	}
	return columnLayout{}, false
}

func parseLines(lines []string, layout columnLayout) *parser.Result {
	result := &parser.Result{}
	rowNum := 0

	for _, line := range lines {
		match := dateLinePattern.FindStringSubmatch(line)
		if match == nil {
			// Header, continuation or page furniture.
			continue
		}
		rowNum++

		parsed, err := dateutils.ParseSpanishMonthDate(match[1])
		if err != nil {
			result.Rejections = append(result.Rejections,
				parsererror.NewUnparsableDate(rowNum, match[1], err))
			continue
		}

		amount, description, err := splitAmount(line, match[2], layout)
		if err != nil {
			result.Rejections = append(result.Rejections,
				parsererror.NewUnparsableAmount(rowNum, match[2], err))
			continue
		}
		if description == "" {
			continue
		}

		result.Transactions = append(result.Transactions, models.Transaction{
			Date:        models.DateOf(parsed),
			Description: description,
			Amount:      amount,
		})
	}

	return result
}

// splitAmount separates the money tokens from the description in the part of
// the line after the date, signing the amount by the column it sits in. The
// trailing SALDO column is a running balance, not a movement, and is skipped.
func splitAmount(line, rest string, layout columnLayout) (decimal.Decimal, string, error) {
	offset := len(line) - len(rest)
	locs := amountPattern.FindAllStringIndex(rest, -1)
	if len(locs) == 0 {
		return decimal.Zero, "", parsererror.ErrUnparsableAmount
	}

	description := textutils.CleanDescription(rest[:locs[0][0]])

	for _, loc := range locs {
		end := offset + loc[1]
		if layout.saldo >= 0 && end > layout.saldo {
			continue
		}

		amount, err := currencyutils.ParseAmount(rest[loc[0]:loc[1]])
		if err != nil {
			return decimal.Zero, "", err
		}

		if layout.salida >= 0 && end > layout.salida {
			return amount.Abs().Neg(), description, nil
		}
		if layout.entrada >= 0 && end > layout.entrada {
			return amount.Abs(), description, nil
		}
		// No recognizable money columns: trust the token's own sign.
		return amount, description, nil
	}

	return decimal.Zero, "", parsererror.ErrUnparsableAmount
}
