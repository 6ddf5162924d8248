// Package statementparser normalizes raw bank statement exports (CSV and
// XLSX) into canonical transaction rows. Column names are resolved through
// an alias table, amounts use the Spanish locale convention, dates are
// day-first, and per-row failures are reported without aborting the batch.
package statementparser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/parsererror"
)

// CSVParser reads semicolon- or comma-separated statement exports.
type CSVParser struct {
	parser.BaseParser
}

// NewCSVParser creates a CSV statement parser.
func NewCSVParser(logger logging.Logger) *CSVParser {
	return &CSVParser{BaseParser: parser.NewBaseParser(logger)}
}

// ParseFile reads and normalizes the statement at path.
func (p *CSVParser) ParseFile(path string) (*parser.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.GetLogger().WithError(err).Warn("Failed to close file")
		}
	}()

	result, err := p.Parse(file)
	if err != nil {
		return nil, err
	}

	p.GetLogger().WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldRejected, Value: len(result.Rejections)},
	).Info("Parsed CSV statement")
	return result, nil
}

// Parse reads and normalizes a statement from r.
func (p *CSVParser) Parse(r io.Reader) (*parser.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}

	text, err := decodeStatement(data)
	if err != nil {
		return nil, err
	}

	rows, err := readRecords(text)
	if err != nil {
		return nil, err
	}

	return NormalizeTable(rows)
}

// ValidateFormat reports whether the file parses as CSV with a recognizable
// header row somewhere in it.
func (p *CSVParser) ValidateFormat(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("opening file for validation: %w", err)
	}

	text, err := decodeStatement(data)
	if err != nil {
		return false, nil
	}

	rows, err := readRecords(text)
	if err != nil {
		return false, nil
	}

	idx, _ := findHeaderRow(rows)
	return idx >= 0, nil
}

// decodeStatement turns raw statement bytes into UTF-8 text. Spanish bank
// exports are frequently latin-1 or windows-1252 rather than UTF-8; those
// are decoded instead of crashing the import on invalid byte sequences.
func decodeStatement(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	enc, name, certain := charset.DetermineEncoding(data, "text/plain")
	if !certain {
		// Sniffing is rarely certain for short files. Windows-1252 is a
		// superset of latin-1 and decodes every byte, which matches what
		// these exports actually are.
		enc = charmap.Windows1252
		name = charmap.Windows1252.String()
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &parsererror.InvalidFormatError{
			ExpectedFormat: "UTF-8, latin-1 or windows-1252 text",
			Msg:            fmt.Sprintf("cannot decode as %s", name),
		}
	}
	return string(decoded), nil
}

// readRecords parses CSV text with the detected field separator. Statement
// exports default to semicolons; comma-separated files (canonical exports,
// other banks) are detected from the content.
func readRecords(text string) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader([]byte(text)))
	reader.Comma = detectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "delimited statement export",
			Msg:            err.Error(),
		}
	}
	return rows, nil
}

// detectDelimiter picks the field separator from the first few lines. The
// real separator occurs the same number of times on every data row, so each
// candidate is scored by how many lines share its most common per-line
// count; raw totals would let comma-heavy descriptions ("FARMACIA GARCIA,
// S.L.") outvote the actual separator. Semicolon wins ties: it is the
// statement default.
func detectDelimiter(text string) rune {
	sample := text
	if idx := nthLineEnd(text, 5); idx > 0 {
		sample = text[:idx]
	}
	lines := strings.Split(sample, "\n")

	if delimiterScore(lines, ";") >= delimiterScore(lines, ",") && strings.Contains(sample, ";") {
		return ';'
	}
	if strings.Contains(sample, ",") {
		return ','
	}
	return ';'
}

// delimiterScore is the number of lines sharing the candidate's most common
// per-line occurrence count. Lines without the candidate don't vote.
func delimiterScore(lines []string, delim string) int {
	counts := make(map[int]int)
	for _, line := range lines {
		if n := strings.Count(line, delim); n > 0 {
			counts[n]++
		}
	}
	best := 0
	for _, votes := range counts {
		if votes > best {
			best = votes
		}
	}
	return best
}

func nthLineEnd(text string, n int) int {
	pos := 0
	for i := 0; i < n; i++ {
		next := strings.IndexByte(text[pos:], '\n')
		if next < 0 {
			return len(text)
		}
		pos += next + 1
	}
	return pos
}
