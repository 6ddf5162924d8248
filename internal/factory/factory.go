// Package factory selects the statement parser for a source file.
package factory

import (
	"fmt"
	"path/filepath"
	"strings"

	"pvillar/hogarfin/internal/camtparser"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/pdfparser"
	"pvillar/hogarfin/internal/statementparser"
)

// ParserType identifies a statement source format.
type ParserType string

const (
	CSV   ParserType = "csv"
	Excel ParserType = "xlsx"
	CAMT  ParserType = "camt"
	PDF   ParserType = "pdf"
)

// GetParser returns a new parser for the given type, logging through the
// shared root logger.
func GetParser(parserType ParserType) (parser.StatementParser, error) {
	return GetParserWithLogger(parserType, logging.NewLogrusAdapterFromLogger(logging.GetLogger()))
}

// GetParserWithLogger returns a new parser for the given type with the
// provided logger.
func GetParserWithLogger(parserType ParserType, logger logging.Logger) (parser.StatementParser, error) {
	switch parserType {
	case CSV:
		return statementparser.NewCSVParser(logger), nil
	case Excel:
		return statementparser.NewExcelParser(logger), nil
	case CAMT:
		return camtparser.NewCAMTParser(logger), nil
	case PDF:
		return pdfparser.NewPDFParser(logger), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}

// TypeForFile maps a statement file to its parser type by extension.
func TypeForFile(path string) (ParserType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, nil
	case ".xlsx", ".xls":
		return Excel, nil
	case ".xml":
		return CAMT, nil
	case ".pdf":
		return PDF, nil
	default:
		return "", fmt.Errorf("unsupported statement file type: %s", path)
	}
}

// GetParserForFile returns a parser matching the file's extension.
func GetParserForFile(path string, logger logging.Logger) (parser.StatementParser, error) {
	parserType, err := TypeForFile(path)
	if err != nil {
		return nil, err
	}
	return GetParserWithLogger(parserType, logger)
}
