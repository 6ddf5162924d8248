// Package engine is the public file-conversion facade. It normalizes any
// supported statement export (CSV, Excel, camt.053 XML, PDF) into the
// canonical transaction layout and classifies descriptions through the
// built-in keyword table, without touching an account's stored history.
// Programs that want the full ingestion flow (dedup, learned mappings,
// per-user storage) should wire the internal packages through a container
// instead.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pvillar/hogarfin/internal/categorizer"
	"pvillar/hogarfin/internal/common"
	"pvillar/hogarfin/internal/factory"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/parser"
	"pvillar/hogarfin/internal/store"
)

var log = logging.NewLogrusAdapterFromLogger(logging.GetLogger())

// SetLogger replaces the package logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Normalize parses the statement at path into canonical transactions. The
// returned result also carries the rows the parser rejected.
func Normalize(path string) (*parser.Result, error) {
	p, err := factory.GetParserForFile(path, log)
	if err != nil {
		return nil, err
	}
	return p.ParseFile(path)
}

// ConvertToCSV normalizes the statement at inputFile and writes the
// canonical CSV to csvFile. Rejected rows are logged and dropped.
func ConvertToCSV(inputFile, csvFile string) error {
	result, err := Normalize(inputFile)
	if err != nil {
		return fmt.Errorf("failed to normalize %s: %w", inputFile, err)
	}
	for _, rej := range result.Rejections {
		log.WithFields(
			logging.Field{Key: "file", Value: inputFile},
			logging.Field{Key: "row", Value: rej.Row},
		).Warn("Dropping unparsable row")
	}
	if err := common.WriteTransactionsToCSV(result.Transactions, csvFile); err != nil {
		return err
	}
	log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: "output", Value: csvFile},
	).Info("Statement converted")
	return nil
}

// BatchConvert converts every supported statement file in inputDir, writing
// one canonical CSV per input into outputDir. It returns the number of
// files converted. Files no parser accepts are skipped.
func BatchConvert(inputDir, outputDir string) (int, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory %s: %w", inputDir, err)
	}
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return 0, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := factory.TypeForFile(entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	converted := 0
	for _, name := range names {
		in := filepath.Join(inputDir, name)
		base := strings.TrimSuffix(name, filepath.Ext(name))
		out := filepath.Join(outputDir, base+".csv")
		if err := ConvertToCSV(in, out); err != nil {
			return converted, err
		}
		converted++
	}
	return converted, nil
}

// Validate reports whether the file at path is a statement the matching
// parser accepts.
func Validate(path string) (bool, error) {
	p, err := factory.GetParserForFile(path, log)
	if err != nil {
		return false, err
	}
	return p.ValidateFormat(path)
}

// Classify maps a transaction description to a category through the
// built-in keyword table. Descriptions no rule matches come back as
// Uncategorized.
func Classify(description string) (string, error) {
	rules, err := store.NewRuleStore("").LoadRules()
	if err != nil {
		return "", err
	}
	keywords, err := categorizer.NewKeywordStrategy(rules, log)
	if err != nil {
		return "", err
	}
	category, matched, err := keywords.Classify(context.Background(), description)
	if err != nil {
		return "", err
	}
	if !matched {
		return models.CategoryUncategorized, nil
	}
	return category, nil
}
