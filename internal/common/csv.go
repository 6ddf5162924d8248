// Package common provides the canonical transaction CSV read/write shared by
// exports, re-ingestion and the batch flow.
package common

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the output field separator for canonical CSV files. The
// default keeps exports readable by spreadsheet software with Spanish locale
// settings, which expects semicolons.
var Delimiter rune = ';'

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for canonical CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// ReadTransactionsFromCSV reads a canonical CSV export back into transactions.
func ReadTransactionsFromCSV(csvFile string) ([]models.Transaction, error) {
	log.WithField("file", csvFile).Info("Reading canonical CSV file")

	file, err := os.Open(csvFile) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = Delimiter
		return r
	})

	var transactions []models.Transaction
	if err := gocsv.UnmarshalFile(file, &transactions); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	log.WithField("count", len(transactions)).Info("Read canonical CSV data")
	return transactions, nil
}

// WriteTransactionsToCSV writes transactions to a canonical CSV file:
// Date;Concept;Amount;Card;Category;SourceUser, dates ISO, amounts with two
// decimal places. Every export path goes through here so the files re-ingest
// cleanly.
func WriteTransactionsToCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- path comes from the CLI user
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	for i := range transactions {
		transactions[i].Amount = transactions[i].Amount.Round(2)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(&transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Successfully wrote transactions to CSV file")

	return nil
}
