package storage

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"pvillar/hogarfin/internal/logging"
)

// configSheet is the worksheet holding config blobs as key/value rows.
const configSheet = "config"

// SheetsBackend stores each table as one worksheet of a shared Google
// spreadsheet and config blobs as rows of a dedicated config worksheet.
// The whole household reads and writes the same spreadsheet, which is what
// makes the data visible from any machine.
type SheetsBackend struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsBackend connects to the spreadsheet identified by spreadsheetID.
// Credentials come in through client options, typically
// option.WithCredentialsFile for a service account key.
func NewSheetsBackend(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsBackend, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to sheets API: %v", ErrUnavailable, err)
	}

	return &SheetsBackend{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// ReadTable returns the rows of the worksheet named key.
func (s *SheetsBackend) ReadTable(ctx context.Context, key string) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(key)).Context(ctx).Do()
	if err != nil {
		return nil, readError(err, key)
	}

	rows := toStringRows(resp.Values)
	log.WithField(logging.FieldKey, key).WithField(logging.FieldCount, len(rows)).
		Debug("Read table from sheets backend")
	return rows, nil
}

// WriteTable replaces the contents of the worksheet named key, creating the
// worksheet when it does not exist yet.
func (s *SheetsBackend) WriteTable(ctx context.Context, key string, rows [][]string) error {
	if err := s.ensureSheet(ctx, key); err != nil {
		return err
	}

	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, sheetRange(key), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: clearing worksheet %s: %v", ErrUnavailable, key, err)
	}

	if len(rows) == 0 {
		return nil
	}

	body := &sheets.ValueRange{Values: toInterfaceRows(rows)}
	_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, sheetRange(key)+"!A1", body).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: updating worksheet %s: %v", ErrUnavailable, key, err)
	}

	log.WithField(logging.FieldKey, key).WithField(logging.FieldCount, len(rows)).
		Debug("Wrote table to sheets backend")
	return nil
}

// ReadConfig returns the blob stored under name in the config worksheet.
func (s *SheetsBackend) ReadConfig(ctx context.Context, name string) ([]byte, error) {
	rows, err := s.ReadTable(ctx, configSheet)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if len(row) >= 2 && row[0] == name {
			return []byte(row[1]), nil
		}
	}
	return nil, ErrNotFound
}

// WriteConfig upserts the blob stored under name in the config worksheet.
func (s *SheetsBackend) WriteConfig(ctx context.Context, name string, data []byte) error {
	rows, err := s.ReadTable(ctx, configSheet)
	if err != nil && !IsNotFound(err) {
		return err
	}

	if len(rows) == 0 {
		rows = [][]string{{"key", "value"}}
	}

	replaced := false
	for i, row := range rows {
		if len(row) >= 1 && row[0] == name {
			rows[i] = []string{name, string(data)}
			replaced = true
			break
		}
	}
	if !replaced {
		rows = append(rows, []string{name, string(data)})
	}

	return s.WriteTable(ctx, configSheet, rows)
}

// ensureSheet creates the worksheet named title when it is missing.
func (s *SheetsBackend) ensureSheet(ctx context.Context, title string) error {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: fetching spreadsheet metadata: %v", ErrUnavailable, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return nil
		}
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, request).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: creating worksheet %s: %v", ErrUnavailable, title, err)
	}

	log.WithField(logging.FieldKey, title).Info("Created worksheet")
	return nil
}

// sheetRange quotes a worksheet title as an A1 range covering the whole sheet.
func sheetRange(title string) string {
	return fmt.Sprintf("'%s'", title)
}

// readError maps a Values.Get failure: an unknown worksheet reads as
// ErrNotFound, anything else as ErrUnavailable.
func readError(err error, key string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == 400 || apiErr.Code == 404) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: reading worksheet %s: %v", ErrUnavailable, key, err)
}

func toStringRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		rows[i] = cells
	}
	return rows
}

func toInterfaceRows(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}
	return values
}
