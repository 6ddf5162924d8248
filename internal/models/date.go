package models

import (
	"encoding/json"
	"fmt"
	"time"

	"pvillar/hogarfin/internal/dateutils"
)

// ISODate is a calendar date that serializes as YYYY-MM-DD. Statement rows
// carry no meaningful time-of-day, so the zero clock is used throughout.
type ISODate struct {
	time.Time
}

// NewISODate builds an ISODate from a year, month and day.
func NewISODate(year int, month time.Month, day int) ISODate {
	return ISODate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) ISODate {
	return ISODate{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ISO returns the date in YYYY-MM-DD form.
func (d ISODate) ISO() string {
	return d.Format(dateutils.DateLayoutISO)
}

// MarshalCSV implements the gocsv field marshaller.
func (d ISODate) MarshalCSV() (string, error) {
	return d.ISO(), nil
}

// UnmarshalCSV implements the gocsv field unmarshaller. Any accepted
// statement layout is recognized, not just the ISO form.
func (d *ISODate) UnmarshalCSV(value string) error {
	parsed, _, err := dateutils.ParseDate(value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value, err)
	}
	*d = DateOf(parsed)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d ISODate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ISO())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *ISODate) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	return d.UnmarshalCSV(value)
}
