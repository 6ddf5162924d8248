// Package dateutils provides the date parsing and calendar helpers used
// throughout the application. Statement dates arrive day-first (DD/MM/YYYY
// is the bank's standard); stored dates are ISO.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutStatement = "02/01/2006"
	DateLayoutDashed    = "02-01-2006"
)

// StatementFormats is the ordered list of layouts tried when parsing a
// statement date. Day-first layouts come first; a date like "02/03/2024"
// is the 2nd of March, not the 3rd of February.
var StatementFormats = []string{
	DateLayoutStatement,
	DateLayoutDashed,
	DateLayoutISO,
	"02/01/06",
	"02-01-06",
	"2/1/2006",
	"2-1-2006",
}

// spanishMonths maps abbreviated Spanish month names to month numbers, for
// statement formats that spell dates like "01 dic 2025".
var spanishMonths = map[string]time.Month{
	"ene": time.January,
	"feb": time.February,
	"mar": time.March,
	"abr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dic": time.December,
}

// ParseDate attempts to parse a statement date string, trying each accepted
// layout in order. Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range StatementFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseSpanishMonthDate parses dates of the form "01 dic 2025" as produced
// by Trade Republic statements. Month names are matched on their first three
// letters, case-insensitive.
func ParseSpanishMonthDate(dateStr string) (time.Time, error) {
	parts := strings.Fields(CleanDateString(dateStr))
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("not a day-month-year date: %s", dateStr)
	}

	name := strings.ToLower(parts[1])
	if len(name) > 3 {
		name = name[:3]
	}
	month, ok := spanishMonths[name]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown month name in date: %s", dateStr)
	}

	normalized := fmt.Sprintf("%s/%02d/%s", parts[0], int(month), parts[2])
	t, err := time.Parse("2/01/2006", normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
	}
	return t, nil
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// MonthKey returns the YYYY-MM grouping key for a date, used by summaries
// and budget windows.
func MonthKey(date time.Time) string {
	return date.Format("2006-01")
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	// Normalize dates to remove time component
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	} else {
		return 0
	}
}
