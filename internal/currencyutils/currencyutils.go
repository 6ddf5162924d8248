// Package currencyutils parses and formats statement amounts. Statement
// exports use the Spanish convention: "." as thousands separator, "," as
// decimal separator, optional EUR suffix ("3.980,53EUR", "-36,00 EUR").
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var (
	symbolRun = regexp.MustCompile(`[€\s]`)
	eurSuffix = regexp.MustCompile(`(?i)EUR$`)
)

// ParseAmount parses a statement amount string into a decimal value.
// Handles "1.234,56 EUR", "-20,37EUR", "-45,67", "1234.56".
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// StandardizeAmount converts a locale-formatted amount string into the plain
// decimal form decimal.NewFromString accepts. Currency markers and whitespace
// are stripped first; when a comma is present, dots are thousands separators
// and the comma is the decimal separator. Without a comma the string is
// assumed to already use a decimal point.
func StandardizeAmount(amountStr string) string {
	amountStr = symbolRun.ReplaceAllString(amountStr, "")
	amountStr = eurSuffix.ReplaceAllString(amountStr, "")

	if strings.Contains(amountStr, ",") {
		amountStr = strings.ReplaceAll(amountStr, ".", "")
		amountStr = strings.ReplaceAll(amountStr, ",", ".")
	}

	return amountStr
}

// FormatAmount formats a decimal amount for display with two decimal places
// and the euro sign, e.g. "€1234.56".
func FormatAmount(amount decimal.Decimal) string {
	return "€" + amount.StringFixed(2)
}
