package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Negative with suffix no space", "-20,37EUR", decimal.NewFromFloat(-20.37), false},
		{"Thousands with suffix and space", "1.234,56 EUR", decimal.NewFromFloat(1234.56), false},
		{"Negative cents with suffix", "-45,67EUR", decimal.NewFromFloat(-45.67), false},
		{"Bank format large amount", "3.980,53EUR", decimal.NewFromFloat(3980.53), false},
		{"Lowercase suffix", "-36,00eur", decimal.NewFromFloat(-36), false},
		{"Euro sign prefix", "€123,45", decimal.NewFromFloat(123.45), false},
		{"Comma decimal no suffix", "123,45", decimal.NewFromFloat(123.45), false},
		{"Plain decimal point", "1234.56", decimal.NewFromFloat(1234.56), false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"Multiple thousands groups", "1.234.567,89", decimal.NewFromFloat(1234567.89), false},
		{"Internal spaces", " 1.234,56 ", decimal.NewFromFloat(1234.56), false},
		{"Empty string", "", decimal.Zero, true},
		{"Whitespace only", "   ", decimal.Zero, true},
		{"Suffix only", "EUR", decimal.Zero, true},
		{"Non-numeric", "abc,12", decimal.Zero, true},
		{"Garbage with comma", "12,34,56", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
			}
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Suffix stripped", "-36,00EUR", "-36.00"},
		{"Suffix with space", "1.234,56 EUR", "1234.56"},
		{"Euro sign", "€1.234,56", "1234.56"},
		{"Comma decimal", "123,45", "123.45"},
		{"Dot kept without comma", "123.45", "123.45"},
		{"European multiple separators", "1.234.567,89", "1234567.89"},
		{"Spaces stripped", "  123,45  ", "123.45"},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "€1234.56", FormatAmount(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "€-20.37", FormatAmount(decimal.NewFromFloat(-20.37)))
	assert.Equal(t, "€0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "€100.00", FormatAmount(decimal.NewFromInt(100)))
}

// The parser and the display formatter must agree for re-imported exports.
func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{"-20,37EUR", "1.234,56 EUR", "-45,67EUR"}
	for _, in := range inputs {
		parsed, err := ParseAmount(in)
		assert.NoError(t, err)

		reparsed, err := ParseAmount(FormatAmount(parsed))
		assert.NoError(t, err)
		assert.True(t, parsed.Equal(reparsed))
	}
}
