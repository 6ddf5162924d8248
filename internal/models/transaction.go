// Package models provides the data structures used throughout the application.
package models

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/shopspring/decimal"

	"pvillar/hogarfin/internal/textutils"
)

// Transaction represents one normalized bank statement row. Amount is signed:
// negative for money out, positive for money in.
type Transaction struct {
	Date        ISODate         `csv:"Date"`
	Description string          `csv:"Concept"`
	Amount      decimal.Decimal `csv:"Amount"`
	CardSuffix  string          `csv:"Card"`
	Category    string          `csv:"Category"`
	SourceUser  string          `csv:"SourceUser"`
}

// CanonicalHeader is the column order used by stored worksheets and exports.
func CanonicalHeader() []string {
	return []string{"Date", "Concept", "Amount", "Card", "Category", "SourceUser"}
}

// IdentityKey returns the fingerprint identifying one real-world transaction.
// Two rows with equal normalized description, date, amount, card suffix and
// source user produce the same key, so re-importing a statement file finds
// its rows already present.
func (t *Transaction) IdentityKey() string {
	parts := []string{
		textutils.NormalizeKey(t.Description),
		t.Date.ISO(),
		t.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(t.CardSuffix)),
		textutils.NormalizeKey(t.SourceUser),
	}
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// IsIncome reports whether the transaction is money coming in.
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the transaction is money going out.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// IsCategorized reports whether a category other than the fallback has been
// assigned.
func (t *Transaction) IsCategorized() bool {
	return t.Category != "" && t.Category != CategoryUncategorized
}

// MonthKey returns the YYYY-MM grouping key of the transaction date.
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}
