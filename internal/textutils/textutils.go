// Package textutils provides text normalization utilities shared by the
// statement parsers, the categorizer and the dedup key derivation.
package textutils

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanDescription trims a description and collapses internal whitespace runs
// to a single space. Statement exports pad concept fields with arbitrary runs
// of spaces and tabs.
func CleanDescription(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeKey folds a description into the canonical lookup key: cleaned as
// by CleanDescription, then lower-cased. Learned-mapping lookups and identity
// keys must use the exact same folding or corrections stop re-applying.
func NormalizeKey(s string) string {
	return strings.ToLower(CleanDescription(s))
}

// IsBlank reports whether a value is empty once cleaned. Statement files
// carry separator and metadata lines whose description cells are blank.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
