// Package tenant derives the storage namespace for accounts and their data
// users. Derivation is deterministic and salt-free: the same identifier
// always maps to the same key, on any machine, so independently running
// sessions agree on where an account's data lives.
package tenant

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"pvillar/hogarfin/internal/textutils"
)

// AccountKeyLength is the length of the hex account key.
const AccountKeyLength = 8

// mappingSuffix names the per-account learned mapping blob.
const mappingSuffix = "category_mapping"

// AccountKey derives the fixed-length key that partitions one account's data
// within shared storage. The identifier is case-folded before hashing, so
// "Pablo@example.com" and "pablo@example.com" are the same account.
func AccountKey(identifier string) string {
	normalized := strings.ToLower(strings.TrimSpace(identifier))
	sum := md5.Sum([]byte(normalized))
	return hex.EncodeToString(sum[:])[:AccountKeyLength]
}

// DataUserID converts a household member's display name into the identifier
// used in storage keys: lowercase, spaces become underscores, and anything
// that is not a letter, digit or underscore is dropped.
func DataUserID(name string) string {
	id := strings.ReplaceAll(textutils.NormalizeKey(name), " ", "_")

	var b strings.Builder
	for _, r := range id {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DataKey returns the storage key holding one data user's transaction set.
func DataKey(accountKey, dataUserID string) string {
	return fmt.Sprintf("%s_%s", accountKey, dataUserID)
}

// MappingKey returns the storage key holding one account's learned category
// mappings.
func MappingKey(accountKey string) string {
	return fmt.Sprintf("%s_%s", accountKey, mappingSuffix)
}

// ConflictError reports that a new data-user name slugs to an identifier
// already taken within the account. Distinct people must never share a
// storage namespace silently.
type ConflictError struct {
	Name     string // the name being added
	Existing string // the name already holding the identifier
	ID       string // the contested identifier
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("data user %q conflicts with existing %q (both resolve to %q)",
		e.Name, e.Existing, e.ID)
}
