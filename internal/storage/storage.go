// Package storage abstracts where account data lives. A Backend stores
// tabular worksheets (transaction sets, the accounts registry) and small
// config blobs (learned mappings, budgets) under opaque keys; callers never
// see file paths or spreadsheet coordinates. Local files and a shared Google
// spreadsheet are interchangeable behind the same interface.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound reports that a key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnavailable reports that the backend cannot be reached. Callers see it
// unmodified; no retry happens at this layer.
var ErrUnavailable = errors.New("storage: backend unavailable")

// Backend is the storage collaborator that transaction history, the accounts
// registry and the learned mapping store sit on.
type Backend interface {
	// ReadTable returns the rows stored under key, header row included.
	// Returns ErrNotFound when the key has never been written.
	ReadTable(ctx context.Context, key string) ([][]string, error)

	// WriteTable replaces the rows stored under key.
	WriteTable(ctx context.Context, key string, rows [][]string) error

	// ReadConfig returns the named config blob. Returns ErrNotFound when
	// the blob has never been written.
	ReadConfig(ctx context.Context, name string) ([]byte, error)

	// WriteConfig replaces the named config blob.
	WriteConfig(ctx context.Context, name string, data []byte) error
}

// IsNotFound reports whether err means the key was never written.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err means the backend could not be reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
