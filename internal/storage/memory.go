package storage

import (
	"context"
	"sync"
)

// MemoryBackend is an in-memory Backend for testing. Error fields force the
// corresponding operations to fail, for exercising unavailable-storage paths.
type MemoryBackend struct {
	mu      sync.Mutex
	tables  map[string][][]string
	configs map[string][]byte

	// Error flags for testing error conditions
	ReadTableError   error
	WriteTableError  error
	ReadConfigError  error
	WriteConfigError error

	// WriteCount tracks the number of successful writes (tables + configs).
	WriteCount int
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		tables:  make(map[string][][]string),
		configs: make(map[string][]byte),
	}
}

// ReadTable returns a copy of the rows stored under key.
func (m *MemoryBackend) ReadTable(ctx context.Context, key string) ([][]string, error) {
	if m.ReadTableError != nil {
		return nil, m.ReadTableError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRows(rows), nil
}

// WriteTable replaces the rows stored under key.
func (m *MemoryBackend) WriteTable(ctx context.Context, key string, rows [][]string) error {
	if m.WriteTableError != nil {
		return m.WriteTableError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables[key] = copyRows(rows)
	m.WriteCount++
	return nil
}

// ReadConfig returns a copy of the named config blob.
func (m *MemoryBackend) ReadConfig(ctx context.Context, name string) ([]byte, error) {
	if m.ReadConfigError != nil {
		return nil, m.ReadConfigError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.configs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// WriteConfig replaces the named config blob.
func (m *MemoryBackend) WriteConfig(ctx context.Context, name string, data []byte) error {
	if m.WriteConfigError != nil {
		return m.WriteConfigError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.configs[name] = append([]byte(nil), data...)
	m.WriteCount++
	return nil
}

// Keys returns the table keys that have been written.
func (m *MemoryBackend) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.tables))
	for k := range m.tables {
		keys = append(keys, k)
	}
	return keys
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
