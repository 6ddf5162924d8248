package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/internal/storage"
)

func TestFileBackendTableRoundTrip(t *testing.T) {
	backend := storage.NewFileBackend(t.TempDir())
	ctx := context.Background()

	rows := [][]string{
		{"Date", "Concept", "Amount", "Card", "Category", "SourceUser"},
		{"2024-01-15", "COMPRA MERCADONA", "-45.67", "1234", "Groceries", "pablo"},
		{"2024-01-16", "NOMINA ENERO", "1800.00", "", "Income", "pablo"},
	}

	require.NoError(t, backend.WriteTable(ctx, "a1b2c3d4_pablo", rows))

	got, err := backend.ReadTable(ctx, "a1b2c3d4_pablo")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestFileBackendReadMissingTable(t *testing.T) {
	backend := storage.NewFileBackend(t.TempDir())

	_, err := backend.ReadTable(context.Background(), "never_written")
	assert.True(t, storage.IsNotFound(err))
}

func TestFileBackendOverwriteTable(t *testing.T) {
	backend := storage.NewFileBackend(t.TempDir())
	ctx := context.Background()

	require.NoError(t, backend.WriteTable(ctx, "k", [][]string{{"a"}, {"b"}}))
	require.NoError(t, backend.WriteTable(ctx, "k", [][]string{{"c"}}))

	got, err := backend.ReadTable(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"c"}}, got)
}

func TestFileBackendConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	backend := storage.NewFileBackend(dir)
	ctx := context.Background()

	blob := []byte(`{"learned_mappings":{"recibo netflix":"Subscriptions"}}`)
	require.NoError(t, backend.WriteConfig(ctx, "a1b2c3d4_category_mapping", blob))

	got, err := backend.ReadConfig(ctx, "a1b2c3d4_category_mapping")
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	info, err := os.Stat(filepath.Join(dir, "config", "a1b2c3d4_category_mapping.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileBackendReadMissingConfig(t *testing.T) {
	backend := storage.NewFileBackend(t.TempDir())

	_, err := backend.ReadConfig(context.Background(), "nope")
	assert.True(t, storage.IsNotFound(err))
}

func TestFileBackendCancelledContext(t *testing.T) {
	backend := storage.NewFileBackend(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := backend.ReadTable(ctx, "k")
	assert.Error(t, err)
	assert.False(t, storage.IsNotFound(err))
}

func TestMemoryBackendRoundTrip(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ctx := context.Background()

	rows := [][]string{{"h1", "h2"}, {"a", "b"}}
	require.NoError(t, backend.WriteTable(ctx, "k", rows))

	got, err := backend.ReadTable(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	// Mutating the returned copy must not affect stored data.
	got[1][0] = "mutated"
	again, err := backend.ReadTable(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "a", again[1][0])

	assert.Equal(t, []string{"k"}, backend.Keys())
	assert.Equal(t, 1, backend.WriteCount)
}

func TestMemoryBackendErrorInjection(t *testing.T) {
	backend := storage.NewMemoryBackend()
	backend.ReadTableError = storage.ErrUnavailable

	_, err := backend.ReadTable(context.Background(), "k")
	assert.True(t, storage.IsUnavailable(err))

	backend.WriteConfigError = storage.ErrUnavailable
	err = backend.WriteConfig(context.Background(), "c", []byte("{}"))
	assert.True(t, storage.IsUnavailable(err))
}

func TestMemoryBackendMissingKeys(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ctx := context.Background()

	_, err := backend.ReadTable(ctx, "missing")
	assert.True(t, storage.IsNotFound(err))

	_, err = backend.ReadConfig(ctx, "missing")
	assert.True(t, storage.IsNotFound(err))
}
