package history_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/internal/history"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/storage"
)

const testKey = "a1b2c3d4_pablo"

func newRepository() (*history.Repository, *storage.MemoryBackend) {
	backend := storage.NewMemoryBackend()
	return history.NewRepository(backend, &logging.MockLogger{}), backend
}

func sampleHistory() []models.Transaction {
	return []models.Transaction{
		{
			Date:        models.NewISODate(2025, 1, 15),
			Description: "MERCADONA VALENCIA",
			Amount:      decimal.RequireFromString("-45.67"),
			CardSuffix:  "*1234",
			Category:    models.CategoryGroceries,
			SourceUser:  "pablo",
		},
		{
			Date:        models.NewISODate(2025, 1, 16),
			Description: "NOMINA ENERO",
			Amount:      decimal.RequireFromString("1234.56"),
			Category:    models.CategoryIncome,
			SourceUser:  "pablo",
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	repo, _ := newRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testKey, sampleHistory()))

	loaded, err := repo.Load(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "2025-01-15", loaded[0].Date.ISO())
	assert.Equal(t, "MERCADONA VALENCIA", loaded[0].Description)
	assert.Equal(t, "-45.67", loaded[0].Amount.StringFixed(2))
	assert.Equal(t, "*1234", loaded[0].CardSuffix)
	assert.Equal(t, models.CategoryGroceries, loaded[0].Category)
	assert.Equal(t, "pablo", loaded[0].SourceUser)

	// Identity keys survive the round trip, so re-imports keep deduplicating.
	assert.Equal(t, sampleHistory()[0].IdentityKey(), loaded[0].IdentityKey())
	assert.Equal(t, sampleHistory()[1].IdentityKey(), loaded[1].IdentityKey())
}

func TestLoadUnknownKeyIsEmpty(t *testing.T) {
	repo, _ := newRepository()

	loaded, err := repo.Load(context.Background(), "never_written")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveWritesCanonicalHeader(t *testing.T) {
	repo, backend := newRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testKey, sampleHistory()))

	rows, err := backend.ReadTable(ctx, testKey)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, models.CanonicalHeader(), rows[0])
	assert.Len(t, rows, 3)
}

func TestSaveEmptyHistoryKeepsHeader(t *testing.T) {
	repo, backend := newRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testKey, nil))

	rows, err := backend.ReadTable(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, [][]string{models.CanonicalHeader()}, rows)
}

func TestLoadCorruptRowFails(t *testing.T) {
	repo, backend := newRepository()
	ctx := context.Background()

	require.NoError(t, backend.WriteTable(ctx, testKey, [][]string{
		models.CanonicalHeader(),
		{"not-a-date", "MERCADONA", "-45.67", "", "", "pablo"},
	}))

	_, err := repo.Load(ctx, testKey)
	assert.Error(t, err)
}

func TestStorageErrorsPropagate(t *testing.T) {
	repo, backend := newRepository()
	backend.ReadTableError = storage.ErrUnavailable

	_, err := repo.Load(context.Background(), testKey)
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	backend.ReadTableError = nil
	backend.WriteTableError = storage.ErrUnavailable
	err = repo.Save(context.Background(), testKey, sampleHistory())
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}
