package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/internal/validation"
)

func TestValidateInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	statement := filepath.Join(tmpDir, "enero.csv")
	require.NoError(t, os.WriteFile(statement, []byte("x"), 0600))

	assert.NoError(t, validation.ValidateInputFile(statement))
	assert.Error(t, validation.ValidateInputFile(filepath.Join(tmpDir, "missing.csv")))
	assert.Error(t, validation.ValidateInputFile(tmpDir))

	// Supported statement extensions only.
	notes := filepath.Join(tmpDir, "notas.txt")
	require.NoError(t, os.WriteFile(notes, []byte("x"), 0600))
	assert.Error(t, validation.ValidateInputFile(notes))
}

func TestValidateDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	statement := filepath.Join(tmpDir, "enero.csv")
	require.NoError(t, os.WriteFile(statement, []byte("x"), 0600))

	assert.NoError(t, validation.ValidateDirectory(tmpDir))
	assert.Error(t, validation.ValidateDirectory(filepath.Join(tmpDir, "missing")))
	assert.Error(t, validation.ValidateDirectory(statement))
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validation.ValidateOutputFormat("json"))
	assert.NoError(t, validation.ValidateOutputFormat("xml"))
	assert.Error(t, validation.ValidateOutputFormat("csv"))
	assert.Error(t, validation.ValidateOutputFormat(""))
}
