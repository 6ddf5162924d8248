package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnvKeys = []string{
	"HOGARFIN_LOG_LEVEL",
	"HOGARFIN_LOG_FORMAT",
	"HOGARFIN_CSV_DELIMITER",
	"HOGARFIN_ACCOUNT_EMAIL",
	"HOGARFIN_ACCOUNT_DATA_USER",
	"HOGARFIN_STORAGE_BACKEND",
	"HOGARFIN_STORAGE_DATA_DIRECTORY",
	"HOGARFIN_STORAGE_SPREADSHEET_ID",
	"HOGARFIN_AI_ENABLED",
	"HOGARFIN_AI_MODEL",
	"GEMINI_API_KEY",
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range testEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitializeConfigDefaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "file", config.Storage.Backend)
	assert.Empty(t, config.Storage.DataDirectory)
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-flash", config.AI.Model)
	assert.Empty(t, config.Account.Email)
}

func TestInitializeConfigEnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("HOGARFIN_LOG_LEVEL", "debug")
	t.Setenv("HOGARFIN_LOG_FORMAT", "json")
	t.Setenv("HOGARFIN_ACCOUNT_EMAIL", "casa@example.com")
	t.Setenv("HOGARFIN_ACCOUNT_DATA_USER", "pablo")
	t.Setenv("HOGARFIN_AI_ENABLED", "true")
	t.Setenv("GEMINI_API_KEY", "test-api-key")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "casa@example.com", config.Account.Email)
	assert.Equal(t, "pablo", config.Account.DataUser)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfigInvalidLogLevel(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOGARFIN_LOG_LEVEL", "verbose")

	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "invalid log level")
}

func TestInitializeConfigInvalidLogFormat(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOGARFIN_LOG_FORMAT", "yaml")

	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "invalid log format")
}

func TestInitializeConfigInvalidDelimiter(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOGARFIN_CSV_DELIMITER", ";;")

	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "delimiter")
}

func TestInitializeConfigSheetsBackendNeedsSpreadsheet(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOGARFIN_STORAGE_BACKEND", "sheets")

	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "spreadsheet_id")

	t.Setenv("HOGARFIN_STORAGE_SPREADSHEET_ID", "sheet-123")
	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "sheets", config.Storage.Backend)
}

func TestInitializeConfigUnknownBackend(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOGARFIN_STORAGE_BACKEND", "dynamo")

	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "invalid storage backend")
}

func TestInitializeConfigAIRequiresKey(t *testing.T) {
	clearTestEnvVars(t)
	t.Setenv("HOGARFIN_AI_ENABLED", "true")

	_, err := InitializeConfig()
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	logger := ConfigureLoggingFromConfig(config)
	assert.Equal(t, "info", logger.GetLevel().String())

	config.Log.Level = "debug"
	config.Log.Format = "json"
	logger = ConfigureLoggingFromConfig(config)
	assert.Equal(t, "debug", logger.GetLevel().String())
}

func TestDefaultDataDirectory(t *testing.T) {
	dir := DefaultDataDirectory()
	assert.Contains(t, dir, filepath.Join(".hogarfin", "data"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("HOGARFIN_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnv("HOGARFIN_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HOGARFIN_TEST_MISSING", "fallback"))
}
