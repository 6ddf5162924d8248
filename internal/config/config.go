// Package config loads environment variables and the application
// configuration.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Logger used before the configured one exists.
	Logger = logrus.New()
)

// LoadEnv loads environment variables from a .env file if one exists. Safe
// to call more than once; only the first call does anything.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				Logger.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Infof("Loaded environment variables from %s", envFile)
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set.
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

// GetGeminiAPIKey returns the Gemini API key from environment variables.
func GetGeminiAPIKey() string {
	return GetEnv("GEMINI_API_KEY", "")
}

// DefaultDataDirectory returns the fallback data directory for the file
// backend when none is configured: ~/.hogarfin/data.
func DefaultDataDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hogarfin", "data")
	}
	return filepath.Join(home, ".hogarfin", "data")
}
