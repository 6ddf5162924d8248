// Package fileutils provides the file operations shared by the CLI commands.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"

	"pvillar/hogarfin/internal/models"
)

// FileExists checks if a file exists and is not a directory.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist.
func EnsureDirectoryExists(dirPath string) error {
	if DirectoryExists(dirPath) {
		return nil
	}
	if err := os.MkdirAll(dirPath, models.PermissionDirectory); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteReport writes a rendered report to path, creating parent directories
// as needed. Reports are world-readable, unlike config files.
func WriteReport(path string, data []byte) error {
	if err := EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
