// Package validation checks CLI inputs before work starts.
package validation

import (
	"fmt"
	"os"

	"pvillar/hogarfin/internal/factory"
)

// ValidateInputFile checks that path is an existing regular file of a
// supported statement type.
func ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory, expected a statement file: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input is not a regular file: %s", path)
	}
	if _, err := factory.TypeForFile(path); err != nil {
		return err
	}
	return nil
}

// ValidateDirectory checks that path is an existing directory.
func ValidateDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", path)
	}
	return nil
}

// ValidateOutputFormat checks that format is a supported report format.
func ValidateOutputFormat(format string) error {
	switch format {
	case "json", "xml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'xml'", format)
	}
}
