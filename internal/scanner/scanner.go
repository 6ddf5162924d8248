// Package scanner finds statement files on disk for batch ingestion.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pvillar/hogarfin/internal/factory"
	"pvillar/hogarfin/internal/logging"
)

// StatementScanner locates ingestible statement files.
type StatementScanner struct {
	logger logging.Logger
}

// NewStatementScanner creates a scanner.
func NewStatementScanner(logger logging.Logger) *StatementScanner {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &StatementScanner{logger: logger}
}

// Scan walks dir and returns the statement files found, sorted by path.
// Files whose extension no parser claims are skipped; hidden files and
// directories are ignored.
func (s *StatementScanner) Scan(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.WithError(err).WithFields(
				logging.Field{Key: logging.FieldFile, Value: path},
			).Warn("Skipping unreadable path")
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, err := factory.TypeForFile(path); err != nil {
			s.logger.WithFields(
				logging.Field{Key: logging.FieldFile, Value: d.Name()},
			).Debug("Skipping non-statement file")
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}

	sort.Strings(files)
	s.logger.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(files)},
	).Info("Scanned statement directory")
	return files, nil
}
