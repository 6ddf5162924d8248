package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// FileBackend stores tables as CSV files and config blobs as JSON files
// under a single root directory. Layout:
//
//	<root>/data/<key>.csv
//	<root>/config/<name>.json
type FileBackend struct {
	root string
}

// NewFileBackend creates a backend rooted at dir. The directory tree is
// created on first write, not here.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{root: dir}
}

// Root returns the backend's root directory.
func (f *FileBackend) Root() string {
	return f.root
}

func (f *FileBackend) tablePath(key string) string {
	return filepath.Join(f.root, "data", key+".csv")
}

func (f *FileBackend) configPath(name string) string {
	return filepath.Join(f.root, "config", name+".json")
}

// ReadTable returns the rows stored under key, header row included.
func (f *FileBackend) ReadTable(ctx context.Context, key string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := f.tablePath(key)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnavailable, path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldKey:   key,
		logging.FieldCount: len(rows),
	}).Debug("Read table from file backend")
	return rows, nil
}

// WriteTable replaces the rows stored under key.
func (f *FileBackend) WriteTable(ctx context.Context, key string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := f.tablePath(key)
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("%w: creating data directory: %v", ErrUnavailable, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrUnavailable, path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: writing %s: %v", ErrUnavailable, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrUnavailable, path, err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldKey:   key,
		logging.FieldCount: len(rows),
	}).Debug("Wrote table to file backend")
	return nil
}

// ReadConfig returns the named config blob.
func (f *FileBackend) ReadConfig(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := f.configPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}
	return data, nil
}

// WriteConfig replaces the named config blob.
func (f *FileBackend) WriteConfig(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := f.configPath(name)
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("%w: creating config directory: %v", ErrUnavailable, err)
	}

	if err := os.WriteFile(path, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrUnavailable, path, err)
	}

	log.WithField(logging.FieldKey, name).Debug("Wrote config to file backend")
	return nil
}
