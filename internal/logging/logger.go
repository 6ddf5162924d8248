// Package logging provides a logging abstraction layer that decouples the application
// from specific logging frameworks. This allows for easier testing and flexibility
// in choosing logging implementations.
package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for structured logging throughout the application.
// Implementations should provide structured logging with support for fields and error context.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging.
// Fields provide context to log messages without cluttering the message text.
type Field struct {
	Key   string
	Value interface{}
}

var (
	registryMu sync.Mutex
	registry   []*logrus.Logger
	rootLogger *logrus.Logger
)

// GetLogger returns the shared root logrus logger. Packages that keep a
// package-level logger initialize it from here and expose SetLogger so the
// root command can rewire them after configuration is loaded.
func GetLogger() *logrus.Logger {
	registryMu.Lock()
	defer registryMu.Unlock()
	if rootLogger == nil {
		rootLogger = logrus.New()
		rootLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		registry = append(registry, rootLogger)
	}
	return rootLogger
}

// Register adds a logger to the set affected by SetAllLogLevels.
func Register(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, logger)
}

// SetAllLogLevels applies a level to the root logger and every registered logger.
// Called once at startup before subcommands construct their own loggers.
func SetAllLogLevels(level logrus.Level) {
	GetLogger()
	registryMu.Lock()
	defer registryMu.Unlock()
	for _, l := range registry {
		l.SetLevel(level)
	}
	logrus.SetLevel(level)
}
