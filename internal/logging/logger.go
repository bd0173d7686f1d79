// Package logging provides the logging abstraction used across pfma.
// Packages depend on the Logger interface; the logrus-backed adapter is
// wired once by the container.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger defines structured logging for the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger
	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger
	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

var defaultLogger = logrus.New()

// GetLogger returns the process-wide logrus instance used before the
// container has been built (main, root command bootstrap).
func GetLogger() *logrus.Logger {
	return defaultLogger
}

// SetAllLogLevels applies level to the global logrus logger and to the
// process-wide default instance.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	defaultLogger.SetLevel(level)
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
