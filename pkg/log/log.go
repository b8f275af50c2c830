// Package log provides structured logging for the contact CLI and client.
package log

import (
	"log/slog"
	"os"
)

var logger *slog.Logger

func init() {
	// Diagnostics go to stderr so notices on stdout stay readable.
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
	logger = slog.New(handler)
}

// levelFromEnv reads CONTACT_LOG_LEVEL (debug, info, warn, error).
func levelFromEnv() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("CONTACT_LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SetLogger allows setting a custom logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
