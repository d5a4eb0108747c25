// Package log provides Logger adapters: a no-op default and a zerolog
// implementation for embedders and the CLI.
package log

import "github.com/textdrop/textdrop/internal/ports"

// NoopLogger discards all log messages. Used as the default when no logger
// is configured.
type NoopLogger struct{}

// NewNoopLogger creates a logger that discards all messages.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (*NoopLogger) Debug(msg string, fields ...ports.Field) {}
func (*NoopLogger) Info(msg string, fields ...ports.Field)  {}
func (*NoopLogger) Warn(msg string, fields ...ports.Field)  {}
func (*NoopLogger) Error(msg string, fields ...ports.Field) {}
