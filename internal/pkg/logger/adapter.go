package logger

import "block_scanner/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level logging functions,
// so services can take a port.Logger while sharing the global handler.
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter creates a new port.Logger backed by the global slog logger.
func NewSlogAdapter(attrs ...any) port.Logger {
	return &slogAdapter{attrs: attrs}
}

func (a *slogAdapter) with(args []any) []any {
	if len(a.attrs) == 0 {
		return args
	}
	return append(append([]any{}, a.attrs...), args...)
}

// Info logs an informational message.
func (a *slogAdapter) Info(msg string, args ...any) { Info(msg, a.with(args)...) }

// Debug logs a debug message.
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, a.with(args)...) }

// Warn logs a warning.
func (a *slogAdapter) Warn(msg string, args ...any) { Warn(msg, a.with(args)...) }

// Error logs an error.
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, a.with(args)...) }
