// Package logging defines the structured-logging interface used across
// PromptKeeper. The default implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Warn(ctx, "save failed, keeping in-memory snapshot", "key", key, "err", err)
type Logger interface {
	// Debug logs diagnostic detail (storage keys, blob sizes).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a recoverable condition, such as a failed save or a
	// malformed stored blob.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
