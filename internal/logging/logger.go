// Package logging is the structured logger used by both binaries. The only
// implementation wraps log/slog; see New and Nop.
package logging

import "context"

// Logger takes a message plus alternating key/value attributes:
//
//	log.Info(ctx, "signup finished", "step", "logging-in", "success", false)
//
// Tokens and passwords must never be passed as attributes.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that adds args to every record.
	With(args ...any) Logger
}
