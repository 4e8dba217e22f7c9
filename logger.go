package stargo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with stargo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRoute adds start and goal fields to the logger.
func (l *Logger) WithRoute(start, goal string) *Logger {
	return &Logger{
		Logger: l.Logger.With("start", start, "goal", goal),
	}
}

// WithSource adds a snapshot source field to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// LogSnapshotLoad logs a snapshot load operation.
func (l *Logger) LogSnapshotLoad(ctx context.Context, source string, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"source", source,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot loaded",
			"source", source,
			"systems", count,
		)
	}
}

// LogIndexBuild logs spatial index construction.
func (l *Logger) LogIndexBuild(ctx context.Context, fuel, neutron int) {
	l.InfoContext(ctx, "spatial indexes built",
		"fuel_systems", fuel,
		"neutron_systems", neutron,
	)
}

// LogAliasResolve logs an alias resolution.
func (l *Logger) LogAliasResolve(ctx context.Context, label, name string) {
	if label != name {
		l.DebugContext(ctx, "alias resolved",
			"label", label,
			"system", name,
		)
	}
}

// LogPlan logs a route planning operation.
func (l *Logger) LogPlan(ctx context.Context, start, goal string, hops int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "plan failed",
			"start", start,
			"goal", goal,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "plan completed",
			"start", start,
			"goal", goal,
			"hops", hops,
		)
	}
}
