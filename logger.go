package linkcore

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with linkcore-specific context.
// This provides structured logging with consistent field names across
// matching and grouping operations.
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
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithK adds a k (top-k count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// WithThreshold adds a similarity threshold field to the logger.
func (l *Logger) WithThreshold(threshold float64) *Logger {
	return &Logger{Logger: l.Logger.With("threshold", threshold)}
}

// WithMergeThreshold adds a merge threshold field to the logger.
func (l *Logger) WithMergeThreshold(threshold float64) *Logger {
	return &Logger{Logger: l.Logger.With("merge_threshold", threshold)}
}

// LogMatch logs a top-k matching operation.
func (l *Logger) LogMatch(ctx context.Context, k, candidates, results int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "match failed",
			"k", k,
			"candidates", candidates,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "match completed",
		"k", k,
		"candidates", candidates,
		"results", results,
		"duration", duration,
	)
}

// LogAddEdge logs a single grouping edge addition.
func (l *Logger) LogAddEdge(ctx context.Context, merged bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add edge failed", "error", err)
		return
	}
	l.DebugContext(ctx, "edge added", "merged", merged, "duration", duration)
}

// LogMerge logs a group merge triggered by completion ratio admission.
func (l *Logger) LogMerge(ctx context.Context, absorbedSize, survivorSize int) {
	l.InfoContext(ctx, "groups merged",
		"absorbed_size", absorbedSize,
		"survivor_size", survivorSize,
	)
}
