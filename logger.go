package stellarrec

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with service-specific helpers.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithStudent adds a student ID field to the logger.
func (l *Logger) WithStudent(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("student", id),
	}
}

// LogIndexBuild logs a catalog index build.
func (l *Logger) LogIndexBuild(ctx context.Context, candidates int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"candidates", candidates,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index built",
			"candidates", candidates,
		)
	}
}

// LogMatch logs a match request.
func (l *Logger) LogMatch(ctx context.Context, studentID string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "match request failed",
			"student", studentID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "match request completed",
			"student", studentID,
			"results", results,
		)
	}
}

// LogSimilar logs a similarity search.
func (l *Logger) LogSimilar(ctx context.Context, candidateID string, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "similarity search failed",
			"candidate", candidateID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "similarity search completed",
			"candidate", candidateID,
			"results", results,
		)
	}
}

// LogResourceLoad logs a resource load.
func (l *Logger) LogResourceLoad(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "resource load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "resource load completed",
			"name", name,
		)
	}
}
