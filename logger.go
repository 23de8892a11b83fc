package embergo

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
)

// Logger wraps slog.Logger with store-specific context.
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
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(math.MaxInt),
		})),
	}
}

// WithKind adds an artifact-kind field to the logger.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// WithFingerprint adds a fingerprint field to the logger.
func (l *Logger) WithFingerprint(fp string) *Logger {
	return &Logger{
		Logger: l.Logger.With("fingerprint", fp),
	}
}

// LogPut logs a put operation.
func (l *Logger) LogPut(ctx context.Context, kind, fingerprint string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "put failed",
			"kind", kind,
			"fingerprint", fingerprint,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "put completed",
			"kind", kind,
			"fingerprint", fingerprint,
			"bytes", size,
		)
	}
}

// LogGet logs a get operation.
func (l *Logger) LogGet(ctx context.Context, kind string, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get failed",
			"kind", kind,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "get completed",
			"kind", kind,
			"found", found,
		)
	}
}

// LogMerge logs a sample-set merge.
func (l *Logger) LogMerge(ctx context.Context, location string, merged, total int) {
	l.InfoContext(ctx, "sample sets merged",
		"location", location,
		"merged", merged,
		"total_occurrences", total,
	)
}
