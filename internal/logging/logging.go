package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger defines the minimal logging interface used across layers.
type Logger interface {
	Debug(ctx context.Context, msg string, kv ...any)
	Debugf(ctx context.Context, format string, args ...any)
	Info(ctx context.Context, msg string, kv ...any)
	Infof(ctx context.Context, format string, args ...any)
	Warn(ctx context.Context, msg string, kv ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Error(ctx context.Context, msg string, kv ...any)
	Errorf(ctx context.Context, format string, args ...any)
	With(kv ...any) Logger
}

type contextKey struct{}

var loggerKey contextKey

// WithLogger stores a logger in context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves a logger from context, returns the default logger if absent.
func FromContext(ctx context.Context) Logger {
	if v, ok := ctx.Value(loggerKey).(Logger); ok && v != nil {
		return v
	}
	return defaultLogger(slog.LevelInfo)
}

// New constructs a Logger of the given format (human|text|json) and level,
// writing to stderr.
func New(format string, level slog.Leveler) (Logger, error) {
	return NewWithWriter(format, level, os.Stderr)
}

// NewWithWriter constructs a Logger of the given format, level, and output writer.
func NewWithWriter(format string, level slog.Leveler, w io.Writer) (Logger, error) {
	switch format {
	case "", "human":
		return defaultLoggerWithWriter(level, w), nil
	case "text":
		return &slogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}, nil
	case "json":
		return &slogLogger{l: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))}, nil
	default:
		return nil, errors.New("unsupported log format: " + format)
	}
}

// slogLogger adapts slog.Logger to Logger.
type slogLogger struct{ l *slog.Logger }

func (s *slogLogger) Debug(ctx context.Context, msg string, kv ...any) {
	s.l.DebugContext(ctx, msg, kv...)
}
func (s *slogLogger) Debugf(ctx context.Context, format string, args ...any) {
	s.l.DebugContext(ctx, fmt.Sprintf(format, args...))
}
func (s *slogLogger) Info(ctx context.Context, msg string, kv ...any) {
	s.l.InfoContext(ctx, msg, kv...)
}
func (s *slogLogger) Infof(ctx context.Context, format string, args ...any) {
	s.l.InfoContext(ctx, fmt.Sprintf(format, args...))
}
func (s *slogLogger) Warn(ctx context.Context, msg string, kv ...any) {
	s.l.WarnContext(ctx, msg, kv...)
}
func (s *slogLogger) Warnf(ctx context.Context, format string, args ...any) {
	s.l.WarnContext(ctx, fmt.Sprintf(format, args...))
}
func (s *slogLogger) Error(ctx context.Context, msg string, kv ...any) {
	s.l.ErrorContext(ctx, msg, kv...)
}
func (s *slogLogger) Errorf(ctx context.Context, format string, args ...any) {
	s.l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

func (s *slogLogger) With(kv ...any) Logger { return &slogLogger{l: s.l.With(kv...)} }

var (
	defaultOnce  sync.Once
	defaultValue *slogLogger
)

func defaultLogger(level slog.Leveler) *slogLogger {
	return defaultLoggerWithWriter(level, os.Stderr)
}

func defaultLoggerWithWriter(level slog.Leveler, w io.Writer) *slogLogger {
	// Set level for the std log logger used by slog's default output.
	slog.SetLogLoggerLevel(level.Level())
	if w == os.Stderr {
		defaultOnce.Do(func() {
			defaultValue = &slogLogger{l: slog.Default()}
		})
		return defaultValue
	}
	return &slogLogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}
