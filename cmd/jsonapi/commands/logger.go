package commands

import (
	"context"
	"io"
	"log/slog"
	"sort"
)

// slogLogger adapts a slog.Logger to jsonapi.Logger for --verbose.
type slogLogger struct {
	logger *slog.Logger
}

func newSlogLogger(out io.Writer) *slogLogger {
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})

	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *slogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	l.logger.LogAttrs(context.Background(), level, msg, fieldAttrs(fields)...)
}

// fieldAttrs converts a fields map to attributes in key order.
func fieldAttrs(fields map[string]interface{}) []slog.Attr {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	return attrs
}
