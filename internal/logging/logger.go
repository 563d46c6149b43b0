// Package logging adapts log/slog to the hubspot.Logger interface consumed
// by the transport, the client facade, and the sync engine.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures a Logger.
type Options struct {
	// Level is the minimum level emitted: debug, info, warn, or error.
	// Unknown values default to info.
	Level string
	// Format selects the handler: "json" or text (default).
	Format string
	// Output defaults to stderr so structured logs stay clear of command
	// output on stdout.
	Output io.Writer
}

// Logger is a slog-backed implementation of hubspot.Logger.
type Logger struct {
	slogger *slog.Logger
}

// New builds a Logger configured by opts.
func New(opts Options) *Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(output, handlerOpts)
	}

	return &Logger{slogger: slog.New(handler)}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{
		slogger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Debug implements hubspot.Logger.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.slogger.Debug(msg, args(fields)...)
}

// Info implements hubspot.Logger.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.slogger.Info(msg, args(fields)...)
}

// Warn implements hubspot.Logger.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.slogger.Warn(msg, args(fields)...)
}

// Error implements hubspot.Logger.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.slogger.Error(msg, args(fields)...)
}

func args(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		out = append(out, key, value)
	}

	return out
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
