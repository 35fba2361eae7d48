// Package logger adapts log/slog to the ports.Logger interface.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Options selects the slog handler.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// SlogLogger routes structured records to a slog handler.
type SlogLogger struct {
	log *slog.Logger
}

// New builds a logger from level and format names. Output defaults to stderr
// so piped generation results stay clean on stdout.
func New(opts Options) *SlogLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return &SlogLogger{log: slog.New(handler)}
}

// NewStd creates a text logger on stderr. Verbose enables debug records,
// otherwise only warnings and errors are written.
func NewStd(verbose bool) *SlogLogger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return New(Options{Level: level})
}

// Discard drops every record.
func Discard() *SlogLogger {
	return New(Options{Level: "error", Output: io.Discard})
}

// ParseLevel maps a level name to slog; unknown names mean info.
func ParseLevel(level string) slog.Level {
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

// Slog exposes the underlying logger.
func (l *SlogLogger) Slog() *slog.Logger {
	return l.log
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, attrs(fields)...)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *SlogLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log.Error(msg, args...)
}

// attrs flattens fields in key order so output is stable.
func attrs(fields map[string]interface{}) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
