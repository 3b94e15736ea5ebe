package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is a thin wrapper over slog that tags every record with the
// service name and, once Action is called, the action being performed.
type Logger struct {
	l *slog.Logger
}

func New(service string, level slog.Level, format string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	hostname, _ := os.Hostname()
	return &Logger{l: slog.New(h).With("service", service, "hostname", hostname)}
}

// Nop discards everything. Used by tests and CLI commands that only print.
func Nop() *Logger {
	return &Logger{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *Logger) Action(name string) *Logger {
	return &Logger{l: l.l.With("action", name)}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{l: l.l.With(args...)}
}

func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{l: l.l.WithGroup(name)}
}

func (l *Logger) Debug(msg string, args ...any) {
	l.l.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.l.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.l.Warn(msg, args...)
}

func (l *Logger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.l.Error(msg, args...)
}
