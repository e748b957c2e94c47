// Package applog is the application's structured logger: startup,
// shutdown, and persistence-failure diagnostics written to a log file (or
// stderr) at a configurable level. It deliberately sits outside the hot
// per-keystroke path — the UI stream is owned by internal/output and
// internal/theme, not by this package.
package applog

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Level mirrors the handful of levels this application actually uses.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Logger wraps a charmbracelet/log.Logger with this application's level
// naming and a stable field-naming convention ("component", "err").
type Logger struct {
	inner *log.Logger
}

// New builds a Logger writing to w at the given level. Pass os.Stderr for
// interactive sessions or an *os.File opened against the config's storage
// directory for a persistent log. The handler carries no timestamp field —
// this log interleaves with the screen compositor's own cursor-addressed
// writes, and a timestamp column would just be one more thing to repaint
// around — and colorizes automatically only when w is a terminal
// (charmbracelet/log's own TTY detection on the writer).
func New(w io.Writer, level Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
	})
	l.SetLevel(parseLevel(level))
	return &Logger{inner: l}
}

// NewDiscard builds a Logger that drops everything, for tests and for
// any run configured with no log output.
func NewDiscard() *Logger {
	return New(io.Discard, LevelError)
}

func parseLevel(level Level) log.Level {
	switch level {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// WithComponent returns a Logger that tags every subsequent entry with the
// given component name, matching this application's package-scoped logging
// convention (e.g. "screen", "history", "paste").
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{inner: l.inner.With("component", component)}
}

// Debug, Info, Warn, and Error log a message with optional key/value pairs.
func (l *Logger) Debug(msg string, kv ...interface{}) { l.inner.Debug(msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.inner.Info(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.inner.Warn(msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.inner.Error(msg, kv...) }

// ErrorErr logs msg with err attached under the "err" key — the shape every
// silent-failure site in this codebase (history, config, transcript,
// render) uses to record what it swallowed.
func (l *Logger) ErrorErr(msg string, err error) {
	l.inner.Error(msg, "err", err)
}

// OpenFile opens (creating if needed) a log file under dir, truncating
// nothing — entries append across process restarts.
func OpenFile(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(dir+string(os.PathSeparator)+name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
