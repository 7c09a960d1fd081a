// ABOUTME: Structured logging configuration using log/slog.
// ABOUTME: Provides Init() for the default logger and OpenFile() for the TUI debug log.

package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DebugLogName is the TUI log file inside the config directory
const DebugLogName = "debug.log"

// Options selects level, format and destination
type Options struct {
	Level  string    // debug, info, warn, error (default: info)
	Format string    // text, json (default: text)
	Output io.Writer // default: stderr
}

// Init configures the default slog logger and returns it.
func Init(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(opts.Level),
	}

	var handler slog.Handler
	if strings.ToLower(opts.Format) == "json" {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	l := slog.New(handler).With("app", "seefirst")
	slog.SetDefault(l)
	return l
}

// OpenFile opens (appending) the debug log in dir, creating dir if needed.
// The TUI logs here so output does not tear the alternate screen.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, DebugLogName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
