// Package logging builds the slog loggers used by the CLI and the driver.
// Diagnostics never go through here: they are rendered by diagfmt.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// LevelSilent is above every standard level and disables output.
const LevelSilent = slog.Level(100)

// NewLogger creates a logger writing one line per record to w.
func NewLogger(w io.Writer, level slog.Level, colored bool) *slog.Logger {
	return slog.New(NewHandler(w, level, colored))
}

// NewDiscardLogger creates a logger that drops everything.
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// LevelFromString converts a level name (debug, info, warn, error) to a
// slog.Level. Unknown names map to warn, the CLI default.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	case "silent", "off":
		return LevelSilent
	default:
		return slog.LevelWarn
	}
}

// LevelFromVerbosity maps -v flags to a level:
// quiet suppresses everything, 0 is warn, 1 is info, 2+ is debug.
func LevelFromVerbosity(verbosity int, quiet bool) slog.Level {
	if quiet {
		return LevelSilent
	}
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
