package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelDebug, false)

	logger.With("path", "src/a.php").WithGroup("fix").Debug("fix pass", "pass", 2, "note", "two words")

	want := `docsniff: [debug] fix pass | path=src/a.php fix.pass=2 fix.note="two words"` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn, false)
	logger.Info("hidden")
	logger.Warn("shown", "err", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record printed at warn level: %q", out)
	}
	if out != "docsniff: [warn] shown | err=boom\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestHandlerColored(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelError, true).Error("bad")
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape codes, got %q", buf.String())
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		quiet     bool
		want      slog.Level
	}{
		{0, false, slog.LevelWarn},
		{1, false, slog.LevelInfo},
		{2, false, slog.LevelDebug},
		{5, false, slog.LevelDebug},
		{2, true, LevelSilent},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity, tt.quiet); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d, %v) = %v, want %v", tt.verbosity, tt.quiet, got, tt.want)
		}
	}
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" error ": slog.LevelError,
		"off":     LevelSilent,
		"bogus":   slog.LevelWarn,
	}
	for in, want := range tests {
		if got := LevelFromString(in); got != want {
			t.Errorf("LevelFromString(%q) = %v, want %v", in, got, want)
		}
	}
}
