package main

import (
	"bytes"
	"strings"
	"testing"

	"docsniff/internal/driver"
)

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	tests := []struct {
		mode    string
		tty     bool
		want    bool
		wantErr bool
	}{
		{"auto", true, true, false},
		{"auto", false, false, false},
		{"", true, true, false},
		{"on", false, true, false},
		{"always", false, true, false},
		{"off", true, false, false},
		{"never", true, false, false},
		{"sometimes", true, false, true},
	}
	for _, tt := range tests {
		got, err := colorEnabled(tt.mode, tt.tty)
		if (err != nil) != tt.wantErr {
			t.Fatalf("colorEnabled(%q): err = %v", tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("colorEnabled(%q, %v) = %v, want %v", tt.mode, tt.tty, got, tt.want)
		}
	}

	t.Setenv("NO_COLOR", "1")
	if on, _ := colorEnabled("auto", true); on {
		t.Fatal("NO_COLOR must disable auto color")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("yes"); err == nil {
		t.Fatal("expected error for invalid mode")
	}
	if shouldUseTUI(uiModeOff) || !shouldUseTUI(uiModeOn) {
		t.Fatal("explicit modes must not depend on the terminal")
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	writeSummary(&buf, driver.Stats{Files: 1})
	if got := buf.String(); got != "1 file checked, no problems\n" {
		t.Fatalf("clean summary = %q", got)
	}

	buf.Reset()
	writeSummary(&buf, driver.Stats{Files: 3, Errors: 2, Warnings: 1, Fixable: 1})
	if !strings.Contains(buf.String(), "2 errors, 1 warning (1 fixable) in 3 files") {
		t.Fatalf("summary = %q", buf.String())
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	writeStats(&buf, driver.Stats{
		Files: 2, Functions: 5, Commented: 3, Errors: 1,
		ByCode: map[string]int{"InvalidReturn": 1},
	})
	out := buf.String()
	for _, want := range []string{"functions:    5", "without:    2", "InvalidReturn"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats lack %q:\n%s", want, out)
		}
	}
}
