package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestBannerPlain(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = ""

	got := Banner(false)
	if !strings.HasPrefix(got, "docsniff 1.2.3\n") {
		t.Fatalf("banner = %q", got)
	}
	if !strings.Contains(got, "commit: abc123") {
		t.Fatalf("banner lacks commit: %q", got)
	}
	if strings.Contains(got, "built:") {
		t.Fatalf("empty build date printed: %q", got)
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	color.NoColor = true
	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "nightly"}
	for _, v := range tests {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() with colors off = %q, want %q", got, v)
		}
	}

	color.NoColor = false
	Version = "1.2.3"
	if got := Colored(); got == Version || !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored() = %q, want escape sequences", got)
	}
}
