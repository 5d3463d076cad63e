package ui

import (
	"fmt"
	"strings"
	"testing"

	"docsniff/internal/driver"
)

func TestProgressModelCounts(t *testing.T) {
	files := []string{"a.php", "b.php", "c.php"}
	m := NewProgressModel("checking", files, nil).(*progressModel)

	events := []driver.Event{
		{File: "a.php", Stage: driver.StageLoad, Status: driver.StatusQueued},
		{File: "a.php", Stage: driver.StageLex, Status: driver.StatusWorking},
		{File: "a.php", Stage: driver.StageCheck, Status: driver.StatusDone},
		{File: "b.php", Stage: driver.StageCheck, Status: driver.StatusCached},
		{File: "c.php", Stage: driver.StageLoad, Status: driver.StatusError},
		// после финального статуса файл не меняется
		{File: "c.php", Stage: driver.StageLex, Status: driver.StatusWorking},
		{File: "unknown.php", Stage: driver.StageCheck, Status: driver.StatusDone},
	}
	for _, ev := range events {
		m.Update(eventMsg(ev))
	}

	if m.settled != 3 {
		t.Fatalf("settled = %d", m.settled)
	}
	if m.items[2].status != "error" {
		t.Fatalf("c.php status = %q", m.items[2].status)
	}
	view := m.View()
	for _, want := range []string{"checking 3/3", "done 1", "cached 1", "error 1", "a.php"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelRecentWindow(t *testing.T) {
	var files []string
	for i := range maxRows + 5 {
		files = append(files, fmt.Sprintf("f%02d.php", i))
	}
	m := NewProgressModel("fixing", files, nil).(*progressModel)
	for _, f := range files {
		m.Update(eventMsg{File: f, Stage: driver.StageFix, Status: driver.StatusWorking})
	}
	if len(m.recent) != maxRows {
		t.Fatalf("recent = %d rows", len(m.recent))
	}
	view := m.View()
	if strings.Contains(view, "f00.php") || !strings.Contains(view, files[len(files)-1]) {
		t.Fatalf("window shows wrong rows:\n%s", view)
	}

	// повторное событие переносит файл в конец без дублей
	m.touch(m.recent[0])
	if len(m.recent) != maxRows {
		t.Fatalf("touch duplicated a row: %v", m.recent)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a/very/long/path.php", 10, "a/ve..."},
		{"abcdef", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
