package fix

// todo: интеграция с git:
// По умолчанию создавать .bak только для незатрекинных файлов.
// Флаг --staged-only (работать по git diff --name-only --staged).

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"docsniff/internal/diag"
	"docsniff/internal/source"
)

// ErrNoFixes is returned when no edits were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// SkippedEdit captures an edit that was not applied, with a reason.
type SkippedEdit struct {
	Edit   diag.FixEdit
	Reason string
}

// ApplyResult aggregates one application pass over a file.
type ApplyResult struct {
	// File is the revision holding the fixed content; the input ID when
	// nothing was applied.
	File    source.FileID
	Applied []diag.FixEdit
	Skipped []SkippedEdit
}

// Apply applies edits to the file and registers the result as a new
// revision of it in fs.
func Apply(fs *source.FileSet, id source.FileID, edits []diag.FixEdit) (*ApplyResult, error) {
	result := &ApplyResult{File: id}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}
	file := fs.Get(id)
	if file == nil {
		return result, fmt.Errorf("fix: unknown file id %d", id)
	}

	out, applied, skipped := ApplyEdits(file.Content, edits)
	result.Applied = applied
	result.Skipped = skipped
	if len(applied) == 0 {
		return result, ErrNoFixes
	}
	result.File = fs.AddRevision(id, out)
	return result, nil
}

// ApplyEdits rewrites content with the given edits. An edit is applied only
// when its span still holds OldText and it does not overlap an edit accepted
// before it; edits are considered in source order. Identical duplicates and
// no-op edits are dropped silently.
func ApplyEdits(content []byte, edits []diag.FixEdit) ([]byte, []diag.FixEdit, []SkippedEdit) {
	sorted := make([]diag.FixEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	accepted := make([]diag.FixEdit, 0, len(sorted))
	skipped := make([]SkippedEdit, 0)
	for _, e := range sorted {
		start, end := int(e.Span.Start), int(e.Span.End)
		if start > end || end > len(content) {
			skipped = append(skipped, SkippedEdit{Edit: e, Reason: "edit span out of range"})
			continue
		}
		if string(content[start:end]) != e.OldText {
			skipped = append(skipped, SkippedEdit{Edit: e, Reason: "existing text does not match expected content"})
			continue
		}
		if e.NewText == e.OldText {
			continue
		}
		if prev, ok := conflicting(accepted, e); ok {
			if prev.Span == e.Span && prev.NewText == e.NewText {
				continue
			}
			skipped = append(skipped, SkippedEdit{Edit: e, Reason: "conflicts with previously applied edits"})
			continue
		}
		accepted = append(accepted, e)
	}

	if len(accepted) == 0 {
		return content, accepted, skipped
	}

	var buf bytes.Buffer
	buf.Grow(len(content))
	last := 0
	for _, e := range accepted {
		buf.Write(content[last:e.Span.Start])
		buf.WriteString(e.NewText)
		last = int(e.Span.End)
	}
	buf.Write(content[last:])
	return buf.Bytes(), accepted, skipped
}

func conflicting(accepted []diag.FixEdit, e diag.FixEdit) (diag.FixEdit, bool) {
	for _, prev := range accepted {
		if spansConflict(prev.Span, e.Span) {
			return prev, true
		}
	}
	return diag.FixEdit{}, false
}

// spansConflict reports whether two edit spans overlap.
// Spans are treated as half-open intervals [Start, End). Two zero-length edits
// never conflict. A zero-length edit conflicts with a non-zero span if its
// position is within that span (Start <= pos < End).
func spansConflict(a, b source.Span) bool {
	if a.File != b.File {
		return false
	}
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return b.Start <= a.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return a.Start <= b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// Write stores a fixed revision over its file on disk, keeping the file mode
// and restoring the CRLF line endings and BOM that loading normalized away.
func Write(file *source.File) error {
	if file == nil {
		return fmt.Errorf("fix: nil file")
	}
	if file.Flags&source.FileVirtual != 0 {
		return fmt.Errorf("fix: %s is virtual", file.Path)
	}

	content := file.Content
	if file.Flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if file.Flags&source.FileHadBOM != 0 {
		content = append([]byte{0xEF, 0xBB, 0xBF}, content...)
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(file.Path); err == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(file.Path, content, mode); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}
