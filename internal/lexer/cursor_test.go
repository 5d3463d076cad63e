package lexer

import (
	"testing"

	"docsniff/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	file := createFile("a\nb")
	cursor := NewCursor(file)

	for i, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF at %d", i)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("byte %d: want %q, got %q", i, want, got)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF after three bytes")
	}
	if cursor.Bump() != 0 || cursor.Peek() != 0 {
		t.Fatal("reading past EOF must return 0")
	}
}

func TestCursorPrefixes(t *testing.T) {
	file := createFile("<?PHP echo")
	cursor := NewCursor(file)

	if !cursor.HasPrefix("<?") {
		t.Fatal("expected <? prefix")
	}
	if cursor.HasPrefix("<?php") {
		t.Fatal("HasPrefix must be case-sensitive")
	}
	if !cursor.HasPrefixFold("<?php") {
		t.Fatal("HasPrefixFold must ignore case")
	}
	if cursor.HasPrefixFold("<?php echo more") {
		t.Fatal("prefix longer than input must not match")
	}
	if !cursor.EatString("<?PHP") {
		t.Fatal("EatString failed")
	}
	if cursor.Peek() != ' ' || cursor.PeekAt(1) != 'e' {
		t.Fatalf("unexpected lookahead %q %q", cursor.Peek(), cursor.PeekAt(1))
	}
}

func TestCursorMarkResetSpan(t *testing.T) {
	file := createFile("abcdef")
	cursor := NewCursor(file)
	cursor.Advance(1)
	m := cursor.Mark()
	cursor.Advance(3)
	sp := cursor.SpanFrom(m)
	if sp.Start != 1 || sp.End != 4 {
		t.Fatalf("unexpected span %v", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'b' {
		t.Fatalf("reset failed, at %q", cursor.Peek())
	}
	cursor.Advance(100)
	if !cursor.EOF() {
		t.Fatal("Advance must clamp to the limit")
	}
}
