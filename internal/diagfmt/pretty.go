package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"docsniff/internal/diag"
	"docsniff/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		code:   color.New(color.FgMagenta),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s",
			p.path.Sprintf("%s:%d:%d", displayPath(f, fs, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if d.Fixable {
			fmt.Fprint(w, " [fixable]")
		}
		fmt.Fprintln(w)
		if f != nil {
			writeSnippet(w, f, d.Primary, int(opts.Context), p)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			npos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), displayPath(nf, fs, opts.PathMode), npos.Line, npos.Col, n.Msg)
		}
	}
}

// writeSnippet prints the primary line, context lines above it and a caret
// line under the span. A span that crosses lines is underlined to the end
// of its first line.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int, p palette) {
	start, end := f.Position(sp.Start), f.Position(sp.End)
	line := f.GetLine(start.Line)
	width := len(fmt.Sprint(start.Line))

	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	for n := first; n <= int(start.Line); n++ {
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", width, n), f.GetLine(uint32(n)))
	}

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	stop := len(line)
	if end.Line == start.Line && int(end.Col)-1 <= len(line) {
		stop = int(end.Col) - 1
	}
	underline := 1
	if stop > col {
		underline = max(1, runewidth.StringWidth(line[col:stop]))
	}
	caret := "^" + strings.Repeat("~", underline-1)
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), caretPad(line[:col]), p.caret.Sprint(caret))
}

// caretPad keeps tabs so the caret lines up with the source line above it.
func caretPad(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

// Short prints diagnostics one per line, as diag.FormatShort.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) {
	if out := diag.FormatShort(bag.Items(), fs, includeNotes); out != "" {
		fmt.Fprintln(w, out)
	}
}
