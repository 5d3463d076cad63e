package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"docsniff/internal/source"
	"docsniff/internal/token"
)

type TokenOutput struct {
	Index int         `json:"index"`
	Kind  string      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	Span  source.Span `json:"span"`
	Line  uint32      `json:"line"`
	Col   uint32      `json:"col"`
	Pair  *int        `json:"pair,omitempty"`
	Tags  []int       `json:"tags,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, view *token.View, fs *source.FileSet) error {
	for i, tok := range view.Tokens {
		_, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%4d: %-15s %q at %d:%d-%d:%d", i, tok.Kind.String(), tok.Text,
			tok.Line, tok.Col, endPos.Line, endPos.Col); err != nil {
			return err
		}
		if tok.Pair >= 0 {
			fmt.Fprintf(w, " pair=%d", tok.Pair)
		}
		if len(tok.Tags) > 0 {
			fmt.Fprintf(w, " tags=%v", tok.Tags)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, view *token.View) error {
	output := make([]TokenOutput, 0, len(view.Tokens))
	for i, tok := range view.Tokens {
		out := TokenOutput{
			Index: i,
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Span:  tok.Span,
			Line:  tok.Line,
			Col:   tok.Col,
			Tags:  tok.Tags,
		}
		// -1 означает «нет пары», в JSON такое поле опускаем
		if tok.Pair >= 0 {
			pair := tok.Pair
			out.Pair = &pair
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
