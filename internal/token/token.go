package token

import (
	"docsniff/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes

	// Pair links matching delimiters: brackets, and DocOpen <-> DocClose.
	// -1 when the token has no partner.
	Pair int
	// ScopeOpen/ScopeClose delimit the brace body owned by a function,
	// closure or class-like token. -1 when there is no body.
	ScopeOpen  int
	ScopeClose int
	// Tags lists DocTag indices of a doc comment, set on its DocOpen only.
	Tags []int
}

// Len returns the token length in bytes.
func (t Token) Len() int { return len(t.Text) }

// EndLine returns the line on which the token text ends.
func (t Token) EndLine() uint32 {
	n := uint32(0)
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] == '\n' {
			n++
		}
	}
	return t.Line + n
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFunction && t.Kind <= KwConst
}

// IsTrivia reports whether the token is whitespace or a comment of any style.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, Comment, DocOpen, DocClose, DocStar, DocWhitespace, DocTag, DocString:
		return true
	default:
		return false
	}
}
