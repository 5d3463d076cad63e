package token

import "docsniff/internal/source"

// View is the immutable, indexable token arena of one file.
// Validators read it concurrently; nothing writes to it after lexing.
type View struct {
	File   source.FileID
	Tokens []Token
}

// Len returns the number of tokens.
func (v *View) Len() int { return len(v.Tokens) }

// Valid reports whether i indexes a token.
func (v *View) Valid(i int) bool { return i >= 0 && i < len(v.Tokens) }

// At returns the token at i, or a zero Invalid token when i is out of range.
func (v *View) At(i int) Token {
	if !v.Valid(i) {
		return Token{Kind: Invalid, Pair: -1, ScopeOpen: -1, ScopeClose: -1}
	}
	return v.Tokens[i]
}

// Kind returns the kind at i, Invalid when out of range.
func (v *View) Kind(i int) Kind {
	if !v.Valid(i) {
		return Invalid
	}
	return v.Tokens[i].Kind
}

// FindPrevious walks backward from start down to end (inclusive) and returns
// the first index whose kind is in set, or, with exclude, the first index
// whose kind is NOT in set. Returns -1 when nothing matches.
func (v *View) FindPrevious(set Set, start, end int, exclude bool) int {
	if end < 0 {
		end = 0
	}
	if start >= len(v.Tokens) {
		start = len(v.Tokens) - 1
	}
	for i := start; i >= end; i-- {
		if set.Has(v.Tokens[i].Kind) != exclude {
			return i
		}
	}
	return -1
}

// FindNext walks forward from start up to end (exclusive) with the same
// matching rule as FindPrevious. end < 0 means the end of the view.
func (v *View) FindNext(set Set, start, end int, exclude bool) int {
	if end < 0 || end > len(v.Tokens) {
		end = len(v.Tokens)
	}
	if start < 0 {
		start = 0
	}
	for i := start; i < end; i++ {
		if set.Has(v.Tokens[i].Kind) != exclude {
			return i
		}
	}
	return -1
}

// NextNonWhitespace returns the first token after i that is not code whitespace.
func (v *View) NextNonWhitespace(i int) int {
	return v.FindNext(NewSet(Whitespace), i+1, -1, true)
}

// Positions returns all token indices of the given kind, in order.
func (v *View) Positions(kind Kind) []int {
	var out []int
	for i := range v.Tokens {
		if v.Tokens[i].Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
