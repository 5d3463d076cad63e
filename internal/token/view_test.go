package token_test

import (
	"testing"

	"docsniff/internal/token"
)

func view(kinds ...token.Kind) *token.View {
	v := &token.View{}
	for _, k := range kinds {
		v.Tokens = append(v.Tokens, token.Token{Kind: k, Pair: -1, ScopeOpen: -1, ScopeClose: -1})
	}
	return v
}

func TestFindPrevious(t *testing.T) {
	v := view(token.DocClose, token.Whitespace, token.KwPublic, token.Whitespace, token.KwFunction)
	skip := token.MethodPrefixes.With(token.Whitespace)

	if got := v.FindPrevious(skip, 3, -1, true); got != 0 {
		t.Fatalf("FindPrevious(exclude) = %d, want 0", got)
	}
	if got := v.FindPrevious(token.NewSet(token.KwPublic), 4, 3, false); got != -1 {
		t.Fatalf("FindPrevious bounded = %d, want -1", got)
	}
}

func TestFindNext(t *testing.T) {
	v := view(token.KwReturn, token.Whitespace, token.Semicolon)
	if got := v.NextNonWhitespace(0); got != 2 {
		t.Fatalf("NextNonWhitespace = %d, want 2", got)
	}
	if got := v.FindNext(token.ReturnLike, 1, -1, false); got != -1 {
		t.Fatalf("FindNext = %d, want -1", got)
	}
	if got := v.FindNext(token.ReturnLike, 0, 1, false); got != 0 {
		t.Fatalf("FindNext = %d, want 0", got)
	}
}

func TestAtOutOfRange(t *testing.T) {
	v := view(token.Semicolon)
	if v.At(5).Kind != token.Invalid || v.Kind(-1) != token.Invalid {
		t.Fatal("out-of-range access must yield Invalid")
	}
}

func TestSetMembership(t *testing.T) {
	s := token.NewSet(token.Op, token.EOF)
	if !s.Has(token.Op) || !s.Has(token.EOF) || s.Has(token.Pipe) {
		t.Fatalf("unexpected membership for %v", s)
	}
}

func TestLookupKeywordIsCaseInsensitive(t *testing.T) {
	for _, word := range []string{"function", "FUNCTION", "Function"} {
		if k, ok := token.LookupKeyword(word); !ok || k != token.KwFunction {
			t.Errorf("LookupKeyword(%q) = %v,%v", word, k, ok)
		}
	}
	if _, ok := token.LookupKeyword("from"); ok {
		t.Error("'from' is only a keyword after yield")
	}
}

func TestKindNamesComplete(t *testing.T) {
	for k := token.Invalid; k <= token.Op; k++ {
		if k.String() == "Kind(?)" {
			t.Errorf("kind %d has no name", k)
		}
	}
}
