package fix

import (
	"docsniff/internal/diag"
	"docsniff/internal/token"
)

// ReplaceToken proposes replacing the whole text of the token at idx.
// The token's current text becomes the guard.
func ReplaceToken(idx int, tok token.Token, text string) diag.FixEdit {
	return diag.FixEdit{
		Token:   idx,
		Span:    tok.Span,
		OldText: tok.Text,
		NewText: text,
	}
}

// DeleteToken proposes blanking the token at idx.
func DeleteToken(idx int, tok token.Token) diag.FixEdit {
	return ReplaceToken(idx, tok, "")
}
