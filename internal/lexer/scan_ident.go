package lexer

import (
	"strings"

	"docsniff/internal/token"
)

func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // $
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Variable, start)
}

// scanIdentOrKeyword scans a name, possibly namespace-qualified.
// Keywords after "->", "::" or "function" are member names, not keywords.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) || (b == '\\' && isIdentStartByte(lx.cursor.PeekAt(1))) {
			lx.cursor.Bump()
			continue
		}
		if b == '\\' && lx.cursor.Off == uint32(start) {
			lx.cursor.Bump()
			continue
		}
		break
	}
	tok := lx.emit(token.Ident, start)
	if strings.ContainsRune(tok.Text, '\\') {
		return tok
	}
	switch lx.prev {
	case token.Arrow, token.ColonColon, token.KwFunction:
		return tok
	}
	kind, ok := token.LookupKeyword(tok.Text)
	if !ok {
		return tok
	}
	switch kind {
	case token.KwYield:
		if lx.eatYieldFrom() {
			return lx.emit(token.KwYieldFrom, start)
		}
	case token.KwEnum:
		if !lx.followedByName() {
			return tok
		}
	}
	tok.Kind = kind
	return tok
}

// eatYieldFrom consumes the " from" part of "yield from" if present.
func (lx *Lexer) eatYieldFrom() bool {
	m := lx.cursor.Mark()
	n := 0
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	if n > 0 && lx.cursor.HasPrefixFold("from") && !isIdentContinueByte(lx.cursor.PeekAt(4)) {
		lx.cursor.Advance(4)
		return true
	}
	lx.cursor.Reset(m)
	return false
}

// followedByName reports whether whitespace and a name follow, without consuming.
func (lx *Lexer) followedByName() bool {
	var i uint32
	for isSpace(lx.cursor.PeekAt(i)) {
		i++
	}
	return i > 0 && isIdentStartByte(lx.cursor.PeekAt(i))
}
