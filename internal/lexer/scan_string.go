package lexer

import (
	"bytes"

	"docsniff/internal/diag"
	"docsniff/internal/token"
)

// scanQuoted scans '...', "..." and `...`. Strings may span lines.
func (lx *Lexer) scanQuoted(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '\\':
			lx.cursor.Bump()
		case quote:
			return lx.emit(token.StringLit, start)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}

// scanHeredoc scans a heredoc or nowdoc up to and including its closing label.
// Returns false when "<<<" does not start a heredoc.
func (lx *Lexer) scanHeredoc() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Advance(3)
	for isBlank(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	quote := lx.cursor.Peek()
	if quote == '\'' || quote == '"' {
		lx.cursor.Bump()
	} else {
		quote = 0
	}
	labelStart := lx.cursor.Off
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	label := lx.file.Content[labelStart:lx.cursor.Off]
	if len(label) == 0 || !isIdentStartByte(label[0]) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if lx.cursor.Peek() != '\n' {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	// тело: ищем строку, которая (после отступа) начинается с метки
	for !lx.cursor.EOF() {
		lx.cursor.Bump() // '\n'
		for isBlank(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if lx.cursor.HasPrefix(string(label)) {
			if lx.labelEnd(len(label)) {
				lx.cursor.Advance(len(label))
				return lx.emit(token.Heredoc, start), true
			}
		}
		idx := bytes.IndexByte(lx.file.Content[lx.cursor.Off:lx.cursor.Limit], '\n')
		if idx < 0 {
			lx.cursor.Advance(int(lx.cursor.Limit - lx.cursor.Off))
			break
		}
		lx.cursor.Advance(idx)
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedHeredoc, tok.Span, "unterminated heredoc "+string(label))
	return tok, true
}

// labelEnd reports whether the n-byte label at the cursor is not a prefix of a longer name.
func (lx *Lexer) labelEnd(n int) bool {
	m := lx.cursor.Mark()
	lx.cursor.Advance(n)
	after := lx.cursor.Peek()
	lx.cursor.Reset(m)
	return !isIdentContinueByte(after)
}
