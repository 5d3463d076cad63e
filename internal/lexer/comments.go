package lexer

import (
	"docsniff/internal/diag"
	"docsniff/internal/token"
)

// scanLineComment scans "//" and "#" comments. The newline is left for the
// following whitespace token; "?>" ends the comment as in PHP.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || (b == '\r' && lx.cursor.PeekAt(1) == '\n') || lx.cursor.HasPrefix("?>") {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}

func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(2)
	for !lx.cursor.EOF() {
		if lx.cursor.EatString("*/") {
			return lx.emit(token.Comment, start)
		}
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Comment, start)
	lx.errLex(diag.LexUnterminatedComment, tok.Span, "unterminated block comment")
	return tok
}

// scanDocComment splits "/** ... */" into sub-tokens: the opener, a star at
// the start of each line, whitespace runs, tags and right-trimmed strings.
// The first token is returned; the rest are queued in lx.pending.
func (lx *Lexer) scanDocComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(3)
	opener := lx.emit(token.DocOpen, start)

	var (
		out        []token.Token
		lineStart  bool // только отступ с начала строки
		hasContent bool // на строке уже был тег или текст
		closed     bool
	)
	for !lx.cursor.EOF() {
		m := lx.cursor.Mark()
		b := lx.cursor.Peek()
		switch {
		case lx.cursor.HasPrefix("*/"):
			lx.cursor.Advance(2)
			out = append(out, lx.emit(token.DocClose, m))
			closed = true
		case b == '\n':
			lx.cursor.Bump()
			out = append(out, lx.emit(token.DocWhitespace, m))
			lineStart, hasContent = true, false
		case isBlank(b) || b == '\r':
			for isBlank(lx.cursor.Peek()) || (lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) != '\n') {
				lx.cursor.Bump()
			}
			if lx.cursor.Off == uint32(m) {
				lx.cursor.Bump() // "\r\n": \r уходит в отдельный токен
			}
			out = append(out, lx.emit(token.DocWhitespace, m))
		case b == '*' && lineStart:
			lx.cursor.Bump()
			out = append(out, lx.emit(token.DocStar, m))
			lineStart = false
		case b == '@' && !hasContent && isTagByte(lx.cursor.PeekAt(1)):
			lx.cursor.Bump()
			for isTagByte(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			out = append(out, lx.emit(token.DocTag, m))
			lineStart, hasContent = false, true
		default:
			out = append(out, lx.scanDocString())
			lineStart, hasContent = false, true
		}
		if closed {
			break
		}
	}
	if !closed {
		lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated doc comment")
	}
	lx.pending = append(lx.pending, out...)
	return opener
}

// scanDocString scans text up to the end of the line or the closer,
// excluding trailing blanks.
func (lx *Lexer) scanDocString() token.Token {
	start := lx.cursor.Mark()
	end := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || (b == '\r' && lx.cursor.PeekAt(1) == '\n') || lx.cursor.HasPrefix("*/") {
			break
		}
		lx.cursor.Bump()
		if !isBlank(b) {
			end = lx.cursor.Mark()
		}
	}
	lx.cursor.Reset(end)
	return lx.emit(token.DocString, start)
}

func isTagByte(b byte) bool {
	return isIdentContinueByte(b) || b == '-' || b == '\\' || b == ':'
}
