package lexer

import "docsniff/internal/token"

// scanNumber scans decimal, hex, octal and binary integers and floats.
// Значение не вычисляется: для валидации комментариев важен только вид токена.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) | 0x20 {
		case 'x':
			lx.cursor.Advance(2)
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		case 'b', 'o':
			lx.cursor.Advance(2)
			for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return lx.emit(kind, start)
		}
	}

	lx.eatDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDigits()
	} else if lx.cursor.Peek() == '.' && !lx.cursor.HasPrefix("..") && uint32(start) != lx.cursor.Off {
		// "1." тоже float
		kind = token.FloatLit
		lx.cursor.Bump()
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		m := lx.cursor.Mark()
		lx.cursor.Bump()
		if s := lx.cursor.Peek(); s == '+' || s == '-' {
			lx.cursor.Bump()
		}
		if isDec(lx.cursor.Peek()) {
			kind = token.FloatLit
			lx.eatDigits()
		} else {
			lx.cursor.Reset(m)
		}
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || (lx.cursor.Peek() == '_' && isDec(lx.cursor.PeekAt(1))) {
		lx.cursor.Bump()
	}
}
