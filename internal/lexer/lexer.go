package lexer

import (
	"docsniff/internal/source"
	"docsniff/internal/token"
)

// Lexer turns PHP source into tokens. Whitespace and comments are real
// tokens here: doc validation needs their exact positions.
type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	inPHP   bool
	pending []token.Token // хвост разобранного doc-комментария
	prev    token.Kind    // последний значимый токен
}

// New creates a lexer positioned at the beginning of file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Tokenize lexes the whole file and returns a linked, read-only View.
func Tokenize(file *source.File, opts Options) *token.View {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	for i := range toks {
		pos := file.Position(toks[i].Span.Start)
		toks[i].Line = pos.Line
		toks[i].Col = pos.Col
	}
	view := &token.View{File: file.ID, Tokens: toks}
	link(view)
	return view
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.pending) > 0 {
		tok := lx.pending[0]
		lx.pending = lx.pending[1:]
		return tok
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), Pair: -1, ScopeOpen: -1, ScopeClose: -1}
	}

	var tok token.Token
	if !lx.inPHP {
		tok = lx.scanOutside()
	} else {
		tok = lx.scanPHP()
	}
	if !tok.IsTrivia() && tok.Kind != token.Invalid {
		lx.prev = tok.Kind
	}
	return tok
}

func (lx *Lexer) scanPHP() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isSpace(ch):
		return lx.scanWhitespace()
	case lx.cursor.HasPrefix("?>"):
		start := lx.cursor.Mark()
		lx.cursor.Advance(2)
		lx.inPHP = false
		return lx.emit(token.CloseTag, start)
	case lx.cursor.HasPrefix("/**") && isSpace(lx.cursor.PeekAt(3)):
		return lx.scanDocComment()
	case lx.cursor.HasPrefix("/*"):
		return lx.scanBlockComment()
	case lx.cursor.HasPrefix("//"):
		return lx.scanLineComment()
	case ch == '#' && lx.cursor.PeekAt(1) != '[':
		return lx.scanLineComment()
	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanVariable()
	case isIdentStartByte(ch) || ch == '\\':
		return lx.scanIdentOrKeyword()
	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		return lx.scanNumber()
	case ch == '\'' || ch == '"' || ch == '`':
		return lx.scanQuoted(ch)
	case lx.cursor.HasPrefix("<<<"):
		if tok, ok := lx.scanHeredoc(); ok {
			return tok
		}
	}
	return lx.scanOperatorOrPunct()
}

// scanOutside consumes inline HTML up to the next open tag, or the open tag itself.
func (lx *Lexer) scanOutside() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.HasPrefix("<?=") {
		lx.cursor.Advance(3)
		lx.inPHP = true
		return lx.emit(token.OpenTagEcho, start)
	}
	if lx.cursor.HasPrefixFold("<?php") {
		lx.cursor.Advance(5)
		lx.inPHP = true
		return lx.emit(token.OpenTag, start)
	}
	if lx.cursor.HasPrefix("<?") {
		lx.cursor.Advance(2)
		lx.inPHP = true
		return lx.emit(token.OpenTag, start)
	}
	for !lx.cursor.EOF() && !lx.cursor.HasPrefix("<?") {
		lx.cursor.Bump()
	}
	return lx.emit(token.InlineHTML, start)
}

func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:       kind,
		Span:       sp,
		Text:       string(lx.file.Content[sp.Start:sp.End]),
		Pair:       -1,
		ScopeOpen:  -1,
		ScopeClose: -1,
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
