package lexer

import (
	"docsniff/internal/diag"
	"docsniff/internal/token"
)

type opSpelling struct {
	text string
	kind token.Kind
}

// Жадность: сначала длинные, затем короткие. Операторы без отдельного
// вида попадают в token.Op, их написание хранится в Text.
var operators = []opSpelling{
	{"<=>", token.Op}, {"**=", token.Op}, {"...", token.Ellipsis}, {"<<=", token.Op},
	{">>=", token.Op}, {"===", token.Op}, {"!==", token.Op}, {"??=", token.Op},
	{"?->", token.Arrow},

	{"#[", token.AttrOpen}, {"::", token.ColonColon}, {"->", token.Arrow}, {"=>", token.FatArrow},
	{"++", token.Op}, {"--", token.Op}, {"==", token.Op}, {"!=", token.Op}, {"<>", token.Op},
	{"<=", token.Op}, {">=", token.Op}, {"&&", token.Op}, {"||", token.Op}, {"??", token.Op},
	{"+=", token.Op}, {"-=", token.Op}, {"*=", token.Op}, {"/=", token.Op}, {".=", token.Op},
	{"%=", token.Op}, {"&=", token.Op}, {"|=", token.Op}, {"^=", token.Op}, {"<<", token.Op},
	{">>", token.Op}, {"**", token.Op},

	{"(", token.LParen}, {")", token.RParen}, {"{", token.LBrace}, {"}", token.RBrace},
	{"[", token.LBracket}, {"]", token.RBracket}, {";", token.Semicolon}, {",", token.Comma},
	{"&", token.Amp}, {"?", token.Question}, {":", token.Colon}, {"=", token.Assign},
	{"|", token.Pipe},
}

const singleOps = "+-*/%.<>!~^@$\\"

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range operators {
		if lx.cursor.EatString(op.text) {
			return lx.emit(op.kind, start)
		}
	}
	ch := lx.cursor.Bump()
	for i := 0; i < len(singleOps); i++ {
		if singleOps[i] == ch {
			return lx.emit(token.Op, start)
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character")
	return tok
}
