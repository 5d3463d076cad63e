package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// InlineHTML is text outside of PHP tags.
	InlineHTML
	// OpenTag is "<?php" (or "<?").
	OpenTag
	// OpenTagEcho is "<?=".
	OpenTagEcho
	// CloseTag is "?>".
	CloseTag

	// Whitespace is a run of spaces, tabs and newlines between code tokens.
	Whitespace
	// Comment is a "//", "#" or "/* */" comment.
	Comment

	DocOpen       // /**
	DocClose      // */
	DocStar       // leading * of a doc line
	DocWhitespace // spaces, tabs or a newline inside a doc comment
	DocTag        // @param, @return, ...
	DocString     // free text inside a doc comment, trimmed on the right

	// Variable is "$name".
	Variable
	// Ident is a bare identifier or a (possibly qualified) name.
	Ident
	IntLit
	FloatLit
	// StringLit is a single- or double-quoted string or a backtick command.
	StringLit
	// Heredoc is a complete heredoc or nowdoc including its terminator.
	Heredoc

	KwFunction
	// Closure is an anonymous "function"; the lexer reclassifies KwFunction.
	Closure
	KwFn
	KwReturn
	KwYield
	KwYieldFrom
	KwThrow
	KwClass
	KwInterface
	KwTrait
	KwEnum
	KwAbstract
	KwFinal
	KwPublic
	KwProtected
	KwPrivate
	KwStatic
	KwReadonly
	KwVar
	KwNew
	KwExtends
	KwImplements
	KwUse
	KwNamespace
	KwConst

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	AttrOpen  // #[
	Semicolon // ;
	Comma     // ,
	Amp       // &
	Ellipsis  // ...
	Question  // ?
	Colon     // :
	ColonColon
	Arrow    // -> and ?->
	FatArrow // =>
	Assign   // =
	Pipe     // |
	// Op is any other operator; Text carries the spelling.
	Op
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	InlineHTML:  "InlineHTML",
	OpenTag:     "OpenTag",
	OpenTagEcho: "OpenTagEcho",
	CloseTag:    "CloseTag",

	Whitespace: "Whitespace",
	Comment:    "Comment",

	DocOpen:       "DocOpen",
	DocClose:      "DocClose",
	DocStar:       "DocStar",
	DocWhitespace: "DocWhitespace",
	DocTag:        "DocTag",
	DocString:     "DocString",

	Variable:  "Variable",
	Ident:     "Ident",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	Heredoc:   "Heredoc",

	KwFunction:   "KwFunction",
	Closure:      "Closure",
	KwFn:         "KwFn",
	KwReturn:     "KwReturn",
	KwYield:      "KwYield",
	KwYieldFrom:  "KwYieldFrom",
	KwThrow:      "KwThrow",
	KwClass:      "KwClass",
	KwInterface:  "KwInterface",
	KwTrait:      "KwTrait",
	KwEnum:       "KwEnum",
	KwAbstract:   "KwAbstract",
	KwFinal:      "KwFinal",
	KwPublic:     "KwPublic",
	KwProtected:  "KwProtected",
	KwPrivate:    "KwPrivate",
	KwStatic:     "KwStatic",
	KwReadonly:   "KwReadonly",
	KwVar:        "KwVar",
	KwNew:        "KwNew",
	KwExtends:    "KwExtends",
	KwImplements: "KwImplements",
	KwUse:        "KwUse",
	KwNamespace:  "KwNamespace",
	KwConst:      "KwConst",

	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
	AttrOpen:   "AttrOpen",
	Semicolon:  "Semicolon",
	Comma:      "Comma",
	Amp:        "Amp",
	Ellipsis:   "Ellipsis",
	Question:   "Question",
	Colon:      "Colon",
	ColonColon: "ColonColon",
	Arrow:      "Arrow",
	FatArrow:   "FatArrow",
	Assign:     "Assign",
	Pipe:       "Pipe",
	Op:         "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Set is a bitset of kinds used by the View search helpers.
type Set [2]uint64

// NewSet builds a Set from the given kinds.
func NewSet(kinds ...Kind) Set {
	var s Set
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

// Has reports whether k belongs to the set.
func (s Set) Has(k Kind) bool {
	return s[k/64]&(1<<(k%64)) != 0
}

// With returns a copy of s extended by kinds.
func (s Set) With(kinds ...Kind) Set {
	for _, k := range kinds {
		s[k/64] |= 1 << (k % 64)
	}
	return s
}

var (
	// MethodPrefixes are the modifiers that may precede a function keyword.
	MethodPrefixes = NewSet(KwPublic, KwProtected, KwPrivate, KwStatic, KwAbstract, KwFinal, KwReadonly)
	// DocEmpty are doc comment tokens that carry no content.
	DocEmpty = NewSet(DocWhitespace, DocStar)
	// ReturnLike are the statements that hand a value (or control) back to the caller.
	ReturnLike = NewSet(KwReturn, KwYield, KwYieldFrom)
	// ClassLike are declarations that own a member body.
	ClassLike = NewSet(KwClass, KwInterface, KwTrait, KwEnum)
)
