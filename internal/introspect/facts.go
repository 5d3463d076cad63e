// Package introspect answers structural questions about a function
// declaration in a token view: its name, enclosing type, parameter list
// and body range.
package introspect

import (
	"strings"

	"docsniff/internal/token"
)

// ParamFact describes one declared parameter. Name includes the "$" sigil.
type ParamFact struct {
	Name     string
	ByRef    bool
	Variadic bool
	Token    int // index of the variable token
}

// BodyRange is the token range [Start, End) of a function body: Start is the
// opening brace, End the closing one. OK is false for bodiless declarations.
type BodyRange struct {
	Start, End int
	OK         bool
}

// FunctionFacts is what the validators need to know about a declaration.
type FunctionFacts struct {
	Name                      string
	EnclosingType             string
	HasEnclosingType          bool
	IsConstructorOrDestructor bool
	Params                    []ParamFact
	Body                      BodyRange
}

// Function collects the facts for the function token at pos.
// Malformed declarations yield partial facts, never a panic.
func Function(v *token.View, pos int) FunctionFacts {
	var facts FunctionFacts
	if !v.Valid(pos) {
		return facts
	}

	nameTok := nextCode(v, pos)
	if v.Kind(nameTok) == token.Amp {
		nameTok = nextCode(v, nameTok)
	}
	if v.Kind(nameTok) == token.Ident {
		facts.Name = v.Tokens[nameTok].Text
	}
	facts.IsConstructorOrDestructor = strings.EqualFold(facts.Name, "__construct") ||
		strings.EqualFold(facts.Name, "__destruct")

	if owner := EnclosingType(v, pos); owner >= 0 {
		facts.HasEnclosingType = true
		if n := nextCode(v, owner); v.Kind(n) == token.Ident {
			facts.EnclosingType = v.Tokens[n].Text
		}
	}

	open := v.FindNext(token.NewSet(token.LParen, token.LBrace, token.Semicolon), pos+1, -1, false)
	if v.Kind(open) == token.LParen && v.Tokens[open].Pair > open {
		facts.Params = Params(v, open)
	}

	fn := v.Tokens[pos]
	if fn.ScopeOpen >= 0 && fn.ScopeClose > fn.ScopeOpen {
		facts.Body = BodyRange{Start: fn.ScopeOpen, End: fn.ScopeClose, OK: true}
	}
	return facts
}

// EnclosingType returns the innermost class-like token whose body contains
// pos, or -1 for a free function.
func EnclosingType(v *token.View, pos int) int {
	for i := pos - 1; i >= 0; i-- {
		t := v.Tokens[i]
		if !token.ClassLike.Has(t.Kind) || t.ScopeOpen < 0 {
			continue
		}
		if t.ScopeOpen < pos && pos < t.ScopeClose {
			return i
		}
	}
	return -1
}

// Params parses the parameter list whose "(" is at open.
func Params(v *token.View, open int) []ParamFact {
	closeIdx := v.Tokens[open].Pair
	var (
		out  []ParamFact
		seen bool // в текущем параметре переменная уже найдена
	)
	for i := open + 1; i < closeIdx; i++ {
		t := v.Tokens[i]
		switch t.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.AttrOpen:
			// типы DNF, атрибуты и значения по умолчанию
			if t.Pair > i {
				i = t.Pair
			}
		case token.Comma:
			seen = false
		case token.Variable:
			if seen {
				continue
			}
			seen = true
			p := ParamFact{Name: t.Text, Token: i}
			prev := prevCode(v, i)
			if v.Kind(prev) == token.Ellipsis {
				p.Variadic = true
				prev = prevCode(v, prev)
			}
			if v.Kind(prev) == token.Amp {
				p.ByRef = true
			}
			out = append(out, p)
		}
	}
	return out
}

func nextCode(v *token.View, i int) int {
	for j := i + 1; j < v.Len(); j++ {
		if !v.Tokens[j].IsTrivia() {
			return j
		}
	}
	return -1
}

func prevCode(v *token.View, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !v.Tokens[j].IsTrivia() {
			return j
		}
	}
	return -1
}
