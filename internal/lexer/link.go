package lexer

import "docsniff/internal/token"

// link fills the cross-token references of a freshly lexed view:
// delimiter pairs, doc comment tags, closures and body scopes.
func link(v *token.View) {
	linkPairs(v)
	linkDocComments(v)
	markClosures(v)
	linkScopes(v)
}

func linkPairs(v *token.View) {
	var stack []int
	for i := range v.Tokens {
		switch v.Tokens[i].Kind {
		case token.LParen, token.LBrace, token.LBracket, token.AttrOpen:
			stack = append(stack, i)
		case token.RParen, token.RBrace, token.RBracket:
			// несбалансированные закрывающие скобки остаются без пары
			for j := len(stack) - 1; j >= 0; j-- {
				if closes(v.Tokens[stack[j]].Kind, v.Tokens[i].Kind) {
					open := stack[j]
					v.Tokens[open].Pair = i
					v.Tokens[i].Pair = open
					stack = stack[:j]
					break
				}
			}
		}
	}
}

func closes(open, closeKind token.Kind) bool {
	switch open {
	case token.LParen:
		return closeKind == token.RParen
	case token.LBrace:
		return closeKind == token.RBrace
	case token.LBracket, token.AttrOpen:
		return closeKind == token.RBracket
	}
	return false
}

func linkDocComments(v *token.View) {
	open := -1
	for i := range v.Tokens {
		switch v.Tokens[i].Kind {
		case token.DocOpen:
			open = i
		case token.DocTag:
			if open >= 0 {
				v.Tokens[open].Tags = append(v.Tokens[open].Tags, i)
			}
		case token.DocClose:
			if open >= 0 {
				v.Tokens[open].Pair = i
				v.Tokens[i].Pair = open
			}
			open = -1
		}
	}
}

// markClosures reclassifies "function" followed by "(" or "&(" as a closure.
func markClosures(v *token.View) {
	for i := range v.Tokens {
		if v.Tokens[i].Kind != token.KwFunction {
			continue
		}
		next := nextCode(v, i)
		if v.Kind(next) == token.Amp {
			next = nextCode(v, next)
		}
		if v.Kind(next) == token.LParen {
			v.Tokens[i].Kind = token.Closure
		}
	}
}

func linkScopes(v *token.View) {
	for i := range v.Tokens {
		switch v.Tokens[i].Kind {
		case token.KwFunction, token.Closure:
			params := v.FindNext(token.NewSet(token.LParen, token.LBrace, token.Semicolon), i+1, -1, false)
			if v.Kind(params) != token.LParen || v.Tokens[params].Pair < 0 {
				continue
			}
			setScope(v, i, v.Tokens[params].Pair+1)
		case token.KwClass, token.KwInterface, token.KwTrait, token.KwEnum:
			setScope(v, i, i+1)
		}
	}
}

// setScope finds the first brace body from start, stepping over parenthesised
// groups ("use (...)", "new class(...)"). A ";" first means there is no body.
func setScope(v *token.View, owner, start int) {
	for j := start; j < len(v.Tokens); j++ {
		switch v.Tokens[j].Kind {
		case token.LParen:
			if v.Tokens[j].Pair < 0 {
				return
			}
			j = v.Tokens[j].Pair
		case token.LBrace:
			if v.Tokens[j].Pair < 0 {
				return
			}
			v.Tokens[owner].ScopeOpen = j
			v.Tokens[owner].ScopeClose = v.Tokens[j].Pair
			return
		case token.Semicolon, token.RBrace, token.FatArrow:
			return
		}
	}
}

// nextCode returns the next token that is neither whitespace nor a comment.
func nextCode(v *token.View, i int) int {
	for j := i + 1; j < len(v.Tokens); j++ {
		if !v.Tokens[j].IsTrivia() {
			return j
		}
	}
	return -1
}
