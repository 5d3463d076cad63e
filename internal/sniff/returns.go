package sniff

import (
	"strings"

	"docsniff/internal/diag"
	"docsniff/internal/token"
	"docsniff/internal/typename"
)

func (c *check) checkReturn() {
	if c.res.Exempt {
		return
	}

	ret := -1
	for _, tag := range c.block.TagsNamed("@return") {
		if ret >= 0 {
			c.report(diag.DuplicateReturn, tag)
			return
		}
		ret = tag
	}

	if c.facts.IsConstructorOrDestructor {
		return
	}
	if ret < 0 {
		c.report(diag.MissingReturn, c.block.Closer)
		return
	}

	content := c.tagContent(ret)
	if content < 0 {
		c.report(diag.MissingReturnType, ret)
		return
	}

	text := c.v.Tokens[content].Text
	types := text
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		types = text[:i]
	}
	names := typename.CanonicalNames(types)
	suggested := strings.Join(names, "|")
	if suggested != types {
		c.reportFixable(diag.InvalidReturn, ret, suggested, types)
		c.edit(content, suggested+text[len(types):])
	}

	if !c.facts.Body.OK {
		return
	}
	body := c.facts.Body

	if len(names) == 1 && names[0] == "void" {
		r := c.findReturn(body.Start, body.End)
		if r >= 0 && c.v.Kind(c.nextCode(r)) != token.Semicolon {
			d := c.report(diag.InvalidReturnVoid, ret)
			d.Notes = append(d.Notes, diag.Note{Span: c.v.Tokens[r].Span, Msg: "value returned here"})
		}
		return
	}

	if typename.Contains(names, "mixed") || typename.Contains(names, "void") {
		return
	}
	r := c.findReturn(body.Start, body.End)
	if r < 0 {
		if !c.hasThrow(body.Start, body.End) {
			c.report(diag.InvalidNoReturn, ret)
		}
		return
	}
	if c.v.Kind(c.nextCode(r)) == token.Semicolon {
		c.report(diag.InvalidReturnNotVoid, r)
	}
}

// findReturn returns the first return, yield or yield from in [from, to)
// that belongs to the function itself: nested closure and function bodies
// are stepped over.
func (c *check) findReturn(from, to int) int {
	for i := from; i < to && i < c.v.Len(); i++ {
		t := c.v.Tokens[i]
		switch {
		case t.Kind == token.Closure || t.Kind == token.KwFunction:
			if t.ScopeClose > i {
				i = t.ScopeClose
			}
		case token.ReturnLike.Has(t.Kind):
			return i
		}
	}
	return -1
}

func (c *check) hasThrow(from, to int) bool {
	return c.v.FindNext(token.NewSet(token.KwThrow), from, to, false) >= 0
}
