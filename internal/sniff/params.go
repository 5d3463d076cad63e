package sniff

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"

	"docsniff/internal/diag"
	"docsniff/internal/token"
	"docsniff/internal/typename"
)

func (c *check) checkParams() {
	if c.res.Exempt {
		return
	}

	var params []paramTag
	for i, t := range c.block.Tags {
		if t.Name != "@param" {
			continue
		}
		next := c.block.Closer
		if i+1 < len(c.block.Tags) {
			next = c.block.Tags[i+1].Pos
		}
		p := c.parseParam(t.Pos, next)
		switch {
		case p.Content < 0 || p.Type == "":
			c.report(diag.MissingParamType, t.Pos)
		case p.Var == "":
			c.report(diag.MissingParamName, t.Pos)
		case !p.HasComment():
			c.report(diag.MissingParamComment, t.Pos)
		}
		params = append(params, p)
	}

	// Имена после исправления известны заранее, поэтому ширина колонки
	// считается один раз и не зависит от порядка тегов.
	fixed := make([]string, len(params))
	maxVar := 0
	for i := range params {
		p := &params[i]
		fixed[i] = p.Var
		if p.Type == "" || p.Var == "" {
			continue
		}
		if i < len(c.facts.Params) {
			if prefix, bare, suffix := splitVar(p.Var); bare != c.facts.Params[i].Name {
				fixed[i] = prefix + c.facts.Params[i].Name + suffix
			}
		}
		maxVar = max(maxVar, runewidth.StringWidth(fixed[i]))
	}

	documented := make(map[string]bool, len(params))
	for i := range params {
		c.checkParam(&params[i], i, fixed[i], maxVar, documented)
	}

	for _, real := range c.facts.Params {
		if !documented[real.Name] {
			c.report(diag.MissingParamTag, c.block.Opener, real.Name)
		}
	}
}

// checkParam validates one parsed tag and composes every fix touching its
// content token into a single edit.
func (c *check) checkParam(p *paramTag, pos int, fixedVar string, maxVar int, documented map[string]bool) {
	if p.Type == "" {
		// тег без типа всё равно документирует своё имя
		if _, bare, _ := splitVar(p.Var); bare != "" {
			documented[bare] = true
		}
		return
	}

	newType := typename.CanonicalList(p.Type)
	reported := false
	for _, alt := range typename.Split(p.Type) {
		if s := typename.Canonical(alt); s != alt {
			c.reportFixable(diag.IncorrectParamVarName, p.Tag, s, alt)
			reported = true
		}
	}
	// "int|int": каждая альтернатива корректна, но список схлопывается
	if !reported && newType != p.Type {
		c.reportFixable(diag.IncorrectParamVarName, p.Tag, newType, p.Type)
	}

	newVar := p.Var
	if p.Var != "" {
		_, bare, _ := splitVar(p.Var)
		documented[bare] = true
		if pos < len(c.facts.Params) {
			real := c.facts.Params[pos].Name
			if bare != real {
				code := diag.ParamNameNoMatch
				if c.foldEqual(bare, real) {
					code = diag.ParamNameNoCaseMatch
				}
				c.reportFixable(code, p.Tag, p.Var, real)
				newVar = fixedVar
			}
		} else if !variadicMarked(p.Var) && !c.matchesVariadic(bare) {
			c.report(diag.ExtraParamComment, p.Tag)
		}
	}

	gap := p.VarGap
	spacingFixed := false
	if p.HasComment() {
		want := 1
		if c.opts.ParamSpacing == SpacingAlign {
			want = maxVar - runewidth.StringWidth(newVar) + 1
		}
		if len(p.VarGap) != want {
			c.reportFixable(diag.SpacingAfterParamName, p.Tag, strconv.Itoa(want), strconv.Itoa(len(p.VarGap)))
			gap = strings.Repeat(" ", want)
			spacingFixed = true
		}
	}

	// Колонки продолжений считаются в экранной ширине: имя может быть не ASCII.
	prefix := newType + p.TypeGap + newVar + gap
	descCol := int(c.v.Tokens[p.Content].Col) + runewidth.StringWidth(prefix)

	if spacingFixed {
		c.edit(p.Content, prefix+c.rewrap(p, descCol))
		last := p.Lines[len(p.Lines)-1].Token
		for i := p.Content + 1; i <= last; i++ {
			c.edit(i, "")
		}
		return
	}

	if newType != p.Type || newVar != p.Var {
		desc := ""
		if p.HasComment() {
			desc = p.Lines[0].Text
		}
		c.edit(p.Content, prefix+desc)
	}
	c.checkAlignment(p, descCol)
}

// checkAlignment requires every continuation line of a description to start
// at descCol, the column of the first line's description once fixed.
func (c *check) checkAlignment(p *paramTag, descCol int) {
	if len(p.Lines) < 2 {
		return
	}
	for _, line := range p.Lines[1:] {
		t := c.v.Tokens[line.Token]
		if int(t.Col) == descCol {
			continue
		}
		prev := c.v.At(line.Token - 1)
		hasWS := prev.Kind == token.DocWhitespace && !strings.ContainsRune(prev.Text, '\n')

		var expected, found int
		if hasWS {
			expected = descCol - int(prev.Col)
			found = len(prev.Text)
		} else {
			expected = descCol - int(t.Col)
		}
		if expected < 0 {
			// звёздочка правее колонки описания, пробелами не выровнять
			continue
		}

		code := diag.ParamCommentAlignmentExceeded
		if found < expected {
			code = diag.ParamCommentAlignment
		}
		c.reportFixable(code, line.Token, strconv.Itoa(expected), strconv.Itoa(found))
		padding := strings.Repeat(" ", expected)
		if hasWS {
			c.edit(line.Token-1, padding)
		} else {
			c.edit(line.Token, padding+line.Text)
		}
	}
}

// matchesVariadic reports whether name is the trailing variadic parameter;
// extra tags documenting it again are not superfluous.
func (c *check) matchesVariadic(name string) bool {
	n := len(c.facts.Params)
	return n > 0 && c.facts.Params[n-1].Variadic && c.facts.Params[n-1].Name == name
}

// foldEqual compares names under Unicode case folding. The caser keeps state,
// so it lives on the check and is never shared between goroutines.
func (c *check) foldEqual(a, b string) bool {
	if c.fold == nil {
		fold := cases.Fold()
		c.fold = &fold
	}
	return c.fold.String(a) == c.fold.String(b)
}
