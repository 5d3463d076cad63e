// Package sniff validates the doc comment that precedes a function
// declaration and proposes whole-token fixes for what it can repair.
//
// One call to Engine.Validate handles one function token. It reads the
// shared, immutable token.View and returns its findings by value, so calls
// for different functions may run in parallel without coordination.
package sniff

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"docsniff/internal/diag"
	"docsniff/internal/fix"
	"docsniff/internal/introspect"
	"docsniff/internal/source"
	"docsniff/internal/token"
)

// SpacingPolicy selects the gap enforced after a @param variable name.
type SpacingPolicy uint8

const (
	// SpacingAlign pads every name to the longest one in the block plus one space.
	SpacingAlign SpacingPolicy = iota
	// SpacingSingle requires exactly one space.
	SpacingSingle
)

// ParseSpacingPolicy maps a config value onto a policy.
func ParseSpacingPolicy(s string) (SpacingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "align":
		return SpacingAlign, nil
	case "single":
		return SpacingSingle, nil
	}
	return SpacingAlign, fmt.Errorf("unknown param spacing %q (want align or single)", s)
}

func (p SpacingPolicy) String() string {
	if p == SpacingSingle {
		return "single"
	}
	return "align"
}

// Options tune the validators.
type Options struct {
	ParamSpacing SpacingPolicy
}

// Result is everything one validation produced.
type Result struct {
	Function int    // function token index
	Name     string // declared name, empty when it could not be read
	// HasComment is true when any comment, doc or not, was attached.
	HasComment bool
	// Exempt is true for inherit-doc blocks.
	Exempt      bool
	Diagnostics []diag.Diagnostic
	Edits       []diag.FixEdit
}

// Fixable reports how many diagnostics carry an edit proposal.
func (r *Result) Fixable() int {
	n := 0
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Fixable {
			n++
		}
	}
	return n
}

// Engine is the function doc comment validator. The zero value uses the
// default options.
type Engine struct {
	opts Options
}

// New creates an engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Register returns the token kinds the engine wants to be called for.
func (e *Engine) Register() []token.Kind {
	return []token.Kind{token.KwFunction}
}

// Validate checks the doc comment of the function token at pos.
func (e *Engine) Validate(v *token.View, pos int) Result {
	return e.ValidateWithFacts(v, pos, introspect.Function(v, pos))
}

// ValidateWithFacts is Validate with caller-supplied declaration facts.
func (e *Engine) ValidateWithFacts(v *token.View, pos int, facts introspect.FunctionFacts) Result {
	c := &check{
		v:     v,
		pos:   pos,
		facts: facts,
		opts:  e.opts,
		res:   Result{Function: pos, Name: facts.Name},
	}
	if v.Kind(pos) != token.KwFunction {
		return c.res
	}

	block, ok := c.locate()
	if !ok {
		return c.res
	}
	c.block = block
	c.res.Exempt = c.isInheritDoc()

	c.checkReturn()
	c.checkThrows()
	c.checkParams()
	return c.res
}

// check is the per-function validation state.
type check struct {
	v     *token.View
	pos   int
	facts introspect.FunctionFacts
	block CommentBlock
	opts  Options
	res   Result
	fold  *cases.Caser
}

func (c *check) report(code diag.Code, tok int, args ...string) *diag.Diagnostic {
	sp := source.Span{File: c.v.File}
	if c.v.Valid(tok) {
		sp = c.v.Tokens[tok].Span
	}
	newDiag := diag.NewError
	if isWarning(code) {
		newDiag = diag.NewWarning
	}
	d := newDiag(code, sp, formatMessage(code, args)).WithArgs(args...).At(tok)
	c.res.Diagnostics = append(c.res.Diagnostics, d)
	return &c.res.Diagnostics[len(c.res.Diagnostics)-1]
}

func (c *check) reportFixable(code diag.Code, tok int, args ...string) {
	c.report(code, tok, args...).Fixable = true
}

// edit proposes replacing the whole text of token tok.
func (c *check) edit(tok int, text string) {
	if text == "" {
		c.res.Edits = append(c.res.Edits, fix.DeleteToken(tok, c.v.Tokens[tok]))
		return
	}
	c.res.Edits = append(c.res.Edits, fix.ReplaceToken(tok, c.v.Tokens[tok], text))
}

// tagContent returns the string token carrying a tag's inline content,
// or -1 when the tag has nothing after it on its line.
func (c *check) tagContent(tag int) int {
	ws, str := tag+1, tag+2
	if c.v.Kind(ws) != token.DocWhitespace || c.v.Kind(str) != token.DocString {
		return -1
	}
	if strings.ContainsRune(c.v.Tokens[ws].Text, '\n') {
		return -1
	}
	return str
}

// nextCode returns the first non-trivia token after i, or -1.
func (c *check) nextCode(i int) int {
	for j := i + 1; j < c.v.Len(); j++ {
		if !c.v.Tokens[j].IsTrivia() {
			return j
		}
	}
	return -1
}
