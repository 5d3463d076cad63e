package sniff

import (
	"strings"

	"docsniff/internal/diag"
	"docsniff/internal/token"
)

// TagRef is one tag of a doc block.
type TagRef struct {
	Pos  int
	Name string
}

// CommentBlock is the doc comment attached to the function being checked.
type CommentBlock struct {
	Opener, Closer int
	Tags           []TagRef
}

// TagsNamed returns the positions of all tags with the given name, in order.
func (b CommentBlock) TagsNamed(name string) []int {
	var out []int
	for _, t := range b.Tags {
		if t.Name == name {
			out = append(out, t.Pos)
		}
	}
	return out
}

var locateSkip = token.MethodPrefixes.With(token.Whitespace)

// precedingCode walks back from i over whitespace, modifiers and attributes.
func (c *check) precedingCode(i int) int {
	for {
		j := c.v.FindPrevious(locateSkip, i, 0, true)
		if c.v.Kind(j) != token.RBracket {
			return j
		}
		open := c.v.Tokens[j].Pair
		if c.v.Kind(open) != token.AttrOpen {
			return j
		}
		i = open - 1
	}
}

// locate finds the doc block of the function. It reports Missing or
// WrongStyle and returns false when there is nothing further to check.
func (c *check) locate() (CommentBlock, bool) {
	end := c.precedingCode(c.pos - 1)

	if c.v.Kind(end) == token.Comment {
		// "} // end if" belongs to the code before it, not to the function
		prev := c.precedingCode(end - 1)
		if prev >= 0 && c.v.Tokens[prev].EndLine() == c.v.Tokens[end].Line {
			end = prev
		}
	}

	switch c.v.Kind(end) {
	case token.DocClose:
	case token.Comment:
		c.res.HasComment = true
		c.report(diag.WrongStyle, c.pos)
		return CommentBlock{}, false
	default:
		c.report(diag.Missing, c.pos, c.facts.Name)
		return CommentBlock{}, false
	}
	c.res.HasComment = true

	closer := c.v.Tokens[end]
	block := CommentBlock{Opener: closer.Pair, Closer: end}
	if block.Opener < 0 {
		c.report(diag.Missing, c.pos, c.facts.Name)
		return CommentBlock{}, false
	}
	for _, t := range c.v.Tokens[block.Opener].Tags {
		block.Tags = append(block.Tags, TagRef{Pos: t, Name: c.v.Tokens[t].Text})
	}

	if next := c.nextCode(end); next >= 0 && c.v.Tokens[next].Line != closer.Line+1 {
		c.report(diag.SpacingAfter, end)
	}

	for _, tag := range block.TagsNamed("@see") {
		str := c.v.FindNext(token.NewSet(token.DocString), tag, end, false)
		if str < 0 || c.v.Tokens[str].Line != c.v.Tokens[tag].Line {
			c.report(diag.EmptySees, tag)
		}
	}
	return block, true
}

// isInheritDoc reports whether the block delegates its contract to a parent:
// it starts with @inheritDoc, or with {@inheritDoc} and has no @param or
// @return tag of its own.
func (c *check) isInheritDoc() bool {
	first := c.v.FindNext(token.DocEmpty, c.block.Opener+1, c.block.Closer, true)
	if first < 0 {
		return false
	}
	text := c.v.Tokens[first].Text
	if strings.EqualFold(text, "@inheritDoc") {
		return true
	}
	if !strings.EqualFold(text, "{@inheritDoc}") {
		return false
	}
	for _, t := range c.block.Tags {
		if t.Name == "@param" || t.Name == "@return" {
			return false
		}
	}
	return true
}
