package sniff

import (
	"strings"

	"docsniff/internal/token"
)

// commentLine is one line of a @param description.
type commentLine struct {
	Token  int
	Indent int // width of the whitespace token before it
	Text   string
}

// paramTag is a parsed @param tag. Its content token always equals
// Type + TypeGap + Var + VarGap + Lines[0].Text.
type paramTag struct {
	Tag     int
	Content int // -1 when the tag has no inline content
	Type    string
	TypeGap string
	Var     string
	VarGap  string
	Comment string // all description lines joined by single spaces
	Lines   []commentLine
}

// HasComment reports whether the tag has a description.
func (p *paramTag) HasComment() bool { return p.Comment != "" }

// paramState is the position of the @param content grammar.
type paramState uint8

const (
	stType paramState = iota
	stVar
	stVarGap
)

// parseParamContent splits "<type> <sigil-name> <description>" into its
// fields. The sigil is "$", or "&" starting "&$" / "&...". A "..." written
// right before the sigil belongs to the variable. Concatenating the results
// gives back s.
func parseParamContent(s string) (typ, typeGap, variable, varGap, comment string) {
	state := stType
	mark := 0
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch state {
		case stType:
			if !isSigil(s, i) {
				continue
			}
			start := i
			if b == '$' && strings.HasSuffix(s[:i], "...") {
				start = i - 3
			}
			typ = strings.TrimRight(s[:start], " \t")
			typeGap = s[len(typ):start]
			mark = start
			state = stVar
		case stVar:
			if isBlankByte(b) {
				variable = s[mark:i]
				mark = i
				state = stVarGap
			}
		case stVarGap:
			if !isBlankByte(b) {
				return typ, typeGap, variable, s[mark:i], s[i:]
			}
		}
	}

	switch state {
	case stType:
		typ = strings.TrimRight(s, " \t")
		return typ, s[len(typ):], "", "", ""
	case stVar:
		return typ, typeGap, s[mark:], "", ""
	}
	// только пробелы после имени: описания нет
	return typ, typeGap, variable, s[mark:], ""
}

func isSigil(s string, i int) bool {
	switch s[i] {
	case '$':
		return true
	case '&':
		return i+1 < len(s) && (s[i+1] == '$' || s[i+1] == '.')
	}
	return false
}

func isBlankByte(b byte) bool { return b == ' ' || b == '\t' }

// parseParam builds the record for the @param tag at tagIdx; next is the
// position of the following tag or the block closer.
func (c *check) parseParam(tagIdx, next int) paramTag {
	p := paramTag{Tag: tagIdx, Content: c.tagContent(tagIdx)}
	if p.Content < 0 {
		return p
	}
	content := c.v.Tokens[p.Content]
	var first string
	p.Type, p.TypeGap, p.Var, p.VarGap, first = parseParamContent(content.Text)
	if p.Var == "" || first == "" {
		return p
	}

	p.Comment = first
	p.Lines = append(p.Lines, commentLine{Token: p.Content, Indent: len(p.VarGap), Text: first})
	for i := p.Content + 1; i < next; i++ {
		if c.v.Kind(i) != token.DocString {
			continue
		}
		indent := 0
		if prev := c.v.Tokens[i-1]; prev.Kind == token.DocWhitespace && !strings.ContainsRune(prev.Text, '\n') {
			indent = len(prev.Text)
		}
		text := c.v.Tokens[i].Text
		p.Comment += " " + text
		p.Lines = append(p.Lines, commentLine{Token: i, Indent: indent, Text: text})
	}
	return p
}

// variadicMarked reports whether a documented name carries a variadic
// marker: a "..." prefix (after an optional "&") or a ",..." suffix.
func variadicMarked(name string) bool {
	return strings.HasPrefix(strings.TrimPrefix(name, "&"), "...") || strings.HasSuffix(name, ",...")
}

// splitVar separates a documented variable into its marker prefix, the bare
// "$name" and any ",..." suffix.
func splitVar(name string) (prefix, bare, suffix string) {
	bare = name
	if strings.HasSuffix(bare, ",...") {
		suffix = ",..."
		bare = strings.TrimSuffix(bare, suffix)
	}
	i := strings.IndexByte(bare, '$')
	if i < 0 {
		return "", bare, suffix
	}
	return bare[:i], bare[i:], suffix
}
