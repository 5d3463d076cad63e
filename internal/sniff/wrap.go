package sniff

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"docsniff/internal/token"
)

// wrapWords breaks text into lines of at most limit bytes without cutting
// words. A line that would start with '@' is glued to the previous one so
// the result never grows a new tag.
func wrapWords(text string, limit int) []string {
	ww := wordwrap.NewWriter(limit)
	ww.Breakpoints = nil
	_, _ = ww.Write([]byte(text))
	_ = ww.Close()

	var out []string
	for _, line := range strings.Split(ww.String(), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		if len(out) > 0 && strings.HasPrefix(line, "@") {
			out[len(out)-1] += " " + line
			continue
		}
		out = append(out, line)
	}
	return out
}

// rewrap reflows a multi-line @param description so that every line starts
// at descCol. The width budget is the length of the original first line.
func (c *check) rewrap(p *paramTag, descCol int) string {
	if len(p.Lines) < 2 {
		return p.Comment
	}
	lines := wrapWords(p.Comment, len(p.Lines[0].Text))
	if len(lines) == 0 {
		return p.Comment
	}

	var pad string
	star := c.v.FindPrevious(token.NewSet(token.DocStar), p.Tag, c.block.Opener, false)
	if star >= 0 && c.v.Tokens[star].Line == c.v.Tokens[p.Tag].Line {
		col := int(c.v.Tokens[star].Col)
		pad = strings.Repeat(" ", col-1) + "*" + strings.Repeat(" ", max(descCol-col-1, 0))
	} else {
		pad = strings.Repeat(" ", max(descCol-1, 0))
	}
	return strings.Join(lines, "\n"+pad)
}
