package sniff

import (
	"strings"

	"docsniff/internal/diag"
)

// checkThrows requires every @throws tag to name an exception type.
// Inherit-doc blocks are checked too.
func (c *check) checkThrows() {
	for _, tag := range c.block.TagsNamed("@throws") {
		content := c.tagContent(tag)
		if content < 0 || exceptionType(c.v.Tokens[content].Text) == "" {
			c.report(diag.InvalidThrows, tag)
		}
	}
}

// exceptionType returns the first whitespace-delimited word of a @throws content.
func exceptionType(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
