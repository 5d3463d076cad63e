package diag

import (
	"docsniff/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a proposed whole-token replacement. Token indexes the View the
// edit was computed from; Span and OldText are that token's location and text
// at proposal time and guard the edit when it is applied.
type FixEdit struct {
	Token   int
	Span    source.Span
	OldText string
	NewText string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Args are the values substituted into the message template.
	Args    []string
	Primary source.Span
	// Token is the anchor token index, -1 for diagnostics not tied to a token.
	Token   int
	Fixable bool
	Notes   []Note
}
