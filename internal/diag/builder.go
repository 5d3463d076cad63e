package diag

import "docsniff/internal/source"

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
		Token:    -1,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func NewWarning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithArgs records the template substitution values.
func (d Diagnostic) WithArgs(args ...string) Diagnostic {
	d.Args = append(d.Args, args...)
	return d
}

// At sets the anchor token.
func (d Diagnostic) At(tok int) Diagnostic {
	d.Token = tok
	return d
}

// AsFixable marks the diagnostic as having an edit proposal.
func (d Diagnostic) AsFixable() Diagnostic {
	d.Fixable = true
	return d
}
