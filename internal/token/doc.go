// Package token defines the lexical token kinds of PHP source and the
// read-only View that validators index into.
// Invariants:
//   - Token.Text is a slice of the original source (no copies) and Span
//     matches Text exactly.
//   - Doc comments are split into sub-tokens (DocOpen, DocStar, DocWhitespace,
//     DocTag, DocString, DocClose); other comments are a single Comment token.
//   - A View is never mutated after the lexer returns it. Edits are proposed
//     against token indices and applied to source bytes elsewhere.
//   - Keywords are matched case-insensitively, as PHP does.
package token
