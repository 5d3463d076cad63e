// Package diag defines the diagnostic model shared by the lexer, the doc
// comment validators and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string ID
//     such as "MissingReturn"; IDs are what users exclude in config.
//   - Message – rendered human text; Args keeps the substitution values.
//   - Primary span and Token – the most specific anchor available.
//   - Fixable – whether an edit proposal exists for the finding.
//   - Notes – optional secondary spans/messages for additional context.
//
// FixEdit is a proposed whole-token replacement. It carries the token index
// it was computed against together with that token's span and text, so the
// fix engine can detect stale or conflicting edits before touching bytes.
//
// # Emitting diagnostics
//
// Producers that stream findings use a Reporter. ReportBuilder (or the
// ReportError/ReportWarning helpers) collects notes and args before Emit.
// BagReporter aggregates into a Bag, which supports sorting, deduplication,
// filtering and transformation. DedupReporter drops repeated findings.
//
// Package diag performs no IO; rendering lives in internal/diagfmt and
// application of edits in internal/fix.
package diag
