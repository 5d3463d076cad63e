// Package testkit holds structural checks shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"docsniff/internal/source"
	"docsniff/internal/token"
)

// CheckViewInvariants verifies the token view of sf:
// tokens tile the content without gaps and carry its exact text,
// Pair links are symmetric, Tags hang only off DocOpen and stay inside the
// comment, ScopeOpen/ScopeClose point at a matched brace pair.
func CheckViewInvariants(view *token.View, sf *source.File) error {
	if view == nil || sf == nil {
		return fmt.Errorf("nil view or file")
	}
	if view.File != sf.ID {
		return fmt.Errorf("view belongs to file %d, want %d", view.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var offset uint32
	for i, tok := range view.Tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Start != offset {
			return fmt.Errorf("token %d %s: starts at %d, previous ends at %d", i, tok.Kind, sp.Start, offset)
		}
		if sp.End <= sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d %s: bad span %v", i, tok.Kind, sp)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d %s: text %q, content %q", i, tok.Kind, tok.Text, got)
		}
		offset = sp.End

		if tok.Pair >= 0 {
			if !view.Valid(tok.Pair) || view.Tokens[tok.Pair].Pair != i {
				return fmt.Errorf("token %d %s: pair %d does not link back", i, tok.Kind, tok.Pair)
			}
		}
		if len(tok.Tags) > 0 {
			if err := checkTags(view, i); err != nil {
				return err
			}
		}
		if (tok.ScopeOpen < 0) != (tok.ScopeClose < 0) {
			return fmt.Errorf("token %d %s: half-open scope %d..%d", i, tok.Kind, tok.ScopeOpen, tok.ScopeClose)
		}
		if tok.ScopeOpen >= 0 {
			if tok.ScopeOpen <= i || view.At(tok.ScopeOpen).Pair != tok.ScopeClose {
				return fmt.Errorf("token %d %s: scope %d..%d is not a brace pair after it", i, tok.Kind, tok.ScopeOpen, tok.ScopeClose)
			}
		}
	}
	if offset != lenContent {
		return fmt.Errorf("tokens end at %d, content has %d bytes", offset, lenContent)
	}
	return nil
}

func checkTags(view *token.View, open int) error {
	tok := view.Tokens[open]
	if tok.Kind != token.DocOpen {
		return fmt.Errorf("token %d %s: tags on a non-doc token", open, tok.Kind)
	}
	end := tok.Pair
	if end < 0 {
		end = view.Len()
	}
	prev := open
	for _, tag := range tok.Tags {
		if tag <= prev || tag >= end {
			return fmt.Errorf("doc %d: tag index %d out of order or outside %d..%d", open, tag, open, end)
		}
		if k := view.Kind(tag); k != token.DocTag {
			return fmt.Errorf("doc %d: tag index %d is %s", open, tag, k)
		}
		prev = tag
	}
	return nil
}
