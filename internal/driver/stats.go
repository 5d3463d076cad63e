package driver

import "docsniff/internal/diag"

// Stats summarises a run for "check --stats".
type Stats struct {
	Files      int `json:"files"`
	Unreadable int `json:"unreadable"`
	CacheHits  int `json:"cache_hits"`
	Functions  int `json:"functions"`
	// Commented counts functions with any comment attached.
	Commented int `json:"commented"`
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Fixable   int `json:"fixable"`
	// ByCode counts diagnostics per code ID.
	ByCode map[string]int `json:"by_code"`
}

// Uncommented is the number of functions without a comment.
func (s Stats) Uncommented() int {
	return s.Functions - s.Commented
}

// Summarize aggregates the per-file results of a check run.
func Summarize(result *CheckResult) Stats {
	st := Stats{ByCode: make(map[string]int)}
	if result == nil {
		return st
	}
	for i := range result.Files {
		f := &result.Files[i]
		st.Files++
		if f.Err != nil {
			st.Unreadable++
			continue
		}
		if f.Cached {
			st.CacheHits++
		}
		st.Functions += f.Functions
		st.Commented += f.Commented
		st.add(f.Bag)
	}
	return st
}

// SummarizeFix aggregates the remaining diagnostics of a fix run.
func SummarizeFix(result *FixRunResult) Stats {
	st := Stats{ByCode: make(map[string]int)}
	if result == nil {
		return st
	}
	for i := range result.Files {
		f := &result.Files[i]
		st.Files++
		if f.Err != nil {
			st.Unreadable++
			continue
		}
		st.Functions += f.Functions
		st.Commented += f.Commented
		st.add(f.Remaining)
	}
	return st
}

func (s *Stats) add(bag *diag.Bag) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			s.Errors++
		case diag.SevWarning:
			s.Warnings++
		}
		if d.Fixable {
			s.Fixable++
		}
		s.ByCode[d.Code.ID()]++
	}
}
