package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"docsniff/internal/diag"
	"docsniff/internal/source"
)

// SARIF 2.1.0, the subset code scanning services read.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool              `json:"tool"`
	AutomationDetails sarifAutomation        `json:"automationDetails"`
	Invocations       []sarifInvocation      `json:"invocations,omitempty"`
	Results           []sarifResult          `json:"results"`
	OriginalURIBaseID map[string]sarifURIRef `json:"originalUriBaseIds,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
	Properties       struct {
		Category string `json:"category"`
	} `json:"properties"`
}

type sarifAutomation struct {
	ID   string `json:"id"`
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool     `json:"executionSuccessful"`
	Arguments           []string `json:"arguments,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifURIRef `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifURIRef struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId,omitempty"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// Rules list only the codes that occur, in code order.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	items := bag.Items()

	var codes []diag.Code
	seen := make(map[diag.Code]bool)
	for _, d := range items {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	ruleIndex := make(map[diag.Code]int, len(codes))
	rules := make([]sarifRule, len(codes))
	for i, c := range codes {
		ruleIndex[c] = i
		rules[i] = sarifRule{ID: c.Number(), Name: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}}
		rules[i].Properties.Category = c.Category().String()
	}

	results := make([]sarifResult, 0, len(items))
	for _, d := range items {
		start, end := fs.Resolve(d.Primary)
		uri := displayPath(fs.Get(d.Primary.File), fs, PathModeRelative)
		results = append(results, sarifResult{
			RuleID:    d.Code.Number(),
			RuleIndex: ruleIndex[d.Code],
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{{PhysicalLocation: sarifPhysical{
				ArtifactLocation: sarifURIRef{URI: filepath.ToSlash(uri), URIBaseID: "%SRCROOT%"},
				Region:           sarifRegion{StartLine: start.Line, StartColumn: start.Col, EndLine: end.Line, EndColumn: end.Col},
			}}},
		})
	}

	runID := meta.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	name := meta.ToolName
	if name == "" {
		name = "docsniff"
	}
	run := sarifRun{
		Tool:              sarifTool{Driver: sarifDriver{Name: name, Version: meta.ToolVersion, Rules: rules}},
		AutomationDetails: sarifAutomation{ID: strings.ToLower(name) + "/" + runID, GUID: runID},
		Results:           results,
	}
	if base := fs.BaseDir(); base != "" {
		run.OriginalURIBaseID = map[string]sarifURIRef{"%SRCROOT%": {URI: "file://" + filepath.ToSlash(base) + "/"}}
	}
	if len(meta.InvocationArgs) > 0 {
		run.Invocations = []sarifInvocation{{ExecutionSuccessful: true, Arguments: meta.InvocationArgs}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(sarifLog{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	})
}
