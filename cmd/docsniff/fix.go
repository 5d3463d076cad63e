package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docsniff/internal/diag"
	"docsniff/internal/diagfmt"
	"docsniff/internal/driver"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [file.php|directory]",
	Short: "Rewrite fixable doc comment problems in place",
	Long: `Fix applies every available doc comment fix, re-checks the file and repeats
until nothing changes. Diagnostics without a fix are printed afterwards.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
	fixCmd.Flags().String("format", "pretty", "output format for remaining diagnostics (pretty|short|json)")
	addRunFlags(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	run, err := prepareRun(cmd, args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	pathModeFlag, err := flags.GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeFlag)
	if err != nil {
		return err
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	timer := newTimer(run.g.timings)
	opts := run.driverOptions(nil, timer)
	fixAll := func(sink driver.ProgressSink) (*driver.FixRunResult, error) {
		opts.Progress = sink
		return driver.Fix(cmd.Context(), run.files, run.baseDir(), opts, dryRun)
	}
	var result *driver.FixRunResult
	if run.ui {
		result, err = runWithUI("fixing", run.files, fixAll)
	} else {
		result, err = fixAll(nil)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	remaining := diag.NewBag(0)
	var changed, failed int
	for i := range result.Files {
		f := &result.Files[i]
		if f.Err != nil {
			failed++
			run.g.logger.Error("cannot fix file", "path", f.Path, "err", f.Err)
			continue
		}
		remaining.Merge(f.Remaining)
		for _, s := range f.Skipped {
			run.g.logger.Warn("fix skipped", "path", f.Path, "reason", s.Reason)
		}
		if !f.Changed {
			continue
		}
		changed++
		if format == "json" || run.g.quiet {
			continue
		}
		verb := "fixed"
		if dryRun {
			verb = "would fix"
		}
		fmt.Fprintf(out, "%s %s (%d %s, %d %s)\n", verb, displayPath(f.Path),
			f.Applied, plural(f.Applied, "edit", "edits"), f.Passes, plural(f.Passes, "pass", "passes"))
	}

	switch format {
	case "pretty":
		if remaining.Len() > 0 {
			fmt.Fprintln(out)
			diagfmt.Pretty(out, remaining, result.FileSet, diagfmt.PrettyOpts{
				Color:     run.g.color(os.Stdout),
				Context:   1,
				PathMode:  pathMode,
				ShowNotes: withNotes,
			})
		}
	case "short":
		diagfmt.Short(out, remaining, result.FileSet, withNotes)
	case "json":
		output := diagfmt.BuildDiagnosticsOutput(remaining, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
		for _, f := range result.Files {
			if f.Err != nil {
				output.Errors = append(output.Errors, diagfmt.FileErrorJSON{File: f.Path, Error: f.Err.Error()})
			}
		}
		output.Stats = fixSummary{Stats: driver.SummarizeFix(result), Changed: changed, DryRun: dryRun}
		if timer != nil {
			report := timer.Report()
			output.Timings = &report
		}
		if err := diagfmt.WriteJSON(out, output); err != nil {
			return err
		}
	}
	if format != "json" {
		if !run.g.quiet {
			writeFixSummary(out, changed, len(result.Files), dryRun, driver.SummarizeFix(result))
		}
		if timer != nil {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}

	if remaining.HasErrors() || failed > 0 {
		exitWith(exitFindings)
	}
	return nil
}

// fixSummary is the "stats" object of fix --format json.
type fixSummary struct {
	driver.Stats
	Changed int  `json:"changed"`
	DryRun  bool `json:"dry_run"`
}

func writeFixSummary(w io.Writer, changed, total int, dryRun bool, st driver.Stats) {
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	fmt.Fprintf(w, "%s %d of %d %s, %d %s and %d %s left\n", verb,
		changed, total, plural(total, "file", "files"),
		st.Errors, plural(st.Errors, "error", "errors"),
		st.Warnings, plural(st.Warnings, "warning", "warnings"))
}

// displayPath shortens path relative to the working directory when it lies
// below it.
func displayPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
