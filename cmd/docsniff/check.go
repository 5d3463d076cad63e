package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docsniff/internal/config"
	"docsniff/internal/diag"
	"docsniff/internal/diagfmt"
	"docsniff/internal/driver"
	"docsniff/internal/observ"
	"docsniff/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.php|directory]",
	Short: "Check PHP function doc comments",
	Long: `Check validates the doc comment of every named function in a PHP file, or in
every PHP file of a directory (default: the current directory). Files matched by
.gitignore or the config ignore patterns are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	checkCmd.Flags().Bool("stats", false, "print a summary of functions and findings")
	checkCmd.Flags().Bool("no-warnings", false, "drop warnings from the output")
	checkCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	addRunFlags(checkCmd)
	checkCmd.MarkFlagsMutuallyExclusive("no-warnings", "warnings-as-errors")
}

// addRunFlags registers the flags check and fix share.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|relative|absolute|basename)")
	cmd.Flags().String("ui", "off", "show a progress UI for directory runs (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0 = config value or GOMAXPROCS)")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().StringSlice("exclude", nil, "diagnostic IDs to drop, added to the config list")
	cmd.Flags().String("param-spacing", "", "override param_spacing (align|single)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

// runOptions are the flags common to check and fix after they are merged
// into the configuration.
type runOptions struct {
	g      *globalOptions
	target string
	cfg    config.Config
	files  []string
	jobs   int
	ui     bool
}

// prepareRun loads the config for the target, applies flag overrides and
// discovers the files to process.
func prepareRun(cmd *cobra.Command, args []string) (*runOptions, error) {
	g, err := readGlobals(cmd)
	if err != nil {
		return nil, err
	}
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	cfg, err := g.loadConfig(target)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	wae, err := flags.GetBool("warnings-as-errors")
	if err != nil {
		return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	cfg.WarningsAsErrors = cfg.WarningsAsErrors || wae
	exclude, err := flags.GetStringSlice("exclude")
	if err != nil {
		return nil, fmt.Errorf("failed to get exclude flag: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, exclude...)
	spacing, err := flags.GetString("param-spacing")
	if err != nil {
		return nil, fmt.Errorf("failed to get param-spacing flag: %w", err)
	}
	if spacing != "" {
		cfg.ParamSpacing = spacing
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs == 0 {
		jobs = cfg.Jobs
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, err
	}

	files, err := driver.Discover(target, &cfg)
	if err != nil {
		return nil, err
	}
	g.logger.Info("discovered files", "target", target, "count", len(files))

	return &runOptions{
		g:      g,
		target: target,
		cfg:    cfg,
		files:  files,
		jobs:   jobs,
		ui:     len(files) > 1 && shouldUseTUI(mode) && !g.quiet,
	}, nil
}

// baseDir is the directory reported paths are relative to.
func (r *runOptions) baseDir() string {
	if root := r.cfg.Root(); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (r *runOptions) driverOptions(cache *driver.DiskCache, timer *observ.Timer) driver.Options {
	return driver.Options{
		Config:         &r.cfg,
		MaxDiagnostics: r.g.maxDiagnostics,
		Jobs:           r.jobs,
		Cache:          cache,
		Logger:         r.g.logger,
		Timer:          timer,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	run, err := prepareRun(cmd, args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	format, err := flags.GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json", "sarif":
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
	showStats, err := flags.GetBool("stats")
	if err != nil {
		return fmt.Errorf("failed to get stats flag: %w", err)
	}
	noWarnings, err := flags.GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	withNotes, err := flags.GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	var cache *driver.DiskCache
	if run.cfg.Cache && !noCache {
		cache, err = driver.OpenDiskCache("docsniff", run.cfg.CacheDir)
		if err != nil {
			run.g.logger.Warn("result cache disabled", "err", err)
			cache = nil
		} else {
			run.g.logger.Debug("result cache", "dir", cache.Dir())
		}
	}
	timer := newTimer(run.g.timings)

	opts := run.driverOptions(cache, timer)
	check := func(sink driver.ProgressSink) (*driver.CheckResult, error) {
		opts.Progress = sink
		return driver.Check(cmd.Context(), run.files, run.baseDir(), opts)
	}
	var result *driver.CheckResult
	if run.ui {
		result, err = runWithUI("checking", run.files, check)
	} else {
		result, err = check(nil)
	}
	if err != nil {
		return err
	}

	bag := diag.NewBag(0)
	for i := range result.Files {
		if result.Files[i].Bag != nil {
			bag.Merge(result.Files[i].Bag)
		}
	}
	bag.Dedup()
	if noWarnings {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	}
	stats := driver.Summarize(result)
	out := cmd.OutOrStdout()

	switch format {
	case "pretty":
		diagfmt.Pretty(out, bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     run.g.color(os.Stdout),
			Context:   1,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
	case "short":
		diagfmt.Short(out, bag, result.FileSet, withNotes)
	case "json":
		output := diagfmt.BuildDiagnosticsOutput(bag, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
		for _, f := range result.Files {
			if f.Err != nil {
				output.Errors = append(output.Errors, diagfmt.FileErrorJSON{File: f.Path, Error: f.Err.Error()})
			}
		}
		if showStats {
			output.Stats = stats
		}
		if timer != nil {
			report := timer.Report()
			output.Timings = &report
		}
		if err := diagfmt.WriteJSON(out, output); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.Sarif(out, bag, result.FileSet, diagfmt.SarifRunMeta{
			ToolName:       "docsniff",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		}); err != nil {
			return err
		}
	}

	if format != "json" {
		for _, f := range result.Files {
			if f.Err != nil {
				run.g.logger.Error("cannot check file", "path", f.Path, "err", f.Err)
			}
		}
	}
	if format == "pretty" || format == "short" {
		if showStats {
			writeStats(out, stats)
		} else if !run.g.quiet {
			writeSummary(out, stats)
		}
	}
	if timer != nil && format != "json" {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if bag.HasErrors() || stats.Unreadable > 0 {
		exitWith(exitFindings)
	}
	return nil
}

func writeSummary(w io.Writer, st driver.Stats) {
	if st.Errors == 0 && st.Warnings == 0 {
		fmt.Fprintf(w, "%d %s checked, no problems\n", st.Files, plural(st.Files, "file", "files"))
		return
	}
	fmt.Fprintf(w, "\n%d %s, %d %s (%d fixable) in %d %s\n",
		st.Errors, plural(st.Errors, "error", "errors"),
		st.Warnings, plural(st.Warnings, "warning", "warnings"),
		st.Fixable, st.Files, plural(st.Files, "file", "files"))
}

func writeStats(w io.Writer, st driver.Stats) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "files:        %d (%d cached, %d unreadable)\n", st.Files, st.CacheHits, st.Unreadable)
	fmt.Fprintf(w, "functions:    %d\n", st.Functions)
	fmt.Fprintf(w, "  commented:  %d\n", st.Commented)
	fmt.Fprintf(w, "  without:    %d\n", st.Uncommented())
	fmt.Fprintf(w, "errors:       %d\n", st.Errors)
	fmt.Fprintf(w, "warnings:     %d\n", st.Warnings)
	fmt.Fprintf(w, "fixable:      %d\n", st.Fixable)
	if len(st.ByCode) == 0 {
		return
	}
	fmt.Fprintln(w, "by code:")
	for _, c := range diag.DocCodes() {
		if n := st.ByCode[c.ID()]; n > 0 {
			fmt.Fprintf(w, "  %-30s %d\n", c.ID(), n)
		}
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func newTimer(enabled bool) *observ.Timer {
	if !enabled {
		return nil
	}
	return observ.NewTimer()
}
