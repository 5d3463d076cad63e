package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"docsniff/internal/config"
	"docsniff/internal/diag"
	"docsniff/internal/fix"
	"docsniff/internal/source"
)

// FixResult is the outcome of fixing one file.
type FixResult struct {
	Path string
	// Original is the loaded version, Final the last revision (equal when
	// nothing changed).
	Original source.FileID
	Final    source.FileID
	Passes   int
	Applied  int
	// Skipped holds the edits the last pass could not apply.
	Skipped []fix.SkippedEdit
	Changed bool
	Written bool
	// Remaining are the diagnostics of the final revision.
	Remaining *diag.Bag
	Functions int
	Commented int
	Err       error
}

// FixRunResult is the outcome of fixing several files.
type FixRunResult struct {
	FileSet *source.FileSet
	Files   []FixResult
}

// FixFile loads path, applies fix passes until the file stops changing or
// MaxFixPasses is reached, and writes the result back unless dryRun is set.
func FixFile(fs *source.FileSet, path string, opts Options, dryRun bool) FixResult {
	cfg := opts.config()
	log := opts.logger()
	res := FixResult{Path: path, Remaining: diag.NewBag(opts.MaxDiagnostics)}

	began := time.Now()
	emit(opts.Progress, path, StageLoad, StatusWorking, nil, 0)
	id, err := fs.Load(path)
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		emit(opts.Progress, path, StageLoad, StatusError, res.Err, time.Since(began))
		return res
	}
	res.Original, res.Final = id, id

	emit(opts.Progress, path, StageFix, StatusWorking, nil, time.Since(began))
	passes := cfg.MaxFixPasses
	if passes <= 0 {
		passes = config.DefaultMaxFixPasses
	}
	outcome := validate(fs.Get(res.Final), cfg, opts.Timer)
	for res.Passes < passes && len(outcome.edits) > 0 {
		stop := opts.Timer.Track("fix")
		applied, err := fix.Apply(fs, res.Final, outcome.edits)
		stop()
		res.Passes++
		res.Skipped = applied.Skipped
		if errors.Is(err, fix.ErrNoFixes) {
			break
		}
		if err != nil {
			res.Err = err
			emit(opts.Progress, path, StageFix, StatusError, err, time.Since(began))
			return res
		}
		res.Applied += len(applied.Applied)
		res.Final = applied.File
		log.Debug("fix pass", "path", path, "pass", res.Passes, "applied", len(applied.Applied), "skipped", len(applied.Skipped))
		outcome = validate(fs.Get(res.Final), cfg, opts.Timer)
	}
	if len(outcome.edits) > 0 && res.Passes == passes {
		log.Warn("fixer did not converge", "path", path, "passes", passes)
	}

	res.Changed = res.Final != res.Original
	if res.Changed && !dryRun {
		if err := fix.Write(fs.Get(res.Final)); err != nil {
			res.Err = err
			emit(opts.Progress, path, StageFix, StatusError, err, time.Since(began))
			return res
		}
		res.Written = true
	}

	res.Functions, res.Commented = outcome.functions, outcome.commented
	for _, d := range postprocess(outcome.diags, cfg) {
		res.Remaining.Add(d)
	}
	res.Remaining.Sort()
	emit(opts.Progress, path, StageFix, StatusDone, nil, time.Since(began))
	return res
}

// Fix runs FixFile over paths in parallel; results keep the order of paths.
func Fix(ctx context.Context, paths []string, baseDir string, opts Options, dryRun bool) (*FixRunResult, error) {
	opts.config()
	fs := source.NewFileSetWithBase(baseDir)
	result := &FixRunResult{FileSet: fs, Files: make([]FixResult, len(paths))}
	if len(paths) == 0 {
		return result, nil
	}
	for _, p := range paths {
		emit(opts.Progress, p, StageLoad, StatusQueued, nil, 0)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			result.Files[i] = FixFile(fs, path, opts, dryRun)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	opts.Timer.Annotate("fix", fmt.Sprintf("%d files, %d jobs", len(paths), jobs))
	return result, nil
}
