package driver

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"docsniff/internal/config"
	"docsniff/internal/diag"
	"docsniff/internal/lexer"
	"docsniff/internal/observ"
	"docsniff/internal/sniff"
	"docsniff/internal/source"
	"docsniff/internal/token"
)

// Options configures a check or fix run.
type Options struct {
	Config *config.Config
	// MaxDiagnostics caps the diagnostics kept per file; <= 0 means unlimited.
	MaxDiagnostics int
	// Jobs bounds the parallel workers; <= 0 uses GOMAXPROCS.
	Jobs     int
	Progress ProgressSink
	// Cache is optional; nil disables result caching.
	Cache  *DiskCache
	Logger *slog.Logger
	// Timer is optional; phases of every file are accumulated into it.
	Timer *observ.Timer
}

func (o *Options) config() *config.Config {
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	return o.Config
}

func (o *Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	// Functions is the number of named functions seen, Commented those with
	// any comment attached.
	Functions int
	Commented int
	Cached    bool
	// Err is set when the file could not be read; Bag is empty then.
	Err error
}

// Fixable counts diagnostics that carry an edit proposal.
func (r *FileResult) Fixable() int {
	if r.Bag == nil {
		return 0
	}
	n := 0
	for _, d := range r.Bag.Items() {
		if d.Fixable {
			n++
		}
	}
	return n
}

// CheckResult is the outcome of a run over several files.
type CheckResult struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Diagnostics returns every diagnostic of the run in file order.
func (r *CheckResult) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		if r.Files[i].Bag != nil {
			out = append(out, r.Files[i].Bag.Items()...)
		}
	}
	return out
}

// fileOutcome is what validating one file version produced.
type fileOutcome struct {
	view      *token.View
	diags     []diag.Diagnostic
	edits     []diag.FixEdit
	functions int
	commented int
}

// validate tokenizes file and runs the engine over every registered token.
// Lexer errors come first, followed by engine findings in token order.
func validate(file *source.File, cfg *config.Config, timer *observ.Timer) fileOutcome {
	lexBag := diag.NewBag(0)
	stop := timer.Track("lex")
	view := lexer.Tokenize(file, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: lexBag})})
	stop()

	out := fileOutcome{view: view, diags: append([]diag.Diagnostic(nil), lexBag.Items()...)}
	defer timer.Track("check")()
	engine := sniff.New(cfg.SniffOptions())
	for _, kind := range engine.Register() {
		for _, pos := range view.Positions(kind) {
			res := engine.Validate(view, pos)
			out.functions++
			if res.HasComment {
				out.commented++
			}
			out.diags = append(out.diags, res.Diagnostics...)
			out.edits = append(out.edits, res.Edits...)
		}
	}
	return out
}

// postprocess drops excluded codes and applies warnings_as_errors.
func postprocess(diags []diag.Diagnostic, cfg *config.Config) []diag.Diagnostic {
	excluded := cfg.ExcludedCodes()
	out := diags[:0]
	for _, d := range diags {
		if excluded[d.Code] {
			continue
		}
		if cfg.WarningsAsErrors && d.Severity == diag.SevWarning {
			d.Severity = diag.SevError
		}
		out = append(out, d)
	}
	return out
}

// CheckFile loads path into fs and validates it.
func CheckFile(fs *source.FileSet, path string, opts Options) FileResult {
	cfg := opts.config()
	log := opts.logger()
	res := FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}

	emit(opts.Progress, path, StageLoad, StatusWorking, nil, 0)
	began := time.Now()
	stop := opts.Timer.Track("load")
	id, err := fs.Load(path)
	stop()
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		emit(opts.Progress, path, StageLoad, StatusError, res.Err, time.Since(began))
		return res
	}
	res.FileID = id
	file := fs.Get(id)

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file.Hash, cfg)
		var payload DiskPayload
		hit, cacheErr := opts.Cache.Get(key, &payload)
		switch {
		case cacheErr != nil:
			log.Debug("cache read failed", "path", path, "err", cacheErr)
		case hit:
			log.Debug("cache hit", "path", path)
			res.Cached = true
			res.Functions, res.Commented = payload.Functions, payload.Commented
			for _, d := range payload.diagnostics(id) {
				res.Bag.Add(d)
			}
			res.Bag.Sort()
			emit(opts.Progress, path, StageCheck, StatusCached, nil, time.Since(began))
			return res
		}
	}

	emit(opts.Progress, path, StageLex, StatusWorking, nil, time.Since(began))
	outcome := validate(file, cfg, opts.Timer)
	diags := postprocess(outcome.diags, cfg)
	res.Functions, res.Commented = outcome.functions, outcome.commented

	// Кэшируем полный список: лимит применяется только к Bag.
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toPayload(path, res.Functions, res.Commented, diags)); err != nil {
			log.Debug("cache write failed", "path", path, "err", err)
		} else {
			log.Debug("cache stored", "path", path, "items", len(diags))
		}
	}
	for _, d := range diags {
		res.Bag.Add(d)
	}
	if limit := res.Bag.Cap(); limit > 0 && len(diags) > limit {
		log.Info("diagnostics truncated", "path", path, "total", len(diags), "kept", limit)
	}
	res.Bag.Sort()
	emit(opts.Progress, path, StageCheck, StatusDone, nil, time.Since(began))
	return res
}

// Check validates paths in parallel. Results keep the order of paths. The
// returned error is non-nil only when ctx was cancelled; per-file read
// failures are reported in FileResult.Err.
func Check(ctx context.Context, paths []string, baseDir string, opts Options) (*CheckResult, error) {
	opts.config()
	fs := source.NewFileSetWithBase(baseDir)
	result := &CheckResult{FileSet: fs, Files: make([]FileResult, len(paths))}
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
	opts.logger().Debug("checking files", "count", len(paths), "jobs", jobs)

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			result.Files[i] = CheckFile(fs, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	opts.Timer.Annotate("check", fmt.Sprintf("%d files, %d jobs", len(paths), jobs))
	return result, nil
}
