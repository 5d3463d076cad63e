package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"docsniff/internal/config"
	"docsniff/internal/diag"
	"docsniff/internal/lexer"
	"docsniff/internal/source"
	"docsniff/internal/testkit"
)

const addSrc = `<?php
/**
 * Adds.
 *
 * @param int $a First.
 *
 * @return integer
 */
function add($a, $b)
{
    return $a + $b;
}

function bare()
{
}
`

const voidSrc = `<?php
/**
 * Run.
 *
 * @return void
 */
function run()
{
    return 1;
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.php"), "<?php\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "x")
	writeFile(t, filepath.Join(dir, "vendor", "c.php"), "<?php\n")
	writeFile(t, filepath.Join(dir, "node_modules", "d.php"), "<?php\n")
	writeFile(t, filepath.Join(dir, "sub", "e.PHP"), "<?php\n")
	writeFile(t, filepath.Join(dir, "sub", "skip.php"), "<?php\n")
	writeFile(t, filepath.Join(dir, ".gitignore"), "vendor/\n")

	cfg := config.Default()
	cfg.Ignore = []string{"sub/skip.php"}
	files, err := Discover(dir, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.php"), filepath.Join(dir, "sub", "e.PHP")}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}

	single, err := Discover(filepath.Join(dir, "b.txt"), &cfg)
	if err != nil || len(single) != 1 {
		t.Fatalf("file target = %v, %v", single, err)
	}
	if _, err := Discover(filepath.Join(dir, "missing"), &cfg); err == nil {
		t.Fatal("expected error for missing target")
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.php")
	writeFile(t, path, addSrc)

	fs := source.NewFileSetWithBase(dir)
	res := CheckFile(fs, path, Options{})
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if res.Functions != 2 || res.Commented != 1 {
		t.Fatalf("functions=%d commented=%d", res.Functions, res.Commented)
	}
	got := codes(res.Bag)
	want := []string{"MissingParamTag", "InvalidReturn", "Missing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}
	if res.Fixable() != 1 {
		t.Fatalf("fixable = %d", res.Fixable())
	}

	missing := CheckFile(fs, filepath.Join(dir, "nope.php"), Options{})
	if missing.Err == nil || missing.Bag.Len() != 0 {
		t.Fatalf("missing file result = %+v", missing)
	}
}

func TestCheckFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.php")
	writeFile(t, path, voidSrc)

	tests := []struct {
		name string
		edit func(*config.Config)
		want []diag.Severity
	}{
		{"default", func(*config.Config) {}, []diag.Severity{diag.SevWarning}},
		{"warnings as errors", func(c *config.Config) { c.WarningsAsErrors = true }, []diag.Severity{diag.SevError}},
		{"excluded", func(c *config.Config) { c.Exclude = []string{"InvalidReturnVoid"} }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.edit(&cfg)
			res := CheckFile(source.NewFileSet(), path, Options{Config: &cfg})
			var got []diag.Severity
			for _, d := range res.Bag.Items() {
				got = append(got, d.Severity)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("severities = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.php")
	writeFile(t, path, addSrc)
	cache, err := OpenDiskCache("docsniff", filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var statuses []Status
	opts := Options{
		Cache: cache,
		Progress: FuncSink(func(e Event) {
			mu.Lock()
			defer mu.Unlock()
			if e.Stage == StageCheck && e.Status != StatusWorking {
				statuses = append(statuses, e.Status)
			}
		}),
	}

	first, err := Check(context.Background(), []string{path}, dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Check(context.Background(), []string{path}, dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cached = %v, %v", first.Files[0].Cached, second.Files[0].Cached)
	}
	if !reflect.DeepEqual(codes(first.Files[0].Bag), codes(second.Files[0].Bag)) {
		t.Fatalf("cached codes differ: %v vs %v", codes(first.Files[0].Bag), codes(second.Files[0].Bag))
	}
	if second.Files[0].Functions != 2 || second.Files[0].Commented != 1 {
		t.Fatalf("cached counts = %+v", second.Files[0])
	}
	if !reflect.DeepEqual(statuses, []Status{StatusDone, StatusCached}) {
		t.Fatalf("statuses = %v", statuses)
	}

	// Другие настройки дают другой ключ.
	cfg := config.Default()
	cfg.WarningsAsErrors = true
	opts.Config = &cfg
	third, err := Check(context.Background(), []string{path}, dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached {
		t.Fatal("changed settings must miss the cache")
	}

	st := Summarize(second)
	if st.Files != 1 || st.CacheHits != 1 || st.Errors != 3 || st.Fixable != 1 || st.Uncommented() != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if st.ByCode["Missing"] != 1 {
		t.Fatalf("by code = %v", st.ByCode)
	}
}

func TestCheckKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.php", "b.php", "c.php", "d.php"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, voidSrc)
		paths = append(paths, p)
	}
	res, err := Check(context.Background(), paths, dir, Options{Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range res.Files {
		if f.Path != paths[i] || f.Bag.Len() != 1 {
			t.Fatalf("file %d = %+v", i, f)
		}
	}
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Check(ctx, []string{"a.php"}, "", Options{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestFixFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "add.php")
	writeFile(t, path, strings.ReplaceAll(addSrc, "\n", "\r\n"))

	dry := FixFile(source.NewFileSet(), path, Options{}, true)
	if dry.Err != nil || !dry.Changed || dry.Written {
		t.Fatalf("dry run = %+v", dry)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "@return integer") {
		t.Fatal("dry run modified the file")
	}

	fs := source.NewFileSet()
	res := FixFile(fs, path, Options{}, false)
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	final := fs.Get(res.Final)
	if err := testkit.CheckViewInvariants(lexer.Tokenize(final, lexer.Options{}), final); err != nil {
		t.Fatalf("fixed revision: %v", err)
	}
	if !res.Written || res.Applied != 1 || res.Passes != 1 {
		t.Fatalf("result = %+v", res)
	}
	if got := codes(res.Remaining); !reflect.DeepEqual(got, []string{"MissingParamTag", "Missing"}) {
		t.Fatalf("remaining = %v", got)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), " * @return int\r\n") {
		t.Fatalf("fixed file = %q", data)
	}

	again := FixFile(source.NewFileSet(), path, Options{}, false)
	if again.Changed || again.Passes != 0 {
		t.Fatalf("second fix = %+v", again)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache("docsniff", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key Digest
	key[0] = 7

	d := diag.New(diag.SevError, diag.Missing, source.Span{File: 3, Start: 10, End: 18}, "Missing doc comment for function f()").
		WithArgs("f").At(4).WithNote(source.Span{File: 3, Start: 1, End: 2}, "here")
	if err := cache.Put(key, toPayload("f.php", 1, 0, []diag.Diagnostic{d})); err != nil {
		t.Fatal(err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("get = %v, %v", hit, err)
	}
	restored := out.diagnostics(9)
	if len(restored) != 1 {
		t.Fatalf("restored = %+v", restored)
	}
	r := restored[0]
	if r.Primary.File != 9 || r.Primary.Start != 10 || r.Token != 4 || r.Code != diag.Missing || r.Notes[0].Span.File != 9 {
		t.Fatalf("restored = %+v", r)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, err := cache.Get(key, &out); err != nil || hit {
		t.Fatalf("after drop = %v, %v", hit, err)
	}
}

func TestCacheKeyDependsOnSettings(t *testing.T) {
	var content [32]byte
	a := config.Default()
	b := config.Default()
	if cacheKey(content, &a) != cacheKey(content, &b) {
		t.Fatal("equal settings must give equal keys")
	}
	b.ParamSpacing = "single"
	if cacheKey(content, &a) == cacheKey(content, &b) {
		t.Fatal("spacing must change the key")
	}
	content[0] = 1
	if cacheKey(content, &a) == cacheKey([32]byte{}, &a) {
		t.Fatal("content must change the key")
	}
}
