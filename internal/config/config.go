// Package config loads .docsniff.toml / .docsniff.yaml. Values from the file
// are laid over Default; command-line flags are applied over the result by
// the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"docsniff/internal/diag"
	"docsniff/internal/sniff"
)

// DefaultMaxFixPasses bounds the fixer loop when the config does not.
const DefaultMaxFixPasses = 10

// Config is the decoded configuration.
type Config struct {
	// ParamSpacing is "align" or "single".
	ParamSpacing string `toml:"param_spacing" yaml:"param_spacing"`
	// Exclude lists diagnostic IDs (e.g. "SpacingAfter") that are dropped.
	Exclude          []string `toml:"exclude" yaml:"exclude"`
	WarningsAsErrors bool     `toml:"warnings_as_errors" yaml:"warnings_as_errors"`
	Extensions       []string `toml:"extensions" yaml:"extensions"`
	// Ignore holds gitignore-syntax patterns relative to the config root.
	Ignore       []string `toml:"ignore" yaml:"ignore"`
	Jobs         int      `toml:"jobs" yaml:"jobs"`
	MaxFixPasses int      `toml:"max_fix_passes" yaml:"max_fix_passes"`
	Cache        bool     `toml:"cache" yaml:"cache"`
	CacheDir     string   `toml:"cache_dir" yaml:"cache_dir"`

	// Path is the file the config came from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ParamSpacing: sniff.SpacingAlign.String(),
		Extensions:   []string{".php"},
		MaxFixPasses: DefaultMaxFixPasses,
		Cache:        true,
	}
}

// Load decodes the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from Find or the user
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		meta, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadNearest finds the config for start and loads it. Without a config file
// it returns Default and an error wrapping ErrNotFound.
func LoadNearest(start string) (Config, error) {
	path, err := Find(start)
	if err != nil {
		return Default(), err
	}
	return Load(path)
}

// Validate checks value ranges and normalizes extensions to ".ext".
func (c *Config) Validate() error {
	if _, err := sniff.ParseSpacingPolicy(c.ParamSpacing); err != nil {
		return err
	}
	for _, id := range c.Exclude {
		if _, ok := diag.LookupCode(strings.TrimSpace(id)); !ok {
			return fmt.Errorf("exclude: unknown diagnostic %q", id)
		}
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0, got %d", c.Jobs)
	}
	if c.MaxFixPasses < 1 {
		return fmt.Errorf("max_fix_passes must be >= 1, got %d", c.MaxFixPasses)
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			return fmt.Errorf("extensions: empty entry")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
	return nil
}

// Root is the directory ignore patterns and relative paths are anchored at.
func (c *Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// SniffOptions maps the config onto engine options.
func (c *Config) SniffOptions() sniff.Options {
	policy, err := sniff.ParseSpacingPolicy(c.ParamSpacing)
	if err != nil {
		policy = sniff.SpacingAlign
	}
	return sniff.Options{ParamSpacing: policy}
}

// ExcludedCodes returns the set of codes named by Exclude.
func (c *Config) ExcludedCodes() map[diag.Code]bool {
	out := make(map[diag.Code]bool, len(c.Exclude))
	for _, id := range c.Exclude {
		if code, ok := diag.LookupCode(strings.TrimSpace(id)); ok {
			out[code] = true
		}
	}
	return out
}

// HasExtension reports whether path has one of the configured extensions.
func (c *Config) HasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}
