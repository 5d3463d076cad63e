package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docsniff/internal/config"
	"docsniff/internal/logging"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	colorMode      string
	quiet          bool
	verbosity      int
	timings        bool
	maxDiagnostics int
	configPath     string
	logger         *slog.Logger
}

func readGlobals(cmd *cobra.Command) (*globalOptions, error) {
	flags := cmd.Root().PersistentFlags()
	g := &globalOptions{}
	var err error
	if g.colorMode, err = flags.GetString("color"); err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if _, err = colorEnabled(g.colorMode, false); err != nil {
		return nil, err
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.verbosity, err = flags.GetCount("verbose"); err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.configPath, err = flags.GetString("config"); err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	g.logger = logging.NewLogger(os.Stderr, logging.LevelFromVerbosity(g.verbosity, g.quiet), g.color(os.Stderr))
	return g, nil
}

// colorEnabled resolves --color for an output that is or is not a terminal.
func colorEnabled(mode string, tty bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return tty && os.Getenv("NO_COLOR") == "", nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}

func (g *globalOptions) color(f *os.File) bool {
	on, _ := colorEnabled(g.colorMode, isTerminal(f))
	return on
}

// loadConfig reads --config or the nearest config above target. A missing
// config file is not an error: the defaults apply.
func (g *globalOptions) loadConfig(target string) (config.Config, error) {
	if g.configPath != "" {
		cfg, err := config.Load(g.configPath)
		if err != nil {
			return cfg, err
		}
		g.logger.Debug("config loaded", "path", cfg.Path)
		return cfg, nil
	}
	cfg, err := config.LoadNearest(target)
	switch {
	case errors.Is(err, config.ErrNotFound):
		g.logger.Debug("no config file found, using defaults", "target", target)
		return cfg, nil
	case err != nil:
		return cfg, err
	}
	g.logger.Debug("config loaded", "path", cfg.Path)
	return cfg, nil
}
