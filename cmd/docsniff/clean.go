package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docsniff/internal/config"
	"docsniff/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the docsniff result cache",
	Long:  "Remove cached check results for the config that applies to path (default: the current directory).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	if root, ok, err := config.Root(target); err != nil {
		return err
	} else if ok {
		g.logger.Debug("project root", "dir", root)
	}
	cfg, err := g.loadConfig(target)
	if err != nil {
		return err
	}
	cache, err := driver.OpenDiskCache("docsniff", cfg.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	if !g.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
	}
	return nil
}
