package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"docsniff/internal/prof"
	"docsniff/internal/version"
)

// Коды выхода: 1 - найдены ошибки, 2 - сбой запуска (флаги, конфиг, I/O).
const (
	exitFindings = 1
	exitFailure  = 2
)

var rootCmd = &cobra.Command{
	Use:   "docsniff",
	Short: "PHP function doc comment checker and fixer",
	Long: `docsniff validates the /** */ doc comments of PHP functions and methods
against their declarations and repairs what can be repaired safely`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cpu, err := cmd.Flags().GetString("cpu-profile")
		if err != nil {
			return err
		}
		mem, err := cmd.Flags().GetString("mem-profile")
		if err != nil {
			return err
		}
		profiling, err = prof.Start(prof.Options{CPU: cpu, Memory: mem})
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return profiling.Stop()
	},
}

// profiling is the pprof session of the current run, nil when disabled.
var profiling *prof.Session

// main registers the subcommands and global flags and runs the root command.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().CountP("verbose", "v", "log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0 = unlimited)")
	rootCmd.PersistentFlags().String("config", "", "config file (default: nearest .docsniff.toml or .docsniff.yaml)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		exitWith(exitFailure)
	}
}

// exitWith flushes the profiles before leaving with code.
func exitWith(code int) {
	if err := profiling.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "docsniff: %v\n", err)
	}
	os.Exit(code)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
