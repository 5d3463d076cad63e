package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docsniff/internal/diagfmt"
	"docsniff/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.php",
	Short: "Print the token stream of a PHP file",
	Long:  `Tokenize lexes a PHP file and prints its tokens with doc comment pairs and tag links`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	g, err := readGlobals(cmd)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	result, err := driver.Tokenize(args[0], g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	g.logger.Debug("tokenized", "path", args[0], "tokens", result.View.Len())

	// Диагностика лексера в stderr, токены в stdout
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   g.color(os.Stderr),
			Context: 2,
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.FormatTokensJSON(out, result.View)
	}
	return diagfmt.FormatTokensPretty(out, result.View, result.FileSet)
}
