// Package cmd implements the culebra CLI's Cobra command tree: run, compile,
// lex, parse, version, and the interactive REPL (no subcommand).
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags; defaults to a dev marker otherwise.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"

	noColor bool
	trace   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "culebra",
	Short: "Culebra interpreter and LLVM compiler",
	Long: `culebra is the reference implementation of the Culebra scripting
language: an indentation-based, dynamically-typed imperative language with
a tree-walking interpreter and an ahead-of-time LLVM IR backend.

Run 'culebra' with no arguments to start the REPL, or 'culebra run FILE'
to execute a script.`,
	Version: Version,
	RunE:    runREPL,
}

// Execute runs the root command, returning any error for main to report.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("culebra version {{.Version}}\ncommit: %s\n", GitCommit))
	rootCmd.PersistentFlags().BoolVarP(&noColor, "no-color", "", false, "disable colored diagnostic output")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
}

func exitWithError(format string, args ...interface{}) {
	if noColor {
		fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	} else {
		fmt.Fprint(os.Stderr, color.RedString("Error: "+format+"\n", args...))
	}
	os.Exit(1)
}
