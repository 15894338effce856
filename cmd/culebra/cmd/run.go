package cmd

import (
	"fmt"
	"os"

	"github.com/cnexans/culebra/pkg/culebra"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Culebra script with the tree-walking interpreter",
	Long: `Execute a Culebra program from a file or inline expression.

Examples:
  culebra run script.cbr
  culebra run -e "print(1 + 2)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] running %s\n", filename)
	}

	engine := culebra.New(culebra.WithOutput(os.Stdout), culebra.WithInput(os.Stdin))
	result, err := engine.EvalFile(source, filename)
	if err != nil {
		if mErr, ok := err.(*culebra.MultiError); ok {
			for _, e := range mErr.Errors {
				fmt.Fprint(os.Stderr, e.Format(!noColor))
			}
			return fmt.Errorf("run failed with %d error(s)", len(mErr.Errors))
		}
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] %s finished, last value: %s\n", filename, result.Value)
	}
	return nil
}

// readSource resolves the run/lex/parse subcommands' shared input rule:
// an inline -e expression takes priority, otherwise a single file
// argument, otherwise an error (no stdin fallback — culebra's core has no
// use for it outside the REPL).
func readSource(inline string, args []string) (source, filename string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline source")
}
