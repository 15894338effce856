package cmd

import (
	"fmt"
	"os"

	"github.com/cnexans/culebra/pkg/culebra"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	parseDumpAST  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Culebra script and print its AST",
	Long: `Parse reads a Culebra script, runs it through the lexer and parser, and
prints the resulting syntax tree without evaluating it.

Use -e to parse an inline snippet, and --dump-ast to list the node type of
each top-level statement instead of the default reconstructed-source form;
nested nodes are not listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "list each top-level statement's node type instead of reconstructed source")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	engine := culebra.New()
	program, errs := engine.Parse(source, filename)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprint(os.Stderr, e.Format(!noColor))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "parsed %d top-level statement(s) from %s\n", len(program.Statements), filename)
	}

	if parseDumpAST {
		for i, stmt := range program.Statements {
			fmt.Printf("[%d] %T\n", i, stmt)
		}
		return nil
	}
	fmt.Print(program.String())
	return nil
}
