package cmd

import (
	"fmt"
	"os"

	"github.com/cnexans/culebra/pkg/culebra"
	"github.com/spf13/cobra"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Print the token stream for a Culebra script",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "lex inline source instead of reading a file")
}

func runLex(_ *cobra.Command, args []string) error {
	source, _, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	engine := culebra.New()
	tokens, errs := engine.Lex(source)
	for _, tok := range tokens {
		fmt.Printf("%-18s %-12q line %d col %d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
	}
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "Error: %s\n", e.Error())
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
