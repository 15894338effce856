package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cnexans/culebra/pkg/culebra"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	compileOutput string
	keepIR        bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a Culebra script to LLVM IR",
	Long: `Compile translates a Culebra script to textual LLVM IR (.ll), suitable
for piping into llc/clang to produce a native binary.

Only a statically-typeable subset of the language is supported: a variable
whose inferred type changes across assignments is a compile error rather
than silently falling back to a dynamic representation. Function
parameters and user-function results are always typed as integer; call
sites are not used to infer them.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output .ll file (default/'-': stdout)")
	compileCmd.Flags().BoolVar(&keepIR, "keep-ir", false, "keep the emitted .ll on disk even when writing to stdout")
}

func runCompile(_ *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	engine := culebra.New()
	ir, err := engine.Compile(string(data), path)
	if err != nil {
		if mErr, ok := err.(*culebra.MultiError); ok {
			for _, e := range mErr.Errors {
				fmt.Fprint(os.Stderr, e.Format(!noColor))
			}
			return fmt.Errorf("compilation failed with %d error(s)", len(mErr.Errors))
		}
		return err
	}

	toStdout := compileOutput == "" || compileOutput == "-"
	if toStdout {
		fmt.Fprint(os.Stdout, ir)
		if keepIR {
			return writeScratchIR(path, ir)
		}
		return nil
	}
	return os.WriteFile(compileOutput, []byte(ir), 0o644)
}

// writeScratchIR persists ir to a uuid-tagged temp file so a downstream
// llc/clang invocation has a real path to read even when -o was stdout.
// The path is reported on stderr so the caller can find it; culebra itself
// never deletes it.
func writeScratchIR(sourcePath, ir string) error {
	name := fmt.Sprintf("culebra-%s.ll", uuid.NewString())
	scratch := filepath.Join(os.TempDir(), name)
	if err := os.WriteFile(scratch, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("failed to keep IR for %s: %w", sourcePath, err)
	}
	fmt.Fprintf(os.Stderr, "kept IR at %s\n", scratch)
	return nil
}
