// Command culebra is the CLI entry point: run, compile, lex, and the
// interactive REPL over the Culebra language front end.
package main

import (
	"os"

	"github.com/cnexans/culebra/cmd/culebra/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
