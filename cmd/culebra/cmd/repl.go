package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/cnexans/culebra/internal/interp"
	"github.com/cnexans/culebra/internal/parser"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	replBanner = strings.Join([]string{
		`   ____      _      _                  `,
		`  / ___|   _| | ___| |__  _ __ __ _    `,
		` | |  | | | | |/ _ \ '_ \| '__/ _' |   `,
		` | |__| |_| | |  __/ |_) | | | (_| |   `,
		`  \____\__,_|_|\___|_.__/|_|  \__,_|   `,
	}, "\n")

	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// runREPL is the root command's default action: an interactive
// read-eval-print loop over the tree-walking interpreter. Input accumulates
// across lines until a block opened by a trailing ':' is closed with a
// blank line, since the grammar is indentation-sensitive.
func runREPL(_ *cobra.Command, _ []string) error {
	printBanner(os.Stdout)

	rl, err := readline.New("culebra> ")
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer rl.Close()

	i := interp.New(os.Stdout, os.Stdin)

	var buf strings.Builder
	pendingBlock := false

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF (Ctrl-D) or interrupt
			fmt.Fprintln(os.Stdout, "\nGood bye!")
			return nil
		}

		trimmed := strings.TrimRight(line, " \t\r")

		if pendingBlock {
			if strings.TrimSpace(trimmed) == "" {
				source := buf.String()
				buf.Reset()
				pendingBlock = false
				rl.SetPrompt("culebra> ")
				evalREPLSource(i, source)
				continue
			}
			buf.WriteString(trimmed)
			buf.WriteString("\n")
			continue
		}

		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if trimmed == ".exit" || trimmed == ".quit" {
			fmt.Fprintln(os.Stdout, "Good bye!")
			return nil
		}

		if strings.HasSuffix(strings.TrimSpace(trimmed), ":") {
			buf.WriteString(trimmed)
			buf.WriteString("\n")
			pendingBlock = true
			rl.SetPrompt("....... ")
			continue
		}

		rl.SaveHistory(line)
		evalREPLSource(i, trimmed)
	}
}

func printBanner(w io.Writer) {
	greenColor.Fprintf(w, "%s\n", replBanner)
	cyanColor.Fprintln(w, "Culebra interactive shell. Type a statement and press Enter.")
	cyanColor.Fprintln(w, "Blocks opened with ':' end on a blank line. Type .exit to quit.")
}

// evalREPLSource parses and evaluates one REPL submission against the
// shared interpreter instance i, so top-level bindings persist across
// evaluations within the same session.
func evalREPLSource(i *interp.Interpreter, source string) {
	p := parser.New(source, "<repl>")
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			e.Source = source
			redColor.Fprint(os.Stderr, e.Format(!noColor))
		}
		return
	}

	result := i.Run(program)
	if ev, ok := result.(*interp.ErrorValue); ok {
		ev.Err.Source = source
		redColor.Fprintf(os.Stderr, "%s\n", ev.Err.Error())
		return
	}

	if result != nil && result.Type() != "none" {
		yellowColor.Fprintf(os.Stdout, "%s\n", result.String())
	}
}
