// Package culebra is the embeddable façade over the Culebra front end: a
// single Engine type wiring the lexer, parser, tree-walking interpreter, and
// LLVM IR emitter for callers that want to run or compile Culebra source
// without touching the internal packages directly.
package culebra

import (
	"io"
	"os"

	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
	"github.com/cnexans/culebra/internal/interp"
	"github.com/cnexans/culebra/internal/lexer"
	"github.com/cnexans/culebra/internal/llvmgen"
	"github.com/cnexans/culebra/internal/parser"
)

// Result is the outcome of an Engine.Eval call.
type Result struct {
	// Value is the string representation of the last top-level
	// expression's value, or "" if the program produced none or failed.
	Value   string
	Success bool
}

// Engine is a reusable, single-source-at-a-time front end. It is not safe
// for concurrent use by multiple goroutines.
type Engine struct {
	output io.Writer
	input  io.Reader
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOutput redirects print()/input() prompts to w instead of os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.output = w }
}

// WithInput redirects input() reads to r instead of os.Stdin.
func WithInput(r io.Reader) Option {
	return func(e *Engine) { e.input = r }
}

// New creates an Engine. By default output goes to os.Stdout and input is
// read from os.Stdin.
func New(opts ...Option) *Engine {
	e := &Engine{output: os.Stdout, input: os.Stdin}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetOutput redirects subsequent print() output to w.
func (e *Engine) SetOutput(w io.Writer) { e.output = w }

// SetInput redirects subsequent input() reads to r.
func (e *Engine) SetInput(r io.Reader) { e.input = r }

// Parse lexes and parses source, returning the AST and any accumulated
// syntax/indentation errors. No evaluation occurs.
func (e *Engine) Parse(source, file string) (*ast.Program, []*cerrors.CulebraError) {
	p := parser.New(source, file)
	program := p.ParseProgram()
	return program, p.Errors()
}

// Eval parses and tree-walks source, returning a Result describing the
// final value and whether execution completed without error. Parse errors
// and runtime errors are both reported via the returned error.
func (e *Engine) Eval(source string) (*Result, error) {
	return e.EvalFile(source, "<eval>")
}

// EvalFile is Eval with an explicit source file name used in diagnostics.
func (e *Engine) EvalFile(source, file string) (*Result, error) {
	program, errs := e.Parse(source, file)
	if len(errs) > 0 {
		for _, err := range errs {
			err.Source = source
			err.File = file
		}
		return &Result{Success: false}, &MultiError{Errors: errs}
	}

	i := interp.New(e.output, e.input)
	v := i.Run(program)
	if ev, ok := v.(*interp.ErrorValue); ok {
		ev.Err.Source = source
		ev.Err.File = file
		return &Result{Success: false}, ev.Err
	}

	if _, isNone := v.(*interp.NoneValue); isNone {
		return &Result{Success: true}, nil
	}
	return &Result{Value: v.String(), Success: true}, nil
}

// Compile parses source and lowers it to textual LLVM IR.
func (e *Engine) Compile(source, file string) (string, error) {
	program, errs := e.Parse(source, file)
	if len(errs) > 0 {
		for _, err := range errs {
			err.Source = source
			err.File = file
		}
		return "", &MultiError{Errors: errs}
	}

	emitter := llvmgen.New(file)
	ir, err := emitter.Emit(program)
	if err != nil {
		return "", err
	}
	return ir, nil
}

// Lex tokenizes source without parsing, for the `lex` CLI subcommand and
// diagnostic tooling.
func (e *Engine) Lex(source string) ([]lexer.Token, []lexer.LexerError) {
	l := lexer.New(source)
	return l.Tokenize()
}

// MultiError wraps one or more CulebraError diagnostics from a single
// pass (lexing or parsing), rendered together by the CLI.
type MultiError struct {
	Errors []*cerrors.CulebraError
}

func (m *MultiError) Error() string {
	return cerrors.FormatAll(m.Errors, false)
}
