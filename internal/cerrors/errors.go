// Package cerrors formats Culebra diagnostics with source context: a flat
// taxonomy of error kinds, each carrying a position and rendered with a
// caret line pointing at the offending column.
package cerrors

import (
	"fmt"
	"strings"
)

// Kind is one entry of the flat error taxonomy.
type Kind string

const (
	SyntaxError        Kind = "SyntaxError"
	IndentationError   Kind = "IndentationError"
	NameError          Kind = "NameError"
	TypeError          Kind = "TypeError"
	ValueError         Kind = "ValueError"
	IndexError         Kind = "IndexError"
	KeyError           Kind = "KeyError"
	AttributeError     Kind = "AttributeError"
	FileNotFoundError  Kind = "FileNotFoundError"
	CompileError       Kind = "CompileError"
)

// Position is the (line, column) pair every CulebraError carries.
type Position struct {
	Line   int
	Column int
}

// CulebraError is a single diagnostic with source position and optional
// surrounding source context for pretty-printing.
type CulebraError struct {
	Kind    Kind
	Message string
	Pos     Position
	Source  string // full source text, for caret rendering; may be empty
	File    string // source file name, for the header line; may be empty
}

// New creates a CulebraError of the given kind at pos.
func New(kind Kind, pos Position, format string, args ...interface{}) *CulebraError {
	return &CulebraError{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error implements the error interface, formatting as
// `<Kind> at line L, col C: message`.
func (e *CulebraError) Error() string {
	return fmt.Sprintf("%s at line %d, col %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Message)
}

// Format renders the error with a source line and caret indicator, the way
// a CLI reports diagnostics to the user. When color is true, ANSI escapes
// highlight the caret.
func (e *CulebraError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Error()))
	} else {
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (e *CulebraError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors, one block per error, for reporting
// accumulated lexer/parser diagnostics together.
func FormatAll(errs []*CulebraError, color bool) string {
	var sb strings.Builder
	for _, e := range errs {
		sb.WriteString(e.Format(color))
		sb.WriteString("\n")
	}
	return sb.String()
}
