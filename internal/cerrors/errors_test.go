package cerrors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatsKindLineColumn(t *testing.T) {
	e := New(TypeError, Position{Line: 3, Column: 7}, "cannot add %s and %s", "string", "integer")
	assert.Equal(t, "TypeError at line 3, col 7: cannot add string and integer", e.Error())
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	e := New(NameError, Position{Line: 2, Column: 5}, "name 'y' is not defined")
	e.Source = "x = 1\nprint(y)\n"
	e.File = "prog.cbr"

	out := e.Format(false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require := assert.New(t)
	require.Contains(lines[0], "prog.cbr:2:5:")
	require.Contains(out, "print(y)")
	// the caret line should point at column 5 (1-indexed) under the source
	caretLine := lines[len(lines)-1]
	require.Contains(caretLine, "^")
}

func TestFormatWithColorWrapsCaretInAnsi(t *testing.T) {
	e := New(SyntaxError, Position{Line: 1, Column: 1}, "unexpected token")
	e.Source = "???\n"
	out := e.Format(true)
	assert.Contains(t, out, "\033[1;31m^\033[0m")
}

func TestFormatWithoutFileOmitsFileHeader(t *testing.T) {
	e := New(ValueError, Position{Line: 1, Column: 1}, "bad value")
	out := e.Format(false)
	assert.True(t, strings.HasPrefix(out, "ValueError at line 1, col 1: bad value"))
}

func TestFormatAllRendersEveryError(t *testing.T) {
	errs := []*CulebraError{
		New(SyntaxError, Position{Line: 1, Column: 1}, "first"),
		New(TypeError, Position{Line: 2, Column: 1}, "second"),
	}
	out := FormatAll(errs, false)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
}
