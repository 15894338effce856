package culebra

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineEvalReturnsLastValue(t *testing.T) {
	e := New()
	var out bytes.Buffer
	e.SetOutput(&out)

	result, err := e.Eval("x = 1 + 2\nx\n")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "3", result.Value)
}

func TestEngineEvalPropagatesParseErrors(t *testing.T) {
	e := New()
	_, err := e.Eval("1 + 1 = 2\n")
	require.Error(t, err)
	var multi *MultiError
	require.ErrorAs(t, err, &multi)
	assert.NotEmpty(t, multi.Errors)
}

func TestEngineEvalPropagatesRuntimeErrors(t *testing.T) {
	e := New()
	_, err := e.Eval("print(undefined_name)\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NameError")
}

func TestEngineWithOutputOptionRedirectsPrint(t *testing.T) {
	var out bytes.Buffer
	e := New(WithOutput(&out))
	_, err := e.Eval(`print("hi")` + "\n")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out.String())
}

func TestEngineWithInputOptionFeedsInputBuiltin(t *testing.T) {
	var out bytes.Buffer
	e := New(WithOutput(&out), WithInput(strings.NewReader("world\n")))
	_, err := e.Eval(`name = input()
print(name)
`)
	require.NoError(t, err)
	assert.Equal(t, "world\n", out.String())
}

func TestEngineParseReturnsASTWithoutEvaluating(t *testing.T) {
	e := New()
	program, errs := e.Parse("x = 1\n", "<test>")
	require.Empty(t, errs)
	assert.Len(t, program.Statements, 1)
}

func TestEngineCompileProducesLLVMModule(t *testing.T) {
	e := New()
	ir, err := e.Compile("print(1 + 2)\n", "test.cbr")
	require.NoError(t, err)
	assert.Contains(t, ir, "define i32 @main()")
	assert.Contains(t, ir, "declare void @culebra_print_int(i64)")
}

func TestEngineLexTokenizesWithoutParsing(t *testing.T) {
	e := New()
	toks, errs := e.Lex("x = 1\n")
	require.Empty(t, errs)
	assert.NotEmpty(t, toks)
}

func TestMultiErrorFormatsAllDiagnostics(t *testing.T) {
	e := New()
	_, err := e.Eval("1 = 2\n1 < 2 < 3\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SyntaxError")
}
