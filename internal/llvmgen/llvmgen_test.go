package llvmgen

import (
	"regexp"
	"testing"

	"github.com/cnexans/culebra/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitOK(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(src, "test.cbr")
	program := p.ParseProgram()
	require.Empty(t, p.Errors())
	ir, err := New("test.cbr").Emit(program)
	require.NoError(t, err)
	return ir
}

func TestEmitModuleHeaderAndRuntimeDeclares(t *testing.T) {
	ir := emitOK(t, "print(1)\n")
	assert.Contains(t, ir, `source_filename = "test.cbr"`)
	assert.Contains(t, ir, "declare void @culebra_print_int(i64)")
	assert.Contains(t, ir, "%array = type { i64, i8* }")
}

func TestEmitIntegerArithmeticStaysIntegerTyped(t *testing.T) {
	ir := emitOK(t, "x = 1 + 2\nprint(x)\n")
	assert.Contains(t, ir, "add i64")
	assert.Contains(t, ir, "call void @culebra_print_int(i64")
}

func TestEmitMixedFloatIntPromotesToDouble(t *testing.T) {
	ir := emitOK(t, "x = 1 + 2.5\nprint(x)\n")
	assert.Contains(t, ir, "sitofp i64")
	assert.Contains(t, ir, "fadd double")
	assert.Contains(t, ir, "call void @culebra_print_float(double")
}

func TestEmitDivisionAlwaysPromotesToFloat(t *testing.T) {
	ir := emitOK(t, "x = 4 / 2\nprint(x)\n")
	assert.Contains(t, ir, "fdiv double")
}

func TestEmitStringConcatenationCallsRuntime(t *testing.T) {
	ir := emitOK(t, `x = "a" + "b"
print(x)
`)
	assert.Contains(t, ir, "@culebra_str_concat")
}

func TestEmitShortCircuitAndLowersToBranchAndPhi(t *testing.T) {
	ir := emitOK(t, "x = true and false\nprint(x)\n")
	assert.Contains(t, ir, "sc.rhs")
	assert.Contains(t, ir, "sc.merge")
	assert.Contains(t, ir, "phi i1")
}

func TestEmitFunctionDefinitionAndCall(t *testing.T) {
	ir := emitOK(t, `def add(a, b):
    return a + b
print(add(1, 2))
`)
	assert.Contains(t, ir, "define i64 @add(i64 %arg.a, i64 %arg.b)")
	assert.Contains(t, ir, "call i64 @add(")
}

func TestEmitIfElseBranches(t *testing.T) {
	ir := emitOK(t, `x = 1
if x < 2:
    print(1)
else:
    print(2)
`)
	assert.Contains(t, ir, "if.then")
	assert.Contains(t, ir, "if.end")
}

func TestEmitWhileLoopBlocks(t *testing.T) {
	ir := emitOK(t, `x = 0
while x < 10:
    x = x + 1
`)
	assert.Contains(t, ir, "while.cond")
	assert.Contains(t, ir, "while.body")
	assert.Contains(t, ir, "while.end")
}

func TestEmitForLoopBlocks(t *testing.T) {
	ir := emitOK(t, `for i = 0; i < 10; i = i + 1:
    print(i)
`)
	assert.Contains(t, ir, "for.cond")
	assert.Contains(t, ir, "for.step")
	assert.Contains(t, ir, "for.end")
}

func TestEmitStringLiteralInternedOnce(t *testing.T) {
	ir := emitOK(t, `print("hi")
print("hi")
`)
	assert.Equal(t, 1, countOccurrences(ir, "private unnamed_addr constant"))
}

func TestEmitArrayLiteralAllocatesAndSets(t *testing.T) {
	ir := emitOK(t, "arr = [1, 2, 3]\nprint(len(arr))\n")
	assert.Contains(t, ir, "@culebra_create_array(i64 3, i64 8)")
	assert.Contains(t, ir, "@culebra_array_set")
	assert.Contains(t, ir, "@culebra_len_array")
}

// TestEmitRecursiveFunctionWithEarlyReturnHasOneTerminatorPerBlock guards
// against a basic-block verifier error: an `if` branch ending in `return`
// must not also receive the unconditional branch to `if.end` that
// non-returning branches need, or the block would carry two terminators.
func TestEmitRecursiveFunctionWithEarlyReturnHasOneTerminatorPerBlock(t *testing.T) {
	ir := emitOK(t, `def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)
print(fib(10))
`)
	assert.Contains(t, ir, "define i64 @fib(i64 %arg.n)")
	assert.NotRegexp(t, regexp.MustCompile(`(?s)\bret [^\n]*\n\s+br label`), ir)
}

func TestEmitRejectsUnsupportedConstructs(t *testing.T) {
	p := parser.New("m = Map()\n", "test.cbr")
	program := p.ParseProgram()
	require.Empty(t, p.Errors())
	_, err := New("test.cbr").Emit(program)
	assert.Error(t, err)
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}
