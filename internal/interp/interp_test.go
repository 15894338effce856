package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cnexans/culebra/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses and evaluates src against a fresh Interpreter, returning the
// final Value and any captured stdout. Parse errors fail the test.
func run(t *testing.T, src string) (Value, string) {
	t.Helper()
	p := parser.New(src, "<test>")
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", src)

	var out bytes.Buffer
	i := New(&out, strings.NewReader(""))
	result := i.Run(program)
	return result, out.String()
}

func requireNotError(t *testing.T, v Value) {
	t.Helper()
	if ev, ok := v.(*ErrorValue); ok {
		t.Fatalf("unexpected runtime error: %s", ev.Err.Error())
	}
}

// S1: arithmetic and print.
func TestArithmeticAndPrint(t *testing.T) {
	result, out := run(t, "print(1 + 2 * 3)\nprint(10 / 4)\n")
	requireNotError(t, result)
	assert.Equal(t, "7\n2.5\n", out)
}

func TestIntegerDivisionPromotesToFloat(t *testing.T) {
	_, out := run(t, "print(7 / 2)\n")
	assert.Equal(t, "3.5\n", out)
}

// S2: recursion.
func TestRecursiveFibonacci(t *testing.T) {
	src := `def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)
print(fib(10))
`
	_, out := run(t, src)
	assert.Equal(t, "55\n", out)
}

func TestRecursionDepthGuard(t *testing.T) {
	src := `def loop(n):
    return loop(n + 1)
loop(0)
`
	result, _ := run(t, src)
	ev, ok := result.(*ErrorValue)
	require.True(t, ok, "expected a runtime error, got %T", result)
	assert.Contains(t, ev.Err.Message, "recursion")
}

// S3: C-style for loop.
func TestCStyleForLoop(t *testing.T) {
	src := `total = 0
for i = 0; i < 5; i = i + 1:
    total = total + i
print(total)
`
	_, out := run(t, src)
	assert.Equal(t, "10\n", out)
}

// S4: short-circuit evaluation. The right operand of `and`/`or` must not
// run when the left operand already decides the result.
func TestShortCircuitAndDoesNotEvaluateRight(t *testing.T) {
	src := `def boom():
    print("boom")
    return true
if false and boom():
    print("unreachable")
print("done")
`
	_, out := run(t, src)
	assert.Equal(t, "done\n", out)
}

func TestShortCircuitOrDoesNotEvaluateRight(t *testing.T) {
	src := `def boom():
    print("boom")
    return false
if true or boom():
    print("reached")
print("done")
`
	_, out := run(t, src)
	assert.Equal(t, "reached\ndone\n", out)
}

// S5: string split / array sort / abs.
func TestStringSplitArraySortAbs(t *testing.T) {
	src := `parts = "c,a,b".split(",")
parts.sort()
print(parts)
print(abs(-5))
print(abs(3.5))
`
	_, out := run(t, src)
	assert.Equal(t, "[\"a\", \"b\", \"c\"]\n5\n3.5\n", out)
}

func TestArrayPushPop(t *testing.T) {
	src := `arr = [1, 2]
arr.push(3)
print(arr)
last = arr.pop()
print(last)
print(arr)
`
	_, out := run(t, src)
	assert.Equal(t, "[1, 2, 3]\n3\n[1, 2]\n", out)
}

func TestArrayPopFromEmptyIsIndexError(t *testing.T) {
	result, _ := run(t, "arr = []\narr.pop()\n")
	ev, ok := result.(*ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "IndexError", string(ev.Err.Kind))
}

// S6: map and set semantics.
func TestMapGetSetHasRemove(t *testing.T) {
	src := `m = Map()
m.set("x", 1)
print(m.has("x"))
print(m.get("x"))
m.remove("x")
print(m.has("x"))
`
	_, out := run(t, src)
	assert.Equal(t, "true\n1\nfalse\n", out)
}

func TestMapGetMissingKeyIsKeyError(t *testing.T) {
	result, _ := run(t, `m = Map()
m.get("missing")
`)
	ev, ok := result.(*ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "KeyError", string(ev.Err.Kind))
}

func TestSetAddHasRemoveDeduplicates(t *testing.T) {
	src := `s = Set()
s.add(1)
s.add(1)
s.add(2)
print(len(s))
print(s.has(1))
s.remove(1)
print(s.has(1))
`
	_, out := run(t, src)
	assert.Equal(t, "2\ntrue\nfalse\n", out)
}

func TestMapLiteralAndSetLiteralEvaluate(t *testing.T) {
	_, out := run(t, `m = {"a": 1, "b": 2}
print(m.get("b"))
s = {1, 2, 2, 3}
print(len(s))
`)
	assert.Equal(t, "2\n3\n", out)
}

func TestIndexAssignmentOnArray(t *testing.T) {
	_, out := run(t, "arr = [1, 2, 3]\narr[1] = 99\nprint(arr)\n")
	assert.Equal(t, "[1, 99, 3]\n", out)
}

func TestArrayIndexOutOfRangeIsIndexError(t *testing.T) {
	result, _ := run(t, "arr = [1, 2]\nprint(arr[5])\n")
	ev, ok := result.(*ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "IndexError", string(ev.Err.Kind))
}

func TestUndefinedNameIsNameError(t *testing.T) {
	result, _ := run(t, "print(unknown_name)\n")
	ev, ok := result.(*ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "NameError", string(ev.Err.Kind))
}

func TestWhileLoopAccumulates(t *testing.T) {
	_, out := run(t, `n = 0
total = 0
while n < 5:
    total = total + n
    n = n + 1
print(total)
`)
	assert.Equal(t, "10\n", out)
}

func TestVariableScopingWriteUpdatesOuterBinding(t *testing.T) {
	src := `x = 1
def setter():
    x = 2
setter()
print(x)
`
	_, out := run(t, src)
	assert.Equal(t, "2\n", out)
}

func TestReturnOutsideFunctionIsSyntaxError(t *testing.T) {
	result, _ := run(t, "return 1\n")
	ev, ok := result.(*ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "SyntaxError", string(ev.Err.Kind))
}

func TestTruthinessOfEmptyCollections(t *testing.T) {
	_, out := run(t, `if []:
    print("yes")
else:
    print("no")
if [1]:
    print("yes")
else:
    print("no")
`)
	assert.Equal(t, "no\nyes\n", out)
}

func TestStringConcatenationWithPlus(t *testing.T) {
	_, out := run(t, `print("foo" + "bar")
`)
	assert.Equal(t, "foobar\n", out)
}

func TestTypeErrorOnInvalidOperandTypes(t *testing.T) {
	result, _ := run(t, `print("foo" + 1)
`)
	ev, ok := result.(*ErrorValue)
	require.True(t, ok)
	assert.Equal(t, "TypeError", string(ev.Err.Kind))
}
