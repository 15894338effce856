package parser

import (
	"testing"

	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src, "<test>")
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors for %q", src)
	return program
}

func singleExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	program := parseOK(t, src)
	require.Len(t, program.Statements, 1)
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected ExpressionStatement, got %T", program.Statements[0])
	return stmt.Expression
}

func TestParseArithmeticPrecedence(t *testing.T) {
	expr := singleExpr(t, "1 + 2 * 3\n")
	bin, ok := expr.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
	assert.IsType(t, &ast.IntegerLiteral{}, bin.Left)
	mul, ok := bin.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Operator)
}

func TestParseUnaryMinusBindsTighterThanMultiplication(t *testing.T) {
	expr := singleExpr(t, "-1 * 2\n")
	bin, ok := expr.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "*", bin.Operator)
	assert.IsType(t, &ast.UnaryExpression{}, bin.Left)
}

func TestParseAndBindsTighterThanOr(t *testing.T) {
	expr := singleExpr(t, "true or false and true\n")
	bin, ok := expr.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "or", bin.Operator)
	assert.IsType(t, &ast.BinaryExpression{}, bin.Right)
	right := bin.Right.(*ast.BinaryExpression)
	assert.Equal(t, "and", right.Operator)
}

func TestParseNotBindsTighterThanAndLooserThanComparison(t *testing.T) {
	expr := singleExpr(t, "not x == y\n")
	unary, ok := expr.(*ast.UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, "not", unary.Operator)
	assert.IsType(t, &ast.BinaryExpression{}, unary.Operand)
}

func TestParseChainedComparisonIsSyntaxError(t *testing.T) {
	p := New("1 < 2 < 3\n", "<test>")
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

func TestParseGroupingVsTupleDisambiguation(t *testing.T) {
	grouped := singleExpr(t, "(1)\n")
	assert.IsType(t, &ast.GroupingExpression{}, grouped)

	tuple := singleExpr(t, "(1, 2)\n")
	tv, ok := tuple.(*ast.TupleLiteral)
	require.True(t, ok)
	assert.Len(t, tv.Elements, 2)
}

func TestParseTupleRequiresAtLeastTwoElements(t *testing.T) {
	p := New("(1,)\n", "<test>")
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

func TestParseMapVsSetDisambiguation(t *testing.T) {
	m := singleExpr(t, `{"a": 1, "b": 2}`+"\n")
	ml, ok := m.(*ast.MapLiteral)
	require.True(t, ok)
	assert.Len(t, ml.Pairs, 2)

	s := singleExpr(t, "{1, 2, 3}\n")
	sl, ok := s.(*ast.SetLiteral)
	require.True(t, ok)
	assert.Len(t, sl.Elements, 3)
}

func TestParseEmptyBraceLiteralIsError(t *testing.T) {
	p := New("x = {}\n", "<test>")
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

func TestParseArrayLiteral(t *testing.T) {
	expr := singleExpr(t, "[1, 2, 3]\n")
	arr, ok := expr.(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestParsePostfixChainsIndexCallAndDot(t *testing.T) {
	expr := singleExpr(t, "a[0].push(1)\n")
	call, ok := expr.(*ast.CallExpression)
	require.True(t, ok)
	dot, ok := call.Callee.(*ast.DotExpression)
	require.True(t, ok)
	assert.Equal(t, "push", dot.Name)
	assert.IsType(t, &ast.IndexExpression{}, dot.Object)
}

func TestParseIfElifElseBlocks(t *testing.T) {
	src := "if x:\n    a = 1\nelif y:\n    a = 2\nelse:\n    a = 3\n"
	program := parseOK(t, src)
	require.Len(t, program.Statements, 1)
	ifStmt, ok := program.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.Len(t, ifStmt.Conditions, 2)
	assert.Len(t, ifStmt.Blocks, 2)
	require.NotNil(t, ifStmt.Else)
}

func TestParseWhileStatement(t *testing.T) {
	program := parseOK(t, "while x < 10:\n    x = x + 1\n")
	_, ok := program.Statements[0].(*ast.WhileStatement)
	assert.True(t, ok)
}

func TestParseCStyleForStatement(t *testing.T) {
	program := parseOK(t, "for i = 0; i < 10; i = i + 1:\n    print(i)\n")
	forStmt, ok := program.Statements[0].(*ast.ForStatement)
	require.True(t, ok)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Condition)
	require.NotNil(t, forStmt.Step)
}

func TestParseFunctionDefAndReturn(t *testing.T) {
	program := parseOK(t, "def add(a, b):\n    return a + b\n")
	fn, ok := program.Statements[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"a", "b"}, fn.Params)
	require.Len(t, fn.Body.Statements, 1)
	assert.IsType(t, &ast.ReturnStatement{}, fn.Body.Statements[0])
}

func TestParseAssignmentToIndexTarget(t *testing.T) {
	program := parseOK(t, "a[0] = 1\n")
	assign, ok := program.Statements[0].(*ast.AssignmentStatement)
	require.True(t, ok)
	assert.IsType(t, &ast.IndexExpression{}, assign.Target)
}

func TestParseInvalidAssignmentTargetIsError(t *testing.T) {
	p := New("1 + 1 = 2\n", "<test>")
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}

func TestParseSyntaxErrorRecoversAndContinues(t *testing.T) {
	p := New("1 + 1 = 2\ny = 1\n", "<test>")
	program := p.ParseProgram()
	require.NotEmpty(t, p.Errors())
	// recovery should still parse the following statement
	found := false
	for _, stmt := range program.Statements {
		if assign, ok := stmt.(*ast.AssignmentStatement); ok {
			if id, ok := assign.Target.(*ast.Identifier); ok && id.Value == "y" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected recovery to parse the y = 1 statement")
}

func TestParseMismatchedDedentIsIndentationError(t *testing.T) {
	p := New("if true:\n    x = 1\n  y = 2\n", "<test>")
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
	assert.Equal(t, cerrors.IndentationError, p.Errors()[0].Kind)
}
