package interp

import (
	"bufio"
	"io"
	"strings"

	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// maxCallDepth bounds user-function recursion so a runaway recursive
// program reports a diagnostic instead of overflowing the host stack.
const maxCallDepth = 2000

// Interpreter executes a Culebra *ast.Program directly, dispatching on AST
// node kind. Control flow within a function body is tracked with a single
// returnSignal flag rather than separate break/continue/exit signals, since
// the language has no loop-exit statements.
type Interpreter struct {
	output   io.Writer
	input    *bufio.Reader
	builtins *Environment
	global   *Environment
	env      *Environment

	returnSignal bool
	returnValue  Value

	callStack []string
}

// New creates an Interpreter writing to output and reading input() prompts
// from in. Either may be nil to discard output / disable input.
func New(output io.Writer, in io.Reader) *Interpreter {
	i := &Interpreter{
		output:   output,
		builtins: NewReadonlyEnvironment(),
	}
	if in != nil {
		i.input = bufio.NewReader(in)
	}
	i.global = NewEnclosedEnvironment(i.builtins)
	i.env = i.global
	registerBuiltins(i.builtins)
	return i
}

// Run evaluates every top-level statement of program in order and returns
// the last statement's value, or an *ErrorValue if execution failed.
func (i *Interpreter) Run(program *ast.Program) Value {
	var result Value = none
	for _, stmt := range program.Statements {
		result = i.Eval(stmt)
		if isError(result) {
			return result
		}
		if i.returnSignal {
			i.returnSignal = false
			return newError(cerrors.SyntaxError, stmt, "'return' outside of a function")
		}
	}
	return result
}

// Eval is the single polymorphic dispatcher over every AST node kind.
func (i *Interpreter) Eval(node ast.Node) Value {
	switch n := node.(type) {
	case *ast.Program:
		return i.Run(n)

	// Statements
	case *ast.ExpressionStatement:
		return i.Eval(n.Expression)
	case *ast.AssignmentStatement:
		return i.evalAssignment(n)
	case *ast.BlockStatement:
		return i.execBlock(n)
	case *ast.IfStatement:
		return i.evalIf(n)
	case *ast.WhileStatement:
		return i.evalWhile(n)
	case *ast.ForStatement:
		return i.evalFor(n)
	case *ast.FunctionDef:
		return i.evalFunctionDef(n)
	case *ast.ReturnStatement:
		return i.evalReturn(n)

	// Expressions
	case *ast.IntegerLiteral:
		return &IntegerValue{Value: n.Value}
	case *ast.FloatLiteral:
		return &FloatValue{Value: n.Value}
	case *ast.StringLiteral:
		return &StringValue{Value: n.Value}
	case *ast.BooleanLiteral:
		return &BooleanValue{Value: n.Value}
	case *ast.Identifier:
		return i.evalIdentifier(n)
	case *ast.GroupingExpression:
		return i.Eval(n.Inner)
	case *ast.UnaryExpression:
		return i.evalUnary(n)
	case *ast.BinaryExpression:
		return i.evalBinary(n)
	case *ast.ArrayLiteral:
		return i.evalArrayLiteral(n)
	case *ast.TupleLiteral:
		return i.evalTupleLiteral(n)
	case *ast.MapLiteral:
		return i.evalMapLiteral(n)
	case *ast.SetLiteral:
		return i.evalSetLiteral(n)
	case *ast.IndexExpression:
		return i.evalIndex(n)
	case *ast.CallExpression:
		return i.evalCall(n)
	case *ast.DotExpression:
		return newError(cerrors.AttributeError, n, "'.%s' is only meaningful as a call target", n.Name)
	default:
		return newError(cerrors.SyntaxError, node, "cannot evaluate node of type %T", node)
	}
}

// execBlock runs a block's statements in order. `if`/`while`/`for` bodies
// do not introduce a new Environment — execBlock runs directly in the
// caller's current i.env. Execution stops early, without
// clearing returnSignal, so the signal keeps propagating outward to the
// enclosing function call frame.
func (i *Interpreter) execBlock(block *ast.BlockStatement) Value {
	var result Value = none
	for _, stmt := range block.Statements {
		result = i.Eval(stmt)
		if isError(result) {
			return result
		}
		if i.returnSignal {
			return result
		}
	}
	return result
}

func (i *Interpreter) evalIf(stmt *ast.IfStatement) Value {
	for idx, cond := range stmt.Conditions {
		v := i.Eval(cond)
		if isError(v) {
			return v
		}
		if truthy(v) {
			return i.execBlock(stmt.Blocks[idx])
		}
	}
	if stmt.Else != nil {
		return i.execBlock(stmt.Else)
	}
	return none
}

func (i *Interpreter) evalWhile(stmt *ast.WhileStatement) Value {
	for {
		cond := i.Eval(stmt.Condition)
		if isError(cond) {
			return cond
		}
		if !truthy(cond) {
			return none
		}
		v := i.execBlock(stmt.Body)
		if isError(v) {
			return v
		}
		if i.returnSignal {
			return v
		}
	}
}

func (i *Interpreter) evalFor(stmt *ast.ForStatement) Value {
	if stmt.Init != nil {
		v := i.Eval(stmt.Init)
		if isError(v) {
			return v
		}
	}
	for {
		cond := i.Eval(stmt.Condition)
		if isError(cond) {
			return cond
		}
		if !truthy(cond) {
			return none
		}
		v := i.execBlock(stmt.Body)
		if isError(v) {
			return v
		}
		if i.returnSignal {
			return v
		}
		if stmt.Step != nil {
			sv := i.Eval(stmt.Step)
			if isError(sv) {
				return sv
			}
		}
	}
}

func (i *Interpreter) evalFunctionDef(def *ast.FunctionDef) Value {
	fn := &FunctionValue{Name: def.Name, Params: def.Params, Body: def.Body, Env: i.env}
	i.env.Define(def.Name, fn)
	return none
}

func (i *Interpreter) evalReturn(stmt *ast.ReturnStatement) Value {
	var v Value = none
	if stmt.Value != nil {
		v = i.Eval(stmt.Value)
		if isError(v) {
			return v
		}
	}
	i.returnSignal = true
	i.returnValue = v
	return v
}

func (i *Interpreter) evalIdentifier(id *ast.Identifier) Value {
	if v, ok := i.env.Get(id.Value); ok {
		return v
	}
	return newError(cerrors.NameError, id, "name '%s' is not defined", id.Value)
}

// evalAssignment resolves the assignment target as either a plain
// identifier binding (update-in-place where already bound, else define in
// the innermost frame) or an index target (`e[i] = v`) on an Array or Map.
func (i *Interpreter) evalAssignment(stmt *ast.AssignmentStatement) Value {
	val := i.Eval(stmt.Value)
	if isError(val) {
		return val
	}

	switch target := stmt.Target.(type) {
	case *ast.Identifier:
		if !i.env.Set(target.Value, val) {
			i.env.Define(target.Value, val)
		}
		return val
	case *ast.IndexExpression:
		return i.assignIndex(target, val)
	default:
		return newError(cerrors.SyntaxError, stmt, "invalid assignment target")
	}
}

func (i *Interpreter) assignIndex(target *ast.IndexExpression, val Value) Value {
	base := i.Eval(target.Left)
	if isError(base) {
		return base
	}
	idx := i.Eval(target.Index)
	if isError(idx) {
		return idx
	}

	switch b := base.(type) {
	case *ArrayValue:
		iv, ok := idx.(*IntegerValue)
		if !ok {
			return newError(cerrors.TypeError, target, "array index must be an integer")
		}
		if iv.Value < 0 || int(iv.Value) >= len(b.Elements) {
			return newError(cerrors.IndexError, target, "array index %d out of range", iv.Value)
		}
		b.Elements[iv.Value] = val
		return val
	case *MapValue:
		if err := b.Set(idx, val); err != nil {
			return newError(cerrors.TypeError, target, "%s", err.Error())
		}
		return val
	case *SetValue:
		return newError(cerrors.TypeError, target, "set does not support index assignment")
	case *TupleValue:
		return newError(cerrors.TypeError, target, "tuple does not support index assignment")
	case *StringValue:
		return newError(cerrors.TypeError, target, "string does not support index assignment")
	default:
		return newError(cerrors.TypeError, target, "cannot index assign into %s", base.Type())
	}
}

// readInputLine reads a single line from the interpreter's input source,
// stripped of its trailing newline, for the `input()` built-in.
func (i *Interpreter) readInputLine() (string, error) {
	if i.input == nil {
		return "", io.EOF
	}
	line, err := i.input.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
