package interp

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// evalCall dispatches three distinct callee shapes: a user FunctionValue,
// a native BuiltinValue, and the `receiver.method(args)` sugar of a
// DotExpression callee, which never produces a first-class bound value —
// it is resolved directly here.
func (i *Interpreter) evalCall(expr *ast.CallExpression) Value {
	if dot, ok := expr.Callee.(*ast.DotExpression); ok {
		return i.evalMethodCall(dot, expr.Args)
	}

	callee := i.Eval(expr.Callee)
	if isError(callee) {
		return callee
	}

	args := make([]Value, len(expr.Args))
	for idx, a := range expr.Args {
		v := i.Eval(a)
		if isError(v) {
			return v
		}
		args[idx] = v
	}

	switch fn := callee.(type) {
	case *FunctionValue:
		return i.callFunction(expr, fn, args)
	case *BuiltinValue:
		return fn.Fn(i, args)
	default:
		return newError(cerrors.TypeError, expr, "%s is not callable", callee.Type())
	}
}

// callFunction pushes a new call frame, bounded by maxCallDepth, binds
// positional parameters into a fresh Environment enclosing the function's
// closure environment, executes the body, and collects any returnSignal
// raised within it.
func (i *Interpreter) callFunction(expr ast.Node, fn *FunctionValue, args []Value) Value {
	if len(args) != len(fn.Params) {
		return newError(cerrors.TypeError, expr, "%s() takes %d argument(s) but %d given", fn.Name, len(fn.Params), len(args))
	}
	if len(i.callStack) >= maxCallDepth {
		return newError(cerrors.ValueError, expr, "maximum recursion depth exceeded")
	}

	callEnv := NewEnclosedEnvironment(fn.Env)
	for idx, p := range fn.Params {
		callEnv.Define(p, args[idx])
	}

	savedEnv := i.env
	i.env = callEnv
	i.callStack = append(i.callStack, fn.Name)

	result := i.execBlock(fn.Body)

	i.callStack = i.callStack[:len(i.callStack)-1]
	i.env = savedEnv

	if isError(result) {
		return result
	}
	if i.returnSignal {
		i.returnSignal = false
		rv := i.returnValue
		i.returnValue = nil
		return rv
	}
	return none
}

// evalMethodCall implements `receiver.method(args)`, looking up the method
// in the receiver value's own closed method table rather than through any
// general attribute-resolution mechanism.
func (i *Interpreter) evalMethodCall(dot *ast.DotExpression, argExprs []ast.Expression) Value {
	recv := i.Eval(dot.Object)
	if isError(recv) {
		return recv
	}

	args := make([]Value, len(argExprs))
	for idx, a := range argExprs {
		v := i.Eval(a)
		if isError(v) {
			return v
		}
		args[idx] = v
	}

	switch r := recv.(type) {
	case *ArrayValue:
		return callArrayMethod(dot, r, dot.Name, args)
	case *MapValue:
		return callMapMethod(dot, r, dot.Name, args)
	case *SetValue:
		return callSetMethod(dot, r, dot.Name, args)
	case *StringValue:
		return callStringMethod(dot, r, dot.Name, args)
	default:
		return newError(cerrors.AttributeError, dot, "%s has no method '%s'", recv.Type(), dot.Name)
	}
}
