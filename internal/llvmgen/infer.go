package llvmgen

import (
	"fmt"

	"github.com/cnexans/culebra/internal/ast"
)

// typeEnv holds the inferred IRType of every local name (including
// parameters) within a single function, plus its return type.
type typeEnv struct {
	vars   map[string]IRType
	fnName string
}

func newTypeEnv(fnName string) *typeEnv {
	return &typeEnv{vars: make(map[string]IRType), fnName: fnName}
}

// bind records name's type, raising a compile error on a conflicting
// re-binding: a name whose inferred type changes across assignments
// cannot be lowered to a single alloca slot.
func (e *typeEnv) bind(name string, t IRType) error {
	if existing, ok := e.vars[name]; ok {
		if existing != t {
			return fmt.Errorf("conflicting types for %q in %s(): %s then %s", name, e.fnName, existing, t)
		}
		return nil
	}
	e.vars[name] = t
	return nil
}

// inferFunction performs flow-insensitive type propagation over a single
// function body: every parameter is typed as integer, and every
// assignment's RHS fixes its target's type the first time it is seen.
// Parameter types are not refined from the body or from call sites; a
// body that assigns a parameter a non-integer value fails as a
// conflicting binding.
func inferFunction(fn *ast.FunctionDef) (*typeEnv, IRType, error) {
	env := newTypeEnv(fn.Name)
	for _, p := range fn.Params {
		env.vars[p] = TInt
	}

	// The body is walked twice. A name keeps the type it was first bound
	// with; the second walk re-checks every binding against those types
	// and fails on any conflict.
	for pass := 0; pass < 2; pass++ {
		if err := inferBlock(fn.Body, env); err != nil {
			return nil, TVoid, err
		}
	}

	retType := TVoid
	if t, ok := findReturnType(fn.Body, env); ok {
		retType = t
	}
	return env, retType, nil
}

func findReturnType(block *ast.BlockStatement, env *typeEnv) (IRType, bool) {
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.ReturnStatement:
			if s.Value == nil {
				return TVoid, true
			}
			if t, err := inferExpr(s.Value, env); err == nil {
				return t, true
			}
		case *ast.IfStatement:
			for _, b := range s.Blocks {
				if t, ok := findReturnType(b, env); ok {
					return t, ok
				}
			}
			if s.Else != nil {
				if t, ok := findReturnType(s.Else, env); ok {
					return t, ok
				}
			}
		case *ast.WhileStatement:
			if t, ok := findReturnType(s.Body, env); ok {
				return t, ok
			}
		case *ast.ForStatement:
			if t, ok := findReturnType(s.Body, env); ok {
				return t, ok
			}
		}
	}
	return TVoid, false
}

func inferBlock(block *ast.BlockStatement, env *typeEnv) error {
	for _, stmt := range block.Statements {
		if err := inferStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func inferStatement(stmt ast.Statement, env *typeEnv) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, err := inferExpr(s.Expression, env)
		return err
	case *ast.AssignmentStatement:
		t, err := inferExpr(s.Value, env)
		if err != nil {
			return err
		}
		if id, ok := s.Target.(*ast.Identifier); ok {
			return env.bind(id.Value, t)
		}
		_, err = inferExpr(s.Target, env)
		return err
	case *ast.BlockStatement:
		return inferBlock(s, env)
	case *ast.IfStatement:
		for _, c := range s.Conditions {
			if _, err := inferExpr(c, env); err != nil {
				return err
			}
		}
		for _, b := range s.Blocks {
			if err := inferBlock(b, env); err != nil {
				return err
			}
		}
		if s.Else != nil {
			return inferBlock(s.Else, env)
		}
		return nil
	case *ast.WhileStatement:
		if _, err := inferExpr(s.Condition, env); err != nil {
			return err
		}
		return inferBlock(s.Body, env)
	case *ast.ForStatement:
		if s.Init != nil {
			if err := inferStatement(s.Init, env); err != nil {
				return err
			}
		}
		if s.Condition != nil {
			if _, err := inferExpr(s.Condition, env); err != nil {
				return err
			}
		}
		if s.Step != nil {
			if err := inferStatement(s.Step, env); err != nil {
				return err
			}
		}
		return inferBlock(s.Body, env)
	case *ast.ReturnStatement:
		if s.Value != nil {
			_, err := inferExpr(s.Value, env)
			return err
		}
		return nil
	default:
		return nil
	}
}

// inferExpr computes expr's static IRType, binding identifier types into
// env lazily where this is the first concrete use.
func inferExpr(expr ast.Expression, env *typeEnv) (IRType, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return TInt, nil
	case *ast.FloatLiteral:
		return TFloat, nil
	case *ast.StringLiteral:
		return TString, nil
	case *ast.BooleanLiteral:
		return TBool, nil
	case *ast.Identifier:
		if t, ok := env.vars[e.Value]; ok {
			return t, nil
		}
		env.vars[e.Value] = TInt
		return TInt, nil
	case *ast.GroupingExpression:
		return inferExpr(e.Inner, env)
	case *ast.UnaryExpression:
		if e.Operator == "not" {
			return TBool, nil
		}
		return inferExpr(e.Operand, env)
	case *ast.BinaryExpression:
		return inferBinary(e, env)
	case *ast.ArrayLiteral:
		return TArray, nil
	case *ast.IndexExpression:
		baseT, err := inferExpr(e.Left, env)
		if err != nil {
			return TVoid, err
		}
		if baseT == TString {
			return TString, nil
		}
		return TInt, nil // array element type is monomorphized to integer
	case *ast.CallExpression:
		return inferCall(e, env)
	default:
		return TVoid, fmt.Errorf("AOT backend: %T is not supported for static compilation", expr)
	}
}

func inferBinary(e *ast.BinaryExpression, env *typeEnv) (IRType, error) {
	switch e.Operator {
	case "and", "or":
		if _, err := inferExpr(e.Left, env); err != nil {
			return TVoid, err
		}
		if _, err := inferExpr(e.Right, env); err != nil {
			return TVoid, err
		}
		return TBool, nil
	case "==", "!=", "<", "<=", ">", ">=":
		if _, err := inferExpr(e.Left, env); err != nil {
			return TVoid, err
		}
		if _, err := inferExpr(e.Right, env); err != nil {
			return TVoid, err
		}
		return TBool, nil
	}

	lt, err := inferExpr(e.Left, env)
	if err != nil {
		return TVoid, err
	}
	rt, err := inferExpr(e.Right, env)
	if err != nil {
		return TVoid, err
	}

	if e.Operator == "+" && lt == TString && rt == TString {
		return TString, nil
	}
	if e.Operator == "/" {
		return TFloat, nil
	}
	if lt == TFloat || rt == TFloat {
		return TFloat, nil
	}
	if lt == TInt && rt == TInt {
		return TInt, nil
	}
	return TVoid, fmt.Errorf("AOT backend: unsupported operand types for '%s': %s and %s", e.Operator, lt, rt)
}

func inferCall(e *ast.CallExpression, env *typeEnv) (IRType, error) {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		if t, ok := builtinReturnType(ident.Value); ok {
			for _, a := range e.Args {
				if _, err := inferExpr(a, env); err != nil {
					return TVoid, err
				}
			}
			return t, nil
		}
	}
	for _, a := range e.Args {
		if _, err := inferExpr(a, env); err != nil {
			return TVoid, err
		}
	}
	// User function calls default to integer in the AOT backend's
	// single-pass inference; a more complete implementation would unify
	// across the callee's own inferred return type.
	return TInt, nil
}

// builtinReturnType covers the subset of built-in functions that are
// statically typeable for the AOT backend.
func builtinReturnType(name string) (IRType, bool) {
	switch name {
	case "len", "ord", "int":
		return TInt, true
	case "float":
		return TFloat, true
	case "chr", "str", "input":
		return TString, true
	case "abs":
		return TInt, true
	default:
		return TVoid, false
	}
}
