package interp

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

func (i *Interpreter) evalUnary(expr *ast.UnaryExpression) Value {
	switch expr.Operator {
	case "not":
		v := i.Eval(expr.Operand)
		if isError(v) {
			return v
		}
		return &BooleanValue{Value: !truthy(v)}
	case "-":
		v := i.Eval(expr.Operand)
		if isError(v) {
			return v
		}
		switch val := v.(type) {
		case *IntegerValue:
			return &IntegerValue{Value: -val.Value}
		case *FloatValue:
			return &FloatValue{Value: -val.Value}
		default:
			return newError(cerrors.TypeError, expr, "unary '-' not supported for %s", v.Type())
		}
	default:
		return newError(cerrors.SyntaxError, expr, "unknown unary operator %q", expr.Operator)
	}
}

// evalBinary dispatches on operator, implementing short-circuit logical
// operators before evaluating arithmetic/comparison operands, since the
// latter always evaluate both sides.
func (i *Interpreter) evalBinary(expr *ast.BinaryExpression) Value {
	switch expr.Operator {
	case "and":
		left := i.Eval(expr.Left)
		if isError(left) {
			return left
		}
		if !truthy(left) {
			return left
		}
		return i.Eval(expr.Right)
	case "or":
		left := i.Eval(expr.Left)
		if isError(left) {
			return left
		}
		if truthy(left) {
			return left
		}
		return i.Eval(expr.Right)
	}

	left := i.Eval(expr.Left)
	if isError(left) {
		return left
	}
	right := i.Eval(expr.Right)
	if isError(right) {
		return right
	}

	switch expr.Operator {
	case "==":
		return &BooleanValue{Value: valuesEqual(left, right)}
	case "!=":
		return &BooleanValue{Value: !valuesEqual(left, right)}
	case "<", "<=", ">", ">=":
		return i.evalOrderingComparison(expr, left, right)
	case "+":
		return i.evalAdd(expr, left, right)
	case "-", "*", "/":
		return i.evalArith(expr, left, right)
	default:
		return newError(cerrors.SyntaxError, expr, "unknown binary operator %q", expr.Operator)
	}
}

func (i *Interpreter) evalOrderingComparison(expr *ast.BinaryExpression, left, right Value) Value {
	lf, lok := numericOf(left)
	rf, rok := numericOf(right)
	if lok && rok {
		return &BooleanValue{Value: compareFloat(expr.Operator, lf, rf)}
	}
	ls, lok := left.(*StringValue)
	rs, rok := right.(*StringValue)
	if lok && rok {
		return &BooleanValue{Value: compareString(expr.Operator, ls.Value, rs.Value)}
	}
	return newError(cerrors.TypeError, expr, "'%s' not supported between %s and %s", expr.Operator, left.Type(), right.Type())
}

func compareFloat(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

func compareString(op string, a, b string) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	}
	return false
}

// evalAdd implements `+`, which additionally supports string concatenation
// on top of the numeric promotion rules shared with `- * /`.
func (i *Interpreter) evalAdd(expr *ast.BinaryExpression, left, right Value) Value {
	ls, lok := left.(*StringValue)
	rs, rok := right.(*StringValue)
	if lok && rok {
		return &StringValue{Value: ls.Value + rs.Value}
	}
	return i.evalArith(expr, left, right)
}

// evalArith implements numeric promotion: `int op int` stays integer for
// `+ - *`; any mixed numeric pair promotes to float; `/` always yields
// float.
func (i *Interpreter) evalArith(expr *ast.BinaryExpression, left, right Value) Value {
	li, liok := left.(*IntegerValue)
	ri, riok := right.(*IntegerValue)

	if liok && riok && expr.Operator != "/" {
		switch expr.Operator {
		case "+":
			return &IntegerValue{Value: li.Value + ri.Value}
		case "-":
			return &IntegerValue{Value: li.Value - ri.Value}
		case "*":
			return &IntegerValue{Value: li.Value * ri.Value}
		}
	}

	lf, lok := numericOf(left)
	rf, rok := numericOf(right)
	if !lok || !rok {
		return newError(cerrors.TypeError, expr, "unsupported operand types for '%s': %s and %s", expr.Operator, left.Type(), right.Type())
	}

	switch expr.Operator {
	case "+":
		return &FloatValue{Value: lf + rf}
	case "-":
		return &FloatValue{Value: lf - rf}
	case "*":
		return &FloatValue{Value: lf * rf}
	case "/":
		if rf == 0 {
			return newError(cerrors.ValueError, expr, "division by zero")
		}
		return &FloatValue{Value: lf / rf}
	default:
		return newError(cerrors.SyntaxError, expr, "unknown arithmetic operator %q", expr.Operator)
	}
}

func (i *Interpreter) evalArrayLiteral(lit *ast.ArrayLiteral) Value {
	elems := make([]Value, len(lit.Elements))
	for idx, e := range lit.Elements {
		v := i.Eval(e)
		if isError(v) {
			return v
		}
		elems[idx] = v
	}
	return &ArrayValue{Elements: elems}
}

func (i *Interpreter) evalTupleLiteral(lit *ast.TupleLiteral) Value {
	elems := make([]Value, len(lit.Elements))
	for idx, e := range lit.Elements {
		v := i.Eval(e)
		if isError(v) {
			return v
		}
		elems[idx] = v
	}
	return &TupleValue{Elements: elems}
}

func (i *Interpreter) evalMapLiteral(lit *ast.MapLiteral) Value {
	m := NewMapValue()
	for _, pair := range lit.Pairs {
		k := i.Eval(pair.Key)
		if isError(k) {
			return k
		}
		v := i.Eval(pair.Value)
		if isError(v) {
			return v
		}
		if err := m.Set(k, v); err != nil {
			return newError(cerrors.TypeError, lit, "%s", err.Error())
		}
	}
	return m
}

func (i *Interpreter) evalSetLiteral(lit *ast.SetLiteral) Value {
	s := NewSetValue()
	for _, e := range lit.Elements {
		v := i.Eval(e)
		if isError(v) {
			return v
		}
		if err := s.Add(v); err != nil {
			return newError(cerrors.TypeError, lit, "%s", err.Error())
		}
	}
	return s
}

// evalIndex implements `a[i]` across Array, String, Map, and Tuple.
func (i *Interpreter) evalIndex(expr *ast.IndexExpression) Value {
	base := i.Eval(expr.Left)
	if isError(base) {
		return base
	}
	idx := i.Eval(expr.Index)
	if isError(idx) {
		return idx
	}

	switch b := base.(type) {
	case *ArrayValue:
		iv, ok := idx.(*IntegerValue)
		if !ok {
			return newError(cerrors.TypeError, expr, "array index must be an integer")
		}
		if iv.Value < 0 || int(iv.Value) >= len(b.Elements) {
			return newError(cerrors.IndexError, expr, "array index %d out of range", iv.Value)
		}
		return b.Elements[iv.Value]
	case *TupleValue:
		iv, ok := idx.(*IntegerValue)
		if !ok {
			return newError(cerrors.TypeError, expr, "tuple index must be an integer")
		}
		if iv.Value < 0 || int(iv.Value) >= len(b.Elements) {
			return newError(cerrors.IndexError, expr, "tuple index %d out of range", iv.Value)
		}
		return b.Elements[iv.Value]
	case *StringValue:
		iv, ok := idx.(*IntegerValue)
		if !ok {
			return newError(cerrors.TypeError, expr, "string index must be an integer")
		}
		runes := []rune(b.Value)
		if iv.Value < 0 || int(iv.Value) >= len(runes) {
			return newError(cerrors.IndexError, expr, "string index %d out of range", iv.Value)
		}
		return &StringValue{Value: string(runes[iv.Value])}
	case *MapValue:
		v, found, err := b.Get(idx)
		if err != nil {
			return newError(cerrors.TypeError, expr, "%s", err.Error())
		}
		if !found {
			return newError(cerrors.KeyError, expr, "key %s not found", idx.String())
		}
		return v
	default:
		return newError(cerrors.TypeError, expr, "%s is not indexable", base.Type())
	}
}
