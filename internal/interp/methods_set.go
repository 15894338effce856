package interp

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// callSetMethod implements the Set method table: `add`, `remove`, `has`.
func callSetMethod(node ast.Node, s *SetValue, name string, args []Value) Value {
	switch name {
	case "add":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "add() takes 1 argument but %d given", len(args))
		}
		if err := s.Add(args[0]); err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		return none
	case "remove":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "remove() takes 1 argument but %d given", len(args))
		}
		removed, err := s.Remove(args[0])
		if err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		return &BooleanValue{Value: removed}
	case "has":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "has() takes 1 argument but %d given", len(args))
		}
		has, err := s.Has(args[0])
		if err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		return &BooleanValue{Value: has}
	default:
		return newError(cerrors.AttributeError, node, "set has no method '%s'", name)
	}
}
