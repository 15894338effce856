package interp

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// callMapMethod implements the Map method table: `get`, `set`, `has`,
// `remove`.
func callMapMethod(node ast.Node, m *MapValue, name string, args []Value) Value {
	switch name {
	case "get":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "get() takes 1 argument but %d given", len(args))
		}
		v, found, err := m.Get(args[0])
		if err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		if !found {
			return newError(cerrors.KeyError, node, "key %s not found", args[0].String())
		}
		return v
	case "set":
		if len(args) != 2 {
			return newError(cerrors.TypeError, node, "set() takes 2 arguments but %d given", len(args))
		}
		if err := m.Set(args[0], args[1]); err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		return none
	case "has":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "has() takes 1 argument but %d given", len(args))
		}
		_, found, err := m.Get(args[0])
		if err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		return &BooleanValue{Value: found}
	case "remove":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "remove() takes 1 argument but %d given", len(args))
		}
		removed, err := m.Remove(args[0])
		if err != nil {
			return newError(cerrors.TypeError, node, "%s", err.Error())
		}
		return &BooleanValue{Value: removed}
	default:
		return newError(cerrors.AttributeError, node, "map has no method '%s'", name)
	}
}
