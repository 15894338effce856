package interp

import (
	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// callArrayMethod implements the Array method table: `push`, `pop`, `sort`.
func callArrayMethod(node ast.Node, arr *ArrayValue, name string, args []Value) Value {
	switch name {
	case "push":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "push() takes 1 argument but %d given", len(args))
		}
		arr.Elements = append(arr.Elements, args[0])
		return none
	case "pop":
		if len(args) != 0 {
			return newError(cerrors.TypeError, node, "pop() takes 0 arguments but %d given", len(args))
		}
		if len(arr.Elements) == 0 {
			return newError(cerrors.IndexError, node, "pop from empty array")
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last
	case "sort":
		if len(args) != 0 {
			return newError(cerrors.TypeError, node, "sort() takes 0 arguments but %d given", len(args))
		}
		if errv := sortValues(arr.Elements); errv != nil {
			return errv
		}
		return none
	default:
		return newError(cerrors.AttributeError, node, "array has no method '%s'", name)
	}
}
