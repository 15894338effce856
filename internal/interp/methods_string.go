package interp

import (
	"strings"

	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// callStringMethod implements the String method table: `split`.
func callStringMethod(node ast.Node, s *StringValue, name string, args []Value) Value {
	switch name {
	case "split":
		if len(args) != 1 {
			return newError(cerrors.TypeError, node, "split() takes 1 argument but %d given", len(args))
		}
		delim, ok := args[0].(*StringValue)
		if !ok {
			return newError(cerrors.TypeError, node, "split() delimiter must be a string")
		}
		var parts []string
		if delim.Value == "" {
			parts = strings.Split(s.Value, "")
		} else {
			parts = strings.Split(s.Value, delim.Value)
		}
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i] = &StringValue{Value: p}
		}
		return &ArrayValue{Elements: elems}
	default:
		return newError(cerrors.AttributeError, node, "string has no method '%s'", name)
	}
}
