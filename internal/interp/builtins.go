package interp

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cnexans/culebra/internal/cerrors"
)

// registerBuiltins populates env with the global built-in function table.
// Each entry is a BuiltinValue bound in the caller's (readonly) frame,
// owning its own arity and argument validation.
func registerBuiltins(env *Environment) {
	define := func(name string, fn BuiltinFunc) {
		env.Define(name, &BuiltinValue{Name: name, Fn: fn})
	}

	define("print", builtinPrint)
	define("input", builtinInput)
	define("len", builtinLen)
	define("chr", builtinChr)
	define("ord", builtinOrd)
	define("int", builtinInt)
	define("float", builtinFloat)
	define("str", builtinStr)
	define("abs", builtinAbs)
	define("read_file", builtinReadFile)
	define("read_lines", builtinReadLines)
	define("Map", builtinMap)
	define("Set", builtinSet)
}

func builtinPrint(i *Interpreter, args []Value) Value {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = a.String()
	}
	if i.output != nil {
		fmt.Fprintln(i.output, strings.Join(parts, " "))
	}
	return none
}

func builtinInput(i *Interpreter, args []Value) Value {
	if len(args) > 1 {
		return newError(cerrors.TypeError, nil, "input() takes 0 or 1 arguments but %d given", len(args))
	}
	if len(args) == 1 {
		prompt, ok := args[0].(*StringValue)
		if !ok {
			return newError(cerrors.TypeError, nil, "input() prompt must be a string")
		}
		if i.output != nil {
			fmt.Fprint(i.output, prompt.Value)
		}
	}
	line, err := i.readInputLine()
	if err != nil {
		return newError(cerrors.ValueError, nil, "input(): %s", err.Error())
	}
	return &StringValue{Value: line}
}

func builtinLen(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "len() takes 1 argument but %d given", len(args))
	}
	switch v := args[0].(type) {
	case *StringValue:
		return &IntegerValue{Value: int64(len([]rune(v.Value)))}
	case *ArrayValue:
		return &IntegerValue{Value: int64(len(v.Elements))}
	case *TupleValue:
		return &IntegerValue{Value: int64(len(v.Elements))}
	case *MapValue:
		return &IntegerValue{Value: int64(v.Len())}
	case *SetValue:
		return &IntegerValue{Value: int64(v.Len())}
	default:
		return newError(cerrors.TypeError, nil, "len() not supported for %s", args[0].Type())
	}
}

func builtinChr(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "chr() takes 1 argument but %d given", len(args))
	}
	n, ok := args[0].(*IntegerValue)
	if !ok {
		return newError(cerrors.TypeError, nil, "chr() argument must be an integer")
	}
	if n.Value < 0 || n.Value > 0x10FFFF {
		return newError(cerrors.ValueError, nil, "chr() code point out of range: %d", n.Value)
	}
	return &StringValue{Value: string(rune(n.Value))}
}

func builtinOrd(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "ord() takes 1 argument but %d given", len(args))
	}
	s, ok := args[0].(*StringValue)
	if !ok {
		return newError(cerrors.TypeError, nil, "ord() argument must be a string")
	}
	runes := []rune(s.Value)
	if len(runes) == 0 {
		return newError(cerrors.ValueError, nil, "ord() of empty string")
	}
	return &IntegerValue{Value: int64(runes[0])}
}

func builtinInt(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "int() takes 1 argument but %d given", len(args))
	}
	switch v := args[0].(type) {
	case *IntegerValue:
		return v
	case *FloatValue:
		return &IntegerValue{Value: int64(v.Value)}
	case *StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Value), 10, 64)
		if err != nil {
			return newError(cerrors.ValueError, nil, "invalid literal for int(): %q", v.Value)
		}
		return &IntegerValue{Value: n}
	case *BooleanValue:
		if v.Value {
			return &IntegerValue{Value: 1}
		}
		return &IntegerValue{Value: 0}
	default:
		return newError(cerrors.TypeError, nil, "int() not supported for %s", args[0].Type())
	}
}

func builtinFloat(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "float() takes 1 argument but %d given", len(args))
	}
	switch v := args[0].(type) {
	case *FloatValue:
		return v
	case *IntegerValue:
		return &FloatValue{Value: float64(v.Value)}
	case *StringValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
		if err != nil {
			return newError(cerrors.ValueError, nil, "invalid literal for float(): %q", v.Value)
		}
		return &FloatValue{Value: f}
	default:
		return newError(cerrors.TypeError, nil, "float() not supported for %s", args[0].Type())
	}
}

func builtinStr(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "str() takes 1 argument but %d given", len(args))
	}
	return &StringValue{Value: args[0].String()}
}

func builtinAbs(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "abs() takes 1 argument but %d given", len(args))
	}
	switch v := args[0].(type) {
	case *IntegerValue:
		if v.Value < 0 {
			return &IntegerValue{Value: -v.Value}
		}
		return v
	case *FloatValue:
		if v.Value < 0 {
			return &FloatValue{Value: -v.Value}
		}
		return v
	default:
		return newError(cerrors.TypeError, nil, "abs() not supported for %s", args[0].Type())
	}
}

func builtinReadFile(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "read_file() takes 1 argument but %d given", len(args))
	}
	path, ok := args[0].(*StringValue)
	if !ok {
		return newError(cerrors.TypeError, nil, "read_file() argument must be a string")
	}
	data, err := os.ReadFile(path.Value)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(cerrors.FileNotFoundError, nil, "no such file: %q", path.Value)
		}
		return newError(cerrors.ValueError, nil, "read_file(): %s", err.Error())
	}
	return &StringValue{Value: string(data)}
}

func builtinReadLines(i *Interpreter, args []Value) Value {
	if len(args) != 1 {
		return newError(cerrors.TypeError, nil, "read_lines() takes 1 argument but %d given", len(args))
	}
	path, ok := args[0].(*StringValue)
	if !ok {
		return newError(cerrors.TypeError, nil, "read_lines() argument must be a string")
	}
	data, err := os.ReadFile(path.Value)
	if err != nil {
		if os.IsNotExist(err) {
			return newError(cerrors.FileNotFoundError, nil, "no such file: %q", path.Value)
		}
		return newError(cerrors.ValueError, nil, "read_lines(): %s", err.Error())
	}
	text := strings.TrimRight(string(data), "\n")
	var lines []string
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	elems := make([]Value, len(lines))
	for idx, l := range lines {
		elems[idx] = &StringValue{Value: strings.TrimSuffix(l, "\r")}
	}
	return &ArrayValue{Elements: elems}
}

func builtinMap(i *Interpreter, args []Value) Value {
	if len(args) != 0 {
		return newError(cerrors.TypeError, nil, "Map() takes 0 arguments but %d given", len(args))
	}
	return NewMapValue()
}

func builtinSet(i *Interpreter, args []Value) Value {
	if len(args) != 0 {
		return newError(cerrors.TypeError, nil, "Set() takes 0 arguments but %d given", len(args))
	}
	return NewSetValue()
}
