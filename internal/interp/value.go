// Package interp implements Culebra's tree-walking evaluator: the dynamic
// Value representation, the lexically-scoped Environment, and the
// Interpreter's statement/expression dispatch.
package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cnexans/culebra/internal/ast"
	"github.com/cnexans/culebra/internal/cerrors"
)

// Value represents a runtime Culebra value. All dynamic values in the
// interpreter implement this interface.
type Value interface {
	Type() string
	String() string
}

// IntegerValue is a 64-bit signed integer.
type IntegerValue struct{ Value int64 }

func (v *IntegerValue) Type() string   { return "integer" }
func (v *IntegerValue) String() string { return strconv.FormatInt(v.Value, 10) }

// FloatValue is a 64-bit binary float.
type FloatValue struct{ Value float64 }

func (v *FloatValue) Type() string   { return "float" }
func (v *FloatValue) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// StringValue is an immutable UTF-8 byte sequence.
type StringValue struct{ Value string }

func (v *StringValue) Type() string   { return "string" }
func (v *StringValue) String() string { return v.Value }

// BooleanValue is a `true`/`false` value.
type BooleanValue struct{ Value bool }

func (v *BooleanValue) Type() string { return "boolean" }
func (v *BooleanValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// NoneValue is the absent-value result of a function with no explicit
// return. It has no literal form in surface syntax.
type NoneValue struct{}

func (v *NoneValue) Type() string   { return "none" }
func (v *NoneValue) String() string { return "none" }

var none = &NoneValue{}

// ArrayValue is an ordered, growable, mutable sequence of Values. It is
// always handled via pointer so assignment copies the reference, not the
// contents, matching the mutation semantics `push`/`pop`/`sort` rely on.
type ArrayValue struct{ Elements []Value }

func (v *ArrayValue) Type() string { return "array" }
func (v *ArrayValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = reprString(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TupleValue is an immutable ordered sequence with at least 2 elements.
type TupleValue struct{ Elements []Value }

func (v *TupleValue) Type() string { return "tuple" }
func (v *TupleValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, e := range v.Elements {
		parts[i] = reprString(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MapValue maps hashable Values to Values. Insertion order is tracked only
// for display; equality ignores it.
type MapValue struct {
	keys  []Value
	vals  []Value
	index map[string]int
}

func NewMapValue() *MapValue {
	return &MapValue{index: make(map[string]int)}
}

func (v *MapValue) Type() string { return "map" }
func (v *MapValue) String() string {
	parts := make([]string, len(v.keys))
	for i := range v.keys {
		parts[i] = reprString(v.keys[i]) + ": " + reprString(v.vals[i])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (v *MapValue) Len() int { return len(v.keys) }

func (v *MapValue) Get(key Value) (Value, bool, error) {
	h, err := hashValue(key)
	if err != nil {
		return nil, false, err
	}
	idx, ok := v.index[h]
	if !ok {
		return nil, false, nil
	}
	return v.vals[idx], true, nil
}

func (v *MapValue) Set(key, val Value) error {
	h, err := hashValue(key)
	if err != nil {
		return err
	}
	if idx, ok := v.index[h]; ok {
		v.vals[idx] = val
		return nil
	}
	v.index[h] = len(v.keys)
	v.keys = append(v.keys, key)
	v.vals = append(v.vals, val)
	return nil
}

func (v *MapValue) Remove(key Value) (bool, error) {
	h, err := hashValue(key)
	if err != nil {
		return false, err
	}
	idx, ok := v.index[h]
	if !ok {
		return false, nil
	}
	v.keys = append(v.keys[:idx], v.keys[idx+1:]...)
	v.vals = append(v.vals[:idx], v.vals[idx+1:]...)
	delete(v.index, h)
	for k, i := range v.index {
		if i > idx {
			v.index[k] = i - 1
		}
	}
	return true, nil
}

func (v *MapValue) Range(f func(k, val Value)) {
	for i := range v.keys {
		f(v.keys[i], v.vals[i])
	}
}

// SetValue is a collection of unique hashable Values.
type SetValue struct {
	elems []Value
	index map[string]int
}

func NewSetValue() *SetValue {
	return &SetValue{index: make(map[string]int)}
}

func (v *SetValue) Type() string { return "set" }
func (v *SetValue) String() string {
	parts := make([]string, len(v.elems))
	for i, e := range v.elems {
		parts[i] = reprString(e)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (v *SetValue) Len() int { return len(v.elems) }

func (v *SetValue) Has(val Value) (bool, error) {
	h, err := hashValue(val)
	if err != nil {
		return false, err
	}
	_, ok := v.index[h]
	return ok, nil
}

func (v *SetValue) Add(val Value) error {
	h, err := hashValue(val)
	if err != nil {
		return err
	}
	if _, ok := v.index[h]; ok {
		return nil
	}
	v.index[h] = len(v.elems)
	v.elems = append(v.elems, val)
	return nil
}

func (v *SetValue) Remove(val Value) (bool, error) {
	h, err := hashValue(val)
	if err != nil {
		return false, err
	}
	idx, ok := v.index[h]
	if !ok {
		return false, nil
	}
	v.elems = append(v.elems[:idx], v.elems[idx+1:]...)
	delete(v.index, h)
	for k, i := range v.index {
		if i > idx {
			v.index[k] = i - 1
		}
	}
	return true, nil
}

// FunctionValue is a user-defined function: its parameter list, body, and
// the lexical environment captured at `def` time.
type FunctionValue struct {
	Name   string
	Params []string
	Body   *ast.BlockStatement
	Env    *Environment
}

func (v *FunctionValue) Type() string   { return "function" }
func (v *FunctionValue) String() string { return fmt.Sprintf("<function %s>", v.Name) }

// BuiltinFunc is the native handler signature for a Builtin value.
type BuiltinFunc func(i *Interpreter, args []Value) Value

// BuiltinValue is an opaque native-backed callable.
type BuiltinValue struct {
	Name string
	Fn   BuiltinFunc
}

func (v *BuiltinValue) Type() string   { return "builtin" }
func (v *BuiltinValue) String() string { return fmt.Sprintf("<builtin %s>", v.Name) }

// ErrorValue is a runtime diagnostic threaded through Eval as an ordinary
// return value rather than via Go's error return, so it propagates through
// the same dispatch path as every other Value and callers check isError
// at each step instead of unwrapping a separate error channel.
type ErrorValue struct {
	Err *cerrors.CulebraError
}

func (v *ErrorValue) Type() string   { return "error" }
func (v *ErrorValue) String() string { return v.Err.Error() }

func isError(v Value) bool {
	_, ok := v.(*ErrorValue)
	return ok
}

func newError(kind cerrors.Kind, pos ast.Node, format string, args ...interface{}) *ErrorValue {
	p := cerrors.Position{}
	if pos != nil {
		lp := pos.Pos()
		p = cerrors.Position{Line: lp.Line, Column: lp.Column}
	}
	return &ErrorValue{Err: cerrors.New(kind, p, format, args...)}
}

// reprString renders a value the way it appears nested inside another
// collection's String(): strings get quoted, everything else uses its
// own String().
func reprString(v Value) string {
	if s, ok := v.(*StringValue); ok {
		return strconv.Quote(s.Value)
	}
	return v.String()
}

// truthy reports whether v is considered true in a boolean context:
// nonzero numbers, nonempty strings/collections, and true itself.
func truthy(v Value) bool {
	switch val := v.(type) {
	case *BooleanValue:
		return val.Value
	case *IntegerValue:
		return val.Value != 0
	case *FloatValue:
		return val.Value != 0
	case *StringValue:
		return val.Value != ""
	case *NoneValue:
		return false
	case *ArrayValue:
		return len(val.Elements) > 0
	case *TupleValue:
		return len(val.Elements) > 0
	case *MapValue:
		return val.Len() > 0
	case *SetValue:
		return val.Len() > 0
	default:
		return true
	}
}

// hashValue computes a canonical hash key for a hashable Value. Integer
// and Float normalize to the same numeric hash so map-key lookup agrees
// with == equality's numeric promotion.
func hashValue(v Value) (string, error) {
	switch val := v.(type) {
	case *IntegerValue:
		return "n:" + strconv.FormatFloat(float64(val.Value), 'g', -1, 64), nil
	case *FloatValue:
		return "n:" + strconv.FormatFloat(val.Value, 'g', -1, 64), nil
	case *BooleanValue:
		if val.Value {
			return "b:1", nil
		}
		return "b:0", nil
	case *StringValue:
		return "s:" + val.Value, nil
	case *TupleValue:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			h, err := hashValue(e)
			if err != nil {
				return "", err
			}
			parts[i] = h
		}
		return "t:(" + strings.Join(parts, "|") + ")", nil
	default:
		return "", fmt.Errorf("unhashable type: %s", v.Type())
	}
}

// valuesEqual implements structural equality, comparing collections
// element-by-element rather than by identity.
func valuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case *IntegerValue:
		switch bv := b.(type) {
		case *IntegerValue:
			return av.Value == bv.Value
		case *FloatValue:
			return float64(av.Value) == bv.Value
		}
		return false
	case *FloatValue:
		switch bv := b.(type) {
		case *IntegerValue:
			return av.Value == float64(bv.Value)
		case *FloatValue:
			return av.Value == bv.Value
		}
		return false
	case *BooleanValue:
		bv, ok := b.(*BooleanValue)
		return ok && av.Value == bv.Value
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Value == bv.Value
	case *NoneValue:
		_, ok := b.(*NoneValue)
		return ok
	case *ArrayValue:
		bv, ok := b.(*ArrayValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !valuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *SetValue:
		bv, ok := b.(*SetValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, e := range av.elems {
			has, _ := bv.Has(e)
			if !has {
				return false
			}
		}
		return true
	case *MapValue:
		bv, ok := b.(*MapValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for i, k := range av.keys {
			bval, found, _ := bv.Get(k)
			if !found || !valuesEqual(av.vals[i], bval) {
				return false
			}
		}
		return true
	case *FunctionValue:
		bv, ok := b.(*FunctionValue)
		return ok && av == bv
	case *BuiltinValue:
		bv, ok := b.(*BuiltinValue)
		return ok && av.Name == bv.Name
	default:
		return false
	}
}

// sortValues sorts an array's elements ascending. Elements must be all
// numeric or all strings; mixing kinds is a comparison error.
func sortValues(elems []Value) *ErrorValue {
	var errv *ErrorValue
	sort.SliceStable(elems, func(i, j int) bool {
		if errv != nil {
			return false
		}
		less, err := lessValues(elems[i], elems[j])
		if err != nil {
			errv = err
		}
		return less
	})
	return errv
}

func lessValues(a, b Value) (bool, *ErrorValue) {
	af, aok := numericOf(a)
	bf, bok := numericOf(b)
	if aok && bok {
		return af < bf, nil
	}
	as, aok := a.(*StringValue)
	bs, bok := b.(*StringValue)
	if aok && bok {
		return as.Value < bs.Value, nil
	}
	return false, newError(cerrors.TypeError, nil, "cannot compare %s and %s", a.Type(), b.Type())
}

func numericOf(v Value) (float64, bool) {
	switch val := v.(type) {
	case *IntegerValue:
		return float64(val.Value), true
	case *FloatValue:
		return val.Value, true
	default:
		return 0, false
	}
}
