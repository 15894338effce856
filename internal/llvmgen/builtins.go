package llvmgen

import (
	"fmt"

	"github.com/cnexans/culebra/internal/ast"
)

// genBuiltinCall lowers a call to one of the built-in functions directly
// onto the runtime ABI declared in emitter.go, short-circuiting genCall's
// generic function-call path. handled is false for any name that is not a
// recognized built-in, letting the caller fall through to a regular
// direct call.
func (fg *funcGen) genBuiltinCall(name string, argExprs []ast.Expression) (string, IRType, bool, error) {
	switch name {
	case "print":
		reg, t, err := fg.genPrint(argExprs)
		return reg, t, true, err
	case "len":
		reg, t, err := fg.genLen(argExprs)
		return reg, t, true, err
	case "chr":
		reg, t, err := fg.genOneArgCall(argExprs, TInt, "@culebra_chr", TString)
		return reg, t, true, err
	case "ord":
		reg, t, err := fg.genOneArgCall(argExprs, TString, "@culebra_ord", TInt)
		return reg, t, true, err
	case "int":
		reg, t, err := fg.genToInt(argExprs)
		return reg, t, true, err
	case "float":
		reg, t, err := fg.genToFloat(argExprs)
		return reg, t, true, err
	case "str":
		reg, t, err := fg.genToStr(argExprs)
		return reg, t, true, err
	case "abs":
		reg, t, err := fg.genAbs(argExprs)
		return reg, t, true, err
	case "input":
		reg, t, err := fg.genInput(argExprs)
		return reg, t, true, err
	default:
		return "", TVoid, false, nil
	}
}

func (fg *funcGen) requireArgCount(name string, args []ast.Expression, n int) error {
	if len(args) != n {
		return fmt.Errorf("AOT backend: %s() takes %d argument(s) but %d given", name, n, len(args))
	}
	return nil
}

func (fg *funcGen) genPrint(argExprs []ast.Expression) (string, IRType, error) {
	if len(argExprs) == 0 {
		fg.emit("  call void (i32, ...) @culebra_print_multi(i32 0)\n")
		return "", TVoid, nil
	}
	if len(argExprs) == 1 {
		val, t, err := fg.genExpr(argExprs[0])
		if err != nil {
			return "", TVoid, err
		}
		switch t {
		case TInt:
			fg.emit("  call void @culebra_print_int(i64 %s)\n", val)
		case TFloat:
			fg.emit("  call void @culebra_print_float(double %s)\n", val)
		case TBool:
			fg.emit("  call void @culebra_print_bool(i1 %s)\n", val)
		case TString:
			fg.emit("  call void @culebra_print_string(i8* %s)\n", val)
		default:
			return "", TVoid, fmt.Errorf("AOT backend: print() does not support %s", t)
		}
		return "", TVoid, nil
	}

	strs := make([]string, len(argExprs))
	for i, a := range argExprs {
		val, t, err := fg.genExpr(a)
		if err != nil {
			return "", TVoid, err
		}
		strs[i] = fg.stringify(val, t)
	}
	callArgs := fmt.Sprintf("i32 %d", len(strs))
	for _, s := range strs {
		callArgs += fmt.Sprintf(", i8* %s", s)
	}
	fg.emit("  call void (i32, ...) @culebra_print_multi(%s)\n", callArgs)
	return "", TVoid, nil
}

// stringify converts val of static type t to an i8* via the matching
// runtime *_to_str ABI function, leaving strings untouched.
func (fg *funcGen) stringify(val string, t IRType) string {
	switch t {
	case TString:
		return val
	case TInt:
		reg := fg.newTemp()
		fg.emit("  %s = call i8* @culebra_int_to_str(i64 %s)\n", reg, val)
		return reg
	case TFloat:
		reg := fg.newTemp()
		fg.emit("  %s = call i8* @culebra_float_to_str(double %s)\n", reg, val)
		return reg
	case TBool:
		reg := fg.newTemp()
		fg.emit("  %s = call i8* @culebra_bool_to_str(i1 %s)\n", reg, val)
		return reg
	default:
		return val
	}
}

func (fg *funcGen) genLen(argExprs []ast.Expression) (string, IRType, error) {
	if err := fg.requireArgCount("len", argExprs, 1); err != nil {
		return "", TVoid, err
	}
	val, t, err := fg.genExpr(argExprs[0])
	if err != nil {
		return "", TVoid, err
	}
	result := fg.newTemp()
	switch t {
	case TString:
		fg.emit("  %s = call i64 @culebra_len(i8* %s)\n", result, val)
	case TArray:
		fg.emit("  %s = call i64 @culebra_len_array(%%array* %s)\n", result, val)
	default:
		return "", TVoid, fmt.Errorf("AOT backend: len() does not support %s", t)
	}
	return result, TInt, nil
}

// genOneArgCall lowers a single-argument built-in with a fixed expected
// operand type straight onto its runtime ABI counterpart.
func (fg *funcGen) genOneArgCall(argExprs []ast.Expression, want IRType, symbol string, ret IRType) (string, IRType, error) {
	if len(argExprs) != 1 {
		return "", TVoid, fmt.Errorf("AOT backend: %s() takes 1 argument but %d given", symbol, len(argExprs))
	}
	val, t, err := fg.genExpr(argExprs[0])
	if err != nil {
		return "", TVoid, err
	}
	if t != want {
		return "", TVoid, fmt.Errorf("AOT backend: expected %s argument, got %s", want, t)
	}
	result := fg.newTemp()
	fg.emit("  %s = call %s %s(%s %s)\n", result, ret.LLVM(), symbol, want.LLVM(), val)
	return result, ret, nil
}

func (fg *funcGen) genToInt(argExprs []ast.Expression) (string, IRType, error) {
	if err := fg.requireArgCount("int", argExprs, 1); err != nil {
		return "", TVoid, err
	}
	val, t, err := fg.genExpr(argExprs[0])
	if err != nil {
		return "", TVoid, err
	}
	switch t {
	case TInt:
		return val, TInt, nil
	case TFloat:
		result := fg.newTemp()
		fg.emit("  %s = fptosi double %s to i64\n", result, val)
		return result, TInt, nil
	default:
		return "", TVoid, fmt.Errorf("AOT backend: int() of a %s requires a runtime string parser not exposed by the ABI", t)
	}
}

func (fg *funcGen) genToFloat(argExprs []ast.Expression) (string, IRType, error) {
	if err := fg.requireArgCount("float", argExprs, 1); err != nil {
		return "", TVoid, err
	}
	val, t, err := fg.genExpr(argExprs[0])
	if err != nil {
		return "", TVoid, err
	}
	switch t {
	case TFloat:
		return val, TFloat, nil
	case TInt:
		result := fg.newTemp()
		fg.emit("  %s = sitofp i64 %s to double\n", result, val)
		return result, TFloat, nil
	default:
		return "", TVoid, fmt.Errorf("AOT backend: float() of a %s requires a runtime string parser not exposed by the ABI", t)
	}
}

func (fg *funcGen) genToStr(argExprs []ast.Expression) (string, IRType, error) {
	if err := fg.requireArgCount("str", argExprs, 1); err != nil {
		return "", TVoid, err
	}
	val, t, err := fg.genExpr(argExprs[0])
	if err != nil {
		return "", TVoid, err
	}
	return fg.stringify(val, t), TString, nil
}

// genAbs lowers abs() via a select on the operand's own sign, since the
// runtime ABI has no culebra_abs_* entry point.
func (fg *funcGen) genAbs(argExprs []ast.Expression) (string, IRType, error) {
	if err := fg.requireArgCount("abs", argExprs, 1); err != nil {
		return "", TVoid, err
	}
	val, t, err := fg.genExpr(argExprs[0])
	if err != nil {
		return "", TVoid, err
	}
	switch t {
	case TInt:
		neg := fg.newTemp()
		fg.emit("  %s = sub i64 0, %s\n", neg, val)
		cmp := fg.newTemp()
		fg.emit("  %s = icmp slt i64 %s, 0\n", cmp, val)
		result := fg.newTemp()
		fg.emit("  %s = select i1 %s, i64 %s, i64 %s\n", result, cmp, neg, val)
		return result, TInt, nil
	case TFloat:
		neg := fg.newTemp()
		fg.emit("  %s = fneg double %s\n", neg, val)
		cmp := fg.newTemp()
		fg.emit("  %s = fcmp olt double %s, 0.0\n", cmp, val)
		result := fg.newTemp()
		fg.emit("  %s = select i1 %s, double %s, double %s\n", result, cmp, neg, val)
		return result, TFloat, nil
	default:
		return "", TVoid, fmt.Errorf("AOT backend: abs() does not support %s", t)
	}
}

func (fg *funcGen) genInput(argExprs []ast.Expression) (string, IRType, error) {
	if len(argExprs) > 1 {
		return "", TVoid, fmt.Errorf("AOT backend: input() takes 0 or 1 arguments but %d given", len(argExprs))
	}
	prompt := "null"
	if len(argExprs) == 1 {
		val, t, err := fg.genExpr(argExprs[0])
		if err != nil {
			return "", TVoid, err
		}
		if t != TString {
			return "", TVoid, fmt.Errorf("AOT backend: input() prompt must be a string")
		}
		prompt = val
	}
	result := fg.newTemp()
	fg.emit("  %s = call i8* @culebra_input(i8* %s)\n", result, prompt)
	return result, TString, nil
}
