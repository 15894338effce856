package llvmgen

import (
	"fmt"
	"strconv"

	"github.com/cnexans/culebra/internal/ast"
)

// genExpr lowers expr to a sequence of instructions and returns the SSA
// value holding its result plus its static type.
func (fg *funcGen) genExpr(expr ast.Expression) (string, IRType, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return strconv.FormatInt(e.Value, 10), TInt, nil
	case *ast.FloatLiteral:
		return formatFloatConst(e.Value), TFloat, nil
	case *ast.BooleanLiteral:
		if e.Value {
			return "1", TBool, nil
		}
		return "0", TBool, nil
	case *ast.StringLiteral:
		return fg.genStringLiteral(e.Value)
	case *ast.Identifier:
		return fg.genIdentifierLoad(e)
	case *ast.GroupingExpression:
		return fg.genExpr(e.Inner)
	case *ast.UnaryExpression:
		return fg.genUnary(e)
	case *ast.BinaryExpression:
		return fg.genBinary(e)
	case *ast.ArrayLiteral:
		return fg.genArrayLiteral(e)
	case *ast.IndexExpression:
		return fg.genIndex(e)
	case *ast.CallExpression:
		return fg.genCall(e)
	default:
		return "", TVoid, fmt.Errorf("AOT backend: %T is not supported for static compilation", expr)
	}
}

func formatFloatConst(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (fg *funcGen) genStringLiteral(s string) (string, IRType, error) {
	global := fg.e.internString(s)
	length := len(s) + 1
	ptr := fg.newTemp()
	fg.emit("  %s = getelementptr [%d x i8], [%d x i8]* %s, i64 0, i64 0\n", ptr, length, length, global)
	return ptr, TString, nil
}

// genIdentifierLoad loads a local/parameter, narrowing booleans back from
// their i8 storage representation to i1.
func (fg *funcGen) genIdentifierLoad(id *ast.Identifier) (string, IRType, error) {
	reg, ok := fg.allocas[id.Value]
	if !ok {
		return "", TVoid, fmt.Errorf("AOT backend: undeclared name %q", id.Value)
	}
	t := fg.env.vars[id.Value]
	loaded := fg.newTemp()
	fg.emit("  %s = load %s, %s* %s\n", loaded, t.storage(), t.storage(), reg)
	if t == TBool {
		narrowed := fg.newTemp()
		fg.emit("  %s = trunc i8 %s to i1\n", narrowed, loaded)
		return narrowed, TBool, nil
	}
	return loaded, t, nil
}

func (fg *funcGen) genUnary(e *ast.UnaryExpression) (string, IRType, error) {
	val, t, err := fg.genExpr(e.Operand)
	if err != nil {
		return "", TVoid, err
	}
	switch e.Operator {
	case "not":
		result := fg.newTemp()
		fg.emit("  %s = xor i1 %s, true\n", result, val)
		return result, TBool, nil
	case "-":
		result := fg.newTemp()
		if t == TFloat {
			fg.emit("  %s = fneg double %s\n", result, val)
			return result, TFloat, nil
		}
		fg.emit("  %s = sub i64 0, %s\n", result, val)
		return result, TInt, nil
	default:
		return "", TVoid, fmt.Errorf("AOT backend: unknown unary operator %q", e.Operator)
	}
}

func (fg *funcGen) genBinary(e *ast.BinaryExpression) (string, IRType, error) {
	switch e.Operator {
	case "and", "or":
		return fg.genShortCircuit(e)
	}

	lval, lt, err := fg.genExpr(e.Left)
	if err != nil {
		return "", TVoid, err
	}
	rval, rt, err := fg.genExpr(e.Right)
	if err != nil {
		return "", TVoid, err
	}

	switch e.Operator {
	case "==", "!=", "<", "<=", ">", ">=":
		return fg.genComparison(e.Operator, lval, lt, rval, rt)
	case "+":
		if lt == TString && rt == TString {
			result := fg.newTemp()
			fg.emit("  %s = call i8* @culebra_str_concat(i8* %s, i8* %s)\n", result, lval, rval)
			return result, TString, nil
		}
		return fg.genArith("+", lval, lt, rval, rt)
	case "-", "*", "/":
		return fg.genArith(e.Operator, lval, lt, rval, rt)
	default:
		return "", TVoid, fmt.Errorf("AOT backend: unknown binary operator %q", e.Operator)
	}
}

// genShortCircuit lowers and/or to a diamond CFG with a phi merging the
// left operand (when it decides the result) with the right operand's
// value.
func (fg *funcGen) genShortCircuit(e *ast.BinaryExpression) (string, IRType, error) {
	lval, _, err := fg.genExpr(e.Left)
	if err != nil {
		return "", TVoid, err
	}
	rhsLabel := fg.newLabel("sc.rhs")
	mergeLabel := fg.newLabel("sc.merge")
	startLabel := fg.newLabel("sc.start")
	fg.emit("  br label %%%s\n", startLabel)
	fg.emit("%s:\n", startLabel)

	if e.Operator == "and" {
		fg.emit("  br i1 %s, label %%%s, label %%%s\n", lval, rhsLabel, mergeLabel)
	} else {
		fg.emit("  br i1 %s, label %%%s, label %%%s\n", lval, mergeLabel, rhsLabel)
	}

	fg.emit("%s:\n", rhsLabel)
	rval, _, err := fg.genExpr(e.Right)
	if err != nil {
		return "", TVoid, err
	}
	fg.emit("  br label %%%s\n", mergeLabel)

	fg.emit("%s:\n", mergeLabel)
	result := fg.newTemp()
	fg.emit("  %s = phi i1 [ %s, %%%s ], [ %s, %%%s ]\n", result, lval, startLabel, rval, rhsLabel)
	return result, TBool, nil
}

func (fg *funcGen) genComparison(op, lval string, lt IRType, rval string, rt IRType) (string, IRType, error) {
	result := fg.newTemp()
	if lt == TString && rt == TString {
		return "", TVoid, fmt.Errorf("AOT backend: string comparison is not supported")
	}
	if lt == TFloat || rt == TFloat {
		lval = fg.promoteToFloat(lval, lt)
		rval = fg.promoteToFloat(rval, rt)
		fg.emit("  %s = fcmp %s double %s, %s\n", result, floatPred(op), lval, rval)
		return result, TBool, nil
	}
	fg.emit("  %s = icmp %s i64 %s, %s\n", result, intPred(op), lval, rval)
	return result, TBool, nil
}

func floatPred(op string) string {
	switch op {
	case "==":
		return "oeq"
	case "!=":
		return "one"
	case "<":
		return "olt"
	case "<=":
		return "ole"
	case ">":
		return "ogt"
	case ">=":
		return "oge"
	default:
		return "oeq"
	}
}

func intPred(op string) string {
	switch op {
	case "==":
		return "eq"
	case "!=":
		return "ne"
	case "<":
		return "slt"
	case "<=":
		return "sle"
	case ">":
		return "sgt"
	case ">=":
		return "sge"
	default:
		return "eq"
	}
}

// genArith implements mixed-operand promotion: a float peer promotes the
// integer side via sitofp; `/` always promotes both sides.
func (fg *funcGen) genArith(op, lval string, lt IRType, rval string, rt IRType) (string, IRType, error) {
	result := fg.newTemp()
	if op == "/" || lt == TFloat || rt == TFloat {
		lval = fg.promoteToFloat(lval, lt)
		rval = fg.promoteToFloat(rval, rt)
		fg.emit("  %s = %s double %s, %s\n", result, floatOp(op), lval, rval)
		return result, TFloat, nil
	}
	fg.emit("  %s = %s i64 %s, %s\n", result, intOp(op), lval, rval)
	return result, TInt, nil
}

func (fg *funcGen) promoteToFloat(val string, t IRType) string {
	if t == TFloat {
		return val
	}
	converted := fg.newTemp()
	fg.emit("  %s = sitofp i64 %s to double\n", converted, val)
	return converted
}

func floatOp(op string) string {
	switch op {
	case "+":
		return "fadd"
	case "-":
		return "fsub"
	case "*":
		return "fmul"
	case "/":
		return "fdiv"
	default:
		return "fadd"
	}
}

func intOp(op string) string {
	switch op {
	case "+":
		return "add"
	case "-":
		return "sub"
	case "*":
		return "mul"
	case "/":
		return "sdiv"
	default:
		return "add"
	}
}

// genArrayLiteral allocates via culebra_create_array(n, 8), then emits one
// culebra_array_set per element. Elements are monomorphized to i64; a
// float, string, or array element is a compile error.
func (fg *funcGen) genArrayLiteral(lit *ast.ArrayLiteral) (string, IRType, error) {
	n := len(lit.Elements)
	arr := fg.newTemp()
	fg.emit("  %s = call %%array* @culebra_create_array(i64 %d, i64 8)\n", arr, n)
	for idx, elemExpr := range lit.Elements {
		val, t, err := fg.genExpr(elemExpr)
		if err != nil {
			return "", TVoid, err
		}
		if t == TFloat || t == TString || t == TArray {
			return "", TVoid, fmt.Errorf("AOT backend: array elements must be integer-typed")
		}
		fg.emit("  call void @culebra_array_set(%%array* %s, i64 %d, i64 %s)\n", arr, idx, val)
	}
	return arr, TArray, nil
}

func (fg *funcGen) genIndex(e *ast.IndexExpression) (string, IRType, error) {
	base, baseT, err := fg.genExpr(e.Left)
	if err != nil {
		return "", TVoid, err
	}
	idx, _, err := fg.genExpr(e.Index)
	if err != nil {
		return "", TVoid, err
	}
	if baseT != TArray {
		return "", TVoid, fmt.Errorf("AOT backend: indexing is only supported on arrays")
	}
	ptr := fg.newTemp()
	fg.emit("  %s = call i8* @culebra_array_get(%%array* %s, i64 %s)\n", ptr, base, idx)
	slot := fg.newTemp()
	fg.emit("  %s = bitcast i8* %s to i64*\n", slot, ptr)
	loaded := fg.newTemp()
	fg.emit("  %s = load i64, i64* %s\n", loaded, slot)
	return loaded, TInt, nil
}

func (fg *funcGen) genCall(e *ast.CallExpression) (string, IRType, error) {
	ident, ok := e.Callee.(*ast.Identifier)
	if !ok {
		return "", TVoid, fmt.Errorf("AOT backend: only direct calls to named functions/built-ins are supported")
	}
	if reg, t, handled, err := fg.genBuiltinCall(ident.Value, e.Args); handled {
		return reg, t, err
	}
	switch ident.Value {
	case "Map", "Set", "read_file", "read_lines":
		return "", TVoid, fmt.Errorf("AOT backend: %s() has no statically-typed runtime representation", ident.Value)
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		val, t, err := fg.genExpr(a)
		if err != nil {
			return "", TVoid, err
		}
		args[i] = fmt.Sprintf("%s %s", t.LLVM(), val)
	}
	result := fg.newTemp()
	// User function calls are always emitted as returning i64, matching
	// inferCall in infer.go; the callee's own inferred return type is not
	// consulted.
	fg.emit("  %s = call i64 @%s(%s)\n", result, ident.Value, joinArgs(args))
	return result, TInt, nil
}
