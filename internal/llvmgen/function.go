package llvmgen

import (
	"bytes"
	"fmt"

	"github.com/cnexans/culebra/internal/ast"
)

// funcGen carries the per-function codegen state: the growing instruction
// buffer, the inferred type of every local (including parameters), and
// monotonic counters for SSA value and basic-block names.
type funcGen struct {
	e    *Emitter
	name string

	buf *bytes.Buffer

	env     *typeEnv
	params  []string
	retType IRType

	tmp   int
	label int

	allocas map[string]string // var name -> alloca register

	// terminated is true once the current basic block has received a
	// terminator instruction (ret/br). LLVM IR allows exactly one
	// terminator per block, so every place that would otherwise emit a
	// second one (a return followed by a structured-control-flow branch,
	// or the function's synthetic trailing ret) must check this first.
	terminated bool
}

func newFuncGen(e *Emitter, name string, params []string, env *typeEnv, retType IRType) *funcGen {
	return &funcGen{
		e:       e,
		name:    name,
		buf:     &bytes.Buffer{},
		env:     env,
		params:  params,
		retType: retType,
		allocas: make(map[string]string),
	}
}

func (fg *funcGen) newTemp() string {
	fg.tmp++
	return fmt.Sprintf("%%t%d", fg.tmp)
}

func (fg *funcGen) newLabel(prefix string) string {
	fg.label++
	return fmt.Sprintf("%s%d", prefix, fg.label)
}

func (fg *funcGen) emit(format string, args ...interface{}) {
	fmt.Fprintf(fg.buf, format, args...)
}

// startBlock emits a basic-block label and opens it for instructions.
func (fg *funcGen) startBlock(name string) {
	fg.emit("%s:\n", name)
	fg.terminated = false
}

// jump emits an unconditional branch to target unless the current block is
// already terminated (e.g. by a `ret` from a `return` statement).
func (fg *funcGen) jump(target string) {
	if fg.terminated {
		return
	}
	fg.emit("  br label %%%s\n", target)
	fg.terminated = true
}

// genFunction lowers a single user-defined function to `define @name(...)`:
// every parameter and every assigned name gets an entry-block alloca, with
// reads/writes going through load/store for later mem2reg promotion.
func (fg *funcGen) genFunction(fn *ast.FunctionDef) error {
	paramList := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		t := fg.env.vars[p]
		paramList[i] = fmt.Sprintf("%s %%arg.%s", t.LLVM(), p)
	}
	fg.emit("define %s @%s(%s) {\n", retLLVM(fg.retType), fn.Name, joinArgs(paramList))
	fg.emit("entry:\n")

	fg.declareLocals()
	for _, p := range fn.Params {
		reg := fg.allocas[p]
		t := fg.env.vars[p]
		argVal := fmt.Sprintf("%%arg.%s", p)
		if t == TBool {
			widened := fg.newTemp()
			fg.emit("  %s = zext i1 %s to i8\n", widened, argVal)
			argVal = widened
		}
		fg.emit("  store %s %s, %s* %s\n", t.storage(), argVal, t.storage(), reg)
	}

	if err := fg.genBlock(fn.Body); err != nil {
		return err
	}

	if !fg.terminated {
		if fg.retType == TVoid {
			fg.emit("  ret void\n")
		} else {
			fg.emit("  ret %s %s\n", fg.retType.LLVM(), zeroValue(fg.retType))
		}
		fg.terminated = true
	}
	fg.emit("}\n")
	return nil
}

// genMain lowers the program's top-level statements into `main`, which the
// C runtime's `_start`/`crt0` invokes directly; it always returns i32 0.
func (fg *funcGen) genMain(block *ast.BlockStatement) error {
	fg.emit("define i32 @main() {\n")
	fg.emit("entry:\n")
	fg.declareLocals()
	if err := fg.genBlock(block); err != nil {
		return err
	}
	if !fg.terminated {
		fg.emit("  ret i32 0\n")
		fg.terminated = true
	}
	fg.emit("}\n")
	return nil
}

// declareLocals emits one alloca per name the type inference pass
// discovered, in a stable order so repeated compiles of the same source
// produce byte-identical IR.
func (fg *funcGen) declareLocals() {
	names := sortedKeys(fg.env.vars)
	for _, n := range names {
		t := fg.env.vars[n]
		reg := fmt.Sprintf("%%local.%s", n)
		fg.allocas[n] = reg
		fg.emit("  %s = alloca %s\n", reg, t.storage())
	}
}

func (fg *funcGen) genBlock(block *ast.BlockStatement) error {
	for _, stmt := range block.Statements {
		if fg.terminated {
			break // dead code after return: the block is already closed
		}
		if err := fg.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (fg *funcGen) genStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		_, _, err := fg.genExpr(s.Expression)
		return err
	case *ast.AssignmentStatement:
		return fg.genAssignment(s)
	case *ast.BlockStatement:
		return fg.genBlock(s)
	case *ast.IfStatement:
		return fg.genIf(s)
	case *ast.WhileStatement:
		return fg.genWhile(s)
	case *ast.ForStatement:
		return fg.genFor(s)
	case *ast.ReturnStatement:
		return fg.genReturn(s)
	case *ast.FunctionDef:
		return fmt.Errorf("nested function definitions are not supported by the AOT backend")
	default:
		return fmt.Errorf("AOT backend: unsupported statement %T", stmt)
	}
}

func (fg *funcGen) genAssignment(stmt *ast.AssignmentStatement) error {
	id, ok := stmt.Target.(*ast.Identifier)
	if !ok {
		return fmt.Errorf("AOT backend: only identifier assignment targets are supported")
	}
	val, t, err := fg.genExpr(stmt.Value)
	if err != nil {
		return err
	}
	reg, ok := fg.allocas[id.Value]
	if !ok {
		return fmt.Errorf("AOT backend: assignment to undeclared local %q", id.Value)
	}
	storeT := t
	if storeT == TBool {
		widened := fg.newTemp()
		fg.emit("  %s = zext i1 %s to i8\n", widened, val)
		val = widened
	}
	fg.emit("  store %s %s, %s* %s\n", storeT.storage(), val, storeT.storage(), reg)
	return nil
}

func (fg *funcGen) genReturn(stmt *ast.ReturnStatement) error {
	if stmt.Value == nil {
		fg.emit("  ret void\n")
		fg.terminated = true
		return nil
	}
	val, t, err := fg.genExpr(stmt.Value)
	if err != nil {
		return err
	}
	fg.emit("  ret %s %s\n", t.LLVM(), val)
	fg.terminated = true
	return nil
}

// genIf lowers if/elif/else chains to a cascade of conditional branches.
func (fg *funcGen) genIf(stmt *ast.IfStatement) error {
	end := fg.newLabel("if.end")
	for idx, cond := range stmt.Conditions {
		then := fg.newLabel("if.then")
		next := fg.newLabel("if.next")
		val, _, err := fg.genExpr(cond)
		if err != nil {
			return err
		}
		fg.emit("  br i1 %s, label %%%s, label %%%s\n", val, then, next)
		fg.terminated = true
		fg.startBlock(then)
		if err := fg.genBlock(stmt.Blocks[idx]); err != nil {
			return err
		}
		fg.jump(end)
		fg.startBlock(next)
	}
	if stmt.Else != nil {
		if err := fg.genBlock(stmt.Else); err != nil {
			return err
		}
	}
	fg.jump(end)
	fg.startBlock(end)
	return nil
}

// genWhile lowers a while loop to cond/body/end blocks.
func (fg *funcGen) genWhile(stmt *ast.WhileStatement) error {
	cond := fg.newLabel("while.cond")
	body := fg.newLabel("while.body")
	end := fg.newLabel("while.end")

	fg.jump(cond)
	fg.startBlock(cond)
	val, _, err := fg.genExpr(stmt.Condition)
	if err != nil {
		return err
	}
	fg.emit("  br i1 %s, label %%%s, label %%%s\n", val, body, end)
	fg.terminated = true
	fg.startBlock(body)
	if err := fg.genBlock(stmt.Body); err != nil {
		return err
	}
	fg.jump(cond)
	fg.startBlock(end)
	return nil
}

// genFor lowers a C-style for loop: init runs in the current block, then
// cond/body/step/end blocks follow.
func (fg *funcGen) genFor(stmt *ast.ForStatement) error {
	if stmt.Init != nil {
		if err := fg.genStmt(stmt.Init); err != nil {
			return err
		}
	}

	cond := fg.newLabel("for.cond")
	body := fg.newLabel("for.body")
	step := fg.newLabel("for.step")
	end := fg.newLabel("for.end")

	fg.jump(cond)
	fg.startBlock(cond)
	val, _, err := fg.genExpr(stmt.Condition)
	if err != nil {
		return err
	}
	fg.emit("  br i1 %s, label %%%s, label %%%s\n", val, body, end)
	fg.terminated = true
	fg.startBlock(body)
	if err := fg.genBlock(stmt.Body); err != nil {
		return err
	}
	fg.jump(step)
	fg.startBlock(step)
	if stmt.Step != nil {
		if err := fg.genStmt(stmt.Step); err != nil {
			return err
		}
	}
	fg.jump(cond)
	fg.startBlock(end)
	return nil
}

func retLLVM(t IRType) string {
	return t.LLVM()
}

func zeroValue(t IRType) string {
	switch t {
	case TFloat:
		return "0.0"
	case TBool:
		return "0"
	case TString:
		return "null"
	case TArray:
		return "null"
	default:
		return "0"
	}
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}

func sortedKeys(m map[string]IRType) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// simple insertion sort: these lists are tiny (local count per function)
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
