// Package llvmgen lowers a Culebra AST to textual LLVM IR: a
// flow-insensitive static type pass (infer.go) followed by per-function
// SSA-via-alloca code generation (function.go), written with io.Writer and
// fmt.Fprintf in the style of a textual disassembler rather than a binary
// encoder.
package llvmgen

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cnexans/culebra/internal/ast"
)

// Emitter owns the module-level state shared across every function it
// lowers: the deduplicated string constant pool and a running counter for
// anonymous globals.
type Emitter struct {
	file       string
	strPool    map[string]string // literal text -> global name
	strOrder   []string
	strCounter int
}

// New creates an Emitter for a single compilation unit named file (used
// only for the module's source_filename metadata).
func New(file string) *Emitter {
	return &Emitter{file: file, strPool: make(map[string]string)}
}

// Emit lowers program to a complete LLVM IR module: runtime ABI declares,
// one `define` per user function, and a `main` wrapping top-level
// statements.
func (e *Emitter) Emit(program *ast.Program) (string, error) {
	var fns []*ast.FunctionDef
	var topLevel []ast.Statement
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FunctionDef); ok {
			fns = append(fns, fn)
		} else {
			topLevel = append(topLevel, stmt)
		}
	}

	var body bytes.Buffer
	for _, fn := range fns {
		env, retType, err := inferFunction(fn)
		if err != nil {
			return "", fmt.Errorf("llvmgen: %w", err)
		}
		fg := newFuncGen(e, fn.Name, fn.Params, env, retType)
		if err := fg.genFunction(fn); err != nil {
			return "", fmt.Errorf("llvmgen: %w", err)
		}
		body.Write(fg.buf.Bytes())
		body.WriteString("\n")
	}

	mainEnv := newTypeEnv("main")
	mainBlock := &ast.BlockStatement{Statements: topLevel}
	if err := inferBlock(mainBlock, mainEnv); err != nil {
		return "", fmt.Errorf("llvmgen: %w", err)
	}
	mainGen := newFuncGen(e, "main", nil, mainEnv, TVoid)
	if err := mainGen.genMain(mainBlock); err != nil {
		return "", fmt.Errorf("llvmgen: %w", err)
	}
	body.Write(mainGen.buf.Bytes())

	var out bytes.Buffer
	fmt.Fprintf(&out, "; ModuleID = %q\n", e.file)
	fmt.Fprintf(&out, "source_filename = %q\n\n", e.file)
	out.WriteString(arrayTypeDecl)
	out.WriteString("\n")
	e.writeStringGlobals(&out)
	out.Write(body.Bytes())
	out.WriteString("\n")
	out.WriteString(runtimeDeclares)

	return out.String(), nil
}

const arrayTypeDecl = "%array = type { i64, i8* }\n"

// runtimeDeclares lists the C runtime ABI stubs declared once at module
// scope and called directly by generated code.
const runtimeDeclares = `declare void @culebra_print_int(i64)
declare void @culebra_print_float(double)
declare void @culebra_print_string(i8*)
declare void @culebra_print_bool(i1)
declare void @culebra_print_multi(i32, ...)
declare i8* @culebra_input(i8*)
declare i64 @culebra_len(i8*)
declare i64 @culebra_len_array(%array*)
declare i8* @culebra_chr(i64)
declare i64 @culebra_ord(i8*)
declare i8* @culebra_str_concat(i8*, i8*)
declare i8* @culebra_int_to_str(i64)
declare i8* @culebra_float_to_str(double)
declare i8* @culebra_bool_to_str(i1)
declare %array* @culebra_create_array(i64, i64)
declare i8* @culebra_array_get(%array*, i64)
declare void @culebra_array_set(%array*, i64, i64)
`

// internString returns the global name for s, creating and deduplicating
// its backing constant the first time it is seen; string literals are
// emitted as private global constants.
func (e *Emitter) internString(s string) string {
	if name, ok := e.strPool[s]; ok {
		return name
	}
	name := fmt.Sprintf("@.str.%d", e.strCounter)
	e.strCounter++
	e.strPool[s] = name
	e.strOrder = append(e.strOrder, s)
	return name
}

func (e *Emitter) writeStringGlobals(out *bytes.Buffer) {
	if len(e.strOrder) == 0 {
		return
	}
	names := make([]string, 0, len(e.strOrder))
	for _, s := range e.strOrder {
		names = append(names, e.strPool[s])
	}
	sort.Strings(names)
	byName := make(map[string]string, len(e.strPool))
	for s, n := range e.strPool {
		byName[n] = s
	}
	for _, name := range names {
		s := byName[name]
		data := append([]byte(s), 0)
		fmt.Fprintf(out, "%s = private unnamed_addr constant [%d x i8] c\"%s\"\n", name, len(data), escapeIR(data))
	}
	out.WriteString("\n")
}

func escapeIR(data []byte) string {
	var buf bytes.Buffer
	for _, b := range data {
		if b >= 0x20 && b < 0x7f && b != '"' && b != '\\' {
			buf.WriteByte(b)
		} else {
			fmt.Fprintf(&buf, "\\%02X", b)
		}
	}
	return buf.String()
}
