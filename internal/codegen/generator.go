package codegen

import (
	"fmt"
	"strings"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// Generator assembles one LLVM-IR text module from an annotated, toposorted
// ast.Program (the output of sema.Analyzer.Analyze) and the htypes.Context
// that annotated it. One Generator serves exactly one compilation, mirroring
// sema.Analyzer's one-per-compilation lifetime.
type Generator struct {
	ctx     *htypes.Context
	layouts map[string]*typeLayout

	strConsts []string
	strIndex  map[string]int

	funcs   map[string]*ast.FunctionDef
	globals map[string]varSlot
}

// NewGenerator returns a Generator ready to run Generate against a single
// compilation's annotated program and type context.
func NewGenerator(ctx *htypes.Context) *Generator {
	return &Generator{
		ctx:      ctx,
		strIndex: map[string]int{},
		funcs:    map[string]*ast.FunctionDef{},
		globals:  map[string]varSlot{},
	}
}

func globalConstName(name string) string { return "@const_" + name }

// zeroLiteral is the initial value every global `constant` is declared
// with before @main's entry block overwrites it with the constant
// expression's actual (possibly heap-allocating) value — LLVM global
// initializers must themselves be constant expressions, which malloc
// calls and string concatenation are not.
func zeroLiteral(llvmTy string) string {
	switch llvmTy {
	case "double":
		return "0.000000e+00"
	case "i1":
		return "0"
	default:
		return "null"
	}
}

// internString registers s as a module-level string constant (deduplicating
// repeats) and returns its index, used to name the @.str.N global.
func (g *Generator) internString(s string) int {
	if i, ok := g.strIndex[s]; ok {
		return i
	}
	i := len(g.strConsts)
	g.strConsts = append(g.strConsts, s)
	g.strIndex[s] = i
	return i
}

// Generate emits the full textual LLVM-IR module for prog, per spec §4.6
// and §6: external declarations for the C runtime helpers the emitted code
// calls, a generic list struct, one struct/vtable/constructor/per-method
// function for every user type (parent-before-child, inherited slots first,
// overrides in place), one function per global function, and a @main entry
// evaluating every top-level expression in sequence.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	var typeDefs []*ast.TypeDef
	var constDefs []*ast.ConstantDef
	for _, def := range prog.Definitions {
		switch d := def.(type) {
		case *ast.TypeDef:
			typeDefs = append(typeDefs, d)
		case *ast.FunctionDef:
			g.funcs[d.Name] = d
		case *ast.ConstantDef:
			constDefs = append(constDefs, d)
		}
	}
	g.layouts = buildLayouts(g.ctx, typeDefs)

	var globalDecls strings.Builder
	for _, cd := range constDefs {
		g.globals[cd.Name] = varSlot{Ptr: globalConstName(cd.Name), Typ: cd.Info.Type}
		ty := g.llvmType(cd.Info.Type)
		fmt.Fprintf(&globalDecls, "%s = global %s %s\n", globalConstName(cd.Name), ty, zeroLiteral(ty))
	}

	var typeDecls strings.Builder
	var ctorsAndMethods strings.Builder
	for _, td := range typeDefs {
		layout := g.layouts[td.Name]
		g.emitStructAndVtableType(&typeDecls, layout)
		g.emitVtableGlobal(&typeDecls, layout)
		if err := g.emitConstructor(&ctorsAndMethods, td, layout); err != nil {
			return "", err
		}
		for i := range td.Methods {
			if err := g.emitMethod(&ctorsAndMethods, td, layout, &td.Methods[i]); err != nil {
				return "", err
			}
		}
	}

	var funcDecls strings.Builder
	for _, def := range prog.Definitions {
		fd, ok := def.(*ast.FunctionDef)
		if !ok {
			continue
		}
		if err := g.emitFunction(&funcDecls, fd); err != nil {
			return "", err
		}
	}

	mainBody, err := g.emitMain(constDefs, prog.Expressions)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString(header)
	g.emitStringGlobals(&out)
	out.WriteString(globalDecls.String())
	out.WriteString(typeDecls.String())
	out.WriteString(ctorsAndMethods.String())
	out.WriteString(funcDecls.String())
	out.WriteString(mainBody)
	return out.String(), nil
}

// header declares the C runtime entry points every emitted body may call
// (malloc for every constructor/list allocation, printf for the print
// builtin, sprintf/strcat/strlen/strcmp for string-operator lowering) and
// the generic list struct every iterable value is boxed in: a raw element
// buffer plus a length, per spec §4.6's list-representation note.
const header = `; generated by hulkc — do not edit by hand
declare i32 @printf(i8*, ...)
declare i32 @sprintf(i8*, i8*, ...)
declare i8* @strcat(i8*, i8*)
declare i64 @strlen(i8*)
declare i32 @strcmp(i8*, i8*)
declare i8* @malloc(i64)

%list_type = type { i8*, i64 }

`

func (g *Generator) emitStringGlobals(out *strings.Builder) {
	fmt.Fprintf(out, "@.str.true = private unnamed_addr constant [5 x i8] c\"true\\00\"\n")
	fmt.Fprintf(out, "@.str.false = private unnamed_addr constant [6 x i8] c\"false\\00\"\n")
	fmt.Fprintf(out, "@.str.space = private unnamed_addr constant [2 x i8] c\" \\00\"\n")
	fmt.Fprintf(out, "@.fmt.number = private unnamed_addr constant [4 x i8] c\"%%g\\00\"\n")
	fmt.Fprintf(out, "@.fmt.print = private unnamed_addr constant [4 x i8] c\"%%s\\0A\\00\"\n")
	for i, s := range g.strConsts {
		esc, n := escapeLLVMString(s)
		fmt.Fprintf(out, "@.str.%d = private unnamed_addr constant [%d x i8] c\"%s\\00\"\n", i, n+1, esc)
	}
	out.WriteString("\n")
}

// escapeLLVMString renders s as an LLVM c"..." string body, escaping every
// byte LLVM's IR parser requires as \XX, and returns the declared array's
// element count (not counting the nul LLVM IR string literals don't imply
// automatically, hence every @.str.N global carries its own explicit \00).
func escapeLLVMString(s string) (string, int) {
	var b strings.Builder
	n := 0
	for _, c := range []byte(s) {
		if c >= 0x20 && c < 0x7f && c != '"' && c != '\\' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "\\%02X", c)
		}
		n++
	}
	return b.String(), n
}

func (g *Generator) emitStructAndVtableType(out *strings.Builder, l *typeLayout) {
	fmt.Fprintf(out, "%s = type { %s", structTypeName(l.Name), vtableTypeName(l.Name)+"*")
	for _, f := range l.Fields {
		fmt.Fprintf(out, ", %s", g.llvmType(f.Type))
	}
	out.WriteString(" }\n")

	fmt.Fprintf(out, "%s = type {", vtableTypeName(l.Name))
	for i := range l.Methods {
		if i > 0 {
			out.WriteString(",")
		}
		out.WriteString(" i8*")
	}
	out.WriteString(" }\n")
}

// resolveAnnotation mirrors sema's checker.resolveAnnotation (internal/sema
// package, unexported) without diagnostic reporting: by the time codegen
// runs, sema has already validated every annotation in the program, so
// codegen only needs to repeat the lookup, not the error path.
func (g *Generator) resolveAnnotation(name string) htypes.Type {
	if name == "" {
		return htypes.Object()
	}
	if strings.HasSuffix(name, "*") {
		return htypes.Iterable(g.resolveAnnotation(strings.TrimSuffix(name, "*")))
	}
	switch name {
	case "Number":
		return htypes.Number()
	case "String":
		return htypes.String()
	case "Boolean":
		return htypes.Boolean()
	case "Object":
		return htypes.Object()
	}
	if g.ctx.IsDefined(name) {
		return htypes.User(name)
	}
	return htypes.Object()
}

func (g *Generator) emitVtableGlobal(out *strings.Builder, l *typeLayout) {
	fmt.Fprintf(out, "%s = global %s {", vtableGlobalName(l.Name), vtableTypeName(l.Name))
	for i, m := range l.Methods {
		if i > 0 {
			out.WriteString(",")
		}
		fnType := g.methodFuncType(m)
		fmt.Fprintf(out, " i8* bitcast (%s %s to i8*)", fnType, methodFuncName(m.Owner, m.Name))
	}
	out.WriteString(" }\n")
}
