package codegen

import (
	"strings"
	"testing"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/sema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_EmitsRuntimeDeclarationsAndListType(t *testing.T) {
	prog := &ast.Program{Expressions: []ast.Expr{&ast.NumberLit{Value: 1}}}
	a := sema.NewAnalyzer()
	out, bag := a.Analyze(prog)
	require.False(t, bag.HasErrors())

	g := NewGenerator(a.Types())
	mod, err := g.Generate(out)
	require.NoError(t, err)
	assert.Contains(t, mod, "declare i8* @malloc(i64)")
	assert.Contains(t, mod, "%list_type = type { i8*, i64 }")
	assert.Contains(t, mod, "define i32 @main()")
}

func TestGenerate_TypeProducesStructVtableAndConstructor(t *testing.T) {
	typeA := &ast.TypeDef{
		Name:              "A",
		ConstructorParams: []ast.Param{{Name: "x", Annotation: "Number"}},
		Fields: []ast.FieldDef{
			{Name: "x", Default: &ast.Variable{Name: "x"}},
		},
		Methods: []ast.MethodDef{
			{
				Name:             "getX",
				ReturnAnnotation: "Number",
				Body:             &ast.DataMemberAccess{Receiver: &ast.Variable{Name: "self"}, Member: "x"},
			},
		},
	}
	prog := &ast.Program{
		Definitions: []ast.Definition{typeA},
		Expressions: []ast.Expr{
			&ast.FuncMemberAccess{
				Receiver: &ast.New{TypeName: "A", Args: []ast.Expr{&ast.NumberLit{Value: 5}}},
				Method:   "getX",
			},
		},
	}

	a := sema.NewAnalyzer()
	out, bag := a.Analyze(prog)
	require.False(t, bag.HasErrors(), "%v", bag.Errors())

	g := NewGenerator(a.Types())
	mod, err := g.Generate(out)
	require.NoError(t, err)

	assert.Contains(t, mod, "%A_type = type { %A_vtable_type*, double }")
	assert.Contains(t, mod, "%A_vtable_type = type { i8* }")
	assert.Contains(t, mod, "@A_vtable = global %A_vtable_type")
	assert.Contains(t, mod, "define %A_type* @A_new(double %arg.x)")
	assert.Contains(t, mod, "define double @A_method_getX(i8* %arg.self)")
}

func TestGenerate_InheritanceCopiesParentFieldsAndOverridesVtableSlot(t *testing.T) {
	typeP := &ast.TypeDef{
		Name:              "P",
		ConstructorParams: []ast.Param{{Name: "x", Annotation: "Number"}},
		Fields:            []ast.FieldDef{{Name: "x", Default: &ast.Variable{Name: "x"}}},
		Methods: []ast.MethodDef{
			{Name: "describe", ReturnAnnotation: "String", Body: &ast.StringLit{Value: "p"}},
		},
	}
	typeC := &ast.TypeDef{
		Name:              "C",
		ParentName:        "P",
		ConstructorParams: []ast.Param{{Name: "x", Annotation: "Number"}},
		ParentArgs:        []ast.Expr{&ast.Variable{Name: "x"}},
		Methods: []ast.MethodDef{
			{Name: "describe", ReturnAnnotation: "String", Body: &ast.StringLit{Value: "c"}},
		},
	}
	prog := &ast.Program{Definitions: []ast.Definition{typeP, typeC}}

	a := sema.NewAnalyzer()
	out, bag := a.Analyze(prog)
	require.False(t, bag.HasErrors(), "%v", bag.Errors())

	gen := NewGenerator(a.Types())
	mod, err := gen.Generate(out)
	require.NoError(t, err)

	assert.Contains(t, mod, "%C_type = type { %C_vtable_type*, double }")
	assert.True(t, strings.Contains(mod, "@C_method_describe"))
	assert.Contains(t, mod, "call %P_type* @P_new(")
}
