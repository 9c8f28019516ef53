package sema

import (
	"testing"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errKinds(t *testing.T, a *Analyzer) []string {
	t.Helper()
	var out []string
	for _, e := range a.bag.Errors() {
		out = append(out, e.Kind)
	}
	return out
}

// scenario 3: type A { x = 3; } let a = new A() in { a.x; };
// -> accessing-private-member error.
func TestAnalyze_PrivateMemberAccessIsForbidden(t *testing.T) {
	typeA := &ast.TypeDef{
		Name: "A",
		Fields: []ast.FieldDef{
			{Name: "x", Default: &ast.NumberLit{Value: 3}},
		},
	}
	prog := &ast.Program{
		Definitions: []ast.Definition{typeA},
		Expressions: []ast.Expr{
			&ast.LetIn{
				Name:  "a",
				Value: &ast.New{TypeName: "A"},
				Body: &ast.Block{
					Exprs: []ast.Expr{
						&ast.DataMemberAccess{Receiver: &ast.Variable{Name: "a"}, Member: "x"},
					},
				},
			},
		},
	}

	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	require.True(t, bag.HasErrors())
	assert.Contains(t, errKinds(t, a), string(KindAccessingPrivateMember))
}

// scenario 4: type B inherits A {} type A inherits B {} -> inheritance cycle,
// pass 3/4 skipped.
func TestAnalyze_InheritanceCycleHaltsCompile(t *testing.T) {
	typeB := &ast.TypeDef{Name: "B", ParentName: "A"}
	typeA := &ast.TypeDef{Name: "A", ParentName: "B"}
	prog := &ast.Program{Definitions: []ast.Definition{typeB, typeA}}

	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	require.True(t, bag.HasErrors())
	assert.Contains(t, errKinds(t, a), string(KindInheritanceCycle))
	assert.True(t, a.cycleHalted)
}

// scenario 5: function f(n: Number): Number { if (n == 0) return 1 else
// return n * f(n - 1); } and a call f(5) -> no errors, call site types Number.
func TestAnalyze_RecursiveFunctionTypesCleanly(t *testing.T) {
	fBody := &ast.IfElse{
		Cond: &ast.BinaryOp{Op: "==", Left: &ast.Variable{Name: "n"}, Right: &ast.NumberLit{Value: 0}},
		Then: &ast.Return{Value: &ast.NumberLit{Value: 1}},
		Else: &ast.Return{Value: &ast.BinaryOp{
			Op:   "*",
			Left: &ast.Variable{Name: "n"},
			Right: &ast.Call{
				Callee: "f",
				Args:   []ast.Expr{&ast.BinaryOp{Op: "-", Left: &ast.Variable{Name: "n"}, Right: &ast.NumberLit{Value: 1}}},
			},
		}},
	}
	fDef := &ast.FunctionDef{
		Name:             "f",
		Params:           []ast.Param{{Name: "n", Annotation: "Number"}},
		ReturnAnnotation: "Number",
		Body:             fBody,
	}
	call := &ast.Call{Callee: "f", Args: []ast.Expr{&ast.NumberLit{Value: 5}}}

	prog := &ast.Program{
		Definitions: []ast.Definition{fDef},
		Expressions: []ast.Expr{call},
	}

	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	assert.False(t, bag.HasErrors(), "unexpected errors: %v", errKinds(t, a))
	assert.True(t, call.Info.Resolved)
	assert.Equal(t, "Number", call.Info.Type.String())
}

// scenario 6: type P(x: Number) { x = x; } type C(x: Number) inherits
// P(x + "hi") {} -> "type P expects parameter 0 of type Number, but got String".
func TestAnalyze_ConstructorArgTypeMismatchIsReported(t *testing.T) {
	typeP := &ast.TypeDef{
		Name:              "P",
		ConstructorParams: []ast.Param{{Name: "x", Annotation: "Number"}},
		Fields: []ast.FieldDef{
			{Name: "x", Default: &ast.Variable{Name: "x"}},
		},
	}
	typeC := &ast.TypeDef{
		Name:              "C",
		ConstructorParams: []ast.Param{{Name: "x", Annotation: "Number"}},
		ParentName:        "P",
		ParentArgs: []ast.Expr{
			&ast.BinaryOp{Op: "+", Left: &ast.Variable{Name: "x"}, Right: &ast.StringLit{Value: "hi"}},
		},
	}

	prog := &ast.Program{Definitions: []ast.Definition{typeP, typeC}}

	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	require.True(t, bag.HasErrors())
	assert.Contains(t, errKinds(t, a), string(KindBinOpInvalidOperands))
}

func TestAnalyze_UndeclaredTypeParentIsRejected(t *testing.T) {
	typeA := &ast.TypeDef{Name: "A", ParentName: "Ghost"}
	prog := &ast.Program{Definitions: []ast.Definition{typeA}}

	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	require.True(t, bag.HasErrors())
	assert.Contains(t, errKinds(t, a), string(KindInheritanceInvalidParent))
}

func TestAnalyze_DestructiveAssignmentToConstIsRejected(t *testing.T) {
	// type A { } with a method that does `self := self;` — self is bound as
	// a constant, so reassigning it is rejected.
	typeA := &ast.TypeDef{
		Name: "A",
		Methods: []ast.MethodDef{
			{
				Name: "m",
				Body: &ast.Assignment{
					Target: &ast.Variable{Name: "self"},
					Value:  &ast.Variable{Name: "self"},
				},
			},
		},
	}
	prog := &ast.Program{Definitions: []ast.Definition{typeA}}

	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	require.True(t, bag.HasErrors())
	assert.Contains(t, errKinds(t, a), string(KindInvalidReassignmentTarget))
}

func TestAnalyze_EmptyListWithoutAnnotationIsUnknownType(t *testing.T) {
	prog := &ast.Program{
		Expressions: []ast.Expr{&ast.ListLit{}},
	}
	a := NewAnalyzer()
	_, bag := a.Analyze(prog)
	require.True(t, bag.HasErrors())
	assert.Contains(t, errKinds(t, a), string(KindUnknownListType))
}

func TestAnalyze_TopoSortPutsParentBeforeChild(t *testing.T) {
	typeChild := &ast.TypeDef{Name: "Child", ParentName: "Parent"}
	typeParent := &ast.TypeDef{Name: "Parent"}
	prog := &ast.Program{Definitions: []ast.Definition{typeChild, typeParent}}

	a := NewAnalyzer()
	out, bag := a.Analyze(prog)
	assert.False(t, bag.HasErrors())
	require.Len(t, out.Definitions, 2)
	first := out.Definitions[0].(*ast.TypeDef)
	assert.Equal(t, "Parent", first.Name)
}
