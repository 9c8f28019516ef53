package hulklang

import (
	"testing"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Expressions, 1)
	return prog.Expressions[0]
}

func TestParse_LetInSingleBinding(t *testing.T) {
	e := parseExpr(t, "let x = 1 in x + 2;")
	letIn, ok := e.(*ast.LetIn)
	require.True(t, ok)
	assert.Equal(t, "x", letIn.Name)
	assert.Equal(t, "", letIn.Annotation)
	_, ok = letIn.Value.(*ast.NumberLit)
	require.True(t, ok)
	_, ok = letIn.Body.(*ast.BinaryOp)
	assert.True(t, ok)
}

func TestParse_LetInMultiBindingDesugarsRightAssociative(t *testing.T) {
	e := parseExpr(t, "let x = 1, y = 2 in x + y;")
	outer, ok := e.(*ast.LetIn)
	require.True(t, ok)
	assert.Equal(t, "x", outer.Name)

	inner, ok := outer.Body.(*ast.LetIn)
	require.True(t, ok, "second binding should desugar into a nested LetIn")
	assert.Equal(t, "y", inner.Name)

	_, ok = inner.Body.(*ast.BinaryOp)
	assert.True(t, ok)
}

func TestParse_LetWithAnnotation(t *testing.T) {
	e := parseExpr(t, "let x: Number = 1 in x;")
	letIn := e.(*ast.LetIn)
	assert.Equal(t, "Number", letIn.Annotation)
}

func TestParse_IfElifElseDesugarsNested(t *testing.T) {
	e := parseExpr(t, "if (a) 1 elif (b) 2 else 3;")
	outer, ok := e.(*ast.IfElse)
	require.True(t, ok)
	_, ok = outer.Cond.(*ast.Variable)
	require.True(t, ok)

	inner, ok := outer.Else.(*ast.IfElse)
	require.True(t, ok, "elif should desugar into a nested IfElse in the outer Else slot")
	innerCond := inner.Cond.(*ast.Variable)
	assert.Equal(t, "b", innerCond.Name)

	_, ok = inner.Else.(*ast.NumberLit)
	assert.True(t, ok)
}

func TestParse_WhileLoop(t *testing.T) {
	e := parseExpr(t, "while (x < 10) x := x + 1;")
	w, ok := e.(*ast.While)
	require.True(t, ok)
	_, ok = w.Cond.(*ast.BinaryOp)
	assert.True(t, ok)
	_, ok = w.Body.(*ast.Assignment)
	assert.True(t, ok)
}

func TestParse_ForLoop(t *testing.T) {
	e := parseExpr(t, "for (x in lst) x;")
	f, ok := e.(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "x", f.Var)
	iterable, ok := f.Iterable.(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, "lst", iterable.Name)
}

func TestParse_StringLiteralUnescapesQuote(t *testing.T) {
	e := parseExpr(t, `"say \"hi\"";`)
	lit, ok := e.(*ast.StringLit)
	require.True(t, ok)
	assert.Equal(t, `say "hi"`, lit.Value)
}

func TestParse_FunctionDefArrowForm(t *testing.T) {
	prog, err := Parse("function add(a: Number, b: Number): Number => a + b;")
	require.NoError(t, err)
	require.Len(t, prog.Definitions, 1)
	fn, ok := prog.Definitions[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "Number", fn.Params[0].Annotation)
	assert.Equal(t, "Number", fn.ReturnAnnotation)
	_, ok = fn.Body.(*ast.BinaryOp)
	assert.True(t, ok)
}

func TestParse_TypeDefWithInheritanceAndMembers(t *testing.T) {
	src := `type Dog(name: String) inherits Animal(name) {
		sound: String = "woof";
		speak(): String => self.sound;
	}`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Definitions, 1)
	td, ok := prog.Definitions[0].(*ast.TypeDef)
	require.True(t, ok)
	assert.Equal(t, "Dog", td.Name)
	assert.Equal(t, "Animal", td.ParentName)
	require.Len(t, td.ConstructorParams, 1)
	assert.Equal(t, "name", td.ConstructorParams[0].Name)
	require.Len(t, td.Fields, 1)
	assert.Equal(t, "sound", td.Fields[0].Name)
	require.Len(t, td.Methods, 1)
	assert.Equal(t, "speak", td.Methods[0].Name)
}

func TestParse_ListLiteralAndIndexing(t *testing.T) {
	e := parseExpr(t, "[1, 2, 3][0];")
	idx, ok := e.(*ast.Index)
	require.True(t, ok)
	list, ok := idx.List.(*ast.ListLit)
	require.True(t, ok)
	assert.Len(t, list.Elements, 3)
}

func TestParse_NewAndMethodCall(t *testing.T) {
	e := parseExpr(t, "new Dog(\"Rex\").speak();")
	call, ok := e.(*ast.FuncMemberAccess)
	require.True(t, ok)
	assert.Equal(t, "speak", call.Method)
	n, ok := call.Receiver.(*ast.New)
	require.True(t, ok)
	assert.Equal(t, "Dog", n.TypeName)
	require.Len(t, n.Args, 1)
}

func TestParse_BlockWithReturnStatement(t *testing.T) {
	e := parseExpr(t, "{ let x = 1 in x; return x; };")
	block, ok := e.(*ast.Block)
	require.True(t, ok)
	require.Len(t, block.Exprs, 2)
	_, ok = block.Exprs[1].(*ast.Return)
	assert.True(t, ok)
}

func TestParse_ConcatOperators(t *testing.T) {
	e := parseExpr(t, `"a" @ "b" @@ "c";`)
	outer, ok := e.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "@@", outer.Op)
	inner, ok := outer.Left.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "@", inner.Op)
}

func TestParse_ProtocolDefinitionIsParsed(t *testing.T) {
	prog, err := Parse("protocol Hashable extends Comparable;")
	require.NoError(t, err)
	require.Len(t, prog.Definitions, 1)
	pd, ok := prog.Definitions[0].(*ast.ProtocolDef)
	require.True(t, ok)
	assert.Equal(t, "Hashable", pd.Name)
	assert.Equal(t, "Comparable", pd.Extends)
}
