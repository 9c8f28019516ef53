package ast

import (
	"testing"

	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/dekarrin/hulkc/internal/htypes"
	"github.com/stretchr/testify/assert"
)

func pos(line, col int) diag.Position { return diag.Position{Line: line, Col: col} }

func span(startLine, startCol, endLine, endCol int) Span {
	return Span{Start: pos(startLine, startCol), End: pos(endLine, endCol)}
}

// nodeKindVisitor records which VisitX method fired, for asserting that
// Accept dispatches to the right one per concrete type.
type nodeKindVisitor struct{}

func (nodeKindVisitor) VisitAssignment(*Assignment) string             { return "Assignment" }
func (nodeKindVisitor) VisitBinaryOp(*BinaryOp) string                 { return "BinaryOp" }
func (nodeKindVisitor) VisitUnaryOp(*UnaryOp) string                   { return "UnaryOp" }
func (nodeKindVisitor) VisitLetIn(*LetIn) string                       { return "LetIn" }
func (nodeKindVisitor) VisitIfElse(*IfElse) string                     { return "IfElse" }
func (nodeKindVisitor) VisitWhile(*While) string                       { return "While" }
func (nodeKindVisitor) VisitFor(*For) string                           { return "For" }
func (nodeKindVisitor) VisitBlock(*Block) string                       { return "Block" }
func (nodeKindVisitor) VisitReturn(*Return) string                     { return "Return" }
func (nodeKindVisitor) VisitNumberLit(*NumberLit) string               { return "NumberLit" }
func (nodeKindVisitor) VisitBooleanLit(*BooleanLit) string             { return "BooleanLit" }
func (nodeKindVisitor) VisitStringLit(*StringLit) string               { return "StringLit" }
func (nodeKindVisitor) VisitListLit(*ListLit) string                   { return "ListLit" }
func (nodeKindVisitor) VisitNew(*New) string                           { return "New" }
func (nodeKindVisitor) VisitCall(*Call) string                         { return "Call" }
func (nodeKindVisitor) VisitDataMemberAccess(*DataMemberAccess) string { return "DataMemberAccess" }
func (nodeKindVisitor) VisitFuncMemberAccess(*FuncMemberAccess) string { return "FuncMemberAccess" }
func (nodeKindVisitor) VisitIndex(*Index) string                       { return "Index" }
func (nodeKindVisitor) VisitVariable(*Variable) string                 { return "Variable" }

func TestAccept_DispatchesToMatchingVariant(t *testing.T) {
	v := nodeKindVisitor{}

	cases := []struct {
		name string
		expr Expr
		want string
	}{
		{"Assignment", &Assignment{}, "Assignment"},
		{"BinaryOp", &BinaryOp{}, "BinaryOp"},
		{"UnaryOp", &UnaryOp{}, "UnaryOp"},
		{"LetIn", &LetIn{}, "LetIn"},
		{"IfElse", &IfElse{}, "IfElse"},
		{"While", &While{}, "While"},
		{"For", &For{}, "For"},
		{"Block", &Block{}, "Block"},
		{"Return", &Return{}, "Return"},
		{"NumberLit", &NumberLit{}, "NumberLit"},
		{"BooleanLit", &BooleanLit{}, "BooleanLit"},
		{"StringLit", &StringLit{}, "StringLit"},
		{"ListLit", &ListLit{}, "ListLit"},
		{"New", &New{}, "New"},
		{"Call", &Call{}, "Call"},
		{"DataMemberAccess", &DataMemberAccess{}, "DataMemberAccess"},
		{"FuncMemberAccess", &FuncMemberAccess{}, "FuncMemberAccess"},
		{"Index", &Index{}, "Index"},
		{"Variable", &Variable{}, "Variable"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Accept[string](c.expr, v)
			assert.Equal(t, c.want, got)
		})
	}
}

type defKindVisitor struct{}

func (defKindVisitor) VisitTypeDef(*TypeDef) string         { return "TypeDef" }
func (defKindVisitor) VisitFunctionDef(*FunctionDef) string { return "FunctionDef" }
func (defKindVisitor) VisitConstantDef(*ConstantDef) string { return "ConstantDef" }
func (defKindVisitor) VisitProtocolDef(*ProtocolDef) string { return "ProtocolDef" }

func TestAcceptDef_DispatchesToMatchingVariant(t *testing.T) {
	v := defKindVisitor{}

	assert.Equal(t, "TypeDef", AcceptDef[string](&TypeDef{}, v))
	assert.Equal(t, "FunctionDef", AcceptDef[string](&FunctionDef{}, v))
	assert.Equal(t, "ConstantDef", AcceptDef[string](&ConstantDef{}, v))
	assert.Equal(t, "ProtocolDef", AcceptDef[string](&ProtocolDef{}, v))
}

func TestLetIn_SpanPropagatesFromConstruction(t *testing.T) {
	n := &LetIn{
		Name:  "x",
		Value: &NumberLit{Value: 5, Span_: span(1, 9, 1, 10)},
		Body:  &Variable{Name: "x", Span_: span(1, 14, 1, 15)},
		Span_: span(1, 1, 1, 15),
	}
	assert.Equal(t, span(1, 1, 1, 15), n.Span())
}

func TestInfo_ResolveSetsResolvedTrue(t *testing.T) {
	var i Info
	assert.False(t, i.Resolved)
	i.Resolve(htypes.Number(), pos(2, 3))
	assert.True(t, i.Resolved)
	assert.Equal(t, pos(2, 3), i.DefPos)
}

func TestRightAssociativeLetInChain_NestsCorrectly(t *testing.T) {
	// let x1 = 1, x2 = 2 in x1 + x2  desugars to:
	// LetIn{x1, 1, LetIn{x2, 2, BinaryOp(+, x1, x2)}}
	inner := &LetIn{
		Name:  "x2",
		Value: &NumberLit{Value: 2},
		Body: &BinaryOp{
			Op:    "+",
			Left:  &Variable{Name: "x1"},
			Right: &Variable{Name: "x2"},
		},
	}
	outer := &LetIn{Name: "x1", Value: &NumberLit{Value: 1}, Body: inner}

	nested, ok := outer.Body.(*LetIn)
	if assert.True(t, ok) {
		assert.Equal(t, "x2", nested.Name)
	}
}
