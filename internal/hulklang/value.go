package hulklang

import (
	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/dekarrin/hulkc/internal/lex"
)

// value is the parser's single reduced-value type: every nonterminal in
// grammar.go reduces to one of these, with exactly one field populated per
// production. This is the idiomatic-Go shape of the Rust original's
// ReturnType enum (generated_parser/src/grammar.rs) — a Rust match arm
// there is a populated-field check here, since Go has no sum types.
type value struct {
	expr      ast.Expr
	exprList  []ast.Expr
	def       ast.Definition
	defList   []ast.Definition
	param     ast.Param
	paramList []ast.Param
	ident     string
	typeName  string
	assign    assignment
	assigns   []assignment
	field     ast.FieldDef
	method    ast.MethodDef
	members   memberList
	block     []ast.Expr
	multiSemi bool
	inherits  *inheritance
	program   ast.Program
	call      callInfo
}

// callInfo is a bare `name(args...)` call shape, before the reducer that
// consumes it decides whether it becomes a Call, a New, or a
// FuncMemberAccess.
type callInfo struct {
	Name string
	Args []ast.Expr
}

// assignment is one `name[: type] = value` binding, shared by let-in
// bindings and type fields.
type assignment struct {
	Name       string
	Annotation string
	Value      ast.Expr
}

// memberList accumulates a type body's fields and methods in declaration
// order within each kind; TypeDef itself doesn't care about interleaving
// order between the two kinds.
type memberList struct {
	Fields  []ast.FieldDef
	Methods []ast.MethodDef
}

// inheritance is a type's `inherits Parent(args)` clause.
type inheritance struct {
	Parent string
	Args   []ast.Expr
}

func posOf(tok lex.Token) diag.Position {
	return diag.Position{Line: tok.Line(), Col: tok.LinePos(), SourceLine: tok.FullLine()}
}

func spanOfTok(tok lex.Token) ast.Span {
	p := posOf(tok)
	return ast.Span{Start: p, End: p}
}

func spanBetween(start, end ast.Span) ast.Span {
	return ast.Span{Start: start.Start, End: end.End}
}
