package ast

// Expr is the sealed interface every expression variant implements. The
// unexported isExpr method prevents any package outside ast from adding a
// new variant — new variants exist only inside this file, where
// ExprVisitor and Accept below are kept in sync with them.
type Expr interface {
	Span() Span
	isExpr()
}

// Assignment is destructive assignment `lhs := rhs`. Pass 3 validates Target
// is one of variable, `self.field`, or list-indexing per spec §4.5's four
// cases; any other target shape is rejected there, not here — the parser
// accepts any Expr as Target so the analyzer can report the exact offending
// shape.
type Assignment struct {
	Target Expr
	Value  Expr
	Span_  Span
}

// BinaryOp covers arithmetic, comparison, boolean, and string-concat
// operators (`+ - * / % < <= > >= == != && || @ @@`). Op holds the surface
// operator text.
type BinaryOp struct {
	Op     string
	Left   Expr
	Right  Expr
	Span_  Span
}

// UnaryOp covers unary minus and boolean negation (`!`).
type UnaryOp struct {
	Op      string
	Operand Expr
	Span_   Span
}

// LetIn is a single-binding let-in node. A surface `let x1=e1, x2=e2 in
// body` desugars, at parse time (not here), into a right-associative chain
// `LetIn{x1, e1, LetIn{x2, e2, body}}` per spec §4.4.
type LetIn struct {
	Name       string
	Annotation string // declared type name, "" if unannotated
	Value      Expr
	Body       Expr
	Span_      Span
	Info       Info
}

// IfElse is a single if/then/else. A surface `if/elif.../else` chain
// desugars, at parse time, into nested IfElse nodes (each `elif` becoming
// the Else of its predecessor).
type IfElse struct {
	Cond  Expr
	Then  Expr
	Else  Expr
	Span_ Span
}

type While struct {
	Cond  Expr
	Body  Expr
	Span_ Span
}

// For binds Var to each element of Iterable in turn over Body. Iterable
// must type as some `T*`; Var's info slot records the resolved element
// type T.
type For struct {
	Var      string
	Iterable Expr
	Body     Expr
	Span_    Span
	Info     Info
}

// Block is a `{ e1; e2; ...; en; }` sequence; the block's type/value is its
// last expression's.
type Block struct {
	Exprs []Expr
	Span_ Span
}

// Return is a `return expr;` statement, legal only inside a function or
// method body.
type Return struct {
	Value Expr
	Span_ Span
}

type NumberLit struct {
	Value float64
	Span_ Span
}

type BooleanLit struct {
	Value bool
	Span_ Span
}

type StringLit struct {
	Value string
	Span_ Span
}

// ListLit is a `[e1, e2, ...]` literal. Annotation, if non-empty, is a
// context-supplied element type name used only when Elements is empty
// (spec §4.5: "an empty list with no annotation is an error... unless
// context supplies one").
type ListLit struct {
	Elements   []Expr
	Annotation string
	Span_      Span
}

// New is a `new T(args...)` constructor call.
type New struct {
	TypeName string
	Args     []Expr
	Span_    Span
	Info     Info // Info.DefPos records where T was declared
}

// Call is a global function call `f(args...)`.
type Call struct {
	Callee string
	Args   []Expr
	Span_  Span
	Info   Info // Info.Type records the call's resolved return type
}

// DataMemberAccess is `e.x` — a field read, permitted by pass 3 only when e
// is exactly the `self` variable (spec §4.5: "properties are private, even
// to inherited types").
type DataMemberAccess struct {
	Receiver Expr
	Member   string
	Span_    Span
	Info     Info
}

// FuncMemberAccess is `e.m(args...)` — a method call, resolved by walking
// the receiver's static type up the hierarchy.
type FuncMemberAccess struct {
	Receiver Expr
	Method   string
	Args     []Expr
	Span_    Span
	Info     Info
}

// Index is `list[idx]`.
type Index struct {
	List  Expr
	At    Expr
	Span_ Span
}

// Variable is a bare identifier reference, resolved against the active
// Scope by pass 3.
type Variable struct {
	Name  string
	Span_ Span
	Info  Info
}

func (e *Assignment) Span() Span       { return e.Span_ }
func (e *BinaryOp) Span() Span         { return e.Span_ }
func (e *UnaryOp) Span() Span          { return e.Span_ }
func (e *LetIn) Span() Span            { return e.Span_ }
func (e *IfElse) Span() Span           { return e.Span_ }
func (e *While) Span() Span            { return e.Span_ }
func (e *For) Span() Span              { return e.Span_ }
func (e *Block) Span() Span            { return e.Span_ }
func (e *Return) Span() Span           { return e.Span_ }
func (e *NumberLit) Span() Span        { return e.Span_ }
func (e *BooleanLit) Span() Span       { return e.Span_ }
func (e *StringLit) Span() Span        { return e.Span_ }
func (e *ListLit) Span() Span          { return e.Span_ }
func (e *New) Span() Span              { return e.Span_ }
func (e *Call) Span() Span             { return e.Span_ }
func (e *DataMemberAccess) Span() Span { return e.Span_ }
func (e *FuncMemberAccess) Span() Span { return e.Span_ }
func (e *Index) Span() Span            { return e.Span_ }
func (e *Variable) Span() Span         { return e.Span_ }

func (e *Assignment) isExpr()       {}
func (e *BinaryOp) isExpr()         {}
func (e *UnaryOp) isExpr()          {}
func (e *LetIn) isExpr()            {}
func (e *IfElse) isExpr()           {}
func (e *While) isExpr()            {}
func (e *For) isExpr()              {}
func (e *Block) isExpr()            {}
func (e *Return) isExpr()           {}
func (e *NumberLit) isExpr()        {}
func (e *BooleanLit) isExpr()       {}
func (e *StringLit) isExpr()        {}
func (e *ListLit) isExpr()          {}
func (e *New) isExpr()              {}
func (e *Call) isExpr()             {}
func (e *DataMemberAccess) isExpr() {}
func (e *FuncMemberAccess) isExpr() {}
func (e *Index) isExpr()            {}
func (e *Variable) isExpr()         {}
