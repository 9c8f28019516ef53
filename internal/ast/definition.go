package ast

// Definition is the sealed interface every top-level definition variant
// implements: type definitions, global functions, constants, and reserved
// protocol definitions (spec §4.4).
type Definition interface {
	Span() Span
	isDefinition()
}

// FieldDef is one data-member declaration inside a type body.
type FieldDef struct {
	Name       string
	Annotation string
	Default    Expr
	Span_      Span
}

// MethodDef is one method declaration inside a type body.
type MethodDef struct {
	Name             string
	Params           []Param
	ReturnAnnotation string
	Body             Expr
	Span_            Span
}

// TypeDef is `type T(params) [inherits Parent(args)] { fields; methods; }`.
// ParentName defaults to "" at parse time; pass 2 resolves the implicit
// Object parenthood and rejects undeclared/non-Object-builtin parents.
type TypeDef struct {
	Name              string
	ConstructorParams []Param
	ParentName        string
	ParentArgs        []Expr
	Fields            []FieldDef
	Methods           []MethodDef
	Span_             Span
}

// FunctionDef is a global `function f(params): T => body;` or
// `function f(params): T { body }` definition.
type FunctionDef struct {
	Name             string
	Params           []Param
	ReturnAnnotation string
	Body             Expr
	Span_            Span
}

// ConstantDef is a global `constant c: T = expr;` definition.
type ConstantDef struct {
	Name       string
	Annotation string
	Value      Expr
	Span_      Span
	Info       Info
}

// ProtocolDef is a reserved variant: parsed and carried through the tree but
// never semantically implemented (spec §9 open question: "Protocol
// definitions are a reserved variant everywhere but never semantically
// implemented").
type ProtocolDef struct {
	Name    string
	Extends string
	Span_   Span
}

// Program is a full compilation unit: its definitions and the top-level
// expressions `@main` evaluates in sequence.
type Program struct {
	Definitions []Definition
	Expressions []Expr
}

func (d *TypeDef) Span() Span     { return d.Span_ }
func (d *FunctionDef) Span() Span { return d.Span_ }
func (d *ConstantDef) Span() Span { return d.Span_ }
func (d *ProtocolDef) Span() Span { return d.Span_ }

func (d *TypeDef) isDefinition()     {}
func (d *FunctionDef) isDefinition() {}
func (d *ConstantDef) isDefinition() {}
func (d *ProtocolDef) isDefinition() {}
