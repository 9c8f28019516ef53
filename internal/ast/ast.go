// Package ast defines the HULK abstract syntax tree: the expression and
// definition sum types from spec.md §4.4, source-position tracking, and the
// two-trait visitor protocol (one for expressions, one for definitions) used
// by the semantic analyzer and code generator.
//
// The teacher repo's only AST-shaped code (tunascript/syntax/ast.go) tags
// each node with a NodeType and exposes panic-on-mismatch As*() accessors
// rather than a visitor — grepping the whole pack turned up no existing
// accept(visitor) pattern anywhere. This package departs from the teacher's
// idiom here by design: spec §9 requires "add a new AST variant → compiler
// errors until every pass handles it," and Go's type switches are not
// checked for exhaustiveness by the compiler, so a classical visitor (one
// method per variant on a pass-specific interface) is the closest idiomatic
// Go gets to the informal guarantee the source language's pattern matching
// gave for free.
package ast

import (
	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// Span is the source extent of a node, propagated verbatim from the
// scanned tokens through to any diagnostic or type-info that references it.
type Span struct {
	Start diag.Position
	End   diag.Position
}

// Info is the per-identifier annotation slot spec §4.4 requires: "every
// identifier carries an info slot (type annotation + definition position)
// updated by the semantic passes." It starts zero-valued (Resolved false)
// and is filled in place by pass 3 — nodes that embed an Info share the
// mutable-in-place annotation discipline spec §4.4's visitor-protocol note
// describes, rather than threading a second annotated tree alongside the
// parsed one.
type Info struct {
	Type     htypes.Type
	DefPos   diag.Position
	Resolved bool
}

// Resolve fills the info slot. Called exactly once per identifier by pass 3.
func (i *Info) Resolve(t htypes.Type, defPos diag.Position) {
	i.Type = t
	i.DefPos = defPos
	i.Resolved = true
}

// Param is a declared parameter: a type definition's constructor
// parameters, or a function/method's parameters.
type Param struct {
	Name       string
	Annotation string // declared type name from the surface syntax, "" if unannotated
	Span       Span
	Info       Info
}
