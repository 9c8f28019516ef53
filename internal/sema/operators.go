package sema

import "github.com/dekarrin/hulkc/internal/htypes"

// binOpSig is one entry in the per-operator functor-type table spec §4.5
// requires ("Binary/unary operators use a per-operator functor-type table
// describing expected parameter types and return type").
type binOpSig struct {
	Left, Right, Return htypes.Type
	// SameOperands, when true, means Left/Right are placeholders and the
	// actual rule is "both operands must conform to each other" (==, !=)
	// rather than to a fixed pair of types.
	SameOperands bool
}

// plusNumberSig is the scalar entry in binOpTable; VisitBinaryOp checks it
// only after ruling out the list-concatenation case below, since "+" is
// the one operator the table can't fully describe with a single signature.
var plusNumberSig = binOpSig{Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Number()}

var binOpTable = map[string]binOpSig{
	"+": plusNumberSig,
	"-": {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Number()},
	"*": {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Number()},
	"/": {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Number()},
	"%": {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Number()},

	"<":  {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Boolean()},
	"<=": {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Boolean()},
	">":  {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Boolean()},
	">=": {Left: htypes.Number(), Right: htypes.Number(), Return: htypes.Boolean()},

	"==": {Return: htypes.Boolean(), SameOperands: true},
	"!=": {Return: htypes.Boolean(), SameOperands: true},

	"&&": {Left: htypes.Boolean(), Right: htypes.Boolean(), Return: htypes.Boolean()},
	"||": {Left: htypes.Boolean(), Right: htypes.Boolean(), Return: htypes.Boolean()},

	// string concat: either operand may be any built-in or user type;
	// HULK stringifies both sides. @@ additionally inserts a space, a
	// codegen-time distinction only (spec §9 open question) — typing is
	// identical for @ and @@.
	"@":  {Return: htypes.String(), SameOperands: false},
	"@@": {Return: htypes.String(), SameOperands: false},
}

type unOpSig struct {
	Operand, Return htypes.Type
}

var unOpTable = map[string]unOpSig{
	"-": {Operand: htypes.Number(), Return: htypes.Number()},
	"!": {Operand: htypes.Boolean(), Return: htypes.Boolean()},
}
