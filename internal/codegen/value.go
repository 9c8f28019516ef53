package codegen

import "github.com/dekarrin/hulkc/internal/htypes"

// value is one already-materialized SSA result: a register (or an LLVM
// constant literal, which is syntactically interchangeable with a register
// as an operand) carrying its HULK type so the caller knows which
// instruction family to use next.
type value struct {
	reg string
	typ htypes.Type
}
