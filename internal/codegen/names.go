// Package codegen implements the contract-level LLVM-IR emitter spec.md
// §4.6 describes: a single-pass walk over the annotated AST that lays out
// one LLVM struct and vtable per user type (inherited fields/slots first,
// overrides in place), a malloc-based constructor per type, a function per
// global function and per method, and control-flow codegen using allocas
// for branch-result values.
//
// No example repo in the pack carries an LLVM-IR (or any native-codegen)
// binding, and the ecosystem's IR-builder libraries (llir/llvm and
// similar) were not retrieved into _examples/ — there is nothing in the
// corpus to ground a bound emitter on. This package instead follows the
// teacher's own preferred shape for "build a large piece of text
// mechanically": a strings.Builder accumulator plus small formatting
// helper methods, the same idiom internal/diag.Bag.String and
// internal/parse's LRParseTable.String use for the one non-rosed-table
// piece of text they emit (the caret pointer line), scaled up to a full
// module's worth of output.
package codegen

import "fmt"

// names is the fresh-name discipline: one monotone counter per function
// body (each funcGen gets its own) producing every SSA temporary (%tmpN)
// and label (then.N/else.N/fi.N), plus a per-HULK-name shadow counter for
// local-variable suffixes (%<name>.<k>). A single counter per function
// replaces per-scope bookkeeping and satisfies LLVM's requirement that
// registers and labels be unique within a function.
type names struct {
	counter int
	shadow  map[string]int
}

func newNames() *names {
	return &names{shadow: map[string]int{}}
}

func (n *names) temp() string {
	n.counter++
	return fmt.Sprintf("%%tmp%d", n.counter)
}

func (n *names) label(prefix string) string {
	n.counter++
	return fmt.Sprintf("%s.%d", prefix, n.counter)
}

// shadowed returns a fresh LLVM register name for a HULK-level local
// variable, incrementing that name's own shadow counter so re-entering the
// same HULK scope (e.g. a recursive call, or reusing a loop variable name)
// never collides with an earlier LLVM-level binding of the same HULK name.
func (n *names) shadowed(hulkName string) string {
	n.shadow[hulkName]++
	return fmt.Sprintf("%%%s.%d", hulkName, n.shadow[hulkName])
}
