package sema

import "github.com/dekarrin/hulkc/internal/htypes"

// Types returns the type context built and annotated by Analyze, for
// internal/codegen to consult when lowering the same annotated program.
func (a *Analyzer) Types() *htypes.Context {
	return a.types
}
