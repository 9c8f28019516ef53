package sema

import "github.com/dekarrin/hulkc/internal/ast"

// pass4TopoSort reorders prog.Definitions so a parent type definition always
// precedes its children, stable otherwise, per spec §4.5 pass 4: "required
// by the code generator, which must declare a parent's LLVM struct and
// vtable before any child's." Non-type definitions keep their relative
// position among themselves and are emitted after all type definitions,
// since the code generator only has an ordering requirement on types.
func (a *Analyzer) pass4TopoSort(prog *ast.Program) {
	orderedTypes := a.typeDefTopoOrder(prog)

	var rest []ast.Definition
	for _, def := range prog.Definitions {
		if _, ok := def.(*ast.TypeDef); !ok {
			rest = append(rest, def)
		}
	}

	out := make([]ast.Definition, 0, len(prog.Definitions))
	for _, td := range orderedTypes {
		out = append(out, td)
	}
	out = append(out, rest...)
	prog.Definitions = out
}
