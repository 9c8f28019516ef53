package sema

import "github.com/dekarrin/hulkc/internal/ast"

// typeDefTopoOrder returns the TypeDef nodes of prog ordered so a parent
// always precedes its children, preserving original relative order among
// types with no dependency on each other. Pass 2's cycle check guarantees
// this terminates. Used by pass 3 (so a child type body can see its
// already-resolved parent's constructor parameter types) and pass 4 (the
// final definition reorder spec §4.5 requires for the code generator).
func (a *Analyzer) typeDefTopoOrder(prog *ast.Program) []*ast.TypeDef {
	byName := map[string]*ast.TypeDef{}
	for _, def := range prog.Definitions {
		if td, ok := def.(*ast.TypeDef); ok {
			byName[td.Name] = td
		}
	}

	var order []*ast.TypeDef
	visited := map[string]bool{}

	var visit func(name string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		td, ok := byName[name]
		if !ok {
			return // built-in or unresolved name
		}
		ti, ok := a.types.Lookup(name)
		if ok && ti.Parent != "" && !ti.Builtin {
			if parentTi, ok := a.types.Lookup(ti.Parent); ok && !parentTi.Builtin {
				visit(ti.Parent)
			}
		}
		order = append(order, td)
	}

	for _, def := range prog.Definitions {
		if td, ok := def.(*ast.TypeDef); ok {
			visit(td.Name)
		}
	}
	return order
}
