package sema

import (
	"strings"

	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/diag"
)

// color marks cycle-detection DFS state.
type color int

const (
	colorWhite color = iota
	colorGray
	colorBlack
)

// pass2Inheritance resolves each user type's declared parent (defaulting to
// Object), rejects undeclared or non-Object-builtin parents, detects
// inheritance cycles (halting before passes 3-4 if one exists), and
// precomputes the LCA structure used by pass 3's conforms/common-supertype
// queries.
func (a *Analyzer) pass2Inheritance(prog *ast.Program) {
	for _, def := range prog.Definitions {
		td, ok := def.(*ast.TypeDef)
		if !ok {
			continue
		}
		ti, ok := a.types.Lookup(td.Name)
		if !ok {
			continue // pass 1 already reported this type as a duplicate
		}
		if err := a.types.SetParent(ti, td.ParentName); err != nil {
			a.bag.Errorf(startPos(td.Span()), string(KindInheritanceInvalidParent), "%s", err.Error())
			continue
		}
		ti.ParentArgs = exprsToAny(td.ParentArgs)
	}

	if a.detectInheritanceCycle(prog) {
		a.cycleHalted = true
		return
	}

	if err := a.types.BuildLCA(); err != nil {
		a.bag.Errorf(diag.Position{}, string(KindInheritanceInvalidParent), "%s", err.Error())
		a.cycleHalted = true
	}
}

// detectInheritanceCycle runs a DFS over the parent map, coloring gray/black;
// re-visiting a gray node means the cycle has been closed. Reports the
// rotation of the cycle starting at the first offending type name seen in
// declaration order for determinism.
func (a *Analyzer) detectInheritanceCycle(prog *ast.Program) bool {
	colors := map[string]color{}
	found := false

	var visit func(name string, path []string) bool
	visit = func(name string, path []string) bool {
		if colors[name] == colorBlack {
			return false
		}
		if colors[name] == colorGray {
			// emit the cycle path starting at name's first occurrence.
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cyclePath := append(append([]string(nil), path[start:]...), name)
			a.bag.Errorf(diag.Position{}, string(KindInheritanceCycle),
				"inheritance cycle detected: %s", strings.Join(cyclePath, "→"))
			return true
		}
		colors[name] = colorGray
		ti, ok := a.types.Lookup(name)
		if ok && ti.Parent != "" && !ti.Builtin {
			if visit(ti.Parent, append(path, name)) {
				found = true
			}
		}
		colors[name] = colorBlack
		return found
	}

	for _, def := range prog.Definitions {
		td, ok := def.(*ast.TypeDef)
		if !ok {
			continue
		}
		if colors[td.Name] == colorWhite {
			visit(td.Name, nil)
		}
	}
	return found
}

func exprsToAny(es []ast.Expr) []any {
	out := make([]any, len(es))
	for i, e := range es {
		out[i] = e
	}
	return out
}

