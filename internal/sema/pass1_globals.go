package sema

import (
	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// funcSig is a registered global function's signature.
type funcSig struct {
	Name   string
	Params []ast.Param
	Return string // declared annotation, resolved in pass 3
	Node   *ast.FunctionDef
}

// Analyzer runs the four passes over a parsed Program and produces an
// annotated program plus the accumulated diagnostics. One Analyzer serves
// exactly one compilation.
type Analyzer struct {
	bag    *diag.Bag
	types  *htypes.Context
	funcs  map[string]*funcSig
	consts map[string]htypes.Type

	typeDefs map[string]*ast.TypeDef // name -> surface node, for pass 2/3

	cycleHalted bool
}

// NewAnalyzer returns an Analyzer ready to run Analyze.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		bag:      diag.NewBag(),
		types:    htypes.NewContext(),
		funcs:    map[string]*funcSig{},
		consts:   map[string]htypes.Type{},
		typeDefs: map[string]*ast.TypeDef{},
	}
}

// Analyze runs all four passes in order, short-circuiting pass 3/4 per
// spec §4.5's error-accumulation policy ("passes 3 and 4 are skipped if
// passes 1-2 produced errors"), and the inheritance-cycle special case
// ("cycle detection... halt the compile (do not run passes 3-4)").
func (a *Analyzer) Analyze(prog *ast.Program) (*ast.Program, *diag.Bag) {
	a.pass1GlobalDefinitions(prog)
	a.pass2Inheritance(prog)

	if a.bag.HasErrors() || a.cycleHalted {
		return prog, a.bag
	}

	a.pass3CheckAndAnnotate(prog)
	a.pass4TopoSort(prog)

	return prog, a.bag
}

// memberCollision reports whether name is already registered as either a
// field or a method on ti — the Rust original's "member already defined"
// check applies across both namespaces, not per-namespace.
func memberCollision(ti *htypes.TypeInfo, name string) bool {
	if _, ok := ti.Fields[name]; ok {
		return true
	}
	if _, ok := ti.Methods[name]; ok {
		return true
	}
	return false
}

// pass1GlobalDefinitions registers built-in types (done by
// htypes.NewContext already) plus every user type name and its member map
// (fields and methods, collision-checked across both), and every global
// function's signature. Constants and protocol definitions are skipped here
// per spec §4.5 pass 1.
func (a *Analyzer) pass1GlobalDefinitions(prog *ast.Program) {
	for _, def := range prog.Definitions {
		td, ok := def.(*ast.TypeDef)
		if !ok {
			continue
		}
		if a.types.IsDefined(td.Name) {
			a.bag.Errorf(startPos(td.Span()), string(KindTypeOrProtocolAlreadyDef),
				"type or protocol %s is already defined", td.Name)
			continue
		}
		ti, err := a.types.DefineType(td.Name, startPos(td.Span()))
		if err != nil {
			a.bag.Errorf(startPos(td.Span()), string(KindTypeOrProtocolAlreadyDef),
				"type or protocol %s is already defined", td.Name)
			continue
		}
		a.typeDefs[td.Name] = td

		for _, f := range td.Fields {
			if memberCollision(ti, f.Name) {
				a.bag.Errorf(startPos(f.Span_), string(KindTypeMemberAlreadyDefined),
					"member %s is already defined in type %s", f.Name, td.Name)
				continue
			}
			_ = a.types.AddField(ti, htypes.MemberDef{Name: f.Name, Pos: startPos(f.Span_)})
		}
		for _, m := range td.Methods {
			if memberCollision(ti, m.Name) {
				a.bag.Errorf(startPos(m.Span_), string(KindTypeMemberAlreadyDefined),
					"member %s is already defined in type %s", m.Name, td.Name)
				continue
			}
			_ = a.types.AddMethod(ti, htypes.MethodSig{Name: m.Name, Pos: startPos(m.Span_)})
		}
	}

	for _, def := range prog.Definitions {
		fd, ok := def.(*ast.FunctionDef)
		if !ok {
			continue
		}
		if _, exists := a.funcs[fd.Name]; exists {
			a.bag.Errorf(startPos(fd.Span()), string(KindFuncAlreadyDefined),
				"function %s is already defined", fd.Name)
			continue
		}
		a.funcs[fd.Name] = &funcSig{Name: fd.Name, Params: fd.Params, Return: fd.ReturnAnnotation, Node: fd}
	}
}

func startPos(s ast.Span) diag.Position { return s.Start }
