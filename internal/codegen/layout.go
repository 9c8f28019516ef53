package codegen

import (
	"github.com/dekarrin/hulkc/internal/ast"
	"github.com/dekarrin/hulkc/internal/htypes"
)

// fieldSlot is one struct member in a type's memory layout.
type fieldSlot struct {
	Name string
	Type htypes.Type
}

// methodSlot is one vtable entry: the method name, the type that currently
// provides its implementation (Owner — the declaring type for an
// inherited-and-unmodified slot, or the overriding type once one exists),
// and the signature used to build the slot's function-pointer type.
type methodSlot struct {
	Name   string
	Owner  string
	Params []htypes.Type
	Return htypes.Type
}

// typeLayout is the struct-and-vtable shape computed for one user type, per
// spec §4.6: "one LLVM struct and vtable per user type, inherited
// fields/slots first, overrides replacing slots in place."
type typeLayout struct {
	Name    string
	Fields  []fieldSlot
	Methods []methodSlot
}

// buildLayouts computes one typeLayout per entry in typeDefs, which MUST
// already be ordered parent-before-child (sema's pass4TopoSort guarantees
// this for the Program it hands to codegen) so a child's layout can simply
// copy and extend its already-built parent layout.
func buildLayouts(ctx *htypes.Context, typeDefs []*ast.TypeDef) map[string]*typeLayout {
	layouts := make(map[string]*typeLayout, len(typeDefs))

	for _, td := range typeDefs {
		ti, ok := ctx.Lookup(td.Name)
		if !ok {
			continue
		}

		var fields []fieldSlot
		var methods []methodSlot
		if parent, ok := layouts[ti.Parent]; ok {
			fields = append(fields, parent.Fields...)
			methods = append(methods, parent.Methods...)
		}

		for _, name := range ti.FieldOrder {
			f := ti.Fields[name]
			fields = append(fields, fieldSlot{Name: f.Name, Type: f.Type})
		}

		for _, name := range ti.MethodOrder {
			m := ti.Methods[name]
			slot := methodSlot{Name: name, Owner: td.Name, Params: m.Params, Return: m.Return}
			replaced := false
			for i := range methods {
				if methods[i].Name == name {
					methods[i] = slot
					replaced = true
					break
				}
			}
			if !replaced {
				methods = append(methods, slot)
			}
		}

		layouts[td.Name] = &typeLayout{Name: td.Name, Fields: fields, Methods: methods}
	}

	return layouts
}

// fieldIndex returns the struct index of name within l, offset by one to
// account for slot 0 always being the vtable pointer. ok is false if no
// such field exists (codegen only calls this for fields sema has already
// validated, so this is an invariant check, not a user-facing error path).
func (l *typeLayout) fieldIndex(name string) (int, htypes.Type, bool) {
	for i, f := range l.Fields {
		if f.Name == name {
			return i + 1, f.Type, true
		}
	}
	return 0, htypes.Type{}, false
}

func (l *typeLayout) methodIndex(name string) (int, methodSlot, bool) {
	for i, m := range l.Methods {
		if m.Name == name {
			return i, m, true
		}
	}
	return 0, methodSlot{}, false
}
