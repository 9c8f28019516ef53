package codegen

import "github.com/dekarrin/hulkc/internal/htypes"

// llvmType maps a HULK type to its LLVM representation per spec §4.6:
// Number and Boolean map directly to LLVM scalars (double, i1), String is
// an i8* C string, and every reference type (user types, Object-as-supertype,
// and lists) is carried as an opaque or named pointer.
func (g *Generator) llvmType(t htypes.Type) string {
	switch t.Kind() {
	case htypes.KindNumber:
		return "double"
	case htypes.KindBoolean:
		return "i1"
	case htypes.KindString:
		return "i8*"
	case htypes.KindUser:
		return "%" + t.Name() + "_type*"
	case htypes.KindIterable:
		return "%list_type*"
	default: // KindObject, KindNone, KindFunctor: erased to an opaque pointer
		return "i8*"
	}
}

func structTypeName(typeName string) string { return "%" + typeName + "_type" }
func vtableTypeName(typeName string) string { return "%" + typeName + "_vtable_type" }
func vtableGlobalName(typeName string) string { return "@" + typeName + "_vtable" }
func constructorName(typeName string) string { return "@" + typeName + "_new" }
func methodFuncName(owner, method string) string { return "@" + owner + "_method_" + method }

// methodFuncType renders the bitcast-target function-pointer type for a
// vtable slot: self is always erased to i8* ("methods receiving self as
// first argument cast at call sites", spec §4.6), so every slot in every
// type's vtable shares one calling convention regardless of which class
// declared the method.
func (g *Generator) methodFuncType(slot methodSlot) string {
	parts := []string{"i8*"}
	for _, p := range slot.Params {
		parts = append(parts, g.llvmType(p))
	}
	out := g.llvmType(slot.Return) + " ("
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out + ")*"
}
