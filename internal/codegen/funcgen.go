package codegen

import (
	"fmt"
	"strings"

	"github.com/dekarrin/hulkc/internal/htypes"
)

// varSlot is one live binding in a funcGen's scope: every HULK variable,
// regardless of mutability, is backed by an alloca so destructive
// assignment is a plain store and every read is a plain load — the same
// "allocate everything, let mem2reg clean it up later" approach a
// hand-written IR front end reaches for instead of tracking SSA phi nodes
// itself.
type varSlot struct {
	Ptr string
	Typ htypes.Type
}

// funcGen holds the state threaded through codegen of a single function,
// method, or constructor body: the shared Generator (for layouts and
// module-level helpers), a fresh-name counter local to this function, an
// output buffer, and a scope stack of HULK-name -> varSlot bindings.
type funcGen struct {
	g        *Generator
	nm       *names
	buf      strings.Builder
	scopes   []map[string]varSlot
	selfType string      // enclosing type's name, "" at top level/global functions
	retType  htypes.Type // declared return type; consulted by VisitReturn
}

func newFuncGen(g *Generator, selfType string) *funcGen {
	fg := &funcGen{g: g, nm: newNames(), selfType: selfType}
	fg.pushScope()
	return fg
}

func (fg *funcGen) pushScope() { fg.scopes = append(fg.scopes, map[string]varSlot{}) }
func (fg *funcGen) popScope()  { fg.scopes = fg.scopes[:len(fg.scopes)-1] }

func (fg *funcGen) bind(name string, v varSlot) {
	fg.scopes[len(fg.scopes)-1][name] = v
}

func (fg *funcGen) lookup(name string) (varSlot, bool) {
	for i := len(fg.scopes) - 1; i >= 0; i-- {
		if v, ok := fg.scopes[i][name]; ok {
			return v, true
		}
	}
	if v, ok := fg.g.globals[name]; ok {
		return v, true
	}
	return varSlot{}, false
}

func (fg *funcGen) emit(format string, args ...any) {
	fmt.Fprintf(&fg.buf, "  "+format+"\n", args...)
}

func (fg *funcGen) label(name string) {
	fmt.Fprintf(&fg.buf, "%s:\n", name)
}

// declareLocal allocas a slot for name, stores initReg into it, and binds
// it in the current (innermost) scope.
func (fg *funcGen) declareLocal(name string, t htypes.Type, initReg string) {
	ty := fg.g.llvmType(t)
	ptr := fg.nm.shadowed(name)
	fg.emit("%s = alloca %s", ptr, ty)
	fg.emit("store %s %s, %s* %s", ty, initReg, ty, ptr)
	fg.bind(name, varSlot{Ptr: ptr, Typ: t})
}

func (fg *funcGen) load(slot varSlot) string {
	ty := fg.g.llvmType(slot.Typ)
	reg := fg.nm.temp()
	fg.emit("%s = load %s, %s* %s", reg, ty, ty, slot.Ptr)
	return reg
}

func (fg *funcGen) store(slot varSlot, reg string) {
	ty := fg.g.llvmType(slot.Typ)
	fg.emit("store %s %s, %s* %s", ty, reg, ty, slot.Ptr)
}

// toErasedI8 widens v to an opaque i8* Object reference: pointer types are
// bitcast directly, scalars (double/i1) are boxed into a fresh one-word
// heap cell first, since they have no pointer representation to bitcast
// from.
func (fg *funcGen) toErasedI8(v value) string {
	ty := fg.g.llvmType(v.typ)
	if ty == "i8*" {
		return v.reg
	}
	if strings.HasSuffix(ty, "*") {
		reg := fg.nm.temp()
		fg.emit("%s = bitcast %s %s to i8*", reg, ty, v.reg)
		return reg
	}
	raw := fg.nm.temp()
	fg.emit("%s = call i8* @malloc(i64 8)", raw)
	typed := fg.nm.temp()
	fg.emit("%s = bitcast i8* %s to %s*", typed, raw, ty)
	fg.emit("store %s %s, %s* %s", ty, v.reg, ty, typed)
	return raw
}

// coerce converts v to target's LLVM representation: a no-op when the
// representations already match, toErasedI8 when widening to Object,
// unboxing (bitcast-then-load) when narrowing an Object-erased i8* back to
// a concrete scalar or pointer type, and a plain bitcast for an upcast
// between two named user-type pointers (valid because single inheritance
// keeps every subtype's field prefix layout-compatible with its ancestors).
func (fg *funcGen) coerce(v value, target htypes.Type) string {
	tgtTy := fg.g.llvmType(target)
	srcTy := fg.g.llvmType(v.typ)
	if tgtTy == srcTy {
		return v.reg
	}
	if tgtTy == "i8*" {
		return fg.toErasedI8(v)
	}
	if srcTy == "i8*" {
		if tgtTy == "double" || tgtTy == "i1" {
			typed := fg.nm.temp()
			fg.emit("%s = bitcast i8* %s to %s*", typed, v.reg, tgtTy)
			reg := fg.nm.temp()
			fg.emit("%s = load %s, %s* %s", reg, tgtTy, tgtTy, typed)
			return reg
		}
		reg := fg.nm.temp()
		fg.emit("%s = bitcast i8* %s to %s", reg, v.reg, tgtTy)
		return reg
	}
	reg := fg.nm.temp()
	fg.emit("%s = bitcast %s %s to %s", reg, srcTy, v.reg, tgtTy)
	return reg
}
