// Package htypes implements the HULK type system: the four concrete
// built-in type tags (Number, String, Boolean, Object), user-defined class
// types, iterable types (T*), functor types (an operator or method's
// parameter/return signature), the single-inheritance lattice rooted at
// Object, and a binary-lifting LCA structure supporting sublinear
// conforms/common-supertype queries, per spec.md §4.5 and the type tags
// confirmed against original_source/ast/src/typing/hulk_type.rs.
//
// The teacher repo (dekarrin-tunaq) has no type-system package of its own —
// tunascript is untyped — so this package has no direct teacher file to
// adapt; its shape follows the generic-container conventions
// (internal/util); its errors are plain fmt.Errorf values with nothing
// wrapped.
package htypes

import "fmt"

// Kind tags which concrete shape a Type has.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindObject
	KindUser
	KindIterable
	KindFunctor
	// KindNone is the sentinel "unknown type" result: produced whenever an
	// annotation references an undeclared name, or a subtree fails to type
	// because its children already failed. Spec §4.5 requires treating such
	// annotations "as None thereafter" so later checks don't cascade a
	// flood of secondary errors from one failure.
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindObject:
		return "Object"
	case KindUser:
		return "user"
	case KindIterable:
		return "iterable"
	case KindFunctor:
		return "functor"
	default:
		return "None"
	}
}

// Type is an immutable HULK type value. Compare Types with Equal: the
// struct holds a slice (functor parameters), so == does not compile for it,
// and iterable/functor types carry pointers.
type Type struct {
	kind   Kind
	name   string // KindUser: the declared type name
	elem   *Type  // KindIterable: element type
	params []Type // KindFunctor: parameter types
	ret    *Type  // KindFunctor: return type
}

func Number() Type  { return Type{kind: KindNumber} }
func String() Type  { return Type{kind: KindString} }
func Boolean() Type { return Type{kind: KindBoolean} }
func Object() Type  { return Type{kind: KindObject} }
func None() Type    { return Type{kind: KindNone} }

func User(name string) Type { return Type{kind: KindUser, name: name} }

func Iterable(elem Type) Type {
	e := elem
	return Type{kind: KindIterable, elem: &e}
}

func Functor(params []Type, ret Type) Type {
	r := ret
	return Type{kind: KindFunctor, params: append([]Type(nil), params...), ret: &r}
}

func (t Type) Kind() Kind { return t.kind }
func (t Type) IsNone() bool { return t.kind == KindNone }
func (t Type) IsIterable() bool { return t.kind == KindIterable }
func (t Type) IsFunctor() bool { return t.kind == KindFunctor }
func (t Type) IsUser() bool { return t.kind == KindUser }
func (t Type) IsBuiltinPrimitive() bool {
	return t.kind == KindNumber || t.kind == KindString || t.kind == KindBoolean
}

// Name returns the type's display name: the built-in's tag name, the user
// type's declared name, or "Object".
func (t Type) Name() string {
	if t.kind == KindUser {
		return t.name
	}
	return t.kind.String()
}

// Elem returns the element type of an iterable type. Panics if t is not
// iterable — callers must check IsIterable first, matching this module's
// convention of trusting internal invariants rather than returning a second
// ok value for states the type checker already rules out upstream.
func (t Type) Elem() Type {
	if t.kind != KindIterable {
		panic("htypes: Elem called on non-iterable type " + t.String())
	}
	return *t.elem
}

func (t Type) Params() []Type {
	return append([]Type(nil), t.params...)
}

func (t Type) Return() Type {
	if t.kind != KindFunctor {
		panic("htypes: Return called on non-functor type " + t.String())
	}
	return *t.ret
}

func (t Type) String() string {
	switch t.kind {
	case KindUser:
		return t.name
	case KindIterable:
		return t.elem.String() + "*"
	case KindFunctor:
		parts := "("
		for i, p := range t.params {
			if i > 0 {
				parts += ", "
			}
			parts += p.String()
		}
		return fmt.Sprintf("%s) -> %s", parts, t.ret.String())
	default:
		return t.kind.String()
	}
}

// Equal compares two types structurally: by kind and name for user types,
// recursively for iterable and functor types.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindUser:
		return t.name == o.name
	case KindIterable:
		return t.elem.Equal(*o.elem)
	case KindFunctor:
		if len(t.params) != len(o.params) || !t.ret.Equal(*o.ret) {
			return false
		}
		for i := range t.params {
			if !t.params[i].Equal(o.params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
