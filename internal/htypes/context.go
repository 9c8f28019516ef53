package htypes

import (
	"fmt"

	"github.com/dekarrin/hulkc/internal/diag"
)

// MemberDef is one data-member (field) declaration on a user type.
type MemberDef struct {
	Name string
	Type Type
	Pos  diag.Position
}

// MethodSig is one method's signature, recorded on the type that declares
// it (not copied onto every descendant) — function-member access walks the
// hierarchy to find it, per spec §4.5.
type MethodSig struct {
	Name           string
	Params         []Type
	Return         Type
	DeclaringType  string
	Pos            diag.Position
}

// TypeInfo is one registered type's shape: its parent, its own (not
// inherited) fields, and its own (not inherited) methods.
type TypeInfo struct {
	Name     string
	Parent   string // "" for the built-ins (Object, Number, String, Boolean)
	Builtin  bool
	Pos      diag.Position

	Fields     map[string]MemberDef
	FieldOrder []string

	Methods     map[string]MethodSig
	MethodOrder []string

	ConstructorParams []MemberDef
	// ParentArgs are the argument expressions passed to the parent
	// constructor in this type's `inherits Parent(args...)` clause, typed
	// as `any` to avoid an import of internal/ast (sema supplies the
	// concrete *ast.Expr values and type-checks them itself).
	ParentArgs []any
}

// Context owns the type registry, the inheritance lattice, and the
// precomputed LCA structure used for conforms/common-supertype queries. One
// Context is built per compilation by the semantic analyzer's passes 1-2.
type Context struct {
	types    map[string]*TypeInfo
	order    []string
	children map[string][]string

	depth []int
	up    [][]int
	index map[string]int
	names []string
}

// NewContext returns a Context with the four built-ins registered: Number,
// String, Boolean (no parent — they participate in the lattice only as
// leaves conforming to nothing but themselves) and Object (the lattice
// root, no parent).
func NewContext() *Context {
	c := &Context{
		types:    map[string]*TypeInfo{},
		children: map[string][]string{},
	}
	for _, name := range []string{"Number", "String", "Boolean"} {
		c.types[name] = &TypeInfo{Name: name, Builtin: true, Fields: map[string]MemberDef{}, Methods: map[string]MethodSig{}}
		c.order = append(c.order, name)
	}
	c.types["Object"] = &TypeInfo{Name: "Object", Builtin: true, Fields: map[string]MemberDef{}, Methods: map[string]MethodSig{}}
	c.order = append(c.order, "Object")
	return c
}

// Lookup returns the registered TypeInfo for name, if any.
func (c *Context) Lookup(name string) (*TypeInfo, bool) {
	t, ok := c.types[name]
	return t, ok
}

func (c *Context) IsDefined(name string) bool {
	_, ok := c.types[name]
	return ok
}

// DefineType registers a new user type with no parent set yet (pass 2 fills
// Parent in separately, once every type name is known). Returns an error if
// name collides with an existing type — pass 1's "already defined" check.
func (c *Context) DefineType(name string, pos diag.Position) (*TypeInfo, error) {
	if c.IsDefined(name) {
		return nil, fmt.Errorf("type %q is already defined", name)
	}
	ti := &TypeInfo{Name: name, Fields: map[string]MemberDef{}, Methods: map[string]MethodSig{}, Pos: pos}
	c.types[name] = ti
	c.order = append(c.order, name)
	return ti, nil
}

// SetParent resolves ti's declared parent, defaulting to Object, rejecting
// undeclared names and non-Object built-in parents per spec §4.5 pass 2.
func (c *Context) SetParent(ti *TypeInfo, parentName string) error {
	if parentName == "" {
		parentName = "Object"
	}
	parent, ok := c.types[parentName]
	if !ok {
		return fmt.Errorf("undeclared parent type %q", parentName)
	}
	if parent.Builtin && parent.Name != "Object" {
		return fmt.Errorf("cannot inherit from built-in type %q", parentName)
	}
	ti.Parent = parentName
	c.children[parentName] = append(c.children[parentName], ti.Name)
	return nil
}

// AddField registers a data member on ti, failing on a same-type name
// collision (fields are per-type: re-declaring a field already present on
// an ancestor is allowed at the data level, but spec's "method override
// validation" separately forbids a field shadowing an inherited field of
// the SAME name — that check belongs to the caller, since it needs the full
// hierarchy walk this function intentionally does not perform).
func (c *Context) AddField(ti *TypeInfo, f MemberDef) error {
	if _, exists := ti.Fields[f.Name]; exists {
		return fmt.Errorf("member %q is already defined on type %q", f.Name, ti.Name)
	}
	ti.Fields[f.Name] = f
	ti.FieldOrder = append(ti.FieldOrder, f.Name)
	return nil
}

func (c *Context) AddMethod(ti *TypeInfo, m MethodSig) error {
	if _, exists := ti.Methods[m.Name]; exists {
		return fmt.Errorf("method %q is already defined on type %q", m.Name, ti.Name)
	}
	m.DeclaringType = ti.Name
	ti.Methods[m.Name] = m
	ti.MethodOrder = append(ti.MethodOrder, m.Name)
	return nil
}

// FindOwnField resolves name on exactly ti (no hierarchy walk) — data
// members are "per-type, not inherited for access" per spec §4.5.
func (ti *TypeInfo) FindOwnField(name string) (MemberDef, bool) {
	f, ok := ti.Fields[name]
	return f, ok
}

// ResolveMethod walks from ti up through ancestors looking for the nearest
// declaration of name, implementing function-member access's "resolve m by
// walking up the hierarchy until a defining type is found."
func (c *Context) ResolveMethod(ti *TypeInfo, name string) (MethodSig, bool) {
	for cur := ti; cur != nil; {
		if m, ok := cur.Methods[name]; ok {
			return m, true
		}
		if cur.Parent == "" {
			break
		}
		cur = c.types[cur.Parent]
	}
	return MethodSig{}, false
}

// FindInheritedField reports whether any ancestor (strictly above ti)
// already declares a field named name — used by method-override validation
// to enforce "a field with the same name as any inherited field is a hard
// error."
func (c *Context) FindInheritedField(ti *TypeInfo, name string) (string, bool) {
	cur := ti
	for cur.Parent != "" {
		cur = c.types[cur.Parent]
		if _, ok := cur.Fields[name]; ok {
			return cur.Name, true
		}
	}
	return "", false
}

// Types returns every registered type name in declaration order (built-ins
// first, then user types as DefineType was called).
func (c *Context) Types() []string {
	return append([]string(nil), c.order...)
}
