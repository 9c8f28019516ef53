package htypes

import (
	"testing"

	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builds: Object -> A -> B, Object -> C
func lattice(t *testing.T) *Context {
	t.Helper()
	c := NewContext()

	a, err := c.DefineType("A", diagPos())
	require.NoError(t, err)
	require.NoError(t, c.SetParent(a, ""))

	b, err := c.DefineType("B", diagPos())
	require.NoError(t, err)
	require.NoError(t, c.SetParent(b, "A"))

	cc, err := c.DefineType("C", diagPos())
	require.NoError(t, err)
	require.NoError(t, c.SetParent(cc, ""))

	require.NoError(t, c.BuildLCA())
	return c
}

func TestContext_Builtins_Registered(t *testing.T) {
	c := NewContext()
	for _, name := range []string{"Number", "String", "Boolean", "Object"} {
		ti, ok := c.Lookup(name)
		require.True(t, ok)
		assert.True(t, ti.Builtin)
	}
}

func TestContext_DefineType_RejectsDuplicate(t *testing.T) {
	c := NewContext()
	_, err := c.DefineType("A", diagPos())
	require.NoError(t, err)
	_, err = c.DefineType("A", diagPos())
	assert.Error(t, err)
}

func TestContext_SetParent_DefaultsToObject(t *testing.T) {
	c := NewContext()
	a, _ := c.DefineType("A", diagPos())
	require.NoError(t, c.SetParent(a, ""))
	assert.Equal(t, "Object", a.Parent)
}

func TestContext_SetParent_RejectsNonObjectBuiltin(t *testing.T) {
	c := NewContext()
	a, _ := c.DefineType("A", diagPos())
	assert.Error(t, c.SetParent(a, "Number"))
}

func TestContext_SetParent_RejectsUndeclared(t *testing.T) {
	c := NewContext()
	a, _ := c.DefineType("A", diagPos())
	assert.Error(t, c.SetParent(a, "Ghost"))
}

func TestContext_Conforms_DirectLineage(t *testing.T) {
	c := lattice(t)
	assert.True(t, c.Conforms(User("B"), User("A")))
	assert.True(t, c.Conforms(User("B"), Object()))
	assert.False(t, c.Conforms(User("A"), User("B")))
	assert.False(t, c.Conforms(User("C"), User("A")))
}

func TestContext_CommonSupertype_SiblingsMeetAtObject(t *testing.T) {
	c := lattice(t)
	cs := c.CommonSupertype(User("B"), User("C"))
	assert.Equal(t, Object(), cs)
}

func TestContext_CommonSupertype_LineageMeetsAtParent(t *testing.T) {
	c := lattice(t)
	cs := c.CommonSupertype(User("B"), User("A"))
	assert.Equal(t, User("A"), cs)
}

func TestContext_Conforms_PrimitivesOnlySelf(t *testing.T) {
	c := NewContext()
	require.NoError(t, c.BuildLCA())
	assert.True(t, c.Conforms(Number(), Number()))
	assert.False(t, c.Conforms(Number(), String()))
}

func TestContext_Conforms_IterableIsCovariant(t *testing.T) {
	c := lattice(t)
	assert.True(t, c.Conforms(Iterable(User("B")), Iterable(User("A"))))
	assert.False(t, c.Conforms(Iterable(User("A")), Iterable(User("B"))))
}

func TestContext_ResolveMethod_WalksHierarchy(t *testing.T) {
	c := lattice(t)
	a, _ := c.Lookup("A")
	require.NoError(t, c.AddMethod(a, MethodSig{Name: "greet", Return: String()}))

	b, _ := c.Lookup("B")
	m, ok := c.ResolveMethod(b, "greet")
	require.True(t, ok)
	assert.Equal(t, "A", m.DeclaringType)
}

func TestContext_FindInheritedField_DetectsShadow(t *testing.T) {
	c := lattice(t)
	a, _ := c.Lookup("A")
	require.NoError(t, c.AddField(a, MemberDef{Name: "x", Type: Number()}))

	b, _ := c.Lookup("B")
	owner, found := c.FindInheritedField(b, "x")
	assert.True(t, found)
	assert.Equal(t, "A", owner)
}

func TestScope_ClosedFrameHidesOuterLocals(t *testing.T) {
	s := NewScope()
	s.Bind(Binding{Name: "outer", Type: Number()})

	s.PushClosed()
	_, found := s.Lookup("outer")
	assert.False(t, found)
	s.Pop()

	_, found = s.Lookup("outer")
	assert.True(t, found)
}

func TestScope_OpenFrameSeesOuterLocals(t *testing.T) {
	s := NewScope()
	s.Bind(Binding{Name: "outer", Type: Number()})

	s.PushOpen()
	b, found := s.Lookup("outer")
	assert.True(t, found)
	assert.Equal(t, Number(), b.Type)
}

func TestScope_ConstBindingIsFlagged(t *testing.T) {
	s := NewScope()
	s.Bind(Binding{Name: "self", Type: User("A"), Const: true})
	b, _ := s.Lookup("self")
	assert.True(t, b.Const)
}

func diagPos() diag.Position {
	return diag.Position{}
}
