package grammar

import (
	"testing"

	"github.com/dekarrin/hulkc/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singletonLR0Set(item LR0Item) util.SVSet[LR0Item] {
	s := util.NewSVSet[LR0Item]()
	s.Set(item.String(), item)
	return s
}

// classic purple-dragon-book expression grammar:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
func exprGrammar(t *testing.T) *Grammar {
	t.Helper()
	g := New()
	g.AddTerm("+", "+")
	g.AddTerm("*", "*")
	g.AddTerm("(", "(")
	g.AddTerm(")", ")")
	g.AddTerm("id", "identifier")

	g.AddRule("E", "E", "+", "T")
	g.AddRule("E", "T")
	g.AddRule("T", "T", "*", "F")
	g.AddRule("T", "F")
	g.AddRule("F", "(", "E", ")")
	g.AddRule("F", "id")
	g.SetStart("E")

	require.NoError(t, g.Validate())
	return g
}

func TestGrammar_StartSymbol(t *testing.T) {
	g := exprGrammar(t)
	assert.Equal(t, "E", g.StartSymbol())
}

func TestGrammar_First(t *testing.T) {
	g := exprGrammar(t)
	for _, nt := range []string{"E", "T", "F"} {
		first := g.First(nt)
		assert.True(t, first.Has("("), "FIRST(%s) should contain (", nt)
		assert.True(t, first.Has("id"), "FIRST(%s) should contain id", nt)
		assert.False(t, first.Has(""), "FIRST(%s) should not be nullable", nt)
	}
}

func TestGrammar_Augmented(t *testing.T) {
	g := exprGrammar(t)
	ag := g.Augmented()
	assert.Equal(t, "E-P", ag.StartSymbol())
	assert.Equal(t, "E", g.StartSymbol(), "Augmented must not mutate the receiver")
	prods := ag.Rules["E-P"]
	require.Len(t, prods, 1)
	assert.Equal(t, Production{"E"}, prods[0])
}

func TestGrammar_LR0Closure_IncludesAllExpansions(t *testing.T) {
	g := exprGrammar(t).Augmented()
	start := LR0Item{NonTerminal: "E-P", Right: []string{"E"}}
	I := singletonLR0Set(start)
	closure := g.LR0_CLOSURE(I)

	// closure of [E' -> .E] must include E's own productions and every
	// nested expansion down to F's productions.
	assert.True(t, closure.Has(LR0Item{NonTerminal: "E", Right: []string{"E", "+", "T"}}.String()))
	assert.True(t, closure.Has(LR0Item{NonTerminal: "T", Right: []string{"F"}}.String()))
	assert.True(t, closure.Has(LR0Item{NonTerminal: "F", Right: []string{"(", "E", ")"}}.String()))
	assert.True(t, closure.Has(LR0Item{NonTerminal: "F", Right: []string{"id"}}.String()))
}

func TestGrammar_LR0Goto_OnTerminal(t *testing.T) {
	g := exprGrammar(t).Augmented()
	start := LR0Item{NonTerminal: "E-P", Right: []string{"E"}}
	I0 := g.LR0_CLOSURE(singletonLR0Set(start))

	onID := g.LR0_GOTO(I0, "id")
	assert.False(t, onID.Empty())
	assert.True(t, onID.Has(LR0Item{NonTerminal: "F", Left: []string{"id"}}.String()))

	onPlus := g.LR0_GOTO(I0, "+")
	assert.True(t, onPlus.Empty(), "no item in I0 has + immediately after the dot")
}

func TestGrammar_CanonicalLR0Items_IsNonEmptyAndDeterministic(t *testing.T) {
	g := exprGrammar(t).Augmented()
	items := g.CanonicalLR0Items()
	assert.True(t, items.Len() > 1)

	items2 := g.CanonicalLR0Items()
	assert.Equal(t, items.Len(), items2.Len())
}

func TestGrammar_GenerateUniqueTerminal_AvoidsCollision(t *testing.T) {
	g := exprGrammar(t)
	name := g.GenerateUniqueTerminal("id")
	assert.NotEqual(t, "id", name)
	assert.False(t, g.IsTerminal(name))
	assert.False(t, g.IsNonTerminal(name))
}

func TestGrammar_Validate_RejectsUndefinedSymbol(t *testing.T) {
	g := New()
	g.AddTerm("a", "a")
	g.AddRule("S", "a", "Unknown")
	g.SetStart("S")
	assert.Error(t, g.Validate())
}
