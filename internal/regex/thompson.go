package regex

import (
	"fmt"

	"github.com/dekarrin/hulkc/internal/automaton"
)

// Compile turns a regex AST into an NFA via Thompson's construction
// (McNaughton-Yamada-Thompson, purple dragon book algorithm 3.23): every
// node becomes a fragment with exactly one start and one accept state,
// fragments are spliced together with epsilon transitions, and the whole
// tree collapses to a single fragment whose accept state is tagged
// accepting.
//
// This completes what the teacher's lex/regex.go left as a deliberate stub
// ("TODO: fill this all in when we want to return to DFA-based impl") —
// the builder helpers below for literal/set, concat, union and star follow
// the exact shapes createSingleSymbolFA/createJuxtapositionFA/
// createAlternationFA/createKleeneStarFA sketch there (buildOptional adds
// a fifth for A?), generalized from
// single-symbol atoms to byte-range sets and given a working fresh-state
// counter instead of the placeholder two-letter names.
type builder struct {
	next int
}

func (b *builder) fresh() string {
	b.next++
	return fmt.Sprintf("s%d", b.next)
}

// Compile returns an NFA over a byte alphabet: every transition label is a
// single-byte string.
func Compile(n *AST) *automaton.NFA[string] {
	nfa, _ := CompileFrom(n, 0)
	return nfa
}

// CompileFrom is Compile with its fresh-state counter seeded at start,
// returning the counter's final value, which is the number in the highest
// state name it used; passing that value as the next call's start never
// reuses a name. A lexer
// composing many rules into one merged automaton (internal/lex) calls this
// once per rule, threading the counter through, so no two rules' fragments
// can ever collide on a state name and trigger automaton.NFA.Join's "1:"
// disambiguation path.
func CompileFrom(n *AST, start int) (*automaton.NFA[string], int) {
	b := &builder{next: start}
	nfa, startState, accept := b.build(n)
	nfa.Start = startState
	markAccepting(nfa, accept)
	return nfa, b.next
}

func markAccepting(nfa *automaton.NFA[string], accept string) {
	// The fragment's accept state was added with accepting=false when it
	// was built; flip it now that we know this fragment is the whole
	// tree's final accept state (sub-fragments must NOT be accepting once
	// spliced, or epsilon-closure-based acceptance would trigger early).
	nfa.SetAccepting(accept, true)
}

// build returns the fragment automaton along with its single start and
// single accept state name. Every returned fragment has exactly one
// accept state, matching the one-in/one-out discipline Thompson
// construction depends on.
func (b *builder) build(n *AST) (*automaton.NFA[string], string, string) {
	switch n.Kind {
	case NodeLiteral:
		return b.buildSet(func(byt byte) bool { return byt == n.Byte })
	case NodeSet:
		if n.Dot {
			return b.buildSet(func(byt byte) bool { return byt != '\n' })
		}
		return b.buildSet(n.matchesByte)
	case NodeConcat:
		return b.buildConcat(n.Left, n.Right)
	case NodeUnion:
		return b.buildUnion(n.Left, n.Right)
	case NodeStar:
		return b.buildStar(n.Sub)
	case NodePlus:
		// A+ == A A*
		plusNode := &AST{Kind: NodeConcat, Left: n.Sub, Right: &AST{Kind: NodeStar, Sub: n.Sub}}
		return b.buildConcat(plusNode.Left, plusNode.Right)
	case NodeOptional:
		return b.buildOptional(n.Sub)
	}
	panic("unhandled regex AST kind")
}

// buildSet constructs the two-state fragment for a literal or a character
// set: one transition per matching byte value, fanning out from start to
// accept, exactly as spec §4.1 describes ("two fresh states joined by the
// symbol, or by each member of the set, fanning out from start").
func (b *builder) buildSet(matches func(byte) bool) (*automaton.NFA[string], string, string) {
	nfa := automaton.NewNFA[string]()
	start, accept := b.fresh(), b.fresh()
	nfa.AddState(start, false)
	nfa.AddState(accept, false)
	nfa.Start = start
	for v := 0; v < 256; v++ {
		if matches(byte(v)) {
			nfa.AddTransition(start, string([]byte{byte(v)}), accept)
		}
	}
	return nfa, start, accept
}

func (b *builder) buildConcat(left, right *AST) (*automaton.NFA[string], string, string) {
	lNFA, lStart, lAccept := b.build(left)
	rNFA, rStart, rAccept := b.build(right)

	joined, err := lNFA.Join(rNFA, [][3]string{{lAccept, automaton.Epsilon, rStart}}, nil, nil, nil)
	if err != nil {
		panic(err)
	}
	joined.Start = lStart
	return joined, lStart, disambiguate(lNFA, rAccept)
}

func (b *builder) buildUnion(left, right *AST) (*automaton.NFA[string], string, string) {
	lNFA, lStart, lAccept := b.build(left)
	rNFA, rStart, rAccept := b.build(right)

	start, accept := b.fresh(), b.fresh()
	hub := automaton.NewNFA[string]()
	hub.AddState(start, false)
	hub.AddState(accept, false)
	hub.Start = start

	joined, err := hub.Join(lNFA, [][3]string{{start, automaton.Epsilon, lStart}}, [][3]string{{lAccept, automaton.Epsilon, accept}}, nil, nil)
	if err != nil {
		panic(err)
	}
	joined, err = joined.Join(rNFA, [][3]string{{start, automaton.Epsilon, rStart}}, [][3]string{{disambiguate(hub, rAccept), automaton.Epsilon, accept}}, nil, nil)
	if err != nil {
		panic(err)
	}
	return joined, start, accept
}

func (b *builder) buildStar(sub *AST) (*automaton.NFA[string], string, string) {
	subNFA, subStart, subAccept := b.build(sub)

	start, accept := b.fresh(), b.fresh()
	hub := automaton.NewNFA[string]()
	hub.AddState(start, false)
	hub.AddState(accept, false)
	hub.Start = start
	hub.AddTransition(start, automaton.Epsilon, accept)

	joined, err := hub.Join(subNFA,
		[][3]string{{start, automaton.Epsilon, subStart}},
		[][3]string{{subAccept, automaton.Epsilon, accept}, {subAccept, automaton.Epsilon, subStart}},
		nil, nil)
	if err != nil {
		panic(err)
	}
	return joined, start, accept
}

func (b *builder) buildOptional(sub *AST) (*automaton.NFA[string], string, string) {
	subNFA, subStart, subAccept := b.build(sub)
	subNFA.AddTransition(subStart, automaton.Epsilon, subAccept)
	return subNFA, subStart, subAccept
}

// disambiguate mirrors Join's own collision-renaming rule (a state name
// already present on the left side gets a "1:" prefix on the right), so
// callers that need the *post-join* name of a right-hand-side state can
// compute it without re-deriving Join's internals.
func disambiguate(left *automaton.NFA[string], name string) string {
	if left.States().Has(name) {
		return "1:" + name
	}
	return name
}
