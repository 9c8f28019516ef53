package lex

import (
	"fmt"
	"strconv"

	"github.com/dekarrin/hulkc/internal/automaton"
	"github.com/dekarrin/hulkc/internal/regex"
	"github.com/dekarrin/hulkc/internal/util"
)

// compiledState is one lexer start-state's merged automaton: every rule
// registered for that state, Thompson-compiled and unioned into a single
// NFA whose accept states carry their originating rule's index as a
// string-encoded value (automaton.NFA's generic value slot is typed by
// whatever internal/regex.Compile fixed it at, which is string), then
// subset-constructed into a DFA. A DFA state accepts if any live NFA state
// does, and util.SVSet[string] records exactly which ones, letting Next
// resolve a priority tie the same way the teacher's selectMatch does: among
// rules live at the furthest-reached accepting state, the lowest rule
// index — i.e. the first one the caller registered — wins.
type compiledState struct {
	dfa   automaton.DFA[util.SVSet[string]]
	rules []Rule
}

// compile merges rules (all belonging to one lexer state, in registration
// order) into a compiledState. An empty rule list compiles to an empty
// automaton that never accepts, which Next reports as an immediate error.
func compile(rules []Rule) (*compiledState, error) {
	if len(rules) == 0 {
		return &compiledState{rules: rules}, nil
	}

	hub := automaton.NewNFA[string]()
	hub.AddState("hub0", false)
	hub.Start = "hub0"

	joined := hub
	counter := 1
	for i, r := range rules {
		ast, err := regex.Parse(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, r.Pattern, err)
		}
		frag, next := regex.CompileFrom(ast, counter)
		counter = next

		accepts := frag.AcceptingStates().Elements()
		if len(accepts) != 1 {
			return nil, fmt.Errorf("rule %d (%q): expected exactly one accept state from Thompson construction, got %d", i, r.Pattern, len(accepts))
		}
		frag.SetValue(accepts[0], strconv.Itoa(i))

		joined, err = joined.Join(frag, [][3]string{{"hub0", automaton.Epsilon, frag.Start}}, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, r.Pattern, err)
		}
	}

	return &compiledState{dfa: joined.ToDFA(), rules: rules}, nil
}

// winningRule picks, among the rule indices live at an accepting DFA state,
// the one with the lowest index: GNU-lex-style "first rule defined wins a
// tie" (teacher's lazy.go selectMatch applies the same rule after its own
// longest-match elimination step — ties there are length ties, ties here
// never need a length comparison because DFA state identity already IS the
// longest match reached).
func (cs *compiledState) winningRule(value util.SVSet[string]) (int, bool) {
	best := -1
	for _, k := range value.Elements() {
		s := value.Get(k)
		if s == "" {
			continue
		}
		idx, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	return best, best != -1
}
