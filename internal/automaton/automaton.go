// Package automaton implements generic finite automata: an NFA[E] with
// epsilon transitions and Thompson-style join operations, and a DFA[E]
// produced either by direct conversion or by subset construction. E is the
// value attached to each state; the regex engine uses it to carry nothing
// meaningful (states are structural), while the LALR table builder uses it
// to carry LR(0)/LR(1) items, so that a DFA state value is the item set the
// state represents.
//
// This is the piece of ictiobus-the-teacher that both the lexer and the
// parser-table builder lean on: one automaton engine, two very different
// consumers.
package automaton

import (
	"fmt"
)

// FATransition is a single labeled edge. An empty input denotes an epsilon
// move.
type FATransition struct {
	Input string
	Next  string
}

func (t FATransition) String() string {
	in := t.Input
	if in == "" {
		in = "ε"
	}
	return fmt.Sprintf("=(%s)=> %s", in, t.Next)
}

// Epsilon is the label used for epsilon transitions throughout this package.
const Epsilon = ""
