package lex

import (
	"github.com/dekarrin/hulkc/internal/automaton"
	"github.com/dekarrin/hulkc/internal/util"
)

// Snapshot is a flattened, rezi-serializable view of a compiled Lexer: one
// DFASnapshot per start state plus the rule/class tables needed to run
// scanner.Next against it. Rebuilding from a Snapshot (FromSnapshot) skips
// every compiledState's regex.Parse -> Thompson construction -> subset
// construction chain, which is the expensive part internal/tablecache
// exists to let a repeat compilation skip.
type Snapshot struct {
	StartState string
	States     map[string]DFASnapshot
	Rules      map[string][]Rule
	Classes    map[string]map[string]TokenClassDTO
}

// DFASnapshot flattens one compiledState's merged DFA.
type DFASnapshot struct {
	Start       string
	States      []string
	Accepting   map[string]bool
	Transitions []TransitionDTO
	Values      map[string][]string // state -> live rule-index keys (an SVSet[string]'s Elements())
}

// TransitionDTO is one DFA edge.
type TransitionDTO struct {
	From  string
	Input string
	To    string
}

// TokenClassDTO is TokenClass's serializable shape; TokenClass itself has
// only unexported fields so rezi has nothing to walk without it.
type TokenClassDTO struct {
	ID    string
	Human string
}

// Snapshot captures lx as a Snapshot for caching.
func (lx *Lexer) Snapshot() Snapshot {
	snap := Snapshot{
		StartState: lx.startState,
		States:     map[string]DFASnapshot{},
		Rules:      map[string][]Rule{},
		Classes:    map[string]map[string]TokenClassDTO{},
	}
	for state, cs := range lx.states {
		dfaSnap := DFASnapshot{
			Start:     cs.dfa.Start,
			Accepting: map[string]bool{},
			Values:    map[string][]string{},
		}
		stateNames := cs.dfa.States().Elements()
		dfaSnap.States = stateNames
		for _, s := range stateNames {
			if cs.dfa.IsAccepting(s) {
				dfaSnap.Accepting[s] = true
				dfaSnap.Values[s] = cs.dfa.GetValue(s).Elements()
			}
			for _, tr := range cs.dfa.Transitions(s) {
				dfaSnap.Transitions = append(dfaSnap.Transitions, TransitionDTO{
					From: s, Input: tr.Input, To: tr.Next,
				})
			}
		}
		snap.States[state] = dfaSnap
		snap.Rules[state] = cs.rules
	}
	for state, classes := range lx.classes {
		m := map[string]TokenClassDTO{}
		for id, cl := range classes {
			m[id] = TokenClassDTO{ID: cl.ID(), Human: cl.Human()}
		}
		snap.Classes[state] = m
	}
	return snap
}

// FromSnapshot rebuilds a *Lexer from a previously captured Snapshot, with
// no pattern parsing or automaton construction involved.
func FromSnapshot(snap Snapshot) *Lexer {
	lx := &Lexer{
		startState: snap.StartState,
		states:     map[string]*compiledState{},
		classes:    map[string]map[string]TokenClass{},
	}
	for state, dfaSnap := range snap.States {
		dfa := automaton.NewDFA[util.SVSet[string]]()
		for _, s := range dfaSnap.States {
			dfa.AddState(s, dfaSnap.Accepting[s])
		}
		dfa.Start = dfaSnap.Start
		for _, tr := range dfaSnap.Transitions {
			dfa.AddTransition(tr.From, tr.Input, tr.To)
		}
		for s, keys := range dfaSnap.Values {
			sv := util.NewSVSet[string]()
			for _, k := range keys {
				sv.Set(k, k)
			}
			dfa.SetValue(s, sv)
		}
		lx.states[state] = &compiledState{dfa: *dfa, rules: snap.Rules[state]}
	}
	for state, classes := range snap.Classes {
		m := map[string]TokenClass{}
		for id, dto := range classes {
			m[id] = NewTokenClass(dto.ID, dto.Human)
		}
		lx.classes[state] = m
	}
	return lx
}
