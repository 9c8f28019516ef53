package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/hulkc/internal/automaton"
	"github.com/dekarrin/hulkc/internal/grammar"
	"github.com/dekarrin/hulkc/internal/util"
)

// TableSnapshot is a flattened, rezi-serializable view of an LRParseTable:
// every ACTION/GOTO cell enumerated as plain data instead of the live
// lalr1Table's DFA-and-item-cache representation. Rebuilding a table from a
// snapshot (FromSnapshot) skips the LALR(1) kernel construction and
// lookahead propagation that built it in the first place, which is the
// whole point of internal/tablecache.
type TableSnapshot struct {
	Start      string
	Terminals  []string
	NonTerms   []string
	States     []string
	Actions    []ActionEntry
	Gotos      []GotoEntry
	Rendered   string
}

// ActionEntry is one non-error ACTION[state, symbol] cell. Error cells are
// not stored; FromSnapshot's cachedTable treats any missing entry as
// LRError, matching lalr1Table.Action's own behavior for unrecognized pairs.
type ActionEntry struct {
	State      string
	Symbol     string
	Type       LRActionType
	ShiftState string
	RedSymbol  string
	RedProd    grammar.Production
}

// GotoEntry is one GOTO[state, nonterminal] cell.
type GotoEntry struct {
	State  string
	Symbol string
	Next   string
}

// Snapshot flattens table into a TableSnapshot. table must have been built
// by constructLALR1ParseTable (the only current implementation of
// LRParseTable) or Snapshot returns an incomplete snapshot missing the
// State/Terminal/NonTerm enumeration it needs internal state for.
func Snapshot(table LRParseTable) TableSnapshot {
	lalr1, ok := table.(*lalr1Table)
	if !ok {
		return TableSnapshot{Start: table.Initial(), Rendered: table.String()}
	}

	snap := TableSnapshot{
		Start:     lalr1.dfa.Start,
		Terminals: append([]string(nil), lalr1.gTerms...),
		NonTerms:  append([]string(nil), lalr1.gNonTerms...),
		States:    lalr1.dfa.States().Elements(),
		Rendered:  table.String(),
	}
	sort.Strings(snap.States)

	allTerms := append(append([]string(nil), lalr1.gTerms...), "$")
	for _, s := range snap.States {
		for _, t := range allTerms {
			act := lalr1.Action(s, t)
			if act.Type == LRError {
				continue
			}
			snap.Actions = append(snap.Actions, ActionEntry{
				State: s, Symbol: t, Type: act.Type,
				ShiftState: act.State, RedSymbol: act.Symbol, RedProd: act.Production,
			})
		}
		for _, nt := range lalr1.gNonTerms {
			if next, err := lalr1.Goto(s, nt); err == nil {
				snap.Gotos = append(snap.Gotos, GotoEntry{State: s, Symbol: nt, Next: next})
			}
		}
	}
	return snap
}

// cachedTable is an LRParseTable rebuilt from a TableSnapshot: a flat
// map-backed lookup instead of the item-set computation lalr1Table.Action
// performs on every call. Its DFA() only reconstructs the state/transition
// shape (shift and goto edges); no caller in this module inspects a
// cache-rebuilt table's per-state LR1Item values, only Action/Goto/
// Initial/String, so the snapshot never needs to carry them.
type cachedTable struct {
	start    string
	terms    []string
	nonTerms []string
	states   []string
	actions  map[[2]string]LRAction
	gotos    map[[2]string]string
	rendered string
}

// FromSnapshot rebuilds an LRParseTable from a previously captured
// TableSnapshot, with no automaton or grammar reconstruction involved.
func FromSnapshot(snap TableSnapshot) LRParseTable {
	ct := &cachedTable{
		start:    snap.Start,
		terms:    snap.Terminals,
		nonTerms: snap.NonTerms,
		states:   snap.States,
		actions:  map[[2]string]LRAction{},
		gotos:    map[[2]string]string{},
		rendered: snap.Rendered,
	}
	for _, e := range snap.Actions {
		ct.actions[[2]string{e.State, e.Symbol}] = LRAction{
			Type: e.Type, State: e.ShiftState, Symbol: e.RedSymbol, Production: e.RedProd,
		}
	}
	for _, e := range snap.Gotos {
		ct.gotos[[2]string{e.State, e.Symbol}] = e.Next
	}
	return ct
}

func (ct *cachedTable) Initial() string { return ct.start }

func (ct *cachedTable) Action(i, a string) LRAction {
	if act, ok := ct.actions[[2]string{i, a}]; ok {
		return act
	}
	return LRAction{Type: LRError}
}

func (ct *cachedTable) Goto(state, symbol string) (string, error) {
	if next, ok := ct.gotos[[2]string{state, symbol}]; ok {
		return next, nil
	}
	return "", fmt.Errorf("GOTO[%q, %q] is an error entry", state, symbol)
}

func (ct *cachedTable) String() string { return ct.rendered }

func (ct *cachedTable) DFA() automaton.DFA[util.SVSet[grammar.LR1Item]] {
	dfa := automaton.NewDFA[util.SVSet[grammar.LR1Item]]()
	for _, s := range ct.states {
		dfa.AddState(s, false)
	}
	dfa.Start = ct.start
	for k, act := range ct.actions {
		if act.Type == LRShift {
			dfa.AddTransition(k[0], k[1], act.State)
		}
	}
	for k, next := range ct.gotos {
		dfa.AddTransition(k[0], k[1], next)
	}
	return *dfa
}
