package parse

import (
	"fmt"
	"sort"

	"github.com/dekarrin/hulkc/internal/automaton"
	"github.com/dekarrin/hulkc/internal/grammar"
	"github.com/dekarrin/hulkc/internal/util"
	"github.com/dekarrin/rosed"
)

// LRParseTable is a table of information consulted by an LR parser: a state
// plus a lookahead terminal determines either a shift, a reduce, an accept,
// or an error. Grounded on the teacher's
// internal/ictiobus/parse/lr.go#LRParseTable.
type LRParseTable interface {
	// Initial returns the parser's start state.
	Initial() string

	// Action gets the next action to take based on state i and terminal a.
	Action(i, a string) LRAction

	// Goto maps a state and a non-terminal to the state reached by reducing
	// to that non-terminal.
	Goto(state, symbol string) (string, error)

	// String renders the table for diagnostics. Two tables with the same
	// String() are considered equal.
	String() string

	// DFA returns the viable-prefix automaton the table was built from.
	DFA() automaton.DFA[util.SVSet[grammar.LR1Item]]
}

// constructLALR1ParseTable builds the LALR(1) ACTION/GOTO table for g
// (algorithm 4.59, "An easy, but space-consuming LALR table construction",
// purple dragon book, reusing algorithm 4.56's action-determination rule).
// g must not already be augmented — constructLALR1ParseTable augments it
// internally, matching the teacher's constructLALR1ParseTable.
func constructLALR1ParseTable(g grammar.Grammar) (LRParseTable, error) {
	dfa, err := buildLALR1DFA(g)
	if err != nil {
		return nil, err
	}

	table := &lalr1Table{
		gPrime:    g.Augmented(),
		gStart:    g.StartSymbol(),
		gTerms:    g.Terminals(),
		gNonTerms: g.NonTerminals(),
		dfa:       dfa,
		itemCache: map[string]grammar.LR1Item{},
	}

	for _, stateName := range table.dfa.States().Elements() {
		itemSet := table.dfa.GetValue(stateName)
		for k, v := range itemSet {
			table.itemCache[k] = v
		}
	}

	allTerms := append(append([]string(nil), table.gPrime.Terminals()...), "$")
	for _, stateName := range table.dfa.States().Elements() {
		for _, a := range allTerms {
			if _, _, err := table.computeAction(stateName, a); err != nil {
				return nil, fmt.Errorf("building ACTION table: %w", err)
			}
		}
	}

	return table, nil
}

type lalr1Table struct {
	gPrime    grammar.Grammar
	gStart    string
	gTerms    []string
	gNonTerms []string
	dfa       automaton.DFA[util.SVSet[grammar.LR1Item]]
	itemCache map[string]grammar.LR1Item
}

// computeAction implements the action-determination rule of algorithm 4.56,
// step 2(a)-(c), returning the single unconflicted action for (i, a) along
// with whether one was found at all. Returns a *ConflictError if more than
// one distinct action applies — the teacher's own version panics on this
// case (constructLALR1ParseTable) or silently keeps only the first
// (lalr1Table.Action); this instead reports it as a typed, catchable error
// at table-construction time, and Action maps it to LRError at lookup time.
func (lalr1 *lalr1Table) computeAction(i, a string) (LRAction, bool, error) {
	itemSet := lalr1.dfa.GetValue(i)

	var found []LRAction
	for itemStr := range itemSet {
		item := lalr1.itemCache[itemStr]
		A := item.NonTerminal
		alpha := item.Left
		beta := item.Right
		b := item.Lookahead

		// (a) [A -> α.aβ, b] in Iᵢ, GOTO(Iᵢ, a) = Iⱼ => shift j.
		if lalr1.gPrime.IsTerminal(a) && len(beta) > 0 && beta[0] == a {
			if j := lalr1.dfa.Next(i, a); j != "" {
				act := LRAction{Type: LRShift, State: j}
				found = appendDistinct(found, act)
			}
		}

		// (b) [A -> α., a] in Iᵢ, A != S' => reduce A -> α.
		if len(beta) == 0 && A != lalr1.gPrime.StartSymbol() && a == b {
			act := LRAction{Type: LRReduce, Symbol: A, Production: grammar.Production(alpha)}
			found = appendDistinct(found, act)
		}

		// (c) [S' -> S., $] in Iᵢ => accept.
		if a == "$" && b == "$" && A == lalr1.gPrime.StartSymbol() && len(alpha) == 1 && alpha[0] == lalr1.gStart && len(beta) == 0 {
			found = appendDistinct(found, LRAction{Type: LRAccept})
		}
	}

	if len(found) > 1 {
		return LRAction{}, false, &ConflictError{State: i, Symbol: a, Actions: found}
	}
	if len(found) == 1 {
		return found[0], true, nil
	}
	return LRAction{Type: LRError}, false, nil
}

func appendDistinct(found []LRAction, act LRAction) []LRAction {
	for _, f := range found {
		if f.Equal(act) {
			return found
		}
	}
	return append(found, act)
}

func (lalr1 *lalr1Table) Action(i, a string) LRAction {
	act, _, err := lalr1.computeAction(i, a)
	if err != nil {
		// table construction already rejects conflicting grammars; getting
		// here means the table is being queried on a state/symbol pair it
		// was never validated against (e.g. a symbol outside the grammar).
		return LRAction{Type: LRError}
	}
	return act
}

func (lalr1 *lalr1Table) Goto(state, symbol string) (string, error) {
	newState := lalr1.dfa.Next(state, symbol)
	if newState == "" {
		return "", fmt.Errorf("GOTO[%q, %q] is an error entry", state, symbol)
	}
	return newState, nil
}

func (lalr1 *lalr1Table) Initial() string {
	return lalr1.dfa.Start
}

func (lalr1 *lalr1Table) DFA() automaton.DFA[util.SVSet[grammar.LR1Item]] {
	return lalr1.dfa
}

// String renders the ACTION/GOTO table as a fixed-width grid, grounded on
// the teacher's lalr1Table.String() including its rosed-based rendering.
func (lalr1 *lalr1Table) String() string {
	stateNames := lalr1.dfa.States().Elements()
	sort.Strings(stateNames)
	for i := range stateNames {
		if stateNames[i] == lalr1.dfa.Start {
			stateNames[0], stateNames[i] = stateNames[i], stateNames[0]
			break
		}
	}

	stateRefs := map[string]string{}
	for i, s := range stateNames {
		stateRefs[s] = fmt.Sprintf("%d", i)
	}

	allTerms := append(append([]string(nil), lalr1.gTerms...), "$")

	headers := []string{"S", "|"}
	for _, t := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", t))
	}
	headers = append(headers, "|")
	for _, nt := range lalr1.gNonTerms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	for _, i := range stateNames {
		row := []string{stateRefs[i], "|"}

		for _, t := range allTerms {
			act := lalr1.Action(i, t)
			cell := ""
			switch act.Type {
			case LRAccept:
				cell = "acc"
			case LRReduce:
				cell = fmt.Sprintf("r%s -> %s", act.Symbol, act.Production.String())
			case LRShift:
				cell = fmt.Sprintf("s%s", stateRefs[act.State])
			}
			row = append(row, cell)
		}

		row = append(row, "|")
		for _, nt := range lalr1.gNonTerms {
			cell := ""
			if gotoState, err := lalr1.Goto(i, nt); err == nil {
				cell = stateRefs[gotoState]
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
