// Package grammar models a context-free grammar over string-named symbols
// (terminals registered with AddTerm, non-terminals implied by the left
// side of AddRule), and the LR(0)/LR(1) closure and GOTO operations
// internal/parse needs to build an LALR(1) parse table from it.
//
// This completes internal/ictiobus/grammar in the teacher: the pack's
// retrieval only carried item.go (LR0Item/LR1Item) — the Grammar type every
// parse-table builder in the teacher's parse package calls
// (AddTerm/AddRule/Terminals/NonTerminals/StartSymbol/Augmented/FIRST/
// LR0_CLOSURE/LR0_GOTO/LR1_CLOSURE/LR1_GOTO/CanonicalLR0Items/Term/
// IsTerminal/GenerateUniqueTerminal) was not retrieved. Its shape here is
// reconstructed from those call sites plus the purple dragon book
// algorithms the teacher's comments cite by number (2.5 FIRST, 4.53/4.54
// CLOSURE/GOTO, 4.56 canonical collection).
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/hulkc/internal/util"
)

// Production is the right-hand side of a rule: a sequence of symbols, or
// empty for an epsilon production.
type Production []string

func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	return strings.Join(p, " ")
}

func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		return false
	}
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// TermClass is a terminal's registered identity: its grammar symbol and a
// human-readable name for diagnostics ("NUMBER", "end of input", ...).
type TermClass struct {
	id    string
	human string
}

func (t TermClass) ID() string    { return t.id }
func (t TermClass) Human() string { return t.human }

// Grammar is a context-free grammar: terminals registered by AddTerm,
// productions registered by AddRule under a non-terminal name. The first
// non-terminal added via AddRule becomes the start symbol unless SetStart
// overrides it.
type Grammar struct {
	Rules     map[string][]Production
	order     []string
	terms     map[string]TermClass
	termOrder []string
	start     string

	firstSets map[string]util.StringSet
}

func New() *Grammar {
	return &Grammar{
		Rules: map[string][]Production{},
		terms: map[string]TermClass{},
	}
}

func (g *Grammar) AddTerm(id, human string) {
	if _, ok := g.terms[id]; !ok {
		g.termOrder = append(g.termOrder, id)
	}
	g.terms[id] = TermClass{id: id, human: human}
}

// AddRule registers one alternative production for nonTerm. Call it once
// per alternative; an empty symbols list registers an epsilon production.
func (g *Grammar) AddRule(nonTerm string, symbols ...string) {
	if _, ok := g.Rules[nonTerm]; !ok {
		g.order = append(g.order, nonTerm)
	}
	if g.start == "" {
		g.start = nonTerm
	}
	g.Rules[nonTerm] = append(g.Rules[nonTerm], Production(append([]string(nil), symbols...)))
}

func (g *Grammar) SetStart(nonTerm string) { g.start = nonTerm }

func (g Grammar) StartSymbol() string { return g.start }

func (g Grammar) Terminals() []string {
	return append([]string(nil), g.termOrder...)
}

func (g Grammar) NonTerminals() []string {
	return append([]string(nil), g.order...)
}

func (g Grammar) Term(id string) TermClass { return g.terms[id] }

func (g Grammar) IsTerminal(sym string) bool {
	_, ok := g.terms[sym]
	return ok
}

func (g Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.Rules[sym]
	return ok
}

// GenerateUniqueTerminal returns a symbol starting with prefix that names
// neither a registered terminal nor non-terminal, used to stand in for "any
// symbol outside this grammar" in the LALR(1) lookahead-propagation
// algorithm.
func (g Grammar) GenerateUniqueTerminal(prefix string) string {
	name := prefix
	for g.IsTerminal(name) || g.IsNonTerminal(name) {
		name = name + "'"
	}
	return name
}

// Validate checks that every non-terminal referenced in a production has at
// least one production of its own, that a start symbol is set, and
// computes FIRST sets for use by LR1_CLOSURE.
func (g *Grammar) Validate() error {
	if g.start == "" {
		return fmt.Errorf("grammar has no start symbol")
	}
	if _, ok := g.Rules[g.start]; !ok {
		return fmt.Errorf("start symbol %q has no productions", g.start)
	}
	for nt, prods := range g.Rules {
		for _, prod := range prods {
			for _, sym := range prod {
				if !g.IsTerminal(sym) && !g.IsNonTerminal(sym) {
					return fmt.Errorf("production %s -> %s references undefined symbol %q", nt, prod.String(), sym)
				}
			}
		}
	}
	g.computeFirstSets()
	return nil
}

// Augmented returns a copy of g with a fresh start production S' -> S
// added, where S' is g's start symbol name with "-P" appended (so "S"
// becomes "S-P", matching the convention the teacher's parse package tests
// assert against literally, e.g. "S-P -> . S").
func (g Grammar) Augmented() Grammar {
	ag := g.copy()
	newStart := g.start + "-P"
	ag.Rules[newStart] = []Production{{g.start}}
	ag.order = append([]string{newStart}, ag.order...)
	ag.start = newStart
	if ag.firstSets != nil {
		ag.firstSets[newStart] = ag.firstSets[g.start].Copy().(util.StringSet)
	}
	return ag
}

func (g Grammar) copy() Grammar {
	cp := Grammar{
		Rules: map[string][]Production{},
		terms: map[string]TermClass{},
		start: g.start,
	}
	for nt, prods := range g.Rules {
		cp.Rules[nt] = append([]Production(nil), prods...)
	}
	cp.order = append([]string(nil), g.order...)
	for id, t := range g.terms {
		cp.terms[id] = t
	}
	cp.termOrder = append([]string(nil), g.termOrder...)
	if g.firstSets != nil {
		cp.firstSets = map[string]util.StringSet{}
		for k, v := range g.firstSets {
			cp.firstSets[k] = v.Copy().(util.StringSet)
		}
	}
	return cp
}

// allSymbols returns every terminal and non-terminal, used to enumerate
// GOTO(I, X) candidates while building the canonical collection.
func (g Grammar) allSymbols() []string {
	syms := make([]string, 0, len(g.termOrder)+len(g.order))
	syms = append(syms, g.termOrder...)
	syms = append(syms, g.order...)
	return syms
}

// computeFirstSets runs the standard fixed-point FIRST-set computation
// (purple dragon book algorithm 2.5, generalized to non-LL grammars): every
// terminal's FIRST is itself; a non-terminal's FIRST accumulates the FIRST
// of the first symbol of each of its productions, continuing past symbols
// that can derive epsilon, with epsilon itself (represented by "") added to the
// non-terminal's FIRST if every symbol in some production is nullable.
func (g *Grammar) computeFirstSets() {
	first := map[string]util.StringSet{}
	for _, t := range g.termOrder {
		first[t] = util.StringSetOf([]string{t})
	}
	for _, nt := range g.order {
		first[nt] = util.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.order {
			for _, prod := range g.Rules[nt] {
				if len(prod) == 0 {
					if !first[nt].Has("") {
						first[nt].Add("")
						changed = true
					}
					continue
				}
				nullablePrefix := true
				for _, sym := range prod {
					symFirst := first[sym]
					for _, t := range symFirst.Elements() {
						if t != "" && !first[nt].Has(t) {
							first[nt].Add(t)
							changed = true
						}
					}
					if !symFirst.Has("") {
						nullablePrefix = false
						break
					}
				}
				if nullablePrefix && !first[nt].Has("") {
					first[nt].Add("")
					changed = true
				}
			}
		}
	}
	g.firstSets = first
}

// First returns FIRST(sym), including "" if sym is nullable.
func (g Grammar) First(sym string) util.StringSet {
	if f, ok := g.firstSets[sym]; ok {
		return f
	}
	return util.NewStringSet()
}

// FirstOfSequence returns FIRST(seq), the set of terminals (and possibly
// epsilon) that can begin the string seq, used by LR1_CLOSURE to compute
// the lookahead set FIRST(βa) for [A -> α.Bβ, a].
func (g Grammar) FirstOfSequence(seq []string) util.StringSet {
	result := util.NewStringSet()
	nullable := true
	for _, sym := range seq {
		symFirst := g.First(sym)
		for _, t := range symFirst.Elements() {
			if t != "" {
				result.Add(t)
			}
		}
		if !symFirst.Has("") {
			nullable = false
			break
		}
	}
	if nullable {
		result.Add("")
	}
	return result
}
