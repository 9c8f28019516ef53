package automaton

import (
	"sort"
	"strings"

	"github.com/dekarrin/hulkc/internal/util"
)

// NFAState is one state of an NFA[E]: its attached value, whether it
// accepts, and its outgoing transitions (a symbol may fan out to more than
// one destination, which is exactly what makes it non-deterministic).
type NFAState[E any] struct {
	Name        string
	Value       E
	Accepting   bool
	Transitions map[string][]FATransition
}

func (st NFAState[E]) Copy() NFAState[E] {
	cp := NFAState[E]{Name: st.Name, Value: st.Value, Accepting: st.Accepting, Transitions: map[string][]FATransition{}}
	for k, v := range st.Transitions {
		cp.Transitions[k] = append([]FATransition(nil), v...)
	}
	return cp
}

// NFA is a nondeterministic finite automaton over E-valued states.
type NFA[E any] struct {
	states map[string]NFAState[E]
	Start  string
	order  int
}

func NewNFA[E any]() *NFA[E] {
	return &NFA[E]{states: map[string]NFAState[E]{}}
}

func (nfa *NFA[E]) AddState(name string, accepting bool) {
	if nfa.states == nil {
		nfa.states = map[string]NFAState[E]{}
	}
	if _, ok := nfa.states[name]; ok {
		return
	}
	nfa.states[name] = NFAState[E]{Name: name, Accepting: accepting, Transitions: map[string][]FATransition{}}
}

// SetAccepting flips the accepting flag of an existing state. Unlike
// AddState, which no-ops on an already-present name, this always applies —
// needed by Thompson construction, where a fragment's accept state is
// created non-accepting and only promoted once it's known to be the whole
// tree's final accept state.
func (nfa *NFA[E]) SetAccepting(name string, accepting bool) {
	st, ok := nfa.states[name]
	if !ok {
		return
	}
	st.Accepting = accepting
	nfa.states[name] = st
}

func (nfa *NFA[E]) SetValue(name string, v E) {
	st := nfa.states[name]
	st.Value = v
	nfa.states[name] = st
}

func (nfa NFA[E]) GetValue(name string) E {
	return nfa.states[name].Value
}

func (nfa NFA[E]) IsAccepting(name string) bool {
	return nfa.states[name].Accepting
}

func (nfa *NFA[E]) AddTransition(from, input, to string) {
	st := nfa.states[from]
	st.Transitions[input] = append(st.Transitions[input], FATransition{Input: input, Next: to})
	nfa.states[from] = st
}

func (nfa NFA[E]) States() util.StringSet {
	s := util.NewStringSet()
	for k := range nfa.states {
		s.Add(k)
	}
	return s
}

func (nfa NFA[E]) AcceptingStates() util.StringSet {
	s := util.NewStringSet()
	for k, st := range nfa.states {
		if st.Accepting {
			s.Add(k)
		}
	}
	return s
}

func (nfa NFA[E]) Copy() NFA[E] {
	cp := NFA[E]{Start: nfa.Start, states: map[string]NFAState[E]{}, order: nfa.order}
	for k, v := range nfa.states {
		cp.states[k] = v.Copy()
	}
	return cp
}

// InputSymbols returns every non-epsilon symbol used by some transition.
func (nfa NFA[E]) InputSymbols() util.StringSet {
	syms := util.NewStringSet()
	for _, st := range nfa.states {
		for a := range st.Transitions {
			if a != Epsilon {
				syms.Add(a)
			}
		}
	}
	return syms
}

// MOVE returns the set of states reachable from some state in X on input a
// (purple dragon book's MOVE(T, a), algorithm 3.20).
func (nfa NFA[E]) MOVE(X util.ISet[string], a string) util.StringSet {
	out := util.NewStringSet()
	for _, s := range X.Elements() {
		st, ok := nfa.states[s]
		if !ok {
			continue
		}
		for _, t := range st.Transitions[a] {
			out.Add(t.Next)
		}
	}
	return out
}

// EpsilonClosure returns every state reachable from s via zero or more
// epsilon moves, including s itself.
func (nfa NFA[E]) EpsilonClosure(s string) util.StringSet {
	return nfa.EpsilonClosureOfSet(util.StringSetOf([]string{s}))
}

func (nfa NFA[E]) EpsilonClosureOfSet(X util.ISet[string]) util.StringSet {
	closure := util.NewStringSet()
	closure.AddAll(X)

	stack := append([]string(nil), X.Elements()...)
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		st, ok := nfa.states[s]
		if !ok {
			continue
		}
		for _, t := range st.Transitions[Epsilon] {
			if !closure.Has(t.Next) {
				closure.Add(t.Next)
				stack = append(stack, t.Next)
			}
		}
	}
	return closure
}

// Accepts runs the NFA over input (a slice of one-character symbols) and
// reports whether it lands in an accepting state. It is the NFA-side
// counterpart of DFA.Accepts, for checking that NFA(R).accepts(s) ==
// DFA(R).accepts(s).
func (nfa NFA[E]) Accepts(input []string) bool {
	current := nfa.EpsilonClosure(nfa.Start)
	for _, a := range input {
		moved := nfa.MOVE(current, a)
		current = nfa.EpsilonClosureOfSet(moved)
		if current.Empty() {
			return false
		}
	}
	return current.Any(func(s string) bool { return nfa.states[s].Accepting })
}

// subsetBuilder records NFA-state subsets in discovery order, keyed by their
// StringOrdered() form, and tracks which have been processed. This is a
// marked queue: stable position on first insertion, pop-unmarked, and
// contains. Subsets are looked up by key, not by position.
type subsetBuilder struct {
	order   []string // subsets in discovery order, each a StringOrdered() key
	sets    map[string]util.StringSet
	marked  map[string]bool
	cursor  int
}

func newSubsetBuilder() *subsetBuilder {
	return &subsetBuilder{sets: map[string]util.StringSet{}, marked: map[string]bool{}}
}

func (b *subsetBuilder) insert(s util.StringSet) string {
	key := s.StringOrdered()
	if _, ok := b.sets[key]; !ok {
		b.sets[key] = s
		b.order = append(b.order, key)
	}
	return key
}

func (b *subsetBuilder) contains(key string) bool {
	_, ok := b.sets[key]
	return ok
}

func (b *subsetBuilder) popUnmarked() (string, bool) {
	for b.cursor < len(b.order) {
		key := b.order[b.cursor]
		b.cursor++
		if !b.marked[key] {
			b.marked[key] = true
			return key, true
		}
	}
	return "", false
}

// ToDFA performs subset construction (purple dragon book algorithm 3.20)
// over the epsilon-closures of this NFA, producing a DFA whose states are
// named by their sorted NFA-state-name content and whose value is the set
// of NFA state values making up that DFA state — so for a lexer DFA, the
// value set is exactly the set of rule-accept markers live at that state,
// letting the caller pick the highest-priority one.
func (nfa NFA[E]) ToDFA() DFA[util.SVSet[E]] {
	b := newSubsetBuilder()
	start := nfa.EpsilonClosure(nfa.Start)
	b.insert(start)

	dfa := DFA[util.SVSet[E]]{states: map[string]DFAState[util.SVSet[E]]{}}
	inputs := nfa.InputSymbols()

	for {
		key, ok := b.popUnmarked()
		if !ok {
			break
		}
		T := b.sets[key]

		values := util.NewSVSet[E]()
		accepting := false
		for _, s := range T.Elements() {
			values.Set(s, nfa.GetValue(s))
			if nfa.states[s].Accepting {
				accepting = true
			}
		}

		st := DFAState[util.SVSet[E]]{Name: key, Value: values, Accepting: accepting, Transitions: map[string]FATransition{}}

		for _, a := range sortedStrings(inputs.Elements()) {
			U := nfa.EpsilonClosureOfSet(nfa.MOVE(T, a))
			if U.Empty() {
				continue
			}
			uKey := U.StringOrdered()
			if !b.contains(uKey) {
				b.insert(U)
			}
			st.Transitions[a] = FATransition{Input: a, Next: uKey}
		}

		dfa.states[key] = st
		if dfa.Start == "" {
			dfa.Start = key
		}
	}

	return dfa
}

func sortedStrings(ss []string) []string {
	cp := append([]string(nil), ss...)
	sort.Strings(cp)
	return cp
}

// Join splices other into nfa according to the given epsilon bridges,
// flips accepting-state status per addAccept/removeAccept, and returns the
// combined automaton. fromToOther and otherToFrom are (state-in-nfa,
// label, state-in-other) triples (label is almost always epsilon for
// Thompson construction); state names in other are disambiguated by
// prefixing with "1:" on collision exactly the way lex/regex.go's helpers
// expect ("1:" + accept).
func (nfa NFA[E]) Join(other *NFA[E], fromToOther, otherToFrom [][3]string, addAccept, removeAccept []string) (*NFA[E], error) {
	joined := NFA[E]{states: map[string]NFAState[E]{}, Start: nfa.Start}

	rename := func(s string) string {
		if _, collide := nfa.states[s]; collide {
			return "1:" + s
		}
		return s
	}

	for name, st := range nfa.states {
		joined.states[name] = st.Copy()
	}
	for name, st := range other.states {
		newName := rename(name)
		cp := st.Copy()
		cp.Name = newName
		joined.states[newName] = cp
	}

	// fromToOther triples name their "from" endpoint on nfa's side and their
	// "to" endpoint on other's side; otherToFrom is the mirror image. Only
	// the endpoint living in other ever needs renaming, and only when it
	// collided with a name already in nfa.
	fix := func(triples [][3]string, otherSide bool) {
		for _, t := range triples {
			from, label, to := t[0], t[1], t[2]
			if otherSide {
				if _, collide := nfa.states[from]; collide {
					from = rename(from)
				}
			} else {
				if _, collide := nfa.states[to]; collide {
					to = rename(to)
				}
			}
			st, ok := joined.states[from]
			if !ok {
				continue
			}
			st.Transitions[label] = append(st.Transitions[label], FATransition{Input: label, Next: to})
			joined.states[from] = st
		}
	}
	fix(fromToOther, false)
	fix(otherToFrom, true)

	for _, a := range addAccept {
		name := a
		if strings.HasPrefix(a, "1:") {
			name = a
		}
		if st, ok := joined.states[name]; ok {
			st.Accepting = true
			joined.states[name] = st
		}
	}
	for _, a := range removeAccept {
		parts := strings.SplitN(a, ":", 2)
		name := a
		if len(parts) == 2 {
			name = parts[1]
			if _, ok := joined.states[name]; !ok {
				name = a
			}
		}
		if st, ok := joined.states[name]; ok {
			st.Accepting = false
			joined.states[name] = st
		} else if st, ok := joined.states["1:"+name]; ok {
			st.Accepting = false
			joined.states["1:"+name] = st
		}
	}

	return &joined, nil
}

func (nfa NFA[E]) String() string {
	var sb strings.Builder
	names := make([]string, 0, len(nfa.states))
	for n := range nfa.states {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		st := nfa.states[n]
		marker := " "
		if n == nfa.Start {
			marker = ">"
		}
		if st.Accepting {
			marker += "*"
		} else {
			marker += " "
		}
		sb.WriteString(marker + n + "\n")
		labels := make([]string, 0, len(st.Transitions))
		for label := range st.Transitions {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		for _, label := range labels {
			for _, t := range st.Transitions[label] {
				sb.WriteString("    " + t.String() + "\n")
			}
		}
	}
	return sb.String()
}
