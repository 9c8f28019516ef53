package automaton

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/hulkc/internal/util"
)

// DFAState is one state of a DFA[E]: at most one destination per input
// symbol, which is what "deterministic" means here.
type DFAState[E any] struct {
	Name        string
	Value       E
	Accepting   bool
	Transitions map[string]FATransition
}

func (st DFAState[E]) Copy() DFAState[E] {
	cp := DFAState[E]{Name: st.Name, Value: st.Value, Accepting: st.Accepting, Transitions: map[string]FATransition{}}
	for k, v := range st.Transitions {
		cp.Transitions[k] = v
	}
	return cp
}

// DFA is a deterministic finite automaton over E-valued states.
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

func NewDFA[E any]() *DFA[E] {
	return &DFA[E]{states: map[string]DFAState[E]{}}
}

func (dfa DFA[E]) Copy() DFA[E] {
	cp := DFA[E]{Start: dfa.Start, states: map[string]DFAState[E]{}}
	for k, v := range dfa.states {
		cp.states[k] = v.Copy()
	}
	return cp
}

func (dfa *DFA[E]) AddState(name string, accepting bool) {
	if dfa.states == nil {
		dfa.states = map[string]DFAState[E]{}
	}
	if _, ok := dfa.states[name]; ok {
		return
	}
	dfa.states[name] = DFAState[E]{Name: name, Accepting: accepting, Transitions: map[string]FATransition{}}
}

func (dfa *DFA[E]) SetValue(name string, v E) {
	st := dfa.states[name]
	st.Value = v
	dfa.states[name] = st
}

func (dfa DFA[E]) GetValue(name string) E {
	return dfa.states[name].Value
}

func (dfa DFA[E]) IsAccepting(name string) bool {
	return dfa.states[name].Accepting
}

func (dfa *DFA[E]) AddTransition(from, input, to string) {
	st := dfa.states[from]
	st.Transitions[input] = FATransition{Input: input, Next: to}
	dfa.states[from] = st
}

// Transitions returns every outgoing edge of state, for callers that need to
// walk the full transition relation rather than probe one symbol at a time
// (internal/tablecache's DFA snapshotting).
func (dfa DFA[E]) Transitions(state string) []FATransition {
	st, ok := dfa.states[state]
	if !ok {
		return nil
	}
	out := make([]FATransition, 0, len(st.Transitions))
	for _, t := range st.Transitions {
		out = append(out, t)
	}
	return out
}

func (dfa DFA[E]) States() util.StringSet {
	s := util.NewStringSet()
	for k := range dfa.states {
		s.Add(k)
	}
	return s
}

// Next returns the state reached from fromState on input, or "" if there is
// no such transition.
func (dfa DFA[E]) Next(fromState, input string) string {
	st, ok := dfa.states[fromState]
	if !ok {
		return ""
	}
	return st.Transitions[input].Next
}

// Accepts runs the DFA over a full input and reports acceptance; it is the
// DFA-side counterpart of NFA.Accepts.
func (dfa DFA[E]) Accepts(input []string) bool {
	cur := dfa.Start
	for _, a := range input {
		next := dfa.Next(cur, a)
		if next == "" {
			return false
		}
		cur = next
	}
	return dfa.IsAccepting(cur)
}

// Validate checks the determinism invariant: every state has at most one
// transition per input symbol. Transitions are stored in a map keyed on
// input, so a state can never hold two edges on one symbol; a later
// AddTransition on the same symbol overwrites the earlier edge. Validate
// therefore returns nil for every DFA this package can represent.
func (dfa DFA[E]) Validate() error {
	for name, st := range dfa.states {
		seen := map[string]string{}
		for sym, t := range st.Transitions {
			if prev, ok := seen[sym]; ok && prev != t.Next {
				return fmt.Errorf("state %q has conflicting transitions on %q", name, sym)
			}
			seen[sym] = t.Next
		}
	}
	return nil
}

func (dfa DFA[E]) String() string {
	var sb strings.Builder
	names := make([]string, 0, len(dfa.states))
	for n := range dfa.states {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		st := dfa.states[n]
		marker := " "
		if n == dfa.Start {
			marker = ">"
		}
		if st.Accepting {
			marker += "*"
		} else {
			marker += " "
		}
		sb.WriteString(marker + n + "\n")
		syms := make([]string, 0, len(st.Transitions))
		for s := range st.Transitions {
			syms = append(syms, s)
		}
		sort.Strings(syms)
		for _, s := range syms {
			sb.WriteString("    " + st.Transitions[s].String() + "\n")
		}
	}
	return sb.String()
}

// TransformDFA rebuilds a DFA with every state value run through transform,
// used to strip detailed NFA-item-set state values down to whatever the
// caller needs once determinization is complete (the teacher's SLR table
// builder reduces an LR0Item-set DFA to a bare string-keyed DFA the same
// way).
func TransformDFA[E1, E2 any](dfa DFA[E1], transform func(old E1) E2) DFA[E2] {
	out := DFA[E2]{Start: dfa.Start, states: map[string]DFAState[E2]{}}
	for name, st := range dfa.states {
		out.states[name] = DFAState[E2]{
			Name:        st.Name,
			Value:       transform(st.Value),
			Accepting:   st.Accepting,
			Transitions: st.Transitions,
		}
	}
	return out
}
