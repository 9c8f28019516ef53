package lex

import "fmt"

// Builder accumulates rules and token classes for one or more lexer start
// states and produces an immutable Lexer once Compile succeeds. It plays
// the role of the teacher's lexerTemplate (internal/ictiobus/lex/lex.go):
// a write-only template that gets turned into something runnable, except
// here "runnable" means "has a merged DFA per state" rather than "has a
// superRegex per state".
type Builder struct {
	startState string
	rules      map[string][]Rule
	classes    map[string]map[string]TokenClass
}

func NewBuilder(startState string) *Builder {
	return &Builder{
		startState: startState,
		rules:      map[string][]Rule{},
		classes:    map[string]map[string]TokenClass{},
	}
}

// AddClass registers a token class as usable by patterns lexed while in
// forState. If a class with the same ID is already registered for that
// state, it is replaced.
func (b *Builder) AddClass(forState string, cl TokenClass) {
	m, ok := b.classes[forState]
	if !ok {
		m = map[string]TokenClass{}
		b.classes[forState] = m
	}
	m[cl.ID()] = cl
}

// AddRule registers pat as a rule active while in forState, in priority
// order: if pat ties another already-registered rule for longest match,
// the one added first wins. action must reference a class already added
// via AddClass for forState when it scans a token.
func (b *Builder) AddRule(forState, pat string, action Action) error {
	classes := b.classes[forState]
	if action.Type == ActionScan || action.Type == ActionScanAndState {
		if _, ok := classes[action.ClassID]; !ok {
			return fmt.Errorf("%q is not a defined token class in state %q; call AddClass first", action.ClassID, forState)
		}
	}
	if action.Type == ActionState || action.Type == ActionScanAndState {
		if action.State == "" {
			return fmt.Errorf("action swaps state but names no destination state")
		}
	}
	b.rules[forState] = append(b.rules[forState], Rule{Pattern: pat, State: forState, Action: action})
	return nil
}

// Lexer is a compiled, immutable token scanner: one merged DFA per start
// state, ready to drive a Stream over any io.Reader.
type Lexer struct {
	startState string
	states     map[string]*compiledState
	classes    map[string]map[string]TokenClass
}

// Compile builds the per-state merged DFAs. It fails if a rule's pattern
// does not parse as a regex or its automaton cannot be joined into the
// state's merged NFA; AddRule already caught the class/state-reference
// mistakes.
func (b *Builder) Compile() (*Lexer, error) {
	lx := &Lexer{
		startState: b.startState,
		states:     map[string]*compiledState{},
		classes:    map[string]map[string]TokenClass{},
	}
	for state, rules := range b.rules {
		cs, err := compile(rules)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", state, err)
		}
		lx.states[state] = cs
	}
	for state, classes := range b.classes {
		m := map[string]TokenClass{}
		for id, cl := range classes {
			m[id] = cl
		}
		lx.classes[state] = m
	}
	return lx, nil
}
