package parse

import (
	"fmt"

	"github.com/dekarrin/hulkc/internal/diag"
	"github.com/dekarrin/hulkc/internal/grammar"
	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/dekarrin/hulkc/internal/util"
)

// Symbol is one element consumed while reducing a production: either a
// shifted terminal's Token, or the value an earlier reduction produced for
// a non-terminal.
type Symbol[R any] struct {
	Terminal bool
	Token    lex.Token
	Value    R
}

// ReduceArgs carries everything a ReduceFunc needs to build its production's
// value: which production fired, and the shifted tokens / reduced values of
// its right-hand side, left to right.
type ReduceArgs[R any] struct {
	NonTerminal string
	Production  grammar.Production
	Symbols     []Symbol[R]
}

// ReduceFunc builds a non-terminal's value from the values of its
// production's right-hand side. This replaces the teacher's hardcoded
// *types.ParseTree construction in lrParser.Parse with a caller-supplied
// reduction so one parser runtime serves any target value type — the AST
// builder in internal/hulklang supplies these.
type ReduceFunc[R any] func(args ReduceArgs[R]) R

// Parser drives an LALR(1) shift-reduce parse over a lex.Stream, producing a
// value of type R via registered ReduceFuncs. Generalizes the teacher's
// lrParser (internal/ictiobus/parse/lr.go), which always builds a
// types.ParseTree, into a reducer-driven runtime with no fixed output type.
type Parser[R any] struct {
	table    LRParseTable
	gram     grammar.Grammar
	reducers map[string]ReduceFunc[R]
	trace    func(s string)
}

// NewParser builds the LALR(1) table for g and returns a Parser ready to
// have its productions' reducers registered.
func NewParser[R any](g grammar.Grammar) (*Parser[R], error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grammar: %w", err)
	}
	table, err := constructLALR1ParseTable(g)
	if err != nil {
		return nil, err
	}
	return &Parser[R]{table: table, gram: g, reducers: map[string]ReduceFunc[R]{}}, nil
}

// NewParserWithTable builds a Parser around an already-constructed table,
// skipping constructLALR1ParseTable entirely. g is still required for
// Validate and for the human-readable terminal names syntaxError reports;
// callers that restore table from a tablecache entry still hold the
// grammar that produced it.
func NewParserWithTable[R any](g grammar.Grammar, table LRParseTable) (*Parser[R], error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grammar: %w", err)
	}
	return &Parser[R]{table: table, gram: g, reducers: map[string]ReduceFunc[R]{}}, nil
}

// Table returns the parser's underlying ACTION/GOTO table, e.g. for
// printing with print-table subcommands.
func (p *Parser[R]) Table() LRParseTable { return p.table }

func reducerKey(nonTerm string, prod grammar.Production) string {
	return nonTerm + " -> " + prod.String()
}

// RegisterReducer attaches fn to the production nonTerm -> symbols. Parse
// returns an error at reduction time if a production fired during parsing
// has no registered reducer, so callers must register one per grammar
// production.
func (p *Parser[R]) RegisterReducer(nonTerm string, symbols []string, fn ReduceFunc[R]) {
	p.reducers[reducerKey(nonTerm, grammar.Production(symbols))] = fn
}

// RegisterTraceListener receives one line of text per parser step, mirroring
// the teacher's lrParser.RegisterTraceListener.
func (p *Parser[R]) RegisterTraceListener(listener func(s string)) {
	p.trace = listener
}

func (p *Parser[R]) notifyTrace(format string, args ...interface{}) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// Parse runs algorithm 4.44, "LR-parsing algorithm" (purple dragon book),
// over stream, calling the registered ReduceFunc for each production
// reduced and returning the value reduced for the grammar's start symbol.
func (p *Parser[R]) Parse(stream lex.Stream) (R, error) {
	var zero R

	stateStack := util.Stack[string]{Of: []string{p.table.Initial()}}
	symbolStack := util.Stack[Symbol[R]]{}

	a := stream.Next()
	p.notifyTrace("next token: %s", a.String())

	for {
		s := stateStack.Peek()
		act := p.table.Action(s, a.Class().ID())
		p.notifyTrace("state %s, lookahead %s -> %s", s, a.Class().ID(), act.Type)

		switch act.Type {
		case LRShift:
			symbolStack.Push(Symbol[R]{Terminal: true, Token: a})
			stateStack.Push(act.State)
			a = stream.Next()
			p.notifyTrace("next token: %s", a.String())

		case LRReduce:
			A := act.Symbol
			beta := act.Production

			args := ReduceArgs[R]{NonTerminal: A, Production: beta, Symbols: make([]Symbol[R], len(beta))}
			for i := len(beta) - 1; i >= 0; i-- {
				stateStack.Pop()
				args.Symbols[i] = symbolStack.Pop()
			}

			fn, ok := p.reducers[reducerKey(A, beta)]
			if !ok {
				return zero, fmt.Errorf("no reducer registered for production %s -> %s", A, beta.String())
			}
			value := fn(args)
			symbolStack.Push(Symbol[R]{Value: value})

			t := stateStack.Peek()
			toPush, err := p.table.Goto(t, A)
			if err != nil {
				return zero, &diag.Error{
					Severity: diag.SeverityError,
					Kind:     "internal-parser-error",
					Message:  fmt.Sprintf("no GOTO from state %s on %s", t, A),
					Pos:      diag.Position{Line: a.Line(), Col: a.LinePos(), SourceLine: a.FullLine()},
				}
			}
			stateStack.Push(toPush)

		case LRAccept:
			result := symbolStack.Pop()
			return result.Value, nil

		case LRError:
			return zero, p.syntaxError(s, a)
		}
	}
}

// syntaxError renders a diag.Error for a token rejected in state, listing
// the terminals that would have been accepted instead — the same
// information the teacher's getExpectedString/findExpectedTokens compute,
// rendered here through internal/diag instead of a bespoke string builder.
func (p *Parser[R]) syntaxError(state string, got lex.Token) error {
	msg := fmt.Sprintf("unexpected %s", got.Class().Human())
	if expected := p.expectedHumanNames(state); len(expected) > 0 {
		msg += fmt.Sprintf("; expected %s", util.MakeTextList(expected))
	}

	return &diag.Error{
		Severity: diag.SeverityError,
		Kind:     "syntax-error",
		Message:  msg,
		Pos: diag.Position{
			Line:       got.Line(),
			Col:        got.LinePos(),
			SourceLine: got.FullLine(),
		},
	}
}

// expectedHumanNames returns the human-readable name of every terminal that
// has a non-error ACTION entry in state.
func (p *Parser[R]) expectedHumanNames(state string) []string {
	var names []string
	for _, termID := range p.gram.Terminals() {
		if p.table.Action(state, termID).Type != LRError {
			names = append(names, p.gram.Term(termID).Human())
		}
	}
	return names
}
