package parse

import (
	"fmt"

	"github.com/dekarrin/hulkc/internal/grammar"
)

// LRActionType tags what an LR parser does in response to an (state,
// lookahead) pair.
type LRActionType int

const (
	LRShift LRActionType = iota
	LRReduce
	LRAccept
	LRError
)

func (t LRActionType) String() string {
	switch t {
	case LRShift:
		return "shift"
	case LRReduce:
		return "reduce"
	case LRAccept:
		return "accept"
	default:
		return "error"
	}
}

// LRAction is one entry of the ACTION table, grounded field-for-field on
// the teacher's internal/ictiobus/parse/lraction.go.
type LRAction struct {
	Type       LRActionType
	Production grammar.Production
	Symbol     string
	State      string
}

func (act LRAction) String() string {
	switch act.Type {
	case LRAccept:
		return "ACTION<accept>"
	case LRError:
		return "ACTION<error>"
	case LRReduce:
		return fmt.Sprintf("ACTION<reduce %s -> %s>", act.Symbol, act.Production.String())
	case LRShift:
		return fmt.Sprintf("ACTION<shift %s>", act.State)
	default:
		return "ACTION<unknown>"
	}
}

func (act LRAction) Equal(o any) bool {
	other, ok := o.(LRAction)
	if !ok {
		return false
	}
	return act.Type == other.Type &&
		act.Production.Equal(other.Production) &&
		act.Symbol == other.Symbol &&
		act.State == other.State
}

// ConflictError describes an ACTION table cell for which the grammar is
// ambiguous under LALR(1): more than one action applies for the same
// (state, lookahead) pair.
type ConflictError struct {
	State   string
	Symbol  string
	Actions []LRAction
}

func (e *ConflictError) Error() string {
	kind := "action"
	if len(e.Actions) == 2 {
		a, b := e.Actions[0], e.Actions[1]
		switch {
		case a.Type == LRShift && b.Type == LRReduce, a.Type == LRReduce && b.Type == LRShift:
			kind = "shift/reduce"
		case a.Type == LRReduce && b.Type == LRReduce:
			kind = "reduce/reduce"
		case a.Type == LRAccept || b.Type == LRAccept:
			kind = "accept/" + otherType(a, b).String()
		}
	}
	return fmt.Sprintf("%s conflict on state %s, symbol %q: %s", kind, e.State, e.Symbol, describeActions(e.Actions))
}

func otherType(a, b LRAction) LRActionType {
	if a.Type == LRAccept {
		return b.Type
	}
	return a.Type
}

func describeActions(actions []LRAction) string {
	s := ""
	for i, a := range actions {
		if i > 0 {
			s += " vs "
		}
		s += a.String()
	}
	return s
}
