package parse

import (
	"testing"

	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	clsPlus  = lex.NewTokenClass("+", "+")
	clsStar  = lex.NewTokenClass("*", "*")
	clsLParen = lex.NewTokenClass("(", "(")
	clsRParen = lex.NewTokenClass(")", ")")
	clsID    = lex.NewTokenClass("id", "identifier")
)

// fakeStream plays back a fixed token slice, appending an end-of-text token
// automatically once exhausted.
type fakeStream struct {
	toks []lex.Token
	pos  int
}

func newFakeStream(toks ...lex.Token) *fakeStream {
	return &fakeStream{toks: toks}
}

func (f *fakeStream) Next() lex.Token {
	if f.pos >= len(f.toks) {
		return lex.NewToken(lex.ClassEndOfText, "", 1, 1, "")
	}
	t := f.toks[f.pos]
	f.pos++
	return t
}

func (f *fakeStream) Peek() lex.Token {
	if f.pos >= len(f.toks) {
		return lex.NewToken(lex.ClassEndOfText, "", 1, 1, "")
	}
	return f.toks[f.pos]
}

func (f *fakeStream) HasNext() bool { return f.pos < len(f.toks) }

func idTok(lexeme string) lex.Token { return lex.NewToken(clsID, lexeme, 1, 1, lexeme) }

func newArithParser(t *testing.T) *Parser[int] {
	t.Helper()
	g := exprGrammar(t)

	p, err := NewParser[int](*g)
	require.NoError(t, err)

	p.RegisterReducer("E", []string{"E", "+", "T"}, func(a ReduceArgs[int]) int {
		return a.Symbols[0].Value + a.Symbols[2].Value
	})
	p.RegisterReducer("E", []string{"T"}, func(a ReduceArgs[int]) int {
		return a.Symbols[0].Value
	})
	p.RegisterReducer("T", []string{"T", "*", "F"}, func(a ReduceArgs[int]) int {
		return a.Symbols[0].Value * a.Symbols[2].Value
	})
	p.RegisterReducer("T", []string{"F"}, func(a ReduceArgs[int]) int {
		return a.Symbols[0].Value
	})
	p.RegisterReducer("F", []string{"(", "E", ")"}, func(a ReduceArgs[int]) int {
		return a.Symbols[1].Value
	})
	p.RegisterReducer("F", []string{"id"}, func(a ReduceArgs[int]) int {
		return 1
	})

	return p
}

func TestParser_Parse_SimpleSum(t *testing.T) {
	p := newArithParser(t)

	// id + id
	stream := newFakeStream(idTok("a"), lex.NewToken(clsPlus, "+", 1, 1, ""), idTok("b"))
	result, err := p.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, 2, result)
}

func TestParser_Parse_PrecedenceOfMultiplication(t *testing.T) {
	p := newArithParser(t)

	// weight each id by its lexeme length so the two groupings differ:
	// a + bb * ccc == 1 + (2*3) == 7, whereas (a + bb) * ccc would be 9.
	p.RegisterReducer("F", []string{"id"}, func(a ReduceArgs[int]) int {
		return len(a.Symbols[0].Token.Lexeme())
	})
	stream := newFakeStream(
		idTok("a"), lex.NewToken(clsPlus, "+", 1, 1, ""), idTok("bb"),
		lex.NewToken(clsStar, "*", 1, 1, ""), idTok("ccc"),
	)
	result, err := p.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, 7, result)
}

func TestParser_Parse_Parenthesized(t *testing.T) {
	p := newArithParser(t)

	stream := newFakeStream(
		lex.NewToken(clsLParen, "(", 1, 1, ""),
		idTok("a"), lex.NewToken(clsPlus, "+", 1, 1, ""), idTok("b"),
		lex.NewToken(clsRParen, ")", 1, 1, ""),
	)
	result, err := p.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, 2, result)
}

func TestParser_Parse_SyntaxErrorOnUnexpectedToken(t *testing.T) {
	p := newArithParser(t)

	// "+ id" is never valid: + cannot start an expression.
	stream := newFakeStream(lex.NewToken(clsPlus, "+", 3, 5, "+ a"), idTok("a"))
	_, err := p.Parse(stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3:5")
}

func TestParser_Parse_MissingReducerIsReported(t *testing.T) {
	g := exprGrammar(t)
	p, err := NewParser[int](*g)
	require.NoError(t, err)
	// deliberately register nothing

	stream := newFakeStream(idTok("a"))
	_, err = p.Parse(stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reducer registered")
}

func TestParser_Table_ReturnsUnderlyingTable(t *testing.T) {
	p := newArithParser(t)
	require.NotNil(t, p.Table())
	assert.Contains(t, p.Table().String(), "A:id")
}
