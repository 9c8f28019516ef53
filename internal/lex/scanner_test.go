package lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberIdentLexer(t *testing.T) *Lexer {
	t.Helper()
	b := NewBuilder("default")
	b.AddClass("default", NewTokenClass("number", "NUMBER"))
	b.AddClass("default", NewTokenClass("ident", "IDENT"))
	b.AddClass("default", NewTokenClass("let", "let"))
	b.AddClass("default", NewTokenClass("plus", "+"))

	require.NoError(t, b.AddRule("default", `[0-9]+`, LexAs("number")))
	require.NoError(t, b.AddRule("default", `let`, LexAs("let")))
	require.NoError(t, b.AddRule("default", `[a-zA-Z_][a-zA-Z0-9_]*`, LexAs("ident")))
	require.NoError(t, b.AddRule("default", `\+`, LexAs("plus")))
	require.NoError(t, b.AddRule("default", `[ \t\n]+`, Discard()))

	lx, err := b.Compile()
	require.NoError(t, err)
	return lx
}

func TestScanner_BasicTokens(t *testing.T) {
	lx := numberIdentLexer(t)
	stream, err := lx.Lex(strings.NewReader("x1 + 42"))
	require.NoError(t, err)

	var got []string
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().Equal(ClassEndOfText) {
			break
		}
		got = append(got, tok.Class().ID()+":"+tok.Lexeme())
	}

	assert.Equal(t, []string{"ident:x1", "plus:+", "number:42"}, got)
}

func TestScanner_KeywordBeatsIdentOnTie(t *testing.T) {
	// "let" matches both the keyword rule and the ident rule at the same
	// length; the keyword rule was registered first, so it must win.
	lx := numberIdentLexer(t)
	stream, err := lx.Lex(strings.NewReader("let"))
	require.NoError(t, err)

	tok := stream.Next()
	assert.Equal(t, "let", tok.Class().ID())
	assert.Equal(t, "let", tok.Lexeme())
}

func TestScanner_LongestMatchWins(t *testing.T) {
	lx := numberIdentLexer(t)
	stream, err := lx.Lex(strings.NewReader("letter"))
	require.NoError(t, err)

	tok := stream.Next()
	assert.Equal(t, "ident", tok.Class().ID())
	assert.Equal(t, "letter", tok.Lexeme())
}

func TestScanner_PanicModeRecoversAfterBadByte(t *testing.T) {
	lx := numberIdentLexer(t)
	stream, err := lx.Lex(strings.NewReader("1 # 2"))
	require.NoError(t, err)

	tok1 := stream.Next()
	assert.Equal(t, "number", tok1.Class().ID())

	tok2 := stream.Next()
	assert.Equal(t, ClassError, tok2.Class())

	tok3 := stream.Next()
	assert.Equal(t, "number", tok3.Class().ID())
	assert.Equal(t, "2", tok3.Lexeme())
}

func TestScanner_Peek_DoesNotAdvance(t *testing.T) {
	lx := numberIdentLexer(t)
	stream, err := lx.Lex(strings.NewReader("7 8"))
	require.NoError(t, err)

	peeked := stream.Peek()
	assert.Equal(t, "7", peeked.Lexeme())

	next := stream.Next()
	assert.Equal(t, "7", next.Lexeme())

	second := stream.Next()
	assert.Equal(t, "8", second.Lexeme())
}

func TestScanner_EmptyInputIsImmediatelyEndOfText(t *testing.T) {
	lx := numberIdentLexer(t)
	stream, err := lx.Lex(strings.NewReader(""))
	require.NoError(t, err)

	assert.False(t, stream.HasNext())
	tok := stream.Next()
	assert.Equal(t, ClassEndOfText, tok.Class())
}

func TestBuilder_AddRule_RejectsUnknownClass(t *testing.T) {
	b := NewBuilder("default")
	err := b.AddRule("default", `x`, LexAs("nope"))
	assert.Error(t, err)
}

func TestBuilder_AddRule_RejectsEmptyStateTarget(t *testing.T) {
	b := NewBuilder("default")
	b.AddClass("default", NewTokenClass("x", "X"))
	err := b.AddRule("default", `x`, SwapState(""))
	assert.Error(t, err)
}
