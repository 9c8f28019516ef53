package lex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTripScansSameTokens(t *testing.T) {
	lx := numberIdentLexer(t)

	snap := lx.Snapshot()
	rebuilt := FromSnapshot(snap)

	stream, err := rebuilt.Lex(strings.NewReader("x1 + 42"))
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

func TestSnapshot_RoundTripPreservesKeywordTieBreak(t *testing.T) {
	lx := numberIdentLexer(t)
	rebuilt := FromSnapshot(lx.Snapshot())

	stream, err := rebuilt.Lex(strings.NewReader("let"))
	require.NoError(t, err)
	tok := stream.Next()
	assert.Equal(t, "let", tok.Class().ID())
}
