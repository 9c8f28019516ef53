package hulklang

import (
	"strings"
	"testing"

	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []lex.Token {
	t.Helper()
	lx, err := NewLexer()
	require.NoError(t, err)
	stream, err := lx.Lex(strings.NewReader(src))
	require.NoError(t, err)

	var toks []lex.Token
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().Equal(lex.ClassEndOfText) {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func classIDs(toks []lex.Token) []string {
	ids := make([]string, len(toks))
	for i, tok := range toks {
		ids[i] = tok.Class().ID()
	}
	return ids
}

func TestLexer_KeywordBeatsIdentifierOnTie(t *testing.T) {
	toks := scanAll(t, "let letter")
	assert.Equal(t, []string{TokLet, TokIdent}, classIDs(toks))
	assert.Equal(t, "letter", toks[1].Lexeme())
}

func TestLexer_NumberLiteralIntegerAndDecimal(t *testing.T) {
	toks := scanAll(t, "42 3.14")
	assert.Equal(t, []string{TokNumberLit, TokNumberLit}, classIDs(toks))
	assert.Equal(t, "42", toks[0].Lexeme())
	assert.Equal(t, "3.14", toks[1].Lexeme())
}

func TestLexer_StringLiteralHandlesEscapedQuote(t *testing.T) {
	toks := scanAll(t, `"say \"hi\""`)
	require.Len(t, toks, 1)
	assert.Equal(t, TokStringLit, toks[0].Class().ID())
	assert.Equal(t, `"say \"hi\""`, toks[0].Lexeme())
}

func TestLexer_OperatorsLongestMatchFirst(t *testing.T) {
	toks := scanAll(t, "a==b!=c<=d")
	assert.Equal(t, []string{TokIdent, TokEqEq, TokIdent, TokNotEq, TokIdent, TokLessEq, TokIdent}, classIDs(toks))
}

func TestLexer_SkipsWhitespace(t *testing.T) {
	toks := scanAll(t, "a \t\n  b")
	assert.Equal(t, []string{TokIdent, TokIdent}, classIDs(toks))
}
