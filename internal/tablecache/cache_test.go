package tablecache

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dekarrin/hulkc/internal/grammar"
	"github.com/dekarrin/hulkc/internal/lex"
	"github.com/dekarrin/hulkc/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exprGrammar(t *testing.T) grammar.Grammar {
	t.Helper()
	g := grammar.New()
	g.AddTerm("+", "+")
	g.AddTerm("id", "identifier")
	g.AddRule("E", "E", "+", "id")
	g.AddRule("E", "id")
	g.SetStart("E")
	require.NoError(t, g.Validate())
	return *g
}

func identLexer(t *testing.T) *lex.Lexer {
	t.Helper()
	b := lex.NewBuilder("default")
	b.AddClass("default", lex.NewTokenClass("id", "identifier"))
	b.AddClass("default", lex.NewTokenClass("+", "+"))
	require.NoError(t, b.AddRule("default", `[a-z]+`, lex.LexAs("id")))
	require.NoError(t, b.AddRule("default", `\+`, lex.LexAs("+")))
	require.NoError(t, b.AddRule("default", `[ ]+`, lex.Discard()))
	lx, err := b.Compile()
	require.NoError(t, err)
	return lx
}

func TestCache_MissThenHit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	c := New(dir)

	fp, err := Fingerprint([]byte("grammar-src-v1"), []byte("lex-src-v1"))
	require.NoError(t, err)

	_, _, ok, err := c.Load(fp)
	require.NoError(t, err)
	assert.False(t, ok, "an empty cache directory must be a miss, not an error")

	p, err := parse.NewParser[int](exprGrammar(t))
	require.NoError(t, err)
	lx := identLexer(t)

	require.NoError(t, c.Store(fp, lx, p.Table()))

	cachedLx, cachedTable, ok, err := c.Load(fp)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, p.Table().Initial(), cachedTable.Initial())
	assert.Equal(t, p.Table().String(), cachedTable.String())
	assert.Equal(t, p.Table().Action(p.Table().Initial(), "id").Type, cachedTable.Action(cachedTable.Initial(), "id").Type)

	stream, err := cachedLx.Lex(strings.NewReader("ab + cd"))
	require.NoError(t, err)
	var got []string
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().Equal(lex.ClassEndOfText) {
			break
		}
		got = append(got, tok.Class().ID()+":"+tok.Lexeme())
	}
	assert.Equal(t, []string{"id:ab", "+:+", "id:cd"}, got)
}

func TestFingerprint_DifferentSourcesDifferentKeys(t *testing.T) {
	a, err := Fingerprint([]byte("grammar-a"), []byte("lex-a"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("grammar-b"), []byte("lex-a"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestFingerprint_SourceBoundaryIsNotAmbiguous(t *testing.T) {
	a, err := Fingerprint([]byte("ab"), []byte("c"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("a"), []byte("bc"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
