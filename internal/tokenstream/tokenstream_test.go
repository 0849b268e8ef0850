package tokenstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/svcheck/internal/ast"
	"github.com/oxhq/svcheck/internal/lexer"
	"github.com/oxhq/svcheck/internal/token"
)

func newTS(t *testing.T, src string, host Host) *TokenStream {
	t.Helper()
	return New(lexer.FromString(src), "t.sv", ".", token.Defines{}, host, nil)
}

func kinds(t *testing.T, ts *TokenStream) []token.Kind {
	t.Helper()
	var out []token.Kind
	for {
		tok, err := ts.Next()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			return out
		}
		out = append(out, tok.Kind)
	}
}

func values(t *testing.T, ts *TokenStream) []string {
	t.Helper()
	var out []string
	for {
		tok, err := ts.Next()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			return out
		}
		out = append(out, tok.Value)
	}
}

func TestSimpleMacroExpansion(t *testing.T) {
	ts := newTS(t, "`define A B\n`A", nil)
	vals := values(t, ts)
	assert.Equal(t, []string{"B"}, vals)
}

func TestMacroExpansionCarriesCallerPosition(t *testing.T) {
	ts := newTS(t, "`define A B\n\n`A", nil)
	var toks []token.Token
	for {
		tok, err := ts.Next()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			break
		}
		toks = append(toks, tok)
	}
	require.Len(t, toks, 1)
	assert.Equal(t, 3, toks[0].Pos.Line)
}

func TestMacroWithArgumentsExpands(t *testing.T) {
	ts := newTS(t, "`define ADD(x,y) x+y\n`ADD(2, 3)", nil)
	ks := kinds(t, ts)
	assert.Equal(t, []token.Kind{token.Integer, token.OpPlus, token.Integer}, ks)
}

func TestNestedMacroArgumentSubstitution(t *testing.T) {
	ts := newTS(t, "`define INNER(Y) Y*2\n`define OUTER(X) `INNER(X)\n`OUTER(5)", nil)
	var toks []token.Token
	for {
		tok, err := ts.Next()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			break
		}
		toks = append(toks, tok)
	}
	require.Len(t, toks, 3)
	assert.Equal(t, token.Integer, toks[0].Kind)
	assert.Equal(t, "5", toks[0].Value)
	assert.Equal(t, token.OpStar, toks[1].Kind)
	assert.Equal(t, token.Integer, toks[2].Kind)
	assert.Equal(t, "2", toks[2].Value)
}

func TestDefineWithNoBodyStoresNullMacro(t *testing.T) {
	ts := newTS(t, "`define FLAG\nx", nil)
	_, err := ts.Next()
	require.NoError(t, err)
	def, ok := ts.Defines()["FLAG"]
	require.True(t, ok)
	assert.Nil(t, def)
}

func TestRewindAndFlush(t *testing.T) {
	ts := newTS(t, "a b c", nil)
	first, err := ts.Peek()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Value)
	second, err := ts.Peek()
	require.NoError(t, err)
	assert.Equal(t, "b", second.Value)
	ts.Rewind(2)
	again, err := ts.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", again.Value)
	_, err = ts.Peek()
	require.NoError(t, err)
	ts.FlushRd()
	third, err := ts.Next()
	require.NoError(t, err)
	assert.Equal(t, "c", third.Value)
}

func TestSkipUntilRespectsDepth(t *testing.T) {
	ts := newTS(t, "begin a begin b end c end endmodule", nil)
	term, err := ts.SkipUntil(token.KwEndModule)
	require.NoError(t, err)
	assert.Equal(t, token.KwEndModule, term.Kind)
}

// fakeHost supplies one canned include Ast regardless of name, and counts
// how many times it was asked to compile, for the include-cache property.
type fakeHost struct {
	compiles int
	a        *ast.Ast
}

func (f *fakeHost) LookupInclude(name string) (*ast.Ast, bool) {
	if f.a != nil {
		return f.a, true
	}
	return nil, false
}

func (f *fakeHost) CompileInclude(curDir, name string, bracket bool) (*ast.Ast, error) {
	f.compiles++
	if f.a == nil {
		f.a = ast.New(name, ast.NewNode(ast.Root, token.Position{}), token.Defines{
			"W": {Body: []token.Token{token.New(token.Integer, "8", token.Position{})}},
		})
	}
	return f.a, nil
}

func TestIncludeSplicesDefinesIntoCurrentStream(t *testing.T) {
	host := &fakeHost{}
	ts := newTS(t, "`include \"common.svh\"\n`W", host)
	vals := values(t, ts)
	assert.Equal(t, []string{"8"}, vals)
	assert.Equal(t, 1, host.compiles)
}
