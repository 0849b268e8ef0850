package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/svcheck/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(FromString(src))
	var toks []token.Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestLexerTotality(t *testing.T) {
	src := "module m; endmodule"
	toks := lexAll(t, src)
	require.Len(t, toks, 4)
	assert.Equal(t, token.KwModule, toks[0].Kind)
	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, "m", toks[1].Value)
	assert.Equal(t, token.SemiColon, toks[2].Kind)
	assert.Equal(t, token.KwEndModule, toks[3].Kind)
}

func TestSizedHexLiteral(t *testing.T) {
	toks := lexAll(t, "8'hFF")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Integer, toks[0].Kind)
	assert.Equal(t, "8'hFF", toks[0].Value)
}

func TestSignedDecimalNegativeIsRejected(t *testing.T) {
	l := New(FromString("32'sd-1"))
	_, err := l.Next()
	assert.Error(t, err)
}

func Test1stepKeyword(t *testing.T) {
	toks := lexAll(t, "1step")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Kw1step, toks[0].Kind)
}

func TestTimeUnitSuffixIsTwoTokens(t *testing.T) {
	toks := lexAll(t, "10ns")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Integer, toks[0].Kind)
	assert.Equal(t, "10", toks[0].Value)
	assert.Equal(t, token.Ident, toks[1].Kind)
	assert.Equal(t, "ns", toks[1].Value)
}

func TestOperatorMaximalMunch(t *testing.T) {
	toks := lexAll(t, "<<<= <<= << <-> <= <")
	kinds := make([]token.Kind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	assert.Equal(t, []token.Kind{
		token.OpCompAss, token.OpCompAss, token.OpSL, token.OpEquiv, token.OpLTE, token.OpLT,
	}, kinds)
}

func TestAttributeAndSensiAll(t *testing.T) {
	toks := lexAll(t, "(* foo *) (*)")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Attribute, toks[0].Kind)
	assert.Equal(t, token.SensiAll, toks[1].Kind)
}

func TestEqualityVariants(t *testing.T) {
	toks := lexAll(t, "== === ==? != !== !=?")
	kinds := make([]token.Kind, len(toks))
	for i, tk := range toks {
		kinds[i] = tk.Kind
	}
	assert.Equal(t, []token.Kind{
		token.OpEq2, token.OpEq3, token.OpEq2Que, token.OpDiff, token.OpDiff2, token.OpDiffQue,
	}, kinds)
}

func TestStringLiteralWithEscapedQuote(t *testing.T) {
	toks := lexAll(t, `"hi \"there\""`)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Str, toks[0].Kind)
}

func TestLexerTotalityConsumesEntireFile(t *testing.T) {
	src := "module a; initial begin $display(\"hi\"); end endmodule"
	l := New(FromString(src))
	total := 0
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == token.Eof {
			break
		}
		total += len([]rune(tok.Value))
	}
	assert.Greater(t, total, 0)
	assert.True(t, l.src.AtEOF())
}

func TestPathPulseDollarIsSingleIdent(t *testing.T) {
	toks := lexAll(t, "PATHPULSE$")
	require.Len(t, toks, 1)
	assert.Equal(t, token.Ident, toks[0].Kind)
	assert.Equal(t, "PATHPULSE$", toks[0].Value)
}

func TestMacroVsDirectiveClassification(t *testing.T) {
	toks := lexAll(t, "`define `ADD `ifdef")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Macro, toks[0].Kind)
	assert.Equal(t, token.MacroCall, toks[1].Kind)
	assert.Equal(t, token.Macro, toks[2].Kind)
}
