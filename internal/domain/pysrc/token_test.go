package pysrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func kindsOf(tokens []pysrc.Token) []pysrc.Kind {
	kinds := make([]pysrc.Kind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func textsOf(tokens []pysrc.Token) []string {
	texts := make([]string, len(tokens))
	for i, t := range tokens {
		texts[i] = t.Text
	}
	return texts
}

func TestTokenize_Statement(t *testing.T) {
	tokens, err := pysrc.Tokenize("x = foo(1, 2)\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "=", "foo", "(", "1", ",", "2", ")", "\n"}, textsOf(tokens))
	assert.Equal(t, pysrc.KindName, tokens[0].Kind)
	assert.Equal(t, pysrc.KindOp, tokens[1].Kind)
	assert.Equal(t, pysrc.KindNumber, tokens[4].Kind)
}

func TestTokenize_LineAndColumn(t *testing.T) {
	tokens, err := pysrc.Tokenize("a = 1\nbb = 2\n")
	require.NoError(t, err)

	// "bb" starts line 2, column 0.
	var bb pysrc.Token
	for _, tok := range tokens {
		if tok.Text == "bb" {
			bb = tok
		}
	}
	assert.Equal(t, 2, bb.Line)
	assert.Equal(t, 0, bb.Col)
	assert.Equal(t, 6, bb.Start)
}

func TestTokenize_StringsAndComments(t *testing.T) {
	tokens, err := pysrc.Tokenize("s = 'it''s' # print x\n")
	require.NoError(t, err)

	var kinds []pysrc.Kind
	for _, tok := range tokens {
		if tok.Kind == pysrc.KindString || tok.Kind == pysrc.KindComment {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []pysrc.Kind{pysrc.KindString, pysrc.KindString, pysrc.KindComment}, kinds)
}

func TestTokenize_StringPrefixes(t *testing.T) {
	for _, src := range []string{
		"x = u'a'\n", "x = U\"a\"\n", "x = r'a'\n", "x = b'a'\n",
		"x = ur'a'\n", "x = rb'a'\n",
	} {
		tokens, err := pysrc.Tokenize(src)
		require.NoError(t, err, src)
		var found bool
		for _, tok := range tokens {
			if tok.Kind == pysrc.KindString {
				found = true
			}
		}
		assert.True(t, found, "no string token in %q", src)
	}
}

func TestTokenize_TripleQuoted(t *testing.T) {
	src := "doc = '''line one\nline two'''\nx = 1\n"
	tokens, err := pysrc.Tokenize(src)
	require.NoError(t, err)

	var str pysrc.Token
	for _, tok := range tokens {
		if tok.Kind == pysrc.KindString {
			str = tok
		}
	}
	assert.Contains(t, str.Text, "line two")
}

func TestTokenize_NewlineSuppressedInBrackets(t *testing.T) {
	tokens, err := pysrc.Tokenize("x = foo(1,\n        2)\ny = 3\n")
	require.NoError(t, err)

	newlines := 0
	for _, tok := range tokens {
		if tok.Kind == pysrc.KindNewline && tok.Text != "" {
			newlines++
		}
	}
	// Only the two statement terminators count; the one inside the call
	// does not.
	assert.Equal(t, 2, newlines)
}

func TestTokenize_BackslashContinuation(t *testing.T) {
	tokens, err := pysrc.Tokenize("x = 1 + \\\n    2\n")
	require.NoError(t, err)

	newlines := 0
	for _, tok := range tokens {
		if tok.Kind == pysrc.KindNewline && tok.Text != "" {
			newlines++
		}
	}
	assert.Equal(t, 1, newlines)
}

func TestTokenize_NumberSuffixes(t *testing.T) {
	tokens, err := pysrc.Tokenize("a = 42L\nb = 0x1f\nc = 1.5j\n")
	require.NoError(t, err)

	var nums []string
	for _, tok := range tokens {
		if tok.Kind == pysrc.KindNumber {
			nums = append(nums, tok.Text)
		}
	}
	assert.Equal(t, []string{"42L", "0x1f", "1.5j"}, nums)
}

func TestTokenize_MultiCharOperators(t *testing.T) {
	tokens, err := pysrc.Tokenize("if a <> b: a >>= 1\n")
	require.NoError(t, err)
	assert.Contains(t, textsOf(tokens), "<>")
	assert.Contains(t, textsOf(tokens), ">>=")
}

func TestTokenize_UnterminatedString(t *testing.T) {
	tokens, err := pysrc.Tokenize("x = 1\ny = 'oops\n")
	require.Error(t, err)

	var te *pysrc.TokenizeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 2, te.Line)

	// Tokens before the failure point survive.
	assert.Contains(t, textsOf(tokens), "x")
	assert.Contains(t, textsOf(tokens), "y")
}

func TestTokenize_FinalNewlineSynthesized(t *testing.T) {
	tokens, err := pysrc.Tokenize("x = 1")
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	last := tokens[len(tokens)-1]
	assert.Equal(t, pysrc.KindNewline, last.Kind)
}
