package pysrc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func TestParse_NeverFailsOutright(t *testing.T) {
	src := pysrc.Parse("x = 'oops\n")
	require.Error(t, src.Err)
	assert.NotEmpty(t, src.Tokens)
}

func TestParse_ImportsOnCleanSource(t *testing.T) {
	src := pysrc.Parse("import urllib2\n")
	require.NoError(t, src.Err)
	require.Len(t, src.Imports, 1)
	assert.Equal(t, "urllib2", src.Imports[0].Module)
}

func TestParse_NoImportsOnBrokenSource(t *testing.T) {
	src := pysrc.Parse("import urllib2\nx = 'oops\n")
	require.Error(t, src.Err)
	assert.Empty(t, src.Imports)
}

func TestInCode_StringsAndComments(t *testing.T) {
	text := "x = 'print' # print\n"
	src := pysrc.Parse(text)
	require.NoError(t, src.Err)

	assert.True(t, src.InCode(strings.Index(text, "x")))
	assert.False(t, src.InCode(strings.Index(text, "'print'")+1))
	assert.False(t, src.InCode(strings.Index(text, "#")+2))
}

func TestInCode_PastTokenizeError(t *testing.T) {
	text := "x = 1\ny = 'oops\nprint z\n"
	src := pysrc.Parse(text)
	require.Error(t, src.Err)

	assert.True(t, src.InCode(0))
	assert.False(t, src.InCode(strings.Index(text, "print")))
}

func TestInCode_OutOfRange(t *testing.T) {
	src := pysrc.Parse("x = 1\n")
	assert.False(t, src.InCode(-1))
	assert.False(t, src.InCode(1000))
}

func TestStmtEnd_NewlineAndSemicolon(t *testing.T) {
	src := pysrc.Parse("a = 1; b = foo(x,\n  y)\n")
	require.NoError(t, src.Err)

	// Statement containing "a" ends at the ";".
	end := src.StmtEnd(0)
	assert.Equal(t, ";", src.Tokens[end].Text)

	// Statement containing "b" runs to the final newline; the newline inside
	// the call was suppressed.
	var bIdx int
	for i, tok := range src.Tokens {
		if tok.Text == "b" {
			bIdx = i
		}
	}
	end = src.StmtEnd(bIdx)
	assert.Equal(t, pysrc.KindNewline, src.Tokens[end].Kind)
}

func TestStmtStart_AfterColonAndSemicolon(t *testing.T) {
	src := pysrc.Parse("if x: print\ny = 1; import os\n")
	require.NoError(t, src.Err)

	for i, tok := range src.Tokens {
		switch tok.Text {
		case "if", "print", "y", "import":
			assert.True(t, src.StmtStart(i), "token %q should start a statement", tok.Text)
		case "x", "os":
			assert.False(t, src.StmtStart(i), "token %q should not start a statement", tok.Text)
		}
	}
}
