package pysrc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func imports(t *testing.T, text string) []pysrc.ImportRef {
	t.Helper()
	src := pysrc.Parse(text)
	require.NoError(t, src.Err)
	return src.Imports
}

func TestImports_Plain(t *testing.T) {
	refs := imports(t, "import os\n")
	require.Len(t, refs, 1)
	assert.Equal(t, "os", refs[0].Module)
	assert.False(t, refs[0].From)
	assert.Equal(t, 1, refs[0].Line)
	assert.Equal(t, 7, refs[0].Col)
}

func TestImports_Dotted(t *testing.T) {
	refs := imports(t, "import xml.sax.handler\n")
	require.Len(t, refs, 1)
	assert.Equal(t, "xml.sax.handler", refs[0].Module)
}

func TestImports_CommaList(t *testing.T) {
	refs := imports(t, "import os, urllib2, sys\n")
	require.Len(t, refs, 3)
	assert.Equal(t, "urllib2", refs[1].Module)
}

func TestImports_Alias(t *testing.T) {
	refs := imports(t, "import cPickle as pickle, os\n")
	require.Len(t, refs, 2)
	assert.Equal(t, "cPickle", refs[0].Module)
	assert.Equal(t, "pickle", refs[0].Alias)
	assert.Equal(t, "os", refs[1].Module)
	assert.Empty(t, refs[1].Alias)
}

func TestImports_From(t *testing.T) {
	refs := imports(t, "from urlparse import urljoin, urlsplit\n")
	require.Len(t, refs, 1)
	assert.Equal(t, "urlparse", refs[0].Module)
	assert.True(t, refs[0].From)
}

func TestImports_RelativeSkipped(t *testing.T) {
	refs := imports(t, "from . import helpers\nfrom .base import Thing\n")
	assert.Empty(t, refs)
}

func TestImports_NestedAndConditional(t *testing.T) {
	text := "try:\n" +
		"    import cStringIO\n" +
		"except ImportError:\n" +
		"    import StringIO\n"
	refs := imports(t, text)
	require.Len(t, refs, 2)
	assert.Equal(t, "cStringIO", refs[0].Module)
	assert.Equal(t, "StringIO", refs[1].Module)
}

func TestImports_SpanCoversModulePath(t *testing.T) {
	text := "import urllib2\n"
	refs := imports(t, text)
	require.Len(t, refs, 1)
	assert.Equal(t, "urllib2", text[refs[0].Start:refs[0].End])
}

func TestImports_NotInStrings(t *testing.T) {
	refs := imports(t, "s = 'import urllib2'\n")
	assert.Empty(t, refs)
}

func TestImports_MidStatementImportIgnored(t *testing.T) {
	// "import" as an attribute or argument is not a statement start.
	refs := imports(t, "do(thing, importer)\n")
	assert.Empty(t, refs)
}
