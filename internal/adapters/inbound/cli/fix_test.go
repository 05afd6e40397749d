package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/adapters/inbound/cli"
)

func TestFixCommand_RewritesTree(t *testing.T) {
	dir := py2Fixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", dir})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "import urllib.request\nprint(\"hello\")\n", string(data))
	assert.DirExists(t, filepath.Join(dir, ".py3kit", "backups"))
}

func TestFixCommand_DryRun(t *testing.T) {
	dir := py2Fixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", dir, "--dry-run"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "import urllib2\nprint \"hello\"\n", string(data))
	assert.Contains(t, buf.String(), "dry-run")
}

func TestFixCommand_JSON(t *testing.T) {
	dir := py2Fixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", dir, "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"mode": "apply"`)
	assert.Contains(t, buf.String(), `"applied_count": 2`)
	assert.Contains(t, buf.String(), `"backup_path"`)
}

func TestFixCommand_RulesFilter(t *testing.T) {
	dir := py2Fixture(t)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"fix", dir, "--rules", "print-statement"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "import urllib2\nprint(\"hello\")\n", string(data))
}

func TestFixCommand_UnknownRule(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"fix", py2Fixture(t), "--rules", "bogus"})
	assert.Error(t, cmd.Execute())
}

func TestFixCommand_SingleFile(t *testing.T) {
	dir := py2Fixture(t)

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"fix", filepath.Join(dir, "app.py")})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, "import urllib.request\nprint(\"hello\")\n", string(data))
}

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "py3kit dev (none)")
}
