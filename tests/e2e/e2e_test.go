package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "py3kit-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "py3kit")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/py3kit")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

func py2Project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"app.py": "import urllib2\n\ndef fetch(url):\n    print \"fetching\", url\n    return urllib2.urlopen(url)\n",
		"util.py": "def count(d):\n    for k in d.iterkeys():\n        yield k\n\nfor i in xrange(5):\n    pass\n",
		"clean.py": "print(\"already fine\")\n",
	}
	for rel, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0644))
	}
	return dir
}

// --- Check Tests ---

func TestE2E_Check(t *testing.T) {
	dir := py2Project(t)
	out, code := run(t, "check", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "py3kit")
	assert.Contains(t, out, "app.py")
	assert.Contains(t, out, "legacy-import")
}

func TestE2E_CheckJSON(t *testing.T) {
	dir := py2Project(t)
	out, code := run(t, "check", dir, "--json")
	assert.Equal(t, 0, code)

	var report domain.AggregateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.ModeVerify, report.Mode)
	assert.Equal(t, 3, report.FilesScanned)
	assert.True(t, report.FindingCount >= 4, "expected findings in app.py and util.py")
}

func TestE2E_CheckCI(t *testing.T) {
	dir := py2Project(t)
	_, code := run(t, "check", dir, "--ci")
	assert.Equal(t, 1, code, "should exit 1 while Python 2 constructs remain")
}

// --- Fix Tests ---

func TestE2E_FixThenCheckClean(t *testing.T) {
	dir := py2Project(t)

	out, code := run(t, "fix", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "fixed")

	data, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "import urllib.request")
	assert.Contains(t, string(data), `print("fetching", url)`)

	_, code = run(t, "check", dir, "--ci")
	assert.Equal(t, 0, code, "tree should be clean after fix")
}

func TestE2E_FixDryRun(t *testing.T) {
	dir := py2Project(t)
	original, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)

	out, code := run(t, "fix", dir, "--dry-run")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "would fix")

	after, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, string(original), string(after))
}

func TestE2E_FixBackupAndRestore(t *testing.T) {
	dir := py2Project(t)
	original, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)

	_, code := run(t, "fix", dir)
	assert.Equal(t, 0, code)

	out, code := run(t, "backups", "list", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "app.py")

	_, code = run(t, "backups", "restore", filepath.Join(dir, "app.py"), "--path", dir)
	assert.Equal(t, 0, code)

	restored, err := os.ReadFile(filepath.Join(dir, "app.py"))
	require.NoError(t, err)
	assert.Equal(t, string(original), string(restored))
}

// --- History Tests ---

func TestE2E_History(t *testing.T) {
	dir := py2Project(t)
	run(t, "check", dir)
	run(t, "fix", dir)

	out, code := run(t, "history", dir, "--json")
	assert.Equal(t, 0, code)

	var entries []domain.RunEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ModeVerify, entries[0].Mode)
	assert.Equal(t, domain.ModeApply, entries[1].Mode)
}

// --- Patterns Tests ---

func TestE2E_Patterns(t *testing.T) {
	out, code := run(t, "patterns")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "print-statement")
	assert.Contains(t, out, "xrange")
}

func TestE2E_PatternsJSON(t *testing.T) {
	out, code := run(t, "patterns", "--json")
	assert.Equal(t, 0, code)

	var rules []domain.Rule
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.True(t, len(rules) > 25)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "py3kit")
}
