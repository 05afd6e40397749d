package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/adapters/outbound/backup"
	"github.com/py3kit/py3kit/internal/adapters/outbound/history"
	"github.com/py3kit/py3kit/internal/application"
	"github.com/py3kit/py3kit/internal/domain"
)

func TestFixTree(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{
		"a.py":     "print \"hi\"\nfor i in xrange(3):\n    pass\n",
		"clean.py": "x = 1\n",
	})

	report, err := fix.FixTree(dir, application.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeApply, report.Mode)
	assert.Equal(t, 2, report.FilesScanned)
	assert.Equal(t, 1, report.FilesChanged)
	assert.Equal(t, 2, report.AppliedCount)
	assert.Zero(t, report.FilesFailed)

	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "print(\"hi\")\nfor i in range(3):\n    pass\n", string(data))
}

func TestFixTree_BackupBeforeOverwrite(t *testing.T) {
	_, fix := newTestServices(t)
	original := "import urllib2\n"
	dir := writeProject(t, map[string]string{"a.py": original})

	report, err := fix.FixTree(dir, application.FixOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, report.Files[0].BackupPath)

	records, err := backup.New(dir).List()
	require.NoError(t, err)
	require.Len(t, records, 1)

	saved, err := os.ReadFile(records[0].BackupPath)
	require.NoError(t, err)
	assert.Equal(t, original, string(saved))
}

func TestFixTree_DryRun(t *testing.T) {
	_, fix := newTestServices(t)
	original := "print \"hi\"\n"
	dir := writeProject(t, map[string]string{"a.py": original})

	report, err := fix.FixTree(dir, application.FixOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeDryRun, report.Mode)
	assert.Equal(t, 1, report.FilesChanged)
	assert.Equal(t, 1, report.AppliedCount)
	assert.Empty(t, report.Files[0].BackupPath)

	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	records, err := backup.New(dir).List()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFixTree_UnknownRuleID(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"a.py": "print 1\n"})

	_, err := fix.FixTree(dir, application.FixOptions{RuleIDs: []string{"no-such-rule"}})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "no-such-rule", nf.RuleID)
}

func TestFixTree_RuleFilter(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"a.py": "print \"hi\"\nn = xrange(2)\n"})

	report, err := fix.FixTree(dir, application.FixOptions{RuleIDs: []string{"xrange"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.AppliedCount)

	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "print \"hi\"\nn = range(2)\n", string(data))
}

func TestFixTree_FilterNeverOverridesDisable(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{
		"a.py":         "print \"hi\"\n",
		".py3kit.yaml": "rules:\n  disabled:\n    - print-statement\n",
	})

	report, err := fix.FixTree(dir, application.FixOptions{RuleIDs: []string{"print-statement"}})
	require.NoError(t, err)
	assert.Zero(t, report.AppliedCount)

	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "print \"hi\"\n", string(data))
}

func TestFixTree_DetectOnlyFindingsRemain(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"a.py": "half = 1/2\nprint \"done\"\n"})

	report, err := fix.FixTree(dir, application.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.AppliedCount)
	require.Len(t, report.Files[0].Findings, 1)
	assert.Equal(t, "integer-division", report.Files[0].Findings[0].RuleID)
}

func TestFixTree_PerFileFailuresDoNotAbort(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{
		"a.py": "print 1\n",
		"c.py": "print 3\n",
	})
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "b.py")))

	report, err := fix.FixTree(dir, application.FixOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.FilesFailed)
	assert.Equal(t, 2, report.FilesChanged)
	assert.Equal(t, 2, report.AppliedCount)
}

func TestFixTree_RecordsHistory(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"a.py": "print 1\n"})

	_, err := fix.FixTree(dir, application.FixOptions{})
	require.NoError(t, err)

	entries, err := history.New().Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ModeApply, entries[0].Mode)
	assert.Equal(t, 1, entries[0].FilesChanged)
	assert.Equal(t, 1, entries[0].AppliedCount)
}

func TestFixTree_PreservesFileMode(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"run.py": "print \"go\"\n"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "run.py"), 0755))

	_, err := fix.FixTree(dir, application.FixOptions{})
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "run.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestFixFile(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"a.py": "d.has_key('x')\n"})

	fr, err := fix.FixFile(filepath.Join(dir, "a.py"), application.FixOptions{})
	require.NoError(t, err)
	assert.Len(t, fr.Applied, 1)

	data, err := os.ReadFile(filepath.Join(dir, "a.py"))
	require.NoError(t, err)
	assert.Equal(t, "'x' in d\n", string(data))
}

func TestFixFile_Missing(t *testing.T) {
	_, fix := newTestServices(t)
	_, err := fix.FixFile(filepath.Join(t.TempDir(), "nope.py"), application.FixOptions{})
	assert.Error(t, err)
}

func TestFixFile_CleanFileUntouched(t *testing.T) {
	_, fix := newTestServices(t)
	dir := writeProject(t, map[string]string{"a.py": "x = 1\n"})

	fr, err := fix.FixFile(filepath.Join(dir, "a.py"), application.FixOptions{})
	require.NoError(t, err)
	assert.Zero(t, fr.Applied)
	assert.Empty(t, fr.BackupPath)
}
