package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/py3kit/py3kit/internal/adapters/outbound/scanner"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("pass\n"), 0644))
}

func TestScan_PythonFilesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py")
	writeFile(t, dir, "lib/util.py")
	writeFile(t, dir, "README.md")
	writeFile(t, dir, "script.sh")

	result, err := scanner.New().Scan(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"app.py", "lib/util.py"}, result.PythonFiles)
	assert.Equal(t, 4, result.TotalFiles)
}

func TestScan_Sorted(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.py")
	writeFile(t, dir, "a.py")
	writeFile(t, dir, "m/b.py")

	result, err := scanner.New().Scan(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "m/b.py", "z.py"}, result.PythonFiles)
}

func TestScan_SkipsWellKnownDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py")
	writeFile(t, dir, ".git/hooks/hook.py")
	writeFile(t, dir, "__pycache__/app.py")
	writeFile(t, dir, "venv/lib/thing.py")
	writeFile(t, dir, ".py3kit/backups/app.py.bak")

	result, err := scanner.New().Scan(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, result.PythonFiles)
}

func TestScan_IgnoreGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py")
	writeFile(t, dir, "app_test.py")
	writeFile(t, dir, "legacy/old.py")
	writeFile(t, dir, "legacy/deep/older.py")

	result, err := scanner.New().Scan(dir, []string{"*_test.py", "legacy/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, result.PythonFiles)
}

func TestScan_AbsoluteRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py")

	result, err := scanner.New().Scan(dir, nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(result.RootPath))
}

func TestScan_MissingDir(t *testing.T) {
	_, err := scanner.New().Scan(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}
