package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/py3kit/py3kit/internal/domain"
)

// Directories never worth descending into, on top of the config's ignore
// globs.
var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	".tox":          true,
	".venv":         true,
	"venv":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".py3kit":       true,
	"site-packages": true,
}

// FileScanner implements domain.TreeScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects every .py file under projectPath, relative to it and sorted,
// so tree walks process files in a deterministic order.
func (s *FileScanner) Scan(projectPath string, ignore []string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, relErr := filepath.Rel(absPath, path)
		if relErr != nil {
			return relErr
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || ignored(relPath, ignore) {
				return filepath.SkipDir
			}
			return nil
		}

		result.TotalFiles++
		if !strings.HasSuffix(d.Name(), ".py") || ignored(relPath, ignore) {
			return nil
		}
		result.PythonFiles = append(result.PythonFiles, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.PythonFiles)
	return result, nil
}

// ignored matches the slash-relative path against the ignore globs. A
// pattern ending in "/**" excludes the whole subtree; otherwise it must
// match the full path or its base name.
func ignored(relPath string, patterns []string) bool {
	base := filepath.Base(relPath)
	for _, p := range patterns {
		if sub, ok := strings.CutSuffix(p, "/**"); ok {
			if relPath == sub || strings.HasPrefix(relPath, sub+"/") {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(p, relPath); ok {
			return true
		}
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	return false
}
