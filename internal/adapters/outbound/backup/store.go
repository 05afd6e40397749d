package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/py3kit/py3kit/internal/domain"
)

const (
	backupDir = ".py3kit/backups"
	indexFile = "index.json"
)

// FileStore implements domain.BackupStore with copies under
// .py3kit/backups/ and a JSON index alongside them. A mutex serializes
// saves so parallel fix workers cannot corrupt the index.
type FileStore struct {
	projectPath string
	mu          sync.Mutex
}

func New(projectPath string) *FileStore {
	return &FileStore{projectPath: projectPath}
}

// Save copies originalPath into the backup directory and records it in the
// index. The original file is left untouched.
func (s *FileStore) Save(originalPath, description string) (domain.BackupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(originalPath)
	if err != nil {
		return domain.BackupRecord{}, err
	}

	dir := filepath.Join(s.projectPath, backupDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.BackupRecord{}, err
	}

	now := time.Now().UTC()
	rec := domain.BackupRecord{
		ID:           backupID(s.projectPath, originalPath, now),
		OriginalPath: originalPath,
		Timestamp:    now,
		Size:         info.Size(),
		Description:  description,
	}
	rec.BackupPath = filepath.Join(dir, rec.ID)

	if err := copyFile(originalPath, rec.BackupPath); err != nil {
		return domain.BackupRecord{}, err
	}

	index, err := s.loadIndex()
	if err != nil {
		return domain.BackupRecord{}, err
	}
	index = append(index, rec)
	if err := s.saveIndex(index); err != nil {
		return domain.BackupRecord{}, err
	}

	return rec, nil
}

// List returns every recorded backup, newest first.
func (s *FileStore) List() ([]domain.BackupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(index, func(i, j int) bool {
		return index[i].Timestamp.After(index[j].Timestamp)
	})
	return index, nil
}

// Restore copies the most recent backup of originalPath back over it.
func (s *FileStore) Restore(originalPath string) (domain.BackupRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex()
	if err != nil {
		return domain.BackupRecord{}, err
	}

	abs, err := filepath.Abs(originalPath)
	if err != nil {
		return domain.BackupRecord{}, err
	}

	var found *domain.BackupRecord
	for i := range index {
		rec := &index[i]
		if rec.OriginalPath != abs && rec.OriginalPath != originalPath {
			continue
		}
		if found == nil || rec.Timestamp.After(found.Timestamp) {
			found = rec
		}
	}
	if found == nil {
		return domain.BackupRecord{}, fmt.Errorf("no backup recorded for %s", originalPath)
	}

	if err := copyFile(found.BackupPath, found.OriginalPath); err != nil {
		return domain.BackupRecord{}, err
	}
	return *found, nil
}

func (s *FileStore) loadIndex() ([]domain.BackupRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.projectPath, backupDir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var index []domain.BackupRecord
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return index, nil
}

// saveIndex writes the index through a synced temp file and a rename. The
// index is shared by parallel fix workers, so it must be settled on disk
// before it becomes visible under its real name.
func (s *FileStore) saveIndex(index []domain.BackupRecord) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Join(s.projectPath, backupDir)
	tmp, err := os.CreateTemp(dir, ".index-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, filepath.Join(dir, indexFile)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// backupID derives a filesystem-safe name from the file's project-relative
// path and the save time, so repeated saves of one file never collide.
func backupID(projectPath, originalPath string, ts time.Time) string {
	rel, err := filepath.Rel(projectPath, originalPath)
	if err != nil {
		rel = filepath.Base(originalPath)
	}
	flat := strings.NewReplacer("/", "__", "\\", "__", "..", "up").Replace(filepath.ToSlash(rel))
	return fmt.Sprintf("%s.%s.bak", flat, ts.Format("20060102T150405.000000000"))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
