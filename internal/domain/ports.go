package domain

import "time"

// TreeScanner walks a project directory and returns the Python files to
// process, honoring built-in skip dirs plus the config's ignore globs.
type TreeScanner interface {
	Scan(projectPath string, ignore []string) (*ScanResult, error)
}

// ScanResult holds the outcome of scanning a project directory. Paths are
// relative to RootPath and sorted.
type ScanResult struct {
	RootPath    string   `json:"root_path"`
	PythonFiles []string `json:"python_files"`
	TotalFiles  int      `json:"total_files"`
}

// BackupStore copies a file aside before an in-place rewrite and keeps the
// metadata needed to find it again. Implementations must serialize
// concurrent saves.
type BackupStore interface {
	Save(originalPath, description string) (BackupRecord, error)
	List() ([]BackupRecord, error)
	Restore(originalPath string) (BackupRecord, error)
}

// BackupRecord is one saved copy of a file.
type BackupRecord struct {
	ID           string    `json:"id"`
	OriginalPath string    `json:"original_path"`
	BackupPath   string    `json:"backup_path"`
	Timestamp    time.Time `json:"timestamp"`
	Size         int64     `json:"size"`
	Description  string    `json:"description,omitempty"`
}

// ConfigLoader reads the project's migration config, returning defaults when
// none exists.
type ConfigLoader interface {
	Load(projectPath string) (MigrationConfig, error)
}

// VerifyCache memoizes verify findings keyed by a content hash. Valid because
// Verify is referentially transparent; the catalog fingerprint invalidates
// entries when the rule table changes.
type VerifyCache interface {
	Get(contentHash string) ([]Match, bool)
	Put(contentHash string, findings []Match)
	Flush() error
}

// RunHistory appends and lists migration run entries.
type RunHistory interface {
	Append(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// RunEntry is one recorded check or fix run.
type RunEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	CommitHash   string    `json:"commit_hash,omitempty"`
	Mode         string    `json:"mode"`
	FilesScanned int       `json:"files_scanned"`
	FilesChanged int       `json:"files_changed"`
	FilesFailed  int       `json:"files_failed"`
	FindingCount int       `json:"finding_count"`
	AppliedCount int       `json:"applied_count"`
}

// GitInfo resolves repository metadata for reports and history.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}
