package domain

import "time"

// SyntaxErrorRuleID tags the pseudo-finding emitted when a file fails to
// tokenize. Tree rules are skipped for such files; lexical rules still run.
const SyntaxErrorRuleID = "syntax-error"

// FixResult is the outcome of fixing one text buffer. If Applied is empty,
// FixedText equals OriginalText byte for byte.
type FixResult struct {
	OriginalText string  `json:"-"`
	FixedText    string  `json:"-"`
	Applied      []Match `json:"applied"`
}

// Changed reports whether any rewrite fired.
func (r FixResult) Changed() bool { return len(r.Applied) > 0 }

// FileReport is the per-file entry of an aggregate run. Exactly one of the
// failure fields is set when the file could not be processed; the tree walk
// always continues past it.
type FileReport struct {
	Path        string  `json:"path"`
	Findings    []Match `json:"findings,omitempty"`
	Applied     []Match `json:"applied,omitempty"`
	BackupPath  string  `json:"backup_path,omitempty"`
	SyntaxError bool    `json:"syntax_error,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// Failed reports whether the file was skipped due to an I/O or write error.
func (f FileReport) Failed() bool { return f.Error != "" }

// Run modes for AggregateReport.
const (
	ModeVerify = "verify"
	ModeDryRun = "dry-run"
	ModeApply  = "apply"
)

// AggregateReport sums one tree walk. Files are ordered by path so identical
// inputs always render identically.
type AggregateReport struct {
	RootPath     string       `json:"root_path"`
	Mode         string       `json:"mode"`
	CommitHash   string       `json:"commit_hash,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
	Files        []FileReport `json:"files"`
	FilesScanned int          `json:"files_scanned"`
	FilesChanged int          `json:"files_changed"`
	FilesFailed  int          `json:"files_failed"`
	FindingCount int          `json:"finding_count"`
	AppliedCount int          `json:"applied_count"`
}

// Tally recomputes the summary counters from Files.
func (r *AggregateReport) Tally() {
	r.FilesScanned = len(r.Files)
	r.FilesChanged = 0
	r.FilesFailed = 0
	r.FindingCount = 0
	r.AppliedCount = 0
	for _, f := range r.Files {
		if f.Failed() {
			r.FilesFailed++
			continue
		}
		r.FindingCount += len(f.Findings)
		r.AppliedCount += len(f.Applied)
		if len(f.Applied) > 0 {
			r.FilesChanged++
		}
	}
}

// Clean reports whether the walk found nothing to migrate and hit no errors.
func (r *AggregateReport) Clean() bool {
	return r.FilesFailed == 0 && r.FindingCount == 0 && r.AppliedCount == 0
}
