package application

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/engine"
)

// FixOptions controls a fix run.
type FixOptions struct {
	// DryRun computes rewrites without touching any file.
	DryRun bool

	// RuleIDs restricts the run to the listed rules. Empty means every rule
	// the config enables.
	RuleIDs []string

	// Workers overrides the config's worker pool size when > 0.
	Workers int
}

// FixService orchestrates the rewrite pipeline:
// load config -> scan tree -> fix per file -> backup + atomic write -> aggregate.
type FixService struct {
	engine     *engine.Engine
	scanner    domain.TreeScanner
	loader     domain.ConfigLoader
	git        domain.GitInfo
	history    domain.RunHistory
	newBackups func(projectPath string) domain.BackupStore
}

func NewFixService(
	eng *engine.Engine,
	scanner domain.TreeScanner,
	loader domain.ConfigLoader,
	git domain.GitInfo,
	history domain.RunHistory,
	newBackups func(projectPath string) domain.BackupStore,
) *FixService {
	return &FixService{
		engine:     eng,
		scanner:    scanner,
		loader:     loader,
		git:        git,
		history:    history,
		newBackups: newBackups,
	}
}

// FixTree rewrites every Python file under projectPath. Changed files are
// backed up before being overwritten in place; per-file failures are
// recorded in the report and never abort the walk.
func (s *FixService) FixTree(projectPath string, opts FixOptions) (*domain.AggregateReport, error) {
	if err := s.checkRuleIDs(opts.RuleIDs); err != nil {
		return nil, err
	}

	cfg, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}

	scan, err := s.scanner.Scan(projectPath, cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	mode := domain.ModeApply
	if opts.DryRun {
		mode = domain.ModeDryRun
	}
	report := &domain.AggregateReport{
		RootPath:  scan.RootPath,
		Mode:      mode,
		Timestamp: time.Now().UTC(),
		Files:     make([]domain.FileReport, len(scan.PythonFiles)),
	}

	backups := s.newBackups(scan.RootPath)
	enabled := enabledFunc(cfg, opts.RuleIDs)

	workers := cfg.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	g := new(errgroup.Group)
	g.SetLimit(workerLimit(workers))
	for i, rel := range scan.PythonFiles {
		g.Go(func() error {
			report.Files[i] = s.fixOne(filepath.Join(scan.RootPath, rel), rel, enabled, opts.DryRun, backups)
			return nil
		})
	}
	g.Wait()

	report.Tally()
	s.stampCommit(report)

	if err := s.history.Append(scan.RootPath, runEntry(report)); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return report, nil
}

// FixFile rewrites a single file with the project config of the directory it
// lives in.
func (s *FixService) FixFile(path string, opts FixOptions) (domain.FileReport, error) {
	if err := s.checkRuleIDs(opts.RuleIDs); err != nil {
		return domain.FileReport{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.FileReport{}, err
	}

	projectPath := filepath.Dir(abs)
	cfg, err := s.loader.Load(projectPath)
	if err != nil {
		return domain.FileReport{}, err
	}

	backups := s.newBackups(projectPath)
	fr := s.fixOne(abs, filepath.Base(abs), enabledFunc(cfg, opts.RuleIDs), opts.DryRun, backups)
	if fr.Failed() {
		return fr, fmt.Errorf("fixing %s: %s", path, fr.Error)
	}
	return fr, nil
}

// fixOne rewrites one file. The backup is taken before the original is
// overwritten, and the write is a temp-file rename so a crash can never
// leave a half-written file behind.
func (s *FixService) fixOne(absPath, rel string, enabled func(string) bool, dryRun bool, backups domain.BackupStore) domain.FileReport {
	fr := domain.FileReport{Path: rel}

	info, err := os.Stat(absPath)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	result := s.engine.Fix(string(data), enabled)
	fr.Applied = result.Applied

	// Report what is left after the rewrites: detect-only findings and, for
	// files that still fail to tokenize, the syntax-error marker.
	if remaining, err := s.engine.Verify(result.FixedText); err == nil {
		fr.Findings = filterEnabled(remaining, enabled)
		fr.SyntaxError = hasSyntaxError(remaining)
	}

	if !result.Changed() || dryRun {
		return fr
	}

	rec, err := backups.Save(absPath, "pre-fix copy of "+rel)
	if err != nil {
		fr.Error = fmt.Sprintf("backup failed, file left untouched: %v", err)
		return fr
	}
	fr.BackupPath = rec.BackupPath

	if err := writeFileAtomic(absPath, []byte(result.FixedText), info.Mode().Perm()); err != nil {
		fr.Error = err.Error()
		return fr
	}
	return fr
}

func (s *FixService) checkRuleIDs(ids []string) error {
	known := make(map[string]bool)
	for _, r := range s.engine.Rules() {
		known[r.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return &domain.NotFoundError{RuleID: id}
		}
	}
	return nil
}

func (s *FixService) stampCommit(report *domain.AggregateReport) {
	if !s.git.IsGitRepo(report.RootPath) {
		return
	}
	if hash, err := s.git.CommitHash(report.RootPath); err == nil {
		report.CommitHash = hash
	}
}

// enabledFunc combines the config's rule selection with an explicit
// --rules filter. The filter narrows, it never overrides a disable.
func enabledFunc(cfg domain.MigrationConfig, ruleIDs []string) func(string) bool {
	filter := make(map[string]bool, len(ruleIDs))
	for _, id := range ruleIDs {
		filter[id] = true
	}
	return func(id string) bool {
		if len(filter) > 0 && !filter[id] {
			return false
		}
		return cfg.RuleEnabled(id)
	}
}

// writeFileAtomic writes data to a temp file in the target's directory and
// renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".py3kit-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
