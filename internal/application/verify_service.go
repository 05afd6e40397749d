package application

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/engine"
)

// VerifyService orchestrates the read-only check pipeline:
// load config -> scan tree -> detect per file (cached) -> aggregate.
type VerifyService struct {
	engine   *engine.Engine
	scanner  domain.TreeScanner
	loader   domain.ConfigLoader
	git      domain.GitInfo
	history  domain.RunHistory
	newCache func(projectPath string) domain.VerifyCache
}

func NewVerifyService(
	eng *engine.Engine,
	scanner domain.TreeScanner,
	loader domain.ConfigLoader,
	git domain.GitInfo,
	history domain.RunHistory,
	newCache func(projectPath string) domain.VerifyCache,
) *VerifyService {
	return &VerifyService{
		engine:   eng,
		scanner:  scanner,
		loader:   loader,
		git:      git,
		history:  history,
		newCache: newCache,
	}
}

// VerifyFile checks a single file and returns its findings. Unlike the tree
// walk, errors are returned directly: the caller asked about exactly this
// file.
func (s *VerifyService) VerifyFile(path string) ([]domain.Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	findings, err := s.engine.Verify(string(data))
	if err != nil {
		var pe *domain.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return findings, nil
}

// VerifyTree checks every Python file under projectPath. Per-file failures
// are recorded in the report and never abort the walk. The run is appended
// to history and the verify cache is flushed before returning.
func (s *VerifyService) VerifyTree(projectPath string) (*domain.AggregateReport, error) {
	cfg, err := s.loader.Load(projectPath)
	if err != nil {
		return nil, err
	}

	scan, err := s.scanner.Scan(projectPath, cfg.Ignore)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	cache := s.newCache(scan.RootPath)
	report := &domain.AggregateReport{
		RootPath:  scan.RootPath,
		Mode:      domain.ModeVerify,
		Timestamp: time.Now().UTC(),
		Files:     make([]domain.FileReport, len(scan.PythonFiles)),
	}

	g := new(errgroup.Group)
	g.SetLimit(workerLimit(cfg.Workers))
	for i, rel := range scan.PythonFiles {
		g.Go(func() error {
			report.Files[i] = s.verifyOne(scan.RootPath, rel, cfg, cache)
			return nil
		})
	}
	g.Wait()

	report.Tally()
	s.stampCommit(report)

	if err := cache.Flush(); err != nil {
		return nil, fmt.Errorf("flushing verify cache: %w", err)
	}
	if err := s.history.Append(scan.RootPath, runEntry(report)); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return report, nil
}

// verifyOne produces the FileReport for one scanned file. Each worker writes
// only its own report slot, so no locking is needed around the slice. Cached
// entries hold the full finding set; the config's rule selection is applied
// after the cache so toggling rules never invalidates it.
func (s *VerifyService) verifyOne(rootPath, rel string, cfg domain.MigrationConfig, cache domain.VerifyCache) domain.FileReport {
	fr := domain.FileReport{Path: rel}

	data, err := os.ReadFile(filepath.Join(rootPath, rel))
	if err != nil {
		fr.Error = err.Error()
		return fr
	}

	hash := contentHash(data)
	findings, hit := cache.Get(hash)
	if !hit {
		findings, err = s.engine.Verify(string(data))
		if err != nil {
			fr.Error = err.Error()
			return fr
		}
		cache.Put(hash, findings)
	}

	fr.Findings = filterEnabled(findings, cfg.RuleEnabled)
	fr.SyntaxError = hasSyntaxError(findings)
	return fr
}

// filterEnabled drops findings of disabled rules. The syntax-error marker is
// not a rule and always survives.
func filterEnabled(findings []domain.Match, enabled func(string) bool) []domain.Match {
	var out []domain.Match
	for _, m := range findings {
		if m.RuleID == domain.SyntaxErrorRuleID || enabled(m.RuleID) {
			out = append(out, m)
		}
	}
	return out
}

func (s *VerifyService) stampCommit(report *domain.AggregateReport) {
	if !s.git.IsGitRepo(report.RootPath) {
		return
	}
	if hash, err := s.git.CommitHash(report.RootPath); err == nil {
		report.CommitHash = hash
	}
}

func contentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hasSyntaxError(findings []domain.Match) bool {
	for _, m := range findings {
		if m.RuleID == domain.SyntaxErrorRuleID {
			return true
		}
	}
	return false
}

// workerLimit translates the config's Workers knob into an errgroup limit.
// Zero means sequential.
func workerLimit(workers int) int {
	if workers <= 0 {
		return 1
	}
	return workers
}

func runEntry(report *domain.AggregateReport) domain.RunEntry {
	return domain.RunEntry{
		Timestamp:    report.Timestamp,
		CommitHash:   report.CommitHash,
		Mode:         report.Mode,
		FilesScanned: report.FilesScanned,
		FilesChanged: report.FilesChanged,
		FilesFailed:  report.FilesFailed,
		FindingCount: report.FindingCount,
		AppliedCount: report.AppliedCount,
	}
}
