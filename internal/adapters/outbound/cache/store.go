package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/py3kit/py3kit/internal/domain"
)

const cacheFile = ".py3kit/cache/verify.json"

// cacheData is the on-disk shape: findings keyed by content hash, stamped
// with the catalog fingerprint that produced them.
type cacheData struct {
	Fingerprint string                   `json:"fingerprint"`
	Entries     map[string][]cachedMatch `json:"entries"`
}

// cachedMatch persists the whole match, byte spans included. domain.Match
// hides Start/End from report JSON, but a cache hit must hand back exactly
// what the engine returned.
type cachedMatch struct {
	RuleID     string `json:"rule_id"`
	Line       int    `json:"line"`
	Col        int    `json:"col"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
	Suggestion string `json:"suggestion,omitempty"`
}

func toCached(findings []domain.Match) []cachedMatch {
	out := make([]cachedMatch, len(findings))
	for i, m := range findings {
		out[i] = cachedMatch{
			RuleID:     m.RuleID,
			Line:       m.Line,
			Col:        m.Col,
			Start:      m.Start,
			End:        m.End,
			Text:       m.Text,
			Suggestion: m.Suggestion,
		}
	}
	return out
}

func fromCached(entries []cachedMatch) []domain.Match {
	out := make([]domain.Match, len(entries))
	for i, c := range entries {
		out[i] = domain.Match{
			RuleID:     c.RuleID,
			Line:       c.Line,
			Col:        c.Col,
			Start:      c.Start,
			End:        c.End,
			Text:       c.Text,
			Suggestion: c.Suggestion,
		}
	}
	return out
}

// Store implements domain.VerifyCache as a JSON file under .py3kit/cache/.
// Entries written by a different catalog fingerprint are discarded on load,
// so a changed rule table never serves stale findings.
type Store struct {
	projectPath string
	fingerprint string

	mu    sync.Mutex
	data  cacheData
	dirty bool
}

// New loads the cache for projectPath. Load failures are treated as an
// empty cache; the verify path must never fail because of it.
func New(projectPath, fingerprint string) *Store {
	s := &Store{
		projectPath: projectPath,
		fingerprint: fingerprint,
		data:        cacheData{Fingerprint: fingerprint, Entries: map[string][]cachedMatch{}},
	}

	raw, err := os.ReadFile(filepath.Join(projectPath, cacheFile))
	if err != nil {
		return s
	}

	var loaded cacheData
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return s
	}
	if loaded.Fingerprint != fingerprint || loaded.Entries == nil {
		s.dirty = true // drop the stale file on the next flush
		return s
	}

	s.data = loaded
	return s
}

func (s *Store) Get(contentHash string) ([]domain.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.data.Entries[contentHash]
	if !ok {
		return nil, false
	}
	return fromCached(entry), true
}

func (s *Store) Put(contentHash string, findings []domain.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Entries[contentHash] = toCached(findings)
	s.dirty = true
}

// Flush persists the cache if anything changed since load.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	fp := filepath.Join(s.projectPath, cacheFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(fp, data, 0644); err != nil {
		return err
	}

	s.dirty = false
	return nil
}
