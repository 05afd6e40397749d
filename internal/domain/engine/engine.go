// Package engine applies the rule catalog to one file's text: read-only
// detection for verification, detect-and-splice for fixing. It owns no state
// and performs no I/O.
package engine

import (
	"sort"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

// Engine runs an ordered rule list over text buffers. Safe for concurrent
// use: rules are immutable and every call works on its own Source.
type Engine struct {
	rules []domain.Rule
}

func New(rules []domain.Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's rule list in application order.
func (e *Engine) Rules() []domain.Rule { return e.rules }

// Verify runs every detector over text in catalog order and returns all
// findings. It returns a ParseError only when the text cannot be tokenized
// at all; a partial tokenize failure yields a syntax-error finding, skips
// tree-shaped rules, and still runs the lexical ones.
func (e *Engine) Verify(text string) ([]domain.Match, error) {
	src := pysrc.Parse(text)
	if src.Err != nil && tokenizedNothing(src) {
		return nil, &domain.ParseError{Err: src.Err}
	}

	var findings []domain.Match
	if src.Err != nil {
		findings = append(findings, syntaxErrorFinding(src))
	}
	for _, r := range e.rules {
		if r.Kind == domain.KindTree && src.Err != nil {
			continue
		}
		findings = append(findings, r.Detect(src)...)
	}
	return findings, nil
}

// Fix rewrites text by running each enabled, fixable rule in catalog order.
// Every rule re-detects against the current buffer, then applies its matches
// in descending source position so earlier offsets stay valid. A nil enabled
// func admits every rule.
//
// If no rule fires, FixedText is the input byte for byte, and running Fix on
// its own output applies nothing: each rule's rewrites never re-trigger its
// own detector (enforced by the catalog self-check).
func (e *Engine) Fix(text string, enabled func(ruleID string) bool) domain.FixResult {
	working := text
	var applied []domain.Match

	for _, r := range e.rules {
		if !r.CanFix() {
			continue
		}
		if enabled != nil && !enabled(r.ID) {
			continue
		}

		src := pysrc.Parse(working)
		if r.Kind == domain.KindTree && src.Err != nil {
			continue
		}

		matches := r.Detect(src)
		sort.Slice(matches, func(i, j int) bool { return matches[i].Start > matches[j].Start })
		for _, m := range matches {
			if m.Suggestion == "" {
				continue // detector flagged it but could not rewrite safely
			}
			working = r.Rewrite(working, m)
			applied = append(applied, m)
		}
	}

	return domain.FixResult{OriginalText: text, FixedText: working, Applied: applied}
}

// tokenizedNothing reports that only the synthetic end-of-file terminator
// survived tokenization.
func tokenizedNothing(src *pysrc.Source) bool {
	for _, t := range src.Tokens {
		if t.Kind != pysrc.KindNewline {
			return false
		}
	}
	return true
}

func syntaxErrorFinding(src *pysrc.Source) domain.Match {
	m := domain.Match{RuleID: domain.SyntaxErrorRuleID, Line: 1, Text: src.Err.Error()}
	if te, ok := src.Err.(*pysrc.TokenizeError); ok {
		m.Line = te.Line
		m.Start = te.Offset
		m.End = te.Offset
	}
	return m
}
