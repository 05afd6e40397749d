package catalog

import (
	"sort"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

// selfCheck proves three properties for every rule using its documented
// example: the example triggers the detector, the rewriter reproduces the
// documented Python 3 form, and the rewritten output no longer triggers the
// detector. The last property is what makes fix idempotent, so a violation
// is surfaced as a RuleConflictError and aborts startup.
func (c *Catalog) selfCheck() error {
	for _, r := range c.rules {
		src := pysrc.Parse(r.Example.Py2)
		if src.Err != nil {
			return &domain.RuleConflictError{RuleID: r.ID, Reason: "example does not tokenize: " + src.Err.Error()}
		}
		matches := r.Detect(src)
		if len(matches) == 0 {
			return &domain.RuleConflictError{RuleID: r.ID, Reason: "documented example does not trigger the detector"}
		}
		if !r.CanFix() {
			continue
		}

		fixed := applyAll(r, r.Example.Py2, matches)
		if fixed != r.Example.Py3 {
			return &domain.RuleConflictError{
				RuleID: r.ID,
				Reason: "rewriting the example produced " + fixed + " instead of the documented " + r.Example.Py3,
			}
		}

		again := r.Detect(pysrc.Parse(fixed))
		if countFixable(again) > 0 {
			return &domain.RuleConflictError{RuleID: r.ID, Reason: "rewritten output re-triggers the detector"}
		}
	}
	return nil
}

// applyAll splices every fixable match in descending source order, the same
// discipline the engine uses.
func applyAll(r domain.Rule, text string, matches []domain.Match) string {
	ordered := make([]domain.Match, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })
	for _, m := range ordered {
		if m.Suggestion == "" {
			continue
		}
		text = r.Rewrite(text, m)
	}
	return text
}

func countFixable(matches []domain.Match) int {
	n := 0
	for _, m := range matches {
		if m.Suggestion != "" {
			n++
		}
	}
	return n
}
