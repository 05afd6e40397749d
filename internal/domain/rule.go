package domain

import "github.com/py3kit/py3kit/internal/domain/pysrc"

// Category groups rules for filtering and display.
type Category string

const (
	CategoryImports   Category = "imports"
	CategorySyntax    Category = "syntax"
	CategoryBuiltins  Category = "builtins"
	CategoryMethods   Category = "methods"
	CategoryOperators Category = "operators"
)

// Categories enumerates all rule categories in display order.
var Categories = []Category{
	CategoryImports, CategoryMethods, CategoryBuiltins,
	CategoryOperators, CategorySyntax,
}

// Difficulty estimates how risky the manual half of a migration is.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// RuleKind distinguishes detectors that work on the token stream from those
// that need the recovered import statements.
type RuleKind string

const (
	// KindLexical rules run even when the file fails to tokenize fully.
	KindLexical RuleKind = "lexical"
	// KindTree rules are skipped on parse failure.
	KindTree RuleKind = "tree"
)

// Match is one detected occurrence of a Python-2-only construct. Start/End
// are byte offsets into the text the detector ran against; Suggestion is the
// replacement for that span, empty when the rule cannot rewrite this
// occurrence safely.
type Match struct {
	RuleID     string `json:"rule_id"`
	Line       int    `json:"line"`
	Col        int    `json:"col"`
	Start      int    `json:"-"`
	End        int    `json:"-"`
	Text       string `json:"text"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Rule pairs a detector with an optional rewriter and reference metadata.
// Rules are immutable value objects, built once at process start and shared
// read-only across every file scan.
type Rule struct {
	ID          string     `json:"id"`
	Category    Category   `json:"category"`
	Kind        RuleKind   `json:"kind"`
	Summary     string     `json:"summary"`
	Explanation string     `json:"explanation"`
	Difficulty  Difficulty `json:"difficulty"`
	Example     Example    `json:"example"`

	// Keywords carries extra search terms (e.g. every module name in a
	// rename table) beyond what the summary and example already say.
	Keywords []string `json:"-"`

	// Detect returns every occurrence in src, in ascending source order.
	Detect func(src *pysrc.Source) []Match `json:"-"`
	// Rewrite applies one match to text and returns the new text. Nil for
	// detect-only rules. Every rewriter's output must not re-trigger its own
	// detector; the catalog self-check enforces this at startup.
	Rewrite func(text string, m Match) string `json:"-"`
}

// Example documents a rule with a minimal before/after pair. The pair doubles
// as the self-check fixture.
type Example struct {
	Py2 string `json:"py2"`
	Py3 string `json:"py3"`
}

// CanFix reports whether the rule carries an automatic rewriter.
func (r Rule) CanFix() bool { return r.Rewrite != nil }

// ReplaceSpan is the standard rewriter: splice the match's suggestion over
// its span. Rules whose replacement is fully computed by the detector use it
// directly.
func ReplaceSpan(text string, m Match) string {
	if m.Start < 0 || m.End > len(text) || m.Start > m.End {
		return text
	}
	return text[:m.Start] + m.Suggestion + text[m.End:]
}
