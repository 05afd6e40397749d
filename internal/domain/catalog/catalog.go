// Package catalog holds the ordered table of migration rules: pure data plus
// pure detector/rewriter functions, loaded once at process start.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/camelcase"

	"github.com/py3kit/py3kit/internal/domain"
)

// Catalog is the immutable, ordered rule table. The slice order is the fix
// application order and must stay stable: renames that shrink or relocate
// constructs run before the statement rewrites whose detectors would
// otherwise see half-migrated text.
type Catalog struct {
	rules []domain.Rule
	byID  map[string]int
}

// New builds the catalog and runs the startup self-check over every rule's
// documented example. A failure here is a programming error in the rule
// table, so callers should treat it as fatal.
func New() (*Catalog, error) {
	rules := allRules()

	byID := make(map[string]int, len(rules))
	for i, r := range rules {
		if r.ID == "" || r.Summary == "" || r.Detect == nil {
			return nil, fmt.Errorf("rule #%d is incomplete", i)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate rule id %q", r.ID)
		}
		byID[r.ID] = i
	}

	c := &Catalog{rules: rules, byID: byID}
	if err := c.selfCheck(); err != nil {
		return nil, err
	}
	return c, nil
}

// allRules returns every rule in application order:
//
//  1. import renames (tree-shaped, run first so later lexical rules never
//     see legacy module names),
//  2. attribute and method renames,
//  3. builtin renames and removals,
//  4. literal and operator fixes,
//  5. statement rewrites, print last: its detector consumes whole logical
//     lines and must not misfire on text another rule still has to shrink.
func allRules() []domain.Rule {
	return []domain.Rule{
		legacyImportRule(),

		itertoolsFunctionsRule(),
		sysMaxintRule(),
		functionAttributesRule(),
		dictIterMethodsRule(),
		dictViewMethodsRule(),
		dictHasKeyRule(),
		iteratorNextRule(),

		xrangeRule(),
		rawInputRule(),
		unichrRule(),
		unicodeBuiltinRule(),
		basestringRule(),
		longBuiltinRule(),
		applyBuiltinRule(),
		execfileRule(),
		reduceBuiltinRule(),
		cmpBuiltinRule(),

		longLiteralRule(),
		octalLiteralRule(),
		unicodeStringPrefixRule(),
		neOperatorRule(),
		backtickReprRule(),
		integerDivisionRule(),

		metaclassAttributeRule(),
		execStatementRule(),
		exceptCommaRule(),
		raiseCommaRule(),
		printStatementRule(),
	}
}

// All returns every rule in application order. Callers must treat the slice
// as read-only.
func (c *Catalog) All() []domain.Rule { return c.rules }

// Len reports the number of rules.
func (c *Catalog) Len() int { return len(c.rules) }

// ByCategory returns the rules of one category, preserving catalog order.
func (c *Catalog) ByCategory(cat domain.Category) []domain.Rule {
	var out []domain.Rule
	for _, r := range c.rules {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}

// FindByID returns the rule with the given id.
func (c *Catalog) FindByID(id string) (domain.Rule, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Rule{}, &domain.NotFoundError{RuleID: id}
	}
	return c.rules[i], nil
}

// Has reports whether a rule id exists.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Search returns rules whose metadata mentions the keyword. CamelCase
// identifiers are split so "parser" finds the ConfigParser rename.
func (c *Catalog) Search(keyword string) []domain.Rule {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return c.All()
	}
	var out []domain.Rule
	for _, r := range c.rules {
		if strings.Contains(searchText(r), keyword) {
			out = append(out, r)
		}
	}
	return out
}

func searchText(r domain.Rule) string {
	var b strings.Builder
	b.WriteString(r.ID)
	b.WriteByte(' ')
	b.WriteString(string(r.Category))
	b.WriteByte(' ')
	b.WriteString(r.Summary)
	b.WriteByte(' ')
	b.WriteString(r.Explanation)
	b.WriteByte(' ')
	b.WriteString(r.Example.Py2)
	for _, kw := range r.Keywords {
		b.WriteByte(' ')
		b.WriteString(kw)
		for _, word := range camelcase.Split(kw) {
			b.WriteByte(' ')
			b.WriteString(word)
		}
	}
	return strings.ToLower(b.String())
}

// Fingerprint identifies this rule table's behavior-relevant content. Cached
// verify results stamped with a different fingerprint are discarded.
func (c *Catalog) Fingerprint() string {
	h := sha256.New()
	for _, r := range c.rules {
		fmt.Fprintf(h, "%s|%s|%s|%s|%t\n", r.ID, r.Category, r.Example.Py2, r.Example.Py3, r.CanFix())
	}
	return hex.EncodeToString(h.Sum(nil))
}
