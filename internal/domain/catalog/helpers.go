package catalog

import (
	"strings"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

// prevIdx returns the index of the previous non-comment token, or -1.
func prevIdx(src *pysrc.Source, i int) int {
	for j := i - 1; j >= 0; j-- {
		if src.Tokens[j].Kind != pysrc.KindComment {
			return j
		}
	}
	return -1
}

// nextIdx returns the index of the next non-comment token, or len(Tokens).
func nextIdx(src *pysrc.Source, i int) int {
	for j := i + 1; j < len(src.Tokens); j++ {
		if src.Tokens[j].Kind != pysrc.KindComment {
			return j
		}
	}
	return len(src.Tokens)
}

func isOp(src *pysrc.Source, i int, text string) bool {
	return i >= 0 && i < len(src.Tokens) &&
		src.Tokens[i].Kind == pysrc.KindOp && src.Tokens[i].Text == text
}

func isName(src *pysrc.Source, i int, text string) bool {
	return i >= 0 && i < len(src.Tokens) &&
		src.Tokens[i].Kind == pysrc.KindName && src.Tokens[i].Text == text
}

// isAttribute reports whether the name token at i is an attribute access
// (preceded by a dot).
func isAttribute(src *pysrc.Source, i int) bool {
	return isOp(src, prevIdx(src, i), ".")
}

// spanMatch builds a Match over an explicit byte span, taking line/col from
// the anchor token.
func spanMatch(src *pysrc.Source, ruleID string, anchor pysrc.Token, start, end int, suggestion string) domain.Match {
	return domain.Match{
		RuleID:     ruleID,
		Line:       anchor.Line,
		Col:        anchor.Col,
		Start:      start,
		End:        end,
		Text:       src.Text[start:end],
		Suggestion: suggestion,
	}
}

// tokenMatch builds a Match covering exactly one token.
func tokenMatch(src *pysrc.Source, ruleID string, t pysrc.Token, suggestion string) domain.Match {
	return spanMatch(src, ruleID, t, t.Start, t.End, suggestion)
}

// detectNameCall finds free calls of a builtin: NAME "(" where the name is
// not an attribute access. The match covers the name token only.
func detectNameCall(ruleID, from, to string) func(src *pysrc.Source) []domain.Match {
	return func(src *pysrc.Source) []domain.Match {
		var matches []domain.Match
		for i, t := range src.Tokens {
			if t.Kind != pysrc.KindName || t.Text != from {
				continue
			}
			if isAttribute(src, i) || !isOp(src, nextIdx(src, i), "(") {
				continue
			}
			matches = append(matches, tokenMatch(src, ruleID, t, to))
		}
		return matches
	}
}

// detectBareName finds any non-attribute use of a name.
func detectBareName(ruleID, from, to string) func(src *pysrc.Source) []domain.Match {
	return func(src *pysrc.Source) []domain.Match {
		var matches []domain.Match
		for i, t := range src.Tokens {
			if t.Kind != pysrc.KindName || t.Text != from || isAttribute(src, i) {
				continue
			}
			matches = append(matches, tokenMatch(src, ruleID, t, to))
		}
		return matches
	}
}

// detectAttrRename finds attribute accesses whose attribute name is in the
// rename table. With callOnly set, the attribute must be invoked.
func detectAttrRename(ruleID string, renames map[string]string, callOnly bool) func(src *pysrc.Source) []domain.Match {
	return func(src *pysrc.Source) []domain.Match {
		var matches []domain.Match
		for i, t := range src.Tokens {
			if t.Kind != pysrc.KindName {
				continue
			}
			to, ok := renames[t.Text]
			if !ok || !isAttribute(src, i) {
				continue
			}
			if callOnly && !isOp(src, nextIdx(src, i), "(") {
				continue
			}
			matches = append(matches, tokenMatch(src, ruleID, t, to))
		}
		return matches
	}
}

// receiverChain walks back from dotIdx (the "." before an attribute) and
// returns the start index of a simple receiver chain NAME ("." NAME)*.
// Returns -1 for anything more complex (calls, subscripts), which callers
// surface as detect-only matches.
func receiverChain(src *pysrc.Source, dotIdx int) int {
	j := prevIdx(src, dotIdx)
	if j < 0 || src.Tokens[j].Kind != pysrc.KindName {
		return -1
	}
	for {
		k := prevIdx(src, j)
		if !isOp(src, k, ".") {
			break
		}
		k2 := prevIdx(src, k)
		if k2 < 0 || src.Tokens[k2].Kind != pysrc.KindName {
			return -1
		}
		j = k2
	}
	// A closing bracket right before the chain means the chain is the tail
	// of a larger expression.
	if k := prevIdx(src, j); isOp(src, k, ")") || isOp(src, k, "]") {
		return -1
	}
	return j
}

// matchingParen returns the token index of the ")" closing the "(" at
// openIdx, or -1.
func matchingParen(src *pysrc.Source, openIdx int) int {
	depth := 0
	for j := openIdx; j < len(src.Tokens); j++ {
		t := src.Tokens[j]
		if t.Kind != pysrc.KindOp {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// splitTopLevel splits the token range [from, to) at top-level commas and
// returns the trimmed source text of each piece. Empty pieces are kept so
// callers can reject malformed argument lists.
func splitTopLevel(src *pysrc.Source, from, to int) []string {
	var parts []string
	depth := 0
	segStart := from
	flush := func(end int) {
		if end <= segStart {
			parts = append(parts, "")
			return
		}
		parts = append(parts, strings.TrimSpace(src.Text[src.Tokens[segStart].Start:src.Tokens[end-1].End]))
	}
	for j := from; j < to; j++ {
		t := src.Tokens[j]
		if t.Kind != pysrc.KindOp {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ",":
			if depth == 0 {
				flush(j)
				segStart = j + 1
			}
		}
	}
	flush(to)
	return parts
}

// topLevelIndex returns the index of the first top-level occurrence of the
// given op or name text within [from, to), or -1.
func topLevelIndex(src *pysrc.Source, from, to int, text string) int {
	depth := 0
	for j := from; j < to; j++ {
		t := src.Tokens[j]
		if t.Kind == pysrc.KindOp {
			switch t.Text {
			case "(", "[", "{":
				depth++
				continue
			case ")", "]", "}":
				depth--
				continue
			}
		}
		if depth == 0 && t.Text == text && t.Kind != pysrc.KindString && t.Kind != pysrc.KindComment {
			return j
		}
	}
	return -1
}

// sliceText returns the trimmed source text spanning tokens [from, to).
func sliceText(src *pysrc.Source, from, to int) string {
	if to <= from {
		return ""
	}
	return strings.TrimSpace(src.Text[src.Tokens[from].Start:src.Tokens[to-1].End])
}

// trimTrailingComments shrinks the token range [from, to) past any trailing
// comment tokens.
func trimTrailingComments(src *pysrc.Source, from, to int) int {
	for to > from && src.Tokens[to-1].Kind == pysrc.KindComment {
		to--
	}
	return to
}
