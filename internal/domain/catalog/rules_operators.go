package catalog

import (
	"strings"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func longLiteralRule() domain.Rule {
	const id = "long-literal"
	return domain.Rule{
		ID:         id,
		Category:   domain.CategoryOperators,
		Kind:       domain.KindLexical,
		Summary:    "long literal suffix (42L) was removed",
		Explanation: "Python 3 has a single integer type, so the L suffix is a syntax error.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "n = 42L\n",
			Py3: "n = 42\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for _, t := range src.Tokens {
				if t.Kind != pysrc.KindNumber || len(t.Text) < 2 {
					continue
				}
				if last := t.Text[len(t.Text)-1]; last != 'l' && last != 'L' {
					continue
				}
				matches = append(matches, tokenMatch(src, id, t, t.Text[:len(t.Text)-1]))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func octalLiteralRule() domain.Rule {
	const id = "octal-literal"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryOperators,
		Kind:     domain.KindLexical,
		Summary:  "leading-zero octal literals (0755) need the 0o prefix",
		Explanation: "Python 3 rejects the bare leading-zero octal notation; 0755 " +
			"must be written 0o755.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "mode = 0755\n",
			Py3: "mode = 0o755\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for _, t := range src.Tokens {
				if t.Kind != pysrc.KindNumber || !isLegacyOctal(t.Text) {
					continue
				}
				matches = append(matches, tokenMatch(src, id, t, "0o"+t.Text[1:]))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

// isLegacyOctal reports a bare leading-zero octal literal. "0", "0.5", "0x1f"
// and "0o755" are not legacy octals.
func isLegacyOctal(text string) bool {
	if len(text) < 2 || text[0] != '0' {
		return false
	}
	for i := 1; i < len(text); i++ {
		if text[i] < '0' || text[i] > '7' {
			return false
		}
	}
	return true
}

func unicodeStringPrefixRule() domain.Rule {
	const id = "unicode-string-prefix"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryOperators,
		Kind:     domain.KindLexical,
		Summary:  "u'' string prefixes are redundant",
		Explanation: "Every plain string literal is text in Python 3, so the u prefix " +
			"is dropped (ur'...' becomes r'...'). Byte literals keep their b prefix.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "s = u'text'\n",
			Py3: "s = 'text'\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for _, t := range src.Tokens {
				if t.Kind != pysrc.KindString {
					continue
				}
				prefixLen := 0
				for prefixLen < len(t.Text) && t.Text[prefixLen] != '\'' && t.Text[prefixLen] != '"' {
					prefixLen++
				}
				prefix := t.Text[:prefixLen]
				if !strings.ContainsAny(prefix, "uU") {
					continue
				}
				stripped := strings.Map(func(r rune) rune {
					if r == 'u' || r == 'U' {
						return -1
					}
					return r
				}, prefix)
				// Include the opening quote so the replacement is never
				// empty (an empty suggestion means detect-only).
				quote := t.Text[prefixLen]
				matches = append(matches, spanMatch(src, id, t, t.Start, t.Start+prefixLen+1, stripped+string(quote)))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func neOperatorRule() domain.Rule {
	const id = "ne-operator"
	return domain.Rule{
		ID:         id,
		Category:   domain.CategoryOperators,
		Kind:       domain.KindLexical,
		Summary:    "the <> operator was removed",
		Explanation: "<> was an alias for != and is a syntax error in Python 3.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "if a <> b: pass\n",
			Py3: "if a != b: pass\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for _, t := range src.Tokens {
				if t.Kind == pysrc.KindOp && t.Text == "<>" {
					matches = append(matches, tokenMatch(src, id, t, "!="))
				}
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func backtickReprRule() domain.Rule {
	const id = "backtick-repr"
	return domain.Rule{
		ID:         id,
		Category:   domain.CategoryOperators,
		Kind:       domain.KindLexical,
		Summary:    "backtick repr (`x`) was removed",
		Explanation: "The backtick notation is a syntax error in Python 3; use repr(x).",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "s = `value`\n",
			Py3: "s = repr(value)\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i := 0; i < len(src.Tokens); i++ {
				t := src.Tokens[i]
				if t.Kind != pysrc.KindOp || t.Text != "`" {
					continue
				}
				j := i + 1
				for j < len(src.Tokens) && !isOp(src, j, "`") {
					j++
				}
				if j >= len(src.Tokens) {
					break // unbalanced, leave it alone
				}
				inner := strings.TrimSpace(src.Text[t.End:src.Tokens[j].Start])
				var suggestion string
				if inner != "" {
					suggestion = "repr(" + inner + ")"
				}
				matches = append(matches, spanMatch(src, id, t, t.Start, src.Tokens[j].End, suggestion))
				i = j
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func integerDivisionRule() domain.Rule {
	const id = "integer-division"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryOperators,
		Kind:     domain.KindLexical,
		Summary:  "/ between integers truncates in Python 2 but not in Python 3",
		Explanation: "Python 3's / always returns a float; truncating division is //. " +
			"Only literal-int divisions are flagged, and never rewritten, because the " +
			"intended semantics cannot be inferred from the source.",
		Difficulty: domain.DifficultyHard,
		Example: domain.Example{
			Py2: "half = 1 / 2\n",
			Py3: "half = 1 // 2\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i := 1; i+1 < len(src.Tokens); i++ {
				t := src.Tokens[i]
				if t.Kind != pysrc.KindOp || t.Text != "/" {
					continue
				}
				left, right := src.Tokens[i-1], src.Tokens[i+1]
				if !isPlainInt(left) || !isPlainInt(right) {
					continue
				}
				matches = append(matches, spanMatch(src, id, left, left.Start, right.End, ""))
			}
			return matches
		},
	}
}

func isPlainInt(t pysrc.Token) bool {
	if t.Kind != pysrc.KindNumber || len(t.Text) == 0 {
		return false
	}
	for i := 0; i < len(t.Text); i++ {
		if t.Text[i] < '0' || t.Text[i] > '9' {
			return false
		}
	}
	return true
}
