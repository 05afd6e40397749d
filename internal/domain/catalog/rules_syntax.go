package catalog

import (
	"strings"

	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func printStatementRule() domain.Rule {
	const id = "print-statement"
	return domain.Rule{
		ID:       id,
		Category: domain.CategorySyntax,
		Kind:     domain.KindLexical,
		Summary:  "the print statement became the print() function",
		Explanation: "print is an ordinary function in Python 3. The whole logical " +
			"line is rewritten, including \">>stream\" redirection (file=) and the " +
			"trailing-comma soft-space form (end=\" \"). Statements already using " +
			"parentheses are left untouched. Occurrences inside strings or comments " +
			"never fire: detection runs on the token stream, not raw text.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "print \"hello\"\n",
			Py3: "print(\"hello\")\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "print" || !src.StmtStart(i) {
					continue
				}
				end := trimTrailingComments(src, i+1, src.StmtEnd(i))
				if m, ok := buildPrintMatch(src, i, end); ok {
					matches = append(matches, m)
				}
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

// buildPrintMatch converts one print statement (tokens [i, end)) into a
// match, or reports false when the statement must be left alone.
func buildPrintMatch(src *pysrc.Source, i, end int) (domain.Match, bool) {
	t := src.Tokens[i]
	first := i + 1

	// Bare "print" prints a newline.
	if first >= end {
		return spanMatch(src, "print-statement", t, t.Start, t.End, "print()"), true
	}

	ft := src.Tokens[first]
	switch {
	case ft.Kind == pysrc.KindOp && ft.Text == "(":
		return domain.Match{}, false // already (or ambiguously) the function form
	case ft.Kind == pysrc.KindOp && !isPrintArgStart(ft.Text):
		return domain.Match{}, false // "print = 5", "print +=", comparison, etc.
	}

	var parts []string

	if ft.Kind == pysrc.KindOp && ft.Text == ">>" {
		// print >>stream, args
		comma := topLevelIndex(src, first+1, end, ",")
		if comma < 0 {
			stream := sliceText(src, first+1, end)
			if stream == "" {
				return domain.Match{}, false
			}
			suggestion := "print(file=" + stream + ")"
			return spanMatch(src, "print-statement", t, t.Start, src.Tokens[end-1].End, suggestion), true
		}
		stream := sliceText(src, first+1, comma)
		rest, trailing := argText(src, comma+1, end)
		parts = append(parts, rest)
		parts = append(parts, "file="+stream)
		if trailing {
			parts = append(parts, "end=\" \"")
		}
	} else {
		rest, trailing := argText(src, first, end)
		if rest == "" {
			return domain.Match{}, false
		}
		parts = append(parts, rest)
		if trailing {
			parts = append(parts, "end=\" \"")
		}
	}

	suggestion := "print(" + strings.Join(parts, ", ") + ")"
	return spanMatch(src, "print-statement", t, t.Start, src.Tokens[end-1].End, suggestion), true
}

// argText returns the source text of tokens [from, end) with a trailing
// top-level comma stripped, reporting whether one was stripped.
func argText(src *pysrc.Source, from, end int) (string, bool) {
	if end <= from {
		return "", false
	}
	if isOp(src, end-1, ",") {
		return sliceText(src, from, end-1), true
	}
	return sliceText(src, from, end), false
}

// isPrintArgStart reports whether an operator token can open a print
// argument list (unary ops, redirection, and display literals).
func isPrintArgStart(op string) bool {
	switch op {
	case ">>", "-", "+", "~", "[", "{", "`":
		return true
	}
	return false
}

func exceptCommaRule() domain.Rule {
	const id = "except-comma"
	return domain.Rule{
		ID:       id,
		Category: domain.CategorySyntax,
		Kind:     domain.KindLexical,
		Summary:  "except E, e became except E as e",
		Explanation: "The comma form of binding the caught exception is a syntax " +
			"error in Python 3. Tuple clauses like \"except (A, B), e\" are handled: " +
			"the comma inside the parentheses is not a binding comma.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "try: pass\nexcept ValueError, err: pass\n",
			Py3: "try: pass\nexcept ValueError as err: pass\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "except" || !src.StmtStart(i) {
					continue
				}
				end := src.StmtEnd(i)
				colon := topLevelIndex(src, i+1, end, ":")
				if colon < 0 {
					continue
				}
				if topLevelIndex(src, i+1, colon, "as") >= 0 {
					continue // already Python 3
				}
				comma := topLevelIndex(src, i+1, colon, ",")
				if comma < 0 {
					continue
				}
				exc := sliceText(src, i+1, comma)
				name := sliceText(src, comma+1, colon)
				if exc == "" || name == "" {
					continue
				}
				start := src.Tokens[i+1].Start
				spanEnd := src.Tokens[colon-1].End
				matches = append(matches, spanMatch(src, id, src.Tokens[i+1], start, spanEnd, exc+" as "+name))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func raiseCommaRule() domain.Rule {
	const id = "raise-comma"
	return domain.Rule{
		ID:       id,
		Category: domain.CategorySyntax,
		Kind:     domain.KindLexical,
		Summary:  "raise E, msg became raise E(msg)",
		Explanation: "The comma form of raise is a syntax error in Python 3. The " +
			"three-part form with a traceback is reported without a rewrite: it " +
			"needs .with_traceback(), which changes evaluation order.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "raise ValueError, 'bad input'\n",
			Py3: "raise ValueError('bad input')\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "raise" || !src.StmtStart(i) {
					continue
				}
				end := trimTrailingComments(src, i+1, src.StmtEnd(i))
				if i+1 >= end {
					continue
				}
				parts := splitTopLevelRange(src, i+1, end)
				if len(parts.commas) == 0 {
					continue
				}
				start := src.Tokens[i+1].Start
				spanEnd := src.Tokens[end-1].End
				anchor := src.Tokens[i+1]
				if len(parts.commas) > 1 || !isSimpleNameChain(src, i+1, parts.commas[0]) {
					matches = append(matches, spanMatch(src, id, anchor, start, spanEnd, ""))
					continue
				}
				exc := sliceText(src, i+1, parts.commas[0])
				arg := sliceText(src, parts.commas[0]+1, end)
				if arg == "" {
					matches = append(matches, spanMatch(src, id, anchor, start, spanEnd, ""))
					continue
				}
				matches = append(matches, spanMatch(src, id, anchor, start, spanEnd, exc+"("+arg+")"))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

type topLevelSplit struct {
	commas []int
}

// splitTopLevelRange records the top-level comma positions in [from, to).
func splitTopLevelRange(src *pysrc.Source, from, to int) topLevelSplit {
	var s topLevelSplit
	depth := 0
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
				s.commas = append(s.commas, j)
			}
		}
	}
	return s
}

// isSimpleNameChain reports whether tokens [from, to) form NAME ("." NAME)*.
func isSimpleNameChain(src *pysrc.Source, from, to int) bool {
	wantName := true
	for j := from; j < to; j++ {
		t := src.Tokens[j]
		if t.Kind == pysrc.KindComment {
			continue
		}
		if wantName {
			if t.Kind != pysrc.KindName {
				return false
			}
		} else {
			if t.Kind != pysrc.KindOp || t.Text != "." {
				return false
			}
		}
		wantName = !wantName
	}
	return !wantName
}

func execStatementRule() domain.Rule {
	const id = "exec-statement"
	return domain.Rule{
		ID:       id,
		Category: domain.CategorySyntax,
		Kind:     domain.KindLexical,
		Summary:  "the exec statement became the exec() function",
		Explanation: "exec is a function in Python 3. \"exec code in globals, locals\" " +
			"becomes exec(code, globals, locals).",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "exec code\n",
			Py3: "exec(code)\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "exec" || !src.StmtStart(i) {
					continue
				}
				end := trimTrailingComments(src, i+1, src.StmtEnd(i))
				if i+1 >= end || isOp(src, i+1, "(") {
					continue // bare name or already the function form
				}
				var suggestion string
				if in := topLevelIndex(src, i+1, end, "in"); in >= 0 {
					code := sliceText(src, i+1, in)
					scopes := sliceText(src, in+1, end)
					if code != "" && scopes != "" {
						suggestion = "exec(" + code + ", " + scopes + ")"
					}
				} else {
					code := sliceText(src, i+1, end)
					if code != "" {
						suggestion = "exec(" + code + ")"
					}
				}
				if suggestion == "" {
					continue
				}
				spanEnd := src.Tokens[end-1].End
				matches = append(matches, spanMatch(src, id, t, t.Start, spanEnd, suggestion))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func metaclassAttributeRule() domain.Rule {
	const id = "metaclass-attribute"
	return domain.Rule{
		ID:       id,
		Category: domain.CategorySyntax,
		Kind:     domain.KindLexical,
		Summary:  "__metaclass__ assignments are ignored in Python 3",
		Explanation: "Python 3 selects metaclasses via the class statement: " +
			"class C(metaclass=Meta). A __metaclass__ assignment is silently dead " +
			"code, so it is flagged for manual restructuring, never rewritten.",
		Difficulty: domain.DifficultyHard,
		Example: domain.Example{
			Py2: "__metaclass__ = Meta\n",
			Py3: "class C(metaclass=Meta): pass\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "__metaclass__" || !src.StmtStart(i) {
					continue
				}
				if !isOp(src, nextIdx(src, i), "=") {
					continue
				}
				matches = append(matches, tokenMatch(src, id, t, ""))
			}
			return matches
		},
	}
}
