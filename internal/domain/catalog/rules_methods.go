package catalog

import (
	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func dictIterMethodsRule() domain.Rule {
	return domain.Rule{
		ID:       "dict-iter-methods",
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "dict.iteritems/iterkeys/itervalues are gone",
		Explanation: "Python 3 dict.items(), .keys() and .values() return lazy views, " +
			"so the separate iter* methods were removed. The call is renamed to the " +
			"view method; code that relied on materialized lists needs list(...) instead.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "for k, v in d.iteritems(): pass\n",
			Py3: "for k, v in d.items(): pass\n",
		},
		Detect: detectAttrRename("dict-iter-methods", map[string]string{
			"iteritems":  "items",
			"iterkeys":   "keys",
			"itervalues": "values",
		}, true),
		Rewrite: domain.ReplaceSpan,
	}
}

func dictViewMethodsRule() domain.Rule {
	return domain.Rule{
		ID:       "dict-view-methods",
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "dict.viewitems/viewkeys/viewvalues are gone",
		Explanation: "The Python 2.7 view* methods became the behavior of the plain " +
			"items(), keys() and values() methods in Python 3.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "keys = d.viewkeys()\n",
			Py3: "keys = d.keys()\n",
		},
		Detect: detectAttrRename("dict-view-methods", map[string]string{
			"viewitems":  "items",
			"viewkeys":   "keys",
			"viewvalues": "values",
		}, true),
		Rewrite: domain.ReplaceSpan,
	}
}

func dictHasKeyRule() domain.Rule {
	const id = "dict-has-key"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "dict.has_key(k) was removed",
		Explanation: "has_key() disappeared in Python 3; membership is spelled " +
			"\"k in d\". The rewrite only fires when the receiver is a simple name or " +
			"attribute chain; anything fancier is reported without a suggestion. In " +
			"operand position the replacement is parenthesized, since a bare membership " +
			"test next to another operator would chain the comparison.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "if d.has_key(k): pass\n",
			Py3: "if k in d: pass\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "has_key" || !isAttribute(src, i) {
					continue
				}
				open := nextIdx(src, i)
				if !isOp(src, open, "(") {
					continue
				}
				dot := prevIdx(src, i)
				recv := receiverChain(src, dot)
				close := matchingParen(src, open)
				if recv < 0 || close < 0 {
					matches = append(matches, tokenMatch(src, id, t, ""))
					continue
				}
				key := sliceText(src, open+1, close)
				if key == "" {
					matches = append(matches, tokenMatch(src, id, t, ""))
					continue
				}
				recvText := sliceText(src, recv, dot)
				start := src.Tokens[recv].Start
				end := src.Tokens[close].End
				suggestion := key + " in " + recvText
				if membershipNeedsParens(src, recv, close) {
					suggestion = "(" + suggestion + ")"
				}
				matches = append(matches, spanMatch(src, id, src.Tokens[recv], start, end, suggestion))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

// membershipNeedsParens reports whether a spliced "k in d" must be
// parenthesized to survive its surroundings. The has_key call binds tightest;
// the membership test does not, so next to another operator Python would
// chain the comparison or rebind the operands ("a == d.has_key(k)" has to
// become "a == (k in d)", never "a == k in d").
func membershipNeedsParens(src *pysrc.Source, recv, close int) bool {
	return !boundaryBefore(src, prevIdx(src, recv)) || !boundaryAfter(src, nextIdx(src, close))
}

func boundaryBefore(src *pysrc.Source, i int) bool {
	if i < 0 {
		return true
	}
	t := src.Tokens[i]
	switch t.Kind {
	case pysrc.KindNewline:
		return true
	case pysrc.KindOp:
		switch t.Text {
		case "(", "[", "{", ",", ":", ";", "=":
			return true
		}
	case pysrc.KindName:
		switch t.Text {
		case "if", "elif", "while", "and", "or", "not", "assert", "return", "else":
			return true
		}
	}
	return false
}

func boundaryAfter(src *pysrc.Source, i int) bool {
	if i >= len(src.Tokens) {
		return true
	}
	t := src.Tokens[i]
	switch t.Kind {
	case pysrc.KindNewline, pysrc.KindComment:
		return true
	case pysrc.KindOp:
		switch t.Text {
		case ")", "]", "}", ",", ":", ";":
			return true
		}
	case pysrc.KindName:
		switch t.Text {
		case "and", "or", "else", "if":
			return true
		}
	}
	return false
}

func iteratorNextRule() domain.Rule {
	const id = "iterator-next-method"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "iterator.next() became next(iterator)",
		Explanation: "The iterator protocol method was renamed to __next__ in Python 3 " +
			"and is called through the next() builtin. Only argument-less calls on a " +
			"simple receiver are rewritten; .next() on arbitrary expressions is " +
			"reported for manual review since next may be an unrelated method name.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "value = it.next()\n",
			Py3: "value = next(it)\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "next" || !isAttribute(src, i) {
					continue
				}
				open := nextIdx(src, i)
				if !isOp(src, open, "(") {
					continue
				}
				close := nextIdx(src, open)
				if !isOp(src, close, ")") {
					continue // has arguments: not the iterator protocol
				}
				dot := prevIdx(src, i)
				recv := receiverChain(src, dot)
				if recv < 0 {
					matches = append(matches, tokenMatch(src, id, t, ""))
					continue
				}
				recvText := sliceText(src, recv, dot)
				start := src.Tokens[recv].Start
				end := src.Tokens[close].End
				matches = append(matches, spanMatch(src, id, src.Tokens[recv], start, end, "next("+recvText+")"))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func functionAttributesRule() domain.Rule {
	return domain.Rule{
		ID:       "function-attributes",
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "func_* attributes became dunder attributes",
		Explanation: "Function introspection attributes were renamed in Python 3: " +
			"func_name is __name__, func_code is __code__, and so on.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "name = f.func_name\n",
			Py3: "name = f.__name__\n",
		},
		Detect: detectAttrRename("function-attributes", map[string]string{
			"func_name":     "__name__",
			"func_doc":      "__doc__",
			"func_globals":  "__globals__",
			"func_defaults": "__defaults__",
			"func_code":     "__code__",
			"func_dict":     "__dict__",
			"func_closure":  "__closure__",
		}, false),
		Rewrite: domain.ReplaceSpan,
	}
}

func itertoolsFunctionsRule() domain.Rule {
	const id = "itertools-functions"
	renames := map[string]string{
		"izip":         "zip",
		"imap":         "map",
		"ifilter":      "filter",
		"ifilterfalse": "itertools.filterfalse",
		"izip_longest": "itertools.zip_longest",
	}
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "itertools.izip/imap/ifilter moved or became builtins",
		Explanation: "zip, map and filter are lazy in Python 3, replacing the itertools " +
			"i-variants; ifilterfalse and izip_longest lost their i prefix.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "pairs = itertools.izip(a, b)\n",
			Py3: "pairs = zip(a, b)\n",
		},
		Keywords: []string{"izip", "imap", "ifilter", "ifilterfalse", "izip_longest"},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "itertools" || isAttribute(src, i) {
					continue
				}
				dot := nextIdx(src, i)
				if !isOp(src, dot, ".") {
					continue
				}
				attr := nextIdx(src, dot)
				if attr >= len(src.Tokens) || src.Tokens[attr].Kind != pysrc.KindName {
					continue
				}
				to, ok := renames[src.Tokens[attr].Text]
				if !ok || !isOp(src, nextIdx(src, attr), "(") {
					continue
				}
				matches = append(matches, spanMatch(src, id, t, t.Start, src.Tokens[attr].End, to))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func sysMaxintRule() domain.Rule {
	const id = "sys-maxint"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryMethods,
		Kind:     domain.KindLexical,
		Summary:  "sys.maxint was removed",
		Explanation: "Python 3 integers are unbounded, so sys.maxint is gone. " +
			"sys.maxsize is the closest practical replacement.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "limit = sys.maxint\n",
			Py3: "limit = sys.maxsize\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "sys" || isAttribute(src, i) {
					continue
				}
				dot := nextIdx(src, i)
				if !isOp(src, dot, ".") {
					continue
				}
				attr := nextIdx(src, dot)
				if !isName(src, attr, "maxint") {
					continue
				}
				matches = append(matches, spanMatch(src, id, t, t.Start, src.Tokens[attr].End, "sys.maxsize"))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}
