package catalog

import (
	"github.com/py3kit/py3kit/internal/domain"
	"github.com/py3kit/py3kit/internal/domain/pysrc"
)

func xrangeRule() domain.Rule {
	return domain.Rule{
		ID:       "xrange",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "xrange() became range()",
		Explanation: "Python 3's range() is lazy, so xrange() was dropped. The call " +
			"is renamed; code that sliced or re-iterated the result keeps working.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "for i in xrange(10): pass\n",
			Py3: "for i in range(10): pass\n",
		},
		Detect:  detectNameCall("xrange", "xrange", "range"),
		Rewrite: domain.ReplaceSpan,
	}
}

func rawInputRule() domain.Rule {
	return domain.Rule{
		ID:       "raw-input",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "raw_input() became input()",
		Explanation: "Python 3's input() returns a string like Python 2's raw_input() " +
			"did. Python 2 code that used the old evaluating input() needs a manual " +
			"eval() wrapper, which this rule intentionally does not add.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "name = raw_input('name? ')\n",
			Py3: "name = input('name? ')\n",
		},
		Detect:  detectNameCall("raw-input", "raw_input", "input"),
		Rewrite: domain.ReplaceSpan,
	}
}

func unichrRule() domain.Rule {
	return domain.Rule{
		ID:         "unichr",
		Category:   domain.CategoryBuiltins,
		Kind:       domain.KindLexical,
		Summary:    "unichr() became chr()",
		Explanation: "chr() handles the full Unicode range in Python 3, so unichr() was removed.",
		Difficulty: domain.DifficultyEasy,
		Example: domain.Example{
			Py2: "c = unichr(0x2603)\n",
			Py3: "c = chr(0x2603)\n",
		},
		Detect:  detectNameCall("unichr", "unichr", "chr"),
		Rewrite: domain.ReplaceSpan,
	}
}

func unicodeBuiltinRule() domain.Rule {
	return domain.Rule{
		ID:       "unicode-builtin",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "unicode() became str()",
		Explanation: "Python 3 text is str. unicode(x) calls are renamed to str(x); " +
			"only the call form is touched so variables named unicode survive.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "s = unicode(value)\n",
			Py3: "s = str(value)\n",
		},
		Detect:  detectNameCall("unicode-builtin", "unicode", "str"),
		Rewrite: domain.ReplaceSpan,
	}
}

func basestringRule() domain.Rule {
	return domain.Rule{
		ID:       "basestring",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "basestring was removed",
		Explanation: "With bytes and str fully split in Python 3 there is no common " +
			"string base class; isinstance checks against basestring become str.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "if isinstance(s, basestring): pass\n",
			Py3: "if isinstance(s, str): pass\n",
		},
		Detect:  detectBareName("basestring", "basestring", "str"),
		Rewrite: domain.ReplaceSpan,
	}
}

func longBuiltinRule() domain.Rule {
	return domain.Rule{
		ID:       "long-builtin",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "long() became int()",
		Explanation: "Python 3 unified int and long. Only the call form is rewritten " +
			"to avoid renaming unrelated variables named long.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "n = long(x)\n",
			Py3: "n = int(x)\n",
		},
		Detect:  detectNameCall("long-builtin", "long", "int"),
		Rewrite: domain.ReplaceSpan,
	}
}

func applyBuiltinRule() domain.Rule {
	const id = "apply-builtin"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "apply(f, args) was removed",
		Explanation: "apply(f, args) is spelled f(*args) since Python 2.3 and the " +
			"builtin is gone in Python 3. Two-argument calls get f(*args), " +
			"three-argument calls get f(*args, **kwargs); anything else is reported " +
			"without a suggestion.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "result = apply(f, args)\n",
			Py3: "result = f(*args)\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "apply" || isAttribute(src, i) {
					continue
				}
				open := nextIdx(src, i)
				if !isOp(src, open, "(") {
					continue
				}
				close := matchingParen(src, open)
				if close < 0 {
					matches = append(matches, tokenMatch(src, id, t, ""))
					continue
				}
				args := splitTopLevel(src, open+1, close)
				var suggestion string
				switch {
				case len(args) == 2 && args[0] != "" && args[1] != "":
					suggestion = args[0] + "(*" + args[1] + ")"
				case len(args) == 3 && args[0] != "" && args[1] != "" && args[2] != "":
					suggestion = args[0] + "(*" + args[1] + ", **" + args[2] + ")"
				}
				end := src.Tokens[close].End
				matches = append(matches, spanMatch(src, id, t, t.Start, end, suggestion))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func execfileRule() domain.Rule {
	const id = "execfile"
	return domain.Rule{
		ID:       id,
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "execfile() was removed",
		Explanation: "execfile(path) becomes exec(open(path).read()). Calls with " +
			"explicit globals/locals are reported without a rewrite since argument " +
			"order matters there.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "execfile(path)\n",
			Py3: "exec(open(path).read())\n",
		},
		Detect: func(src *pysrc.Source) []domain.Match {
			var matches []domain.Match
			for i, t := range src.Tokens {
				if t.Kind != pysrc.KindName || t.Text != "execfile" || isAttribute(src, i) {
					continue
				}
				open := nextIdx(src, i)
				if !isOp(src, open, "(") {
					continue
				}
				close := matchingParen(src, open)
				if close < 0 {
					matches = append(matches, tokenMatch(src, id, t, ""))
					continue
				}
				args := splitTopLevel(src, open+1, close)
				var suggestion string
				if len(args) == 1 && args[0] != "" {
					suggestion = "exec(open(" + args[0] + ").read())"
				}
				matches = append(matches, spanMatch(src, id, t, t.Start, src.Tokens[close].End, suggestion))
			}
			return matches
		},
		Rewrite: domain.ReplaceSpan,
	}
}

func reduceBuiltinRule() domain.Rule {
	return domain.Rule{
		ID:       "reduce-builtin",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "reduce moved to functools",
		Explanation: "reduce() is no longer a builtin; add " +
			"\"from functools import reduce\" at the top of the module. Reported " +
			"only, since inserting imports is a whole-file decision.",
		Difficulty: domain.DifficultyMedium,
		Example: domain.Example{
			Py2: "total = reduce(add, values)\n",
			Py3: "from functools import reduce\ntotal = reduce(add, values)\n",
		},
		Detect: detectNameCall("reduce-builtin", "reduce", ""),
	}
}

func cmpBuiltinRule() domain.Rule {
	return domain.Rule{
		ID:       "cmp-builtin",
		Category: domain.CategoryBuiltins,
		Kind:     domain.KindLexical,
		Summary:  "cmp() was removed",
		Explanation: "Python 3 dropped cmp() and the __cmp__ protocol. Replace " +
			"cmp(a, b) with (a > b) - (a < b) or restructure around rich comparisons " +
			"and functools.cmp_to_key; no automatic rewrite is safe here.",
		Difficulty: domain.DifficultyHard,
		Example: domain.Example{
			Py2: "order = cmp(a, b)\n",
			Py3: "order = (a > b) - (a < b)\n",
		},
		Detect: detectNameCall("cmp-builtin", "cmp", ""),
	}
}
