package pysrc

// Source is one file's text with its token stream, recovered imports, and a
// byte-level code mask. Detectors share a single Source per scan pass.
type Source struct {
	Text    string
	Tokens  []Token
	Imports []ImportRef

	// Err is the tokenize error, if any. When set, Tokens covers only the
	// well-formed prefix and Imports is empty (tree-shaped rules must skip
	// the file).
	Err error

	code []bool
}

// Parse tokenizes text. It never fails outright: on a lexical error the
// returned Source carries the error plus everything scanned before it.
func Parse(text string) *Source {
	tokens, err := Tokenize(text)
	src := &Source{Text: text, Tokens: tokens, Err: err}
	if err == nil {
		src.Imports = parseImports(tokens)
	}
	src.code = buildCodeMask(text, tokens, err)
	return src
}

// InCode reports whether the byte at off belongs to executable code rather
// than a string literal or comment. Offsets past a tokenize error are
// conservatively treated as non-code.
func (s *Source) InCode(off int) bool {
	if off < 0 || off >= len(s.code) {
		return false
	}
	return s.code[off]
}

// StmtEnd returns the index of the token terminating the statement that
// contains tokens[i]: the next KindNewline or top-level ";".
func (s *Source) StmtEnd(i int) int {
	depth := 0
	for j := i; j < len(s.Tokens); j++ {
		t := s.Tokens[j]
		if t.Kind == KindNewline {
			return j
		}
		if t.Kind != KindOp {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			if depth > 0 {
				depth--
			}
		case ";":
			if depth == 0 {
				return j
			}
		}
	}
	return len(s.Tokens)
}

// StmtStart reports whether tokens[i] begins a logical statement.
func (s *Source) StmtStart(i int) bool {
	return stmtStart(s.Tokens, i)
}

func buildCodeMask(text string, tokens []Token, err error) []bool {
	code := make([]bool, len(text))
	for i := range code {
		code[i] = true
	}
	lastEnd := 0
	for _, t := range tokens {
		// The synthetic end-of-file terminator is zero-width and must not
		// count as scanned text.
		if t.End > lastEnd && t.End > t.Start {
			lastEnd = t.End
		}
		if t.Kind != KindString && t.Kind != KindComment {
			continue
		}
		for i := t.Start; i < t.End && i < len(code); i++ {
			code[i] = false
		}
	}
	if err != nil {
		for i := lastEnd; i < len(code); i++ {
			code[i] = false
		}
	}
	return code
}
