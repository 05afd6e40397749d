package pysrc

// ImportRef is one imported module reference recovered from the token stream.
// "import a, b as c" yields two refs; "from a.b import x, y" yields one ref
// for a.b with From set.
type ImportRef struct {
	Module string // dotted module path as written
	Alias  string // "" when not aliased
	From   bool
	Start  int // byte span of the module path in the source
	End    int
	Line   int // 1-based line of the first module token
	Col    int
}

// parseImports walks the token stream statement by statement and collects
// import references, including nested and conditional imports (anything that
// starts a statement after ":" or ";").
func parseImports(tokens []Token) []ImportRef {
	var refs []ImportRef

	for i := 0; i < len(tokens); i++ {
		if tokens[i].Kind != KindName || !stmtStart(tokens, i) {
			continue
		}
		switch tokens[i].Text {
		case "import":
			refs = append(refs, parsePlainImport(tokens, i+1)...)
		case "from":
			if ref, ok := parseFromImport(tokens, i+1); ok {
				refs = append(refs, ref)
			}
		}
	}

	return refs
}

// stmtStart reports whether tokens[i] begins a logical statement.
func stmtStart(tokens []Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1]
	if prev.Kind == KindNewline || prev.Kind == KindComment {
		return true
	}
	return prev.Kind == KindOp && (prev.Text == ";" || prev.Text == ":")
}

// parsePlainImport parses the name list of "import a.b as c, d".
func parsePlainImport(tokens []Token, i int) []ImportRef {
	var refs []ImportRef
	for {
		ref, next, ok := parseDotted(tokens, i)
		if !ok {
			return refs
		}
		i = next
		if i < len(tokens) && tokens[i].Kind == KindName && tokens[i].Text == "as" {
			if i+1 < len(tokens) && tokens[i+1].Kind == KindName {
				ref.Alias = tokens[i+1].Text
				i += 2
			}
		}
		refs = append(refs, ref)
		if i < len(tokens) && tokens[i].Kind == KindOp && tokens[i].Text == "," {
			i++
			continue
		}
		return refs
	}
}

// parseFromImport parses the module part of "from a.b import x". Relative
// imports ("from . import x") are skipped: they cannot name a legacy stdlib
// module.
func parseFromImport(tokens []Token, i int) (ImportRef, bool) {
	if i < len(tokens) && tokens[i].Kind == KindOp && tokens[i].Text == "." {
		return ImportRef{}, false
	}
	ref, next, ok := parseDotted(tokens, i)
	if !ok {
		return ImportRef{}, false
	}
	if next >= len(tokens) || tokens[next].Kind != KindName || tokens[next].Text != "import" {
		return ImportRef{}, false
	}
	ref.From = true
	return ref, true
}

// parseDotted consumes NAME ("." NAME)* and returns the span as one ref.
func parseDotted(tokens []Token, i int) (ImportRef, int, bool) {
	if i >= len(tokens) || tokens[i].Kind != KindName {
		return ImportRef{}, i, false
	}
	first := tokens[i]
	module := first.Text
	end := first.End
	i++
	for i+1 < len(tokens) &&
		tokens[i].Kind == KindOp && tokens[i].Text == "." &&
		tokens[i+1].Kind == KindName {
		module += "." + tokens[i+1].Text
		end = tokens[i+1].End
		i += 2
	}
	return ImportRef{
		Module: module,
		Start:  first.Start,
		End:    end,
		Line:   first.Line,
		Col:    first.Col,
	}, i, true
}
