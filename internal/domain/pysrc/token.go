// Package pysrc tokenizes Python source just far enough to tell code from
// string literals and comments, and to recover import statements. It is not a
// full parser: detectors only need token kinds, byte spans, and logical-line
// boundaries.
package pysrc

import "fmt"

type Kind int

const (
	KindName Kind = iota
	KindNumber
	KindString
	KindComment
	KindOp
	// KindNewline terminates a logical line. It is only emitted at bracket
	// depth zero and never after a backslash continuation.
	KindNewline
)

// Token is a single lexical element with its byte span in the original text.
type Token struct {
	Kind  Kind
	Text  string
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
	Line  int // 1-based physical line
	Col   int // 0-based column
}

// TokenizeError reports where tokenization had to give up.
type TokenizeError struct {
	Line   int
	Offset int
	Msg    string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// multi-character operators, longest first so "//=" wins over "//".
var multiOps = []string{
	"**=", "//=", ">>=", "<<=",
	"<>", "!=", "<=", ">=", "==", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"**", "//", "<<", ">>",
}

// Tokenize scans Python 2 source. On a lexical error (unterminated string) it
// returns the tokens scanned so far together with the error, so lexical rules
// can still run over the well-formed prefix.
func Tokenize(src string) ([]Token, error) {
	var (
		tokens []Token
		i      int
		line   = 1
		col    int
		depth  int
	)

	advance := func(n int) {
		for k := 0; k < n; k++ {
			if src[i+k] == '\n' {
				line++
				col = 0
			} else {
				col++
			}
		}
		i += n
	}

	emit := func(kind Kind, start, startLine, startCol int) {
		tokens = append(tokens, Token{
			Kind:  kind,
			Text:  src[start:i],
			Start: start,
			End:   i,
			Line:  startLine,
			Col:   startCol,
		})
	}

	for i < len(src) {
		c := src[i]
		startLine, startCol, start := line, col, i

		switch {
		case c == '\n':
			advance(1)
			if depth == 0 {
				tokens = append(tokens, Token{Kind: KindNewline, Text: "\n", Start: start, End: i, Line: startLine, Col: startCol})
			}

		case c == '\\' && i+1 < len(src) && src[i+1] == '\n':
			advance(2)

		case c == '\\' && i+2 < len(src) && src[i+1] == '\r' && src[i+2] == '\n':
			advance(3)

		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			advance(1)

		case c == '#':
			for i < len(src) && src[i] != '\n' {
				advance(1)
			}
			emit(KindComment, start, startLine, startCol)

		case isIdentStart(c):
			for i < len(src) && isIdentPart(src[i]) {
				advance(1)
			}
			// A name directly followed by a quote may be a string prefix
			// like r'', u"", ur'', b"".
			if i < len(src) && (src[i] == '\'' || src[i] == '"') && isStringPrefix(src[start:i]) {
				if err := scanString(src, &i, &line, &col); err != nil {
					tokens = appendFinalNewline(tokens, src, line, col)
					return tokens, err
				}
				emit(KindString, start, startLine, startCol)
				break
			}
			emit(KindName, start, startLine, startCol)

		case c == '\'' || c == '"':
			if err := scanString(src, &i, &line, &col); err != nil {
				tokens = appendFinalNewline(tokens, src, line, col)
				return tokens, err
			}
			emit(KindString, start, startLine, startCol)

		case c >= '0' && c <= '9', c == '.' && i+1 < len(src) && src[i+1] >= '0' && src[i+1] <= '9':
			scanNumber(src, &i, &line, &col)
			emit(KindNumber, start, startLine, startCol)

		default:
			if op := matchMultiOp(src[i:]); op != "" {
				advance(len(op))
				emit(KindOp, start, startLine, startCol)
				break
			}
			switch c {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				if depth > 0 {
					depth--
				}
			}
			advance(1)
			emit(KindOp, start, startLine, startCol)
		}
	}

	tokens = appendFinalNewline(tokens, src, line, col)
	return tokens, nil
}

// appendFinalNewline guarantees every token stream ends with a logical-line
// terminator so statement scans never run off the end.
func appendFinalNewline(tokens []Token, src string, line, col int) []Token {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == KindNewline {
		return tokens
	}
	return append(tokens, Token{Kind: KindNewline, Start: len(src), End: len(src), Line: line, Col: col})
}

func scanString(src string, i, line, col *int) error {
	startLine := *line
	quote := src[*i]

	step := func(n int) {
		for k := 0; k < n; k++ {
			if src[*i] == '\n' {
				*line++
				*col = 0
			} else {
				*col++
			}
			*i++
		}
	}

	triple := *i+2 < len(src) && src[*i+1] == quote && src[*i+2] == quote
	if triple {
		step(3)
		for *i < len(src) {
			if src[*i] == '\\' && *i+1 < len(src) {
				step(2)
				continue
			}
			if src[*i] == quote && *i+2 < len(src) && src[*i+1] == quote && src[*i+2] == quote {
				step(3)
				return nil
			}
			step(1)
		}
		return &TokenizeError{Line: startLine, Offset: *i, Msg: "unterminated triple-quoted string"}
	}

	step(1)
	for *i < len(src) {
		switch src[*i] {
		case '\\':
			if *i+1 < len(src) {
				step(2)
			} else {
				step(1)
			}
		case quote:
			step(1)
			return nil
		case '\n':
			return &TokenizeError{Line: startLine, Offset: *i, Msg: "unterminated string literal"}
		default:
			step(1)
		}
	}
	return &TokenizeError{Line: startLine, Offset: *i, Msg: "unterminated string literal"}
}

func scanNumber(src string, i, line, col *int) {
	step := func() { *col++; *i++ }

	prevE := false
	for *i < len(src) {
		c := src[*i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F',
			c == 'x', c == 'X', c == 'o', c == 'O', c == '.', c == '_',
			c == 'l', c == 'L', c == 'j', c == 'J':
			prevE = c == 'e' || c == 'E'
			step()
		case (c == '+' || c == '-') && prevE:
			prevE = false
			step()
		default:
			return
		}
	}
}

func matchMultiOp(rest string) string {
	for _, op := range multiOps {
		if len(rest) >= len(op) && rest[:len(op)] == op {
			return op
		}
	}
	return ""
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// isStringPrefix reports whether name is a legal Python 2 string prefix
// (some combination of r, u, b, each at most once).
func isStringPrefix(name string) bool {
	if len(name) == 0 || len(name) > 3 {
		return false
	}
	var r, u, b bool
	for k := 0; k < len(name); k++ {
		switch name[k] {
		case 'r', 'R':
			if r {
				return false
			}
			r = true
		case 'u', 'U':
			if u {
				return false
			}
			u = true
		case 'b', 'B':
			if b {
				return false
			}
			b = true
		default:
			return false
		}
	}
	return true
}
