package pysrc

import "strings"

// logicalLine is one logical source line after joining continuations.
// text is scrubbed: string literals are collapsed to an empty "" placeholder
// and comments are removed, so downstream scanning never sees their content.
type logicalLine struct {
	indent int
	text   string
	line   int // 1-based physical line where the logical line starts
}

const tabWidth = 8

// splitLogical splits source into logical lines, joining bracket, backslash
// and triple-quoted-string continuations. It detects the lexical errors that
// make source unparseable: unterminated strings and unbalanced brackets.
func splitLogical(src string) ([]logicalLine, *SyntaxError) {
	physical := strings.Split(src, "\n")

	var out []logicalLine
	var buf strings.Builder

	depth := 0
	pending := false   // a logical line is being accumulated
	contLine := false  // previous physical line ended with a backslash
	inTriple := false  // inside a triple-quoted string
	var tripleQuote byte
	startLine := 0
	indent := 0

	for idx, raw := range physical {
		lineNo := idx + 1
		rs := []rune(raw)
		i := 0

		if inTriple {
			// Consume until the closing triple quote.
			closed := false
			for i < len(rs) {
				if rs[i] == '\\' {
					i += 2
					continue
				}
				if strings.HasPrefix(string(rs[i:]), strings.Repeat(string(tripleQuote), 3)) {
					i += 3
					inTriple = false
					closed = true
					break
				}
				i++
			}
			if !closed {
				continue // string still open, keep consuming lines
			}
		} else if !pending {
			// Fresh logical line: measure indentation.
			col := 0
			for i < len(rs) {
				if rs[i] == ' ' {
					col++
				} else if rs[i] == '\t' {
					col += tabWidth - col%tabWidth
				} else {
					break
				}
				i++
			}
			if i >= len(rs) || rs[i] == '#' {
				continue // blank or comment-only line
			}
			indent = col
			startLine = lineNo
			pending = true
			buf.Reset()
		} else if contLine {
			// Continuation after a backslash: skip leading whitespace.
			for i < len(rs) && (rs[i] == ' ' || rs[i] == '\t') {
				i++
			}
			contLine = false
		}

		endsWithBackslash := false
		for i < len(rs) {
			c := rs[i]
			switch {
			case c == '#':
				i = len(rs) // comment runs to end of physical line
			case c == '\'' || c == '"':
				q := byte(c)
				if strings.HasPrefix(string(rs[i:]), strings.Repeat(string(q), 3)) {
					// Triple-quoted string.
					buf.WriteString(`""`)
					i += 3
					closed := false
					for i < len(rs) {
						if rs[i] == '\\' {
							i += 2
							continue
						}
						if byte(rs[i]) == q && strings.HasPrefix(string(rs[i:]), strings.Repeat(string(q), 3)) {
							i += 3
							closed = true
							break
						}
						i++
					}
					if !closed {
						inTriple = true
						tripleQuote = q
						i = len(rs)
					}
				} else {
					// Single-quoted string must close on this physical line.
					buf.WriteString(`""`)
					i++
					closed := false
					for i < len(rs) {
						if rs[i] == '\\' {
							i += 2
							continue
						}
						if byte(rs[i]) == q {
							i++
							closed = true
							break
						}
						i++
					}
					if !closed {
						return nil, &SyntaxError{Line: lineNo, Msg: "unterminated string literal"}
					}
				}
			case c == '(' || c == '[' || c == '{':
				depth++
				buf.WriteRune(c)
				i++
			case c == ')' || c == ']' || c == '}':
				depth--
				if depth < 0 {
					return nil, &SyntaxError{Line: lineNo, Msg: "unmatched closing bracket"}
				}
				buf.WriteRune(c)
				i++
			case c == '\\' && i == len(rs)-1:
				endsWithBackslash = true
				i++
			default:
				buf.WriteRune(c)
				i++
			}
		}

		if inTriple {
			continue
		}
		if endsWithBackslash {
			contLine = true
			buf.WriteRune(' ')
			continue
		}
		if depth > 0 {
			buf.WriteRune(' ')
			continue
		}

		text := strings.TrimSpace(buf.String())
		if text != "" {
			out = append(out, logicalLine{indent: indent, text: text, line: startLine})
		}
		pending = false
	}

	if inTriple {
		return nil, &SyntaxError{Line: len(physical), Msg: "unterminated triple-quoted string"}
	}
	if depth > 0 {
		return nil, &SyntaxError{Line: len(physical), Msg: "unexpected end of input inside brackets"}
	}
	if contLine {
		return nil, &SyntaxError{Line: len(physical), Msg: "unexpected end of input after line continuation"}
	}

	return out, nil
}
