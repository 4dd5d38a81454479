package pysrc

import (
	"regexp"
	"strings"
)

// keywords are Python reserved words, never counted as identifier references.
var keywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

var (
	defRe       = regexp.MustCompile(`^(async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)\s*(->[^:]*)?$`)
	classRe     = regexp.MustCompile(`^class\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:\((.*)\))?\s*$`)
	exceptAsRe  = regexp.MustCompile(`\s+as\s+[A-Za-z_][A-Za-z0-9_]*\s*$`)
	bareStrRe   = regexp.MustCompile(`^(?:[rRbBuUfF]{0,3}""\s*)+$`)
	identStart  = func(c rune) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
	identInside = func(c rune) bool { return identStart(c) || (c >= '0' && c <= '9') }
)

type parser struct {
	lines []logicalLine
	pos   int
}

// Parse parses Python source into a statement tree. On malformed input it
// returns a *SyntaxError; callers are expected to treat that as a signal to
// score the input as unanalyzable, not as a fatal condition.
func Parse(src string) (*Module, error) {
	lines, lexErr := splitLogical(src)
	if lexErr != nil {
		return nil, lexErr
	}
	if len(lines) == 0 {
		return &Module{}, nil
	}
	if lines[0].indent != 0 {
		return nil, &SyntaxError{Line: lines[0].line, Msg: "unexpected indent"}
	}

	p := &parser{lines: lines}
	body, err := p.parseSuite(0, nil)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.lines) {
		return nil, &SyntaxError{Line: p.lines[p.pos].line, Msg: "unexpected indent"}
	}
	return &Module{Body: body}, nil
}

// parseSuite consumes statements at exactly the given indent. enclosing holds
// the indents of outer suites so dedents can be validated.
func (p *parser) parseSuite(indent int, enclosing []int) ([]*Stmt, error) {
	var stmts []*Stmt

	for p.pos < len(p.lines) {
		ln := p.lines[p.pos]
		if ln.indent < indent {
			ok := false
			for _, e := range enclosing {
				if e == ln.indent {
					ok = true
					break
				}
			}
			if !ok {
				return nil, &SyntaxError{Line: ln.line, Msg: "unindent does not match any outer indentation level"}
			}
			return stmts, nil
		}
		if ln.indent > indent {
			return nil, &SyntaxError{Line: ln.line, Msg: "unexpected indent"}
		}

		parsed, err := p.parseStatement(indent, enclosing)
		if err != nil {
			return nil, err
		}

		for _, s := range parsed {
			if isClauseKind(s.Kind) {
				host := lastCompound(stmts)
				if host == nil || !acceptsClause(host, s.Kind) {
					return nil, &SyntaxError{Line: s.Line, Msg: "'" + string(s.Kind) + "' clause without matching statement"}
				}
				host.Clauses = append(host.Clauses, s)
			} else {
				stmts = append(stmts, s)
			}
		}
	}

	return stmts, nil
}

func isClauseKind(k Kind) bool {
	return k == KindExcept || k == KindElse || k == KindElif || k == KindFinally
}

func lastCompound(stmts []*Stmt) *Stmt {
	if len(stmts) == 0 {
		return nil
	}
	return stmts[len(stmts)-1]
}

func acceptsClause(host *Stmt, k Kind) bool {
	switch host.Kind {
	case KindTry:
		return k == KindExcept || k == KindElse || k == KindFinally
	case KindCompound:
		return k == KindElif || k == KindElse
	}
	return false
}

// parseStatement consumes one logical line and, for compound statements, the
// indented suite that follows it. A single line may yield several statements
// when simple statements are joined with semicolons.
func (p *parser) parseStatement(indent int, enclosing []int) ([]*Stmt, error) {
	ln := p.lines[p.pos]
	p.pos++

	text := strings.TrimSpace(ln.text)
	kw := firstWord(text)
	if kw == "async" {
		kw = firstWord(strings.TrimSpace(text[len("async"):]))
	}

	if !isCompoundKeyword(kw) {
		// Soft-keyword blocks (match / case) are not reserved words, so they
		// are recognized structurally: a top-level trailing colon followed by
		// a deeper-indented suite parses as a generic compound statement.
		if colon := topLevelColon(text); colon >= 0 &&
			strings.TrimSpace(text[colon+1:]) == "" &&
			p.pos < len(p.lines) && p.lines[p.pos].indent > indent {
			names, calls := scanIdents(text[:colon])
			stmt := &Stmt{Kind: KindCompound, Line: ln.line, Names: names, Calls: calls}
			childIndent := p.lines[p.pos].indent
			body, err := p.parseSuite(childIndent, append(enclosing, indent))
			if err != nil {
				return nil, err
			}
			stmt.Body = body
			return []*Stmt{stmt}, nil
		}
		return simpleStatements(text, ln.line), nil
	}

	colon := topLevelColon(text)
	if colon < 0 {
		return nil, &SyntaxError{Line: ln.line, Msg: "expected ':' on '" + kw + "' statement"}
	}
	header := strings.TrimSpace(text[:colon])
	rest := strings.TrimSpace(text[colon+1:])

	stmt, err := classifyCompound(header, kw, ln.line)
	if err != nil {
		return nil, err
	}

	if rest != "" {
		stmt.Body = simpleStatements(rest, ln.line)
		return []*Stmt{stmt}, nil
	}

	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= indent {
		return nil, &SyntaxError{Line: ln.line, Msg: "expected an indented block"}
	}
	childIndent := p.lines[p.pos].indent
	body, err := p.parseSuite(childIndent, append(enclosing, indent))
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return []*Stmt{stmt}, nil
}

func isCompoundKeyword(kw string) bool {
	switch kw {
	case "def", "class", "if", "elif", "else", "for", "while", "try", "except", "finally", "with":
		return true
	}
	return false
}

func classifyCompound(header, kw string, line int) (*Stmt, error) {
	async := strings.HasPrefix(header, "async")

	switch kw {
	case "def":
		m := defRe.FindStringSubmatch(header)
		if m == nil {
			return nil, &SyntaxError{Line: line, Msg: "invalid function definition"}
		}
		return &Stmt{
			Kind:   KindFunctionDef,
			Line:   line,
			Name:   m[2],
			Params: parseParams(m[3]),
			Async:  m[1] != "" || async,
		}, nil

	case "class":
		m := classRe.FindStringSubmatch(header)
		if m == nil {
			return nil, &SyntaxError{Line: line, Msg: "invalid class definition"}
		}
		names, calls := scanIdents(m[2])
		return &Stmt{Kind: KindClassDef, Line: line, Name: m[1], Names: names, Calls: calls}, nil

	case "try":
		if header != "try" {
			return nil, &SyntaxError{Line: line, Msg: "invalid 'try' statement"}
		}
		return &Stmt{Kind: KindTry, Line: line}, nil

	case "else", "finally":
		if header != kw {
			return nil, &SyntaxError{Line: line, Msg: "invalid '" + kw + "' clause"}
		}
		k := KindElse
		if kw == "finally" {
			k = KindFinally
		}
		return &Stmt{Kind: k, Line: line}, nil

	case "except":
		// The bound name in "except E as err" is a plain binding, not an
		// identifier reference; strip it before scanning.
		expr := exceptAsRe.ReplaceAllString(strings.TrimPrefix(header, "except"), "")
		names, calls := scanIdents(expr)
		return &Stmt{Kind: KindExcept, Line: line, Names: names, Calls: calls}, nil

	case "elif":
		names, calls := scanIdents(strings.TrimPrefix(header, "elif"))
		return &Stmt{Kind: KindElif, Line: line, Names: names, Calls: calls}, nil

	default: // if / for / while / with
		names, calls := scanIdents(header)
		return &Stmt{Kind: KindCompound, Line: line, Names: names, Calls: calls, Async: async}, nil
	}
}

// simpleStatements splits semicolon-joined simple statements and classifies
// each one.
func simpleStatements(text string, line int) []*Stmt {
	var out []*Stmt
	for _, part := range splitTopLevel(text, ';') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, classifySimple(part, line))
	}
	return out
}

func classifySimple(text string, line int) *Stmt {
	switch firstWord(text) {
	case "global":
		return &Stmt{Kind: KindGlobal, Line: line}
	case "import", "from", "nonlocal", "pass", "break", "continue":
		return &Stmt{Kind: KindSimple, Line: line}
	}

	if bareStrRe.MatchString(text) {
		return &Stmt{Kind: KindExpr, Line: line, IsString: true}
	}

	names, calls := scanIdents(text)
	return &Stmt{Kind: KindExpr, Line: line, Names: names, Calls: calls}
}

// parseParams extracts positional parameter names from a def signature.
// Keyword-only parameters (after a bare * or *args) and **kwargs are not
// counted, matching how positional arity is conventionally measured.
func parseParams(inside string) []string {
	var params []string
	seenStar := false
	for _, raw := range splitTopLevel(inside, ',') {
		tok := strings.TrimSpace(raw)
		if tok == "" || tok == "/" {
			continue
		}
		if strings.HasPrefix(tok, "*") {
			seenStar = true
			continue
		}
		if seenStar {
			continue
		}
		// Strip annotation and default value.
		if i := strings.IndexAny(tok, ":="); i >= 0 {
			tok = strings.TrimSpace(tok[:i])
		}
		if tok != "" {
			params = append(params, tok)
		}
	}
	return params
}

// splitTopLevel splits on sep, ignoring separators nested inside brackets.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	rs := []rune(s)
	for i, c := range rs {
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, string(rs[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, string(rs[start:]))
	return parts
}

// topLevelColon returns the index of the first colon outside any brackets,
// or -1. That colon terminates a compound statement header. The ":" of a
// walrus assignment (":=") is an operator, not a header terminator.
func topLevelColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ':':
			if i+1 < len(s) && s[i+1] == '=' {
				i++
				continue
			}
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func firstWord(s string) string {
	end := 0
	for _, c := range s {
		if !identInside(c) {
			break
		}
		end++
	}
	return s[:end]
}

// scanIdents extracts identifier references and call sites from scrubbed
// expression text. Attribute accesses, keywords, string prefixes and keyword
// argument names are skipped so the result approximates the set of plain
// name references an AST walk would produce.
func scanIdents(s string) (names, calls []string) {
	rs := []rune(s)
	depth := 0
	var prev rune

	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '(' || c == '[' || c == '{':
			depth++
			prev = c
		case c == ')' || c == ']' || c == '}':
			depth--
			prev = c
		case c >= '0' && c <= '9':
			// Consume a numeric literal, including hex/exponent tails.
			j := i
			for j < len(rs) && (identInside(rs[j]) || rs[j] == '.') {
				j++
			}
			prev = rs[j-1]
			i = j - 1
		case identStart(c):
			j := i
			for j < len(rs) && identInside(rs[j]) {
				j++
			}
			word := string(rs[i:j])
			attr := prev == '.'

			// First non-space rune after the identifier.
			k := j
			for k < len(rs) && (rs[k] == ' ' || rs[k] == '\t') {
				k++
			}
			var next rune
			if k < len(rs) {
				next = rs[k]
			}

			prev = rs[j-1]
			i = j - 1

			if keywords[word] || attr {
				continue
			}
			if next == '\'' || next == '"' {
				continue // string literal prefix such as f"" or r""
			}
			if next == '(' {
				calls = append(calls, word)
				names = append(names, word)
				continue
			}
			if next == '=' && depth > 0 && (k+1 >= len(rs) || rs[k+1] != '=') {
				continue // keyword argument name
			}
			names = append(names, word)
		default:
			if c != ' ' && c != '\t' {
				prev = c
			}
		}
	}
	return names, calls
}
