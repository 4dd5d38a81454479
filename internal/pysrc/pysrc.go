// Package pysrc parses Python source into a small statement tree suitable
// for heuristic scoring. It is not a full Python parser: expressions are
// reduced to the identifier references and call sites they contain, which is
// all the rubric rules need.
package pysrc

import "fmt"

type Kind string

const (
	KindFunctionDef Kind = "function_def"
	KindClassDef    Kind = "class_def"
	KindCompound    Kind = "compound" // if / for / while / with and soft-keyword (match / case) headers
	KindTry         Kind = "try"
	KindExcept      Kind = "except"
	KindElse        Kind = "else"
	KindElif        Kind = "elif"
	KindFinally     Kind = "finally"
	KindGlobal      Kind = "global"
	KindExpr        Kind = "expr" // simple statement: expression, assignment, return, ...
	KindSimple      Kind = "simple" // import / pass / nonlocal and friends, nothing to scan
)

// Stmt is one statement in the tree. Which fields are meaningful depends on
// Kind; the zero value of every other field is valid.
type Stmt struct {
	Kind   Kind
	Line   int
	Name   string   // FunctionDef / ClassDef
	Params []string // FunctionDef positional parameters
	Async  bool

	// Names holds identifier references found in this statement's
	// expressions, duplicates preserved. Calls holds the subset that are
	// call sites, by callee identifier.
	Names []string
	Calls []string

	// IsString marks a bare string-literal expression statement.
	IsString bool

	Body    []*Stmt // primary suite of a compound statement
	Clauses []*Stmt // attached elif / else / except / finally clauses
}

// ExceptHandlers returns the number of except clauses attached to a try.
func (s *Stmt) ExceptHandlers() int {
	n := 0
	for _, c := range s.Clauses {
		if c.Kind == KindExcept {
			n++
		}
	}
	return n
}

// Module is the root of a parsed source file.
type Module struct {
	Body []*Stmt
}

// Walk visits every statement in the module, including clause bodies,
// in source order.
func (m *Module) Walk(fn func(*Stmt)) {
	walk(m.Body, fn)
}

func walk(stmts []*Stmt, fn func(*Stmt)) {
	for _, s := range stmts {
		fn(s)
		walk(s.Body, fn)
		walk(s.Clauses, fn)
	}
}

// SyntaxError reports why source could not be parsed.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}
