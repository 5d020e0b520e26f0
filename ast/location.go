// Package ast defines the grammar abstract syntax tree: the Grammar root
// entity, its Rules, their Alternatives, and the tagged-union Element tree
// that makes up a production. The tree is built once by the parser and is
// treated as immutable afterward; analyses in package semantic read it and
// produce a SymbolTable and diagnostics, never mutating it in place.
package ast

import "fmt"

// Location identifies a 1-based line and column within a named source file.
type Location struct {
	File   string
	Line   int
	Column int
}

// NoLocation is the zero Location, used when a diagnostic or element has no
// specific source position to report.
var NoLocation = Location{}

// IsZero reports whether loc carries no position information.
func (loc Location) IsZero() bool {
	return loc == Location{}
}

func (loc Location) String() string {
	if loc.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Column)
}
