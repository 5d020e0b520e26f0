package semantic

import (
	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
)

// CollectSymbols is the first sub-analysis: it walks
// g.Rules in source order, assigning a RuleId to every rule and, for
// lexer rules, a TokenId as well (a lexer rule's name is also its token's
// name). A duplicate rule name is reported once, as an Error, and the
// later definition is shadowed — the symbol table keeps pointing at the
// first rule with that name, so every later pass resolves references
// against the first definition only.
func CollectSymbols(g *ast.Grammar) (*SymbolTable, []diag.Diagnostic) {
	st := NewSymbolTable()
	var diags []diag.Diagnostic

	for i := range g.Rules {
		r := &g.Rules[i]
		if st.HasRule(r.Name) {
			diags = append(diags, diag.Error("E-DUP-RULE", "rule "+r.Name+" already defined", locPtr(r.Loc)))
			continue
		}
		st.addRule(r.Name)
		if r.Kind == ast.RuleKindLexer {
			st.addToken(r.Name)
		}
	}

	return st, diags
}

// locPtr converts an ast.Location to the diag package's dependency-free
// copy of the same shape, or nil for the zero Location — diag deliberately
// has no import on package ast (see diag.Location's doc comment).
func locPtr(l ast.Location) *diag.Location {
	if l.IsZero() {
		return nil
	}
	return &diag.Location{File: l.File, Line: l.Line, Column: l.Column}
}
