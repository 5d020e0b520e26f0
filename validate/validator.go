// Package validate runs the lightweight structural checks required
// before semantic analysis ever begins: grammar name legality, at least
// one rule, and rule-kind/fragment consistency. Accumulate every
// violation found, not just the first, then return one combined error —
// generalized from DFA reachability
// checks to grammar structural checks.
package validate

import (
	"strings"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
)

// Validate runs the structural checks and returns a non-nil
// *diag.Error(KindInvalidGrammar) if any violation is found,
// short-circuiting semantic analysis: any violation is a fatal
// InvalidGrammar error. Every check runs first; multiple violations are collected
// into the single returned error's message so a caller sees the whole
// picture at once.
func Validate(g *ast.Grammar) error {
	var problems []string

	if strings.TrimSpace(g.Name) == "" {
		problems = append(problems, "grammar name must not be empty")
	} else if !isLegalIdentifier(g.Name) {
		problems = append(problems, "grammar name "+quote(g.Name)+" is not a legal identifier")
	}

	if len(g.Rules) == 0 {
		problems = append(problems, "grammar must contain at least one rule")
	}

	seen := make(map[string]bool, len(g.Rules))
	for _, r := range g.Rules {
		if seen[r.Name] {
			// Duplicate rule names are a semantic.Analyze concern (spec
			// §4.4.1), not a validator one; skip re-checking an already
			// reported rule name here.
			continue
		}
		seen[r.Name] = true

		if !isLegalIdentifier(r.Name) {
			problems = append(problems, "rule name "+quote(r.Name)+" is not a legal identifier")
			continue
		}
		if ast.KindForName(r.Name) != r.Kind {
			problems = append(problems, "rule "+quote(r.Name)+" has kind "+r.Kind.String()+
				" but its capitalization implies "+ast.KindForName(r.Name).String())
		}
		if !r.IsFragmentCorrect() {
			problems = append(problems, "fragment rule "+quote(r.Name)+" must be a lexer rule")
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return diag.NewInvalidGrammarError(strings.Join(problems, "; "))
}

// isLegalIdentifier matches the lexer's own identifier production
// so the validator's name check stays
// consistent with what the parser could ever have produced in the first
// place.
func isLegalIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func quote(s string) string {
	return "\"" + s + "\""
}
