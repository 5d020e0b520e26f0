package semantic

import (
	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/internal/util"
)

// ComputeReachability is the third sub-analysis: it computes
// the set of rule names reachable from the grammar's start rule (the
// first parser rule in source order, or the first rule at all if the
// grammar has no parser rules) and reports every rule not in that set as
// an unreachable Warning.
//
// The visited set is a util.StringSet — plain name membership is all
// reachability needs,
// unlike FIRST/FOLLOW's dense-id TerminalSet (see firstfollow.go), which
// exists because that computation does O(R²) unions and benefits from a
// bitset.
func ComputeReachability(g *ast.Grammar) (util.StringSet, []diag.Diagnostic) {
	start := startRuleName(g)
	graph := buildReferenceGraph(g)

	reachable := util.NewStringSet()
	if start != "" {
		var visit func(name string)
		visit = func(name string) {
			if reachable.Has(name) {
				return
			}
			reachable.Add(name)
			for _, next := range graph[name] {
				visit(next)
			}
		}
		visit(start)
	}

	var diags []diag.Diagnostic
	for _, r := range g.Rules {
		if !reachable.Has(r.Name) {
			diags = append(diags, diag.Warning("W-UNREACHABLE", "unreachable rule "+r.Name, locPtr(r.Loc)))
		}
	}
	return reachable, diags
}

// startRuleName picks the designated start rule: the first parser rule
// in source order, or the first rule at all if the grammar has none.
func startRuleName(g *ast.Grammar) string {
	for _, r := range g.Rules {
		if r.Kind == ast.RuleKindParser {
			return r.Name
		}
	}
	if len(g.Rules) > 0 {
		return g.Rules[0].Name
	}
	return ""
}

// buildReferenceGraph maps each rule name to every rule name referenced
// anywhere in its body — not just in leftmost position; compare
// buildLeftmostGraph's narrower, position-sensitive variant used by
// left-recursion detection in leftrecursion.go.
func buildReferenceGraph(g *ast.Grammar) map[string][]string {
	graph := make(map[string][]string, len(g.Rules))
	for i := range g.Rules {
		r := &g.Rules[i]
		var names []string
		for _, alt := range r.Alternatives {
			for _, e := range alt.Elements {
				names = append(names, referencedNames(e)...)
			}
		}
		graph[r.Name] = names
	}
	return graph
}

// referencedNames recursively collects every RuleRef/TokenRef name nested
// anywhere inside e.
func referencedNames(e ast.Element) []string {
	switch el := e.(type) {
	case *ast.RuleRefElement:
		return []string{el.Name}
	case *ast.TokenRefElement:
		return []string{el.Name}
	case *ast.OptionalElement:
		return referencedNames(el.Inner)
	case *ast.ZeroOrMoreElement:
		return referencedNames(el.Inner)
	case *ast.OneOrMoreElement:
		return referencedNames(el.Inner)
	case *ast.NotSetElement:
		return referencedNames(el.Inner)
	case *ast.GroupElement:
		var names []string
		for _, alt := range el.Alternatives {
			for _, e2 := range alt.Elements {
				names = append(names, referencedNames(e2)...)
			}
		}
		return names
	default:
		return nil
	}
}
