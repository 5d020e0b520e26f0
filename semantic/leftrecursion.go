package semantic

import (
	"sort"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/internal/util"
)

// DetectLeftRecursion is the fourth sub-analysis: it builds
// a "leftmost call" graph — an edge R -> S exists if S can appear as the
// first element of any alternative of R, skipping over a prefix of elements
// that are nullable on their own (see ast.ElementIsNullable); a reference
// to a rule that can match the empty string is not skipped, so recursion
// reached only through such a rule is not reported — then reports every strongly connected component containing
// more than one rule, or a self-loop, as a left-recursion Warning. This
// reports every rule in the cycle rather than just the shortest one.
func DetectLeftRecursion(g *ast.Grammar) []diag.Diagnostic {
	names := make([]string, 0, len(g.Rules))
	seen := util.NewStringSet()
	ruleByName := make(map[string]*ast.Rule, len(g.Rules))
	for i := range g.Rules {
		r := &g.Rules[i]
		if seen.Has(r.Name) {
			continue // duplicate; symbol collection already reported it
		}
		seen.Add(r.Name)
		names = append(names, r.Name)
		ruleByName[r.Name] = r
	}

	graph := buildLeftmostGraph(names, ruleByName, seen)
	sccs := tarjanSCCs(names, graph)

	posOf := make(map[string]int, len(names))
	for i, name := range names {
		posOf[name] = i
	}

	var diags []diag.Diagnostic
	for _, scc := range sccs {
		recursive := len(scc) > 1
		if len(scc) == 1 {
			for _, next := range graph[scc[0]] {
				if next == scc[0] {
					recursive = true
					break
				}
			}
		}
		if !recursive {
			continue
		}
		sort.Slice(scc, func(i, j int) bool { return posOf[scc[i]] < posOf[scc[j]] })
		loc := ruleByName[scc[0]].Loc
		diags = append(diags, diag.Warning("W-LEFT-RECURSION",
			"left recursion detected in "+util.MakeTextList(scc), locPtr(loc)))
	}
	return diags
}

// buildLeftmostGraph computes, for every rule name, the set of rule names
// that can occupy the leftmost position of one of its alternatives.
func buildLeftmostGraph(names []string, ruleByName map[string]*ast.Rule, valid util.StringSet) map[string][]string {
	graph := make(map[string][]string, len(names))
	for _, name := range names {
		r := ruleByName[name]
		var edges []string
		for _, alt := range r.Alternatives {
			for _, ref := range leftmostNames(alt.Elements) {
				if valid.Has(ref) {
					edges = append(edges, ref)
				}
			}
		}
		graph[name] = edges
	}
	return graph
}

// leftmostNames returns every rule/token name that can appear first in
// this element sequence, continuing past an element only while everything
// seen so far is nullable by ast.ElementIsNullable (rule references count
// as non-nullable).
func leftmostNames(elements []ast.Element) []string {
	var names []string
	for _, e := range elements {
		names = append(names, leftmostNamesOfElement(e)...)
		if !ast.ElementIsNullable(e) {
			break
		}
	}
	return names
}

func leftmostNamesOfElement(e ast.Element) []string {
	switch el := e.(type) {
	case *ast.RuleRefElement:
		return []string{el.Name}
	case *ast.TokenRefElement:
		return []string{el.Name}
	case *ast.OptionalElement:
		return leftmostNamesOfElement(el.Inner)
	case *ast.ZeroOrMoreElement:
		return leftmostNamesOfElement(el.Inner)
	case *ast.OneOrMoreElement:
		return leftmostNamesOfElement(el.Inner)
	case *ast.NotSetElement:
		return leftmostNamesOfElement(el.Inner)
	case *ast.GroupElement:
		var names []string
		for _, alt := range el.Alternatives {
			names = append(names, leftmostNames(alt.Elements)...)
		}
		return names
	default:
		return nil
	}
}

// tarjanSCCs returns the strongly connected components of graph restricted
// to names. Traversal starts from names in source order, which keeps the
// result — and therefore diagnostic order — deterministic run to run.
func tarjanSCCs(names []string, graph map[string][]string) [][]string {
	index := 0
	indices := make(map[string]int, len(names))
	lowlink := make(map[string]int, len(names))
	onStack := make(map[string]bool, len(names))
	var stack []string
	var sccs [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, ok := indices[w]; !ok {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, name := range names {
		if _, ok := indices[name]; !ok {
			strongconnect(name)
		}
	}
	return sccs
}
