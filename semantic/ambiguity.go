package semantic

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
)

// DetectAmbiguity is the sixth sub-analysis: for every rule
// with more than one alternative, it compares each pair of alternatives'
// FIRST sets. A non-empty intersection is reported once per unordered
// pair — testable property 6 ("ambiguity symmetry") requires that
// swapping i and j report the same warning, which comparing only i < j
// naturally guarantees. This is lookahead-1 only; the general decision
// problem is undecidable.
func DetectAmbiguity(g *ast.Grammar, ff *FirstFollowSets) []diag.Diagnostic {
	var diags []diag.Diagnostic
	for _, r := range g.Rules {
		if len(r.Alternatives) < 2 {
			continue
		}

		altFirsts := make([]*TerminalSet, len(r.Alternatives))
		for i, alt := range r.Alternatives {
			s, _ := ff.firstOfElements(alt.Elements)
			altFirsts[i] = s
		}

		for i := 0; i < len(altFirsts); i++ {
			for j := i + 1; j < len(altFirsts); j++ {
				if !altFirsts[i].IntersectsWith(altFirsts[j]) {
					continue
				}
				shared := intersectionNames(altFirsts[i], altFirsts[j])
				diags = append(diags, diag.Warning("W-AMBIGUOUS",
					"alternatives "+strconv.Itoa(i+1)+" and "+strconv.Itoa(j+1)+" of rule "+r.Name+
						" share lookahead {"+strings.Join(shared, ", ")+"}",
					locPtr(r.Loc)))
			}
		}
	}
	return diags
}

func intersectionNames(a, b *TerminalSet) []string {
	var names []string
	for _, name := range a.Names() {
		if b.Has(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
