package semantic

import (
	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/validate"
)

// Analyzer runs the full composition of sub-analyses in a fixed order:
// symbol collection, reference resolution, reachability,
// left-recursion, first/follow, ambiguity. Analyzer carries no state of
// its own, so a single zero-value Analyzer can be reused across grammars
// (see AnalyzeAll for the concurrent batch entry point, which still gives
// each grammar its own pass rather than sharing anything across
// goroutines).
type Analyzer struct{}

// NewAnalyzer returns a ready-to-use Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs the Validator, then every semantic sub-analysis in order,
// returning the composed AnalysisResult. It returns a non-nil error only
// for a fatal InvalidGrammar violation, which short-circuits
// before any sub-analysis runs; every other issue is a Diagnostic attached
// to the returned result instead.
func (a *Analyzer) Analyze(g *ast.Grammar) (*AnalysisResult, error) {
	if err := validate.Validate(g); err != nil {
		return nil, err
	}

	var diags []diag.Diagnostic

	st, symDiags := CollectSymbols(g)
	diags = append(diags, symDiags...)
	diags = append(diags, ResolveReferences(g, st)...)

	_, reachDiags := ComputeReachability(g)
	diags = append(diags, reachDiags...)

	diags = append(diags, DetectLeftRecursion(g)...)

	ff := ComputeFirstFollow(g, st)
	diags = append(diags, DetectAmbiguity(g, ff)...)

	return NewAnalysisResult(g, st, ff, diags), nil
}
