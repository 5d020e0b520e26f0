package semantic

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
)

// AnalysisResult is the contract handed to emitters: the
// parsed Grammar, its SymbolTable, the computed FIRST/FOLLOW sets, and
// every Diagnostic produced along the way. It is read-only once
// Analyzer.Analyze returns — safe to share across goroutines.
type AnalysisResult struct {
	Grammar     *ast.Grammar
	Symbols     *SymbolTable
	FirstFollow *FirstFollowSets
	Diagnostics []diag.Diagnostic

	// RunID correlates every Diagnostic produced by one Analyze call,
	// stamped with uuid.New() the way a row gets stamped for cross-system
	// correlation — here it lets a host embedding this core in a
	// concurrent server correlate diagnostics from one parse across its
	// own log lines.
	RunID uuid.UUID
}

// NewAnalysisResult assembles a result and stamps it with a fresh RunID.
func NewAnalysisResult(g *ast.Grammar, st *SymbolTable, ff *FirstFollowSets, diags []diag.Diagnostic) *AnalysisResult {
	return &AnalysisResult{
		Grammar:     g,
		Symbols:     st,
		FirstFollow: ff,
		Diagnostics: diags,
		RunID:       uuid.New(),
	}
}

// HasErrors reports whether any Diagnostic carries SeverityError (spec
// §4.5).
func (r *AnalysisResult) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// analysisResultJSON is the wire shape for MarshalJSON: a summary an
// out-of-process emitter can consume via codegen.Query without needing to
// understand the full Element tagged union.
type analysisResultJSON struct {
	GrammarName string            `json:"grammarName"`
	RuleCount   int               `json:"ruleCount"`
	TokenCount  int               `json:"tokenCount"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
	RunID       string            `json:"runId"`
}

// MarshalJSON encodes the analysisResultJSON summary of the result (not the
// full Grammar or FIRST/FOLLOW sets); there is no matching decoder. codegen.Query
// offers ad-hoc gjson path lookups into this document for an emitter
// written in a language other than Go.
func (r *AnalysisResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(analysisResultJSON{
		GrammarName: r.Grammar.Name,
		RuleCount:   len(r.Grammar.Rules),
		TokenCount:  r.Symbols.TokenCount(),
		Diagnostics: r.Diagnostics,
		RunID:       r.RunID.String(),
	})
}
