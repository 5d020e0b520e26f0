package semantic

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/parse"
)

// Source is one (text, filename) pair handed to AnalyzeAll.
type Source struct {
	Text     string
	Filename string
}

// AnalyzeAll parses and analyzes every Source concurrently, bounded to
// runtime.GOMAXPROCS(0) in flight: callers who need concurrency
// parallelise across grammars, never inside one. Each Source gets its own
// Parser and Analyzer, and nothing is shared across goroutines. Results
// are returned in the same order as
// sources, regardless of completion order: each task writes only its own
// slot of the result slice.
func AnalyzeAll(sources []Source) []*AnalysisResult {
	results := make([]*AnalysisResult, len(sources))
	p := pool.New().WithMaxGoroutines(runtime.GOMAXPROCS(0))

	for i, src := range sources {
		i, src := i, src
		p.Go(func() {
			g, parseDiags, err := parse.ParseString(src.Text, src.Filename)
			if err != nil {
				results[i] = &AnalysisResult{Diagnostics: append(parseDiags, fatalDiagnostic(err))}
				return
			}

			result, err := NewAnalyzer().Analyze(g)
			if err != nil {
				results[i] = &AnalysisResult{Grammar: g, Diagnostics: append(parseDiags, fatalDiagnostic(err))}
				return
			}

			result.Diagnostics = append(append([]diag.Diagnostic{}, parseDiags...), result.Diagnostics...)
			results[i] = result
		})
	}

	p.Wait()
	return results
}

func fatalDiagnostic(err error) diag.Diagnostic {
	return diag.Error("E-FATAL", err.Error(), nil)
}
