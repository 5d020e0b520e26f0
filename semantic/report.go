package semantic

import (
	"sort"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/minipg/diag"
)

// Report renders diags as a severity-sorted table, grounded on the
// teacher's parse.slrTable/clr1Table/lalrTable String methods
// (internal/ictiobus/parse/{slr,clr1,lalr}.go), which all build a
// [][]string and call rosed.Edit("").InsertTableOpts(0, data, width,
// rosed.Options{TableHeaders: true, ...}) to lay out a generated parse
// table for terminal display. Report does the same for a diagnostic list
// instead of a parse table. It is pure text in, text out; it owns no I/O.
func Report(diags []diag.Diagnostic) string {
	sorted := make([]diag.Diagnostic, len(diags))
	copy(sorted, diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Severity < sorted[j].Severity
	})

	data := [][]string{{"SEVERITY", "CODE", "MESSAGE", "LOCATION"}}
	for _, d := range sorted {
		loc := ""
		if d.Location != nil {
			loc = d.Location.String()
		}
		data = append(data, []string{d.Severity.String(), d.Code, d.Message, loc})
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
