package codegen

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dekarrin/minipg/semantic"
)

// Query is an ad-hoc path lookup into an AnalysisResult's serialized form
// (semantic.AnalysisResult.MarshalJSON), for an emitter that would rather
// pull a handful of fields out of the handoff document than unmarshal the
// whole thing into Go structs — the common shape for an emitter written as
// an external process or in another language, talking to this core over a
// serialized document rather than linking against it directly.
type Query struct {
	raw []byte
}

// NewQuery serializes result once and returns a Query over it.
func NewQuery(result *semantic.AnalysisResult) (*Query, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("codegen: marshal analysis result: %w", err)
	}
	return &Query{raw: raw}, nil
}

// Get returns the gjson.Result at path, e.g. "diagnostics.#.code" or
// "ruleCount". See https://github.com/tidwall/gjson/blob/master/SYNTAX.md
// for path syntax.
func (q *Query) Get(path string) gjson.Result {
	return gjson.GetBytes(q.raw, path)
}

// String is a convenience wrapper returning Get(path).String().
func (q *Query) String(path string) string {
	return q.Get(path).String()
}

// DiagnosticCodes returns every diagnostics.*.code value present, in
// document order.
func (q *Query) DiagnosticCodes() []string {
	var codes []string
	q.Get("diagnostics.#.code").ForEach(func(_, value gjson.Result) bool {
		codes = append(codes, value.String())
		return true
	})
	return codes
}
