package semantic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/parse"
)

func analyze(t *testing.T, src string) *AnalysisResult {
	t.Helper()
	g, parseDiags, err := parse.ParseString(src, "t.g4")
	require.NoError(t, err)
	require.Empty(t, parseDiags)

	result, err := NewAnalyzer().Analyze(g)
	require.NoError(t, err)
	return result
}

func diagnosticsContaining(diags []diag.Diagnostic, substr string) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			out = append(out, d)
		}
	}
	return out
}

// S1. Simple calculator.
func Test_Analyze_S1_SimpleCalculator(t *testing.T) {
	src := `
grammar Calculator;
expr: term;
term: NUMBER;
NUMBER: DIGIT+;
DIGIT: '0'|'1'|'2'|'3'|'4'|'5'|'6'|'7'|'8'|'9';
`
	result := analyze(t, src)
	require.False(t, result.HasErrors())
	assert.Empty(t, result.Diagnostics)

	assert.Equal(t, 4, result.Symbols.RuleCount())
	exprID, ok := result.Symbols.RuleID("expr")
	require.True(t, ok)
	assert.Equal(t, RuleId(0), exprID)

	numberID, ok := result.Symbols.TokenID("NUMBER")
	require.True(t, ok)
	assert.Equal(t, TokenId(0), numberID)

	digitID, ok := result.Symbols.TokenID("DIGIT")
	require.True(t, ok)
	assert.Equal(t, TokenId(1), digitID)
}

// S2. Undefined reference.
func Test_Analyze_S2_UndefinedReference(t *testing.T) {
	result := analyze(t, `grammar T; start: missing;`)
	require.True(t, result.HasErrors())

	found := diagnosticsContaining(result.Diagnostics, "undefined rule missing")
	require.Len(t, found, 1)
	assert.Equal(t, diag.SeverityError, found[0].Severity)
}

// S3. Duplicate rule.
func Test_Analyze_S3_DuplicateRule(t *testing.T) {
	result := analyze(t, `grammar T; r: 'a'; r: 'b';`)

	found := diagnosticsContaining(result.Diagnostics, "already defined")
	require.Len(t, found, 1)
	assert.Equal(t, diag.SeverityError, found[0].Severity)

	id, ok := result.Symbols.RuleID("r")
	require.True(t, ok)
	assert.Equal(t, RuleId(0), id)
}

// S4. Left recursion.
func Test_Analyze_S4_LeftRecursion(t *testing.T) {
	result := analyze(t, `grammar T; term: 'x'; expr: expr '+' term;`)
	require.False(t, result.HasErrors())

	found := diagnosticsContaining(result.Diagnostics, "left recursion")
	require.Len(t, found, 1)
	assert.Equal(t, diag.SeverityWarning, found[0].Severity)
	assert.Contains(t, found[0].Message, "expr")
}

// S5. Unreachable rule.
func Test_Analyze_S5_UnreachableRule(t *testing.T) {
	result := analyze(t, `grammar T; start: 'a'; orphan: 'b';`)

	found := diagnosticsContaining(result.Diagnostics, "unreachable rule orphan")
	require.Len(t, found, 1)
	assert.Equal(t, diag.SeverityWarning, found[0].Severity)
}

// S6. Missing header is a parse-time concern (parse.ParseString returns a
// fatal error before the Analyzer is ever reached), exercised directly in
// package parse's Test_ParseString_MissingHeaderIsFatal; nothing more for
// semantic to check here.

func Test_Analyze_Ambiguity_SharedLookahead(t *testing.T) {
	src := `
grammar T;
stmt: 'a' 'b' | 'a' 'c';
`
	result := analyze(t, src)
	require.False(t, result.HasErrors())

	found := diagnosticsContaining(result.Diagnostics, "share lookahead")
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Message, "alternatives 1 and 2 of rule stmt")
	assert.Contains(t, found[0].Message, "'a'")
}

func Test_Analyze_ReachabilitySoundness(t *testing.T) {
	result := analyze(t, `grammar T; start: middle; middle: END; END: 'x';`)
	require.False(t, result.HasErrors())
	assert.Empty(t, diagnosticsContaining(result.Diagnostics, "unreachable"))
}

func Test_Analyze_InvalidGrammarShortCircuits(t *testing.T) {
	g, parseDiags, err := parse.ParseString(`grammar T;`, "empty.g4")
	require.NoError(t, err)
	require.Empty(t, parseDiags)

	_, err = NewAnalyzer().Analyze(g)
	require.Error(t, err)
}

func Test_Analyze_FirstFollowMonotonicity(t *testing.T) {
	src := `
grammar T;
expr: term (('+' | '-') term)*;
term: NUMBER;
NUMBER: [0-9]+;
`
	first := analyze(t, src)
	second := analyze(t, src)

	assert.Equal(t, first.FirstFollow.FirstOf("expr"), second.FirstFollow.FirstOf("expr"))
	assert.Equal(t, first.FirstFollow.FollowOf("term"), second.FirstFollow.FollowOf("term"))
}

func Test_Analyze_RunIDsAreUnique(t *testing.T) {
	src := `grammar T; start: 'a';`
	a := analyze(t, src)
	b := analyze(t, src)
	assert.NotEqual(t, a.RunID, b.RunID)
}
