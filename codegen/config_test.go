package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minipg/parse"
	"github.com/dekarrin/minipg/semantic"
)

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig("go", "out")
	assert.Equal(t, "go", cfg.TargetLanguage)
	assert.Equal(t, "out", cfg.OutputDirectory)
	assert.True(t, cfg.GenerateListener)
	assert.False(t, cfg.GenerateVisitor)
}

func Test_Config_PackageNameOr(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, "fallback", cfg.PackageNameOr("fallback"))

	name := "explicit"
	cfg.PackageName = &name
	assert.Equal(t, "explicit", cfg.PackageNameOr("fallback"))
}

func Test_ConfigSchema_MentionsFields(t *testing.T) {
	schema, err := ConfigSchema()
	require.NoError(t, err)
	assert.Contains(t, schema, "targetLanguage")
	assert.Contains(t, schema, "generateListener")
}

func Test_ConfigSchemaMap(t *testing.T) {
	m, err := ConfigSchemaMap()
	require.NoError(t, err)
	assert.Contains(t, m, "properties")
}

type stubEmitter struct {
	lang   string
	output string
}

func (s stubEmitter) TargetLanguage() string { return s.lang }
func (s stubEmitter) Generate(result *semantic.AnalysisResult, cfg *Config) (string, error) {
	return s.output, nil
}

func Test_Registry_DispatchesByLanguage(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubEmitter{lang: "go", output: "package main"})

	g, parseDiags, err := parse.ParseString(`grammar T; start: 'a';`, "t.g4")
	require.NoError(t, err)
	require.Empty(t, parseDiags)
	result, err := semantic.NewAnalyzer().Analyze(g)
	require.NoError(t, err)

	out, err := reg.Generate(result, &Config{TargetLanguage: "go"})
	require.NoError(t, err)
	assert.Equal(t, "package main", out)

	_, err = reg.Generate(result, &Config{TargetLanguage: "rust"})
	assert.Error(t, err)
}

func Test_Registry_RefusesErroredGrammar(t *testing.T) {
	reg := NewRegistry()
	reg.Register(stubEmitter{lang: "go"})

	g, parseDiags, err := parse.ParseString(`grammar T; start: missing;`, "t.g4")
	require.NoError(t, err)
	require.Empty(t, parseDiags)
	result, err := semantic.NewAnalyzer().Analyze(g)
	require.NoError(t, err)
	require.True(t, result.HasErrors())

	_, err = reg.Generate(result, &Config{TargetLanguage: "go"})
	assert.Error(t, err)
}

func Test_Query_DiagnosticCodes(t *testing.T) {
	g, parseDiags, err := parse.ParseString(`grammar T; start: missing; r: 'a'; r: 'b';`, "t.g4")
	require.NoError(t, err)
	require.Empty(t, parseDiags)
	result, err := semantic.NewAnalyzer().Analyze(g)
	require.NoError(t, err)

	q, err := NewQuery(result)
	require.NoError(t, err)

	codes := q.DiagnosticCodes()
	assert.Contains(t, codes, "E-UNDEF-RULE")
	assert.Contains(t, codes, "E-DUP-RULE")
}

func Test_Query_String(t *testing.T) {
	g, parseDiags, err := parse.ParseString(`grammar Calculator; start: 'a';`, "t.g4")
	require.NoError(t, err)
	require.Empty(t, parseDiags)
	result, err := semantic.NewAnalyzer().Analyze(g)
	require.NoError(t, err)

	q, err := NewQuery(result)
	require.NoError(t, err)
	assert.Equal(t, "Calculator", q.String("grammarName"))
}
