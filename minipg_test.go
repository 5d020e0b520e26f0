package minipg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/minipg/lex"
)

func Test_Compile_SimpleGrammar(t *testing.T) {
	src := `
grammar Calculator;
expr: term;
term: NUMBER;
NUMBER: DIGIT+;
DIGIT: '0'|'1'|'2'|'3'|'4'|'5'|'6'|'7'|'8'|'9';
`
	result, err := Compile(src, "calc.g4")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.HasErrors())
	assert.Equal(t, 4, result.Symbols.RuleCount())
}

func Test_Compile_ReportsUndefinedReference(t *testing.T) {
	result, err := Compile(`grammar T; start: missing;`, "t.g4")
	require.NoError(t, err)
	assert.True(t, result.HasErrors())
}

func Test_NewFrontend_AnalyzeFile(t *testing.T) {
	fe := NewFrontend()
	r := strings.NewReader(`grammar T; start: 'a';`)
	result, err := fe.AnalyzeFile(r, "t.g4")
	require.NoError(t, err)
	assert.False(t, result.HasErrors())
}

func Test_NewLexer_EmitsTrailingEOF(t *testing.T) {
	lx := NewLexer()
	toks := lx.Lex(`grammar T;`, "t.g4")
	require.NotEmpty(t, toks)
	assert.Equal(t, lex.KindEof, toks[len(toks)-1].Kind)
}

func Test_ParseString_And_ParseFile_AreExposed(t *testing.T) {
	g, diags, err := ParseString(`grammar T; start: 'a';`, "t.g4")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, "T", g.Name)
}
