package validate

import (
	"testing"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Validate_RejectsEmptyName(t *testing.T) {
	g := ast.New("", ast.GrammarKindCombined)
	g.AddRule(ast.Rule{Name: "start", Kind: ast.RuleKindParser})

	err := Validate(g)
	require.Error(t, err)
	assertInvalidGrammar(t, err)
}

func Test_Validate_RejectsNoRules(t *testing.T) {
	g := ast.New("Empty", ast.GrammarKindCombined)

	err := Validate(g)
	require.Error(t, err)
	assertInvalidGrammar(t, err)
}

func Test_Validate_RejectsIllegalGrammarName(t *testing.T) {
	g := ast.New("123Bad", ast.GrammarKindCombined)
	g.AddRule(ast.Rule{Name: "start", Kind: ast.RuleKindParser})

	err := Validate(g)
	require.Error(t, err)
}

func Test_Validate_RejectsKindCapitalizationMismatch(t *testing.T) {
	g := ast.New("Mismatch", ast.GrammarKindCombined)
	g.AddRule(ast.Rule{Name: "Start", Kind: ast.RuleKindParser})

	err := Validate(g)
	require.Error(t, err)
}

func Test_Validate_RejectsFragmentOnParserRule(t *testing.T) {
	g := ast.New("FragBad", ast.GrammarKindCombined)
	g.AddRule(ast.Rule{Name: "start", Kind: ast.RuleKindParser, IsFragment: true})

	err := Validate(g)
	require.Error(t, err)
}

func Test_Validate_AcceptsWellFormedGrammar(t *testing.T) {
	g := ast.New("Good", ast.GrammarKindCombined)
	g.AddRule(ast.Rule{Name: "start", Kind: ast.RuleKindParser})
	g.AddRule(ast.Rule{Name: "NUMBER", Kind: ast.RuleKindLexer})
	g.AddRule(ast.Rule{Name: "FRAG", Kind: ast.RuleKindLexer, IsFragment: true})

	assert.NoError(t, Validate(g))
}

func assertInvalidGrammar(t *testing.T, err error) {
	t.Helper()
	var dErr *diag.Error
	require.ErrorAs(t, err, &dErr)
	assert.Equal(t, diag.KindInvalidGrammar, dErr.Kind)
}
