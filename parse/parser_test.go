package parse

import (
	"testing"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseString_SimpleCombinedGrammar(t *testing.T) {
	src := `
grammar Calc;

expr : expr '+' term
     | term
     ;

term : NUMBER
     ;

NUMBER : [0-9]+ ;
WS     : [ \t\r\n]+ -> skip ;
`
	g, diags, err := ParseString(src, "calc.g4")
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, "Calc", g.Name)
	assert.Equal(t, ast.GrammarKindCombined, g.Kind)

	expr := g.GetRule("expr")
	require.NotNil(t, expr)
	assert.Equal(t, ast.RuleKindParser, expr.Kind)
	assert.Len(t, expr.Alternatives, 2)

	number := g.GetRule("NUMBER")
	require.NotNil(t, number)
	assert.Equal(t, ast.RuleKindLexer, number.Kind)

	var errCount int
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			errCount++
		}
	}
	assert.Zero(t, errCount)
}

func Test_ParseString_LexerGrammarHeader(t *testing.T) {
	g, _, err := ParseString(`lexer grammar Toks; ID : [a-z]+ ;`, "t.g4")
	require.NoError(t, err)
	assert.Equal(t, ast.GrammarKindLexer, g.Kind)
	assert.Equal(t, "Toks", g.Name)
}

func Test_ParseString_ParserGrammarHeader(t *testing.T) {
	g, _, err := ParseString(`parser grammar Rules; start : EOF ;`, "t.g4")
	require.NoError(t, err)
	assert.Equal(t, ast.GrammarKindParser, g.Kind)
}

func Test_ParseString_MissingHeaderIsFatal(t *testing.T) {
	_, _, err := ParseString(`foo : bar ;`, "bad.g4")
	require.Error(t, err)
	var parseErr *diag.Error
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, diag.KindParse, parseErr.Kind)
}

func Test_ParseString_OptionsImportTokensChannels(t *testing.T) {
	src := `
grammar Full;
options { language=Go; caseInsensitive=true; }
import Common;
tokens { VIRTUAL_TOK }
channels { HIDDEN_CH }

start : EOF ;
`
	g, _, err := ParseString(src, "full.g4")
	require.NoError(t, err)

	lang, ok := g.OptionString("language")
	assert.True(t, ok)
	assert.Equal(t, "Go", lang)
	assert.True(t, g.OptionBool("caseInsensitive", false))

	assert.Equal(t, []string{"Common"}, g.Imports)
	assert.Equal(t, []string{"VIRTUAL_TOK"}, g.TokenDecls)
	assert.Equal(t, []string{"HIDDEN_CH"}, g.Channels)
}

func Test_ParseString_NamedActionsAndDuplicateWarns(t *testing.T) {
	src := `
grammar WithActions;
@header { package foo }
@header { package bar }

start : EOF ;
`
	g, diags, err := ParseString(src, "a.g4")
	require.NoError(t, err)

	val, ok := g.NamedActions.Get("header")
	require.True(t, ok)
	assert.Equal(t, " package foo ", val)

	var sawDuplicateWarning bool
	for _, d := range diags {
		if d.Severity == diag.SeverityWarning {
			sawDuplicateWarning = true
		}
	}
	assert.True(t, sawDuplicateWarning)
}

func Test_ParseString_RuleArgsReturnsLocals(t *testing.T) {
	src := `
grammar WithArgs;
expr[int depth] returns [int value] locals [int tmp]
    : NUMBER
    ;
NUMBER : [0-9]+ ;
`
	g, _, err := ParseString(src, "args.g4")
	require.NoError(t, err)

	rule := g.GetRule("expr")
	require.NotNil(t, rule)
	assert.Equal(t, "int depth", rule.Args)
	assert.Equal(t, "int value", rule.Returns)
	assert.Equal(t, "int tmp", rule.Locals)
}

func Test_ParseString_AltLabelsAndGroupsAndQuantifiers(t *testing.T) {
	src := `
grammar Labeled;
stmt : 'if' expr 'then' stmt   #ifStmt
     | 'while' expr 'do' stmt  #whileStmt
     | (expr)*                 #exprList
     ;
expr : NUMBER+ ;
NUMBER : [0-9]+ ;
`
	g, _, err := ParseString(src, "labels.g4")
	require.NoError(t, err)

	stmt := g.GetRule("stmt")
	require.NotNil(t, stmt)
	require.Len(t, stmt.Alternatives, 3)
	assert.Equal(t, "ifStmt", stmt.Alternatives[0].Label)
	assert.Equal(t, "whileStmt", stmt.Alternatives[1].Label)
	assert.Equal(t, "exprList", stmt.Alternatives[2].Label)

	zom, ok := stmt.Alternatives[2].Elements[0].(*ast.ZeroOrMoreElement)
	require.True(t, ok)
	group, ok := zom.Inner.(*ast.GroupElement)
	require.True(t, ok)
	require.Len(t, group.Alternatives, 1)
}

func Test_ParseString_CharClassNegationAndRanges(t *testing.T) {
	g, _, err := ParseString(`grammar Cc; ANY_BUT_DIGIT : ~[0-9] ; `, "cc.g4")
	require.NoError(t, err)

	rule := g.GetRule("ANY_BUT_DIGIT")
	require.NotNil(t, rule)
	cc, ok := rule.Alternatives[0].Elements[0].(*ast.CharClassElement)
	require.True(t, ok)
	assert.True(t, cc.Negated)
	require.Len(t, cc.Items, 1)
	assert.Equal(t, rune('0'), cc.Items[0].Lo)
	assert.Equal(t, rune('9'), cc.Items[0].Hi)
}

func Test_ParseString_SyntaxErrorRecoversAndContinues(t *testing.T) {
	src := `
grammar Recovering;
bad :  + ;
good : NUMBER ;
NUMBER : [0-9]+ ;
`
	g, diags, err := ParseString(src, "rec.g4")
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.NotNil(t, g.GetRule("good"))
	assert.NotNil(t, g.GetRule("NUMBER"))

	var sawError bool
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func Test_ParseString_FragmentOnParserRuleIsDropped(t *testing.T) {
	src := `
grammar BadFragment;
fragment lowerRule : 'x' ;
`
	g, diags, err := ParseString(src, "f.g4")
	require.NoError(t, err)

	rule := g.GetRule("lowerRule")
	require.NotNil(t, rule)
	assert.False(t, rule.IsFragment)

	var sawError bool
	for _, d := range diags {
		if d.Severity == diag.SeverityError {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func Test_ParseString_ModeSwitchesLexerRuleMode(t *testing.T) {
	src := `
grammar Modes;
DEFAULT_TOK : 'a' ;
mode STRING_MODE;
STR_CHAR : 'b' ;
`
	g, _, err := ParseString(src, "modes.g4")
	require.NoError(t, err)

	assert.Equal(t, "", g.GetRule("DEFAULT_TOK").Mode)
	assert.Equal(t, "STRING_MODE", g.GetRule("STR_CHAR").Mode)
	assert.Equal(t, []string{"STRING_MODE"}, g.Modes)
}
