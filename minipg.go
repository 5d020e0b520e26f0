// Package minipg is a parser-generator core: it lexes and parses ANTLR4-style
// combined/lexer/parser grammar files into an AST, analyzes that AST for
// symbol errors, reachability, left recursion, FIRST/FOLLOW sets and
// lookahead ambiguity, and hands the result to a codegen.Emitter.
//
// This file is the package facade: it names the capability interfaces a
// caller programs against
// (Lexer, Parser, SemanticAnalyzer) and offers a Frontend that composes the
// concrete implementations end to end, so a caller who only wants "parse
// this string and tell me what's wrong with it" never needs to import the
// parse/semantic packages directly.
package minipg

import (
	"io"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/lex"
	"github.com/dekarrin/minipg/parse"
	"github.com/dekarrin/minipg/semantic"
)

// Lexer turns grammar source text into a token stream. The concrete
// implementation lives in package lex.
type Lexer interface {
	Lex(source, filename string) []lex.Token
}

// Parser turns grammar source text into an AST, along with any recoverable
// diagnostics produced along the way. The concrete implementation lives in
// package parse.
type Parser interface {
	Parse(source, filename string) (*ast.Grammar, []diag.Diagnostic, error)
}

// SemanticAnalyzer runs every semantic sub-analysis over a parsed Grammar
// and returns the composed result. The concrete implementation lives in
// package semantic.
type SemanticAnalyzer interface {
	Analyze(g *ast.Grammar) (*semantic.AnalysisResult, error)
}

// defaultLexer adapts lex.Lexer's iterative NextToken/HasNext interface to
// a single batch call.
type defaultLexer struct{}

func (defaultLexer) Lex(source, filename string) []lex.Token {
	lx := lex.NewLexer(source, filename)
	var toks []lex.Token
	for lx.HasNext() {
		toks = append(toks, lx.NextToken())
	}
	return toks
}

// NewLexer returns the Lexer used throughout this package.
func NewLexer() Lexer {
	return defaultLexer{}
}

// defaultParser adapts parse.ParseString to the Parser interface.
type defaultParser struct{}

func (defaultParser) Parse(source, filename string) (*ast.Grammar, []diag.Diagnostic, error) {
	return parse.ParseString(source, filename)
}

// NewParser returns the Parser used throughout this package.
func NewParser() Parser {
	return defaultParser{}
}

// NewAnalyzer returns a fresh SemanticAnalyzer. Safe to call once per
// Analyze call, or reuse across calls; Analyzer carries no state.
func NewAnalyzer() SemanticAnalyzer {
	return semantic.NewAnalyzer()
}

// Frontend is a complete grammar-source-to-analysis-result compiler front
// end: lex+parse, then run every semantic sub-analysis, in one call.
type Frontend struct {
	p Parser
	a SemanticAnalyzer
}

// NewFrontend returns a Frontend wired to the default Parser and
// SemanticAnalyzer.
func NewFrontend() *Frontend {
	return &Frontend{p: NewParser(), a: NewAnalyzer()}
}

// AnalyzeString parses and analyzes source in one call. filename is used
// only to annotate diagnostic locations.
func (fe *Frontend) AnalyzeString(source, filename string) (*semantic.AnalysisResult, error) {
	g, parseDiags, err := fe.p.Parse(source, filename)
	if err != nil {
		return nil, err
	}

	result, err := fe.a.Analyze(g)
	if err != nil {
		return nil, err
	}

	result.Diagnostics = append(append([]diag.Diagnostic{}, parseDiags...), result.Diagnostics...)
	return result, nil
}

// AnalyzeFile reads r fully, then behaves as AnalyzeString. filename is
// used only to annotate diagnostic locations.
func (fe *Frontend) AnalyzeFile(r io.Reader, filename string) (*semantic.AnalysisResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, diag.NewIoError(err)
	}
	return fe.AnalyzeString(string(data), filename)
}

// ParseString is a convenience wrapper around parse.ParseString, for callers
// who only need the AST and not a full semantic analysis.
func ParseString(source, filename string) (*ast.Grammar, []diag.Diagnostic, error) {
	return parse.ParseString(source, filename)
}

// ParseFile is a convenience wrapper around parse.ParseFile.
func ParseFile(path string) (*ast.Grammar, []diag.Diagnostic, error) {
	return parse.ParseFile(path)
}

// Compile parses and fully analyzes source in one call, equivalent to
// NewFrontend().AnalyzeString(source, filename).
func Compile(source, filename string) (*semantic.AnalysisResult, error) {
	return NewFrontend().AnalyzeString(source, filename)
}
