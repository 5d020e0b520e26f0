// Package parse implements the hand-rolled recursive-descent grammar
// parser: single-token lookahead, panic-mode recovery on malformed rule
// bodies, producing an *ast.Grammar plus a list of recoverable
// diag.Diagnostics.
package parse

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/diag"
	"github.com/dekarrin/minipg/lex"
)

// Parser turns grammar source into an *ast.Grammar. It is grounded on the
// teacher's internal/ictiobus/fishi.go bootstrap parser
// (CreateBootstrapGrammarFromLexerStream): a single mutable cursor over a
// token stream, state carried in ordinary local variables rather than a
// table-driven automaton, generalized here from that one bootstrap
// grammar's tiny surface to the full rule/prelude grammar this package
// accepts.
type Parser struct {
	toks []lex.Token
	pos  int

	filename        string
	diags           []diag.Diagnostic
	lastGrammarName string
	curMode         string
}

// ParseString parses source text into a Grammar. It returns a best-effort
// AST plus any accumulated diagnostics when recoverable errors were found;
// it returns a non-nil error only when the input is malformed badly enough
// that no usable AST could be produced (e.g. a missing grammar header).
func ParseString(source, filename string) (*ast.Grammar, []diag.Diagnostic, error) {
	lx := lex.NewLexer(source, filename)
	var toks []lex.Token
	for lx.HasNext() {
		tk := lx.NextToken()
		toks = append(toks, tk)
		if tk.Kind == lex.KindEof {
			break
		}
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != lex.KindEof {
		toks = append(toks, lex.Token{Kind: lex.KindEof})
	}

	p := &Parser{toks: toks, filename: filename}
	g, err := p.parseGrammar()
	return g, p.diags, err
}

// ParseFile reads path as UTF-8 and delegates to ParseString. Non-UTF-8
// input is a fatal diag.Error wrapping an I/O-shaped complaint.
func ParseFile(path string) (*ast.Grammar, []diag.Diagnostic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, diag.NewIoError(err)
	}
	if !utf8.Valid(data) {
		return nil, nil, diag.NewIoError(errNotUTF8)
	}
	return ParseString(string(data), path)
}

func (p *Parser) cur() lex.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(offset int) lex.Token {
	idx := p.pos + offset
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() lex.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(k lex.Kind) bool {
	return p.cur().Kind == k
}

func (p *Parser) loc() diag.Location {
	l := p.cur().Loc
	return diag.Location{File: l.File, Line: l.Line, Column: l.Column}
}

func (p *Parser) errorf(code, format string, args...any) {
	p.diags = append(p.diags, diag.Error(code, fmt.Sprintf(format, args...), locPtr(p.loc())))
}

func (p *Parser) warnf(code, format string, args...any) {
	p.diags = append(p.diags, diag.Warning(code, fmt.Sprintf(format, args...), locPtr(p.loc())))
}

func locPtr(l diag.Location) *diag.Location { return &l }

// expect consumes the current token if it has kind k, else records a
// diagnostic and leaves the cursor in place for the caller's recovery
// logic to handle.
func (p *Parser) expect(k lex.Kind, what string) (lex.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf("P001", "expected %s but found %s", what, p.cur())
	return lex.Token{}, false
}

func (p *Parser) parseGrammar() (*ast.Grammar, error) {
	kind, ok := p.parseGrammarDecl()
	if !ok {
		return nil, diag.NewParseError("expected a grammar declaration ('grammar' | 'lexer grammar' | 'parser grammar') at the start of input", locPtr(p.loc()))
	}

	g := ast.New(p.lastGrammarName, kind)

	for !p.at(lex.KindEof) {
		switch p.cur().Kind {
		case lex.KindOptions:
			p.parseOptionsBlock(g)
		case lex.KindImport:
			p.parseImportStmt(g)
		case lex.KindTokens:
			p.parseTokensBlock(g)
		case lex.KindChannels:
			p.parseChannelsBlock(g)
		case lex.KindAt:
			p.parseNamedAction(g)
		case lex.KindMode:
			p.parseModeDecl(g)
		case lex.KindFragment, lex.KindIdentifier:
			p.parseRule(g)
		default:
			p.errorf("P002", "unexpected %s in grammar body", p.cur())
			before := p.pos
			p.synchronize()
			if p.pos == before {
				// a sync token with no case above ('grammar'); step past it
				p.advance()
			}
		}
	}

	return g, nil
}

var errNotUTF8 = notUTF8Error{}

type notUTF8Error struct{}

func (notUTF8Error) Error() string { return "input is not valid UTF-8" }
