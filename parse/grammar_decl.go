package parse

import (
	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/lex"
)

// parseGrammarDecl recognizes: ('grammar'|'lexer' 'grammar'|'parser'
// 'grammar') IDENT ';'. On success it stashes the grammar name in
// p.lastGrammarName (the caller constructs the ast.Grammar once it knows
// the GrammarKind) and reports ok=true.
func (p *Parser) parseGrammarDecl() (ast.GrammarKind, bool) {
	kind := ast.GrammarKindCombined

	switch p.cur().Kind {
	case lex.KindGrammar:
		p.advance()
	case lex.KindLexer:
		p.advance()
		if _, ok := p.expect(lex.KindGrammar, "'grammar'"); !ok {
			return kind, false
		}
		kind = ast.GrammarKindLexer
	case lex.KindParser:
		p.advance()
		if _, ok := p.expect(lex.KindGrammar, "'grammar'"); !ok {
			return kind, false
		}
		kind = ast.GrammarKindParser
	default:
		return kind, false
	}

	nameTok, ok := p.expect(lex.KindIdentifier, "a grammar name")
	if !ok {
		return kind, false
	}
	p.lastGrammarName = nameTok.Lexeme

	p.expect(lex.KindSemicolon, "';'")
	return kind, true
}

// blockBody consumes the Action token produced by the lexer for a brace-
// delimited block (the lexer scans any '{...}' as one Action token, spec
// §4.1) and re-lexes its raw content, since 'options { k=v; }', 'tokens {
// a, b }' and 'channels { a, b }' blocks share that same lexical shape with
// ordinary action code despite having structured contents. Returns the
// re-lexed token stream (sans the surrounding braces, which never appear in
// it) or nil if no Action token was found.
func (p *Parser) blockBody(what string) []lex.Token {
	bodyTok, ok := p.expect(lex.KindAction, "'{' "+what+" '}'")
	if !ok {
		p.synchronize()
		return nil
	}
	inner := lex.NewLexer(bodyTok.Lexeme, p.filename)
	var toks []lex.Token
	for inner.HasNext() {
		tk := inner.NextToken()
		if tk.Kind == lex.KindEof {
			break
		}
		toks = append(toks, tk)
	}
	return toks
}

// parseOptionsBlock recognizes 'options' '{' (IDENT '=' optionValue ';')* '}'.
// optionValue is an identifier or a string literal; the parser stores its
// raw text either way since Grammar.Options is a free-form string map
//.
func (p *Parser) parseOptionsBlock(g *ast.Grammar) {
	p.advance() // 'options'
	toks := p.blockBody("options block")
	i := 0
	next := func() lex.Token {
		if i >= len(toks) {
			return lex.Token{Kind: lex.KindEof}
		}
		t := toks[i]
		i++
		return t
	}
	for i < len(toks) {
		keyTok := next()
		if keyTok.Kind != lex.KindIdentifier {
			p.errorf("P011", "expected an option name inside options block but found %s", keyTok)
			continue
		}
		if eq := next(); eq.Kind != lex.KindAssign {
			p.errorf("P011", "expected '=' after option name %q", keyTok.Lexeme)
			continue
		}
		valTok := next()
		if valTok.Kind != lex.KindIdentifier && valTok.Kind != lex.KindStringLiteral {
			p.errorf("P011", "expected an option value for %q but found %s", keyTok.Lexeme, valTok)
			continue
		}
		if i < len(toks) && toks[i].Kind == lex.KindSemicolon {
			i++
		}
		if g.Options != nil {
			if _, existed := g.Options.Get(keyTok.Lexeme); existed {
				p.warnf("P010", "duplicate option %q, keeping first value", keyTok.Lexeme)
				continue
			}
		}
		g.AddOption(keyTok.Lexeme, valTok.Lexeme)
	}
}

// parseImportStmt recognizes 'import' IDENT (',' IDENT)* ';'.
func (p *Parser) parseImportStmt(g *ast.Grammar) {
	p.advance() // 'import'
	for {
		nameTok, ok := p.expect(lex.KindIdentifier, "an imported grammar name")
		if !ok {
			p.synchronize()
			return
		}
		g.AddImport(nameTok.Lexeme)
		if p.at(lex.KindComma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(lex.KindSemicolon, "';'")
}

// parseTokensBlock recognizes 'tokens' '{' IDENT (',' IDENT)* '}'.
func (p *Parser) parseTokensBlock(g *ast.Grammar) {
	p.advance() // 'tokens'
	for _, tk := range p.blockBody("tokens block") {
		if tk.Kind == lex.KindIdentifier {
			g.AddTokenDecl(tk.Lexeme)
		}
	}
}

// parseChannelsBlock recognizes 'channels' '{' IDENT (',' IDENT)* '}'.
func (p *Parser) parseChannelsBlock(g *ast.Grammar) {
	p.advance() // 'channels'
	for _, tk := range p.blockBody("channels block") {
		if tk.Kind == lex.KindIdentifier {
			g.AddChannel(tk.Lexeme)
		}
	}
}

// parseNamedAction recognizes '@' IDENT '{'... '}'. The lexer already
// returns the brace-delimited body as a single Action token.
func (p *Parser) parseNamedAction(g *ast.Grammar) {
	p.advance() // '@'
	nameTok, ok := p.expect(lex.KindIdentifier, "a named action name")
	if !ok {
		p.synchronize()
		return
	}
	bodyTok, ok := p.expect(lex.KindAction, "an action block")
	if !ok {
		p.synchronize()
		return
	}
	if !g.AddNamedAction(nameTok.Lexeme, bodyTok.Lexeme) {
		p.warnf("P012", "duplicate named action @%s, keeping first definition", nameTok.Lexeme)
	}
}

// parseModeDecl recognizes 'mode' IDENT ';', switching the current lexer
// mode for subsequently parsed lexer rules.
func (p *Parser) parseModeDecl(g *ast.Grammar) {
	p.advance() // 'mode'
	nameTok, ok := p.expect(lex.KindIdentifier, "a mode name")
	if !ok {
		p.synchronize()
		return
	}
	g.AddMode(nameTok.Lexeme)
	p.curMode = nameTok.Lexeme
	p.expect(lex.KindSemicolon, "';'")
}
