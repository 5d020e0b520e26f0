package parse

import (
	"github.com/dekarrin/minipg/ast"
	"github.com/dekarrin/minipg/lex"
)

// parseRule recognizes: 'fragment'? IDENT ruleArgs? returns? locals? ':'
// altList ';'. On a syntax error it enters panic mode and synchronizes on
// a fixed set of recovery tokens before returning, so later rules remain
// discoverable.
func (p *Parser) parseRule(g *ast.Grammar) {
	start := p.loc()

	isFragment := false
	if p.at(lex.KindFragment) {
		p.advance()
		isFragment = true
	}

	nameTok, ok := p.expect(lex.KindIdentifier, "a rule name")
	if !ok {
		p.synchronize()
		return
	}

	kind := ast.KindForName(nameTok.Lexeme)
	if isFragment && kind != ast.RuleKindLexer {
		p.errorf("P020", "'fragment' is only legal before a lexer rule, dropping the flag for %q", nameTok.Lexeme)
		isFragment = false
	}

	rule := ast.Rule{
		Name:       nameTok.Lexeme,
		Kind:       kind,
		IsFragment: isFragment,
		Loc:        ast.Location{File: start.File, Line: start.Line, Column: start.Column},
	}
	if kind == ast.RuleKindLexer {
		rule.Mode = p.curMode
	}

	if p.at(lex.KindCharSet) {
		rule.Args = p.advance().Lexeme
	}
	if p.at(lex.KindReturns) {
		p.advance()
		if p.at(lex.KindCharSet) {
			rule.Returns = p.advance().Lexeme
		} else {
			p.errorf("P021", "expected '[' after 'returns' but found %s", p.cur())
		}
	}
	if p.at(lex.KindLocals) {
		p.advance()
		if p.at(lex.KindCharSet) {
			rule.Locals = p.advance().Lexeme
		} else {
			p.errorf("P021", "expected '[' after 'locals' but found %s", p.cur())
		}
	}

	if _, ok := p.expect(lex.KindColon, "':'"); !ok {
		p.synchronize()
		return
	}

	rule.Alternatives = p.parseAltList()

	if p.at(lex.KindArrow) {
		rule.Command = p.parseLexerCommand()
	}

	if _, ok := p.expect(lex.KindSemicolon, "';'"); !ok {
		p.synchronize()
		return
	}

	g.AddRule(rule)
}

// parseLexerCommand recognizes a trailing '->' IDENT ('(' IDENT ')')?
// lexer directive (ANTLR4's skip/channel/mode-stack commands), storing it
// verbatim on the rule.
func (p *Parser) parseLexerCommand() string {
	p.advance() // '->'
	nameTok, ok := p.expect(lex.KindIdentifier, "a lexer command name")
	if !ok {
		return ""
	}
	cmd := nameTok.Lexeme
	if p.at(lex.KindLParen) {
		p.advance()
		if argTok, ok := p.expect(lex.KindIdentifier, "a lexer command argument"); ok {
			cmd += "(" + argTok.Lexeme + ")"
		}
		p.expect(lex.KindRParen, "')'")
	}
	return cmd
}

// parseAltList recognizes: alternative ('|' alternative)*.
func (p *Parser) parseAltList() []ast.Alternative {
	alts := []ast.Alternative{p.parseAlternative()}
	for p.at(lex.KindPipe) {
		p.advance()
		alts = append(alts, p.parseAlternative())
	}
	return alts
}

// atAlternativeEnd reports whether the current token is one that can never
// start another element, so seeing one ends the current alternative.
func (p *Parser) atAlternativeEnd() bool {
	switch p.cur().Kind {
	case lex.KindPipe, lex.KindSemicolon, lex.KindRParen, lex.KindHash, lex.KindArrow, lex.KindEof:
		return true
	default:
		return false
	}
}

// parseAlternative recognizes: element* ('#' IDENT)?.
func (p *Parser) parseAlternative() ast.Alternative {
	start := p.loc()
	alt := ast.Alternative{Loc: ast.Location{File: start.File, Line: start.Line, Column: start.Column}}

	for !p.atAlternativeEnd() {
		el, ok := p.parseElement()
		if !ok {
			// parseElement already recorded a diagnostic; bail out of this
			// alternative so the caller's panic-mode recovery can take
			// over at the rule level.
			return alt
		}
		alt.Elements = append(alt.Elements, el)
	}

	if p.at(lex.KindHash) {
		p.advance()
		labelTok, ok := p.expect(lex.KindIdentifier, "an alternative label")
		if ok {
			alt.Label = labelTok.Lexeme
		}
	}

	return alt
}

// parseElement recognizes: atom quantifier? | action | predicate. A
// predicate is a '{'... '}' action block immediately followed by '?'
// (spec's semantic predicate shorthand, same action-capture mechanism as
// an ordinary action element).
func (p *Parser) parseElement() (ast.Element, bool) {
	switch p.cur().Kind {
	case lex.KindAction:
		tok := p.advance()
		loc := tok.Loc
		if p.at(lex.KindQuestion) {
			p.advance()
			return &ast.SemanticPredicateElement{Code: tok.Lexeme, Loc: loc}, true
		}
		return &ast.ActionElement{Code: tok.Lexeme, Loc: loc}, true
	default:
		return p.parseAtomWithQuantifier()
	}
}

func (p *Parser) parseAtomWithQuantifier() (ast.Element, bool) {
	atom, ok := p.parseAtom()
	if !ok {
		return nil, false
	}
	return p.applyQuantifier(atom), true
}

// applyQuantifier recognizes a trailing '?' | '*' | '+' and wraps atom
// accordingly. A non-greedy modifier ('?' immediately following another
// quantifier) is accepted and ignored.
func (p *Parser) applyQuantifier(atom ast.Element) ast.Element {
	loc := atom.Location()
	switch p.cur().Kind {
	case lex.KindQuestion:
		p.advance()
		p.consumeNonGreedyMarker()
		return &ast.OptionalElement{Inner: atom, Loc: loc}
	case lex.KindStar:
		p.advance()
		p.consumeNonGreedyMarker()
		return &ast.ZeroOrMoreElement{Inner: atom, Loc: loc}
	case lex.KindPlus:
		p.advance()
		p.consumeNonGreedyMarker()
		return &ast.OneOrMoreElement{Inner: atom, Loc: loc}
	default:
		return atom
	}
}

// consumeNonGreedyMarker swallows a redundant '?' directly after a
// quantifier (ANTLR4's non-greedy marker), which this implementation
// ignores.
func (p *Parser) consumeNonGreedyMarker() {
	if p.at(lex.KindQuestion) {
		p.advance()
	}
}

// parseAtom recognizes: IDENT | STRING | charSet | '~' charSet | '.' | '('
// altList ')'.
func (p *Parser) parseAtom() (ast.Element, bool) {
	tok := p.cur()
	loc := toAstLoc(tok.Loc)

	switch tok.Kind {
	case lex.KindIdentifier:
		p.advance()
		if isLexerRuleName(tok.Lexeme) {
			return &ast.TokenRefElement{Name: tok.Lexeme, Loc: loc}, true
		}
		return &ast.RuleRefElement{Name: tok.Lexeme, Loc: loc}, true

	case lex.KindStringLiteral:
		p.advance()
		return &ast.StringLiteralElement{Text: tok.Lexeme, Loc: loc}, true

	case lex.KindCharSet:
		p.advance()
		return p.charSetToElement(tok.Lexeme, false, loc), true

	case lex.KindTilde:
		p.advance()
		inner, ok := p.expect(lex.KindCharSet, "a character class after '~'")
		if !ok {
			return nil, false
		}
		return p.charSetToElement(inner.Lexeme, true, loc), true

	case lex.KindDot:
		p.advance()
		return &ast.WildcardElement{Loc: loc}, true

	case lex.KindLParen:
		p.advance()
		alts := p.parseAltList()
		if _, ok := p.expect(lex.KindRParen, "')'"); !ok {
			return nil, false
		}
		return &ast.GroupElement{Alternatives: alts, Loc: loc}, true

	default:
		p.errorf("P022", "expected an element (identifier, string, character class, '.', or '(') but found %s", tok)
		return nil, false
	}
}

// isLexerRuleName applies the same uppercase-first-letter rule as
// ast.KindForName, but as a standalone predicate for disambiguating a bare
// identifier reference between RuleRef and TokenRef.
func isLexerRuleName(name string) bool {
	return ast.KindForName(name) == ast.RuleKindLexer
}

// charSetToElement parses a CharSet token's raw content into a CharClassElement, handling
// ranges ('a-z') and decoding individual escapes including \uXXXX.
func (p *Parser) charSetToElement(raw string, negated bool, loc ast.Location) ast.Element {
	items, err := parseCharClassItems(raw)
	if err != nil {
		p.errorf("P023", "malformed character class %q: %v", raw, err)
	}
	return &ast.CharClassElement{Items: items, Negated: negated, Loc: loc}
}

// parseCharClassItems decodes the raw body of a character class (no outer
// brackets) into individual chars and char-char ranges. An unescaped '-'
// between two decoded characters denotes a range; a literal '-' at the
// start, at the end, or escaped ('\-') is a plain character.
func parseCharClassItems(raw string) ([]ast.CharClassItem, error) {
	runes := []rune(raw)
	var items []ast.CharClassItem

	readOne := func(i int) (rune, int, error) {
		if runes[i] == '\\' {
			return lex.DecodeOneEscape(runes, i)
		}
		return runes[i], 1, nil
	}

	for i := 0; i < len(runes); {
		lo, consumed, err := readOne(i)
		if err != nil {
			return items, err
		}
		i += consumed

		if i < len(runes) && runes[i] == '-' && i+1 < len(runes) {
			// lookahead: is this a range dash (not the final char)?
			hi, hiConsumed, hiErr := readOne(i + 1)
			if hiErr != nil {
				return items, hiErr
			}
			items = append(items, ast.CharClassItem{Lo: lo, Hi: hi})
			i += 1 + hiConsumed
			continue
		}

		items = append(items, ast.CharClassItem{Lo: lo, Hi: lo})
	}

	return items, nil
}
