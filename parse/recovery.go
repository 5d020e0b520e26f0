package parse

import "github.com/dekarrin/minipg/lex"

// isSyncPoint reports whether the current token is one of the panic-mode
// synchronization points: ';', 'grammar', 'options', 'import',
// 'fragment', or Eof.
func (p *Parser) isSyncPoint() bool {
	switch p.cur().Kind {
	case lex.KindSemicolon, lex.KindGrammar, lex.KindOptions, lex.KindImport, lex.KindFragment, lex.KindEof:
		return true
	default:
		return false
	}
}

// synchronize consumes tokens until a synchronization point is reached,
// then consumes the point itself if it was a Semicolon (the other sync
// tokens are left in place for the caller to re-dispatch on, so 'grammar'/
// 'options'/'import'/'fragment' are not swallowed by recovery).
func (p *Parser) synchronize() {
	for !p.isSyncPoint() {
		p.advance()
	}
	if p.at(lex.KindSemicolon) {
		p.advance()
	}
}
