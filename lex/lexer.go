package lex

import (
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/minipg/ast"
	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"
)

// reUnicodeEscape validates the \uXXXX form (exactly four hex digits)
// before DecodeEscapes attempts to interpret it, mirroring
// other_examples/87129aaf_alecthomas-participle__antlr-lexer.go.go's
// reUnicodeEscape = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`) check used
// when that visitor walks an ANTLR AST's string/char-class literals. This
// module uses dlclark/regexp2 rather than stdlib regexp for the named
// capture group, which DecodeEscapes reads by name for clarity.
var reUnicodeEscape = regexp2.MustCompile(`\\u(?<hex>[0-9a-fA-F]{4})`, regexp2.None)

// Lexer produces a total token stream from grammar source text: next_token
// never panics, and once it reaches end of input every subsequent call
// returns an Eof token.
type Lexer struct {
	filename string
	src      []rune
	pos      int
	line     int
	col      int

	eofEmitted bool
}

// NewLexer prepares source for lexing. The input is first run through
// Unicode NFC normalization (golang.org/x/text/unicode/norm) so a
// combining-mark sequence collapses to one grapheme before the lexer
// starts counting columns by code point — otherwise a decomposed accented
// letter in, say, a string literal would silently throw off every later
// column in the token stream.
func NewLexer(source, filename string) *Lexer {
	normalized := norm.NFC.String(source)
	return &Lexer{
		filename: filename,
		src:      []rune(normalized),
		pos:      0,
		line:     1,
		col:      1,
	}
}

func (lx *Lexer) loc() ast.Location {
	return ast.Location{File: lx.filename, Line: lx.line, Column: lx.col}
}

func (lx *Lexer) atEnd() bool {
	return lx.pos >= len(lx.src)
}

func (lx *Lexer) peek() rune {
	if lx.atEnd() {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *Lexer) peekAt(offset int) rune {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+offset]
}

func (lx *Lexer) advance() rune {
	r := lx.src[lx.pos]
	lx.pos++
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

// NextToken returns the next Token in the stream. It is total: malformed
// input yields a KindError token carrying the offending span rather than
// aborting, and once input is exhausted every call returns the same Eof
// token forever.
func (lx *Lexer) NextToken() Token {
	if lx.eofEmitted {
		return Token{Kind: KindEof, Loc: lx.loc()}
	}

	lx.skipWhitespaceAndComments()

	if lx.atEnd() {
		lx.eofEmitted = true
		return Token{Kind: KindEof, Loc: lx.loc()}
	}

	start := lx.loc()
	r := lx.peek()

	switch {
	case isIdentStart(r):
		return lx.scanIdentifier(start)
	case r == '\'':
		return lx.scanStringLiteral(start)
	case r == '[':
		return lx.scanCharSet(start)
	case r == '{':
		return lx.scanAction(start)
	default:
		return lx.scanPunctuation(start)
	}
}

// HasNext reports whether the Eof token has not yet been returned. It stays
// true up to and including the call that returns Eof for the first time, so
// a loop on HasNext collects the Eof token as its last element.
func (lx *Lexer) HasNext() bool {
	return !lx.eofEmitted
}

func (lx *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case lx.atEnd():
			return
		case isSpace(lx.peek()):
			lx.advance()
		case lx.peek() == '/' && lx.peekAt(1) == '/':
			for !lx.atEnd() && lx.peek() != '\n' {
				lx.advance()
			}
		case lx.peek() == '/' && lx.peekAt(1) == '*':
			lx.advance()
			lx.advance()
			for !lx.atEnd() && !(lx.peek() == '*' && lx.peekAt(1) == '/') {
				lx.advance()
			}
			if !lx.atEnd() {
				lx.advance()
				lx.advance()
			}
		default:
			return
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (lx *Lexer) scanIdentifier(start ast.Location) Token {
	var sb strings.Builder
	for !lx.atEnd() && isIdentPart(lx.peek()) {
		sb.WriteRune(lx.advance())
	}
	name := sb.String()
	if kind, ok := keywords[strings.ToLower(name)]; ok {
		return Token{Kind: kind, Lexeme: name, Loc: start}
	}
	return Token{Kind: KindIdentifier, Lexeme: name, Loc: start}
}

// scanStringLiteral reads a single-quoted literal. Backslash escapes
// \n \r \t \\ \' \" and \uXXXX are recognized; the token's Lexeme is the
// decoded content, with no surrounding quotes.
func (lx *Lexer) scanStringLiteral(start ast.Location) Token {
	lx.advance() // opening '
	var raw strings.Builder
	closed := false
	for !lx.atEnd() {
		r := lx.peek()
		if r == '\'' {
			lx.advance()
			closed = true
			break
		}
		if r == '\\' {
			raw.WriteRune(lx.advance())
			if !lx.atEnd() {
				raw.WriteRune(lx.advance())
			}
			continue
		}
		if r == '\n' {
			break
		}
		raw.WriteRune(lx.advance())
	}
	if !closed {
		return Token{Kind: KindError, Lexeme: raw.String(), Loc: start}
	}
	decoded, err := DecodeEscapes(raw.String())
	if err != nil {
		return Token{Kind: KindError, Lexeme: raw.String(), Loc: start}
	}
	return Token{Kind: KindStringLiteral, Lexeme: decoded, Loc: start}
}

// scanCharSet reads a bracketed character class, balanced once. Escapes and
// \uXXXX sequences inside are preserved verbatim in the token's Lexeme
// (unlike string literals) so the parser can re-interpret ranges and
// negation on its own; a leading '~' is tokenised separately as KindTilde
// by scanPunctuation before this is ever called.
func (lx *Lexer) scanCharSet(start ast.Location) Token {
	lx.advance() // opening [
	var raw strings.Builder
	closed := false
	for !lx.atEnd() {
		r := lx.peek()
		if r == ']' {
			lx.advance()
			closed = true
			break
		}
		if r == '\\' {
			raw.WriteRune(lx.advance())
			if !lx.atEnd() {
				raw.WriteRune(lx.advance())
			}
			continue
		}
		raw.WriteRune(lx.advance())
	}
	if !closed {
		return Token{Kind: KindError, Lexeme: raw.String(), Loc: start}
	}
	return Token{Kind: KindCharSet, Lexeme: raw.String(), Loc: start}
}

// scanAction reads a brace-delimited action block, tracking nested braces,
// and returns the contents verbatim without the outer braces.
func (lx *Lexer) scanAction(start ast.Location) Token {
	lx.advance() // opening {
	depth := 1
	var raw strings.Builder
	for !lx.atEnd() && depth > 0 {
		r := lx.peek()
		switch r {
		case '{':
			depth++
			raw.WriteRune(lx.advance())
		case '}':
			depth--
			if depth == 0 {
				lx.advance()
				continue
			}
			raw.WriteRune(lx.advance())
		default:
			raw.WriteRune(lx.advance())
		}
	}
	if depth != 0 {
		return Token{Kind: KindError, Lexeme: raw.String(), Loc: start}
	}
	return Token{Kind: KindAction, Lexeme: raw.String(), Loc: start}
}

func (lx *Lexer) scanPunctuation(start ast.Location) Token {
	r := lx.advance()
	switch r {
	case ':':
		return Token{Kind: KindColon, Lexeme: ":", Loc: start}
	case ';':
		return Token{Kind: KindSemicolon, Lexeme: ";", Loc: start}
	case '|':
		return Token{Kind: KindPipe, Lexeme: "|", Loc: start}
	case '?':
		return Token{Kind: KindQuestion, Lexeme: "?", Loc: start}
	case '*':
		return Token{Kind: KindStar, Lexeme: "*", Loc: start}
	case '+':
		return Token{Kind: KindPlus, Lexeme: "+", Loc: start}
	case '(':
		return Token{Kind: KindLParen, Lexeme: "(", Loc: start}
	case ')':
		return Token{Kind: KindRParen, Lexeme: ")", Loc: start}
	case '}':
		return Token{Kind: KindRBrace, Lexeme: "}", Loc: start}
	case ']':
		return Token{Kind: KindRBracket, Lexeme: "]", Loc: start}
	case '~':
		return Token{Kind: KindTilde, Lexeme: "~", Loc: start}
	case '.':
		if lx.peek() == '.' {
			lx.advance()
			return Token{Kind: KindRange, Lexeme: "..", Loc: start}
		}
		return Token{Kind: KindDot, Lexeme: ".", Loc: start}
	case '@':
		return Token{Kind: KindAt, Lexeme: "@", Loc: start}
	case '#':
		return Token{Kind: KindHash, Lexeme: "#", Loc: start}
	case ',':
		return Token{Kind: KindComma, Lexeme: ",", Loc: start}
	case '-':
		if lx.peek() == '>' {
			lx.advance()
			return Token{Kind: KindArrow, Lexeme: "->", Loc: start}
		}
		return Token{Kind: KindError, Lexeme: "-", Loc: start}
	case '=':
		return Token{Kind: KindAssign, Lexeme: "=", Loc: start}
	default:
		return Token{Kind: KindError, Lexeme: string(r), Loc: start}
	}
}

// DecodeEscapes interprets backslash escapes in a single-quoted string
// literal body: \n \r \t \\ \' \" and \uXXXX unicode escapes. It returns an
// error if a \uXXXX escape is malformed (not exactly four hex digits) or
// a trailing backslash has nothing to escape.
func DecodeEscapes(body string) (string, error) {
	var sb strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); {
		if runes[i] != '\\' {
			sb.WriteRune(runes[i])
			i++
			continue
		}
		r, consumed, err := DecodeOneEscape(runes, i)
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
		i += consumed
	}
	return sb.String(), nil
}

// DecodeOneEscape decodes a single backslash escape starting at runes[i]
// (which must be '\\'), returning the decoded rune and the number of input
// runes it consumed (including the backslash). Shared by DecodeEscapes and
// the parser's character-class item decoding, since both need to decode
// one escape at a time while tracking surrounding structure (string bodies
// decode the whole run; character classes additionally watch for an
// unescaped '-' marking a range).
func DecodeOneEscape(runes []rune, i int) (decoded rune, consumed int, err error) {
	if i >= len(runes) || runes[i] != '\\' {
		return 0, 0, errNotAnEscape
	}
	if i+1 >= len(runes) {
		return 0, 0, errTrailingBackslash
	}
	next := runes[i+1]
	switch next {
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case '\\':
		return '\\', 2, nil
	case '\'':
		return '\'', 2, nil
	case '"':
		return '"', 2, nil
	case 'u':
		rest := string(runes[i:])
		m, matchErr := reUnicodeEscape.FindStringMatch(rest)
		if matchErr != nil || m == nil || m.Index != 0 {
			return 0, 0, errBadUnicodeEscape
		}
		hexGroup := m.GroupByName("hex")
		if hexGroup == nil {
			return 0, 0, errBadUnicodeEscape
		}
		cp, decErr := decodeHex4(hexGroup.String())
		if decErr != nil {
			return 0, 0, decErr
		}
		return cp, m.Length, nil
	default:
		return next, 2, nil
	}
}

func decodeHex4(hex string) (rune, error) {
	if len(hex) != 4 {
		return 0, errBadUnicodeEscape
	}
	var v rune
	for _, c := range hex {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v += c - '0'
		case c >= 'a' && c <= 'f':
			v += c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v += c - 'A' + 10
		default:
			return 0, errBadUnicodeEscape
		}
	}
	if !utf8.ValidRune(v) {
		return 0, errBadUnicodeEscape
	}
	return v, nil
}
