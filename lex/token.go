package lex

import (
	"fmt"

	"github.com/dekarrin/minipg/ast"
)

// Kind identifies the lexical category of a Token: the core token kinds
// plus the handful of keyword/punctuation kinds the surface grammar needs
// that aren't their own kind (tokens/returns/locals keywords, '#' for alt
// labels).
type Kind int

const (
	KindGrammar Kind = iota
	KindOptions
	KindImport
	KindFragment
	KindLexer
	KindParser
	KindChannels
	KindMode
	KindTokens
	KindReturns
	KindLocals
	KindIdentifier
	KindStringLiteral
	KindCharSet
	KindAction
	KindColon
	KindSemicolon
	KindPipe
	KindQuestion
	KindStar
	KindPlus
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindLBracket
	KindRBracket
	KindTilde
	KindDot
	KindArrow
	KindAt
	KindHash
	KindAssign
	KindComma
	KindRange
	KindComment
	KindError
	KindEof
)

var kindNames = map[Kind]string{
	KindGrammar:       "Grammar",
	KindOptions:       "Options",
	KindImport:        "Import",
	KindFragment:      "Fragment",
	KindLexer:         "Lexer",
	KindParser:        "Parser",
	KindChannels:      "Channels",
	KindMode:          "Mode",
	KindTokens:        "Tokens",
	KindReturns:       "Returns",
	KindLocals:        "Locals",
	KindIdentifier:    "Identifier",
	KindStringLiteral: "StringLiteral",
	KindCharSet:       "CharSet",
	KindAction:        "Action",
	KindColon:         "Colon",
	KindSemicolon:     "Semicolon",
	KindPipe:          "Pipe",
	KindQuestion:      "Question",
	KindStar:          "Star",
	KindPlus:          "Plus",
	KindLParen:        "LParen",
	KindRParen:        "RParen",
	KindLBrace:        "LBrace",
	KindRBrace:        "RBrace",
	KindLBracket:      "LBracket",
	KindRBracket:      "RBracket",
	KindTilde:         "Tilde",
	KindDot:           "Dot",
	KindArrow:         "Arrow",
	KindAt:            "At",
	KindHash:          "Hash",
	KindAssign:        "Assign",
	KindComma:         "Comma",
	KindRange:         "Range",
	KindComment:       "Comment",
	KindError:         "Error",
	KindEof:           "Eof",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps the lowercase spelling of each reserved word to
// its Kind. The lexer applies this table, case-insensitively, to every full
// identifier it scans, whatever its position: an identifier spelled like a
// keyword always becomes that keyword's token, so it cannot be used as a
// rule name or a rule reference.
var keywords = map[string]Kind{
	"grammar":  KindGrammar,
	"lexer":    KindLexer,
	"parser":   KindParser,
	"fragment": KindFragment,
	"options":  KindOptions,
	"import":   KindImport,
	"tokens":   KindTokens,
	"channels": KindChannels,
	"mode":     KindMode,
	"returns":  KindReturns,
	"locals":   KindLocals,
}

// Token is one lexeme read from source, with the span of its first
// code point.
type Token struct {
	Kind   Kind
	Lexeme string
	Loc    ast.Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Loc)
}
