package ast

import (
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// GrammarKind is the declared kind of a grammar: 'grammar', 'lexer grammar',
// or 'parser grammar'.
type GrammarKind int

const (
	GrammarKindCombined GrammarKind = iota
	GrammarKindLexer
	GrammarKindParser
)

func (k GrammarKind) String() string {
	switch k {
	case GrammarKindLexer:
		return "Lexer"
	case GrammarKindParser:
		return "Parser"
	default:
		return "Combined"
	}
}

// Grammar is the root AST entity produced by the parser. Options and
// NamedActions are insertion-ordered string-to-string maps: diagnostics
// and generated output must iterate them in the order they were declared
// in source, which a plain Go map cannot guarantee, so both are backed by
// an orderedmap.OrderedMap (the same structure pulled in for the semantic
// analyzer's SymbolTable, see semantic.SymbolTable).
type Grammar struct {
	Name    string
	Kind    GrammarKind
	Rules   []Rule
	Options *orderedmap.OrderedMap[string, string]
	Imports []string

	// NamedActions holds directives such as @header and @members, declared
	// outside of any rule. Keys are unique; AddNamedAction keeps the first
	// value seen for a duplicate key and reports the collision to the
	// caller so it can be turned into a Warning diagnostic.
	NamedActions *orderedmap.OrderedMap[string, string]

	// TokenDecls lists names declared in a 'tokens {... }' block: lexer
	// token names with no associated rule body, reserved for an emitter's
	// vocabulary (e.g. tokens produced only by external code).
	TokenDecls []string

	// Channels lists names declared in a 'channels {... }' block, used to
	// route lexer output to something other than the default token stream.
	Channels []string

	// Modes lists lexer mode names declared by 'mode' IDENT ';' blocks, in
	// declaration order. The implicit default mode is not included here.
	Modes []string
}

// New returns an empty Grammar of the given kind, ready to accept rules.
func New(name string, kind GrammarKind) *Grammar {
	return &Grammar{
		Name:         name,
		Kind:         kind,
		Options:      orderedmap.New[string, string](),
		NamedActions: orderedmap.New[string, string](),
	}
}

// AddRule appends rule to the grammar's rule list, preserving source order.
func (g *Grammar) AddRule(rule Rule) {
	g.Rules = append(g.Rules, rule)
}

// AddOption records an option in declaration order. A later call with the
// same key overwrites the value but keeps the key's original position.
func (g *Grammar) AddOption(key, value string) {
	g.Options.Set(key, value)
}

// AddImport appends an imported grammar name.
func (g *Grammar) AddImport(name string) {
	g.Imports = append(g.Imports, name)
}

// AddTokenDecl records a name from a 'tokens {... }' block.
func (g *Grammar) AddTokenDecl(name string) {
	g.TokenDecls = append(g.TokenDecls, name)
}

// AddChannel records a name from a 'channels {... }' block.
func (g *Grammar) AddChannel(name string) {
	g.Channels = append(g.Channels, name)
}

// AddMode records a lexer mode name from a 'mode' IDENT ';' declaration.
func (g *Grammar) AddMode(name string) {
	g.Modes = append(g.Modes, name)
}

// AddNamedAction records a @name {... } directive. It reports ok=false if
// name was already defined, in which case the original value is kept and
// the caller (the parser) is expected to emit a duplicate-named-action
// Warning diagnostic.
func (g *Grammar) AddNamedAction(name, code string) (ok bool) {
	if _, exists := g.NamedActions.Get(name); exists {
		return false
	}
	g.NamedActions.Set(name, code)
	return true
}

// GetRule returns the first rule with the given name, or nil if none
// matches. Lookups by name (rather than by RuleId) are O(n); callers doing
// repeated lookups should build a semantic.SymbolTable instead.
func (g *Grammar) GetRule(name string) *Rule {
	for i := range g.Rules {
		if g.Rules[i].Name == name {
			return &g.Rules[i]
		}
	}
	return nil
}

// LexerRules returns the subset of Rules that are lexer rules, in source
// order.
func (g *Grammar) LexerRules() []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.Kind == RuleKindLexer {
			out = append(out, r)
		}
	}
	return out
}

// ParserRules returns the subset of Rules that are parser rules, in source
// order.
func (g *Grammar) ParserRules() []Rule {
	var out []Rule
	for _, r := range g.Rules {
		if r.Kind == RuleKindParser {
			out = append(out, r)
		}
	}
	return out
}

// OptionString returns the raw string value of an option and whether it was
// set at all.
func (g *Grammar) OptionString(key string) (string, bool) {
	if g.Options == nil {
		return "", false
	}
	return g.Options.Get(key)
}

// OptionBool coerces an option's string value to a bool using
// github.com/spf13/cast, falling back to def if the option is unset or is
// not a recognized boolean spelling. Grammar options are free-form
// strings; this and OptionInt are opt-in typed views over them, used by
// callers that know a particular option (e.g. a future %options block
// entry) carries typed semantics.
func (g *Grammar) OptionBool(key string, def bool) bool {
	raw, ok := g.OptionString(key)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return def
	}
	return b
}

// OptionInt coerces an option's string value to an int using
// github.com/spf13/cast, falling back to def if the option is unset or
// malformed.
func (g *Grammar) OptionInt(key string, def int) int {
	raw, ok := g.OptionString(key)
	if !ok {
		return def
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return def
	}
	return n
}
