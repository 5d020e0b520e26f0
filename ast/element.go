package ast

// ElementKind discriminates the tagged union of Element variants. New kinds
// are added here and in Walk's type switch, not by introducing a parallel
// class hierarchy.
type ElementKind int

const (
	KindRuleRef ElementKind = iota
	KindTokenRef
	KindStringLiteral
	KindCharRange
	KindCharClass
	KindWildcard
	KindOptional
	KindZeroOrMore
	KindOneOrMore
	KindGroup
	KindNotSet
	KindAction
	KindSemanticPredicate
)

func (k ElementKind) String() string {
	switch k {
	case KindRuleRef:
		return "RuleRef"
	case KindTokenRef:
		return "TokenRef"
	case KindStringLiteral:
		return "StringLiteral"
	case KindCharRange:
		return "CharRange"
	case KindCharClass:
		return "CharClass"
	case KindWildcard:
		return "Wildcard"
	case KindOptional:
		return "Optional"
	case KindZeroOrMore:
		return "ZeroOrMore"
	case KindOneOrMore:
		return "OneOrMore"
	case KindGroup:
		return "Group"
	case KindNotSet:
		return "NotSet"
	case KindAction:
		return "Action"
	case KindSemanticPredicate:
		return "SemanticPredicate"
	default:
		return "Unknown"
	}
}

// Element is a single atomic or composite piece of a production. It is a
// tagged sum over the concrete *Element structs in this file; callers
// dispatch on Kind() or use Walk/Rewrite rather than type-asserting directly.
type Element interface {
	Kind() ElementKind
	Location() Location
}

// RuleRefElement references another rule by name. References are by name,
// never by pointer, so the AST stays a pure tree: resolving a RuleRefElement
// to a RuleId is the job of the SymbolTable, not the AST itself.
type RuleRefElement struct {
	Name string
	Loc  Location
}

func (e *RuleRefElement) Kind() ElementKind { return KindRuleRef }
func (e *RuleRefElement) Location() Location { return e.Loc }

// TokenRefElement references a lexer rule by name.
type TokenRefElement struct {
	Name string
	Loc  Location
}

func (e *TokenRefElement) Kind() ElementKind  { return KindTokenRef }
func (e *TokenRefElement) Location() Location { return e.Loc }

// StringLiteralElement matches its Text exactly.
type StringLiteralElement struct {
	Text string
	Loc  Location
}

func (e *StringLiteralElement) Kind() ElementKind  { return KindStringLiteral }
func (e *StringLiteralElement) Location() Location { return e.Loc }

// CharRangeElement matches an inclusive code-point range. Start must be <=
// End. The parser in this module never builds a CharRangeElement, so
// nothing here checks that.
type CharRangeElement struct {
	Start rune
	End   rune
	Loc   Location
}

func (e *CharRangeElement) Kind() ElementKind  { return KindCharRange }
func (e *CharRangeElement) Location() Location { return e.Loc }

// CharClassItem is one member of a CharClassElement's set: a single
// code point (Lo == Hi) or an inclusive range (Lo < Hi).
type CharClassItem struct {
	Lo rune
	Hi rune
}

// Matches reports whether r falls within this item's range.
func (item CharClassItem) Matches(r rune) bool {
	return r >= item.Lo && r <= item.Hi
}

// CharClassElement is a set built from single characters, ranges, and
// escape forms (including \uXXXX unicode escapes, already decoded into
// Items by the time the parser builds this node), optionally negated.
type CharClassElement struct {
	Items   []CharClassItem
	Negated bool
	Loc     Location
}

func (e *CharClassElement) Kind() ElementKind  { return KindCharClass }
func (e *CharClassElement) Location() Location { return e.Loc }

// Matches reports whether r is in the class, accounting for negation.
func (e *CharClassElement) Matches(r rune) bool {
	in := false
	for _, item := range e.Items {
		if item.Matches(r) {
			in = true
			break
		}
	}
	if e.Negated {
		return !in
	}
	return in
}

// WildcardElement matches any single token or character.
type WildcardElement struct {
	Loc Location
}

func (e *WildcardElement) Kind() ElementKind  { return KindWildcard }
func (e *WildcardElement) Location() Location { return e.Loc }

// OptionalElement matches Inner zero or one times ("?").
type OptionalElement struct {
	Inner Element
	Loc   Location
}

func (e *OptionalElement) Kind() ElementKind  { return KindOptional }
func (e *OptionalElement) Location() Location { return e.Loc }

// ZeroOrMoreElement matches Inner zero or more times ("*").
type ZeroOrMoreElement struct {
	Inner Element
	Loc   Location
}

func (e *ZeroOrMoreElement) Kind() ElementKind  { return KindZeroOrMore }
func (e *ZeroOrMoreElement) Location() Location { return e.Loc }

// OneOrMoreElement matches Inner one or more times ("+").
type OneOrMoreElement struct {
	Inner Element
	Loc   Location
}

func (e *OneOrMoreElement) Kind() ElementKind  { return KindOneOrMore }
func (e *OneOrMoreElement) Location() Location { return e.Loc }

// GroupElement is a parenthesised sub-grammar: one or more Alternatives,
// any one of which may match.
type GroupElement struct {
	Alternatives []Alternative
	Loc          Location
}

func (e *GroupElement) Kind() ElementKind  { return KindGroup }
func (e *GroupElement) Location() Location { return e.Loc }

// NotSetElement negates a set (a CharClassElement, StringLiteralElement, or
// GroupElement of single-token alternatives).
type NotSetElement struct {
	Inner Element
	Loc   Location
}

func (e *NotSetElement) Kind() ElementKind  { return KindNotSet }
func (e *NotSetElement) Location() Location { return e.Loc }

// ActionElement is embedded target-language code, opaque to the core.
type ActionElement struct {
	Code string
	Loc  Location
}

func (e *ActionElement) Kind() ElementKind  { return KindAction }
func (e *ActionElement) Location() Location { return e.Loc }

// SemanticPredicateElement is a boolean guard, opaque to the core.
type SemanticPredicateElement struct {
	Code string
	Loc  Location
}

func (e *SemanticPredicateElement) Kind() ElementKind  { return KindSemanticPredicate }
func (e *SemanticPredicateElement) Location() Location { return e.Loc }

// Alternative is an ordered sequence of Elements forming one production. It
// may carry an optional label (used by emitters for listener/visitor
// naming) and an optional trailing semantic action.
type Alternative struct {
	Elements []Element
	Label    string
	Action   string
	Loc      Location
}

// IsNullable reports whether this Alternative can match the empty string,
// i.e. every one of its Elements is independently nullable. An Alternative
// with zero Elements (an explicit empty production) is nullable.
func (a Alternative) IsNullable() bool {
	for _, e := range a.Elements {
		if !ElementIsNullable(e) {
			return false
		}
	}
	return true
}

// ElementIsNullable reports whether e can match the empty string on its own,
// ignoring surrounding context. A rule reference is never nullable here,
// whatever the referenced rule can match. Used by left-recursion detection
// (semantic.DetectLeftRecursion) to decide whether the scan for leftmost
// names must continue past e.
func ElementIsNullable(e Element) bool {
	switch v := e.(type) {
	case *OptionalElement, *ZeroOrMoreElement:
		return true
	case *ActionElement, *SemanticPredicateElement:
		return true
	case *GroupElement:
		for _, alt := range v.Alternatives {
			if alt.IsNullable() {
				return true
			}
		}
		return false
	case *OneOrMoreElement:
		return ElementIsNullable(v.Inner)
	default:
		return false
	}
}
