package semantic

import (
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/dekarrin/minipg/ast"
)

// terminalUniverse assigns a dense bit index to every terminal symbol a
// FIRST or FOLLOW set can mention. This is every declared token name
// (from the SymbolTable), plus a synthesized identity for every string
// literal, char range, char class, and wildcard that appears directly in
// a rule body (so an implicit/anonymous ANTLR token like 'if' still has a
// stable identity of its own), plus the built-in EOF terminal appended
// last.
type terminalUniverse struct {
	nameToID map[string]uint
	idToName []string
}

func newTerminalUniverse(st *SymbolTable, g *ast.Grammar) *terminalUniverse {
	u := &terminalUniverse{nameToID: make(map[string]uint)}
	add := func(name string) {
		if _, ok := u.nameToID[name]; ok {
			return
		}
		u.nameToID[name] = uint(len(u.idToName))
		u.idToName = append(u.idToName, name)
	}

	for _, name := range st.TokenNames() {
		add(name)
	}
	ast.Walk(&terminalCollector{add: add}, g)
	add(builtinEOF)

	return u
}

type terminalCollector struct {
	ast.BaseVisitor
	add func(string)
}

func (c *terminalCollector) VisitElement(e ast.Element) bool {
	if name, ok := terminalSignature(e); ok {
		c.add(name)
	}
	return true
}

// terminalSignature returns the stable terminal identity of an
// atomic-match element, or ok=false for anything that isn't one (RuleRef,
// quantifiers, groups, actions — those are composite or resolved via
// recursion, never terminal atoms themselves).
func terminalSignature(e ast.Element) (string, bool) {
	switch el := e.(type) {
	case *ast.TokenRefElement:
		return el.Name, true
	case *ast.StringLiteralElement:
		return "'" + el.Text + "'", true
	case *ast.CharRangeElement:
		return string(el.Start) + ".." + string(el.End), true
	case *ast.CharClassElement:
		var sb strings.Builder
		if el.Negated {
			sb.WriteByte('~')
		}
		sb.WriteByte('[')
		for _, item := range el.Items {
			sb.WriteRune(item.Lo)
			if item.Hi != item.Lo {
				sb.WriteByte('-')
				sb.WriteRune(item.Hi)
			}
		}
		sb.WriteByte(']')
		return sb.String(), true
	case *ast.WildcardElement:
		return ".", true
	default:
		return "", false
	}
}

func (u *terminalUniverse) size() uint { return uint(len(u.idToName)) }

func (u *terminalUniverse) id(name string) (uint, bool) {
	id, ok := u.nameToID[name]
	return id, ok
}

// TerminalSet is a set of terminal symbol names, backed by a bitset over a
// shared terminalUniverse so the O(R²) unions the fixed-point computation
// does and the ambiguity heuristic's pairwise intersections
// (§4.4.6) stay cheap regardless of grammar size.
type TerminalSet struct {
	bits *bitset.BitSet
	u    *terminalUniverse
}

func newTerminalSet(u *terminalUniverse) *TerminalSet {
	return &TerminalSet{bits: bitset.New(u.size()), u: u}
}

func (s *TerminalSet) add(name string) bool {
	id, ok := s.u.id(name)
	if !ok {
		return false
	}
	changed := !s.bits.Test(id)
	s.bits.Set(id)
	return changed
}

// addAll unions o into s in place, reporting whether s grew.
func (s *TerminalSet) addAll(o *TerminalSet) bool {
	before := s.bits.Clone()
	s.bits.InPlaceUnion(o.bits)
	return !before.Equal(s.bits)
}

// IntersectsWith reports whether s and o share any member.
func (s *TerminalSet) IntersectsWith(o *TerminalSet) bool {
	return s.bits.IntersectionCardinality(o.bits) > 0
}

// Has reports whether name is a member of s.
func (s *TerminalSet) Has(name string) bool {
	id, ok := s.u.id(name)
	if !ok {
		return false
	}
	return s.bits.Test(id)
}

// Names returns every member of s, sorted for stable display.
func (s *TerminalSet) Names() []string {
	var names []string
	for i, name := range s.u.idToName {
		if s.bits.Test(uint(i)) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FirstFollowSets holds the fixed point of the FIRST and FOLLOW
// computations, keyed by rule name, plus each rule's
// nullability.
type FirstFollowSets struct {
	First    map[string]*TerminalSet
	Follow   map[string]*TerminalSet
	Nullable map[string]bool
	u        *terminalUniverse
}

// FirstOf returns the FIRST set of name, sorted, or nil if name is not a
// known rule.
func (ff *FirstFollowSets) FirstOf(name string) []string {
	if s, ok := ff.First[name]; ok {
		return s.Names()
	}
	return nil
}

// FollowOf returns the FOLLOW set of name, sorted, or nil if name is not a
// known rule.
func (ff *FirstFollowSets) FollowOf(name string) []string {
	if s, ok := ff.Follow[name]; ok {
		return s.Names()
	}
	return nil
}

// IsNullable reports whether name can match the empty string.
func (ff *FirstFollowSets) IsNullable(name string) bool {
	return ff.Nullable[name]
}

// ComputeFirstFollow is the fifth sub-analysis: a standard
// fixed-point computation over the grammar's parser rules. Lexer rules are
// treated as atomic terminals from the parser's point of view (FIRST of a
// lexer rule is just itself) — the core does not attempt to expand a
// lexer rule into the character-level set it actually matches; full
// ANTLR4 semantic fidelity at the character level is out of scope.
func ComputeFirstFollow(g *ast.Grammar, st *SymbolTable) *FirstFollowSets {
	u := newTerminalUniverse(st, g)
	ff := &FirstFollowSets{
		First:    make(map[string]*TerminalSet),
		Follow:   make(map[string]*TerminalSet),
		Nullable: make(map[string]bool),
		u:        u,
	}

	lexerRules := g.LexerRules()
	parserRules := g.ParserRules()

	for _, r := range lexerRules {
		s := newTerminalSet(u)
		s.add(r.Name)
		ff.First[r.Name] = s
		ff.Follow[r.Name] = newTerminalSet(u)
	}
	for _, r := range parserRules {
		ff.First[r.Name] = newTerminalSet(u)
		ff.Follow[r.Name] = newTerminalSet(u)
	}

	if start := startRuleName(g); start != "" {
		if s, ok := ff.Follow[start]; ok {
			s.add(builtinEOF)
		}
	}

	for {
		changed := false

		for _, r := range parserRules {
			for _, alt := range r.Alternatives {
				altFirst, altNullable := ff.firstOfElements(alt.Elements)
				if ff.First[r.Name].addAll(altFirst) {
					changed = true
				}
				if altNullable && !ff.Nullable[r.Name] {
					ff.Nullable[r.Name] = true
					changed = true
				}
			}
		}

		for _, r := range parserRules {
			for _, alt := range r.Alternatives {
				if ff.processSequence(alt.Elements, newTerminalSet(u), true, ff.Follow[r.Name]) {
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}

	return ff
}

// firstOfElements computes FIRST(elements[0] elements[1]...) per spec
// §4.4.5's concatenation rule, continuing past a nullable element.
func (ff *FirstFollowSets) firstOfElements(elements []ast.Element) (*TerminalSet, bool) {
	set := newTerminalSet(ff.u)
	nullable := true
	for _, e := range elements {
		eSet, eNullable := ff.firstOfElement(e)
		set.addAll(eSet)
		if !eNullable {
			nullable = false
			break
		}
	}
	return set, nullable
}

func (ff *FirstFollowSets) firstOfElement(e ast.Element) (*TerminalSet, bool) {
	switch el := e.(type) {
	case *ast.RuleRefElement:
		s, ok := ff.First[el.Name]
		if !ok {
			return newTerminalSet(ff.u), true
		}
		return s, ff.Nullable[el.Name]
	case *ast.TokenRefElement:
		s := newTerminalSet(ff.u)
		s.add(el.Name)
		return s, false
	case *ast.OptionalElement:
		inner, _ := ff.firstOfElement(el.Inner)
		return inner, true
	case *ast.ZeroOrMoreElement:
		inner, _ := ff.firstOfElement(el.Inner)
		return inner, true
	case *ast.OneOrMoreElement:
		return ff.firstOfElement(el.Inner)
	case *ast.NotSetElement:
		return ff.firstOfElement(el.Inner)
	case *ast.GroupElement:
		set := newTerminalSet(ff.u)
		nullable := false
		for _, alt := range el.Alternatives {
			altSet, altNullable := ff.firstOfElements(alt.Elements)
			set.addAll(altSet)
			if altNullable {
				nullable = true
			}
		}
		return set, nullable
	case *ast.ActionElement, *ast.SemanticPredicateElement:
		return newTerminalSet(ff.u), true
	default: // StringLiteral, CharRange, CharClass, Wildcard
		s := newTerminalSet(ff.u)
		if name, ok := terminalSignature(e); ok {
			s.add(name)
		}
		return s, false
	}
}

// processSequence updates FOLLOW for every RuleRef found anywhere in
// elements (including nested inside groups and quantifiers), given the
// FIRST/nullability of whatever follows this sequence in its enclosing
// context (contFirst, contNullable) and the FOLLOW set to fall back on
// when the remainder turns out nullable (enclosingFollow — i.e. the
// producing rule's own FOLLOW set). Returns whether any FOLLOW set grew.
func (ff *FirstFollowSets) processSequence(elements []ast.Element, contFirst *TerminalSet, contNullable bool, enclosingFollow *TerminalSet) bool {
	n := len(elements)
	sufFirst := make([]*TerminalSet, n+1)
	sufNullable := make([]bool, n+1)
	sufFirst[n] = contFirst
	sufNullable[n] = contNullable
	for i := n - 1; i >= 0; i-- {
		eFirst, eNullable := ff.firstOfElement(elements[i])
		s := newTerminalSet(ff.u)
		s.addAll(eFirst)
		if eNullable {
			s.addAll(sufFirst[i+1])
		}
		sufFirst[i] = s
		sufNullable[i] = eNullable && sufNullable[i+1]
	}

	changed := false
	for i, e := range elements {
		if ff.processElement(e, sufFirst[i+1], sufNullable[i+1], enclosingFollow) {
			changed = true
		}
	}
	return changed
}

func (ff *FirstFollowSets) processElement(e ast.Element, contFirst *TerminalSet, contNullable bool, enclosingFollow *TerminalSet) bool {
	changed := false
	switch el := e.(type) {
	case *ast.RuleRefElement:
		follow, ok := ff.Follow[el.Name]
		if !ok {
			break
		}
		if follow.addAll(contFirst) {
			changed = true
		}
		if contNullable && follow.addAll(enclosingFollow) {
			changed = true
		}
	case *ast.OptionalElement:
		if ff.processSequence([]ast.Element{el.Inner}, contFirst, contNullable, enclosingFollow) {
			changed = true
		}
	case *ast.ZeroOrMoreElement:
		changed = ff.processLoop(el.Inner, contFirst, contNullable, enclosingFollow) || changed
	case *ast.OneOrMoreElement:
		changed = ff.processLoop(el.Inner, contFirst, contNullable, enclosingFollow) || changed
	case *ast.NotSetElement:
		changed = ff.processElement(el.Inner, contFirst, contNullable, enclosingFollow) || changed
	case *ast.GroupElement:
		for _, alt := range el.Alternatives {
			if ff.processSequence(alt.Elements, contFirst, contNullable, enclosingFollow) {
				changed = true
			}
		}
	}
	return changed
}

// processLoop handles ZeroOrMore/OneOrMore: whatever follows one iteration
// of Inner is either the sequence's own continuation, or another
// iteration of Inner itself, so Inner's own FIRST set is folded into the
// continuation before recursing.
func (ff *FirstFollowSets) processLoop(inner ast.Element, contFirst *TerminalSet, contNullable bool, enclosingFollow *TerminalSet) bool {
	innerFirst, _ := ff.firstOfElement(inner)
	loopFirst := newTerminalSet(ff.u)
	loopFirst.addAll(contFirst)
	loopFirst.addAll(innerFirst)
	return ff.processSequence([]ast.Element{inner}, loopFirst, contNullable, enclosingFollow)
}
