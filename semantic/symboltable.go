// Package semantic implements the composition of sub-analyses that walk a
// parsed Grammar and produce a SymbolTable plus a diagnostic list: symbol
// collection, reference resolution, reachability, left-recursion,
// first/follow, and the ambiguity heuristic, run in that fixed order
// (later passes assume earlier ones have already completed).
package semantic

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RuleId is a dense, 0-based identifier assigned in source order to every
// distinct rule name; a duplicate definition gets no id of its own, so a
// rule's id equals its position in Grammar.Rules only when no duplicate
// precedes it.
type RuleId int

// TokenId is a dense, 0-based identifier assigned to every lexer rule, in
// a space separate from RuleId.
type TokenId int

// SymbolTable holds the two disjoint id spaces a Grammar resolves against:
// every rule gets a RuleId, and lexer rules additionally get a TokenId
// (shared lookup, per the open question resolved in favor of lexer rule
// names occupying both namespaces — see DESIGN.md). Both are backed by an
// insertion-ordered map so iteration matches source order, which spec
// §4.4's "Determinism" clause requires.
type SymbolTable struct {
	rules  *orderedmap.OrderedMap[string, RuleId]
	tokens *orderedmap.OrderedMap[string, TokenId]
}

// NewSymbolTable returns an empty table ready to accept rules.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		rules:  orderedmap.New[string, RuleId](),
		tokens: orderedmap.New[string, TokenId](),
	}
}

func (st *SymbolTable) addRule(name string) RuleId {
	id := RuleId(st.rules.Len())
	st.rules.Set(name, id)
	return id
}

func (st *SymbolTable) addToken(name string) TokenId {
	id := TokenId(st.tokens.Len())
	st.tokens.Set(name, id)
	return id
}

// HasRule reports whether name has a RuleId assigned.
func (st *SymbolTable) HasRule(name string) bool {
	_, ok := st.rules.Get(name)
	return ok
}

// RuleID returns the RuleId assigned to name, if any.
func (st *SymbolTable) RuleID(name string) (RuleId, bool) {
	return st.rules.Get(name)
}

// HasToken reports whether name has a TokenId assigned.
func (st *SymbolTable) HasToken(name string) bool {
	_, ok := st.tokens.Get(name)
	return ok
}

// TokenID returns the TokenId assigned to name, if any.
func (st *SymbolTable) TokenID(name string) (TokenId, bool) {
	return st.tokens.Get(name)
}

// RuleCount returns the number of rules with an assigned RuleId.
func (st *SymbolTable) RuleCount() int {
	return st.rules.Len()
}

// TokenCount returns the number of lexer rules with an assigned TokenId.
func (st *SymbolTable) TokenCount() int {
	return st.tokens.Len()
}

// RuleNames returns every registered rule name in assignment (insertion)
// order.
func (st *SymbolTable) RuleNames() []string {
	names := make([]string, 0, st.rules.Len())
	for pair := st.rules.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// TokenNames returns every registered token name in assignment (insertion)
// order.
func (st *SymbolTable) TokenNames() []string {
	names := make([]string, 0, st.tokens.Len())
	for pair := st.tokens.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}
