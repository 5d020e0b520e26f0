package util

import (
	"sort"
	"strings"
)

// StringSet is a map[string]bool with set-algebra methods added, pared
// down to just the string-keyed case: semantic's reachability and
// left-recursion passes only ever need plain rule-name membership, never
// the dense-integer-id algebra bits-and-blooms/bitset already covers for
// FIRST/FOLLOW's TerminalSet.
type StringSet map[string]bool

// NewStringSet returns a StringSet containing every key of every map in of.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// StringSetOf returns a StringSet containing every element of sl.
func StringSetOf(sl []string) StringSet {
	if sl == nil {
		return nil
	}
	s := StringSet{}
	for _, v := range sl {
		s.Add(v)
	}
	return s
}

func (s StringSet) Has(value string) bool {
	_, has := s[value]
	return has
}

func (s StringSet) Add(value string) {
	s[value] = true
}

func (s StringSet) Remove(value string) {
	delete(s, value)
}

func (s StringSet) Len() int {
	return len(s)
}

func (s StringSet) Empty() bool {
	return s.Len() == 0
}

func (s StringSet) Copy() StringSet {
	newS := NewStringSet()
	for k := range s {
		newS[k] = true
	}
	return newS
}

func (s StringSet) AddAll(s2 StringSet) {
	for k := range s2 {
		s.Add(k)
	}
}

// Union returns a new StringSet containing every element of s and o.
func (s StringSet) Union(o StringSet) StringSet {
	newSet := NewStringSet()
	newSet.AddAll(s)
	newSet.AddAll(o)
	return newSet
}

// Intersection returns a new StringSet containing elements present in both
// s and o.
func (s StringSet) Intersection(o StringSet) StringSet {
	newSet := NewStringSet()
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

// Difference returns a new StringSet containing elements of s not present
// in o.
func (s StringSet) Difference(o StringSet) StringSet {
	newSet := s.Copy()
	for k := range o {
		newSet.Remove(k)
	}
	return newSet
}

func (s StringSet) DisjointWith(o StringSet) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

// Elements returns the members of s in no particular order.
func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}
	sl := make([]string, 0, len(s))
	for item := range s {
		sl = append(sl, item)
	}
	return sl
}

// Equal reports whether s and o contain the same elements.
func (s StringSet) Equal(o StringSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// StringOrdered renders s as "{A, B, C}" with elements sorted
// alphabetically.
func (s StringSet) StringOrdered() string {
	convs := make([]string, 0, len(s))
	for k := range s {
		convs = append(convs, k)
	}
	sort.Strings(convs)

	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(convs, ", "))
	sb.WriteRune('}')
	return sb.String()
}

// String renders s as "{A, B, C}" with no ordering guarantee.
func (s StringSet) String() string {
	return s.StringOrdered()
}
