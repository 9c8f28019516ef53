// Package util holds the small generic container types the automaton,
// grammar, and parse table builders are built on: sets keyed by string with
// or without an attached value, and a stack. None of it is HULK-specific;
// it is the same kind of plumbing a hand-written LALR generator always ends
// up needing for canonicalizing item sets by their string form.
package util

import (
	"sort"
	"strings"
)

// ISet is the common contract every set implementation here satisfies.
type ISet[E any] interface {
	Container[E]

	Add(element E)
	AddAll(s2 ISet[E])
	Remove(element E)
	Has(element E) bool
	Len() int
	Copy() ISet[E]
	Equal(o any) bool
	String() string
	StringOrdered() string
	Union(s2 ISet[E]) ISet[E]
	Intersection(s2 ISet[E]) ISet[E]
	Difference(s2 ISet[E]) ISet[E]
	DisjointWith(s2 ISet[E]) bool
	Empty() bool
	Any(predicate func(v E) bool) bool
}

// Container is anything that can give back all of its elements as a slice.
type Container[E any] interface {
	Elements() []E
}

// VSet is a set that additionally maps each element to a stored value, used
// throughout the grammar and automaton packages to canonicalize item sets
// (the string form of an item is the set key) while keeping the structured
// item available for inspection.
type VSet[E any, V any] interface {
	ISet[E]

	Set(element E, data V)
	Get(element E) V
}

// SVSet is a VSet keyed by string, which is what every LR(0)/LR(1) item set
// and DFA state-set in this module ends up being: the canonical string form
// of an item is unique within a set, and the item struct itself is the
// value.
type SVSet[V any] map[string]V

func NewSVSet[V any](of ...map[string]V) SVSet[V] {
	s := SVSet[V](map[string]V{})
	for _, m := range of {
		for k := range m {
			s.Set(k, m[k])
		}
	}
	return s
}

func (s SVSet[V]) Copy() ISet[string] { return NewSVSet(s) }

func (s SVSet[V]) Add(idx string) {
	var zero V
	s[idx] = zero
}

func (s SVSet[V]) Set(idx string, val V) { s[idx] = val }
func (s SVSet[V]) Get(idx string) V      { return s[idx] }

func (s SVSet[V]) Has(idx string) bool {
	_, ok := s[idx]
	return ok
}

func (s SVSet[V]) Remove(idx string) { delete(s, idx) }
func (s SVSet[V]) Len() int          { return len(s) }

func (s SVSet[V]) Elements() []string {
	elems := make([]string, 0, len(s))
	for k := range s {
		elems = append(elems, k)
	}
	return elems
}

func (s SVSet[V]) AddAll(s2 ISet[string]) {
	if valued, ok := s2.(VSet[string, V]); ok {
		for _, k := range valued.Elements() {
			s.Set(k, valued.Get(k))
		}
		return
	}
	for _, k := range s2.Elements() {
		s.Add(k)
	}
}

func (s SVSet[V]) Union(s2 ISet[string]) ISet[string] {
	newSet := s.Copy()
	newSet.AddAll(s2)
	return newSet
}

func (s SVSet[V]) Intersection(s2 ISet[string]) ISet[string] {
	newSet := NewSVSet[V]()
	for k := range s {
		if s2.Has(k) {
			newSet.Set(k, s.Get(k))
		}
	}
	return newSet
}

func (s SVSet[V]) Difference(o ISet[string]) ISet[string] {
	newSet := NewSVSet(s)
	for _, k := range o.Elements() {
		newSet.Remove(k)
	}
	return newSet
}

func (s SVSet[V]) DisjointWith(o ISet[string]) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

func (s SVSet[V]) Empty() bool { return s.Len() == 0 }

func (s SVSet[V]) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s SVSet[V]) StringOrdered() string { return setString(s.Elements(), true) }
func (s SVSet[V]) String() string        { return setString(s.Elements(), false) }

func (s SVSet[V]) Equal(o any) bool {
	other, ok := asISetString(o)
	if !ok {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// StringSet is a plain set of strings, used for FIRST/FOLLOW sets, input
// alphabets, and accepting-state membership.
type StringSet map[string]bool

func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

func StringSetOf(sl []string) StringSet {
	s := NewStringSet()
	for _, e := range sl {
		s.Add(e)
	}
	return s
}

func (s StringSet) Copy() ISet[string] { return StringSetOf(s.Elements()) }

func (s StringSet) Add(v string)    { s[v] = true }
func (s StringSet) Remove(v string) { delete(s, v) }
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}
func (s StringSet) Len() int { return len(s) }

func (s StringSet) Elements() []string {
	if s == nil {
		return nil
	}
	sl := make([]string, 0, len(s))
	for k := range s {
		sl = append(sl, k)
	}
	return sl
}

func (s StringSet) AddAll(s2 ISet[string]) {
	for _, e := range s2.Elements() {
		s.Add(e)
	}
}

func (s StringSet) Union(o ISet[string]) ISet[string] {
	newSet := NewStringSet()
	newSet.AddAll(s)
	newSet.AddAll(o)
	return newSet
}

func (s StringSet) Intersection(o ISet[string]) ISet[string] {
	newSet := NewStringSet()
	for k := range s {
		if o.Has(k) {
			newSet.Add(k)
		}
	}
	return newSet
}

func (s StringSet) Difference(o ISet[string]) ISet[string] {
	newSet := NewStringSet()
	newSet.AddAll(s)
	for _, k := range o.Elements() {
		newSet.Remove(k)
	}
	return newSet
}

func (s StringSet) DisjointWith(o ISet[string]) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

func (s StringSet) Empty() bool { return s.Len() == 0 }

func (s StringSet) Any(predicate func(v string) bool) bool {
	for k := range s {
		if predicate(k) {
			return true
		}
	}
	return false
}

func (s StringSet) StringOrdered() string { return setString(s.Elements(), true) }
func (s StringSet) String() string        { return setString(s.Elements(), false) }

func (s StringSet) Equal(o any) bool {
	other, ok := asISetString(o)
	if !ok {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

func asISetString(o any) (ISet[string], bool) {
	if s, ok := o.(ISet[string]); ok {
		return s, true
	}
	if p, ok := o.(*ISet[string]); ok && p != nil {
		return *p, true
	}
	return nil, false
}

func setString(elems []string, ordered bool) string {
	if ordered {
		sort.Strings(elems)
	}
	var sb strings.Builder
	sb.WriteRune('{')
	for i, e := range elems {
		sb.WriteString(e)
		if i+1 < len(elems) {
			sb.WriteString(", ")
		}
	}
	sb.WriteRune('}')
	return sb.String()
}

// OrderedKeys returns the keys of m sorted ascending, for making a map's
// iteration order deterministic. No code in this module calls it.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ArticleFor returns "a" or "an" for the given word depending on whether it
// starts with a vowel sound (approximated by first letter). No code in this
// module calls it; the parser's expected-token messages use MakeTextList
// only.
func ArticleFor(word string, capitalize bool) string {
	article := "a"
	if len(word) > 0 {
		switch word[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			article = "an"
		}
	}
	if capitalize {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// MakeTextList renders items as an English list with an Oxford comma:
// "a", "a and b", "a, b, and c".
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		cp := make([]string, len(items))
		copy(cp, items)
		cp[len(cp)-1] = "and " + cp[len(cp)-1]
		return strings.Join(cp, ", ")
	}
}
