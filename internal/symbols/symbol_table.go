// Package symbols maps source names to their solver identifier keys.
// Scopes are persistent: defining a name yields a new scope value sharing
// structure with the old one, so nested scopes are cheap and the enclosing
// scope is never mutated from inside a child.
package symbols

import (
	"github.com/benbjohnson/immutable"
)

var emptyMap = immutable.NewSortedMap(nil)

// Scope is one lexical scope chained to its parent. The zero value is not
// usable; start from NewScope.
type Scope struct {
	m      *immutable.SortedMap
	parent *Scope
}

func NewScope() *Scope {
	return &Scope{m: emptyMap}
}

// Child opens a nested scope.
func (s *Scope) Child() *Scope {
	return &Scope{m: emptyMap, parent: s}
}

// Define binds name to a solver identifier key in this scope. It returns
// the extended scope, or false if the name is already bound locally
// (shadowing an outer scope is allowed, redeclaring locally is not).
func (s *Scope) Define(name, key string) (*Scope, bool) {
	if _, ok := s.m.Get(name); ok {
		return s, false
	}
	return &Scope{m: s.m.Set(name, key), parent: s.parent}, true
}

// Resolve looks name up through the scope chain.
func (s *Scope) Resolve(name string) (string, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if key, ok := scope.m.Get(name); ok {
			return key.(string), true
		}
	}
	return "", false
}

// Names returns the locally bound names in sorted order.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.m.Len())
	iter := s.m.Iterator()
	for !iter.Done() {
		k, _ := iter.Next()
		names = append(names, k.(string))
	}
	return names
}
