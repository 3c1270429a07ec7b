// Package solver implements the union-find forest at the heart of type
// inference. Every program variable and every value-producing AST node owns
// a string identifier; asserting two identifiers have the same type merges
// their equivalence classes, and each class carries at most one concrete
// type term.
package solver

import (
	"strconv"

	"github.com/tiplang/tipc/internal/typesystem"
)

// UnionFindSolver tracks which identifiers have been asserted equal and the
// one concrete term, if any, agreed upon per equivalence class. It is
// exclusively owned by one type-check pass over one compilation unit; no
// concurrent access is supported.
type UnionFindSolver struct {
	parent map[string]string
	terms  map[string]typesystem.Term

	// interning order of identifiers, for stable free-variable display
	// numbers across repeated compilations of the same source
	index map[string]int
	order []string

	fresh int
}

func New() *UnionFindSolver {
	return &UnionFindSolver{
		parent: make(map[string]string),
		terms:  make(map[string]typesystem.Term),
		index:  make(map[string]int),
	}
}

// AddNode ensures id has a forest entry. Idempotent.
func (s *UnionFindSolver) AddNode(id string) {
	if _, ok := s.parent[id]; ok {
		return
	}
	s.parent[id] = id
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
}

// FindRoot resolves id to its class representative by following parent
// links until a self-parenting identifier is reached. Unseen identifiers
// are registered first.
func (s *UnionFindSolver) FindRoot(id string) string {
	s.AddNode(id)
	for s.parent[id] != id {
		id = s.parent[id]
	}
	return id
}

// Fresh mints a synthetic identifier for an inference-introduced type
// variable, registered but unconstrained.
func (s *UnionFindSolver) Fresh() string {
	id := "$t" + strconv.Itoa(s.fresh)
	s.fresh++
	s.AddNode(id)
	return id
}

// Unify asserts that a and b have the same type. Already-unified
// identifiers are a no-op. When exactly one class carries a term, the other
// class is linked under it and resolves to that term from then on. When
// both carry terms, the terms must be compatible; the classes are then
// merged around the reconciled term. Incompatible terms fail with a
// *typesystem.TypeError and the link is not applied.
func (s *UnionFindSolver) Unify(a, b string) error {
	ra := s.FindRoot(a)
	rb := s.FindRoot(b)
	if ra == rb {
		return nil
	}

	ta, oka := s.terms[ra]
	tb, okb := s.terms[rb]
	switch {
	case !oka && !okb:
		s.parent[ra] = rb
	case !oka:
		s.parent[ra] = rb
	case !okb:
		s.parent[rb] = ra
	default:
		if !typesystem.Compatible(ta, tb, s) {
			return &typesystem.TypeError{
				Node:  a,
				Left:  typesystem.Print(ta, s),
				Right: typesystem.Print(tb, s),
			}
		}
		merged, err := s.merge(ta, tb, nil)
		if err != nil {
			return err
		}
		delete(s.terms, ra)
		s.parent[ra] = rb
		s.terms[rb] = merged
	}
	return nil
}

// SetType attaches term as the concrete type of id's class. If the class
// already carries a term, the two must be compatible; a compatible re-set
// reconciles the terms (binding any free components) and is otherwise a
// no-op. Attaching a bare variable delegates to Unify, so classes never
// carry an unresolved Var as their payload.
func (s *UnionFindSolver) SetType(id string, term typesystem.Term) error {
	if v, ok := term.(typesystem.Var); ok {
		return s.Unify(id, v.ID)
	}

	root := s.FindRoot(id)
	old, ok := s.terms[root]
	if !ok {
		s.terms[root] = term
		return nil
	}
	if !typesystem.Compatible(old, term, s) {
		return &typesystem.TypeError{
			Node:  id,
			Left:  typesystem.Print(old, s),
			Right: typesystem.Print(term, s),
		}
	}
	merged, err := s.merge(old, term, nil)
	if err != nil {
		return err
	}
	s.terms[root] = merged
	return nil
}

// GetType returns the term attached to id's class. The second return is
// false while the class is still unconstrained.
func (s *UnionFindSolver) GetType(id string) (typesystem.Term, bool) {
	root := s.FindRoot(id)
	t, ok := s.terms[root]
	return t, ok
}

// Nodes returns every registered identifier in interning order.
func (s *UnionFindSolver) Nodes() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// PrintTerm renders the canonical form of a term, resolving variables
// through this solver.
func (s *UnionFindSolver) PrintTerm(t typesystem.Term) string {
	return typesystem.Print(t, s)
}

// PrintNode renders the resolved type of an identifier. Unconstrained
// identifiers render as their class variable.
func (s *UnionFindSolver) PrintNode(id string) string {
	return typesystem.Print(typesystem.Var{ID: id}, s)
}

// RootOf implements typesystem.Resolver.
func (s *UnionFindSolver) RootOf(id string) string { return s.FindRoot(id) }

// Lookup implements typesystem.Resolver.
func (s *UnionFindSolver) Lookup(id string) (typesystem.Term, bool) {
	t, ok := s.terms[s.FindRoot(id)]
	return t, ok
}

// VarIndex implements typesystem.Resolver.
func (s *UnionFindSolver) VarIndex(id string) int {
	s.AddNode(id)
	return s.index[id]
}
