package typesystem

import "reflect"

// termPair is a pair of terms under comparison, kept for co-induction.
type termPair struct {
	a Term
	b Term
}

// Compatible reports whether two terms are structurally compatible up to
// resolving Var leaves through r. A free variable is compatible with
// anything; concrete terms must be the same variant with pairwise-compatible
// components (same arity for functions, matching field sets for records).
// The check is pure: it never mutates the solver.
//
// Print is injective on resolved terms, so equal fingerprints mean equal
// terms; that settles the common unify-with-yourself case without a
// structural walk. Unequal fingerprints decide nothing (free variables
// print by class index but match anything), so the walk runs.
//
// Comparison is co-inductive: recursive types re-enter the same pair of
// terms, and re-entry is assumed compatible. Without that assumption a
// record containing a pointer to itself would loop forever.
func Compatible(a, b Term, r Resolver) bool {
	if Fingerprint(a, r) == Fingerprint(b, r) {
		return true
	}
	return compatible(a, b, r, nil)
}

func compatible(a, b Term, r Resolver, visited []termPair) bool {
	a = Resolve(a, r)
	b = Resolve(b, r)

	if _, ok := a.(Var); ok {
		return true
	}
	if _, ok := b.(Var); ok {
		return true
	}

	for _, p := range visited {
		if reflect.DeepEqual(p.a, a) && reflect.DeepEqual(p.b, b) {
			return true
		}
	}
	visited = append(visited, termPair{a: a, b: b})

	switch a := a.(type) {
	case Int:
		_, ok := b.(Int)
		return ok
	case Pointer:
		bp, ok := b.(Pointer)
		return ok && compatible(a.Inner, bp.Inner, r, visited)
	case Function:
		bf, ok := b.(Function)
		if !ok || len(a.Params) != len(bf.Params) {
			return false
		}
		for i := range a.Params {
			if !compatible(a.Params[i], bf.Params[i], r, visited) {
				return false
			}
		}
		return compatible(a.Return, bf.Return, r, visited)
	case Record:
		br, ok := b.(Record)
		if !ok {
			return false
		}
		return recordsCompatible(a, br, r, visited)
	default:
		return false
	}
}

// recordsCompatible checks structural record compatibility. Shared fields
// must be pairwise compatible. A closed record fixes its field set: the
// other side may not require a field it lacks, and two closed records must
// agree on the whole set. An open record only constrains the fields it
// names.
func recordsCompatible(a, b Record, r Resolver, visited []termPair) bool {
	for name, at := range a.Fields {
		bt, ok := b.Fields[name]
		if !ok {
			if !b.Open {
				return false
			}
			continue
		}
		if !compatible(at, bt, r, visited) {
			return false
		}
	}
	if !a.Open {
		for name := range b.Fields {
			if _, ok := a.Fields[name]; !ok {
				return false
			}
		}
	}
	return true
}

// Resolve follows a Var leaf to its class payload, if one exists. Concrete
// terms and genuinely free variables are returned unchanged (the free
// variable is rewritten to name its class representative).
func Resolve(t Term, r Resolver) Term {
	v, ok := t.(Var)
	if !ok {
		return t
	}
	root := r.RootOf(v.ID)
	if payload, ok := r.Lookup(root); ok {
		return payload
	}
	return Var{ID: root}
}
