package solver

import (
	"reflect"

	"github.com/tiplang/tipc/internal/typesystem"
)

type mergePair struct {
	a typesystem.Term
	b typesystem.Term
}

// merge reconciles two terms already checked compatible and returns the
// combined term. Free variable components discovered during the walk are
// bound: a free class ends up carrying the concrete term it was matched
// against, and two free classes are unioned. Open records absorb each
// other's fields; the result is closed as soon as either side is.
//
// The walk re-enters the same pair of terms on recursive types; re-entry
// returns one side unchanged. A late mismatch is still possible when the
// same variable is matched against two incompatible components (the prior
// compatibility check treats each occurrence of a free variable
// independently); in that case a *typesystem.TypeError is returned.
func (s *UnionFindSolver) merge(a, b typesystem.Term, visited []mergePair) (typesystem.Term, error) {
	a = typesystem.Resolve(a, s)
	b = typesystem.Resolve(b, s)

	av, aFree := a.(typesystem.Var)
	bv, bFree := b.(typesystem.Var)
	switch {
	case aFree && bFree:
		ra := s.FindRoot(av.ID)
		rb := s.FindRoot(bv.ID)
		if ra != rb {
			s.parent[ra] = rb
		}
		return typesystem.Var{ID: rb}, nil
	case aFree:
		s.terms[s.FindRoot(av.ID)] = b
		return b, nil
	case bFree:
		s.terms[s.FindRoot(bv.ID)] = a
		return a, nil
	}

	for _, p := range visited {
		if reflect.DeepEqual(p.a, a) && reflect.DeepEqual(p.b, b) {
			return a, nil
		}
	}
	visited = append(visited, mergePair{a: a, b: b})

	switch at := a.(type) {
	case typesystem.Int:
		if _, ok := b.(typesystem.Int); ok {
			return a, nil
		}
	case typesystem.Pointer:
		if bt, ok := b.(typesystem.Pointer); ok {
			inner, err := s.merge(at.Inner, bt.Inner, visited)
			if err != nil {
				return nil, err
			}
			return typesystem.Pointer{Inner: inner}, nil
		}
	case typesystem.Function:
		if bt, ok := b.(typesystem.Function); ok && len(at.Params) == len(bt.Params) {
			params := make([]typesystem.Term, len(at.Params))
			for i := range at.Params {
				p, err := s.merge(at.Params[i], bt.Params[i], visited)
				if err != nil {
					return nil, err
				}
				params[i] = p
			}
			ret, err := s.merge(at.Return, bt.Return, visited)
			if err != nil {
				return nil, err
			}
			return typesystem.Function{Params: params, Return: ret}, nil
		}
	case typesystem.Record:
		if bt, ok := b.(typesystem.Record); ok {
			return s.mergeRecords(at, bt, visited)
		}
	}

	return nil, &typesystem.TypeError{
		Left:  typesystem.Print(a, s),
		Right: typesystem.Print(b, s),
	}
}

func (s *UnionFindSolver) mergeRecords(a, b typesystem.Record, visited []mergePair) (typesystem.Term, error) {
	fields := make(map[string]typesystem.Term, len(a.Fields)+len(b.Fields))
	for name, at := range a.Fields {
		if bt, ok := b.Fields[name]; ok {
			m, err := s.merge(at, bt, visited)
			if err != nil {
				return nil, err
			}
			fields[name] = m
			continue
		}
		fields[name] = at
	}
	for name, bt := range b.Fields {
		if _, ok := fields[name]; !ok {
			fields[name] = bt
		}
	}
	return typesystem.Record{Fields: fields, Open: a.Open && b.Open}, nil
}
