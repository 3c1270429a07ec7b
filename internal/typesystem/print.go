package typesystem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Resolver lets printing and comparison look through Var leaves into the
// solver that owns the identifiers. The union-find solver implements it.
type Resolver interface {
	// RootOf resolves an identifier to its class representative.
	RootOf(id string) string
	// Lookup returns the payload attached to the identifier's class, if any.
	Lookup(id string) (Term, bool)
	// VarIndex returns the stable per-compilation display index for an
	// identifier, used to render free variables.
	VarIndex(id string) int
}

// Print renders the canonical textual form of a term, resolving Var leaves
// through r. The form is stable and injective for all constructible shapes:
// record fields are emitted in lexicographic order and free variables render
// as their class representative's display index.
//
// The language permits recursive structures through pointers, so a term may
// reach its own equivalence class again during resolution. Re-entering a
// class already on the active chain prints the class variable instead of
// recursing; without this guard printing a recursive type would not
// terminate.
func Print(t Term, r Resolver) string {
	return printTerm(t, r, make(map[string]bool))
}

func printTerm(t Term, r Resolver, active map[string]bool) string {
	switch t := t.(type) {
	case Int:
		return "int"
	case Var:
		root := r.RootOf(t.ID)
		payload, ok := r.Lookup(root)
		if !ok || active[root] {
			return freeVarName(r.VarIndex(root))
		}
		active[root] = true
		s := printTerm(payload, r, active)
		delete(active, root)
		return s
	case Pointer:
		return "&" + printTerm(t.Inner, r, active)
	case Function:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = printTerm(p, r, active)
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), printTerm(t.Return, r, active))
	case Record:
		fields := make([]string, 0, len(t.Fields))
		for _, k := range t.FieldNames() {
			fields = append(fields, fmt.Sprintf("%s: %s", k, printTerm(t.Fields[k], r, active)))
		}
		suffix := ""
		if t.Open {
			suffix = ", ..."
		}
		return fmt.Sprintf("{%s%s}", strings.Join(fields, ", "), suffix)
	default:
		return t.String()
	}
}

func freeVarName(index int) string {
	return "α" + strconv.Itoa(index)
}

// Fingerprint hashes the canonical printed form of a term. Print is
// injective, so equal fingerprints identify structurally equal resolved
// terms; it serves as the fast path in Compatible and lets consumers key
// terms by value.
func Fingerprint(t Term, r Resolver) uint64 {
	return xxhash.Sum64String(Print(t, r))
}
