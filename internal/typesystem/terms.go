package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Term is the interface for all type terms in our system.
// Terms are immutable values; sharing between classes happens through
// Var leaves that name solver identifiers, never through aliased state.
type Term interface {
	String() string
	termNode()
}

// Int is the integer type, the only value type of the language.
// It doubles as the boolean type in conditions.
type Int struct{}

func (t Int) termNode()      {}
func (t Int) String() string { return "int" }

// Var is an unbound placeholder naming a solver identifier.
// It resolves by consulting the solver that owns the identifier.
type Var struct {
	ID string
}

func (t Var) termNode()      {}
func (t Var) String() string { return "α(" + t.ID + ")" }

// Pointer is a single level of indirection.
type Pointer struct {
	Inner Term
}

func (t Pointer) termNode()      {}
func (t Pointer) String() string { return "&" + t.Inner.String() }

// Function is a function type. Arity is fixed at construction.
type Function struct {
	Params []Term
	Return Term
}

func (t Function) termNode() {}

func (t Function) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return.String())
}

// Record is a structurally typed record. Field display order is always
// lexicographic so that equal field sets print identically regardless of
// declaration order. An open record constrains only the fields it names;
// more fields may be present on the concrete type it unifies with.
type Record struct {
	Fields map[string]Term
	Open   bool
}

func (t Record) termNode() {}

func (t Record) String() string {
	fields := make([]string, 0, len(t.Fields))
	for _, k := range t.FieldNames() {
		fields = append(fields, fmt.Sprintf("%s: %s", k, t.Fields[k].String()))
	}
	suffix := ""
	if t.Open {
		suffix = ", ..."
	}
	return fmt.Sprintf("{%s%s}", strings.Join(fields, ", "), suffix)
}

// FieldNames returns the field names in lexicographic order.
func (t Record) FieldNames() []string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
