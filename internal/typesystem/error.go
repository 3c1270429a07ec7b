package typesystem

import "fmt"

// TypeError indicates that two terms required to be equal are structurally
// incompatible. Left and Right hold the conflicting terms' printed forms;
// Node names the identifier that triggered the failing operation and
// Context, when set by an inference rule, names the source construct.
type TypeError struct {
	Context string
	Node    string
	Left    string
	Right   string
}

func (e *TypeError) Error() string {
	where := e.Context
	if where == "" {
		where = e.Node
	}
	return fmt.Sprintf("Type error: %s %s does not match %s", where, e.Left, e.Right)
}

// WithContext returns a copy of the error naming the source construct that
// invoked the failing operation.
func (e *TypeError) WithContext(context string) *TypeError {
	clone := *e
	clone.Context = context
	return &clone
}
