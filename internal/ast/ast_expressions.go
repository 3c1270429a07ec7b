package ast

import "github.com/tiplang/tipc/internal/token"

// Identifier references a declared variable or function by name. ID is
// filled in by the id pass with the declaring identifier's key, so every
// reference resolves to the same equivalence class as its declaration.
type Identifier struct {
	Token token.Token
	Value string
	ID    string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) Key() string          { return i.ID }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// NumberLiteral is an integer literal.
type NumberLiteral struct {
	Token token.Token
	Value int64
	ID    string
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) Key() string          { return nl.ID }
func (nl *NumberLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// BinaryExpression covers arithmetic and comparison; both operate on
// integers and produce an integer.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
	ID       string
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Lexeme }
func (be *BinaryExpression) Key() string          { return be.ID }
func (be *BinaryExpression) GetToken() token.Token {
	if be == nil {
		return token.Token{}
	}
	return be.Token
}

// CallExpression applies a function-valued expression to arguments.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
	ID        string
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) Key() string          { return ce.ID }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// InputExpression reads an integer from the program's input stream.
type InputExpression struct {
	Token token.Token
	ID    string
}

func (ie *InputExpression) expressionNode()      {}
func (ie *InputExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InputExpression) Key() string          { return ie.ID }
func (ie *InputExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// AllocExpression heap-allocates a cell holding its operand's value and
// yields a pointer to it.
type AllocExpression struct {
	Token token.Token // the 'alloc' token
	Value Expression
	ID    string
}

func (ae *AllocExpression) expressionNode()      {}
func (ae *AllocExpression) TokenLiteral() string { return ae.Token.Lexeme }
func (ae *AllocExpression) Key() string          { return ae.ID }
func (ae *AllocExpression) GetToken() token.Token {
	if ae == nil {
		return token.Token{}
	}
	return ae.Token
}

// RefExpression takes the address of a variable: &x.
type RefExpression struct {
	Token token.Token // the '&' token
	Name  *Identifier
	ID    string
}

func (re *RefExpression) expressionNode()      {}
func (re *RefExpression) TokenLiteral() string { return re.Token.Lexeme }
func (re *RefExpression) Key() string          { return re.ID }
func (re *RefExpression) GetToken() token.Token {
	if re == nil {
		return token.Token{}
	}
	return re.Token
}

// DerefExpression dereferences a pointer-valued expression: *e.
type DerefExpression struct {
	Token token.Token // the '*' token
	Value Expression
	ID    string
}

func (de *DerefExpression) expressionNode()      {}
func (de *DerefExpression) TokenLiteral() string { return de.Token.Lexeme }
func (de *DerefExpression) Key() string          { return de.ID }
func (de *DerefExpression) GetToken() token.Token {
	if de == nil {
		return token.Token{}
	}
	return de.Token
}

// NullLiteral is the null pointer: a pointer to an unconstrained type,
// unifiable with any pointer type.
type NullLiteral struct {
	Token token.Token
	ID    string
}

func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NullLiteral) Key() string          { return nl.ID }
func (nl *NullLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// RecordField is one field initializer inside a record literal.
type RecordField struct {
	Token token.Token // the field name token
	Name  string
	Value Expression
}

func (rf *RecordField) GetToken() token.Token {
	if rf == nil {
		return token.Token{}
	}
	return rf.Token
}

// RecordLiteral constructs a record value: {a: 1, b: alloc 2}.
// Field order is declaration order; typing is order-independent.
type RecordLiteral struct {
	Token  token.Token // the '{' token
	Fields []*RecordField
	ID     string
}

func (rl *RecordLiteral) expressionNode()      {}
func (rl *RecordLiteral) TokenLiteral() string { return rl.Token.Lexeme }
func (rl *RecordLiteral) Key() string          { return rl.ID }
func (rl *RecordLiteral) GetToken() token.Token {
	if rl == nil {
		return token.Token{}
	}
	return rl.Token
}

// AccessExpression reads a field of a record-valued expression: e.f.
type AccessExpression struct {
	Token  token.Token // the '.' token
	Record Expression
	Field  string
	ID     string
}

func (ae *AccessExpression) expressionNode()      {}
func (ae *AccessExpression) TokenLiteral() string { return ae.Token.Lexeme }
func (ae *AccessExpression) Key() string          { return ae.ID }
func (ae *AccessExpression) GetToken() token.Token {
	if ae == nil {
		return token.Token{}
	}
	return ae.Token
}
