package token

type TokenType string

// Token carries the lexeme together with its source position.
// Literal holds the decoded value (identical to Lexeme for most tokens).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT"
	INT   TokenType = "INT"

	ASSIGN    TokenType = "="
	PLUS      TokenType = "+"
	MINUS     TokenType = "-"
	ASTERISK  TokenType = "*"
	SLASH     TokenType = "/"
	GT        TokenType = ">"
	EQ        TokenType = "=="
	AMPERSAND TokenType = "&"

	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	VAR    TokenType = "VAR"
	IF     TokenType = "IF"
	ELSE   TokenType = "ELSE"
	WHILE  TokenType = "WHILE"
	RETURN TokenType = "RETURN"
	INPUT  TokenType = "INPUT"
	OUTPUT TokenType = "OUTPUT"
	ERROR  TokenType = "ERROR"
	ALLOC  TokenType = "ALLOC"
	NULL   TokenType = "NULL"
)

var keywords = map[string]TokenType{
	"var":    VAR,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"input":  INPUT,
	"output": OUTPUT,
	"error":  ERROR,
	"alloc":  ALLOC,
	"null":   NULL,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
