package token

import "fmt"

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Layout
	NEWLINE TokenType = "NEWLINE"
	INDENT  TokenType = "INDENT"
	DEDENT  TokenType = "DEDENT"

	// Identifiers + literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN      TokenType = "="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	SLASH_SLASH TokenType = "//"
	PERCENT     TokenType = "%"
	EQ          TokenType = "=="
	NOT_EQ      TokenType = "!="
	LT          TokenType = "<"
	GT          TokenType = ">"
	LTE         TokenType = "<="
	GTE         TokenType = ">="

	// Delimiters
	COMMA  TokenType = ","
	COLON  TokenType = ":"
	DOT    TokenType = "."
	LPAREN TokenType = "("
	RPAREN TokenType = ")"

	// Keywords
	DEF      TokenType = "DEF"
	CLASS    TokenType = "CLASS"
	IF       TokenType = "IF"
	ELIF     TokenType = "ELIF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	TRY      TokenType = "TRY"
	EXCEPT   TokenType = "EXCEPT"
	FINALLY  TokenType = "FINALLY"
	WITH     TokenType = "WITH"
	AS       TokenType = "AS"
	RETURN   TokenType = "RETURN"
	PASS     TokenType = "PASS"
	AND      TokenType = "AND"
	OR       TokenType = "OR"
	NOT      TokenType = "NOT"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NONE     TokenType = "NONE"
)

var keywords = map[string]TokenType{
	"def":     DEF,
	"class":   CLASS,
	"if":      IF,
	"elif":    ELIF,
	"else":    ELSE,
	"while":   WHILE,
	"for":     FOR,
	"in":      IN,
	"try":     TRY,
	"except":  EXCEPT,
	"finally": FINALLY,
	"with":    WITH,
	"as":      AS,
	"return":  RETURN,
	"pass":    PASS,
	"and":     AND,
	"or":      OR,
	"not":     NOT,
	"True":    TRUE,
	"False":   FALSE,
	"None":    NONE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether name is reserved and cannot be used as an identifier.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}
