package token

type TokenType string

const (
	// Error sentinels. The scanner never aborts; it tags the bad input
	// and lets the caller decide how to report it.
	ILLEGAL             = "ILLEGAL"
	UNTERMINATED_STRING = "UNTERMINATED_STRING"

	EOF = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // counter, makeCounter, x, y, ...
	NUMBER = "NUMBER" // 1343456, 1.5
	STRING = "STRING" // "foobar"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"

	LT    = "<"
	LT_EQ = "<="
	GT    = ">"
	GT_EQ = ">="

	EQ     = "=="
	NOT_EQ = "!="

	// Delimiters
	PERIOD    = "."
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN = "("
	RPAREN = ")"
	LBRACE = "{"
	RBRACE = "}"

	// Keywords
	AND      = "AND"
	OR       = "OR"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	NIL      = "NIL"
	VAR      = "VAR"
	FUNCTION = "FUNCTION"
	RETURN   = "RETURN"
	IF       = "IF"
	ELSE     = "ELSE"
	WHILE    = "WHILE"
	FOR      = "FOR"
	PRINT    = "PRINT"
)

// Token is one lexeme plus the half-open byte range [Start, End) it covers
// in the original source buffer. Offsets are bytes, not runes, so that
// multi-byte characters map back into the source correctly.
type Token struct {
	Type    TokenType
	Literal string
	Start   int
	End     int
}

func (t Token) Span() Span {
	return Span{Start: t.Start, End: t.End}
}

var keywords = map[string]TokenType{
	// constants
	"nil":   NIL,
	"true":  TRUE,
	"false": FALSE,

	// declarations
	"fun": FUNCTION,
	"var": VAR,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"for":    FOR,
	"return": RETURN,

	// logical operators
	"and": AND,
	"or":  OR,

	"print": PRINT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
