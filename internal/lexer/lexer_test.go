package lexer

import (
	"testing"

	"lux/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var five = 5;
var ten = 10.5;

fun add(x, y) {
	return x + y;
}

var result = add(five, ten);
!- / *;
5 < 10 > 5;
5 <= 10 >= 5;
10 == 10; // comment
10 != 9;
true and false;
true or false;
if (nil) { print "yes"; } else { while (for) {} }
"foo bar"
a.b
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.VAR, "var"},
		{token.IDENT, "five"},
		{token.ASSIGN, "="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.VAR, "var"},
		{token.IDENT, "ten"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10.5"},
		{token.SEMICOLON, ";"},
		{token.FUNCTION, "fun"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.VAR, "var"},
		{token.IDENT, "result"},
		{token.ASSIGN, "="},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "five"},
		{token.COMMA, ","},
		{token.IDENT, "ten"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.BANG, "!"},
		{token.MINUS, "-"},
		{token.SLASH, "/"},
		{token.ASTERISK, "*"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.LT, "<"},
		{token.NUMBER, "10"},
		{token.GT, ">"},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "5"},
		{token.LT_EQ, "<="},
		{token.NUMBER, "10"},
		{token.GT_EQ, ">="},
		{token.NUMBER, "5"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "10"},
		{token.EQ, "=="},
		{token.NUMBER, "10"},
		{token.SEMICOLON, ";"},
		{token.NUMBER, "10"},
		{token.NOT_EQ, "!="},
		{token.NUMBER, "9"},
		{token.SEMICOLON, ";"},
		{token.TRUE, "true"},
		{token.AND, "and"},
		{token.FALSE, "false"},
		{token.SEMICOLON, ";"},
		{token.TRUE, "true"},
		{token.OR, "or"},
		{token.FALSE, "false"},
		{token.SEMICOLON, ";"},
		{token.IF, "if"},
		{token.LPAREN, "("},
		{token.NIL, "nil"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.PRINT, "print"},
		{token.STRING, "yes"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.WHILE, "while"},
		{token.LPAREN, "("},
		{token.FOR, "for"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.RBRACE, "}"},
		{token.STRING, "foo bar"},
		{token.IDENT, "a"},
		{token.PERIOD, "."},
		{token.IDENT, "b"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestScanOmitsEOF(t *testing.T) {
	tokens := Scan("1 + 2;")
	if len(tokens) != 4 {
		t.Fatalf("token count wrong. expected=4, got=%d", len(tokens))
	}
	for i, tok := range tokens {
		if tok.Type == token.EOF {
			t.Fatalf("tokens[%d] is EOF, Scan should omit it", i)
		}
	}
}

func TestTokenSpans(t *testing.T) {
	input := `var x = "hi";`

	tests := []struct {
		expectedType  token.TokenType
		expectedStart int
		expectedEnd   int
	}{
		{token.VAR, 0, 3},
		{token.IDENT, 4, 5},
		{token.ASSIGN, 6, 7},
		{token.STRING, 8, 12},
		{token.SEMICOLON, 12, 13},
	}

	tokens := Scan(input)
	if len(tokens) != len(tests) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(tests), len(tokens))
	}

	for i, tt := range tests {
		tok := tokens[i]
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Start != tt.expectedStart || tok.End != tt.expectedEnd {
			t.Fatalf("tests[%d] - span wrong. expected=[%d,%d), got=[%d,%d)",
				i, tt.expectedStart, tt.expectedEnd, tok.Start, tok.End)
		}
	}
}

func TestMultibyteSpans(t *testing.T) {
	// the string literal holds a three byte rune
	input := `"€" + x;`

	tokens := Scan(input)
	if len(tokens) != 4 {
		t.Fatalf("token count wrong. expected=4, got=%d", len(tokens))
	}

	str := tokens[0]
	if str.Type != token.STRING || str.Literal != "€" {
		t.Fatalf("string token wrong. got=%q (%q)", str.Type, str.Literal)
	}
	if str.Start != 0 || str.End != 5 {
		t.Fatalf("string span wrong. expected=[0,5), got=[%d,%d)", str.Start, str.End)
	}

	plus := tokens[1]
	if plus.Start != 6 || plus.End != 7 {
		t.Fatalf("plus span wrong. expected=[6,7), got=[%d,%d)", plus.Start, plus.End)
	}
}

func TestUnterminatedString(t *testing.T) {
	tokens := Scan(`var s = "oops`)

	last := tokens[len(tokens)-1]
	if last.Type != token.UNTERMINATED_STRING {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.UNTERMINATED_STRING, last.Type)
	}
	if last.Start != 8 || last.End != 13 {
		t.Fatalf("span wrong. expected=[8,13), got=[%d,%d)", last.Start, last.End)
	}
}

func TestIllegalCharacter(t *testing.T) {
	tokens := Scan("1 @ 2;")

	if len(tokens) != 4 {
		t.Fatalf("token count wrong. expected=4, got=%d", len(tokens))
	}
	if tokens[1].Type != token.ILLEGAL {
		t.Fatalf("tokentype wrong. expected=%q, got=%q", token.ILLEGAL, tokens[1].Type)
	}
	if tokens[1].Literal != "@" {
		t.Fatalf("literal wrong. expected=%q, got=%q", "@", tokens[1].Literal)
	}
}

func TestNumberDotLookahead(t *testing.T) {
	// a trailing dot is a PERIOD token, not part of the number
	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.NUMBER, "1"},
		{token.PERIOD, "."},
		{token.IDENT, "abs"},
		{token.NUMBER, "2.5"},
		{token.SEMICOLON, ";"},
	}

	tokens := Scan("1.abs 2.5;")
	if len(tokens) != len(tests) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(tests), len(tokens))
	}
	for i, tt := range tests {
		if tokens[i].Type != tt.expectedType || tokens[i].Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - token wrong. expected=%q (%q), got=%q (%q)",
				i, tt.expectedType, tt.expectedLiteral, tokens[i].Type, tokens[i].Literal)
		}
	}
}

func TestCommentsAndWhitespaceOnly(t *testing.T) {
	tokens := Scan("// just a comment\n\t \r\n// another\n")
	if len(tokens) != 0 {
		t.Fatalf("token count wrong. expected=0, got=%d", len(tokens))
	}
}
