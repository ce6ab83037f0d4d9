package lexer

import (
	"lux/internal/token"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 means EOF
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Scan tokenizes the whole input. The returned slice carries no synthetic
// EOF token; out-of-range lookups are the parser's concern.
func Scan(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()

	switch l.ch {
	case '=':
		tok = l.compoundToken(token.ASSIGN, '=', token.EQ)
	case '!':
		tok = l.compoundToken(token.BANG, '=', token.NOT_EQ)
	case '<':
		tok = l.compoundToken(token.LT, '=', token.LT_EQ)
	case '>':
		tok = l.compoundToken(token.GT, '=', token.GT_EQ)
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		tok = l.newToken(token.MINUS)
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '/':
		tok = l.newToken(token.SLASH)
	case '.':
		tok = l.newToken(token.PERIOD)
	case ',':
		tok = l.newToken(token.COMMA)
	case ';':
		tok = l.newToken(token.SEMICOLON)
	case '(':
		tok = l.newToken(token.LPAREN)
	case ')':
		tok = l.newToken(token.RPAREN)
	case '{':
		tok = l.newToken(token.LBRACE)
	case '}':
		tok = l.newToken(token.RBRACE)
	case '"':
		return l.readString()
	case 0:
		return token.Token{Type: token.EOF, Literal: "", Start: l.position, End: l.position}
	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isLetter(l.ch) {
			start := l.position
			literal := l.readIdentifier()
			return token.Token{
				Type:    token.LookupIdent(literal),
				Literal: literal,
				Start:   start,
				End:     l.position,
			}
		}
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType token.TokenType) token.Token {
	return token.Token{
		Type:    tokenType,
		Literal: string(l.ch),
		Start:   l.position,
		End:     l.position + utf8.RuneLen(l.ch),
	}
}

// compoundToken emits the two-char token when the next rune matches,
// otherwise the single-char one.
func (l *Lexer) compoundToken(t token.TokenType, next rune, t2 token.TokenType) token.Token {
	start := l.position
	if l.peekChar() == next {
		first := l.ch
		l.readChar()
		return token.Token{
			Type:    t2,
			Literal: string(first) + string(l.ch),
			Start:   start,
			End:     l.readPosition,
		}
	}
	return l.newToken(t)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '/':
			if l.peekChar() == '/' {
				l.skipToLineEnd()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readString consumes up to the closing quote. A missing close quote
// yields an UNTERMINATED_STRING sentinel covering the rest of the input.
func (l *Lexer) readString() token.Token {
	start := l.position
	for {
		l.readChar()
		if l.ch == '"' {
			break
		}
		if l.ch == 0 {
			return token.Token{
				Type:    token.UNTERMINATED_STRING,
				Literal: l.input[start:l.position],
				Start:   start,
				End:     l.position,
			}
		}
	}
	literal := l.input[start+1 : l.position]
	l.readChar() // consume closing quote
	return token.Token{
		Type:    token.STRING,
		Literal: literal,
		Start:   start,
		End:     l.position,
	}
}

// readNumber consumes an integer or decimal literal. The dot is only part
// of the number when a digit follows it, so `1.` scans as NUMBER PERIOD.
func (l *Lexer) readNumber() token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{
		Type:    token.NUMBER,
		Literal: l.input[start:l.position],
		Start:   start,
		End:     l.position,
	}
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
