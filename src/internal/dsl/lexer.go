// FILE: eventweaver/src/internal/dsl/lexer.go
package dsl

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType identifies a lexical token class.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenIdent
	TokenNumber
	TokenString
	TokenTrue
	TokenFalse
	TokenNull
	TokenAnd
	TokenOr
	TokenNot
	TokenIn
	TokenEq     // ==
	TokenNeq    // !=
	TokenGt     // >
	TokenGte    // >=
	TokenLt     // <
	TokenLte    // <=
	TokenPlus   // +
	TokenMinus  // -
	TokenLParen // (
	TokenRParen // )
	TokenLBrack // [
	TokenRBrack // ]
	TokenDot    // .
	TokenComma  // ,
)

// Token is a single lexical token. For TokenIllegal, Value holds a
// human-readable description of the problem.
type Token struct {
	Type  TokenType
	Value string
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of expression"
	}
	return fmt.Sprintf("'%s'", t.Value)
}

// Lexer tokenizes filter expression input. Keywords are
// case-sensitive; ALL other spellings lex as identifiers.
type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '[':
		l.pos++
		return Token{Type: TokenLBrack, Value: "["}
	case ']':
		l.pos++
		return Token{Type: TokenRBrack, Value: "]"}
	case '.':
		l.pos++
		return Token{Type: TokenDot, Value: "."}
	case ',':
		l.pos++
		return Token{Type: TokenComma, Value: ","}
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+"}
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-"}
	case '=':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Type: TokenEq, Value: "=="}
		}
		l.pos++
		return Token{Type: TokenIllegal, Value: "unexpected character '=' (did you mean '==')"}
	case '!':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Type: TokenNeq, Value: "!="}
		}
		l.pos++
		return Token{Type: TokenIllegal, Value: "unexpected character '!'"}
	case '>':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Type: TokenGte, Value: ">="}
		}
		l.pos++
		return Token{Type: TokenGt, Value: ">"}
	case '<':
		if l.peek(1) == '=' {
			l.pos += 2
			return Token{Type: TokenLte, Value: "<="}
		}
		l.pos++
		return Token{Type: TokenLt, Value: "<"}
	case '\'', '"':
		return l.readString(ch)
	}

	if isDigit(ch) {
		return l.readNumber()
	}
	if isIdentStart(ch) {
		return l.readIdent()
	}

	l.pos++
	return Token{Type: TokenIllegal, Value: fmt.Sprintf("unexpected character %q", ch)}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func (l *Lexer) readString(quote byte) Token {
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == quote {
			l.pos++
			return Token{Type: TokenString, Value: sb.String()}
		}
		if ch == '\\' && l.pos+1 < len(l.input) {
			l.pos++
			switch l.input[l.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(l.input[l.pos])
			}
			l.pos++
			continue
		}
		sb.WriteByte(ch)
		l.pos++
	}
	return Token{Type: TokenIllegal, Value: "unterminated string literal"}
}

func (l *Lexer) readNumber() Token {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.input) && l.input[l.pos] == '.' && isDigit(l.peek(1)) {
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = mark
		}
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos]}
}

func (l *Lexer) readIdent() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	value := l.input[start:l.pos]

	switch value {
	case "and":
		return Token{Type: TokenAnd, Value: value}
	case "or":
		return Token{Type: TokenOr, Value: value}
	case "not":
		return Token{Type: TokenNot, Value: value}
	case "in":
		return Token{Type: TokenIn, Value: value}
	case "true":
		return Token{Type: TokenTrue, Value: value}
	case "false":
		return Token{Type: TokenFalse, Value: value}
	case "null":
		return Token{Type: TokenNull, Value: value}
	}

	return Token{Type: TokenIdent, Value: value}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
