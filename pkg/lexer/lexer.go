package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Identifier Kind = iota
	Integer
	Decimal
	Character
	String
	Operator
)

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Character:
		return "character"
	case String:
		return "string"
	case Operator:
		return "operator"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is one lexeme. Literal is the raw source text, quotes and escapes
// included; Offset is the byte index of its first character.
type Token struct {
	Kind    Kind
	Literal string
	Offset  int
}

// End returns the byte offset just past the token.
func (t Token) End() int { return t.Offset + len(t.Literal) }

// Error reports malformed input at a byte offset.
type Error struct {
	Offset  int
	Message string
	// AtEOF is set when the input ended inside a token.
	AtEOF bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %s at offset %d", e.Message, e.Offset)
}

// Lex splits src into tokens, skipping whitespace.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src}
	var tokens []Token
	for l.has(0) {
		if isWhitespace(l.get(0)) {
			l.index++
			continue
		}
		tok, err := l.lexToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

type lexer struct {
	src   string
	index int
}

func (l *lexer) has(offset int) bool { return l.index+offset < len(l.src) }

func (l *lexer) get(offset int) byte { return l.src[l.index+offset] }

func (l *lexer) peekFunc(offset int, pred func(byte) bool) bool {
	return l.has(offset) && pred(l.get(offset))
}

func (l *lexer) emit(kind Kind, start int) Token {
	return Token{Kind: kind, Literal: l.src[start:l.index], Offset: start}
}

func (l *lexer) lexToken() (Token, error) {
	switch c := l.get(0); {
	case isLetter(c), c == '@' && l.peekFunc(1, isLetter):
		return l.lexIdentifier(), nil
	case isDigit(c), c == '-' && l.peekFunc(1, isDigit):
		return l.lexNumber(), nil
	case c == '\'':
		return l.lexCharacter()
	case c == '"':
		return l.lexString()
	default:
		return l.lexOperator(), nil
	}
}

func (l *lexer) lexIdentifier() Token {
	start := l.index
	l.index++
	for l.peekFunc(0, isIdentifierPart) {
		l.index++
	}
	return l.emit(Identifier, start)
}

// lexNumber reads -?[0-9]+(\.[0-9]+)?. A leading zero not followed by a
// fraction is a complete integer, so "01" lexes as two tokens.
func (l *lexer) lexNumber() Token {
	start := l.index
	if l.get(0) == '-' {
		l.index++
	}
	if l.get(0) == '0' && !(l.has(1) && l.get(1) == '.' && l.peekFunc(2, isDigit)) {
		l.index++
		return l.emit(Integer, start)
	}
	for l.peekFunc(0, isDigit) {
		l.index++
	}
	if l.has(1) && l.get(0) == '.' && isDigit(l.get(1)) {
		l.index++
		for l.peekFunc(0, isDigit) {
			l.index++
		}
		return l.emit(Decimal, start)
	}
	return l.emit(Integer, start)
}

func (l *lexer) lexCharacter() (Token, error) {
	start := l.index
	l.index++
	if !l.has(0) {
		return Token{}, &Error{Offset: l.index, Message: "unterminated character literal", AtEOF: true}
	}
	switch c := l.get(0); {
	case c == '\\':
		if err := l.lexEscape(); err != nil {
			return Token{}, err
		}
	case c == '\'' || c == '\n' || c == '\r':
		return Token{}, &Error{Offset: l.index, Message: "invalid character literal"}
	default:
		_, size := utf8.DecodeRuneInString(l.src[l.index:])
		l.index += size
	}
	if !l.has(0) {
		return Token{}, &Error{Offset: l.index, Message: "unterminated character literal", AtEOF: true}
	}
	if l.get(0) != '\'' {
		return Token{}, &Error{Offset: l.index, Message: "character literal must contain exactly one character"}
	}
	l.index++
	return l.emit(Character, start), nil
}

func (l *lexer) lexString() (Token, error) {
	start := l.index
	l.index++
	for l.has(0) {
		switch c := l.get(0); c {
		case '"':
			l.index++
			return l.emit(String, start), nil
		case '\\':
			if err := l.lexEscape(); err != nil {
				return Token{}, err
			}
		case '\n', '\r':
			return Token{}, &Error{Offset: l.index, Message: "unterminated string literal"}
		default:
			l.index++
		}
	}
	return Token{}, &Error{Offset: l.index, Message: "unterminated string literal", AtEOF: true}
}

func (l *lexer) lexEscape() error {
	if !l.has(1) {
		return &Error{Offset: l.index, Message: "unterminated escape sequence", AtEOF: true}
	}
	if _, ok := escapes[l.get(1)]; !ok {
		return &Error{Offset: l.index, Message: fmt.Sprintf("invalid escape sequence '\\%c'", l.get(1))}
	}
	l.index += 2
	return nil
}

func (l *lexer) lexOperator() Token {
	start := l.index
	if l.has(1) {
		switch l.src[l.index : l.index+2] {
		case "!=", "==", "&&", "||":
			l.index += 2
			return l.emit(Operator, start)
		}
	}
	l.index++
	return l.emit(Operator, start)
}

var escapes = map[byte]byte{
	'b':  '\b',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
}

// Unescape decodes the body of a character or string literal.
func Unescape(body string) string {
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			if r, ok := escapes[body[i+1]]; ok {
				out = append(out, r)
				i++
				continue
			}
		}
		out = append(out, body[i])
	}
	return string(out)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\b' || c == '\n' || c == '\r' || c == '\t'
}

func isLetter(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentifierPart(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-'
}
