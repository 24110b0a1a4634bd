package parser

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes SQL input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() Position {
	return Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. It returns a LexError for input the
// dialect cannot tokenize: stray operator characters, characters outside
// the alphabet, and unterminated string or identifier literals.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	pos := l.currentPos()

	var tok Token
	tok.Pos = pos

	switch l.ch {
	case 0:
		tok.Type = TOKEN_EOF
		tok.Literal = ""
	case '+':
		tok = l.newToken(TOKEN_PLUS, "+")
	case '-':
		tok = l.newToken(TOKEN_MINUS, "-")
	case '*':
		tok = l.newToken(TOKEN_STAR, "*")
	case '/':
		tok = l.newToken(TOKEN_SLASH, "/")
	case '%':
		tok = l.newToken(TOKEN_PERCENT, "%")
	case '=':
		tok = l.newToken(TOKEN_EQ, "=")
	case '<':
		switch l.peekChar() {
		case '=':
			l.readChar()
			tok = Token{Type: TOKEN_LE, Literal: "<=", Pos: pos}
		case '>':
			l.readChar()
			tok = Token{Type: TOKEN_NE, Literal: "<>", Pos: pos}
		default:
			tok = l.newToken(TOKEN_LT, "<")
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TOKEN_GE, Literal: ">=", Pos: pos}
		} else {
			tok = l.newToken(TOKEN_GT, ">")
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TOKEN_NE, Literal: "!=", Pos: pos}
		} else {
			return Token{}, &LexError{Pos: pos, Message: fmt.Sprintf(ErrUnknownOperator, "!")}
		}
	case '.':
		tok = l.newToken(TOKEN_DOT, ".")
	case ',':
		tok = l.newToken(TOKEN_COMMA, ",")
	case ';':
		tok = l.newToken(TOKEN_SEMICOLON, ";")
	case '(':
		tok = l.newToken(TOKEN_LPAREN, "(")
	case ')':
		tok = l.newToken(TOKEN_RPAREN, ")")
	case '\'':
		s, err := l.readString(pos)
		if err != nil {
			return Token{}, err
		}
		tok.Type = TOKEN_STRING
		tok.Literal = s
		tok.Pos = pos
		return tok, nil
	case '"':
		s, err := l.readQuotedIdentifier(pos)
		if err != nil {
			return Token{}, err
		}
		tok.Type = TOKEN_IDENT
		tok.Literal = s
		tok.Pos = pos
		return tok, nil
	default:
		switch {
		case isLetter(l.ch) || l.ch == '_':
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(strings.ToLower(tok.Literal))
			tok.Pos = pos
			return tok, nil
		case isDigit(l.ch):
			tok.Type = TOKEN_NUMBER
			tok.Literal = l.readNumber()
			tok.Pos = pos
			return tok, nil
		default:
			return Token{}, &LexError{Pos: pos, Message: fmt.Sprintf(ErrUnexpectedCharacter, string(l.ch))}
		}
	}

	l.readChar()
	return tok, nil
}

// newToken creates a new token.
func (l *Lexer) newToken(tokenType TokenType, literal string) Token {
	return Token{Type: tokenType, Literal: literal, Pos: l.currentPos()}
}

// skipWhitespace skips whitespace. The dialect has no comment syntax, so
// there is nothing else to discard between tokens.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a single-quoted string literal.
// A backslash escapes the following character: 'it\'s' -> it's.
func (l *Lexer) readString(start Position) (string, error) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch l.ch {
		case 0:
			return "", &LexError{Pos: start, Message: ErrUnterminatedString}
		case '\\':
			l.readChar() // skip backslash
			if l.ch == 0 {
				return "", &LexError{Pos: start, Message: ErrUnterminatedString}
			}
			result.WriteByte(l.ch)
			l.readChar()
		case '\'':
			l.readChar() // skip closing quote
			return result.String(), nil
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readQuotedIdentifier reads a double-quoted identifier. Quoted
// identifiers have no escape syntax; the literal ends at the next quote.
func (l *Lexer) readQuotedIdentifier(start Position) (string, error) {
	l.readChar() // skip opening quote

	var result strings.Builder
	for {
		switch l.ch {
		case 0:
			return "", &LexError{Pos: start, Message: ErrUnterminatedIdentifier}
		case '"':
			l.readChar() // skip closing quote
			return result.String(), nil
		default:
			result.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readIdentifier reads an unquoted identifier.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a numeric literal (integer or decimal). At most one
// decimal point is consumed; a second '.' ends the literal.
func (l *Lexer) readNumber() string {
	start := l.pos

	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // skip '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.pos]
}

// isLetter returns true if ch is a letter.
func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

// isDigit returns true if ch is a digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns all tokens from the input, ending with exactly one EOF
// token. A failed scan yields no tokens, only the error.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens, nil
}
