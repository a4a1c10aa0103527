// Package lexer implements the lexical analyzer for the Monke programming language.
//
// The lexer is responsible for breaking down the source code into tokens,
// which are the smallest units of meaning in the language.
// It reads the input character by character and produces a stream of tokens
// that can be processed by the parser.
//
// Key features:
//   - Tokenization of all language elements (keywords, identifiers, literals, operators, etc.)
//   - Line/column position tracking for every token, consumed by the compiler and VM
//     to pin errors to source locations
//   - Handling of whitespace and "//" line comments
//   - Error detection for illegal and unterminated string tokens
//
// The main entry point is the New function, which creates a new Lexer instance,
// and the NextToken method, which returns the next token from the input.
package lexer

import (
	"strings"

	"github.com/dr8co/monkeyvm/position"
	"github.com/dr8co/monkeyvm/token"
)

// Lexer represents the lexer for the Monke programming language.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte

	line int
	col  int
}

// New creates a new Lexer with the given input string.
// It initializes the lexer, reads the first character, and sets up position tracking.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar reads the next character from the input and advances the position,
// bumping the line/column counters based on the character being left behind.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.col++
}

// peekChar returns the next character in the input without advancing the position.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) pos() position.Position {
	return position.New(l.line, l.col)
}

// NextToken reads the next token from the input, skipping whitespace and
// comments first, and tags it with the position of its first character.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	pos := l.pos()

	var tok token.Token
	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.EQ, Literal: "==", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.ASSIGN, Literal: "=", Pos: pos}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.NOT_EQ, Literal: "!=", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.BANG, Literal: "!", Pos: pos}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.AND, Literal: "&&", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: "&", Pos: pos}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.OR, Literal: "||", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.ILLEGAL, Literal: "|", Pos: pos}
	case '+':
		l.readChar()
		return token.Token{Type: token.PLUS, Literal: "+", Pos: pos}
	case '-':
		l.readChar()
		return token.Token{Type: token.MINUS, Literal: "-", Pos: pos}
	case '/':
		l.readChar()
		return token.Token{Type: token.SLASH, Literal: "/", Pos: pos}
	case '*':
		l.readChar()
		return token.Token{Type: token.ASTERISK, Literal: "*", Pos: pos}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.LE, Literal: "<=", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.LT, Literal: "<", Pos: pos}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.GE, Literal: ">=", Pos: pos}
		}
		l.readChar()
		return token.Token{Type: token.GT, Literal: ">", Pos: pos}
	case ';':
		l.readChar()
		return token.Token{Type: token.SEMICOLON, Literal: ";", Pos: pos}
	case ':':
		l.readChar()
		return token.Token{Type: token.COLON, Literal: ":", Pos: pos}
	case ',':
		l.readChar()
		return token.Token{Type: token.COMMA, Literal: ",", Pos: pos}
	case '(':
		l.readChar()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: pos}
	case ')':
		l.readChar()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: pos}
	case '{':
		l.readChar()
		return token.Token{Type: token.LBRACE, Literal: "{", Pos: pos}
	case '}':
		l.readChar()
		return token.Token{Type: token.RBRACE, Literal: "}", Pos: pos}
	case '[':
		l.readChar()
		return token.Token{Type: token.LBRACKET, Literal: "[", Pos: pos}
	case ']':
		l.readChar()
		return token.Token{Type: token.RBRACKET, Literal: "]", Pos: pos}
	case '"':
		lit, ok := l.readString()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Literal: "unterminated string", Pos: pos}
		}
		tok = token.Token{Type: token.STRING, Literal: lit, Pos: pos}
		l.readChar()
		return tok
	case 0:
		return token.Token{Type: token.EOF, Literal: "", Pos: pos}
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(literal), Literal: literal, Pos: pos}
		}
		if isDigit(l.ch) {
			return token.Token{Type: token.INT, Literal: l.readNumber(), Pos: pos}
		}
		tok = token.Token{Type: token.ILLEGAL, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok
	}
}

// TokenizeAll scans the entire input and returns every token, including the
// trailing EOF token. Used by the `--tokens` CLI mode.
func (l *Lexer) TokenizeAll() []token.Token {
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// readNumber reads a number from the input and returns it as a string.
func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readIdentifier reads an identifier from the input and returns it as a string.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// skipWhitespace skips any whitespace characters and "//" line comments.
func (l *Lexer) skipWhitespace() {
	for {
		if l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
			continue
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		break
	}
}

// readString reads a string from the input and returns the unescaped content and
// a boolean indicating whether the string was properly terminated (closed by a quote).
func (l *Lexer) readString() (string, bool) {
	var b strings.Builder

	l.readChar()

	for {
		if l.ch == '"' {
			return b.String(), true
		}

		if l.ch == 0 {
			return b.String(), false
		}

		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return b.String(), false
			}
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(l.ch)
			}
		} else {
			b.WriteByte(l.ch)
		}

		l.readChar()
	}
}
