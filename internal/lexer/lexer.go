package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/funssa/internal/token"
)

const tabWidth = 4

// Lexer turns indentation-structured source into tokens. Leading whitespace
// becomes INDENT/DEDENT pairs; newlines inside parentheses are ignored.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	indents     []int
	parenDepth  int
	atLineStart bool
	pending     []token.Token
	last        token.TokenType
	done        bool
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, indents: []int{0}, atLineStart: true, last: token.NEWLINE}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// Tokenize runs the lexer to EOF.
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF {
			return out
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	tok := l.nextToken()
	l.last = tok.Type
	return tok
}

func (l *Lexer) nextToken() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	if l.done {
		return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
	}

	if l.atLineStart && l.parenDepth == 0 {
		if tok, ok := l.readIndentation(); ok {
			return tok
		}
	}

	l.skipWhitespace()

	switch l.ch {
	case 0:
		return l.finish()
	case '\n':
		line, col := l.line, l.column
		l.readChar()
		if l.parenDepth > 0 {
			return l.nextToken()
		}
		l.atLineStart = true
		return token.Token{Type: token.NEWLINE, Lexeme: "\n", Line: line, Column: col}
	case '"', '\'':
		return l.readString()
	}

	line, col := l.line, l.column
	two := string(l.ch) + string(l.peekChar())
	switch two {
	case "==", "!=", "<=", ">=", "//":
		l.readChar()
		l.readChar()
		return token.Token{Type: token.TokenType(two), Lexeme: two, Literal: two, Line: line, Column: col}
	}

	switch l.ch {
	case '=', '+', '-', '*', '/', '%', '<', '>', ',', ':', '.':
		ch := string(l.ch)
		l.readChar()
		return token.Token{Type: token.TokenType(ch), Lexeme: ch, Literal: ch, Line: line, Column: col}
	case '(':
		l.parenDepth++
		l.readChar()
		return token.Token{Type: token.LPAREN, Lexeme: "(", Literal: "(", Line: line, Column: col}
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		l.readChar()
		return token.Token{Type: token.RPAREN, Lexeme: ")", Literal: ")", Line: line, Column: col}
	}

	if isLetter(l.ch) {
		ident := l.readIdentifier()
		return token.Token{Type: token.LookupIdent(ident), Lexeme: ident, Literal: ident, Line: line, Column: col}
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}

	ch := string(l.ch)
	l.readChar()
	return token.Token{Type: token.ILLEGAL, Lexeme: ch, Literal: "unexpected character " + strconv.Quote(ch), Line: line, Column: col}
}

// readIndentation measures the indentation of a new logical line. Blank and
// comment-only lines are skipped entirely.
func (l *Lexer) readIndentation() (token.Token, bool) {
	for {
		width := 0
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				width += tabWidth - width%tabWidth
			} else {
				width++
			}
			l.readChar()
		}
		if l.ch == '#' {
			l.skipComment()
		}
		if l.ch == '\r' {
			l.readChar()
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.ch == 0 {
			return token.Token{}, false
		}

		l.atLineStart = false
		line := l.line
		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			return token.Token{Type: token.INDENT, Line: line, Column: 1}, true
		case width < top:
			for width < l.indents[len(l.indents)-1] {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: line, Column: 1})
			}
			if width != l.indents[len(l.indents)-1] {
				l.pending = append(l.pending, token.Token{
					Type: token.ILLEGAL, Line: line, Column: width + 1,
					Literal: "unindent does not match any outer indentation level",
				})
			}
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok, true
		}
		return token.Token{}, false
	}
}

// finish closes the last logical line and every open block.
func (l *Lexer) finish() token.Token {
	l.done = true
	if l.last != token.NEWLINE && l.last != token.INDENT && l.last != token.DEDENT {
		l.pending = append(l.pending, token.Token{Type: token.NEWLINE, Lexeme: "\n", Line: l.line, Column: l.column})
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, token.Token{Type: token.DEDENT, Line: l.line, Column: l.column})
	}
	l.pending = append(l.pending, token.Token{Type: token.EOF, Line: l.line, Column: l.column})
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '#':
			l.skipComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() token.Token {
	line, col := l.line, l.column
	position := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	lexeme := l.input[position:l.position]
	value, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return token.Token{Type: token.ILLEGAL, Lexeme: lexeme, Literal: "integer literal out of range", Line: line, Column: col}
	}
	return token.Token{Type: token.INT, Lexeme: lexeme, Literal: value, Line: line, Column: col}
}

func (l *Lexer) readString() token.Token {
	line, col := l.line, l.column
	quote := l.ch
	start := l.position
	var sb strings.Builder
	l.readChar()
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return token.Token{Type: token.ILLEGAL, Lexeme: l.input[start:l.position], Literal: "unterminated string literal", Line: line, Column: col}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\', '\'', '"':
				sb.WriteRune(l.ch)
			default:
				sb.WriteRune('\\')
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar()
	return token.Token{Type: token.STRING, Lexeme: l.input[start:l.position], Literal: sb.String(), Line: line, Column: col}
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
