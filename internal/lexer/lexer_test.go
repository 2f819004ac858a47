package lexer

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/funvibe/funssa/internal/token"
)

func types(toks []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{
			name:  "function",
			input: "def f(x):\n    return x\n",
			want: []token.TokenType{
				token.DEF, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.COLON, token.NEWLINE,
				token.INDENT, token.RETURN, token.IDENT, token.NEWLINE,
				token.DEDENT, token.EOF,
			},
		},
		{
			name:  "newlines inside parentheses",
			input: "x = (1,\n     2)\n",
			want: []token.TokenType{
				token.IDENT, token.ASSIGN, token.LPAREN, token.INT, token.COMMA, token.INT, token.RPAREN, token.NEWLINE, token.EOF,
			},
		},
		{
			name:  "comments and blank lines",
			input: "x = 1  # one\n\n# only a comment\ny = 2",
			want: []token.TokenType{
				token.IDENT, token.ASSIGN, token.INT, token.NEWLINE,
				token.IDENT, token.ASSIGN, token.INT, token.NEWLINE, token.EOF,
			},
		},
		{
			name:  "nested blocks close at eof",
			input: "if a:\n    if b:\n        pass",
			want: []token.TokenType{
				token.IF, token.IDENT, token.COLON, token.NEWLINE,
				token.INDENT, token.IF, token.IDENT, token.COLON, token.NEWLINE,
				token.INDENT, token.PASS, token.NEWLINE,
				token.DEDENT, token.DEDENT, token.EOF,
			},
		},
		{
			name:  "operators",
			input: "a // b <= c != d and not e",
			want: []token.TokenType{
				token.IDENT, token.SLASH_SLASH, token.IDENT, token.LTE, token.IDENT, token.NOT_EQ, token.IDENT,
				token.AND, token.NOT, token.IDENT, token.NEWLINE, token.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, types(New(tt.input).Tokenize()), tt.want)
		})
	}
}

func TestLiterals(t *testing.T) {
	toks := New(`x = 'a\'b' + "c\n" + 42`).Tokenize()
	assert.Equal(t, toks[2].Type, token.STRING)
	assert.Equal(t, toks[2].Literal, "a'b")
	assert.Equal(t, toks[4].Literal, "c\n")
	assert.Equal(t, toks[6].Type, token.INT)
	assert.Equal(t, toks[6].Literal, int64(42))
}

func TestPositions(t *testing.T) {
	toks := New("def f(x):\n    return x\n").Tokenize()
	ret := toks[8]
	assert.Equal(t, ret.Type, token.RETURN)
	assert.Equal(t, ret.Line, 2)
	assert.Equal(t, ret.Column, 5)
}

func TestIllegal(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"x = $", "unexpected character"},
		{"x = 'open\n", "unterminated string literal"},
		{"if a:\n    b = 1\n  c = 2\n", "unindent does not match"},
		{"x = 99999999999999999999", "out of range"},
	}
	for _, tt := range tests {
		var found bool
		for _, tok := range New(tt.input).Tokenize() {
			if tok.Type == token.ILLEGAL {
				found = true
				assert.Assert(t, is.Contains(tok.Literal.(string), tt.msg))
			}
		}
		assert.Assert(t, found, "no ILLEGAL token for %q", tt.input)
	}
}
