package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
	"monke/token"
)

func TestNextToken_Operators(t *testing.T) {
	input := `=+(){},;[]:`

	expected := []token.TokenType{
		token.ASSIGN, token.ADD, token.LPA, token.RPA, token.LCUR, token.RCUR,
		token.COMMA, token.SEMICOLON, token.LBRACKET, token.RBRACKET, token.COLON, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		require.Equalf(t, want, tok.TokenType, "token %d", i)
	}
}

func TestNextToken_Program(t *testing.T) {
	input := `
let five = 5;
let add = fn(x, y) {
  x + y;
};
let result = add(five, 10);
!-/*5;
5 < 10 > 5;

if (5 < 10) {
	return true;
} else {
	return false;
}

10 == 10;
10 != 9;
"foobar"
"foo bar"
[1, 2];
{"foo": "bar"}
`
	expected := []struct {
		tokenType token.TokenType
		lexeme    string
	}{
		{token.LET, "let"}, {token.IDENT, "five"}, {token.ASSIGN, "="}, {token.INT, "5"}, {token.SEMICOLON, ";"},
		{token.LET, "let"}, {token.IDENT, "add"}, {token.ASSIGN, "="}, {token.FUNC, "fn"}, {token.LPA, "("},
		{token.IDENT, "x"}, {token.COMMA, ","}, {token.IDENT, "y"}, {token.RPA, ")"}, {token.LCUR, "{"},
		{token.IDENT, "x"}, {token.ADD, "+"}, {token.IDENT, "y"}, {token.SEMICOLON, ";"}, {token.RCUR, "}"},
		{token.SEMICOLON, ";"},
		{token.LET, "let"}, {token.IDENT, "result"}, {token.ASSIGN, "="}, {token.IDENT, "add"}, {token.LPA, "("},
		{token.IDENT, "five"}, {token.COMMA, ","}, {token.INT, "10"}, {token.RPA, ")"}, {token.SEMICOLON, ";"},
		{token.BANG, "!"}, {token.SUB, "-"}, {token.DIV, "/"}, {token.MULT, "*"}, {token.INT, "5"}, {token.SEMICOLON, ";"},
		{token.INT, "5"}, {token.LESS, "<"}, {token.INT, "10"}, {token.LARGER, ">"}, {token.INT, "5"}, {token.SEMICOLON, ";"},
		{token.IF, "if"}, {token.LPA, "("}, {token.INT, "5"}, {token.LESS, "<"}, {token.INT, "10"}, {token.RPA, ")"},
		{token.LCUR, "{"}, {token.RETURN, "return"}, {token.TRUE, "true"}, {token.SEMICOLON, ";"}, {token.RCUR, "}"},
		{token.ELSE, "else"}, {token.LCUR, "{"}, {token.RETURN, "return"}, {token.FALSE, "false"}, {token.SEMICOLON, ";"}, {token.RCUR, "}"},
		{token.INT, "10"}, {token.EQUAL, "=="}, {token.INT, "10"}, {token.SEMICOLON, ";"},
		{token.INT, "10"}, {token.NOT_EQUAL, "!="}, {token.INT, "9"}, {token.SEMICOLON, ";"},
		{token.STRING, "foobar"},
		{token.STRING, "foo bar"},
		{token.LBRACKET, "["}, {token.INT, "1"}, {token.COMMA, ","}, {token.INT, "2"}, {token.RBRACKET, "]"}, {token.SEMICOLON, ";"},
		{token.LCUR, "{"}, {token.STRING, "foo"}, {token.COLON, ":"}, {token.STRING, "bar"}, {token.RCUR, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		require.Equalf(t, want.tokenType, tok.TokenType, "token %d lexeme %q", i, tok.Lexeme)
		require.Equalf(t, want.lexeme, tok.Lexeme, "token %d", i)
	}
}

func TestNextToken_IdentifiersHaveNoDigits(t *testing.T) {
	l := New("foo1")
	tok := l.NextToken()
	require.Equal(t, token.IDENT, tok.TokenType)
	require.Equal(t, "foo", tok.Lexeme)
	tok = l.NextToken()
	require.Equal(t, token.INT, tok.TokenType)
	require.Equal(t, "1", tok.Lexeme)
}

func TestNextToken_IllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	require.Equal(t, token.ILLEGAL, tok.TokenType)
	require.Equal(t, "@", tok.Lexeme)
}
