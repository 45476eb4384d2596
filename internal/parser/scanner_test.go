package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "contract library mapping function returns unchecked delete emit storage customIdent"
	expected := []TokenType{
		CONTRACT, LIBRARY, MAPPING, FUNCTION, RETURNS, UNCHECKED,
		DELETE, EMIT, STORAGE, IDENTIFIER,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Type)
		}
	}
}

func TestElementaryTypeNames(t *testing.T) {
	tokens := NewScanner("uint uint8 int256 address bool bytes bytes32 string byte uint7").ScanTokens()

	for i := 0; i < 9; i++ {
		assert.Equal(t, ELEMENTARY, tokens[i].Type, "token %q", tokens[i].Lexeme)
	}
	assert.Equal(t, IDENTIFIER, tokens[9].Type, "uint7 is not an elementary type")
}

func TestNumbers(t *testing.T) {
	input := "42 0 1_000 0x1F 1e18 2.5 .5"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	require.Empty(t, scanner.Errors())
	require.Len(t, tokens, 8)
	for i, lexeme := range []string{"42", "0", "1_000", "0x1F", "1e18", "2.5", ".5"} {
		assert.Equal(t, NUMBER, tokens[i].Type)
		assert.Equal(t, lexeme, tokens[i].Lexeme)
	}
}

func TestStrings(t *testing.T) {
	input := `"hello" 'world' "esc\"aped" hex"00ff"`
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	require.Empty(t, scanner.Errors())
	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, `"hello"`, tokens[0].Lexeme)
	assert.Equal(t, STRING, tokens[1].Type)
	assert.Equal(t, `'world'`, tokens[1].Lexeme)
	assert.Equal(t, `"esc\"aped"`, tokens[2].Lexeme)
	assert.Equal(t, HEX_STRING, tokens[3].Type)
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `( ) { } [ ] , . ; : ? => ++ -- += -= *= /= %= |= &= ^= <<= >>= ** << >> && || == != <= >= < > ! ~ & | ^ = + - * / %`
	expected := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, LEFT_BRACKET, RIGHT_BRACKET,
		COMMA, DOT, SEMICOLON, COLON, QUESTION, ARROW, INCREMENT, DECREMENT,
		PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL, PERCENT_EQUAL, PIPE_EQUAL,
		AMPERSAND_EQUAL, CARET_EQUAL, LESS_LESS_EQUAL, GREATER_GREATER_EQUAL,
		STAR_STAR, LESS_LESS, GREATER_GREATER, AND, OR, EQUAL_EQUAL, BANG_EQUAL,
		LESS_EQUAL, GREATER_EQUAL, LESS, GREATER, BANG, TILDE, AMPERSAND, PIPE, CARET,
		EQUAL, PLUS, MINUS, STAR, SLASH, PERCENT, EOF,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	require.Empty(t, scanner.Errors())
	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s (%q)", i, exp, tokens[i].Type, tokens[i].Lexeme)
		}
	}
}

func TestAdjacentOperators(t *testing.T) {
	tokens := NewScanner("x[k]++;").ScanTokens()

	types := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{IDENTIFIER, LEFT_BRACKET, IDENTIFIER, RIGHT_BRACKET, INCREMENT, SEMICOLON, EOF}, types)
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "a // line comment\n/* block\ncomment */ b"
	tokens := NewScanner(input).ScanTokens()

	require.Len(t, tokens, 3)
	assert.Equal(t, "a", tokens[0].Lexeme)
	assert.Equal(t, "b", tokens[1].Lexeme)
	assert.Equal(t, 3, tokens[1].Position.Line)
	assert.Equal(t, 12, tokens[1].Position.Column)
}

func TestPositions(t *testing.T) {
	tokens := NewScanner("contract C {\n    uint x;\n}").ScanTokens()

	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Position)
	assert.Equal(t, Position{Line: 2, Column: 5, Offset: 17}, tokens[3].Position)
	assert.Equal(t, "uint", tokens[3].Lexeme)
}

func TestInvalidCharacter(t *testing.T) {
	scanner := NewScanner("uint x = 1 # 2;")
	tokens := scanner.ScanTokens()

	require.Len(t, scanner.Errors(), 1)
	assert.Contains(t, scanner.Errors()[0].Message, "unexpected character")
	assert.Equal(t, 12, scanner.Errors()[0].Position.Column)
	assert.Equal(t, EOF, tokens[len(tokens)-1].Type)
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "IDENTIFIER", IDENTIFIER.String())
	assert.Equal(t, "mapping", MAPPING.String())
	assert.Equal(t, "'+='", PLUS_EQUAL.String())
}
