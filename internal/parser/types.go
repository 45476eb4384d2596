package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	ELEMENTARY // elementary type names such as uint256, address, string
	NUMBER
	STRING
	HEX_STRING

	// Keywords
	PRAGMA
	IMPORT
	ABSTRACT
	CONTRACT
	INTERFACE
	LIBRARY
	IS
	STRUCT
	ENUM
	EVENT
	MODIFIER
	FUNCTION
	CONSTRUCTOR
	FALLBACK
	RECEIVE
	RETURNS
	RETURN
	MAPPING
	USING
	FOR
	IF
	ELSE
	WHILE
	DO
	BREAK
	CONTINUE
	EMIT
	NEW
	DELETE
	TRUE
	FALSE
	UNCHECKED
	PUBLIC
	PRIVATE
	INTERNAL
	EXTERNAL
	PURE
	VIEW
	PAYABLE
	CONSTANT
	IMMUTABLE
	VIRTUAL
	OVERRIDE
	MEMORY
	STORAGE
	CALLDATA
	INDEXED
	ANONYMOUS

	// Operators
	PLUS
	INCREMENT
	MINUS
	DECREMENT
	STAR
	STAR_STAR
	SLASH
	PERCENT
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	ARROW // =>
	LESS
	LESS_EQUAL
	LESS_LESS
	GREATER
	GREATER_EQUAL
	GREATER_GREATER
	AND
	AMPERSAND
	OR
	PIPE
	CARET
	TILDE
	QUESTION

	// Assignment operators
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL
	PIPE_EQUAL
	AMPERSAND_EQUAL
	CARET_EQUAL
	LESS_LESS_EQUAL
	GREATER_GREATER_EQUAL

	// Separators
	COMMA
	DOT
	SEMICOLON
	COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
)

var tokenTypeNames = map[TokenType]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	IDENTIFIER: "IDENTIFIER",
	ELEMENTARY: "ELEMENTARY",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	HEX_STRING: "HEX_STRING",
}

func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	for lexeme, tt := range KEYWORDS {
		if tt == t {
			return lexeme
		}
	}
	for lexeme, tt := range symbols {
		if tt == t {
			return "'" + lexeme + "'"
		}
	}
	return "TokenType(?)"
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
