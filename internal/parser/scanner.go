package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"mapshim/internal/builtins"
)

// SolidityLexer splits source text into raw tokens; Scanner classifies them
var SolidityLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
		{Name: "Comment", Pattern: `//[^\n]*`, Action: nil},
		{Name: "BlockComment", Pattern: `(?s)/\*.*?\*/`, Action: nil},

		// Hex strings must win over the identifier "hex"
		{Name: "HexString", Pattern: `hex"[0-9a-fA-F_]*"|hex'[0-9a-fA-F_]*'`, Action: nil},
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`, Action: nil},
		{Name: "Number", Pattern: `0[xX][0-9a-fA-F_]+|([0-9][0-9_]*(\.[0-9][0-9_]*)?|\.[0-9][0-9_]*)([eE]-?[0-9][0-9_]*)?`, Action: nil},
		{Name: "String", Pattern: `"(\\.|[^"\\\n])*"|'(\\.|[^'\\\n])*'`, Action: nil},

		// Longest operators first
		{Name: "Operator", Pattern: `<<=|>>=|\*\*|=>|\+\+|--|&&|\|\||==|!=|<=|>=|<<|>>|\+=|-=|\*=|/=|%=|\|=|&=|\^=|[-+*/%=<>!~&|^?:]`, Action: nil},
		{Name: "Punctuation", Pattern: `[{}()\[\];,.]`, Action: nil},

		{Name: "Invalid", Pattern: `.`, Action: nil},
	},
})

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

type Scanner struct {
	filename string
	source   string
	tokens   []Token
	errors   []ScanError
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// NewFileScanner creates a scanner whose tokens carry the file name
func NewFileScanner(filename, source string) *Scanner {
	return &Scanner{filename: filename, source: source}
}

func (s *Scanner) Errors() []ScanError {
	return s.errors
}

func (s *Scanner) ScanTokens() []Token {
	symbolNames := SolidityLexer.Symbols()
	names := make(map[lexer.TokenType]string, len(symbolNames))
	for name, tt := range symbolNames {
		names[tt] = name
	}

	lex, err := SolidityLexer.Lex(s.filename, strings.NewReader(s.source))
	if err != nil {
		s.errors = append(s.errors, ScanError{Message: err.Error()})
		return []Token{{Type: EOF}}
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		s.errors = append(s.errors, ScanError{Message: err.Error()})
	}

	var end Position
	for _, tok := range raw {
		pos := Position{Line: tok.Pos.Line, Column: tok.Pos.Column, Offset: tok.Pos.Offset}
		end = Position{Line: tok.Pos.Line, Column: tok.Pos.Column + len(tok.Value), Offset: tok.Pos.Offset + len(tok.Value)}

		if tok.EOF() {
			end = pos
			break
		}

		switch names[tok.Type] {
		case "Whitespace", "Comment", "BlockComment":
			// skipped
		case "Ident":
			s.addToken(s.classifyWord(tok.Value), tok.Value, pos)
		case "Number":
			s.addToken(NUMBER, tok.Value, pos)
		case "String":
			s.addToken(STRING, tok.Value, pos)
		case "HexString":
			s.addToken(HEX_STRING, tok.Value, pos)
		case "Operator", "Punctuation":
			s.addToken(symbols[tok.Value], tok.Value, pos)
		default:
			message := fmt.Sprintf("unexpected character %q", tok.Value)
			if tok.Value == `"` || tok.Value == "'" {
				message = "unterminated string literal"
			}
			s.errors = append(s.errors, ScanError{
				Message:  message,
				Position: pos,
				Length:   len(tok.Value),
			})
		}
	}

	s.tokens = append(s.tokens, Token{Type: EOF, Position: end})
	return s.tokens
}

func (s *Scanner) classifyWord(word string) TokenType {
	if tt, ok := KEYWORDS[word]; ok {
		return tt
	}
	if builtins.IsBuiltinType(word) {
		return ELEMENTARY
	}
	return IDENTIFIER
}

func (s *Scanner) addToken(tt TokenType, lexeme string, pos Position) {
	s.tokens = append(s.tokens, Token{Type: tt, Lexeme: lexeme, Position: pos})
}
