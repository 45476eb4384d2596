package parser

import (
	"strings"

	"mapshim/internal/ast"
)

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tt TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tt
}

// checkAt looks ahead n tokens past the current one
func (p *Parser) checkAt(n int, tt TokenType) bool {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return false
	}
	return p.tokens[idx].Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, message string) Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorAtCurrent(message)
	illegal := Token{Type: ILLEGAL, Position: p.peek().Position}
	if !p.isAtEnd() {
		p.advance()
	}
	return illegal
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *Parser) errorAtCurrent(message string) {
	tok := p.peek()
	if tok.Type != EOF && tok.Lexeme != "" {
		message += ", found '" + tok.Lexeme + "'"
	}
	p.errors = append(p.errors, ParseError{
		Message:  message,
		Position: tok.Position,
	})
}

func (p *Parser) makePos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset,
		Line:     tok.Position.Line,
		Column:   tok.Position.Column,
	}
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Position.Offset + len(tok.Lexeme),
		Line:     tok.Position.Line,
		Column:   tok.Position.Column + len(tok.Lexeme),
	}
}

// synchronize skips to the next statement or declaration boundary
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == SEMICOLON || p.previous().Type == RIGHT_BRACE {
			return
		}

		switch p.peek().Type {
		case FUNCTION, CONTRACT, LIBRARY, INTERFACE, STRUCT, ENUM, EVENT, MODIFIER,
			CONSTRUCTOR, IF, FOR, WHILE, RETURN, EMIT:
			return
		}

		p.advance()
	}
}

func (p *Parser) synchronizeUntil(stopTokens ...TokenType) {
	stop := make(map[TokenType]struct{})
	for _, t := range stopTokens {
		stop[t] = struct{}{}
	}

	for !p.isAtEnd() {
		if _, ok := stop[p.peek().Type]; ok {
			return
		}
		p.advance()
	}
}

// sourceBetween returns the trimmed source text between two tokens
func (p *Parser) sourceBetween(from, to Token) string {
	start := from.Position.Offset + len(from.Lexeme)
	end := to.Position.Offset
	if p.source == "" || start > end || end > len(p.source) {
		return ""
	}
	return strings.TrimSpace(p.source[start:end])
}

// Helper functions to reduce repetitive AST node creation

// makeIdent creates an ast.Ident from a token
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  tok.Lexeme,
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(message string) (ast.Ident, bool) {
	tok := p.consume(IDENTIFIER, message)
	if tok.Type == ILLEGAL {
		return ast.Ident{Value: "error"}, false
	}
	return p.makeIdent(tok), true
}

// parseIdentifierPath parses a dotted name such as "Token.Account"
func (p *Parser) parseIdentifierPath() (string, Token, Token) {
	first := p.consume(IDENTIFIER, "expected identifier")
	last := first
	parts := []string{first.Lexeme}
	for p.check(DOT) && p.checkAt(1, IDENTIFIER) {
		p.advance()
		last = p.advance()
		parts = append(parts, last.Lexeme)
	}
	return strings.Join(parts, "."), first, last
}

// parseIdentifierList parses a comma-separated list of identifiers
func (p *Parser) parseIdentifierList() []ast.Ident {
	var idents []ast.Ident

	for !p.isAtEnd() {
		ident, ok := p.consumeIdent("expected identifier")
		if !ok {
			break
		}
		idents = append(idents, ident)

		if !p.match(COMMA) {
			break
		}
	}

	return idents
}

// isMemberName reports whether a token may name a member after '.'
func isMemberName(tt TokenType) bool {
	if tt == IDENTIFIER || tt == ELEMENTARY {
		return true
	}
	for _, kw := range KEYWORDS {
		if kw == tt {
			return true
		}
	}
	return false
}

func isAssignOperator(tok Token) bool {
	switch tok.Type {
	case EQUAL, PLUS_EQUAL, MINUS_EQUAL, STAR_EQUAL, SLASH_EQUAL, PERCENT_EQUAL,
		PIPE_EQUAL, AMPERSAND_EQUAL, CARET_EQUAL, LESS_LESS_EQUAL, GREATER_GREATER_EQUAL:
		return true
	}
	return false
}

func isDataLocation(tt TokenType) bool {
	return tt == MEMORY || tt == STORAGE || tt == CALLDATA
}
