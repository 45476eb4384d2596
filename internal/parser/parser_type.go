package parser

import "mapshim/internal/ast"

// parseTypeName parses elementary, user-defined, mapping and array type names
func (p *Parser) parseTypeName() ast.TypeName {
	var typ ast.TypeName

	switch {
	case p.check(MAPPING):
		typ = p.parseMappingType()
	case p.check(ELEMENTARY):
		typ = p.parseElementaryType()
	case p.check(IDENTIFIER):
		path, first, last := p.parseIdentifierPath()
		typ = &ast.UserDefinedTypeName{
			Pos:    p.makePos(first),
			EndPos: p.makeEndPos(last),
			Path:   path,
		}
	default:
		tok := p.peek()
		p.errorAtCurrent("expected type name")
		if !p.isAtEnd() {
			p.advance()
		}
		return &ast.UserDefinedTypeName{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Path:   "error",
		}
	}

	for p.check(LEFT_BRACKET) {
		p.advance()
		var length ast.Expr
		if !p.check(RIGHT_BRACKET) {
			length = p.parseExpr()
		}
		end := p.consume(RIGHT_BRACKET, "expected ']' in array type")
		typ = &ast.ArrayTypeName{
			Pos:    typ.NodePos(),
			EndPos: p.makeEndPos(end),
			Base:   typ,
			Length: length,
		}
	}

	return typ
}

func (p *Parser) parseElementaryType() *ast.ElementaryTypeName {
	tok := p.consume(ELEMENTARY, "expected elementary type name")
	typ := &ast.ElementaryTypeName{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Name:   tok.Lexeme,
	}
	if tok.Lexeme == "address" && p.check(PAYABLE) {
		end := p.advance()
		typ.Payable = true
		typ.EndPos = p.makeEndPos(end)
	}
	return typ
}

// parseMappingType parses "mapping(K => V)"; optional key and value names
// are accepted and dropped
func (p *Parser) parseMappingType() *ast.MappingTypeName {
	start := p.consume(MAPPING, "expected 'mapping'")
	p.consume(LEFT_PAREN, "expected '(' after 'mapping'")

	var key ast.TypeName
	if p.check(ELEMENTARY) {
		key = p.parseElementaryType()
	} else {
		path, first, last := p.parseIdentifierPath()
		key = &ast.UserDefinedTypeName{
			Pos:    p.makePos(first),
			EndPos: p.makeEndPos(last),
			Path:   path,
		}
	}
	p.match(IDENTIFIER)

	p.consume(ARROW, "expected '=>' in mapping type")
	value := p.parseTypeName()
	p.match(IDENTIFIER)

	end := p.consume(RIGHT_PAREN, "expected ')' to close mapping type")
	return &ast.MappingTypeName{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(end),
		Key:    key,
		Value:  value,
	}
}

// speculate runs f and rolls the parser back when f fails or reports errors
func (p *Parser) speculate(f func() bool) bool {
	saved, savedErrs := p.current, len(p.errors)
	if f() && len(p.errors) == savedErrs {
		return true
	}
	p.current = saved
	p.errors = p.errors[:savedErrs]
	return false
}

// startsTypeName reports whether the current token can begin a type name
func (p *Parser) startsTypeName() bool {
	return p.check(MAPPING) || p.check(ELEMENTARY) || p.check(IDENTIFIER)
}
