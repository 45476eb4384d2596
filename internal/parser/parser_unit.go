package parser

import "mapshim/internal/ast"

// ParseSourceUnit parses a whole file
func (p *Parser) ParseSourceUnit() *ast.SourceUnit {
	unit := &ast.SourceUnit{
		Pos:  ast.Position{Filename: p.filename, Line: 1, Column: 1},
		Path: p.filename,
	}

	for !p.isAtEnd() {
		item := p.parseSourceUnitItem()
		if item != nil {
			unit.Items = append(unit.Items, item)
		}
	}

	unit.EndPos = p.makePos(p.peek())
	return unit
}

func (p *Parser) parseSourceUnitItem() ast.SourceUnitItem {
	switch p.peek().Type {
	case PRAGMA:
		start := p.advance()
		p.synchronizeUntil(SEMICOLON)
		end := p.consume(SEMICOLON, "expected ';' after pragma")
		return &ast.PragmaDirective{
			Pos:    p.makePos(start),
			EndPos: p.makeEndPos(end),
			Text:   p.sourceBetween(start, end),
		}
	case IMPORT:
		start := p.advance()
		p.synchronizeUntil(SEMICOLON)
		end := p.consume(SEMICOLON, "expected ';' after import")
		return &ast.ImportDirective{
			Pos:    p.makePos(start),
			EndPos: p.makeEndPos(end),
			Text:   p.sourceBetween(start, end),
		}
	case ABSTRACT, CONTRACT, INTERFACE, LIBRARY:
		if c := p.parseContract(); c != nil {
			return c
		}
		return nil
	case STRUCT:
		if s := p.parseStruct(); s != nil {
			return s
		}
		return nil
	case ENUM:
		if e := p.parseEnum(); e != nil {
			return e
		}
		return nil
	case IDENTIFIER:
		if p.isErrorDefinition() {
			return p.parseErrorDef()
		}
	}

	p.errorAtCurrent("expected pragma, import, contract, struct, enum or error definition")
	p.synchronize()
	return nil
}

func (p *Parser) parseContract() *ast.ContractDef {
	startToken := p.peek()
	kind := ast.ContractKindContract
	switch {
	case p.match(ABSTRACT):
		p.consume(CONTRACT, "expected 'contract' after 'abstract'")
		kind = ast.ContractKindAbstract
	case p.match(INTERFACE):
		kind = ast.ContractKindInterface
	case p.match(LIBRARY):
		kind = ast.ContractKindLibrary
	default:
		p.consume(CONTRACT, "expected 'contract'")
	}

	name, ok := p.consumeIdent("expected contract name")
	if !ok {
		p.synchronize()
		return nil
	}

	contract := &ast.ContractDef{
		Pos:  p.makePos(startToken),
		Kind: kind,
		Name: name,
	}

	if p.match(IS) {
		for {
			contract.Bases = append(contract.Bases, p.parseInheritanceSpecifier())
			if !p.match(COMMA) {
				break
			}
		}
	}

	p.consume(LEFT_BRACE, "expected '{' to start contract body")
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		item := p.parseContractItem()
		if item != nil {
			contract.Items = append(contract.Items, item)
		}
	}
	end := p.consume(RIGHT_BRACE, "expected '}' to close contract body")
	contract.EndPos = p.makeEndPos(end)

	return contract
}

func (p *Parser) parseInheritanceSpecifier() *ast.InheritanceSpecifier {
	path, first, last := p.parseIdentifierPath()
	spec := &ast.InheritanceSpecifier{
		Pos:    p.makePos(first),
		EndPos: p.makeEndPos(last),
		Name:   path,
	}
	if p.match(LEFT_PAREN) {
		spec.HasArgs = true
		spec.Args = p.parseExprList()
		end := p.consume(RIGHT_PAREN, "expected ')' after base arguments")
		spec.EndPos = p.makeEndPos(end)
	}
	return spec
}

func (p *Parser) parseContractItem() ast.ContractItem {
	switch p.peek().Type {
	case STRUCT:
		if s := p.parseStruct(); s != nil {
			return s
		}
		return nil
	case ENUM:
		if e := p.parseEnum(); e != nil {
			return e
		}
		return nil
	case EVENT:
		return p.parseEvent()
	case MODIFIER:
		return p.parseModifier()
	case FUNCTION, CONSTRUCTOR, FALLBACK, RECEIVE:
		if fn := p.parseFunction(); fn != nil {
			return fn
		}
		return nil
	case USING:
		return p.parseUsingFor()
	case IDENTIFIER:
		if p.isErrorDefinition() {
			return p.parseErrorDef()
		}
	}

	if p.startsTypeName() {
		return p.parseStateVariable()
	}

	p.errorAtCurrent("expected contract member")
	p.synchronize()
	return nil
}

// isErrorDefinition recognizes "error Name(" where error is a contextual keyword
func (p *Parser) isErrorDefinition() bool {
	return p.peek().Lexeme == "error" && p.checkAt(1, IDENTIFIER) && p.checkAt(2, LEFT_PAREN)
}

func (p *Parser) parseStateVariable() *ast.VariableDecl {
	typ := p.parseTypeName()
	decl := &ast.VariableDecl{
		Pos:  typ.NodePos(),
		Kind: ast.VarKindState,
		Type: typ,
	}

	for {
		switch {
		case p.match(PUBLIC, PRIVATE, INTERNAL):
			decl.Visibility = p.previous().Lexeme
			continue
		case p.match(CONSTANT):
			decl.Constant = true
			continue
		case p.match(IMMUTABLE):
			decl.Immutable = true
			continue
		case p.match(OVERRIDE):
			decl.Override = true
			p.skipOverrideList()
			continue
		}
		break
	}

	name, _ := p.consumeIdent("expected state variable name")
	decl.Name = name

	if p.match(EQUAL) {
		decl.Value = p.parseExpr()
	}
	end := p.consume(SEMICOLON, "expected ';' after state variable")
	decl.EndPos = p.makeEndPos(end)
	return decl
}

// skipOverrideList drops the base list of "override(A, B)"
func (p *Parser) skipOverrideList() {
	if !p.match(LEFT_PAREN) {
		return
	}
	p.synchronizeUntil(RIGHT_PAREN)
	p.consume(RIGHT_PAREN, "expected ')' after override list")
}

func (p *Parser) parseStruct() *ast.StructDef {
	startToken := p.consume(STRUCT, "expected 'struct' keyword")

	name, ok := p.consumeIdent("expected struct name")
	if !ok {
		p.synchronize()
		return nil
	}

	p.consume(LEFT_BRACE, "expected '{' to start struct body")
	var members []*ast.VariableDecl
	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		typ := p.parseTypeName()
		fieldName, ok := p.consumeIdent("expected field name")
		if !ok {
			p.synchronize()
			continue
		}
		semi := p.consume(SEMICOLON, "expected ';' after struct field")
		members = append(members, &ast.VariableDecl{
			Pos:    typ.NodePos(),
			EndPos: p.makeEndPos(semi),
			Kind:   ast.VarKindMember,
			Type:   typ,
			Name:   fieldName,
		})
	}
	end := p.consume(RIGHT_BRACE, "expected '}' to close struct body")

	return &ast.StructDef{
		Pos:     p.makePos(startToken),
		EndPos:  p.makeEndPos(end),
		Name:    name,
		Members: members,
	}
}

func (p *Parser) parseEnum() *ast.EnumDef {
	startToken := p.consume(ENUM, "expected 'enum' keyword")

	name, ok := p.consumeIdent("expected enum name")
	if !ok {
		p.synchronize()
		return nil
	}

	p.consume(LEFT_BRACE, "expected '{' to start enum body")
	var values []ast.Ident
	if !p.check(RIGHT_BRACE) {
		values = p.parseIdentifierList()
	}
	end := p.consume(RIGHT_BRACE, "expected '}' to close enum body")

	return &ast.EnumDef{
		Pos:    p.makePos(startToken),
		EndPos: p.makeEndPos(end),
		Name:   name,
		Values: values,
	}
}

func (p *Parser) parseEvent() *ast.EventDef {
	startToken := p.consume(EVENT, "expected 'event' keyword")
	name, _ := p.consumeIdent("expected event name")
	params := p.parseParameterList(ast.VarKindEventParam)
	anonymous := p.match(ANONYMOUS)
	end := p.consume(SEMICOLON, "expected ';' after event")

	return &ast.EventDef{
		Pos:       p.makePos(startToken),
		EndPos:    p.makeEndPos(end),
		Name:      name,
		Params:    params,
		Anonymous: anonymous,
	}
}

func (p *Parser) parseErrorDef() *ast.ErrorDef {
	startToken := p.advance() // contextual "error"
	name, _ := p.consumeIdent("expected error name")
	params := p.parseParameterList(ast.VarKindParam)
	end := p.consume(SEMICOLON, "expected ';' after error definition")

	return &ast.ErrorDef{
		Pos:    p.makePos(startToken),
		EndPos: p.makeEndPos(end),
		Name:   name,
		Params: params,
	}
}

func (p *Parser) parseUsingFor() *ast.UsingForDirective {
	startToken := p.consume(USING, "expected 'using'")
	library, _, _ := p.parseIdentifierPath()
	p.consume(FOR, "expected 'for' in using directive")

	var typ ast.TypeName
	if !p.match(STAR) {
		typ = p.parseTypeName()
	}
	if p.check(IDENTIFIER) && p.peek().Lexeme == "global" {
		p.advance()
	}
	end := p.consume(SEMICOLON, "expected ';' after using directive")

	return &ast.UsingForDirective{
		Pos:     p.makePos(startToken),
		EndPos:  p.makeEndPos(end),
		Library: library,
		Type:    typ,
	}
}

func (p *Parser) parseModifier() *ast.ModifierDef {
	startToken := p.consume(MODIFIER, "expected 'modifier'")
	name, _ := p.consumeIdent("expected modifier name")

	mod := &ast.ModifierDef{
		Pos:  p.makePos(startToken),
		Name: name,
	}
	if p.check(LEFT_PAREN) {
		mod.Params = p.parseParameterList(ast.VarKindParam)
	}
	for {
		if p.match(VIRTUAL) {
			mod.Virtual = true
		} else if p.match(OVERRIDE) {
			mod.Override = true
			p.skipOverrideList()
		} else {
			break
		}
	}

	if p.check(SEMICOLON) {
		mod.EndPos = p.makeEndPos(p.advance())
		return mod
	}
	mod.Body = p.parseBlock()
	mod.EndPos = mod.Body.EndPos
	return mod
}

func (p *Parser) parseFunction() *ast.FunctionDef {
	startToken := p.advance()
	fn := &ast.FunctionDef{Pos: p.makePos(startToken)}

	switch startToken.Type {
	case CONSTRUCTOR:
		fn.Kind = ast.FunctionKindConstructor
	case FALLBACK:
		fn.Kind = ast.FunctionKindFallback
	case RECEIVE:
		fn.Kind = ast.FunctionKindReceive
	default:
		fn.Kind = ast.FunctionKindFunction
		if !p.check(LEFT_PAREN) {
			name, ok := p.consumeIdent("expected function name")
			if !ok {
				p.synchronize()
				return nil
			}
			fn.Name = name
		}
	}

	fn.Params = p.parseParameterList(ast.VarKindParam)

	for !p.check(LEFT_BRACE) && !p.check(SEMICOLON) && !p.isAtEnd() {
		switch {
		case p.match(PUBLIC, PRIVATE, INTERNAL, EXTERNAL):
			fn.Visibility = p.previous().Lexeme
		case p.match(PURE, VIEW, PAYABLE):
			fn.Mutability = p.previous().Lexeme
		case p.match(VIRTUAL):
			fn.Virtual = true
		case p.match(OVERRIDE):
			fn.Override = true
			p.skipOverrideList()
		case p.match(RETURNS):
			fn.Returns = p.parseParameterList(ast.VarKindReturn)
		case p.check(IDENTIFIER):
			fn.Modifiers = append(fn.Modifiers, p.parseModifierInvocation())
		default:
			p.errorAtCurrent("unexpected token in function header")
			p.synchronize()
			return nil
		}
	}

	if p.check(SEMICOLON) {
		fn.EndPos = p.makeEndPos(p.advance())
		return fn
	}
	fn.Body = p.parseBlock()
	fn.EndPos = fn.Body.EndPos
	return fn
}

func (p *Parser) parseModifierInvocation() *ast.ModifierInvocation {
	path, first, last := p.parseIdentifierPath()
	mi := &ast.ModifierInvocation{
		Pos:    p.makePos(first),
		EndPos: p.makeEndPos(last),
		Name:   path,
	}
	if p.match(LEFT_PAREN) {
		mi.HasArgs = true
		mi.Args = p.parseExprList()
		end := p.consume(RIGHT_PAREN, "expected ')' after modifier arguments")
		mi.EndPos = p.makeEndPos(end)
	}
	return mi
}

// parseParameterList parses "(T [indexed] [location] [name], ...)"
func (p *Parser) parseParameterList(kind ast.VarKind) []*ast.VariableDecl {
	p.consume(LEFT_PAREN, "expected '(' to start parameter list")
	var params []*ast.VariableDecl

	for !p.check(RIGHT_PAREN) && !p.isAtEnd() {
		typ := p.parseTypeName()
		param := &ast.VariableDecl{
			Pos:    typ.NodePos(),
			EndPos: typ.NodeEndPos(),
			Kind:   kind,
			Type:   typ,
		}
		if p.match(INDEXED) {
			param.Indexed = true
			param.EndPos = p.makeEndPos(p.previous())
		}
		if isDataLocation(p.peek().Type) {
			tok := p.advance()
			param.Location = tok.Lexeme
			param.EndPos = p.makeEndPos(tok)
		}
		if p.check(IDENTIFIER) {
			tok := p.advance()
			param.Name = p.makeIdent(tok)
			param.EndPos = param.Name.EndPos
		}
		params = append(params, param)

		if !p.match(COMMA) {
			break
		}
	}

	p.consume(RIGHT_PAREN, "expected ')' after parameter list")
	return params
}
