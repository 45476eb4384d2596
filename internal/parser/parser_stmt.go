package parser

import "mapshim/internal/ast"

func (p *Parser) parseBlock() *ast.Block {
	start := p.consume(LEFT_BRACE, "expected '{' to start block")
	block := &ast.Block{Pos: p.makePos(start)}

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}

	end := p.consume(RIGHT_BRACE, "expected '}' to close block")
	block.EndPos = p.makeEndPos(end)
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()

	switch tok.Type {
	case LEFT_BRACE:
		return p.parseBlock()
	case UNCHECKED:
		p.advance()
		block := p.parseBlock()
		block.Pos = p.makePos(tok)
		block.Unchecked = true
		return block
	case IF:
		return p.parseIfStmt()
	case FOR:
		return p.parseForStmt()
	case WHILE:
		return p.parseWhileStmt()
	case DO:
		return p.parseDoWhileStmt()
	case RETURN:
		return p.parseReturnStmt()
	case EMIT:
		p.advance()
		call := p.parseExpr()
		semi := p.consume(SEMICOLON, "expected ';' after emit")
		return &ast.EmitStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(semi), Call: call}
	case BREAK:
		p.advance()
		semi := p.consume(SEMICOLON, "expected ';' after break")
		return &ast.BreakStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(semi)}
	case CONTINUE:
		p.advance()
		semi := p.consume(SEMICOLON, "expected ';' after continue")
		return &ast.ContinueStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(semi)}
	case IDENTIFIER:
		if tok.Lexeme == "_" && p.checkAt(1, SEMICOLON) {
			p.advance()
			semi := p.advance()
			return &ast.PlaceholderStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(semi)}
		}
		if tok.Lexeme == "revert" && p.checkAt(1, IDENTIFIER) {
			p.advance()
			call := p.parseExpr()
			semi := p.consume(SEMICOLON, "expected ';' after revert")
			return &ast.RevertStmt{Pos: p.makePos(tok), EndPos: p.makeEndPos(semi), Call: call}
		}
	}

	if stmt := p.tryParseVarDeclStmt(); stmt != nil {
		return stmt
	}
	return p.parseExprStmt()
}

// tryParseVarDeclStmt parses a local declaration if one starts here and
// leaves the parser untouched otherwise
func (p *Parser) tryParseVarDeclStmt() *ast.VarDeclStmt {
	var stmt *ast.VarDeclStmt

	if p.check(LEFT_PAREN) {
		p.speculate(func() bool {
			stmt = p.parseTupleDeclHead()
			return stmt != nil
		})
	} else if p.startsTypeName() {
		p.speculate(func() bool {
			decl := p.parseLocalDecl()
			if decl == nil {
				return false
			}
			stmt = &ast.VarDeclStmt{Pos: decl.Pos, Decls: []*ast.VariableDecl{decl}}
			return true
		})
	}
	if stmt == nil {
		return nil
	}

	if p.match(EQUAL) {
		stmt.Value = p.parseExpr()
	} else if stmt.Tuple {
		p.errorAtCurrent("expected '=' after tuple declaration")
	}
	semi := p.consume(SEMICOLON, "expected ';' after variable declaration")
	stmt.EndPos = p.makeEndPos(semi)
	return stmt
}

// parseLocalDecl parses "T [location] name"; nil when no name follows the type
func (p *Parser) parseLocalDecl() *ast.VariableDecl {
	typ := p.parseTypeName()
	decl := &ast.VariableDecl{
		Pos:  typ.NodePos(),
		Kind: ast.VarKindLocal,
		Type: typ,
	}
	if isDataLocation(p.peek().Type) {
		decl.Location = p.advance().Lexeme
	}
	if !p.check(IDENTIFIER) {
		return nil
	}
	decl.Name = p.makeIdent(p.advance())
	decl.EndPos = decl.Name.EndPos
	return decl
}

// parseTupleDeclHead parses "(T a, , U b)" up to the closing parenthesis
func (p *Parser) parseTupleDeclHead() *ast.VarDeclStmt {
	start := p.consume(LEFT_PAREN, "expected '('")
	stmt := &ast.VarDeclStmt{Pos: p.makePos(start), Tuple: true}
	named := 0

	for {
		if p.check(COMMA) || p.check(RIGHT_PAREN) {
			stmt.Decls = append(stmt.Decls, nil)
		} else {
			decl := p.parseLocalDecl()
			if decl == nil {
				return nil
			}
			stmt.Decls = append(stmt.Decls, decl)
			named++
		}
		if !p.match(COMMA) {
			break
		}
	}

	p.consume(RIGHT_PAREN, "expected ')' after tuple declaration")
	if named == 0 || !p.check(EQUAL) {
		return nil
	}
	return stmt
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpr()
	if !p.check(SEMICOLON) {
		p.errorAtCurrent("expected ';' after expression")
		p.synchronize()
		return nil
	}
	semi := p.advance()
	return &ast.ExprStmt{
		Pos:    expr.NodePos(),
		EndPos: p.makeEndPos(semi),
		Expr:   expr,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.consume(IF, "expected 'if'")
	p.consume(LEFT_PAREN, "expected '(' after 'if'")
	cond := p.parseExpr()
	p.consume(RIGHT_PAREN, "expected ')' after condition")

	stmt := &ast.IfStmt{Pos: p.makePos(start), Cond: cond}
	stmt.Then = p.parseBody()
	stmt.EndPos = endOf(stmt.Then, p.makeEndPos(p.previous()))
	if p.match(ELSE) {
		stmt.Else = p.parseBody()
		stmt.EndPos = endOf(stmt.Else, stmt.EndPos)
	}
	return stmt
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.consume(FOR, "expected 'for'")
	p.consume(LEFT_PAREN, "expected '(' after 'for'")

	stmt := &ast.ForStmt{Pos: p.makePos(start)}
	if !p.match(SEMICOLON) {
		if decl := p.tryParseVarDeclStmt(); decl != nil {
			stmt.Init = decl
		} else {
			stmt.Init = p.parseExprStmt()
		}
	}
	if !p.check(SEMICOLON) {
		stmt.Cond = p.parseExpr()
	}
	p.consume(SEMICOLON, "expected ';' after loop condition")
	if !p.check(RIGHT_PAREN) {
		stmt.Post = p.parseExpr()
	}
	p.consume(RIGHT_PAREN, "expected ')' after for clauses")

	stmt.Body = p.parseBody()
	stmt.EndPos = endOf(stmt.Body, p.makeEndPos(p.previous()))
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.consume(WHILE, "expected 'while'")
	p.consume(LEFT_PAREN, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.consume(RIGHT_PAREN, "expected ')' after condition")

	body := p.parseBody()
	return &ast.WhileStmt{
		Pos:    p.makePos(start),
		EndPos: endOf(body, p.makeEndPos(p.previous())),
		Cond:   cond,
		Body:   body,
	}
}

func (p *Parser) parseDoWhileStmt() *ast.DoWhileStmt {
	start := p.consume(DO, "expected 'do'")
	body := p.parseBody()
	p.consume(WHILE, "expected 'while' after do body")
	p.consume(LEFT_PAREN, "expected '(' after 'while'")
	cond := p.parseExpr()
	p.consume(RIGHT_PAREN, "expected ')' after condition")
	semi := p.consume(SEMICOLON, "expected ';' after do-while")

	return &ast.DoWhileStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(semi),
		Body:   body,
		Cond:   cond,
	}
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.consume(RETURN, "expected 'return'")
	var value ast.Expr
	if !p.check(SEMICOLON) {
		value = p.parseExpr()
	}
	semi := p.consume(SEMICOLON, "expected ';' after return")

	return &ast.ReturnStmt{
		Pos:    p.makePos(start),
		EndPos: p.makeEndPos(semi),
		Value:  value,
	}
}

// parseBody parses a loop or branch body, which may be a single statement
func (p *Parser) parseBody() ast.Stmt {
	stmt := p.parseStatement()
	if stmt == nil {
		return &ast.Block{Pos: p.makePos(p.previous()), EndPos: p.makeEndPos(p.previous())}
	}
	return stmt
}

func endOf(stmt ast.Stmt, fallback ast.Position) ast.Position {
	if stmt == nil {
		return fallback
	}
	return stmt.NodeEndPos()
}
