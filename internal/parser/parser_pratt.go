package parser

import (
	"strings"

	"mapshim/internal/ast"
)

var binaryPrecedence = map[TokenType]int{
	OR:          1,
	AND:         2,
	EQUAL_EQUAL: 3, BANG_EQUAL: 3,
	LESS: 4, LESS_EQUAL: 4, GREATER: 4, GREATER_EQUAL: 4,
	PIPE:      5,
	CARET:     6,
	AMPERSAND: 7,
	LESS_LESS: 8, GREATER_GREATER: 8,
	PLUS: 9, MINUS: 9,
	STAR: 10, SLASH: 10, PERCENT: 10,
	STAR_STAR: 11,
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment is right-associative: "a = b = c" assigns c to b first
func (p *Parser) parseAssignment() ast.Expr {
	target := p.parseConditional()

	if isAssignOperator(p.peek()) {
		opTok := p.advance()
		value := p.parseAssignment()
		return &ast.AssignExpr{
			Pos:      target.NodePos(),
			EndPos:   value.NodeEndPos(),
			Target:   target,
			Operator: ast.AssignOperatorFromText(opTok.Lexeme),
			Value:    value,
		}
	}

	return target
}

func (p *Parser) parseConditional() ast.Expr {
	cond := p.parsePrattExpr(1)
	if !p.match(QUESTION) {
		return cond
	}

	then := p.parseAssignment()
	p.consume(COLON, "expected ':' in conditional expression")
	els := p.parseAssignment()
	return &ast.ConditionalExpr{
		Pos:    cond.NodePos(),
		EndPos: els.NodeEndPos(),
		Cond:   cond,
		Then:   then,
		Else:   els,
	}
}

func (p *Parser) parsePrattExpr(minPrec int) ast.Expr {
	expr := p.parsePrefixExpr()

	for {
		tok := p.peek()
		prec, ok := binaryPrecedence[tok.Type]
		if !ok || prec < minPrec {
			break
		}

		p.advance()
		next := prec + 1
		if tok.Type == STAR_STAR {
			next = prec
		}
		right := p.parsePrattExpr(next)

		expr = &ast.BinaryExpr{
			Pos:    expr.NodePos(),
			EndPos: right.NodeEndPos(),
			Op:     tok.Lexeme,
			Left:   expr,
			Right:  right,
		}
	}

	return expr
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	if p.match(BANG, MINUS, TILDE, INCREMENT, DECREMENT, DELETE) {
		op := p.previous()
		value := p.parsePrefixExpr()
		return &ast.UnaryExpr{
			Pos:    p.makePos(op),
			EndPos: value.NodeEndPos(),
			Op:     op.Lexeme,
			Value:  value,
		}
	}

	return p.parsePostfixExpr(p.parsePrimaryExpr())
}

func (p *Parser) parsePostfixExpr(expr ast.Expr) ast.Expr {
	var options []ast.NamedArg

	for {
		switch {
		case p.check(LEFT_BRACKET):
			p.advance()
			var index ast.Expr
			if !p.check(RIGHT_BRACKET) {
				index = p.parseExpr()
			}
			end := p.consume(RIGHT_BRACKET, "expected ']' after index")
			expr = &ast.IndexExpr{
				Pos:    expr.NodePos(),
				EndPos: p.makeEndPos(end),
				Target: expr,
				Index:  index,
			}

		case p.check(DOT):
			p.advance()
			if !isMemberName(p.peek().Type) {
				p.errorAtCurrent("expected member name after '.'")
				return expr
			}
			member := p.advance()
			expr = &ast.MemberAccessExpr{
				Pos:    expr.NodePos(),
				EndPos: p.makeEndPos(member),
				Target: expr,
				Member: member.Lexeme,
			}

		case p.check(LEFT_BRACE) && p.checkAt(1, IDENTIFIER) && p.checkAt(2, COLON):
			p.advance()
			_, options = p.parseNamedArgs()
			p.consume(RIGHT_BRACE, "expected '}' after call options")
			if !p.check(LEFT_PAREN) {
				p.errorAtCurrent("expected '(' after call options")
				return expr
			}

		case p.check(LEFT_PAREN):
			p.advance()
			call := &ast.CallExpr{
				Pos:     expr.NodePos(),
				Callee:  expr,
				Options: options,
			}
			options = nil
			if p.match(LEFT_BRACE) {
				var values []ast.NamedArg
				call.ArgNames, values = p.parseNamedArgs()
				if call.ArgNames == nil {
					call.ArgNames = []string{}
				}
				for _, v := range values {
					call.Args = append(call.Args, v.Value)
				}
				p.consume(RIGHT_BRACE, "expected '}' after named arguments")
			} else {
				call.Args = p.parseExprList()
			}
			end := p.consume(RIGHT_PAREN, "expected ')' after arguments")
			call.EndPos = p.makeEndPos(end)
			expr = call

		case p.check(INCREMENT) || p.check(DECREMENT):
			op := p.advance()
			expr = &ast.UnaryExpr{
				Pos:     expr.NodePos(),
				EndPos:  p.makeEndPos(op),
				Op:      op.Lexeme,
				Value:   expr,
				Postfix: true,
			}

		default:
			return expr
		}
	}
}

// parseNamedArgs parses "a: x, b: y" inside braces
func (p *Parser) parseNamedArgs() ([]string, []ast.NamedArg) {
	var names []string
	var args []ast.NamedArg

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		name := p.consume(IDENTIFIER, "expected argument name")
		p.consume(COLON, "expected ':' after argument name")
		value := p.parseExpr()
		names = append(names, name.Lexeme)
		args = append(args, ast.NamedArg{Name: name.Lexeme, Value: value})
		if !p.match(COMMA) {
			break
		}
	}

	return names, args
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	tok := p.peek()

	switch tok.Type {
	case NUMBER:
		p.advance()
		lit := &ast.Literal{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Kind:   ast.LiteralNumber,
			Value:  tok.Lexeme,
		}
		if p.check(IDENTIFIER) && units[p.peek().Lexeme] {
			unit := p.advance()
			lit.Unit = unit.Lexeme
			lit.EndPos = p.makeEndPos(unit)
		}
		return lit

	case STRING, HEX_STRING:
		p.advance()
		kind := ast.LiteralString
		if tok.Type == HEX_STRING {
			kind = ast.LiteralHexString
		}
		parts := []string{tok.Lexeme}
		last := tok
		for p.check(tok.Type) {
			last = p.advance()
			parts = append(parts, last.Lexeme)
		}
		return &ast.Literal{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(last),
			Kind:   kind,
			Value:  strings.Join(parts, " "),
		}

	case TRUE, FALSE:
		p.advance()
		return &ast.Literal{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Kind:   ast.LiteralBool,
			Value:  tok.Lexeme,
		}

	case IDENTIFIER, PAYABLE:
		p.advance()
		return &ast.Identifier{
			Pos:    p.makePos(tok),
			EndPos: p.makeEndPos(tok),
			Name:   tok.Lexeme,
		}

	case ELEMENTARY:
		typ := p.parseElementaryType()
		return &ast.ElementaryTypeExpr{
			Pos:    typ.Pos,
			EndPos: typ.EndPos,
			Type:   typ,
		}

	case NEW:
		p.advance()
		typ := p.parseTypeName()
		return &ast.NewExpr{
			Pos:    p.makePos(tok),
			EndPos: typ.NodeEndPos(),
			Type:   typ,
		}

	case LEFT_BRACKET:
		p.advance()
		var elements []ast.Expr
		if !p.check(RIGHT_BRACKET) {
			elements = p.parseExprList()
		}
		end := p.consume(RIGHT_BRACKET, "expected ']' after array elements")
		return &ast.ArrayLiteralExpr{
			Pos:      p.makePos(tok),
			EndPos:   p.makeEndPos(end),
			Elements: elements,
		}

	case LEFT_PAREN:
		return p.parseParenOrTuple()
	}

	p.errorAtCurrent("unexpected token in expression")
	if !p.isAtEnd() {
		p.advance()
	}
	return &ast.Identifier{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Name:   tok.Lexeme,
	}
}

// parseParenOrTuple distinguishes "(a)" from "(a, b)" and "(, b)"
func (p *Parser) parseParenOrTuple() ast.Expr {
	l := p.consume(LEFT_PAREN, "expected '('")

	if p.check(RIGHT_PAREN) {
		r := p.advance()
		return &ast.TupleExpr{
			Pos:      p.makePos(l),
			EndPos:   p.makeEndPos(r),
			Elements: []ast.Expr{},
		}
	}

	var elements []ast.Expr
	tuple := false
	for {
		if p.check(COMMA) || p.check(RIGHT_PAREN) {
			elements = append(elements, nil)
		} else {
			elements = append(elements, p.parseExpr())
		}
		if !p.match(COMMA) {
			break
		}
		tuple = true
	}

	r := p.consume(RIGHT_PAREN, "expected ')'")
	if !tuple && elements[0] != nil {
		return &ast.ParenExpr{
			Pos:    p.makePos(l),
			EndPos: p.makeEndPos(r),
			Value:  elements[0],
		}
	}
	return &ast.TupleExpr{
		Pos:      p.makePos(l),
		EndPos:   p.makeEndPos(r),
		Elements: elements,
	}
}

func (p *Parser) parseExprList() []ast.Expr {
	var args []ast.Expr
	if p.check(RIGHT_PAREN) {
		return args
	}

	for {
		args = append(args, p.parseExpr())
		if !p.match(COMMA) {
			break
		}
	}

	return args
}
