package parser

import (
	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/token"
)

// expression -> assignment
func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment -> ( call "." )? IDENTIFIER "=" assignment | logic_or
func (p *Parser) assignment() ast.Expression {
	expr := p.logicOr()

	if p.curTokenIs(token.EQUAL) {
		equals := p.curToken
		p.nextToken()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assignment{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.New(diagnostics.PhaseParse, diagnostics.ErrInvalidAssignTarget, equals, "Invalid assignment target."))
			return expr
		}
	}
	return expr
}

// logic_or -> logic_and ( "or" logic_and )*
func (p *Parser) logicOr() ast.Expression {
	expr := p.logicAnd()
	for p.curTokenIs(token.OR) {
		op := p.curToken
		p.nextToken()
		right := p.logicAnd()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// logic_and -> equality ( "and" equality )*
func (p *Parser) logicAnd() ast.Expression {
	expr := p.equality()
	for p.curTokenIs(token.AND) {
		op := p.curToken
		p.nextToken()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

// equality -> comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.curTokenIs(token.BANG_EQUAL) || p.curTokenIs(token.EQUAL_EQUAL) {
		op := p.curToken
		p.nextToken()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// comparison -> term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.curTokenIs(token.GREATER) || p.curTokenIs(token.GREATER_EQUAL) ||
		p.curTokenIs(token.LESS) || p.curTokenIs(token.LESS_EQUAL) {
		op := p.curToken
		p.nextToken()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// term -> factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.curTokenIs(token.MINUS) || p.curTokenIs(token.PLUS) {
		op := p.curToken
		p.nextToken()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// factor -> unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.curTokenIs(token.SLASH) || p.curTokenIs(token.STAR) {
		op := p.curToken
		p.nextToken()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

// unary -> ( "!" | "-" ) unary | call
func (p *Parser) unary() ast.Expression {
	if p.curTokenIs(token.BANG) || p.curTokenIs(token.MINUS) {
		op := p.curToken
		p.nextToken()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

// call -> primary ( "(" arguments? ")" | "." IDENTIFIER )*
func (p *Parser) call() ast.Expression {
	expr := p.primary()
	for {
		switch {
		case p.curTokenIs(token.LPAREN):
			p.nextToken()
			expr = p.finishCall(expr)
		case p.curTokenIs(token.DOT):
			p.nextToken()
			name, ok := p.expect(token.IDENTIFIER, "Expect property name after '.'.")
			if !ok {
				p.panicked = true
				return expr
			}
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.curTokenIs(token.RPAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAtCur(diagnostics.ErrTooManyArgs, "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, ok := p.expect(token.RPAREN, "Expect ')' after arguments.")
	if !ok {
		p.panicked = true
	}
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// primary -> NUMBER | STRING | "true" | "false" | "nil" | "this"
//          | "(" expression ")" | IDENTIFIER
func (p *Parser) primary() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case token.FALSE:
		p.nextToken()
		return &ast.Literal{Token: tok, Value: false}
	case token.TRUE:
		p.nextToken()
		return &ast.Literal{Token: tok, Value: true}
	case token.NIL:
		p.nextToken()
		return &ast.Literal{Token: tok, Value: nil}
	case token.NUMBER, token.STRING:
		p.nextToken()
		return &ast.Literal{Token: tok, Value: tok.Literal}
	case token.THIS:
		p.nextToken()
		return &ast.This{Keyword: tok}
	case token.IDENTIFIER:
		p.nextToken()
		return &ast.Variable{Name: tok}
	case token.LPAREN:
		p.nextToken()
		expr := p.expression()
		if _, ok := p.expect(token.RPAREN, "Expect ')' after expression."); !ok {
			p.panicked = true
		}
		return &ast.Grouping{Paren: tok, Inner: expr}
	default:
		p.errorAtCur(diagnostics.ErrUnexpectedToken, "Expect expression.")
		p.panicked = true
		p.nextToken()
		return &ast.Literal{Token: tok, Value: nil}
	}
}
