// Package parser implements a recursive-descent parser over the grammar
// in spec.md §4.2: declaration -> statement -> expression, with the
// usual precedence cascade from assignment down to primary.
package parser

import (
	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/pipeline"
	"github.com/mgrafton/loxwalk/internal/token"
)

const maxArgs = 255

// Parser holds the state of a single parse over one token stream.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token
	ctx       *pipeline.Context

	loopDepth int

	// panicked is set by a declaration/statement parser that hit an
	// error it could not locally recover from, so declaration() knows
	// to resynchronize instead of returning a half-built node.
	panicked bool
}

func New(stream pipeline.TokenStream, ctx *pipeline.Context) *Parser {
	p := &Parser{stream: stream, ctx: ctx}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.curTokenIs(t) {
			p.nextToken()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type t, otherwise it
// reports a parse error anchored to the offending token and returns
// false without advancing, letting the caller decide whether to bail
// into synchronize.
func (p *Parser) expect(t token.Type, message string) (token.Token, bool) {
	if p.curTokenIs(t) {
		tok := p.curToken
		p.nextToken()
		return tok, true
	}
	p.errorAtCur(diagnostics.ErrUnexpectedToken, message)
	return token.Token{}, false
}

func (p *Parser) errorAtCur(code diagnostics.ErrorCode, message string) {
	tok := p.curToken
	err := diagnostics.New(diagnostics.PhaseParse, code, tok, message)
	if tok.Type == token.EOF {
		err.AtEOF = true
	}
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// synchronize discards tokens until it reaches a point likely to be a
// statement boundary, so one parse error doesn't cascade into a wall of
// spurious follow-on errors.
func (p *Parser) synchronize() {
	p.nextToken()
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			return
		}
		switch p.curToken.Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.nextToken()
	}
}

// ParseProgram parses a full program for the `run` sub-command.
func (p *Parser) ParseProgram() []ast.Statement {
	var statements []ast.Statement
	for !p.curTokenIs(token.EOF) {
		stmt := p.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// ParseExpression parses a single expression for the `parse`/`evaluate`
// sub-command entry points, which operate on one expression rather than
// a full program.
func (p *Parser) ParseExpression() ast.Expression {
	return p.expression()
}
