package parser

import (
	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/token"
)

// declaration -> classDecl | funDecl | varDecl | statement
func (p *Parser) declaration() ast.Statement {
	var stmt ast.Statement
	switch {
	case p.curTokenIs(token.CLASS):
		stmt = p.classDeclaration()
	case p.curTokenIs(token.FUN) && p.peekTokenIs(token.IDENTIFIER):
		p.nextToken()
		stmt = &ast.FunctionStmt{Decl: p.function("function")}
	case p.curTokenIs(token.VAR):
		stmt = p.varDeclaration()
	default:
		stmt = p.statement()
	}
	if p.panicked {
		p.panicked = false
		p.synchronize()
		return nil
	}
	return stmt
}

// classDecl -> "class" IDENTIFIER "{" function* "}"
func (p *Parser) classDeclaration() ast.Statement {
	p.nextToken() // consume 'class'
	name, ok := p.expect(token.IDENTIFIER, "Expect class name.")
	if !ok {
		p.panicked = true
		return nil
	}
	if _, ok := p.expect(token.LBRACE, "Expect '{' before class body."); !ok {
		p.panicked = true
		return nil
	}
	var methods []*ast.FunctionDecl
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		methods = append(methods, p.function("method"))
	}
	if _, ok := p.expect(token.RBRACE, "Expect '}' after class body."); !ok {
		p.panicked = true
		return nil
	}
	return &ast.ClassStmt{Decl: &ast.ClassDecl{Name: name, Methods: methods}}
}

// function -> IDENTIFIER "(" parameters? ")" block
func (p *Parser) function(kind string) *ast.FunctionDecl {
	name, ok := p.expect(token.IDENTIFIER, "Expect "+kind+" name.")
	if !ok {
		p.panicked = true
		return &ast.FunctionDecl{}
	}
	if _, ok := p.expect(token.LPAREN, "Expect '(' after "+kind+" name."); !ok {
		p.panicked = true
		return &ast.FunctionDecl{Name: name}
	}
	var params []token.Token
	if !p.curTokenIs(token.RPAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtCur(diagnostics.ErrTooManyArgs, "Can't have more than 255 parameters.")
			}
			param, ok := p.expect(token.IDENTIFIER, "Expect parameter name.")
			if !ok {
				p.panicked = true
				break
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RPAREN, "Expect ')' after parameters."); !ok {
		p.panicked = true
	}
	if _, ok := p.expect(token.LBRACE, "Expect '{' before "+kind+" body."); !ok {
		p.panicked = true
		return &ast.FunctionDecl{Name: name, Params: params}
	}
	body := p.block()
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

// varDecl -> "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) varDeclaration() ast.Statement {
	p.nextToken() // consume 'var'
	name, ok := p.expect(token.IDENTIFIER, "Expect variable name.")
	if !ok {
		p.panicked = true
		return nil
	}
	var init ast.Expression
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after variable declaration."); !ok {
		p.panicked = true
	}
	return &ast.VarStmt{Name: name, Init: init}
}

// statement -> exprStmt | forStmt | ifStmt | printStmt | returnStmt
//            | whileStmt | breakStmt | continueStmt | block
func (p *Parser) statement() ast.Statement {
	switch p.curToken.Type {
	case token.FOR:
		return p.forStatement()
	case token.IF:
		return p.ifStatement()
	case token.PRINT:
		return p.printStatement()
	case token.RETURN:
		return p.returnStatement()
	case token.WHILE:
		return p.whileStatement()
	case token.BREAK:
		return p.breakStatement()
	case token.CONTINUE:
		return p.continueStatement()
	case token.LBRACE:
		p.nextToken()
		return &ast.BlockStmt{Statements: p.block()}
	default:
		return p.expressionStatement()
	}
}

// block -> "{" declaration* "}" ; the opening brace has already been consumed.
func (p *Parser) block() []ast.Statement {
	var statements []ast.Statement
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.declaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, ok := p.expect(token.RBRACE, "Expect '}' after block."); !ok {
		p.panicked = true
	}
	return statements
}

func (p *Parser) expressionStatement() ast.Statement {
	expr := p.expression()
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after expression."); !ok {
		p.panicked = true
	}
	return &ast.ExpressionStmt{Expr: expr}
}

func (p *Parser) printStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	value := p.expression()
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after value."); !ok {
		p.panicked = true
	}
	return &ast.PrintStmt{Keyword: keyword, Expr: value}
}

func (p *Parser) ifStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	if _, ok := p.expect(token.LPAREN, "Expect '(' after 'if'."); !ok {
		p.panicked = true
		return nil
	}
	cond := p.expression()
	if _, ok := p.expect(token.RPAREN, "Expect ')' after if condition."); !ok {
		p.panicked = true
	}
	thenBranch := p.statement()
	var elseBranch ast.Statement
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Keyword: keyword, Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) whileStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	if _, ok := p.expect(token.LPAREN, "Expect '(' after 'while'."); !ok {
		p.panicked = true
		return nil
	}
	cond := p.expression()
	if _, ok := p.expect(token.RPAREN, "Expect ')' after condition."); !ok {
		p.panicked = true
	}
	p.loopDepth++
	body := p.statement()
	p.loopDepth--
	return &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body}
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) body }` with incr attached to the WhileStmt as
// its Increment, per spec.md §4.2. Increment is kept off Body itself
// (rather than folded into a trailing Block{body, incr}) so a `continue`
// inside body still runs the increment before the next condition check
// instead of being skipped by it.
func (p *Parser) forStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	if _, ok := p.expect(token.LPAREN, "Expect '(' after 'for'."); !ok {
		p.panicked = true
		return nil
	}

	var init ast.Statement
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.curTokenIs(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expression
	if !p.curTokenIs(token.SEMICOLON) {
		cond = p.expression()
	}
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after loop condition."); !ok {
		p.panicked = true
	}

	var incr ast.Expression
	if !p.curTokenIs(token.RPAREN) {
		incr = p.expression()
	}
	if _, ok := p.expect(token.RPAREN, "Expect ')' after for clauses."); !ok {
		p.panicked = true
	}

	p.loopDepth++
	body := p.statement()
	p.loopDepth--

	if cond == nil {
		cond = &ast.Literal{Token: keyword, Value: true}
	}
	var loop ast.Statement = &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body, Increment: incr}
	if init != nil {
		loop = &ast.BlockStmt{Statements: []ast.Statement{init, loop}}
	}
	return loop
}

func (p *Parser) returnStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	var value ast.Expression
	if !p.curTokenIs(token.SEMICOLON) {
		value = p.expression()
	}
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after return value."); !ok {
		p.panicked = true
	}
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) breakStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	if p.loopDepth == 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.New(diagnostics.PhaseParse, diagnostics.ErrBreakOutsideLoop, keyword, "Can't break outside of a loop."))
	}
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after 'break'."); !ok {
		p.panicked = true
	}
	return &ast.BreakStmt{Keyword: keyword}
}

func (p *Parser) continueStatement() ast.Statement {
	keyword := p.curToken
	p.nextToken()
	if p.loopDepth == 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.New(diagnostics.PhaseParse, diagnostics.ErrContinueOutsideLoop, keyword, "Can't continue outside of a loop."))
	}
	if _, ok := p.expect(token.SEMICOLON, "Expect ';' after 'continue'."); !ok {
		p.panicked = true
	}
	return &ast.ContinueStmt{Keyword: keyword}
}
