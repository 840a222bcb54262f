// Package ast defines the syntax tree produced by the parser and consumed
// by the resolver and evaluator.
package ast

import (
	"github.com/mgrafton/loxwalk/internal/token"
)

// Node is the base interface for every AST node.
type Node interface {
	TokenLiteral() string
}

// Expression is a Node that produces a value. Every Expression
// implementation is a pointer type so a map[Expression]int (the
// resolver's scope-depth table) keys on node identity, not structural
// equality: two syntactically identical `x` references at different
// positions in the source must resolve independently.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Statement is a Node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Literal is a number, string, boolean, or nil literal.
type Literal struct {
	Token token.Token
	Value interface{} // float64, string, bool, or nil
}

func (l *Literal) expressionNode()          {}
func (l *Literal) TokenLiteral() string     { return l.Token.Lexeme }
func (l *Literal) GetToken() token.Token    { return l.Token }

// Variable is a bare name reference, e.g. `x`.
type Variable struct {
	Name token.Token
}

func (v *Variable) expressionNode()       {}
func (v *Variable) TokenLiteral() string  { return v.Name.Lexeme }
func (v *Variable) GetToken() token.Token { return v.Name }

// Assignment is `name = value`.
type Assignment struct {
	Name  token.Token
	Value Expression
}

func (a *Assignment) expressionNode()       {}
func (a *Assignment) TokenLiteral() string  { return a.Name.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Name }

// Unary is a prefix operator applied to one operand: `-x`, `!x`.
type Unary struct {
	Op    token.Token
	Right Expression
}

func (u *Unary) expressionNode()       {}
func (u *Unary) TokenLiteral() string  { return u.Op.Lexeme }
func (u *Unary) GetToken() token.Token { return u.Op }

// Binary is an infix arithmetic or comparison operator.
type Binary struct {
	Left  Expression
	Op    token.Token
	Right Expression
}

func (b *Binary) expressionNode()       {}
func (b *Binary) TokenLiteral() string  { return b.Op.Lexeme }
func (b *Binary) GetToken() token.Token { return b.Op }

// Logical is `and`/`or`, kept distinct from Binary because its operands
// short-circuit instead of both always evaluating.
type Logical struct {
	Left  Expression
	Op    token.Token
	Right Expression
}

func (l *Logical) expressionNode()       {}
func (l *Logical) TokenLiteral() string  { return l.Op.Lexeme }
func (l *Logical) GetToken() token.Token { return l.Op }

// Grouping is a parenthesized expression, kept as its own node so the
// pretty-printer can render the parens back.
type Grouping struct {
	Paren token.Token
	Inner Expression
}

func (g *Grouping) expressionNode()       {}
func (g *Grouping) TokenLiteral() string  { return g.Paren.Lexeme }
func (g *Grouping) GetToken() token.Token { return g.Paren }

// Call is a function or method invocation: `callee(args...)`.
type Call struct {
	Callee Expression
	Paren  token.Token // the closing ')', used to anchor arity errors
	Args   []Expression
}

func (c *Call) expressionNode()       {}
func (c *Call) TokenLiteral() string  { return c.Paren.Lexeme }
func (c *Call) GetToken() token.Token { return c.Paren }

// Get is property access: `object.name`.
type Get struct {
	Object Expression
	Name   token.Token
}

func (g *Get) expressionNode()       {}
func (g *Get) TokenLiteral() string  { return g.Name.Lexeme }
func (g *Get) GetToken() token.Token { return g.Name }

// Set is property assignment: `object.name = value`.
type Set struct {
	Object Expression
	Name   token.Token
	Value  Expression
}

func (s *Set) expressionNode()       {}
func (s *Set) TokenLiteral() string  { return s.Name.Lexeme }
func (s *Set) GetToken() token.Token { return s.Name }

// This is the `this` keyword used inside a method body.
type This struct {
	Keyword token.Token
}

func (t *This) expressionNode()       {}
func (t *This) TokenLiteral() string  { return t.Keyword.Lexeme }
func (t *This) GetToken() token.Token { return t.Keyword }

// ExpressionStmt wraps an expression evaluated for its side effect.
type ExpressionStmt struct {
	Expr Expression
}

func (e *ExpressionStmt) statementNode()     {}
func (e *ExpressionStmt) TokenLiteral() string { return e.Expr.TokenLiteral() }

// PrintStmt is `print expr;`.
type PrintStmt struct {
	Keyword token.Token
	Expr    Expression
}

func (p *PrintStmt) statementNode()       {}
func (p *PrintStmt) TokenLiteral() string { return p.Keyword.Lexeme }

// VarStmt is `var name = init;` (Init is nil when the declaration has no
// initializer, in which case the variable starts bound to nil).
type VarStmt struct {
	Name token.Token
	Init Expression
}

func (v *VarStmt) statementNode()       {}
func (v *VarStmt) TokenLiteral() string { return v.Name.Lexeme }

// BlockStmt is a `{ ... }` statement sequence introducing a new scope.
type BlockStmt struct {
	Statements []Statement
}

func (b *BlockStmt) statementNode()       {}
func (b *BlockStmt) TokenLiteral() string { return "{" }

// IfStmt is `if (cond) then else else` (Else is nil when absent).
type IfStmt struct {
	Keyword token.Token
	Cond    Expression
	Then    Statement
	Else    Statement
}

func (i *IfStmt) statementNode()       {}
func (i *IfStmt) TokenLiteral() string { return i.Keyword.Lexeme }

// WhileStmt is `while (cond) body`. A desugared `for` loop is also a
// WhileStmt (wrapped in a BlockStmt alongside its init, if any); see the
// parser. Increment is non-nil only for a desugared for-loop — it runs
// after Body on every iteration, including one ended by `continue`,
// which a plain `while` has no equivalent of.
type WhileStmt struct {
	Keyword   token.Token
	Cond      Expression
	Body      Statement
	Increment Expression
}

func (w *WhileStmt) statementNode()       {}
func (w *WhileStmt) TokenLiteral() string { return w.Keyword.Lexeme }

// BreakStmt is `break;`, valid only inside a loop body.
type BreakStmt struct {
	Keyword token.Token
}

func (b *BreakStmt) statementNode()       {}
func (b *BreakStmt) TokenLiteral() string { return b.Keyword.Lexeme }

// ContinueStmt is `continue;`, valid only inside a loop body.
type ContinueStmt struct {
	Keyword token.Token
}

func (c *ContinueStmt) statementNode()       {}
func (c *ContinueStmt) TokenLiteral() string { return c.Keyword.Lexeme }

// FunctionDecl is the shared shape of a named function declaration and a
// class method: a name, a parameter list, and a body. It is not itself a
// Statement; FunctionStmt and ClassDecl.Methods embed it.
type FunctionDecl struct {
	Name   token.Token
	Params []token.Token
	Body   []Statement
}

// FunctionStmt is `fun name(params) { body }`.
type FunctionStmt struct {
	Decl *FunctionDecl
}

func (f *FunctionStmt) statementNode()       {}
func (f *FunctionStmt) TokenLiteral() string { return f.Decl.Name.Lexeme }

// ReturnStmt is `return;` or `return value;`. Value is nil for a bare
// return, which evaluates to nil (except inside an initializer, where
// the resolver and evaluator both special-case it to mean "return this").
type ReturnStmt struct {
	Keyword token.Token
	Value   Expression
}

func (r *ReturnStmt) statementNode()       {}
func (r *ReturnStmt) TokenLiteral() string { return r.Keyword.Lexeme }

// ClassDecl is `class Name { methods... }`.
type ClassDecl struct {
	Name    token.Token
	Methods []*FunctionDecl
}

// ClassStmt wraps a ClassDecl as a Statement.
type ClassStmt struct {
	Decl *ClassDecl
}

func (c *ClassStmt) statementNode()       {}
func (c *ClassStmt) TokenLiteral() string { return c.Decl.Name.Lexeme }
