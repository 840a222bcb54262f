// Package resolver implements the static lexical-scope analysis pass
// described in spec.md §4.4: a walk over the parsed statement tree that
// precomputes, for every variable reference, how many enclosing scopes
// separate it from the scope that defines it. The evaluator consults
// this depth map instead of searching environments at name-lookup time.
package resolver

import (
	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/token"
)

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
)

// scope maps a local name to whether its initializer has finished
// resolving. false ("declared") catches a variable referencing itself
// in its own initializer; true ("defined") is the steady state.
type scope map[string]bool

// Resolver performs one pass over a parsed program, producing a map
// from expression identity to scope distance. It never mutates the AST
// (spec.md I4) and never evaluates anything.
type Resolver struct {
	scopes []scope
	depths map[ast.Expression]int
	errors []*diagnostics.Error

	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver ready to resolve one program.
func New() *Resolver {
	return &Resolver{depths: make(map[ast.Expression]int)}
}

// Resolve walks statements top to bottom at global scope and returns
// the completed depth map plus any resolve-phase diagnostics.
func Resolve(statements []ast.Statement) (map[ast.Expression]int, []*diagnostics.Error) {
	r := New()
	r.resolveStatements(statements)
	return r.depths, r.errors
}

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) errorf(code diagnostics.ErrorCode, tok token.Token, message string) {
	r.errors = append(r.errors, diagnostics.New(diagnostics.PhaseResolve, code, tok, message))
}

// declare marks name as present but not yet usable in the innermost
// scope. Redeclaring a name already present in that SAME local scope is
// an error; global redeclaration is allowed (there is no global scope
// entry on the stack — globals live only in the evaluator).
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	s := r.scopes[len(r.scopes)-1]
	if _, ok := s[name.Lexeme]; ok {
		r.errorf(diagnostics.ErrDuplicateLocal, name, "Already a variable with this name in this scope.")
	}
	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal searches the scope stack from innermost outward; a hit
// records the distance in the depth map keyed on expr's identity. No
// hit means the evaluator will fall back to globals.
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) resolveFunction(decl *ast.FunctionDecl, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()
	for _, param := range decl.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(decl.Body)
}

func (r *Resolver) resolveStmt(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.VarStmt:
		r.declare(stmt.Name)
		if stmt.Init != nil {
			r.resolveExpr(stmt.Init)
		}
		r.define(stmt.Name)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(stmt.Statements)
		r.endScope()
	case *ast.IfStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Body)
		if stmt.Increment != nil {
			r.resolveExpr(stmt.Increment)
		}
	case *ast.BreakStmt, *ast.ContinueStmt:
		// Loop-membership is already enforced by the parser; nothing
		// to resolve here.
	case *ast.FunctionStmt:
		r.declare(stmt.Decl.Name)
		r.define(stmt.Decl.Name) // defined eagerly so the body can recurse
		r.resolveFunction(stmt.Decl, funcFunction)
	case *ast.ReturnStmt:
		if r.currentFunction == funcNone {
			r.errorf(diagnostics.ErrReturnOutsideFunc, stmt.Keyword, "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.currentFunction == funcInitializer {
				r.errorf(diagnostics.ErrReturnValueInInit, stmt.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(stmt.Value)
		}
	case *ast.ClassStmt:
		r.resolveClass(stmt.Decl)
	default:
		// Unreachable for a well-formed AST; silently ignore unknown
		// statement kinds rather than panic on future additions.
	}
}

func (r *Resolver) resolveClass(decl *ast.ClassDecl) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(decl.Name)
	r.define(decl.Name)

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range decl.Methods {
		kind := funcMethod
		if method.Name.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(method, kind)
	}
	r.endScope()
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	switch expr := expr.(type) {
	case *ast.Literal:
		// no sub-expressions, no name to resolve
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !defined {
				r.errorf(diagnostics.ErrSelfReferentialInit, expr.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Name)
	case *ast.Assignment:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name)
	case *ast.Unary:
		r.resolveExpr(expr.Right)
	case *ast.Binary:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.Logical:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.Grouping:
		r.resolveExpr(expr.Inner)
	case *ast.Call:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(expr.Object)
	case *ast.Set:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.errorf(diagnostics.ErrThisOutsideClass, expr.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, expr.Keyword)
	default:
		// Unreachable for a well-formed AST.
	}
}
