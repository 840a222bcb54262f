package evaluator

import (
	"fmt"

	"github.com/mgrafton/loxwalk/internal/ast"
)

func (e *Evaluator) execPrint(stmt *ast.PrintStmt, env *Environment) Value {
	v := e.Eval(stmt.Expr, env)
	if isError(v) {
		return v
	}
	fmt.Fprintln(e.Out, stringify(v))
	return NilValue
}

func (e *Evaluator) execVar(stmt *ast.VarStmt, env *Environment) Value {
	var v Value = NilValue
	if stmt.Init != nil {
		v = e.Eval(stmt.Init, env)
		if isError(v) {
			return v
		}
	}
	env.Define(stmt.Name.Lexeme, v)
	return NilValue
}

// executeBlock runs each statement in its own environment, propagating
// the first return/break/continue/error signal it sees up to the
// caller instead of continuing past it.
func (e *Evaluator) executeBlock(statements []ast.Statement, env *Environment) Value {
	var result Value = NilValue
	for _, stmt := range statements {
		result = e.execute(stmt, env)
		switch result.Type() {
		case ERROR_OBJ, RETURN_VALUE_OBJ, BREAK_SIGNAL_OBJ, CONTINUE_SIGNAL_OBJ:
			return result
		}
	}
	return result
}

func (e *Evaluator) execIf(stmt *ast.IfStmt, env *Environment) Value {
	cond := e.Eval(stmt.Cond, env)
	if isError(cond) {
		return cond
	}
	if isTruthy(cond) {
		return e.execute(stmt.Then, env)
	}
	if stmt.Else != nil {
		return e.execute(stmt.Else, env)
	}
	return NilValue
}

func (e *Evaluator) execWhile(stmt *ast.WhileStmt, env *Environment) Value {
	for {
		cond := e.Eval(stmt.Cond, env)
		if isError(cond) {
			return cond
		}
		if !isTruthy(cond) {
			return NilValue
		}
		result := e.execute(stmt.Body, env)
		switch result.Type() {
		case ERROR_OBJ, RETURN_VALUE_OBJ:
			return result
		case BREAK_SIGNAL_OBJ:
			return NilValue
		}
		// Normal completion and a caught continue both fall through to
		// here: a desugared for-loop's Increment still has to run before
		// the condition is rechecked, continue only skips the rest of Body.
		if stmt.Increment != nil {
			if incr := e.Eval(stmt.Increment, env); isError(incr) {
				return incr
			}
		}
	}
}

func (e *Evaluator) execFunctionDecl(stmt *ast.FunctionStmt, env *Environment) Value {
	fn := &Function{Decl: stmt.Decl, Closure: env}
	env.Define(stmt.Decl.Name.Lexeme, fn)
	return NilValue
}

func (e *Evaluator) execReturn(stmt *ast.ReturnStmt, env *Environment) Value {
	var v Value = NilValue
	if stmt.Value != nil {
		v = e.Eval(stmt.Value, env)
		if isError(v) {
			return v
		}
	}
	return &ReturnValue{Value: v}
}

func (e *Evaluator) execClassDecl(stmt *ast.ClassStmt, env *Environment) Value {
	methods := make(map[string]*Function, len(stmt.Decl.Methods))
	for _, decl := range stmt.Decl.Methods {
		methods[decl.Name.Lexeme] = &Function{
			Decl:          decl,
			Closure:       env,
			IsInitializer: decl.Name.Lexeme == "init",
		}
	}
	class := &Class{Name: stmt.Decl.Name.Lexeme, Methods: methods}
	env.Define(stmt.Decl.Name.Lexeme, class)
	return NilValue
}
