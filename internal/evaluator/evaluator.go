// Package evaluator walks the AST resolve has already annotated with
// scope depths, executing each statement and producing a Value for each
// expression, per spec.md §4.5.
package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/token"
)

// CallFrame is one entry in the evaluator's call stack, used only to
// render a -trace backtrace on a runtime error; it plays no role in
// ordinary evaluation.
type CallFrame struct {
	Name string
	Line int
}

// Evaluator holds everything one `run`/`evaluate` invocation needs:
// the global scope, the resolver's depth map, and enough bookkeeping to
// report errors and (optionally) a call-stack trace.
type Evaluator struct {
	Out     io.Writer
	Globals *Environment

	// Depths is the resolver's output: expression identity -> scope
	// distance, consumed by lookUpVariable (for both variables and
	// `this`) and evalAssignment.
	Depths map[ast.Expression]int

	CallStack []CallFrame

	// RunID tags this evaluator instance with a unique identity. It is
	// not included in diagnostics or -trace output.
	RunID uuid.UUID

	Trace bool
}

func New(depths map[ast.Expression]int) *Evaluator {
	globals := NewEnvironment()
	registerNatives(globals)
	return &Evaluator{
		Out:     os.Stdout,
		Globals: globals,
		Depths:  depths,
		RunID:   uuid.New(),
	}
}

func (e *Evaluator) PushCall(name string, line int) {
	e.CallStack = append(e.CallStack, CallFrame{Name: name, Line: line})
}

func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

// callStackTrace renders the current call stack most-recent-call-first,
// the order a -trace backtrace reads in.
func (e *Evaluator) callStackTrace() []string {
	if len(e.CallStack) == 0 {
		return nil
	}
	trace := make([]string, len(e.CallStack))
	for i, frame := range e.CallStack {
		trace[len(e.CallStack)-1-i] = fmt.Sprintf("[line %d] in %s()", frame.Line, frame.Name)
	}
	return trace
}

// Interpret executes a full program's statements in the global
// environment, returning the first runtime error encountered, if any.
func (e *Evaluator) Interpret(statements []ast.Statement) *diagnostics.Error {
	for _, stmt := range statements {
		result := e.execute(stmt, e.Globals)
		if err, ok := result.(*RuntimeError); ok {
			err.Err.Trace = e.callStackTrace()
			return err.Err
		}
	}
	return nil
}

// EvalExpression evaluates a single expression in the global
// environment, for the `evaluate` sub-command entry point.
func (e *Evaluator) EvalExpression(expr ast.Expression) (Value, *diagnostics.Error) {
	result := e.Eval(expr, e.Globals)
	if err, ok := result.(*RuntimeError); ok {
		err.Err.Trace = e.callStackTrace()
		return nil, err.Err
	}
	return result, nil
}

// Eval evaluates an expression node. execute runs a statement node.
// Both dispatch through evalCore's single type switch, the way the
// teacher's evaluator does, rather than a Visitor/Accept pattern — no
// Visitor interface exists anywhere a tree-walking evaluator in this
// codebase's lineage needs one.
func (e *Evaluator) Eval(node ast.Expression, env *Environment) Value {
	return e.evalCore(node, env)
}

func (e *Evaluator) execute(stmt ast.Statement, env *Environment) Value {
	return e.execCore(stmt, env)
}

func (e *Evaluator) evalCore(node ast.Expression, env *Environment) Value {
	switch node := node.(type) {
	case *ast.Literal:
		return e.evalLiteral(node)
	case *ast.Grouping:
		return e.Eval(node.Inner, env)
	case *ast.Variable:
		return e.lookUpVariable(node.Name, node, env)
	case *ast.Assignment:
		return e.evalAssignment(node, env)
	case *ast.Unary:
		return e.evalUnary(node, env)
	case *ast.Binary:
		return e.evalBinary(node, env)
	case *ast.Logical:
		return e.evalLogical(node, env)
	case *ast.Call:
		return e.evalCall(node, env)
	case *ast.Get:
		return e.evalGet(node, env)
	case *ast.Set:
		return e.evalSet(node, env)
	case *ast.This:
		return e.lookUpVariable(node.Keyword, node, env)
	default:
		return runtimeErrorf(token.Token{}, diagnostics.ErrTypeMismatch, "Unknown expression node %T", node)
	}
}

func (e *Evaluator) execCore(stmt ast.Statement, env *Environment) Value {
	switch stmt := stmt.(type) {
	case *ast.ExpressionStmt:
		return e.Eval(stmt.Expr, env)
	case *ast.PrintStmt:
		return e.execPrint(stmt, env)
	case *ast.VarStmt:
		return e.execVar(stmt, env)
	case *ast.BlockStmt:
		return e.executeBlock(stmt.Statements, NewEnclosedEnvironment(env))
	case *ast.IfStmt:
		return e.execIf(stmt, env)
	case *ast.WhileStmt:
		return e.execWhile(stmt, env)
	case *ast.BreakStmt:
		return &BreakSignal{}
	case *ast.ContinueStmt:
		return &ContinueSignal{}
	case *ast.FunctionStmt:
		return e.execFunctionDecl(stmt, env)
	case *ast.ReturnStmt:
		return e.execReturn(stmt, env)
	case *ast.ClassStmt:
		return e.execClassDecl(stmt, env)
	default:
		return runtimeErrorf(token.Token{}, diagnostics.ErrTypeMismatch, "Unknown statement node %T", stmt)
	}
}

func (e *Evaluator) evalLiteral(l *ast.Literal) Value {
	switch v := l.Value.(type) {
	case nil:
		return NilValue
	case bool:
		return NativeBoolToBoolean(v)
	case float64:
		return &Number{Value: v}
	case string:
		return &String{Value: v}
	default:
		return runtimeErrorf(l.Token, diagnostics.ErrTypeMismatch, "unsupported literal %v", v)
	}
}

func (e *Evaluator) lookUpVariable(name token.Token, expr ast.Expression, env *Environment) Value {
	if distance, ok := e.Depths[expr]; ok {
		return env.GetAt(distance, name.Lexeme)
	}
	if v, ok := e.Globals.Get(name.Lexeme); ok {
		return v
	}
	return runtimeErrorf(name, diagnostics.ErrUndefinedName, "Undefined variable '%s'.", name.Lexeme)
}

func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.Inspect()
}

func isTruthy(v Value) bool {
	switch v := v.(type) {
	case *Nil:
		return false
	case *Boolean:
		return v.Value
	default:
		return true
	}
}

// isEqual implements spec.md's equality rule: values of different kinds
// are never equal, nil equals only nil, and function/class values are
// never equal to anything (including themselves).
func isEqual(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch a := a.(type) {
	case *Nil:
		return true
	case *Boolean:
		return a.Value == b.(*Boolean).Value
	case *Number:
		return a.Value == b.(*Number).Value
	case *String:
		return a.Value == b.(*String).Value
	case *Instance:
		return a == b.(*Instance)
	default:
		return false
	}
}

func isError(v Value) bool {
	_, ok := v.(*RuntimeError)
	return ok
}

func runtimeErrorf(tok token.Token, code diagnostics.ErrorCode, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Err: diagnostics.Newf(diagnostics.PhaseRuntime, code, tok, format, args...)}
}
