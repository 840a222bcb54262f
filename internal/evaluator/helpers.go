package evaluator

import (
	"time"

	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/token"
)

// registerNatives populates globals with the interpreter's fixed native
// function set. spec.md §6 pins exactly one: clock().
func registerNatives(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		Name:  "clock",
		Arity: 0,
		Fn: func(e *Evaluator, args []Value) Value {
			return &Number{Value: float64(time.Now().UnixMilli())}
		},
	})
}

// callFunction implements the function-call protocol of spec.md §4.5:
// a fresh scope enclosing the function's closure, parameters bound to
// arguments, the body executed in that scope, and the initializer
// special case (an `init` method always yields `this`, return value or
// not).
func (e *Evaluator) callFunction(fn *Function, args []Value, paren token.Token) Value {
	if len(args) != fn.Arity() {
		return runtimeErrorf(paren, diagnostics.ErrArityMismatch, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	env := NewEnclosedEnvironment(fn.Closure)
	for i, param := range fn.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	e.PushCall(fn.Decl.Name.Lexeme, paren.Line)
	result := e.executeBlock(fn.Decl.Body, env)

	// A runtime error leaves its frame on the stack so it can be read
	// back by the caller that ultimately reports it (Interpret /
	// EvalExpression); only a successful call pops its own frame.
	if isError(result) {
		return result
	}
	e.PopCall()
	if ret, ok := result.(*ReturnValue); ok {
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this")
		}
		return ret.Value
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	return NilValue
}

// instantiate implements the class-call protocol of spec.md §4.5: a
// Class value called like a function constructs an Instance and, if an
// `init` method is defined, binds and invokes it before returning the
// instance (never the initializer's own return value).
func (e *Evaluator) instantiate(class *Class, args []Value, paren token.Token) Value {
	instance := NewInstance(class)
	if init, ok := class.FindMethod("init"); ok {
		bound := init.Bind(instance)
		result := e.callFunction(bound, args, paren)
		if isError(result) {
			return result
		}
		return instance
	}
	if len(args) != 0 {
		return runtimeErrorf(paren, diagnostics.ErrArityMismatch, "Expected 0 arguments but got %d.", len(args))
	}
	return instance
}
