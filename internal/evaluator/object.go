package evaluator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
)

// ValueType identifies the runtime kind of a Value, used for truthiness,
// equality, and the handful of places the evaluator needs to distinguish
// a control-flow signal from an ordinary value.
type ValueType string

const (
	NIL_OBJ      ValueType = "NIL"
	BOOLEAN_OBJ  ValueType = "BOOLEAN"
	NUMBER_OBJ   ValueType = "NUMBER"
	STRING_OBJ   ValueType = "STRING"
	FUNCTION_OBJ ValueType = "FUNCTION"
	NATIVE_OBJ   ValueType = "NATIVE"
	CLASS_OBJ    ValueType = "CLASS"
	INSTANCE_OBJ ValueType = "INSTANCE"

	RETURN_VALUE_OBJ    ValueType = "RETURN_VALUE"
	BREAK_SIGNAL_OBJ    ValueType = "BREAK_SIGNAL"
	CONTINUE_SIGNAL_OBJ ValueType = "CONTINUE_SIGNAL"
	ERROR_OBJ           ValueType = "ERROR"
)

// Value is any runtime datum or control-flow signal the evaluator
// produces. Statement execution and expression evaluation share this one
// interface, so block/loop/function boundaries can check Type() to
// detect a propagating return, break, continue, or error without a
// separate error-return channel.
type Value interface {
	Type() ValueType
	Inspect() string
}

type Nil struct{}

func (n *Nil) Type() ValueType   { return NIL_OBJ }
func (n *Nil) Inspect() string   { return "nil" }

var NilValue = &Nil{}

type Boolean struct{ Value bool }

func (b *Boolean) Type() ValueType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

var (
	TrueValue  = &Boolean{Value: true}
	FalseValue = &Boolean{Value: false}
)

func NativeBoolToBoolean(v bool) *Boolean {
	if v {
		return TrueValue
	}
	return FalseValue
}

type Number struct{ Value float64 }

func (n *Number) Type() ValueType { return NUMBER_OBJ }
func (n *Number) Inspect() string { return formatNumber(n.Value) }

type String struct{ Value string }

func (s *String) Type() ValueType { return STRING_OBJ }
func (s *String) Inspect() string { return s.Value }

// ReturnValue wraps the value a `return` statement yields. It unwinds up
// through evalCore/executeBlock until callFunction catches it.
type ReturnValue struct{ Value Value }

func (r *ReturnValue) Type() ValueType { return RETURN_VALUE_OBJ }
func (r *ReturnValue) Inspect() string { return r.Value.Inspect() }

// BreakSignal unwinds up through executeBlock until the nearest
// enclosing loop catches it.
type BreakSignal struct{}

func (b *BreakSignal) Type() ValueType { return BREAK_SIGNAL_OBJ }
func (b *BreakSignal) Inspect() string { return "break" }

// ContinueSignal unwinds the same way BreakSignal does, but the loop
// advances to its next iteration instead of exiting.
type ContinueSignal struct{}

func (c *ContinueSignal) Type() ValueType { return CONTINUE_SIGNAL_OBJ }
func (c *ContinueSignal) Inspect() string { return "continue" }

// RuntimeError wraps a *diagnostics.Error as a Value so runtime errors
// propagate through evalCore the same way a return or break does,
// instead of through a second Go error-return channel.
type RuntimeError struct{ Err *diagnostics.Error }

func (e *RuntimeError) Type() ValueType { return ERROR_OBJ }
func (e *RuntimeError) Inspect() string { return e.Err.Error() }

// Function is a user-defined function or method. Closure is the
// environment the function was declared in, captured at definition time
// so it can see variables that were in scope there even after that
// scope has otherwise returned (a closure).
type Function struct {
	Decl          *ast.FunctionDecl
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() ValueType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	if f.Decl.Name.Lexeme == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Decl.Name.Lexeme)
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Bind returns a new Function identical to f except its closure is one
// more scope deep, with `this` pre-defined to instance. Calling the
// bound function is how a method invocation gets access to `this`.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction is a function implemented in Go and exposed to
// language programs, e.g. clock().
type NativeFunction struct {
	Name  string
	Arity int
	Fn    func(e *Evaluator, args []Value) Value
}

func (n *NativeFunction) Type() ValueType { return NATIVE_OBJ }
func (n *NativeFunction) Inspect() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Class is a class declaration's runtime representation: a name and its
// method table. Calling a Class constructs an Instance.
type Class struct {
	Name    string
	Methods map[string]*Function
}

func (c *Class) Type() ValueType { return CLASS_OBJ }
func (c *Class) Inspect() string { return c.Name }

func (c *Class) FindMethod(name string) (*Function, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// Instance is a runtime object constructed from a Class: a mutable field
// table plus the class it was constructed from (for method lookup). ID
// tags each instance with a unique identity; it is not included in
// Inspect, diagnostics, or -trace output.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	ID     uuid.UUID
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value), ID: uuid.New()}
}

func (i *Instance) Type() ValueType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string { return fmt.Sprintf("%s instance", i.Class.Name) }

// Get implements property access (`instance.name`), reading an instance
// field before falling back to a bound method on the class.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
