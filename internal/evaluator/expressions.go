package evaluator

import (
	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
)

func (e *Evaluator) evalAssignment(node *ast.Assignment, env *Environment) Value {
	v := e.Eval(node.Value, env)
	if isError(v) {
		return v
	}
	if distance, ok := e.Depths[node]; ok {
		env.AssignAt(distance, node.Name.Lexeme, v)
		return v
	}
	if ok := e.Globals.Assign(node.Name.Lexeme, v); ok {
		return v
	}
	return runtimeErrorf(node.Name, diagnostics.ErrUndefinedName, "Undefined variable '%s'.", node.Name.Lexeme)
}

func (e *Evaluator) evalUnary(node *ast.Unary, env *Environment) Value {
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	switch node.Op.Type {
	case "-":
		n, ok := right.(*Number)
		if !ok {
			return runtimeErrorf(node.Op, diagnostics.ErrTypeMismatch, "Operand must be a number.")
		}
		return &Number{Value: -n.Value}
	case "!":
		return NativeBoolToBoolean(!isTruthy(right))
	default:
		return runtimeErrorf(node.Op, diagnostics.ErrTypeMismatch, "Unknown unary operator %s.", node.Op.Lexeme)
	}
}

func (e *Evaluator) evalLogical(node *ast.Logical, env *Environment) Value {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	if node.Op.Type == "OR" {
		if isTruthy(left) {
			return left
		}
	} else {
		if !isTruthy(left) {
			return left
		}
	}
	return e.Eval(node.Right, env)
}

func (e *Evaluator) evalBinary(node *ast.Binary, env *Environment) Value {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Op.Type {
	case "==":
		return NativeBoolToBoolean(isEqual(left, right))
	case "!=":
		return NativeBoolToBoolean(!isEqual(left, right))
	case "+":
		return evalAdd(node, left, right)
	case "-":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		return &Number{Value: ln - rn}
	case "*":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		return &Number{Value: ln * rn}
	case "/":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		if rn == 0 {
			return runtimeErrorf(node.Op, diagnostics.ErrDivideByZero, "Denominator cannot be 0.")
		}
		return &Number{Value: ln / rn}
	case ">":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		return NativeBoolToBoolean(ln > rn)
	case ">=":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		return NativeBoolToBoolean(ln >= rn)
	case "<":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		return NativeBoolToBoolean(ln < rn)
	case "<=":
		ln, rn, ok := numberOperands(node, left, right)
		if !ok {
			return numberOperandError(node)
		}
		return NativeBoolToBoolean(ln <= rn)
	default:
		return runtimeErrorf(node.Op, diagnostics.ErrTypeMismatch, "Unknown binary operator %s.", node.Op.Lexeme)
	}
}

// evalAdd implements spec.md's same-kind-only `+`: two numbers add, two
// strings concatenate, any other pairing (including number+string) is a
// runtime error — there is no implicit coercion.
func evalAdd(node *ast.Binary, left, right Value) Value {
	if ln, ok := left.(*Number); ok {
		if rn, ok := right.(*Number); ok {
			return &Number{Value: ln.Value + rn.Value}
		}
	}
	if ls, ok := left.(*String); ok {
		if rs, ok := right.(*String); ok {
			return &String{Value: ls.Value + rs.Value}
		}
	}
	return runtimeErrorf(node.Op, diagnostics.ErrTypeMismatch, "Operands must be two numbers or two strings.")
}

func numberOperands(node *ast.Binary, left, right Value) (float64, float64, bool) {
	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if !lok || !rok {
		return 0, 0, false
	}
	return ln.Value, rn.Value, true
}

func numberOperandError(node *ast.Binary) Value {
	return runtimeErrorf(node.Op, diagnostics.ErrTypeMismatch, "Operands must be numbers.")
}

func (e *Evaluator) evalCall(node *ast.Call, env *Environment) Value {
	callee := e.Eval(node.Callee, env)
	if isError(callee) {
		return callee
	}

	args := make([]Value, 0, len(node.Args))
	for _, a := range node.Args {
		v := e.Eval(a, env)
		if isError(v) {
			return v
		}
		args = append(args, v)
	}

	switch callee := callee.(type) {
	case *NativeFunction:
		if len(args) != callee.Arity {
			return runtimeErrorf(node.Paren, diagnostics.ErrArityMismatch, "Expected %d arguments but got %d.", callee.Arity, len(args))
		}
		return callee.Fn(e, args)
	case *Function:
		return e.callFunction(callee, args, node.Paren)
	case *Class:
		return e.instantiate(callee, args, node.Paren)
	default:
		return runtimeErrorf(node.Paren, diagnostics.ErrNotCallable, "Can only call functions and classes.")
	}
}

func (e *Evaluator) evalGet(node *ast.Get, env *Environment) Value {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return runtimeErrorf(node.Name, diagnostics.ErrNotAnInstance, "Only instances have properties.")
	}
	v, ok := instance.Get(node.Name.Lexeme)
	if !ok {
		return runtimeErrorf(node.Name, diagnostics.ErrUndefinedProperty, "Undefined property '%s'.", node.Name.Lexeme)
	}
	return v
}

func (e *Evaluator) evalSet(node *ast.Set, env *Environment) Value {
	obj := e.Eval(node.Object, env)
	if isError(obj) {
		return obj
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return runtimeErrorf(node.Name, diagnostics.ErrNotAnInstance, "Only instances have fields.")
	}
	v := e.Eval(node.Value, env)
	if isError(v) {
		return v
	}
	instance.Set(node.Name.Lexeme, v)
	return v
}
