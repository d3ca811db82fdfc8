// Package evaluator reduces a parsed program to a single object.Object by
// walking its syntax tree.
package evaluator

import (
	"github.com/pontaoski/monkey/ast"
	"github.com/pontaoski/monkey/environment"
	"github.com/pontaoski/monkey/object"
	"github.com/pontaoski/monkey/types"
)

type flow int

const (
	flowValue flow = iota
	flowReturn
)

// signal is what every step of evaluation produces. A flowReturn signal
// unwinds statement lists until it reaches the top. An object.Error value
// unwinds the same way regardless of flow.
//
// A nil value means the step produced nothing, as for a let statement.
type signal struct {
	flow  flow
	value object.Object
}

func valueOf(o object.Object) signal {
	return signal{flow: flowValue, value: o}
}

func (s signal) stops() bool {
	return s.flow == flowReturn || object.IsError(s.value)
}

// Eval evaluates program in a fresh environment.
func Eval(program *ast.Program) object.Object {
	return EvalIn(program, environment.New())
}

// EvalIn evaluates program with env as its top-level scope. Let statements at
// the top level bind into env, so it can be reused across calls. A top-level
// return yields its value like a trailing expression would.
func EvalIn(program *ast.Program, env *environment.Environment) object.Object {
	return evalStatements(program.Statements, env).value
}

func evalStatements(stmts []ast.Statement, env *environment.Environment) signal {
	var last object.Object = object.NULLV

	for _, stmt := range stmts {
		s := evalStatement(stmt, env)
		if s.stops() {
			return s
		}
		if s.value != nil {
			last = s.value
		}
	}

	return valueOf(last)
}

func evalStatement(stmt ast.Statement, env *environment.Environment) signal {
	switch s := stmt.(type) {
	case ast.Block:
		return evalStatements(s, environment.NewEnclosed(env))
	case ast.ExpressionStatement:
		return evalExpression(s.Expression, env)
	case ast.Return:
		v := evalExpression(s.Value, env)
		return signal{flow: flowReturn, value: v.value}
	case ast.Let:
		v := evalExpression(s.Value, env)
		if v.stops() {
			return v
		}
		env.Set(string(s.Name), v.value)
		return signal{flow: flowValue}
	}

	return valueOf(object.NULLV)
}

func evalExpression(e ast.Expression, env *environment.Environment) signal {
	switch n := e.(type) {
	case ast.Integer:
		return valueOf(object.Integer{Value: int64(n)})
	case ast.Boolean:
		return valueOf(object.NativeBool(bool(n)))
	case ast.Ident:
		if v, ok := env.Get(string(n)); ok {
			return valueOf(v)
		}
		return valueOf(object.Errorf("identifier not found: %s", string(n)))
	case ast.Prefix:
		right := evalExpression(n.Right, env)
		if right.stops() {
			return right
		}
		return valueOf(evalPrefix(n.Operator, right.value))
	case ast.Infix:
		left := evalExpression(n.Left, env)
		if left.stops() {
			return left
		}
		right := evalExpression(n.Right, env)
		if right.stops() {
			return right
		}
		return valueOf(evalInfix(n.Operator, left.value, right.value))
	case ast.If:
		return evalIf(n, env)
	}

	// Floats, function literals, calls and parse placeholders have no runtime
	// meaning yet.
	return valueOf(object.NULLV)
}

func evalIf(n ast.If, env *environment.Environment) signal {
	cond := evalExpression(n.Condition, env)
	if cond.stops() {
		return cond
	}

	if isTruthy(cond.value) {
		return evalStatement(n.Consequence, env)
	}
	if n.Alternative == nil {
		return valueOf(object.NULLV)
	}
	return evalStatement(n.Alternative, env)
}

func isTruthy(o object.Object) bool {
	switch v := o.(type) {
	case object.Boolean:
		return v.Value
	case object.Integer:
		return v.Value != 0
	case object.Null:
		return false
	}
	return true
}

func evalPrefix(op types.TokenKind, right object.Object) object.Object {
	switch op {
	case types.BANG:
		return object.NativeBool(!isTruthy(right))
	case types.MINUS:
		if i, ok := right.(object.Integer); ok {
			return object.Integer{Value: -i.Value}
		}
	case types.PLUS:
		if i, ok := right.(object.Integer); ok {
			return i
		}
	}
	return object.Errorf("unknown operator: %s%s", op, right.Type())
}

func evalInfix(op types.TokenKind, left, right object.Object) object.Object {
	switch l := left.(type) {
	case object.Integer:
		if r, ok := right.(object.Integer); ok {
			return evalIntegerInfix(op, l.Value, r.Value)
		}
	case object.Boolean:
		if r, ok := right.(object.Boolean); ok {
			switch op {
			case types.EQ:
				return object.NativeBool(l.Value == r.Value)
			case types.NOTEQ:
				return object.NativeBool(l.Value != r.Value)
			}
		}
	}

	if left.Type() != right.Type() {
		return object.Errorf("type mismatch: %s %s %s", left.Type(), op, right.Type())
	}
	return object.Errorf("unknown operator: %s %s %s", left.Type(), op, right.Type())
}

func evalIntegerInfix(op types.TokenKind, l, r int64) object.Object {
	switch op {
	case types.PLUS:
		return object.Integer{Value: l + r}
	case types.MINUS:
		return object.Integer{Value: l - r}
	case types.ASTERISK:
		return object.Integer{Value: l * r}
	case types.SLASH:
		if r == 0 {
			return object.Errorf("division by zero")
		}
		return object.Integer{Value: l / r}
	case types.LT:
		return object.NativeBool(l < r)
	case types.GT:
		return object.NativeBool(l > r)
	case types.LE:
		return object.NativeBool(l <= r)
	case types.GE:
		return object.NativeBool(l >= r)
	case types.EQ:
		return object.NativeBool(l == r)
	case types.NOTEQ:
		return object.NativeBool(l != r)
	}
	return object.Errorf("unknown operator: %s %s %s", object.INTEGER, op, object.INTEGER)
}
