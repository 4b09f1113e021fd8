package eval

import (
	"math"

	"github.com/cubedhuang/lox/function"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/std"
)

// evalExpression evaluates one expression. Errors propagate in-band as
// *objects.Error results.
func (e *Evaluator) evalExpression(expr parser.ExpressionNode) objects.LoxObject {
	switch n := expr.(type) {
	case *parser.LiteralExpressionNode:
		return n.Value

	case *parser.ParenthesizedExpressionNode:
		return e.evalExpression(n.Expr)

	case *parser.UnaryExpressionNode:
		return e.evalUnary(n)

	case *parser.BinaryExpressionNode:
		return e.evalBinary(n)

	case *parser.LogicalExpressionNode:
		return e.evalLogical(n)

	case *parser.IdentifierExpressionNode:
		return e.lookUpVariable(n.Token, n)

	case *parser.AssignmentExpressionNode:
		return e.evalAssignment(n)

	case *parser.CallExpressionNode:
		return e.evalCall(n)

	case *parser.GetExpressionNode:
		return e.evalGet(n)

	case *parser.SetExpressionNode:
		return e.evalSet(n)

	case *parser.ThisExpressionNode:
		return e.lookUpVariable(n.Keyword, n)

	case *parser.SuperExpressionNode:
		return e.evalSuper(n)
	}

	return &objects.Nil{}
}

// evalUnary applies a prefix operator. Unary minus requires a number, with
// a dedicated message for nil; '!' negates the operand's truthiness and
// always yields a boolean.
func (e *Evaluator) evalUnary(n *parser.UnaryExpressionNode) objects.LoxObject {
	right := e.evalExpression(n.Right)
	if IsError(right) {
		return right
	}

	switch n.Operator.Type {
	case lexer.MINUS:
		if num, ok := right.(*objects.Number); ok {
			return &objects.Number{Value: -num.Value}
		}
		if _, ok := right.(*objects.Nil); ok {
			return e.runtimeError(n.Operator, "Unary minus on nil is not supported.")
		}
		return e.runtimeError(n.Operator, "Operand must be a number.")

	case lexer.BANG:
		return &objects.Boolean{Value: !Truthy(right)}
	}

	return &objects.Nil{}
}

// evalBinary evaluates both operands left to right, then applies the
// operator.
func (e *Evaluator) evalBinary(n *parser.BinaryExpressionNode) objects.LoxObject {
	left := e.evalExpression(n.Left)
	if IsError(left) {
		return left
	}
	right := e.evalExpression(n.Right)
	if IsError(right) {
		return right
	}

	return e.applyBinary(n.Operator, left, right)
}

// applyBinary applies a binary operator to two evaluated operands. This is
// shared between binary expressions and the read-modify-write of compound
// assignments.
//
// Arithmetic is over numbers, with one exception: '+' concatenates when
// either operand is a string, stringifying the other side. Division by
// zero follows float64 semantics (infinities and NaN). Comparisons are
// over numbers. Equality works on any pair of values: by value for
// numbers, strings, booleans, and nil, by identity for everything else.
func (e *Evaluator) applyBinary(op lexer.Token, left objects.LoxObject, right objects.LoxObject) objects.LoxObject {
	switch op.Type {
	case lexer.PLUS:
		leftNum, leftOk := left.(*objects.Number)
		rightNum, rightOk := right.(*objects.Number)
		if leftOk && rightOk {
			return &objects.Number{Value: leftNum.Value + rightNum.Value}
		}
		if left.GetType() == objects.StringType || right.GetType() == objects.StringType {
			return &objects.String{Value: left.ToString() + right.ToString()}
		}
		return e.runtimeError(op, "Operands must be two numbers or two strings.")

	case lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		leftNum, leftOk := left.(*objects.Number)
		rightNum, rightOk := right.(*objects.Number)
		if !leftOk || !rightOk {
			return e.runtimeError(op, "Operands must be numbers.")
		}
		switch op.Type {
		case lexer.MINUS:
			return &objects.Number{Value: leftNum.Value - rightNum.Value}
		case lexer.STAR:
			return &objects.Number{Value: leftNum.Value * rightNum.Value}
		case lexer.SLASH:
			return &objects.Number{Value: leftNum.Value / rightNum.Value}
		default:
			return &objects.Number{Value: math.Mod(leftNum.Value, rightNum.Value)}
		}

	case lexer.GT, lexer.GT_EQ, lexer.LT, lexer.LT_EQ:
		leftNum, leftOk := left.(*objects.Number)
		rightNum, rightOk := right.(*objects.Number)
		if !leftOk || !rightOk {
			return e.runtimeError(op, "Operands must be numbers.")
		}
		switch op.Type {
		case lexer.GT:
			return &objects.Boolean{Value: leftNum.Value > rightNum.Value}
		case lexer.GT_EQ:
			return &objects.Boolean{Value: leftNum.Value >= rightNum.Value}
		case lexer.LT:
			return &objects.Boolean{Value: leftNum.Value < rightNum.Value}
		default:
			return &objects.Boolean{Value: leftNum.Value <= rightNum.Value}
		}

	case lexer.EQ_EQ:
		return &objects.Boolean{Value: Equals(left, right)}
	case lexer.BANG_EQ:
		return &objects.Boolean{Value: !Equals(left, right)}
	}

	return &objects.Nil{}
}

// evalLogical short-circuits: 'or' yields the left operand when truthy,
// 'and' yields it when falsy; otherwise the right operand's value is the
// result. The actual operand values come through, not coerced booleans.
func (e *Evaluator) evalLogical(n *parser.LogicalExpressionNode) objects.LoxObject {
	left := e.evalExpression(n.Left)
	if IsError(left) {
		return left
	}

	if n.Operator.Type == lexer.OR {
		if Truthy(left) {
			return left
		}
	} else {
		if !Truthy(left) {
			return left
		}
	}

	return e.evalExpression(n.Right)
}

// evalAssignment evaluates the right-hand side, applies the compound
// operator against the current value when present, and writes the result
// back through the hop-count table or the globals.
func (e *Evaluator) evalAssignment(n *parser.AssignmentExpressionNode) objects.LoxObject {
	value := e.evalExpression(n.Value)
	if IsError(value) {
		return value
	}

	if n.Operator != nil {
		current := e.lookUpVariable(n.Name, n)
		if IsError(current) {
			return current
		}
		value = e.applyBinary(*n.Operator, current, value)
		if IsError(value) {
			return value
		}
	}

	if depth, ok := e.Locals[n]; ok {
		e.Scp.AssignAt(depth, n.Name.Literal, value)
		return value
	}

	if !e.Globals.Assign(n.Name.Literal, value) {
		return e.runtimeError(n.Name, "Undefined variable '%s'.", n.Name.Literal)
	}
	return value
}

// evalCall evaluates the callee and the arguments left to right, checks
// the arity, and dispatches on the callee's kind: user function, builtin,
// or class construction.
func (e *Evaluator) evalCall(n *parser.CallExpressionNode) objects.LoxObject {
	callee := e.evalExpression(n.Callee)
	if IsError(callee) {
		return callee
	}

	args := make([]objects.LoxObject, 0, len(n.Arguments))
	for _, argExpr := range n.Arguments {
		arg := e.evalExpression(argExpr)
		if IsError(arg) {
			return arg
		}
		args = append(args, arg)
	}

	switch fn := callee.(type) {
	case *function.Function:
		if len(args) != fn.Arity() {
			return e.runtimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return e.CallFunction(fn, args)

	case *std.Builtin:
		if len(args) != fn.Arity {
			return e.runtimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity, len(args))
		}
		return fn.Callback(e, e.Writer, args...)

	case *objects.Class:
		if len(args) != fn.Arity() {
			return e.runtimeError(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return e.instantiate(fn, args)
	}

	return e.runtimeError(n.Paren, "Can only call functions and classes.")
}
