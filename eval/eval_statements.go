package eval

import (
	"github.com/cubedhuang/lox/function"
	"github.com/cubedhuang/lox/objects"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/scope"
)

// execute evaluates one statement. It returns nil on normal completion;
// a non-nil result is always a propagating signal: an *objects.Error
// aborting the statement list, or an *objects.ReturnValue unwinding to the
// enclosing function call.
func (e *Evaluator) execute(stmt parser.StatementNode) objects.LoxObject {
	switch n := stmt.(type) {
	case *parser.ExpressionStatementNode:
		result := e.evalExpression(n.Expr)
		if IsError(result) {
			return result
		}
		// Value discarded.
		return nil

	case *parser.DeclarativeStatementNode:
		return e.evalVarDeclaration(n)

	case *parser.BlockStatementNode:
		return e.executeBlock(n.Statements, scope.NewScope(e.Scp))

	case *parser.IfStatementNode:
		return e.evalIf(n)

	case *parser.WhileLoopStatementNode:
		return e.evalWhile(n)

	case *parser.FunctionStatementNode:
		return e.evalFunctionDeclaration(n)

	case *parser.ReturnStatementNode:
		return e.evalReturn(n)

	case *parser.ClassStatementNode:
		return e.evalClassDeclaration(n)
	}

	return nil
}

// executeBlock runs a statement list in the given scope, restoring the
// previous scope on every exit path: normal completion, a runtime error,
// and a return signal unwinding from arbitrarily deep nesting all leave
// the evaluator's scope exactly as it was. The hop counts the resolver
// computed depend on this.
//
// Parameters:
//   - statements: The statements to run
//   - env: The scope to run them in
//
// Returns:
//   - objects.LoxObject: nil, or the propagating signal that stopped the list
func (e *Evaluator) executeBlock(statements []parser.StatementNode, env *scope.Scope) objects.LoxObject {
	previous := e.Scp
	e.Scp = env
	defer func() { e.Scp = previous }()

	for _, stmt := range statements {
		if result := e.execute(stmt); result != nil {
			return result
		}
	}
	return nil
}

// evalVarDeclaration evaluates the initializer (nil when absent) and
// defines the name in the current scope.
func (e *Evaluator) evalVarDeclaration(n *parser.DeclarativeStatementNode) objects.LoxObject {
	var value objects.LoxObject = &objects.Nil{}
	if n.Initializer != nil {
		value = e.evalExpression(n.Initializer)
		if IsError(value) {
			return value
		}
	}

	e.Scp.Bind(n.Name.Literal, value)
	return nil
}

// evalIf executes the branch selected by the condition's truthiness.
func (e *Evaluator) evalIf(n *parser.IfStatementNode) objects.LoxObject {
	condition := e.evalExpression(n.Condition)
	if IsError(condition) {
		return condition
	}

	if Truthy(condition) {
		return e.execute(n.ThenBranch)
	}
	if n.ElseBranch != nil {
		return e.execute(n.ElseBranch)
	}
	return nil
}

// evalWhile runs the body until the condition evaluates falsy. Signals
// from the body (errors, returns) stop the loop and propagate.
func (e *Evaluator) evalWhile(n *parser.WhileLoopStatementNode) objects.LoxObject {
	for {
		condition := e.evalExpression(n.Condition)
		if IsError(condition) {
			return condition
		}
		if !Truthy(condition) {
			return nil
		}

		if result := e.execute(n.Body); result != nil {
			return result
		}
	}
}

// evalFunctionDeclaration creates a function value capturing the current
// scope and defines the name in it. Capturing the scope itself (not a
// copy) is what gives all closures over one scope a shared view of its
// variables.
func (e *Evaluator) evalFunctionDeclaration(n *parser.FunctionStatementNode) objects.LoxObject {
	fn := &function.Function{
		Name:    n.FuncName.Literal,
		Params:  n.FuncParams,
		Body:    n.FuncBody,
		Closure: e.Scp,
	}
	e.Scp.Bind(n.FuncName.Literal, fn)
	return nil
}

// evalReturn evaluates the return value (nil when absent) and wraps it in
// the non-local return signal, which unwinds to the enclosing CallFunction.
func (e *Evaluator) evalReturn(n *parser.ReturnStatementNode) objects.LoxObject {
	var value objects.LoxObject = &objects.Nil{}
	if n.Value != nil {
		value = e.evalExpression(n.Value)
		if IsError(value) {
			return value
		}
	}
	return &objects.ReturnValue{Value: value}
}
