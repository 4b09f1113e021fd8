package eval

import (
	"github.com/cubedhuang/lox/function"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/scope"
)

// evalClassDeclaration evaluates a class declaration.
//
// The order matters and mirrors what the resolver assumed:
//  1. Evaluate the optional superclass (it must be a class).
//  2. Define the class name in the current scope, initially nil, so the
//     name exists while the body is processed.
//  3. For a subclass, wrap the current scope in one extra scope binding
//     'super' to the superclass; every method closes over that scope, so
//     'super' inside a method resolves at a fixed distance forever.
//  4. Build the method table, marking methods named 'init' as initializers.
//  5. Drop back to the enclosing scope and assign the finished class to
//     the already-defined name.
func (e *Evaluator) evalClassDeclaration(n *parser.ClassStatementNode) objects.LoxObject {
	var superclass *objects.Class
	if n.Superclass != nil {
		superValue := e.evalExpression(n.Superclass)
		if IsError(superValue) {
			return superValue
		}
		sc, ok := superValue.(*objects.Class)
		if !ok {
			return e.runtimeError(n.Superclass.Token, "Superclass must be a class.")
		}
		superclass = sc
	}

	e.Scp.Bind(n.Name.Literal, &objects.Nil{})

	closure := e.Scp
	if superclass != nil {
		closure = scope.NewScope(e.Scp)
		closure.Bind("super", superclass)
	}

	methods := make(map[string]objects.FunctionInterface, len(n.Methods))
	for _, m := range n.Methods {
		methods[m.FuncName.Literal] = &function.Function{
			Name:          m.FuncName.Literal,
			Params:        m.FuncParams,
			Body:          m.FuncBody,
			Closure:       closure,
			IsInitializer: m.FuncName.Literal == "init",
		}
	}

	class := &objects.Class{
		Name:       n.Name.Literal,
		Superclass: superclass,
		Methods:    methods,
	}
	e.Scp.Assign(n.Name.Literal, class)
	return nil
}

// instantiate constructs an instance of a class. When the class chain
// defines an 'init' method it is bound to the fresh instance and called
// with the arguments; either way the call's value is the instance (the
// initializer's own completion value is ignored by construction, and
// CallFunction already forces 'this' for initializer returns).
//
// Parameters:
//   - class: The class being constructed; arity has already been checked
//   - args: The evaluated constructor arguments
//
// Returns:
//   - objects.LoxObject: The new instance, or an Error from the initializer
func (e *Evaluator) instantiate(class *objects.Class, args []objects.LoxObject) objects.LoxObject {
	instance := objects.NewInstance(class)

	if init := class.FindMethod("init"); init != nil {
		bound := init.(*function.Function).Bind(instance)
		if result := e.CallFunction(bound, args); IsError(result) {
			return result
		}
	}

	return instance
}

// evalGet evaluates property access. Only instances have properties.
// Fields shadow methods; a method lookup produces a fresh bound method
// whose closure carries 'this' at hop zero.
func (e *Evaluator) evalGet(n *parser.GetExpressionNode) objects.LoxObject {
	obj := e.evalExpression(n.Object)
	if IsError(obj) {
		return obj
	}

	instance, ok := obj.(*objects.Instance)
	if !ok {
		return e.runtimeError(n.Name, "Only instances have properties.")
	}

	return e.getProperty(instance, n.Name)
}

// getProperty reads a property off an instance: the field when present,
// else a bound method from the class chain, else an error.
func (e *Evaluator) getProperty(instance *objects.Instance, name lexer.Token) objects.LoxObject {
	if value, ok := instance.GetField(name.Literal); ok {
		return value
	}

	if method := instance.Class.FindMethod(name.Literal); method != nil {
		return method.(*function.Function).Bind(instance)
	}

	return e.runtimeError(name, "Undefined property '%s'.", name.Literal)
}

// evalSet evaluates property assignment. The object must be an instance;
// the value is evaluated next, a compound operator folds in the property's
// current value, and the field is written (created when absent). The
// written value is the expression's result.
func (e *Evaluator) evalSet(n *parser.SetExpressionNode) objects.LoxObject {
	obj := e.evalExpression(n.Object)
	if IsError(obj) {
		return obj
	}

	instance, ok := obj.(*objects.Instance)
	if !ok {
		return e.runtimeError(n.Name, "Only instances have properties.")
	}

	value := e.evalExpression(n.Value)
	if IsError(value) {
		return value
	}

	if n.Operator != nil {
		current := e.getProperty(instance, n.Name)
		if IsError(current) {
			return current
		}
		value = e.applyBinary(*n.Operator, current, value)
		if IsError(value) {
			return value
		}
	}

	instance.SetField(n.Name.Literal, value)
	return value
}

// evalSuper evaluates a superclass method access. The resolver recorded
// the distance d of the 'super' binding; 'this' lives one scope closer at
// d-1 because method binding inserts it inside the class's super scope.
// The method is looked up starting at the superclass, skipping the
// overriding class entirely, and comes back bound to the current instance.
func (e *Evaluator) evalSuper(n *parser.SuperExpressionNode) objects.LoxObject {
	depth := e.Locals[n]

	superObj, _ := e.Scp.GetAt(depth, "super")
	superclass, ok := superObj.(*objects.Class)
	if !ok {
		return e.runtimeError(n.Keyword, "Cannot use 'super' outside of a class.")
	}

	thisObj, _ := e.Scp.GetAt(depth-1, "this")
	instance, ok := thisObj.(*objects.Instance)
	if !ok {
		return e.runtimeError(n.Keyword, "Cannot use 'super' outside of a class.")
	}

	method := superclass.FindMethod(n.Method.Literal)
	if method == nil {
		return e.runtimeError(n.Method, "Undefined property '%s'.", n.Method.Literal)
	}

	return method.(*function.Function).Bind(instance)
}
