// Package function defines user function values for the Lox runtime.
// It sits between the parser (which produces the declarations), the scope
// package (which provides the captured environment), and the objects
// package (whose FunctionInterface classes hold their methods through).
package function

import (
	"fmt"
	"strings"

	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/scope"
)

// Function represents a user-defined function or method value. It pairs the
// declaration's parameters and body with the scope that was active at the
// declaration site, which is what makes it a closure: the captured scope
// (and everything reachable through it) stays live while the function value
// lives.
//
// Fields:
//   - Name: The declared name, used for stringification and debugging
//   - Params: The parameter name tokens, bound to arguments on each call
//   - Body: The body statements, executed in a fresh scope per call
//   - Closure: The scope captured at the declaration site
//   - IsInitializer: Whether this is a class's 'init' method; initializer
//     calls always yield the instance regardless of the body's returns
type Function struct {
	Name          string                 // Name of the function
	Params        []lexer.Token          // Function parameter name tokens
	Body          []parser.StatementNode // Function body (statements to execute)
	Closure       *scope.Scope           // Captured scope for closures
	IsInitializer bool                   // True for methods named 'init'
}

// Arity returns the number of parameters the function declares. Calls must
// supply exactly this many arguments.
func (f *Function) Arity() int {
	return len(f.Params)
}

// GetName returns the declared function name. Together with Arity this
// implements objects.FunctionInterface, so classes can hold methods without
// importing this package.
func (f *Function) GetName() string {
	return f.Name
}

// Bind produces the bound-method form of this function for a specific
// instance: a fresh function value whose closure is the method's closure
// wrapped in one extra scope defining 'this'. Property access returns these
// so a method value remembers the instance it was pulled off of, and 'this'
// inside the body resolves at a fixed one-hop distance from the call scope.
//
// Parameters:
//   - instance: The instance to bind 'this' to
//
// Returns:
//   - *Function: A new function value with 'this' pre-bound
func (f *Function) Bind(instance objects.LoxObject) *Function {
	env := scope.NewScope(f.Closure)
	env.Bind("this", instance)
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Closure:       env,
		IsInitializer: f.IsInitializer,
	}
}

// GetType returns the type identifier for this Function object.
func (f *Function) GetType() objects.LoxType {
	return objects.FunctionType
}

// ToString returns the function's string form (e.g., "<fun add>").
func (f *Function) ToString() string {
	return fmt.Sprintf("<fun %s>", f.Name)
}

// ToObject returns a detailed string representation of the function,
// including its parameter names, useful for debugging and inspection.
//
// Example:
//
//	If f.Name = "add" and Params = ["a", "b"], this returns:
//	"<fun add(a, b)>"
func (f *Function) ToObject() string {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = param.Literal
	}
	return fmt.Sprintf("<fun %s(%s)>", f.Name, strings.Join(params, ", "))
}
