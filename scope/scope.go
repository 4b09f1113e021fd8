// Package scope implements the lexical environment chain for the Lox
// interpreter. Each Scope maps identifiers to values and optionally points
// to an enclosing scope, forming a tree that is walked linearly from inner
// to outer. Function values capture the scope active at their declaration
// site, which keeps that scope (and all its ancestors) alive for as long as
// the function value lives.
package scope

import "github.com/cubedhuang/lox/objects"

// Scope defines a lexical scope boundary for variable lifetime and
// accessibility.
//
// Scope implements a hierarchical scope chain that enables lexical scoping
// and closures. Each scope maintains its own variable bindings and can access
// variables from parent scopes. This structure supports:
//   - Variable shadowing: inner scopes can redefine variables from outer scopes
//   - Closures: functions capture their defining scope and can access outer variables
//   - Block scoping: each block (function body, loop, etc.) has its own scope
//
// Scopes are mutated under aliasing: multiple closures may hold references to
// the same scope, and assignments made through one are visible to the others.
type Scope struct {
	// Variables maps variable names to their current values in this scope
	Variables map[string]objects.LoxObject

	// Parent points to the enclosing scope, forming a scope chain
	// nil indicates this is the global (root) scope
	Parent *Scope
}

// NewScope creates and initializes a new Scope with the specified parent.
//
// Parameters:
//   - parent: The enclosing scope, or nil for the global scope
//
// Returns:
//   - *Scope: A fully initialized scope ready for variable bindings
//
// Example usage:
//
//	globals := NewScope(nil)        // Create the global scope
//	fnScope := NewScope(globals)    // Create a function scope
//	blkScope := NewScope(fnScope)   // Create a nested block scope
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Variables: make(map[string]objects.LoxObject),
		Parent:    parent,
	}
}

// LookUp searches for a variable by name in this scope and all parents.
// The innermost binding wins, which implements shadowing. This is the
// dynamic path used for names the resolver did not annotate (globals).
//
// Parameters:
//   - varName: The name of the variable to look up
//
// Returns:
//   - objects.LoxObject: The value bound to the variable (if found)
//   - bool: true if the variable was found in this scope or any parent
func (s *Scope) LookUp(varName string) (objects.LoxObject, bool) {
	obj, ok := s.Variables[varName]
	if !ok && s.Parent != nil {
		return s.Parent.LookUp(varName)
	}
	return obj, ok
}

// Bind creates or replaces a variable binding in this scope only, without
// affecting parents. Used for declarations and parameter binding. Binding
// an existing name silently replaces it: redeclaration is the resolver's
// error to report, not the environment's.
//
// Parameters:
//   - varName: The name of the variable to bind
//   - obj: The value to bind to the variable
func (s *Scope) Bind(varName string, obj objects.LoxObject) {
	s.Variables[varName] = obj
}

// Assign updates an existing variable in the scope where it was originally
// defined, walking the chain from inner to outer. This is what makes
// closures able to mutate captured variables.
//
// Parameters:
//   - varName: The name of the variable to assign to
//   - obj: The new value to assign
//
// Returns:
//   - bool: true if the variable was found somewhere on the chain and updated
func (s *Scope) Assign(varName string, obj objects.LoxObject) bool {
	if _, ok := s.Variables[varName]; ok {
		s.Variables[varName] = obj
		return true
	}
	if s.Parent != nil {
		return s.Parent.Assign(varName, obj)
	}
	return false
}

// Ancestor returns the scope exactly hops links up the parent chain.
// Hop zero is the receiver itself. The resolver guarantees the chain is
// deep enough for every annotated access; a short chain returns nil.
func (s *Scope) Ancestor(hops int) *Scope {
	env := s
	for i := 0; i < hops && env != nil; i++ {
		env = env.Parent
	}
	return env
}

// GetAt reads a variable directly from the scope hops links up the chain,
// without searching. This is the static path for resolver-annotated
// accesses: the resolver computed where the binding lives, so no walk is
// needed.
//
// Parameters:
//   - hops: The number of parent links to traverse
//   - varName: The variable to read in that scope
//
// Returns:
//   - objects.LoxObject: The bound value (if present)
//   - bool: true if the ancestor exists and binds the name
func (s *Scope) GetAt(hops int, varName string) (objects.LoxObject, bool) {
	env := s.Ancestor(hops)
	if env == nil {
		return nil, false
	}
	obj, ok := env.Variables[varName]
	return obj, ok
}

// AssignAt writes a variable directly in the scope hops links up the
// chain, without searching. The static counterpart of Assign.
//
// Parameters:
//   - hops: The number of parent links to traverse
//   - varName: The variable to write in that scope
//   - obj: The new value
//
// Returns:
//   - bool: true if the ancestor exists
func (s *Scope) AssignAt(hops int, varName string, obj objects.LoxObject) bool {
	env := s.Ancestor(hops)
	if env == nil {
		return false
	}
	env.Variables[varName] = obj
	return true
}
