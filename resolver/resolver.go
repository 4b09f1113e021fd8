// Package resolver implements the static name-resolution pre-pass of the
// Lox interpreter. It walks the AST once between parsing and evaluation,
// computing for every local variable reference the number of environment
// hops between the reference and its binding, and recording that distance
// in the evaluator's side table keyed by the node's identity. Names not
// found in any lexical scope are left unannotated and resolved dynamically
// against the globals at run time.
//
// The pass also enforces the language's purely static rules: no reading a
// local in its own initializer, no redeclaration within one scope, no
// return outside a function, no value-return from an initializer, and no
// this/super outside their classes. Errors are reported to the shared sink
// and traversal continues, so one bad construct does not hide the next.
package resolver

import (
	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/parser"
)

// Bindings receives the resolver's output. The evaluator implements it by
// storing the depth into its hop-count table. Keeping this an interface
// avoids a package cycle between resolver and eval.
type Bindings interface {
	Resolve(expr parser.ExpressionNode, depth int)
}

// FunctionKind classifies the function body currently being resolved.
type FunctionKind string

const (
	// FunctionNone means resolution is at top-level code
	FunctionNone FunctionKind = "NONE"
	// FunctionPlain means inside an ordinary function declaration
	FunctionPlain FunctionKind = "FUNCTION"
	// FunctionMethod means inside a class method
	FunctionMethod FunctionKind = "METHOD"
	// FunctionInitializer means inside a method named 'init'
	FunctionInitializer FunctionKind = "INITIALIZER"
)

// ClassKind classifies the class body currently being resolved.
type ClassKind string

const (
	// ClassNone means resolution is outside any class
	ClassNone ClassKind = "NONE"
	// ClassPlain means inside a class with no superclass
	ClassPlain ClassKind = "CLASS"
	// ClassSub means inside a class that declares a superclass
	ClassSub ClassKind = "SUBCLASS"
)

// Resolver holds the state of one resolution pass: the lexical scope stack
// and the function/class context used for the static checks.
//
// Each scope maps a name to whether it is fully defined yet: declare()
// inserts the name as false, define() flips it to true once the
// initializer has been resolved. Reading a name that is still false in the
// innermost scope is the tell-tale of "var a = a;".
type Resolver struct {
	Scopes   []map[string]bool // Lexical scope stack, innermost last
	Bindings Bindings          // Destination for hop-count annotations
	Sink     *diag.Reporter    // Shared diagnostic sink

	currentFunction FunctionKind // The enclosing function kind
	currentClass    ClassKind    // The enclosing class kind
}

// NewResolver creates a resolver that writes hop counts into bindings and
// diagnostics into sink. The scope stack starts with one outermost scope
// holding top-level declarations.
func NewResolver(bindings Bindings, sink *diag.Reporter) *Resolver {
	return &Resolver{
		Scopes:          []map[string]bool{make(map[string]bool)},
		Bindings:        bindings,
		Sink:            sink,
		currentFunction: FunctionNone,
		currentClass:    ClassNone,
	}
}

// ResolveProgram resolves a full top-level statement list. Running the pass
// twice over the same AST writes identical annotations; the side table's
// contents are a pure function of the tree.
func (res *Resolver) ResolveProgram(statements []parser.StatementNode) {
	for _, stmt := range statements {
		res.resolveStmt(stmt)
	}
}

// beginScope pushes a fresh innermost scope.
func (res *Resolver) beginScope() {
	res.Scopes = append(res.Scopes, make(map[string]bool))
}

// endScope pops the innermost scope.
func (res *Resolver) endScope() {
	res.Scopes = res.Scopes[:len(res.Scopes)-1]
}

// innermost returns the current innermost scope.
func (res *Resolver) innermost() map[string]bool {
	return res.Scopes[len(res.Scopes)-1]
}

// declare inserts a name into the innermost scope as not-yet-defined.
// Declaring a name twice in the same scope is an error.
func (res *Resolver) declare(name lexer.Token) {
	scope := res.innermost()
	if _, exists := scope[name.Literal]; exists {
		res.Sink.TokenError(name, "Variable with this name already declared in this scope.")
	}
	scope[name.Literal] = false
}

// define marks a declared name as fully initialized and readable.
func (res *Resolver) define(name lexer.Token) {
	res.innermost()[name.Literal] = true
}

// resolveLocal walks the scope stack from innermost to outermost looking
// for name. The first scope containing it determines the hop count
// (innermost = 0), which is recorded against the node's identity. A name
// found in no scope is a global and gets no annotation.
func (res *Resolver) resolveLocal(expr parser.ExpressionNode, name string) {
	for i := len(res.Scopes) - 1; i >= 0; i-- {
		if _, ok := res.Scopes[i][name]; ok {
			res.Bindings.Resolve(expr, len(res.Scopes)-1-i)
			return
		}
	}
}

// resolveFunction resolves a function declaration's parameters and body in
// one fresh scope, tracking the function kind for the return checks. The
// single scope mirrors the single environment a call creates at run time,
// keeping hop counts aligned.
func (res *Resolver) resolveFunction(fn *parser.FunctionStatementNode, kind FunctionKind) {
	enclosing := res.currentFunction
	res.currentFunction = kind

	res.beginScope()
	for _, param := range fn.FuncParams {
		res.declare(param)
		res.define(param)
	}
	for _, stmt := range fn.FuncBody {
		res.resolveStmt(stmt)
	}
	res.endScope()

	res.currentFunction = enclosing
}

// resolveStmt resolves one statement.
func (res *Resolver) resolveStmt(stmt parser.StatementNode) {
	switch n := stmt.(type) {
	case *parser.ExpressionStatementNode:
		res.resolveExpr(n.Expr)

	case *parser.DeclarativeStatementNode:
		res.declare(n.Name)
		if n.Initializer != nil {
			res.resolveExpr(n.Initializer)
		}
		res.define(n.Name)

	case *parser.BlockStatementNode:
		res.beginScope()
		for _, inner := range n.Statements {
			res.resolveStmt(inner)
		}
		res.endScope()

	case *parser.IfStatementNode:
		res.resolveExpr(n.Condition)
		res.resolveStmt(n.ThenBranch)
		if n.ElseBranch != nil {
			res.resolveStmt(n.ElseBranch)
		}

	case *parser.WhileLoopStatementNode:
		res.resolveExpr(n.Condition)
		res.resolveStmt(n.Body)

	case *parser.FunctionStatementNode:
		// Declare and define eagerly so the function can call itself.
		res.declare(n.FuncName)
		res.define(n.FuncName)
		res.resolveFunction(n, FunctionPlain)

	case *parser.ReturnStatementNode:
		if res.currentFunction == FunctionNone {
			res.Sink.TokenError(n.Keyword, "Cannot return from top-level code.")
		}
		if n.Value != nil {
			if res.currentFunction == FunctionInitializer {
				res.Sink.TokenError(n.Keyword, "Cannot return a value from an initializer.")
			}
			res.resolveExpr(n.Value)
		}

	case *parser.ClassStatementNode:
		res.resolveClass(n)
	}
}

// resolveClass resolves a class declaration: the class name, the optional
// superclass, and every method, with the implicit 'super' and 'this'
// scopes pushed around the method bodies in the same order the evaluator
// pushes the matching environments.
func (res *Resolver) resolveClass(n *parser.ClassStatementNode) {
	enclosing := res.currentClass
	res.currentClass = ClassPlain

	res.declare(n.Name)
	res.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name == n.Name.Literal {
			res.Sink.TokenError(n.Superclass.Token, "A class cannot inherit from itself.")
		}
		res.currentClass = ClassSub
		res.resolveExpr(n.Superclass)

		// The scope holding 'super', mirroring the environment the
		// evaluator wraps around a subclass's methods.
		res.beginScope()
		res.innermost()["super"] = true
	}

	// The scope holding 'this', mirroring the environment method binding
	// creates.
	res.beginScope()
	res.innermost()["this"] = true

	for _, method := range n.Methods {
		kind := FunctionMethod
		if method.FuncName.Literal == "init" {
			kind = FunctionInitializer
		}
		res.resolveFunction(method, kind)
	}

	res.endScope()
	if n.Superclass != nil {
		res.endScope()
	}

	res.currentClass = enclosing
}

// resolveExpr resolves one expression.
func (res *Resolver) resolveExpr(expr parser.ExpressionNode) {
	switch n := expr.(type) {
	case *parser.LiteralExpressionNode:
		// Nothing to resolve.

	case *parser.ParenthesizedExpressionNode:
		res.resolveExpr(n.Expr)

	case *parser.BinaryExpressionNode:
		res.resolveExpr(n.Left)
		res.resolveExpr(n.Right)

	case *parser.LogicalExpressionNode:
		res.resolveExpr(n.Left)
		res.resolveExpr(n.Right)

	case *parser.UnaryExpressionNode:
		res.resolveExpr(n.Right)

	case *parser.IdentifierExpressionNode:
		if defined, inScope := res.innermost()[n.Name]; inScope && !defined {
			res.Sink.TokenError(n.Token, "Can't read local variable in its own initializer.")
		}
		res.resolveLocal(n, n.Name)

	case *parser.AssignmentExpressionNode:
		res.resolveExpr(n.Value)
		res.resolveLocal(n, n.Name.Literal)

	case *parser.CallExpressionNode:
		res.resolveExpr(n.Callee)
		for _, arg := range n.Arguments {
			res.resolveExpr(arg)
		}

	case *parser.GetExpressionNode:
		res.resolveExpr(n.Object)

	case *parser.SetExpressionNode:
		res.resolveExpr(n.Value)
		res.resolveExpr(n.Object)

	case *parser.ThisExpressionNode:
		if res.currentClass == ClassNone {
			res.Sink.TokenError(n.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		res.resolveLocal(n, "this")

	case *parser.SuperExpressionNode:
		switch res.currentClass {
		case ClassNone:
			res.Sink.TokenError(n.Keyword, "Cannot use 'super' outside of a class.")
			return
		case ClassPlain:
			res.Sink.TokenError(n.Keyword, "Cannot use 'super' in a class with no superclass.")
			return
		}
		res.resolveLocal(n, "super")
	}
}
