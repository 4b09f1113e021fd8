package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/function"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/scope"
	"github.com/cubedhuang/lox/std"
)

// Evaluator holds the state for evaluating Lox AST nodes: the global scope,
// the current scope, the resolver's hop-count table, and the host I/O the
// builtins use. It serves as the main execution engine of the interpreter.
//
// Evaluation is single-threaded and synchronous. Expressions evaluate
// strictly left to right, and the only blocking points are the host I/O
// builtins.
//
// Fields:
//   - Globals: The global scope; builtins live here, and unannotated names
//     resolve against it dynamically
//   - Scp: The current scope; blocks and calls swap it and restore it
//   - Locals: The resolver's side table mapping a variable-bearing node's
//     identity to its environment hop count
//   - Writer: Output writer for builtin functions (default: os.Stdout)
//   - Reader: Input reader for the input builtin (default: os.Stdin)
//   - Sink: The shared diagnostic sink runtime errors are reported to
type Evaluator struct {
	Globals *scope.Scope                  // Global scope
	Scp     *scope.Scope                  // Current scope for variable bindings
	Locals  map[parser.ExpressionNode]int // Hop-count side table, keyed by node identity
	Writer  io.Writer                     // Output writer for builtin functions
	Reader  *bufio.Reader                 // Input reader for builtin functions
	Sink    *diag.Reporter                // Shared diagnostic sink
}

// NewEvaluator creates and initializes a new Evaluator.
//
// This constructor performs the following initialization:
//   - Creates the global scope and points the current scope at it
//   - Registers every builtin from the std registry in the global scope
//   - Binds the built-in Object base class
//   - Wires output to os.Stdout and input to os.Stdin
//
// Parameters:
//   - sink: The shared diagnostic sink for runtime errors
//
// Returns:
//   - *Evaluator: A fully initialized evaluator ready to execute code
//
// Example usage:
//
//	ev := NewEvaluator(reporter)
//	ev.Run(statements)
func NewEvaluator(sink *diag.Reporter) *Evaluator {
	globals := scope.NewScope(nil)
	ev := &Evaluator{
		Globals: globals,
		Scp:     globals,
		Locals:  make(map[parser.ExpressionNode]int),
		Writer:  os.Stdout,
		Reader:  bufio.NewReader(os.Stdin),
		Sink:    sink,
	}
	for _, builtin := range std.Builtins {
		globals.Bind(builtin.Name, builtin)
	}
	globals.Bind("Object", std.NewObjectClass())
	return ev
}

// SetWriter redirects output from builtin functions (like print) to any
// io.Writer, which tests use to capture program output.
func (e *Evaluator) SetWriter(w io.Writer) {
	e.Writer = w
}

// SetReader redirects the input source for the input builtin.
func (e *Evaluator) SetReader(r io.Reader) {
	e.Reader = bufio.NewReader(r)
}

// GetInputReader returns the buffered input reader.
// This implements the std.Runtime interface.
func (e *Evaluator) GetInputReader() *bufio.Reader {
	return e.Reader
}

// Resolve records the hop count for a variable-bearing node. This
// implements the resolver.Bindings interface; the resolver calls it once
// per resolved local reference.
func (e *Evaluator) Resolve(expr parser.ExpressionNode, depth int) {
	e.Locals[expr] = depth
}

// Run executes a resolved top-level statement list. A runtime error is
// reported to the sink and aborts the remainder of the list; the sink's
// HadRuntimeError flag tells the driver what happened. Run never panics.
//
// Parameters:
//   - statements: The resolved statements to execute
func (e *Evaluator) Run(statements []parser.StatementNode) {
	for _, stmt := range statements {
		result := e.execute(stmt)
		if err, ok := result.(*objects.Error); ok {
			e.Sink.RuntimeError(err.Token, err.Message)
			return
		}
	}
}

// CallFunction invokes a user function or bound method with already
// evaluated arguments. The call's scope is a child of the function's
// captured closure (not of the caller's scope), with the parameters bound
// in it. A return signal from the body is unwrapped here, which is what
// makes it invisible to the caller.
//
// Initializer calls yield 'this' from the closure no matter how the body
// completed, so construction always hands back the instance.
//
// Parameters:
//   - fn: The function to invoke; arity has already been checked
//   - args: The evaluated arguments, one per parameter
//
// Returns:
//   - objects.LoxObject: The call's value, or an Error from the body
func (e *Evaluator) CallFunction(fn *function.Function, args []objects.LoxObject) objects.LoxObject {
	env := scope.NewScope(fn.Closure)
	for i, param := range fn.Params {
		env.Bind(param.Literal, args[i])
	}

	result := e.executeBlock(fn.Body, env)
	if IsError(result) {
		return result
	}

	if fn.IsInitializer {
		this, _ := fn.Closure.GetAt(0, "this")
		return this
	}
	if ret, ok := result.(*objects.ReturnValue); ok {
		return ret.Value
	}
	return &objects.Nil{}
}

// lookUpVariable reads a variable through the hop-count table: annotated
// nodes read directly from the scope the resolver computed, everything else
// falls back to a dynamic lookup in the globals.
//
// Parameters:
//   - name: The name token, for the error position
//   - expr: The referencing node, whose identity keys the side table
//
// Returns:
//   - objects.LoxObject: The bound value, or an Error for an undefined global
func (e *Evaluator) lookUpVariable(name lexer.Token, expr parser.ExpressionNode) objects.LoxObject {
	if depth, ok := e.Locals[expr]; ok {
		if obj, found := e.Scp.GetAt(depth, name.Literal); found {
			return obj
		}
		return e.runtimeError(name, "Undefined variable '%s'.", name.Literal)
	}

	obj, found := e.Globals.LookUp(name.Literal)
	if !found {
		return e.runtimeError(name, "Undefined variable '%s'.", name.Literal)
	}
	return obj
}

// runtimeError creates a runtime error object carrying the offending token
// for position reporting. The error propagates in-band through the
// evaluation until Run (or the REPL) hands it to the sink.
func (e *Evaluator) runtimeError(tok lexer.Token, format string, a ...interface{}) *objects.Error {
	return &objects.Error{
		Message: fmt.Sprintf(format, a...),
		Token:   tok,
	}
}
