// Package std defines the built-in host operations available to Lox
// programs. The registry is small and fixed: print, input, and clock,
// plus the built-in Object base class. Builtins are registered globally in
// this package and injected into the evaluator's global scope at
// construction time.
package std

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cubedhuang/lox/objects"
)

// Runtime defines the interface the evaluator exposes to builtins, giving
// them access to host facilities (currently the blocking line reader used
// by input).
type Runtime interface {
	GetInputReader() *bufio.Reader
}

// CallbackFunc is the function signature for builtin implementations.
// It takes the runtime, an io.Writer for output, and the evaluated
// arguments, returning the builtin's result. Arity is checked by the
// evaluator before the callback runs, so implementations can index args
// directly.
type CallbackFunc func(rt Runtime, writer io.Writer, args ...objects.LoxObject) objects.LoxObject

// Builtin represents a builtin function with a name, a fixed arity, and its
// implementation callback. Builtin values live in the global scope and are
// callable like any user function.
type Builtin struct {
	Name     string       // The name of the builtin function (e.g., "print")
	Arity    int          // The exact number of arguments the builtin accepts
	Callback CallbackFunc // The function that implements the builtin behavior
}

// GetType returns the type identifier for builtin callables.
func (b *Builtin) GetType() objects.LoxType {
	return objects.NativeType
}

// ToString returns the opaque native-function form.
func (b *Builtin) ToString() string {
	return "<native fn>"
}

// ToObject returns a detailed representation including the builtin's name.
func (b *Builtin) ToObject() string {
	return fmt.Sprintf("<native fn %s/%d>", b.Name, b.Arity)
}

// Builtins is the global registry of builtin functions. Entries are added
// by the init functions of this package's per-concern files.
var Builtins = make([]*Builtin, 0)

// NewObjectClass returns the built-in Object base class: an empty class
// with no superclass and no methods. Constructing it yields a featureless
// instance that only supports field access.
func NewObjectClass() *objects.Class {
	return &objects.Class{
		Name:    "Object",
		Methods: make(map[string]objects.FunctionInterface),
	}
}
