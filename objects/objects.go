// Package objects defines the runtime value model for the Lox language.
// It provides implementations for the value types (numbers, strings,
// booleans, nil) and the interpreter's in-band signals (return values and
// runtime errors). Classes and instances live in class.go. All types
// implement the LoxObject interface, which allows for type checking, the
// language's stringification rules, and object inspection.
package objects

import (
	"fmt"
	"strconv"

	"github.com/cubedhuang/lox/lexer"
)

// LoxType represents the type of a Lox object as a string constant.
// These constants are used to identify the type of objects in the language,
// enabling type checking and polymorphic behavior across object types.
type LoxType string

const (
	// NumberType represents 64-bit floating-point values
	NumberType LoxType = "number"
	// StringType represents string values
	StringType LoxType = "string"
	// BooleanType represents boolean (true/false) values
	BooleanType LoxType = "bool"
	// NilType represents the nil value
	NilType LoxType = "nil"
	// ErrorType represents runtime error objects with a message and position
	ErrorType LoxType = "error"
	// ReturnType represents the non-local return signal
	ReturnType LoxType = "return"

	// FunctionType represents user function objects (defined in the function package)
	FunctionType LoxType = "func"
	// NativeType represents built-in host functions (defined in the std package)
	NativeType LoxType = "native"
	// ClassType represents class objects
	ClassType LoxType = "class"
	// InstanceType represents class instances
	InstanceType LoxType = "object"
)

// LoxObject is the core interface that all Lox runtime values implement.
// It provides methods for type identification, the user-visible string
// representation, and a detailed representation for debugging.
type LoxObject interface {
	// GetType returns the LoxType of the object, used for type checking
	GetType() LoxType
	// ToString returns the language's stringification of the value:
	// nil -> "nil", booleans -> "true"/"false", numbers without a trailing
	// ".0" when integral, strings as themselves, "<fun NAME>",
	// "<native fn>", "<class NAME>", "<NAME instance>"
	ToString() string
	// ToObject returns a detailed string representation including type
	// information, useful for debugging and object inspection
	ToObject() string
}

// Number represents a 64-bit floating-point value in Lox.
// All numeric literals and arithmetic results are Numbers; there is no
// separate integer type.
type Number struct {
	Value float64 // The underlying floating-point value
}

// GetType returns the type of the Number object
func (n *Number) GetType() LoxType {
	return NumberType
}

// ToString returns the numeric string: integral values print without a
// trailing ".0" (e.g., "3"), everything else uses the host's shortest
// representation (e.g., "2.5").
func (n *Number) ToString() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// ToObject returns a detailed representation including type info (e.g., "<number(42)>")
func (n *Number) ToObject() string {
	return fmt.Sprintf("<number(%s)>", n.ToString())
}

// String represents a string value in Lox.
type String struct {
	Value string // The underlying string value
}

// GetType returns the type of the String object
func (s *String) GetType() LoxType {
	return StringType
}

// ToString returns the string value itself (e.g., "hello")
func (s *String) ToString() string {
	return s.Value
}

// ToObject returns a detailed representation including type info (e.g., "<string(hello)>")
func (s *String) ToObject() string {
	return fmt.Sprintf("<string(%s)>", s.Value)
}

// Boolean represents a boolean value in Lox.
type Boolean struct {
	Value bool // The underlying boolean value
}

// GetType returns the type of the Boolean object
func (b *Boolean) GetType() LoxType {
	return BooleanType
}

// ToString returns "true" or "false"
func (b *Boolean) ToString() string {
	return fmt.Sprintf("%t", b.Value)
}

// ToObject returns a detailed representation including type info (e.g., "<bool(true)>")
func (b *Boolean) ToObject() string {
	return fmt.Sprintf("<bool(%t)>", b.Value)
}

// Nil represents the nil value in Lox.
type Nil struct{}

// GetType returns the type of the Nil object
func (n *Nil) GetType() LoxType {
	return NilType
}

// ToString returns "nil"
func (n *Nil) ToString() string {
	return "nil"
}

// ToObject returns a detailed representation including type info
func (n *Nil) ToObject() string {
	return "<nil>"
}

// ReturnValue is the in-band non-local return signal. A return statement
// evaluates to a ReturnValue wrapping the returned object; every statement
// evaluator propagates it unchanged until the enclosing function call
// unwraps it. It is never observable from user code.
type ReturnValue struct {
	Value LoxObject // The value carried out of the function body
}

// GetType returns the type of the ReturnValue signal
func (r *ReturnValue) GetType() LoxType {
	return ReturnType
}

// ToString returns the string form of the carried value
func (r *ReturnValue) ToString() string {
	return r.Value.ToString()
}

// ToObject returns a detailed representation of the signal
func (r *ReturnValue) ToObject() string {
	return fmt.Sprintf("<return(%s)>", r.Value.ToString())
}

// Error represents a runtime error. It carries the offending token so the
// diagnostic sink can report the source position. Reaching an Error stops
// the current top-level statement list.
type Error struct {
	Message string      // The runtime error message
	Token   lexer.Token // The operator or name token the error is anchored to
}

// GetType returns the type of the Error object
func (e *Error) GetType() LoxType {
	return ErrorType
}

// ToString returns the error message
func (e *Error) ToString() string {
	return e.Message
}

// ToObject returns a detailed representation including type info
func (e *Error) ToObject() string {
	return fmt.Sprintf("<error(%s)>", e.Message)
}
