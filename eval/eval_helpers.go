package eval

import "github.com/cubedhuang/lox/objects"

// IsError reports whether an evaluation result is a runtime error signal.
func IsError(obj objects.LoxObject) bool {
	if obj == nil {
		return false
	}
	_, ok := obj.(*objects.Error)
	return ok
}

// IsReturn reports whether an evaluation result is a non-local return
// signal.
func IsReturn(obj objects.LoxObject) bool {
	if obj == nil {
		return false
	}
	_, ok := obj.(*objects.ReturnValue)
	return ok
}

// Truthy maps a value to a condition: nil and false are falsy, every other
// value (including 0 and "") is truthy.
func Truthy(obj objects.LoxObject) bool {
	switch v := obj.(type) {
	case *objects.Nil:
		return false
	case *objects.Boolean:
		return v.Value
	default:
		return true
	}
}

// Equals implements the language's '==': value equality for the value
// types (numbers, strings, booleans, nil) and reference identity for
// functions, classes, and instances. NaN follows float64 semantics and is
// not equal to itself.
func Equals(a objects.LoxObject, b objects.LoxObject) bool {
	switch av := a.(type) {
	case *objects.Number:
		bv, ok := b.(*objects.Number)
		return ok && av.Value == bv.Value
	case *objects.String:
		bv, ok := b.(*objects.String)
		return ok && av.Value == bv.Value
	case *objects.Boolean:
		bv, ok := b.(*objects.Boolean)
		return ok && av.Value == bv.Value
	case *objects.Nil:
		_, ok := b.(*objects.Nil)
		return ok
	default:
		// Reference types compare by identity.
		return a == b
	}
}
