package objects

import "fmt"

// FunctionInterface is the view of a callable method that classes hold.
// The concrete type is function.Function; keeping this interface here breaks
// the import cycle between the objects and function packages. The evaluator
// type-asserts back to the concrete type when it needs to bind or call.
type FunctionInterface interface {
	LoxObject
	// GetName returns the declared method name
	GetName() string
	// Arity returns the number of parameters the method declares
	Arity() int
}

// Class represents a user-defined (or built-in) class. A class holds its
// name, an optional superclass, and its method table. Classes are callable:
// calling a class constructs an instance.
type Class struct {
	Name       string                       // Declared class name
	Superclass *Class                       // Optional superclass, nil for base classes
	Methods    map[string]FunctionInterface // Method name -> function value
}

// FindMethod looks up a method by name on this class, walking the
// superclass chain until the method is found or the chain ends.
//
// Parameters:
//   - name: The method name to look up
//
// Returns:
//   - FunctionInterface: The method, or nil when no class on the chain defines it
func (c *Class) FindMethod(name string) FunctionInterface {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity returns the number of arguments a construction call expects:
// the arity of the class's initializer when one exists anywhere on the
// chain, and zero otherwise.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// GetType returns the type of the Class object
func (c *Class) GetType() LoxType {
	return ClassType
}

// ToString returns the class's string form (e.g., "<class Box>")
func (c *Class) ToString() string {
	return fmt.Sprintf("<class %s>", c.Name)
}

// ToObject returns a detailed representation of the class
func (c *Class) ToObject() string {
	if c.Superclass != nil {
		return fmt.Sprintf("<class %s < %s>", c.Name, c.Superclass.Name)
	}
	return c.ToString()
}

// Instance represents an instance of a class. Fields live on the instance;
// methods live on the class chain. Field writes create entries, so the set
// of fields is open.
type Instance struct {
	Class  *Class               // The instantiated class
	Fields map[string]LoxObject // Field name -> value
}

// NewInstance creates a fresh instance of the given class with no fields.
//
// Parameters:
//   - class: The class being instantiated
//
// Returns:
//   - *Instance: The new, empty instance
func NewInstance(class *Class) *Instance {
	return &Instance{
		Class:  class,
		Fields: make(map[string]LoxObject),
	}
}

// GetField returns the value of a field on this instance, if present.
// Method lookup is the evaluator's job; this only consults the field map.
func (i *Instance) GetField(name string) (LoxObject, bool) {
	v, ok := i.Fields[name]
	return v, ok
}

// SetField writes a field on this instance, creating it when absent.
func (i *Instance) SetField(name string, value LoxObject) {
	i.Fields[name] = value
}

// GetType returns the type of the Instance object
func (i *Instance) GetType() LoxType {
	return InstanceType
}

// ToString returns the instance's string form (e.g., "<Box instance>")
func (i *Instance) ToString() string {
	return fmt.Sprintf("<%s instance>", i.Class.Name)
}

// ToObject returns a detailed representation of the instance
func (i *Instance) ToObject() string {
	return fmt.Sprintf("<%s instance, %d fields>", i.Class.Name, len(i.Fields))
}
