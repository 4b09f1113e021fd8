// Package std - io.go
// This file defines the I/O builtin functions for the Lox language:
// writing a value to standard output and reading a line from standard
// input. Both operate through the writer and reader the evaluator was
// constructed with, so tests can capture and script them.
package std

import (
	"fmt"
	"io"
	"strings"

	"github.com/cubedhuang/lox/objects"
)

var ioMethods = []*Builtin{
	{Name: "print", Arity: 1, Callback: print},
	{Name: "input", Arity: 1, Callback: input},
}

// init registers the I/O methods as global builtins.
func init() {
	Builtins = append(Builtins, ioMethods...)
}

// print writes the stringified value to the output with a trailing newline.
//
// Syntax: print(value)
//
// Usage:
//
//	Accepts any value and writes its string form: numbers without a
//	trailing ".0" when integral, "nil" for nil, "<fun NAME>" for
//	functions, and so on. Returns nil.
//
// Example:
//
//	print("Hello, " + name);
func print(rt Runtime, writer io.Writer, args ...objects.LoxObject) objects.LoxObject {
	fmt.Fprintln(writer, args[0].ToString())
	return &objects.Nil{}
}

// input writes the argument as a prompt, then blocks reading one line from
// standard input and returns it as a string. The trailing line break is not
// part of the result.
//
// Syntax: input(prompt)
//
// Example:
//
//	var name = input("Your name: ");
func input(rt Runtime, writer io.Writer, args ...objects.LoxObject) objects.LoxObject {
	fmt.Fprint(writer, args[0].ToString())

	line, _ := rt.GetInputReader().ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	return &objects.String{Value: line}
}
