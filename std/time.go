// Package std - time.go
// This file defines the clock builtin, the language's only access to
// wall-clock time.
package std

import (
	"io"
	"time"

	"github.com/cubedhuang/lox/objects"
)

var timeMethods = []*Builtin{
	{Name: "clock", Arity: 0, Callback: clock},
}

// init registers the time methods as global builtins.
func init() {
	Builtins = append(Builtins, timeMethods...)
}

// clock returns the wall-clock time as milliseconds since the Unix epoch.
//
// Syntax: clock()
//
// Example:
//
//	var start = clock();
//	// ... work ...
//	print(clock() - start);
func clock(rt Runtime, writer io.Writer, args ...objects.LoxObject) objects.LoxObject {
	return &objects.Number{Value: float64(time.Now().UnixMilli())}
}
