package std

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cubedhuang/lox/objects"
)

// fakeRuntime supplies scripted stdin to builtins under test.
type fakeRuntime struct {
	reader *bufio.Reader
}

func (r *fakeRuntime) GetInputReader() *bufio.Reader {
	return r.reader
}

func newFakeRuntime(stdin string) *fakeRuntime {
	return &fakeRuntime{reader: bufio.NewReader(strings.NewReader(stdin))}
}

// lookup finds a registered builtin by name.
func lookup(t *testing.T, name string) *Builtin {
	t.Helper()
	for _, b := range Builtins {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("builtin %q not registered", name)
	return nil
}

// TestRegistry verifies the fixed builtin set and arities.
func TestRegistry(t *testing.T) {
	assert.Equal(t, 1, lookup(t, "print").Arity)
	assert.Equal(t, 1, lookup(t, "input").Arity)
	assert.Equal(t, 0, lookup(t, "clock").Arity)
	assert.Len(t, Builtins, 3)
}

// TestPrint verifies stringified output with a trailing newline and the
// nil result.
func TestPrint(t *testing.T) {
	printFn := lookup(t, "print")

	tests := []struct {
		arg      objects.LoxObject
		expected string
	}{
		{&objects.Number{Value: 30}, "30\n"},
		{&objects.Number{Value: 2.5}, "2.5\n"},
		{&objects.String{Value: "hi"}, "hi\n"},
		{&objects.Nil{}, "nil\n"},
		{&objects.Boolean{Value: true}, "true\n"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		result := printFn.Callback(newFakeRuntime(""), &buf, tt.arg)
		assert.Equal(t, tt.expected, buf.String())
		assert.Equal(t, objects.NilType, result.GetType())
	}
}

// TestInput verifies the prompt goes to the writer and the read line comes
// back without its line break.
func TestInput(t *testing.T) {
	inputFn := lookup(t, "input")

	var buf bytes.Buffer
	result := inputFn.Callback(newFakeRuntime("world\n"), &buf, &objects.String{Value: "Name: "})
	assert.Equal(t, "Name: ", buf.String())
	assert.Equal(t, "world", result.(*objects.String).Value)

	// Carriage returns are stripped too.
	buf.Reset()
	result = inputFn.Callback(newFakeRuntime("crlf\r\n"), &buf, &objects.String{Value: "? "})
	assert.Equal(t, "crlf", result.(*objects.String).Value)

	// EOF without a newline still yields what was read.
	buf.Reset()
	result = inputFn.Callback(newFakeRuntime("partial"), &buf, &objects.String{Value: ""})
	assert.Equal(t, "partial", result.(*objects.String).Value)
}

// TestClock verifies wall-clock milliseconds since the epoch.
func TestClock(t *testing.T) {
	clockFn := lookup(t, "clock")

	var buf bytes.Buffer
	before := float64(time.Now().UnixMilli())
	result := clockFn.Callback(newFakeRuntime(""), &buf)
	after := float64(time.Now().UnixMilli())

	ms := result.(*objects.Number).Value
	assert.GreaterOrEqual(t, ms, before)
	assert.LessOrEqual(t, ms, after)
	assert.Empty(t, buf.String())
}

// TestNewObjectClass verifies the built-in base class is empty and
// zero-arity.
func TestNewObjectClass(t *testing.T) {
	object := NewObjectClass()
	assert.Equal(t, "Object", object.Name)
	assert.Nil(t, object.Superclass)
	assert.Empty(t, object.Methods)
	assert.Zero(t, object.Arity())
	assert.Equal(t, "<class Object>", object.ToString())
}

// TestBuiltin_ToString verifies the opaque native form.
func TestBuiltin_ToString(t *testing.T) {
	assert.Equal(t, "<native fn>", lookup(t, "print").ToString())
}
