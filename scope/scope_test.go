package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cubedhuang/lox/objects"
)

func num(v float64) *objects.Number {
	return &objects.Number{Value: v}
}

// TestScope_BindAndLookUp verifies binding, shadowing, and chain lookup.
func TestScope_BindAndLookUp(t *testing.T) {
	globals := NewScope(nil)
	globals.Bind("x", num(1))

	inner := NewScope(globals)

	// Inner scope sees outer bindings.
	obj, ok := inner.LookUp("x")
	assert.True(t, ok)
	assert.Equal(t, 1.0, obj.(*objects.Number).Value)

	// Shadowing: the inner binding wins without touching the outer one.
	inner.Bind("x", num(2))
	obj, _ = inner.LookUp("x")
	assert.Equal(t, 2.0, obj.(*objects.Number).Value)
	obj, _ = globals.LookUp("x")
	assert.Equal(t, 1.0, obj.(*objects.Number).Value)

	// Missing names miss.
	_, ok = inner.LookUp("missing")
	assert.False(t, ok)
}

// TestScope_Assign verifies assignment updates the defining scope, which
// is what closures rely on.
func TestScope_Assign(t *testing.T) {
	globals := NewScope(nil)
	globals.Bind("count", num(0))
	inner := NewScope(globals)

	ok := inner.Assign("count", num(5))
	assert.True(t, ok)

	// The update landed in the defining scope.
	obj, _ := globals.LookUp("count")
	assert.Equal(t, 5.0, obj.(*objects.Number).Value)

	// Assigning an unbound name fails.
	assert.False(t, inner.Assign("missing", num(1)))
}

// TestScope_Aliasing verifies two child scopes of one parent observe each
// other's assignments to the shared binding.
func TestScope_Aliasing(t *testing.T) {
	shared := NewScope(nil)
	shared.Bind("i", num(0))

	a := NewScope(shared)
	b := NewScope(shared)

	a.Assign("i", num(1))
	obj, _ := b.LookUp("i")
	assert.Equal(t, 1.0, obj.(*objects.Number).Value)
}

// TestScope_GetAtAssignAt verifies the hop-count accessors read and write
// the exact ancestor without searching.
func TestScope_GetAtAssignAt(t *testing.T) {
	globals := NewScope(nil)
	globals.Bind("x", num(1))
	middle := NewScope(globals)
	middle.Bind("x", num(2))
	inner := NewScope(middle)

	obj, ok := inner.GetAt(1, "x")
	assert.True(t, ok)
	assert.Equal(t, 2.0, obj.(*objects.Number).Value)

	obj, ok = inner.GetAt(2, "x")
	assert.True(t, ok)
	assert.Equal(t, 1.0, obj.(*objects.Number).Value)

	// GetAt does not search: hop 0 has no binding for x.
	_, ok = inner.GetAt(0, "x")
	assert.False(t, ok)

	// AssignAt writes the exact ancestor, shadows untouched.
	assert.True(t, inner.AssignAt(2, "x", num(9)))
	obj, _ = globals.LookUp("x")
	assert.Equal(t, 9.0, obj.(*objects.Number).Value)
	obj, _ = middle.LookUp("x")
	assert.Equal(t, 2.0, obj.(*objects.Number).Value)

	// Walking past the root fails gracefully.
	_, ok = inner.GetAt(7, "x")
	assert.False(t, ok)
	assert.False(t, inner.AssignAt(7, "x", num(0)))
}

// TestScope_Ancestor verifies hop arithmetic.
func TestScope_Ancestor(t *testing.T) {
	globals := NewScope(nil)
	middle := NewScope(globals)
	inner := NewScope(middle)

	assert.Same(t, inner, inner.Ancestor(0))
	assert.Same(t, middle, inner.Ancestor(1))
	assert.Same(t, globals, inner.Ancestor(2))
	assert.Nil(t, inner.Ancestor(3))
}
