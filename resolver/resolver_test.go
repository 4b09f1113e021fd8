package resolver

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/parser"
)

func init() {
	color.NoColor = true
}

// recordingBindings captures the resolver's annotations keyed by node
// identity, standing in for the evaluator's side table.
type recordingBindings struct {
	Depths map[parser.ExpressionNode]int
}

func (b *recordingBindings) Resolve(expr parser.ExpressionNode, depth int) {
	b.Depths[expr] = depth
}

// resolveSource lexes, parses, and resolves src, returning the recorded
// annotations and the diagnostic buffer.
func resolveSource(t *testing.T, src string) ([]parser.StatementNode, *recordingBindings, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	reporter := diag.NewReporter()
	reporter.SetWriter(&buf)
	reporter.SetSource("<test>", src)

	lex := lexer.NewLexer(src, reporter)
	par := parser.NewParser(lex.ConsumeTokens(), reporter)
	statements := par.Parse()
	assert.False(t, reporter.HadError, "test source must parse cleanly")

	bindings := &recordingBindings{Depths: make(map[parser.ExpressionNode]int)}
	res := NewResolver(bindings, reporter)
	res.ResolveProgram(statements)
	return statements, bindings, &buf
}

// depthsByName flattens the annotations to variable name -> depths, which
// is enough for most assertions here since the test sources use each name
// at one depth.
func depthsByName(bindings *recordingBindings) map[string][]int {
	byName := make(map[string][]int)
	for expr, depth := range bindings.Depths {
		var name string
		switch n := expr.(type) {
		case *parser.IdentifierExpressionNode:
			name = n.Name
		case *parser.AssignmentExpressionNode:
			name = n.Name.Literal
		case *parser.ThisExpressionNode:
			name = "this"
		case *parser.SuperExpressionNode:
			name = "super"
		}
		byName[name] = append(byName[name], depth)
	}
	return byName
}

// TestResolver_ClosureDepths verifies hop counts across nested function
// scopes: the closed-over counter variable sits one scope out from the
// inner function's body.
func TestResolver_ClosureDepths(t *testing.T) {
	_, bindings, buf := resolveSource(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				return i;
			}
			return count;
		}
	`)
	assert.Empty(t, buf.String())

	byName := depthsByName(bindings)
	// Three references to i inside count (read, assign, return), all one
	// hop out of count's body scope.
	assert.ElementsMatch(t, []int{1, 1, 1}, byName["i"])
	// The reference to count in the return, in makeCounter's own scope.
	assert.ElementsMatch(t, []int{0}, byName["count"])
}

// TestResolver_GlobalFallback verifies names not found in any scope stay
// unannotated (dynamically resolved globals, like builtins).
func TestResolver_GlobalFallback(t *testing.T) {
	_, bindings, _ := resolveSource(t, `print(clock());`)
	assert.Empty(t, bindings.Depths)
}

// TestResolver_TopLevelScope verifies the initial outermost scope: top
// level declarations resolve at hop zero rather than falling back to the
// dynamic path.
func TestResolver_TopLevelScope(t *testing.T) {
	_, bindings, _ := resolveSource(t, `
		var a = 1;
		a = a + 1;
	`)
	byName := depthsByName(bindings)
	assert.NotEmpty(t, byName["a"])
	for _, depth := range byName["a"] {
		assert.Zero(t, depth)
	}
}

// TestResolver_StaticShadowing verifies a reference resolved before a
// later shadowing declaration keeps pointing at the outer binding.
func TestResolver_StaticShadowing(t *testing.T) {
	_, bindings, buf := resolveSource(t, `
		var a = "global";
		{
			fun show() { print(a); }
			show();
			var a = "local";
			show();
		}
	`)
	assert.Empty(t, buf.String())

	byName := depthsByName(bindings)
	// print(a) inside show: body scope -> block scope -> top scope = 2.
	assert.ElementsMatch(t, []int{2}, byName["a"])
}

// TestResolver_ThisAndSuperDepths verifies the implicit scopes: 'super'
// one scope outside 'this', both at fixed depths from a method body.
func TestResolver_ThisAndSuperDepths(t *testing.T) {
	_, bindings, buf := resolveSource(t, `
		class A { hello() { return "A"; } }
		class B < A {
			hello() { return "B/" + super.hello(); }
			who() { return this; }
		}
	`)
	assert.Empty(t, buf.String())

	byName := depthsByName(bindings)
	// Method body scope(0) -> this scope(1) -> super scope(2).
	assert.ElementsMatch(t, []int{2}, byName["super"])
	assert.ElementsMatch(t, []int{1}, byName["this"])
}

// TestResolver_Idempotence verifies running the pass twice over the same
// AST produces identical side-table contents.
func TestResolver_Idempotence(t *testing.T) {
	statements, bindings, _ := resolveSource(t, `
		var a = 1;
		fun f(b) {
			var c = a + b;
			{ var d = c; print(d); }
		}
	`)

	first := make(map[parser.ExpressionNode]int, len(bindings.Depths))
	for k, v := range bindings.Depths {
		first[k] = v
	}

	reporter := diag.NewReporter()
	reporter.SetWriter(&bytes.Buffer{})
	res := NewResolver(bindings, reporter)
	res.ResolveProgram(statements)

	assert.Equal(t, first, bindings.Depths)
}

// TestResolver_Errors verifies each static check's exact diagnostic.
func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{ var a = 1; var a = 2; }", "Variable with this name already declared in this scope."},
		{"{ var a = a; }", "Can't read local variable in its own initializer."},
		{"return 1;", "Cannot return from top-level code."},
		{"class K { init() { return 1; } }", "Cannot return a value from an initializer."},
		{"print(this);", "Cannot use 'this' outside of a class."},
		{"fun f() { return this; }", "Cannot use 'this' outside of a class."},
		{"print(super.x);", "Cannot use 'super' outside of a class."},
		{"class K { m() { return super.m(); } }", "Cannot use 'super' in a class with no superclass."},
		{"class K < K { }", "A class cannot inherit from itself."},
	}

	for _, tt := range tests {
		_, _, buf := resolveSource(t, tt.input)
		assert.Contains(t, buf.String(), tt.expected, "input %q", tt.input)
	}
}

// TestResolver_InitializerBareReturn verifies a value-free return inside
// init is legal.
func TestResolver_InitializerBareReturn(t *testing.T) {
	_, _, buf := resolveSource(t, `class K { init() { return; } }`)
	assert.Empty(t, buf.String())
}

// TestResolver_ContinuesAfterError verifies traversal keeps going past an
// error so later problems surface in the same pass.
func TestResolver_ContinuesAfterError(t *testing.T) {
	_, _, buf := resolveSource(t, `
		return 1;
		print(this);
	`)
	assert.Contains(t, buf.String(), "Cannot return from top-level code.")
	assert.Contains(t, buf.String(), "Cannot use 'this' outside of a class.")
}

// TestResolver_FunctionSelfReference verifies a function can resolve its
// own name inside its body (recursion).
func TestResolver_FunctionSelfReference(t *testing.T) {
	_, bindings, buf := resolveSource(t, `
		fun loop(n) {
			if (n > 0) { loop(n - 1); }
		}
	`)
	assert.Empty(t, buf.String())

	byName := depthsByName(bindings)
	// loop referenced from inside the if-block inside its body:
	// block(0) -> body(1) -> top scope holding loop(2).
	assert.ElementsMatch(t, []int{2}, byName["loop"])
}
