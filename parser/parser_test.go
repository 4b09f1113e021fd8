package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/lexer"
)

func init() {
	color.NoColor = true
}

// parseSource runs the lexer and parser over src, returning the statement
// list and the diagnostic buffer.
func parseSource(t *testing.T, src string) ([]StatementNode, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	reporter := diag.NewReporter()
	reporter.SetWriter(&buf)
	reporter.SetSource("<test>", src)

	lex := lexer.NewLexer(src, reporter)
	tokens := lex.ConsumeTokens()
	par := NewParser(tokens, reporter)
	return par.Parse(), &buf
}

// errorCount counts reported diagnostics in the buffer.
func errorCount(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "Error")
}

// TestParser_Precedence verifies the precedence ladder through the
// source-like rendering of the parsed tree.
func TestParser_Precedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// factor binds tighter than term
		{"1 + 2 * 3;", "1 + 2 * 3"},
		// grouping overrides precedence
		{"(1 + 2) * 3;", "(1 + 2) * 3"},
		// comparison binds tighter than equality
		{"a == b < c;", "a == b < c"},
		// and binds tighter than or
		{"a or b and c;", "a or b and c"},
		// unary binds tighter than factor
		{"-a * b;", "-a * b"},
		{"!done;", "!done"},
		// calls and property access
		{"f(1, 2);", "f(1, 2)"},
		{"obj.field;", "obj.field"},
		{"obj.method(x);", "obj.method(x)"},
		{"super.hello();", "super.hello()"},
		{"this.v;", "this.v"},
	}

	for _, tt := range tests {
		statements, buf := parseSource(t, tt.input)
		assert.Zero(t, errorCount(buf), "input %q", tt.input)
		if assert.Len(t, statements, 1) {
			exprStmt, ok := statements[0].(*ExpressionStatementNode)
			if assert.True(t, ok, "input %q", tt.input) {
				assert.Equal(t, tt.expected, exprStmt.Expr.Literal(), "input %q", tt.input)
			}
		}
	}
}

// TestParser_PrecedenceShape verifies associativity structurally:
// left-associative binaries nest leftward, assignment nests rightward.
func TestParser_PrecedenceShape(t *testing.T) {
	statements, _ := parseSource(t, "1 - 2 - 3;")
	outer := statements[0].(*ExpressionStatementNode).Expr.(*BinaryExpressionNode)
	assert.Equal(t, lexer.MINUS, outer.Operator.Type)
	inner, ok := outer.Left.(*BinaryExpressionNode)
	assert.True(t, ok, "left operand should be the nested subtraction")
	assert.Equal(t, "1 - 2", inner.Literal())

	statements, _ = parseSource(t, "a = b = 1;")
	assign := statements[0].(*ExpressionStatementNode).Expr.(*AssignmentExpressionNode)
	assert.Equal(t, "a", assign.Name.Literal)
	nested, ok := assign.Value.(*AssignmentExpressionNode)
	assert.True(t, ok, "right operand should be the nested assignment")
	assert.Equal(t, "b", nested.Name.Literal)
}

// TestParser_CompoundAssignment verifies the desugaring: the node carries
// the underlying arithmetic operator while plain '=' carries none.
func TestParser_CompoundAssignment(t *testing.T) {
	tests := []struct {
		input    string
		expected lexer.TokenType
	}{
		{"a += 1;", lexer.PLUS},
		{"a -= 1;", lexer.MINUS},
		{"a *= 2;", lexer.STAR},
		{"a /= 2;", lexer.SLASH},
		{"a %= 2;", lexer.PERCENT},
	}

	for _, tt := range tests {
		statements, buf := parseSource(t, tt.input)
		assert.Zero(t, errorCount(buf))
		assign := statements[0].(*ExpressionStatementNode).Expr.(*AssignmentExpressionNode)
		if assert.NotNil(t, assign.Operator, "input %q", tt.input) {
			assert.Equal(t, tt.expected, assign.Operator.Type)
		}
	}

	// Plain assignment has no operator tag.
	statements, _ := parseSource(t, "a = 1;")
	assign := statements[0].(*ExpressionStatementNode).Expr.(*AssignmentExpressionNode)
	assert.Nil(t, assign.Operator)

	// Property targets desugar to tagged Set nodes.
	statements, _ = parseSource(t, "o.f += 2;")
	set := statements[0].(*ExpressionStatementNode).Expr.(*SetExpressionNode)
	if assert.NotNil(t, set.Operator) {
		assert.Equal(t, lexer.PLUS, set.Operator.Type)
	}
	assert.Equal(t, "f", set.Name.Literal)
}

// TestParser_InvalidAssignmentTarget verifies a non-l-value target reports
// "Invalid assignment target.".
func TestParser_InvalidAssignmentTarget(t *testing.T) {
	_, buf := parseSource(t, "a + b = c;")
	assert.Contains(t, buf.String(), "Invalid assignment target.")
}

// TestParser_ForLoopDesugaring verifies the lowering: a full for loop
// becomes a block of initializer plus while, the body grows the increment,
// and an omitted condition becomes true.
func TestParser_ForLoopDesugaring(t *testing.T) {
	statements, buf := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print(i);")
	assert.Zero(t, errorCount(buf))

	block, ok := statements[0].(*BlockStatementNode)
	if !assert.True(t, ok, "for should lower to a block") {
		return
	}
	assert.Len(t, block.Statements, 2)

	_, ok = block.Statements[0].(*DeclarativeStatementNode)
	assert.True(t, ok, "first statement should be the initializer")

	loop, ok := block.Statements[1].(*WhileLoopStatementNode)
	if !assert.True(t, ok, "second statement should be the while loop") {
		return
	}
	assert.Equal(t, "i < 3", loop.Condition.Literal())

	body, ok := loop.Body.(*BlockStatementNode)
	if assert.True(t, ok, "loop body should wrap body plus increment") {
		assert.Len(t, body.Statements, 2)
		inc := body.Statements[1].(*ExpressionStatementNode)
		assert.Equal(t, "i = i + 1", inc.Expr.Literal())
	}

	// No initializer, no condition, no increment: a bare while(true).
	statements, _ = parseSource(t, "for (;;) print(1);")
	loop, ok = statements[0].(*WhileLoopStatementNode)
	if assert.True(t, ok, "clause-free for should lower to a bare while") {
		lit, ok := loop.Condition.(*LiteralExpressionNode)
		assert.True(t, ok)
		assert.Equal(t, "true", lit.Value.ToString())
	}
}

// TestParser_Declarations verifies the shapes of var, fun, and class
// declarations.
func TestParser_Declarations(t *testing.T) {
	statements, buf := parseSource(t, `
		var x = 10;
		var y;
		fun add(a, b) { return a + b; }
		class B < A {
			init(v) { this.v = v; }
			hello() { return super.hello(); }
		}
	`)
	assert.Zero(t, errorCount(buf))
	assert.Len(t, statements, 4)

	decl := statements[0].(*DeclarativeStatementNode)
	assert.Equal(t, "x", decl.Name.Literal)
	assert.NotNil(t, decl.Initializer)

	bare := statements[1].(*DeclarativeStatementNode)
	assert.Nil(t, bare.Initializer)

	fn := statements[2].(*FunctionStatementNode)
	assert.Equal(t, "add", fn.FuncName.Literal)
	assert.Len(t, fn.FuncParams, 2)
	assert.Len(t, fn.FuncBody, 1)

	class := statements[3].(*ClassStatementNode)
	assert.Equal(t, "B", class.Name.Literal)
	if assert.NotNil(t, class.Superclass) {
		assert.Equal(t, "A", class.Superclass.Name)
	}
	assert.Len(t, class.Methods, 2)
	assert.Equal(t, "init", class.Methods[0].FuncName.Literal)
}

// TestParser_StructuralErrors verifies the delimiter diagnostics.
func TestParser_StructuralErrors(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var = 1;", "Expect variable name."},
		{"var x = 1", "Expect ';' after variable declaration."},
		{"print(1;", "Expect ')' after arguments."},
		{"(1 + 2;", "Expect ')' after expression."},
		{"if x > 1 print(x);", "Expect '(' after 'if'."},
		{"while (x;", "Expect ')' after condition."},
		{"{ var a = 1;", "Expect '}' after block."},
		{"fun () {}", "Expect function name."},
		{"class {}", "Expect class name."},
		{"obj.;", "Expect property name after '.'."},
		{"super hello;", "Expect '.' after 'super'."},
	}

	for _, tt := range tests {
		_, buf := parseSource(t, tt.input)
		assert.Contains(t, buf.String(), tt.expected, "input %q", tt.input)
	}
}

// TestParser_PanicModeContainment verifies a broken declaration does not
// mask errors in later declarations, and the statement list keeps its
// shape with inert substitutes.
func TestParser_PanicModeContainment(t *testing.T) {
	statements, buf := parseSource(t, `
		var = 1;
		var ok = 2;
		fun () { }
		var done = 3;
	`)

	assert.GreaterOrEqual(t, errorCount(buf), 2,
		"both broken declarations should report")
	// Every declaration, broken or not, leaves a statement behind.
	assert.Len(t, statements, 4)
}

// TestParser_ArgumentLimit verifies the 255-argument diagnostic while
// parsing continues.
func TestParser_ArgumentLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("f(")
	for i := 0; i < 260; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("1")
	}
	sb.WriteString(");")

	statements, buf := parseSource(t, sb.String())
	assert.Contains(t, buf.String(), "Cannot have more than 255 arguments.")
	// The call still parses with every argument attached.
	call := statements[0].(*ExpressionStatementNode).Expr.(*CallExpressionNode)
	assert.Len(t, call.Arguments, 260)
}
