package parser

import (
	"strings"

	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
)

// Node: base interface for all nodes of the AST
// Literal(): returns a source-like string representation of the node
type Node interface {
	Literal() string
}

// StatementNode: base interface for all statement nodes
type StatementNode interface {
	Node
	Statement()
}

// ExpressionNode: base interface for all expression nodes.
//
// Expression nodes are allocated once by the parser and shared by pointer
// with the resolver and evaluator: the resolver keys its hop-count side
// table by the node's pointer identity, so nodes must never be copied or
// rebuilt between resolution and evaluation.
type ExpressionNode interface {
	Node
	Expression()
}

// LiteralExpressionNode: represents a literal value
// Example: 42, 3.14, "hello", true, nil
type LiteralExpressionNode struct {
	Token lexer.Token      // The literal token (zero Token for synthesized literals)
	Value objects.LoxObject // The runtime value of the literal
}

func (node *LiteralExpressionNode) Literal() string {
	if node.Token.Literal != "" {
		return node.Token.Literal
	}
	return node.Value.ToString()
}
func (node *LiteralExpressionNode) Expression() {}

// ParenthesizedExpressionNode: represents a grouped expression
// Example: (1 + 2)
type ParenthesizedExpressionNode struct {
	Expr ExpressionNode // The inner expression
}

func (node *ParenthesizedExpressionNode) Literal() string {
	return "(" + node.Expr.Literal() + ")"
}
func (node *ParenthesizedExpressionNode) Expression() {}

// BinaryExpressionNode: represents a binary operation
// Example: a + b, x * 2, n % 10, a < b, a == b
type BinaryExpressionNode struct {
	Left     ExpressionNode // Left operand
	Operator lexer.Token    // The operator token (+, -, *, /, %, ==, !=, <, <=, >, >=)
	Right    ExpressionNode // Right operand
}

func (node *BinaryExpressionNode) Literal() string {
	return node.Left.Literal() + " " + node.Operator.Literal + " " + node.Right.Literal()
}
func (node *BinaryExpressionNode) Expression() {}

// LogicalExpressionNode: represents a short-circuiting logical operation
// Example: a and b, a or b
type LogicalExpressionNode struct {
	Left     ExpressionNode // Left operand
	Operator lexer.Token    // The operator token (and, or)
	Right    ExpressionNode // Right operand
}

func (node *LogicalExpressionNode) Literal() string {
	return node.Left.Literal() + " " + node.Operator.Literal + " " + node.Right.Literal()
}
func (node *LogicalExpressionNode) Expression() {}

// UnaryExpressionNode: represents a unary operation
// Example: -x, !flag
type UnaryExpressionNode struct {
	Operator lexer.Token    // The operator token (-, !)
	Right    ExpressionNode // The operand
}

func (node *UnaryExpressionNode) Literal() string {
	return node.Operator.Literal + node.Right.Literal()
}
func (node *UnaryExpressionNode) Expression() {}

// IdentifierExpressionNode: represents a variable reference
// Example: x, myVar, print
type IdentifierExpressionNode struct {
	Token lexer.Token // The identifier token
	Name  string      // The referenced name (Token.Literal)
}

func (node *IdentifierExpressionNode) Literal() string {
	return node.Name
}
func (node *IdentifierExpressionNode) Expression() {}

// AssignmentExpressionNode: represents assignment to a variable.
// A compound assignment carries the underlying arithmetic operator in
// Operator; plain '=' leaves it nil.
// Example: x = 10, x += 5
type AssignmentExpressionNode struct {
	Name     lexer.Token    // The assigned variable's name token
	Operator *lexer.Token   // The arithmetic operator for compound forms, nil for plain '='
	Value    ExpressionNode // The right-hand side
}

func (node *AssignmentExpressionNode) Literal() string {
	op := "="
	if node.Operator != nil {
		op = node.Operator.Literal + "="
	}
	return node.Name.Literal + " " + op + " " + node.Value.Literal()
}
func (node *AssignmentExpressionNode) Expression() {}

// CallExpressionNode: represents a call to a function, class, or built-in
// Example: clock(), makeCounter()(), Box(7)
type CallExpressionNode struct {
	Callee    ExpressionNode   // The expression producing the callable
	Paren     lexer.Token      // The closing ')' token, for error positions
	Arguments []ExpressionNode // Argument expressions, evaluated left to right
}

func (node *CallExpressionNode) Literal() string {
	args := make([]string, len(node.Arguments))
	for i, arg := range node.Arguments {
		args[i] = arg.Literal()
	}
	return node.Callee.Literal() + "(" + strings.Join(args, ", ") + ")"
}
func (node *CallExpressionNode) Expression() {}

// GetExpressionNode: represents property access on an instance
// Example: obj.field, this.v
type GetExpressionNode struct {
	Object ExpressionNode // The expression producing the instance
	Name   lexer.Token    // The property name token
}

func (node *GetExpressionNode) Literal() string {
	return node.Object.Literal() + "." + node.Name.Literal
}
func (node *GetExpressionNode) Expression() {}

// SetExpressionNode: represents assignment to a property.
// Like AssignmentExpressionNode, compound forms carry the arithmetic
// operator in Operator.
// Example: obj.field = 1, obj.count += 1
type SetExpressionNode struct {
	Object   ExpressionNode // The expression producing the instance
	Name     lexer.Token    // The property name token
	Operator *lexer.Token   // The arithmetic operator for compound forms, nil for plain '='
	Value    ExpressionNode // The right-hand side
}

func (node *SetExpressionNode) Literal() string {
	op := "="
	if node.Operator != nil {
		op = node.Operator.Literal + "="
	}
	return node.Object.Literal() + "." + node.Name.Literal + " " + op + " " + node.Value.Literal()
}
func (node *SetExpressionNode) Expression() {}

// ThisExpressionNode: represents the 'this' keyword inside a method
type ThisExpressionNode struct {
	Keyword lexer.Token // The 'this' token
}

func (node *ThisExpressionNode) Literal() string {
	return "this"
}
func (node *ThisExpressionNode) Expression() {}

// SuperExpressionNode: represents a superclass method access
// Example: super.hello
type SuperExpressionNode struct {
	Keyword lexer.Token // The 'super' token
	Method  lexer.Token // The accessed method's name token
}

func (node *SuperExpressionNode) Literal() string {
	return "super." + node.Method.Literal
}
func (node *SuperExpressionNode) Expression() {}

// ExpressionStatementNode: an expression evaluated for its side effects
// Example: print("hi");
type ExpressionStatementNode struct {
	Expr ExpressionNode // The wrapped expression
}

func (node *ExpressionStatementNode) Literal() string {
	return node.Expr.Literal() + ";"
}
func (node *ExpressionStatementNode) Statement() {}

// DeclarativeStatementNode: a variable declaration with optional initializer
// Example: var x = 10; var y;
type DeclarativeStatementNode struct {
	Name        lexer.Token    // The declared variable's name token
	Initializer ExpressionNode // The initializer, nil when absent
}

func (node *DeclarativeStatementNode) Literal() string {
	if node.Initializer == nil {
		return "var " + node.Name.Literal + ";"
	}
	return "var " + node.Name.Literal + " = " + node.Initializer.Literal() + ";"
}
func (node *DeclarativeStatementNode) Statement() {}

// BlockStatementNode: a brace-delimited statement list with its own scope
// Example: { var x = 1; print(x); }
type BlockStatementNode struct {
	Statements []StatementNode // The statements in the block
}

func (node *BlockStatementNode) Literal() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, stmt := range node.Statements {
		sb.WriteString(stmt.Literal())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}
func (node *BlockStatementNode) Statement() {}

// IfStatementNode: a conditional with optional else branch
// Example: if (cond) { ... } else { ... }
type IfStatementNode struct {
	Condition  ExpressionNode // The tested condition
	ThenBranch StatementNode  // Executed when the condition is truthy
	ElseBranch StatementNode  // Executed otherwise, nil when absent
}

func (node *IfStatementNode) Literal() string {
	s := "if (" + node.Condition.Literal() + ") " + node.ThenBranch.Literal()
	if node.ElseBranch != nil {
		s += " else " + node.ElseBranch.Literal()
	}
	return s
}
func (node *IfStatementNode) Statement() {}

// WhileLoopStatementNode: a while loop. For loops are lowered to this form
// by the parser.
// Example: while (cond) { ... }
type WhileLoopStatementNode struct {
	Condition ExpressionNode // Loop condition, tested before each iteration
	Body      StatementNode  // Loop body
}

func (node *WhileLoopStatementNode) Literal() string {
	return "while (" + node.Condition.Literal() + ") " + node.Body.Literal()
}
func (node *WhileLoopStatementNode) Statement() {}

// FunctionStatementNode: a function declaration. Also used for class
// methods, which share the same shape minus the 'fun' keyword.
// Example: fun add(a, b) { return a + b; }
type FunctionStatementNode struct {
	FuncName   lexer.Token     // Function name token
	FuncParams []lexer.Token   // Parameter name tokens
	FuncBody   []StatementNode // Body statements
}

func (node *FunctionStatementNode) Literal() string {
	params := make([]string, len(node.FuncParams))
	for i, p := range node.FuncParams {
		params[i] = p.Literal
	}
	return "fun " + node.FuncName.Literal + "(" + strings.Join(params, ", ") + ") { ... }"
}
func (node *FunctionStatementNode) Statement() {}

// ReturnStatementNode: a return statement with optional value
// Example: return; return x + 1;
type ReturnStatementNode struct {
	Keyword lexer.Token    // The 'return' token, for error positions
	Value   ExpressionNode // The returned expression, nil when absent
}

func (node *ReturnStatementNode) Literal() string {
	if node.Value == nil {
		return "return;"
	}
	return "return " + node.Value.Literal() + ";"
}
func (node *ReturnStatementNode) Statement() {}

// ClassStatementNode: a class declaration with optional superclass
// Example: class B < A { hello() { ... } }
type ClassStatementNode struct {
	Name       lexer.Token               // Class name token
	Superclass *IdentifierExpressionNode // Superclass reference, nil when absent
	Methods    []*FunctionStatementNode  // Method declarations
}

func (node *ClassStatementNode) Literal() string {
	s := "class " + node.Name.Literal
	if node.Superclass != nil {
		s += " < " + node.Superclass.Name
	}
	return s + " { ... }"
}
func (node *ClassStatementNode) Statement() {}
