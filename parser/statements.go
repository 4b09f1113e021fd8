package parser

import (
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
)

// declaration parses one declaration: a var, fun, or class declaration, or
// any other statement. This is the parser's recovery point: a syntax error
// anywhere inside the declaration unwinds to here, synchronizes to the next
// statement boundary, and substitutes an inert statement so the statement
// list keeps its shape. The substitute is never evaluated because the error
// flag is already set.
func (par *Parser) declaration() (stmt StatementNode) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			par.synchronize()
			stmt = &ExpressionStatementNode{
				Expr: &LiteralExpressionNode{Value: &objects.Nil{}},
			}
		}
	}()

	switch {
	case par.match(lexer.VAR):
		return par.varDeclaration()
	case par.match(lexer.FUN):
		return par.functionDeclaration("function")
	case par.match(lexer.CLASS):
		return par.classDeclaration()
	default:
		return par.statement()
	}
}

// varDeclaration parses a variable declaration after the 'var' keyword.
// Grammar: "var" IDENTIFIER ( "=" expression )? ";"
func (par *Parser) varDeclaration() StatementNode {
	name := par.expectAdvance(lexer.IDENTIFIER, "Expect variable name.")

	var initializer ExpressionNode
	if par.match(lexer.EQ) {
		initializer = par.expression()
	}

	par.expectAdvance(lexer.SEMICOLON, "Expect ';' after variable declaration.")
	return &DeclarativeStatementNode{Name: name, Initializer: initializer}
}

// functionDeclaration parses a function declaration after the 'fun'
// keyword, or a method inside a class body (which has no leading keyword).
// The kind parameter ("function" or "method") only flavors diagnostics.
// Grammar: IDENTIFIER "(" parameters? ")" block
func (par *Parser) functionDeclaration(kind string) *FunctionStatementNode {
	name := par.expectAdvance(lexer.IDENTIFIER, "Expect "+kind+" name.")
	par.expectAdvance(lexer.LPAREN, "Expect '(' after "+kind+" name.")

	params := make([]lexer.Token, 0)
	if !par.check(lexer.RPAREN) {
		for {
			if len(params) >= 254 {
				par.reportError(par.current(), "Cannot have more than 255 parameters.")
			}
			params = append(params, par.expectAdvance(lexer.IDENTIFIER, "Expect parameter name."))
			if !par.match(lexer.COMMA) {
				break
			}
		}
	}
	par.expectAdvance(lexer.RPAREN, "Expect ')' after parameters.")

	par.expectAdvance(lexer.LBRACE, "Expect '{' before "+kind+" body.")
	body := par.blockStatements()

	return &FunctionStatementNode{FuncName: name, FuncParams: params, FuncBody: body}
}

// classDeclaration parses a class declaration after the 'class' keyword.
// Grammar: "class" IDENTIFIER ( "<" IDENTIFIER )? "{" method* "}"
func (par *Parser) classDeclaration() StatementNode {
	name := par.expectAdvance(lexer.IDENTIFIER, "Expect class name.")

	var superclass *IdentifierExpressionNode
	if par.match(lexer.LT) {
		superName := par.expectAdvance(lexer.IDENTIFIER, "Expect superclass name.")
		superclass = &IdentifierExpressionNode{Token: superName, Name: superName.Literal}
	}

	par.expectAdvance(lexer.LBRACE, "Expect '{' before class body.")

	methods := make([]*FunctionStatementNode, 0)
	for !par.check(lexer.RBRACE) && !par.isAtEnd() {
		methods = append(methods, par.functionDeclaration("method"))
	}

	par.expectAdvance(lexer.RBRACE, "Expect '}' after class body.")
	return &ClassStatementNode{Name: name, Superclass: superclass, Methods: methods}
}

// statement parses one non-declaration statement.
func (par *Parser) statement() StatementNode {
	switch {
	case par.match(lexer.FOR):
		return par.forStatement()
	case par.match(lexer.IF):
		return par.ifStatement()
	case par.match(lexer.RETURN):
		return par.returnStatement()
	case par.match(lexer.WHILE):
		return par.whileStatement()
	case par.match(lexer.LBRACE):
		return &BlockStatementNode{Statements: par.blockStatements()}
	default:
		return par.expressionStatement()
	}
}

// forStatement parses a for loop and lowers it to a block wrapping a while
// loop:
//
//	for (init; cond; inc) body
//
// becomes
//
//	{ init; while (cond) { body; inc; } }
//
// Omitted pieces vanish from the lowering; an omitted condition becomes a
// true literal, so "for (;;)" loops forever.
func (par *Parser) forStatement() StatementNode {
	par.expectAdvance(lexer.LPAREN, "Expect '(' after 'for'.")

	var initializer StatementNode
	switch {
	case par.match(lexer.SEMICOLON):
		initializer = nil
	case par.match(lexer.VAR):
		initializer = par.varDeclaration()
	default:
		initializer = par.expressionStatement()
	}

	var condition ExpressionNode
	if !par.check(lexer.SEMICOLON) {
		condition = par.expression()
	}
	par.expectAdvance(lexer.SEMICOLON, "Expect ';' after loop condition.")

	var increment ExpressionNode
	if !par.check(lexer.RPAREN) {
		increment = par.expression()
	}
	par.expectAdvance(lexer.RPAREN, "Expect ')' after for clauses.")

	body := par.statement()

	if increment != nil {
		body = &BlockStatementNode{Statements: []StatementNode{
			body,
			&ExpressionStatementNode{Expr: increment},
		}}
	}

	if condition == nil {
		condition = &LiteralExpressionNode{Value: &objects.Boolean{Value: true}}
	}
	var loop StatementNode = &WhileLoopStatementNode{Condition: condition, Body: body}

	if initializer != nil {
		loop = &BlockStatementNode{Statements: []StatementNode{initializer, loop}}
	}

	return loop
}

// ifStatement parses a conditional after the 'if' keyword.
// Grammar: "if" "(" expression ")" statement ( "else" statement )?
// The else binds to the nearest if, which falls naturally out of the
// recursive descent.
func (par *Parser) ifStatement() StatementNode {
	par.expectAdvance(lexer.LPAREN, "Expect '(' after 'if'.")
	condition := par.expression()
	par.expectAdvance(lexer.RPAREN, "Expect ')' after condition.")

	thenBranch := par.statement()
	var elseBranch StatementNode
	if par.match(lexer.ELSE) {
		elseBranch = par.statement()
	}

	return &IfStatementNode{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// whileStatement parses a while loop after the 'while' keyword.
// Grammar: "while" "(" expression ")" statement
func (par *Parser) whileStatement() StatementNode {
	par.expectAdvance(lexer.LPAREN, "Expect '(' after 'while'.")
	condition := par.expression()
	par.expectAdvance(lexer.RPAREN, "Expect ')' after condition.")
	body := par.statement()

	return &WhileLoopStatementNode{Condition: condition, Body: body}
}

// returnStatement parses a return after the 'return' keyword. The keyword
// token is kept on the node so the resolver can anchor its top-level and
// initializer checks to it.
// Grammar: "return" expression? ";"
func (par *Parser) returnStatement() StatementNode {
	keyword := par.previous()

	var value ExpressionNode
	if !par.check(lexer.SEMICOLON) {
		value = par.expression()
	}

	par.expectAdvance(lexer.SEMICOLON, "Expect ';' after return value.")
	return &ReturnStatementNode{Keyword: keyword, Value: value}
}

// blockStatements parses the statements of a block after the opening '{'
// has been consumed, up to and including the closing '}'.
func (par *Parser) blockStatements() []StatementNode {
	statements := make([]StatementNode, 0)
	for !par.check(lexer.RBRACE) && !par.isAtEnd() {
		statements = append(statements, par.declaration())
	}
	par.expectAdvance(lexer.RBRACE, "Expect '}' after block.")
	return statements
}

// expressionStatement parses a bare expression followed by ';'.
func (par *Parser) expressionStatement() StatementNode {
	expr := par.expression()
	par.expectAdvance(lexer.SEMICOLON, "Expect ';' after expression.")
	return &ExpressionStatementNode{Expr: expr}
}
