package parser

import (
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/objects"
)

// The expression grammar, loosest binding first. Each production parses its
// operands at the next-tighter level, which encodes precedence directly in
// the call graph:
//
//	expression -> assignment
//	assignment -> ( call "." )? IDENTIFIER ( "=" | "+=" | "-=" | "*=" | "/=" | "%=" ) assignment
//	            | logicOr
//	logicOr    -> logicAnd ( "or" logicAnd )*
//	logicAnd   -> equality ( "and" equality )*
//	equality   -> comparison ( ( "==" | "!=" ) comparison )*
//	comparison -> term ( ( "<" | "<=" | ">" | ">=" ) term )*
//	term       -> factor ( ( "+" | "-" ) factor )*
//	factor     -> unary ( ( "*" | "/" | "%" ) unary )*
//	unary      -> ( "-" | "!" ) unary | call
//	call       -> primary ( "(" arguments? ")" | "." IDENTIFIER )*
//	primary    -> NUMBER | STRING | "true" | "false" | "nil" | "this"
//	            | "super" "." IDENTIFIER | IDENTIFIER | "(" expression ")"
//
// All binary operators are left-associative; assignment is
// right-associative and only accepts a variable or property as its target.

// expression parses any expression.
func (par *Parser) expression() ExpressionNode {
	return par.assignment()
}

// assignment parses assignment, including the compound forms. The left side
// is parsed as an ordinary expression first; if an assignment operator
// follows, the parsed node is checked to be a valid l-value (a variable
// reference or a property access) and rewritten into the matching
// assignment node. Compound operators are desugared here by tagging the
// node with the underlying arithmetic operator; the evaluator performs the
// read-modify-write.
func (par *Parser) assignment() ExpressionNode {
	expr := par.logicOr()

	if par.match(lexer.EQ, lexer.PLUS_EQ, lexer.MINUS_EQ, lexer.STAR_EQ, lexer.SLASH_EQ, lexer.PERCENT_EQ) {
		opToken := par.previous()
		value := par.assignment()
		compound := compoundOperator(opToken)

		switch target := expr.(type) {
		case *IdentifierExpressionNode:
			return &AssignmentExpressionNode{Name: target.Token, Operator: compound, Value: value}
		case *GetExpressionNode:
			return &SetExpressionNode{Object: target.Object, Name: target.Name, Operator: compound, Value: value}
		}

		// Not an l-value. Report, but keep the parsed expression so parsing
		// can continue; the error flag stops the later phases.
		par.reportError(opToken, "Invalid assignment target.")
	}

	return expr
}

// compoundOperator maps a compound assignment token to the arithmetic
// operator token the evaluator applies during read-modify-write, carrying
// over the source position. Plain '=' maps to nil.
func compoundOperator(opToken lexer.Token) *lexer.Token {
	var opType lexer.TokenType
	var literal string

	switch opToken.Type {
	case lexer.PLUS_EQ:
		opType, literal = lexer.PLUS, "+"
	case lexer.MINUS_EQ:
		opType, literal = lexer.MINUS, "-"
	case lexer.STAR_EQ:
		opType, literal = lexer.STAR, "*"
	case lexer.SLASH_EQ:
		opType, literal = lexer.SLASH, "/"
	case lexer.PERCENT_EQ:
		opType, literal = lexer.PERCENT, "%"
	default:
		return nil
	}

	tok := lexer.NewTokenWithMetadata(opType, literal, nil, opToken.Line, opToken.Column)
	return &tok
}

// logicOr parses short-circuiting 'or' chains.
func (par *Parser) logicOr() ExpressionNode {
	expr := par.logicAnd()

	for par.match(lexer.OR) {
		operator := par.previous()
		right := par.logicAnd()
		expr = &LogicalExpressionNode{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// logicAnd parses short-circuiting 'and' chains.
func (par *Parser) logicAnd() ExpressionNode {
	expr := par.equality()

	for par.match(lexer.AND) {
		operator := par.previous()
		right := par.equality()
		expr = &LogicalExpressionNode{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// equality parses == and != chains.
func (par *Parser) equality() ExpressionNode {
	expr := par.comparison()

	for par.match(lexer.EQ_EQ, lexer.BANG_EQ) {
		operator := par.previous()
		right := par.comparison()
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// comparison parses <, <=, >, >= chains.
func (par *Parser) comparison() ExpressionNode {
	expr := par.term()

	for par.match(lexer.LT, lexer.LT_EQ, lexer.GT, lexer.GT_EQ) {
		operator := par.previous()
		right := par.term()
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// term parses + and - chains.
func (par *Parser) term() ExpressionNode {
	expr := par.factor()

	for par.match(lexer.PLUS, lexer.MINUS) {
		operator := par.previous()
		right := par.factor()
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// factor parses *, /, and % chains.
func (par *Parser) factor() ExpressionNode {
	expr := par.unary()

	for par.match(lexer.STAR, lexer.SLASH, lexer.PERCENT) {
		operator := par.previous()
		right := par.unary()
		expr = &BinaryExpressionNode{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// unary parses prefix - and ! operators.
func (par *Parser) unary() ExpressionNode {
	if par.match(lexer.MINUS, lexer.BANG) {
		operator := par.previous()
		right := par.unary()
		return &UnaryExpressionNode{Operator: operator, Right: right}
	}

	return par.call()
}

// call parses a primary expression followed by any number of call
// argument lists and property accesses, left to right.
func (par *Parser) call() ExpressionNode {
	expr := par.primary()

	for {
		switch {
		case par.match(lexer.LPAREN):
			expr = par.finishCall(expr)
		case par.match(lexer.DOT):
			name := par.expectAdvance(lexer.IDENTIFIER, "Expect property name after '.'.")
			expr = &GetExpressionNode{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

// finishCall parses the argument list of a call after the opening '(' has
// been consumed. The closing ')' token is kept on the node so runtime call
// errors have a position.
func (par *Parser) finishCall(callee ExpressionNode) ExpressionNode {
	arguments := make([]ExpressionNode, 0)
	if !par.check(lexer.RPAREN) {
		for {
			if len(arguments) >= 254 {
				par.reportError(par.current(), "Cannot have more than 255 arguments.")
			}
			arguments = append(arguments, par.expression())
			if !par.match(lexer.COMMA) {
				break
			}
		}
	}

	paren := par.expectAdvance(lexer.RPAREN, "Expect ')' after arguments.")
	return &CallExpressionNode{Callee: callee, Paren: paren, Arguments: arguments}
}

// primary parses literals, identifiers, this/super, and parenthesized
// expressions: the leaves of the grammar.
func (par *Parser) primary() ExpressionNode {
	switch {
	case par.match(lexer.FALSE):
		return &LiteralExpressionNode{Token: par.previous(), Value: &objects.Boolean{Value: false}}
	case par.match(lexer.TRUE):
		return &LiteralExpressionNode{Token: par.previous(), Value: &objects.Boolean{Value: true}}
	case par.match(lexer.NIL):
		return &LiteralExpressionNode{Token: par.previous(), Value: &objects.Nil{}}
	case par.match(lexer.NUMBER):
		tok := par.previous()
		return &LiteralExpressionNode{Token: tok, Value: &objects.Number{Value: tok.Value.(float64)}}
	case par.match(lexer.STRING):
		tok := par.previous()
		return &LiteralExpressionNode{Token: tok, Value: &objects.String{Value: tok.Value.(string)}}
	case par.match(lexer.THIS):
		return &ThisExpressionNode{Keyword: par.previous()}
	case par.match(lexer.SUPER):
		keyword := par.previous()
		par.expectAdvance(lexer.DOT, "Expect '.' after 'super'.")
		method := par.expectAdvance(lexer.IDENTIFIER, "Expect superclass method name.")
		return &SuperExpressionNode{Keyword: keyword, Method: method}
	case par.match(lexer.IDENTIFIER):
		tok := par.previous()
		return &IdentifierExpressionNode{Token: tok, Name: tok.Literal}
	case par.match(lexer.LPAREN):
		expr := par.expression()
		par.expectAdvance(lexer.RPAREN, "Expect ')' after expression.")
		return &ParenthesizedExpressionNode{Expr: expr}
	}

	par.fail(par.current(), "Expect expression.")
	return nil // unreachable, fail panics
}
