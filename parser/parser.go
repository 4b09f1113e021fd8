/*
Package parser implements a recursive-descent parser for the Lox language.

The parser converts the token stream produced by the lexer into an Abstract
Syntax Tree (AST). It handles:
  - Expressions (binary, logical, unary, literals, identifiers, calls,
    property access, this/super)
  - Statements (declarations, blocks, control flow, returns, classes)
  - Operator precedence and associativity, encoded directly in the grammar
  - Compound assignment operators (+=, -=, *=, /=, %=), desugared at parse
    time by tagging the assignment node with the underlying operator
  - For loops, lowered at parse time to an equivalent while loop

Error handling follows panic-mode synchronization: a syntax error inside a
declaration reports to the shared sink, then discards tokens until a likely
statement boundary and replaces the broken declaration with an inert
expression statement, so one broken declaration does not mask errors in the
declarations that follow it.
*/
package parser

import (
	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/lexer"
)

// Parser represents the parser state. It consumes a complete token slice
// (terminated by the EOF sentinel) and reports errors to the shared sink.
type Parser struct {
	Tokens []lexer.Token  // The full token stream, EOF-terminated
	Pos    int            // Index of the current (unconsumed) token
	Sink   *diag.Reporter // Shared diagnostic sink
}

// parseError is the sentinel panic value used for panic-mode recovery.
// It is raised after a structural error has been reported and is recovered
// at the enclosing declaration, which then synchronizes.
type parseError struct{}

// NewParser creates a Parser over a token stream.
//
// Parameters:
//
//	tokens - The EOF-terminated token slice from the lexer
//	sink   - The shared diagnostic sink
//
// Returns:
//
//	A parser ready to use; call Parse() to build the AST.
func NewParser(tokens []lexer.Token, sink *diag.Reporter) *Parser {
	return &Parser{
		Tokens: tokens,
		Sink:   sink,
	}
}

// Parse parses the whole token stream into a list of top-level statements.
// Parsing continues past syntax errors via synchronization, so the returned
// list always spans the whole input; the driver must consult the sink's
// error flag before resolving or evaluating it.
//
// Returns:
//
//	The parsed statement list
func (par *Parser) Parse() []StatementNode {
	statements := make([]StatementNode, 0)
	for !par.isAtEnd() {
		statements = append(statements, par.declaration())
	}
	return statements
}

// current returns the current (unconsumed) token.
func (par *Parser) current() lexer.Token {
	return par.Tokens[par.Pos]
}

// previous returns the most recently consumed token.
func (par *Parser) previous() lexer.Token {
	return par.Tokens[par.Pos-1]
}

// isAtEnd reports whether the parser has reached the EOF sentinel.
func (par *Parser) isAtEnd() bool {
	return par.current().Type == lexer.EOF
}

// advance consumes the current token and returns it. At EOF it stays put,
// so advancing past the end is safe.
func (par *Parser) advance() lexer.Token {
	if !par.isAtEnd() {
		par.Pos++
	}
	return par.previous()
}

// check reports whether the current token has the given type, without
// consuming it.
func (par *Parser) check(tokenType lexer.TokenType) bool {
	return par.current().Type == tokenType
}

// match consumes the current token if its type is one of the given types.
//
// Returns:
//
//	true if a token was consumed
func (par *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if par.check(t) {
			par.advance()
			return true
		}
	}
	return false
}

// expectAdvance consumes the current token if it has the expected type.
// Otherwise it reports the given diagnostic at the current token and raises
// the recovery panic.
//
// Parameters:
//
//	expected - The token type that must come next
//	message  - The diagnostic to report when it does not
//
// Returns:
//
//	The consumed token
func (par *Parser) expectAdvance(expected lexer.TokenType, message string) lexer.Token {
	if par.check(expected) {
		return par.advance()
	}
	par.fail(par.current(), message)
	return lexer.Token{} // unreachable, fail panics
}

// reportError reports a diagnostic at a token without abandoning the
// current production. Used for errors that parsing can continue through,
// like over-long argument lists and invalid assignment targets.
func (par *Parser) reportError(tok lexer.Token, message string) {
	par.Sink.TokenError(tok, message)
}

// fail reports a diagnostic at a token and raises the recovery panic,
// unwinding to the enclosing declaration for synchronization.
func (par *Parser) fail(tok lexer.Token, message string) {
	par.Sink.TokenError(tok, message)
	panic(parseError{})
}

// synchronize discards tokens until a likely statement boundary: just past
// a semicolon, or just before a keyword that starts a declaration or
// statement. This bounds the blast radius of a syntax error to one
// declaration.
func (par *Parser) synchronize() {
	par.advance()

	for !par.isAtEnd() {
		if par.previous().Type == lexer.SEMICOLON {
			return
		}

		switch par.current().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR, lexer.IF, lexer.WHILE, lexer.RETURN:
			return
		}

		par.advance()
	}
}
