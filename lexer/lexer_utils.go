package lexer

import "strconv"

// isDigit reports whether c is an ASCII decimal digit ('0'..'9').
// This is used in the hot path for number scanning.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha reports whether c can start an identifier: an ASCII letter or '_'.
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isAlphanumeric reports whether c can continue an identifier: an ASCII
// letter, digit, or '_'.
func isAlphanumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

// readStringLiteral reads and tokenizes a string literal from the source.
// String literals are enclosed in double quotes ("), may span multiple
// lines, and support no escape sequences; every byte between the quotes is
// taken verbatim.
//
// An unterminated string (end of file before the closing quote) is reported
// to the sink as "Unterminated string." and produces no token.
//
// Parameters:
//   - lex: Pointer to the lexer instance
//
// Returns:
//   - Token: A STRING token whose Value is the unquoted contents
//   - bool: false when the string was unterminated and no token was produced
//
// Example:
//
//	Source: "hello"
//	Returns: Token{Type: STRING, Literal: "\"hello\"", Value: "hello"}
func readStringLiteral(lex *Lexer) (Token, bool) {
	start := lex.Position
	lex.Advance() // Consume opening quote

	// Read characters until closing quote
	for lex.Current != '"' {
		// Check for unterminated string (EOF before the closing quote)
		if lex.Current == 0 {
			lex.Sink.LexError(lex.Line, lex.Column, "Unterminated string.")
			return Token{}, false
		}
		lex.Advance()
	}

	lex.Advance() // Consume closing quote

	lexeme := lex.Src[start:lex.Position]
	value := lexeme[1 : len(lexeme)-1]
	return NewTokenWithMetadata(STRING, lexeme, value, lex.Line, lex.Column-len(lexeme)), true
}

// readNumber reads and tokenizes a numeric literal from the source.
// A number is one or more digits, optionally followed by a '.' and one or
// more digits. There is no leading sign, no exponent, and no hex form.
// Deciding whether a '.' belongs to the number takes the lexer's only
// two-character lookahead.
//
// The token's Value is the parsed float64 of the lexeme.
//
// Parameters:
//   - lex: Pointer to the lexer instance
//
// Returns:
//   - Token: A NUMBER token with the parsed value attached
//
// Example:
//
//	Source: "123.45"
//	Returns: Token{Type: NUMBER, Literal: "123.45", Value: 123.45}
func readNumber(lex *Lexer) Token {
	start := lex.Position

	for isDigit(lex.Current) {
		lex.Advance()
	}

	// A fractional part needs a digit after the dot; a bare trailing dot is
	// left for the next token (so "12.foo" parses as a property access, which
	// fails at run time because a number is not an instance).
	if lex.Current == '.' && isDigit(lex.Peek()) {
		lex.Advance() // Consume the '.'
		for isDigit(lex.Current) {
			lex.Advance()
		}
	}

	lexeme := lex.Src[start:lex.Position]
	value, _ := strconv.ParseFloat(lexeme, 64)
	return NewTokenWithMetadata(NUMBER, lexeme, value, lex.Line, lex.Column-len(lexeme))
}

// readIdentifier reads and tokenizes an identifier or keyword from the source.
// Identifiers can be variable names, function names, class names, or
// language keywords.
//
// Rules:
//   - Must start with an ASCII letter or underscore (_)
//   - Can contain ASCII letters, digits, or underscores
//   - Keywords are identified using the lookupIdent function
//
// Parameters:
//   - lex: Pointer to the lexer instance
//
// Returns:
//   - Token: An IDENTIFIER token or a keyword token type
//
// Example:
//
//	Source: "myVariable"
//	Returns: Token{Type: IDENTIFIER, Literal: "myVariable"}
//
//	Source: "if"
//	Returns: Token{Type: IF, Literal: "if"}
func readIdentifier(lex *Lexer) Token {
	start := lex.Position

	lex.Advance()
	for isAlphanumeric(lex.Current) {
		lex.Advance()
	}

	lexeme := lex.Src[start:lex.Position]

	// Check if this identifier is actually a keyword
	return NewTokenWithMetadata(lookupIdent(lexeme), lexeme, nil, lex.Line, lex.Column-len(lexeme))
}
