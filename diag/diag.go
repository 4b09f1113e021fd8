// Package diag implements the shared diagnostic sink for the Lox interpreter.
// Every phase of the pipeline (lexer, parser, resolver, evaluator) writes its
// errors to one Reporter instance, which formats them for the terminal and
// records two sticky flags: HadError for compile-time errors and
// HadRuntimeError for evaluation errors. The driver consults the flags to
// decide whether to continue the pipeline and which exit code to use.
//
// The Reporter is a constructor-injected collaborator, not a process-wide
// singleton, so tests and the REPL can each own their own sink.
package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/cubedhuang/lox/lexer"
)

// Color definitions for diagnostic output.
// Errors are printed in red, source locations in cyan, matching the color
// conventions used across the interpreter's terminal output.
var (
	redColor  = color.New(color.FgRed)
	cyanColor = color.New(color.FgCyan)
)

// Reporter is the shared diagnostic sink. It accumulates no error list; each
// diagnostic is written immediately to Writer, and only the sticky flags are
// kept for control flow.
//
// Fields:
//   - File: Name of the source file being processed (shown in locations)
//   - HadError: Set by lex, parse, and resolve errors
//   - HadRuntimeError: Set by evaluator errors
//   - Writer: Destination for formatted diagnostics (default: os.Stderr)
type Reporter struct {
	File            string    // Source file name for locations
	HadError        bool      // Sticky compile-time error flag
	HadRuntimeError bool      // Sticky runtime error flag
	Writer          io.Writer // Diagnostic output destination

	lines []string // Source split into lines, for the caret display
}

// NewReporter creates a Reporter writing to standard error.
//
// Returns:
//   - *Reporter: A fresh sink with both flags cleared
func NewReporter() *Reporter {
	return &Reporter{
		File:   "<script>",
		Writer: os.Stderr,
	}
}

// SetWriter redirects diagnostic output, primarily for tests.
func (r *Reporter) SetWriter(w io.Writer) {
	r.Writer = w
}

// SetSource records the file name and source text of the program being
// processed. The source is split into lines so diagnostics can show the
// offending line with a caret under the reported column.
//
// Parameters:
//   - file: Display name of the source file
//   - src: The complete source text
func (r *Reporter) SetSource(file string, src string) {
	r.File = file
	r.lines = strings.Split(src, "\n")
}

// Reset clears both sticky flags. The REPL calls this before each input line
// so one bad line does not poison the next.
func (r *Reporter) Reset() {
	r.HadError = false
	r.HadRuntimeError = false
}

// LexError reports a lexical error at a raw line/column position.
// Lexer diagnostics carry no token, so the <Where> part is empty.
// Sets HadError. This implements the lexer.ErrorSink interface.
//
// Parameters:
//   - line: 1-based source line of the offending character
//   - column: 0-based column of the offending character
//   - message: The diagnostic message
func (r *Reporter) LexError(line int, column int, message string) {
	r.report("Error", "", message, line, column)
	r.HadError = true
}

// TokenError reports a compile-time error (parse or resolve) anchored at a
// token. The <Where> part is " at end" when the token is the EOF sentinel and
// " at 'LEXEME'" otherwise. Sets HadError.
//
// Parameters:
//   - tok: The token the error is anchored to
//   - message: The diagnostic message
func (r *Reporter) TokenError(tok lexer.Token, message string) {
	r.report("Error", where(tok), message, tok.Line, tok.Column)
	r.HadError = true
}

// RuntimeError reports an evaluation error anchored at a token. Runtime
// diagnostics use an empty <Where> part. Sets HadRuntimeError.
//
// Parameters:
//   - tok: The operator or name token carried by the runtime error
//   - message: The diagnostic message
func (r *Reporter) RuntimeError(tok lexer.Token, message string) {
	r.report("RuntimeError", "", message, tok.Line, tok.Column)
	r.HadRuntimeError = true
}

// where builds the <Where> part of a diagnostic header for a token.
func where(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tok.Literal)
}

// report writes one formatted diagnostic:
//
//	<Kind><Where>: <Message>
//	  At file <FILE>, line <L>, column <C>
//	<source line, tabs expanded to four spaces>
//	<spaces>^ HERE
//
// The caret line is only emitted when the source line is available.
func (r *Reporter) report(kind string, wherePart string, message string, line int, column int) {
	redColor.Fprintf(r.Writer, "%s%s: %s\n", kind, wherePart, message)
	cyanColor.Fprintf(r.Writer, "  At file %s, line %d, column %d\n", r.File, line, column)

	if line < 1 || line > len(r.lines) {
		return
	}

	// Tabs are counted four columns wide by the lexer, so expanding them to
	// four spaces keeps the caret aligned with the recorded column.
	srcLine := strings.ReplaceAll(r.lines[line-1], "\t", "    ")
	fmt.Fprintf(r.Writer, "%s\n", srcLine)

	if column < 0 {
		column = 0
	}
	redColor.Fprintf(r.Writer, "%s^ HERE\n", strings.Repeat(" ", column))
}
