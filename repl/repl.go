/*
Package repl implements the Read-Eval-Print Loop (REPL) for the Lox
interpreter. The REPL provides an interactive environment where users can:
  - Enter Lox code line by line
  - See immediate results of their code execution
  - Navigate command history using arrow keys
  - Receive colored feedback for errors

The REPL uses the readline library for enhanced line editing capabilities
and runs each input line through the full pipeline (lex, parse, resolve,
evaluate) against one persistent evaluator, so definitions survive from
line to line. Errors never terminate the session: the diagnostic flags are
reset before every line.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/eval"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/resolver"
)

// Color definitions for REPL output:
// - blueColor: Decorative lines and separators
// - yellowColor: Version info
// - greenColor: Banner
// - cyanColor: Informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents the Read-Eval-Print Loop instance.
// It encapsulates the presentation configuration of an interactive session.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the interpreter
	Line    string // Separator line for visual formatting
	License string // Software license information
	Prompt  string // Command prompt shown to the user (e.g., "lox > ")
}

// NewRepl creates and initializes a new REPL instance.
//
// Parameters:
//
//	banner  - ASCII art logo to display at startup
//	version - Version string of the interpreter
//	line    - Separator line for formatting
//	license - Software license information
//	prompt  - Command prompt string
//
// Returns:
//
//	A pointer to a newly created Repl instance
func NewRepl(banner string, version string, line string, license string, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
//
// Parameters:
//
//	writer - The io.Writer to output the banner to (typically os.Stdout)
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop:
//  1. Displays the welcome banner
//  2. Sets up readline for line editing and history
//  3. Creates one reporter and one evaluator for the whole session
//  4. Runs each input line through the pipeline
//
// The loop continues until the user types 'exit' or closes the input
// (Ctrl+D). Errors in a line are reported and the loop continues with
// clean flags on the next line.
//
// Parameters:
//
//	writer - Output destination (typically os.Stdout)
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	// Create a new readline instance for enhanced line editing.
	// This provides features like command history, cursor movement, etc.
	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close() // Ensure readline is properly closed on exit

	// One reporter and one evaluator live for the whole session, so
	// globals persist across lines while error flags reset per line.
	reporter := diag.NewReporter()
	evaluator := eval.NewEvaluator(reporter)
	evaluator.SetWriter(writer)

	for {
		// Read a line of input from the user.
		// This blocks until the user presses Enter.
		line, err := rl.Readline()
		if err != nil {
			// EOF or error occurred (e.g., Ctrl+D pressed)
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}

		// Check for exit command
		if line == "exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		// Save the command to history for up/down arrow navigation
		rl.SaveHistory(line)

		r.executeLine(line, reporter, evaluator)
	}
}

// executeLine runs one input line through the full pipeline. Each phase
// stops the line when the previous one reported an error; the reporter's
// flags are reset first so earlier lines' failures don't bleed through.
//
// Parameters:
//
//	line      - The user's input line to execute
//	reporter  - The session's diagnostic sink
//	evaluator - The session's evaluator (holds state across lines)
func (r *Repl) executeLine(line string, reporter *diag.Reporter, evaluator *eval.Evaluator) {
	reporter.Reset()
	reporter.SetSource("<repl>", line)

	lex := lexer.NewLexer(line, reporter)
	tokens := lex.ConsumeTokens()
	if reporter.HadError {
		return
	}

	par := parser.NewParser(tokens, reporter)
	statements := par.Parse()
	if reporter.HadError || len(statements) == 0 {
		return
	}

	res := resolver.NewResolver(evaluator, reporter)
	res.ResolveProgram(statements)
	if reporter.HadError {
		return
	}

	evaluator.Run(statements)
}
