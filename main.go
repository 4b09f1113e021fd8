/*
Package main is the entry point for the Lox interpreter.
It provides two modes of operation:
 1. REPL Mode (default): Interactive Read-Eval-Print Loop for live coding
 2. File Mode: Execute a Lox source file from the command line

The interpreter runs a lexer-parser-resolver-evaluator pipeline over the
source. In file mode the process exit code reports what happened: 0 on
success, 65 when any compile-time error was reported, 70 when a runtime
error occurred, and 64 for a usage error.
*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/cubedhuang/lox/diag"
	"github.com/cubedhuang/lox/eval"
	"github.com/cubedhuang/lox/lexer"
	"github.com/cubedhuang/lox/parser"
	"github.com/cubedhuang/lox/repl"
	"github.com/cubedhuang/lox/resolver"
)

// VERSION represents the current version of the Lox interpreter
var VERSION = "v1.0.0"

// LICENSE specifies the software license (MIT License)
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode
var PROMPT = "lox > "

// BANNER is the ASCII art logo displayed when starting the REPL
var BANNER = `
 ██▓     ▒█████  ▒██   ██▒
▓██▒    ▒██▒  ██▒▒▒ █ █ ▒░
▒██░    ▒██░  ██▒░░  █   ░
▒██░    ▒██   ██░ ░ █ █ ▒
░██████▒░ ████▓▒░▒██▒ ▒██▒
░ ▒░▓  ░░ ▒░▒░▒░ ▒▒ ░ ░▓ ░
`

// LINE is a separator line used for visual formatting in the REPL
var LINE = "----------------------------------------------------------------"

// redColor is used for driver-level failures like unreadable files
var redColor = color.New(color.FgRed)

// main determines the operating mode based on command-line arguments:
//
// Usage:
//
//	lox              - Start in REPL (interactive) mode
//	lox <script>     - Execute the specified Lox source file
//
// Anything beyond one argument is a usage error (exit code 64).
func main() {
	args := os.Args[1:]

	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(64)
	}

	if len(args) == 1 {
		runFile(args[0])
		return
	}

	// REPL mode: Start the interactive interpreter
	repler := repl.NewRepl(BANNER, VERSION, LINE, LICENSE, PROMPT)
	repler.Start(os.Stdout)
}

// runFile reads a UTF-8 source file and runs it through the pipeline.
// Each phase stops the pipeline when the previous one reported an error:
// lex, then parse, then resolve (all exit 65), then evaluate (exit 70 on a
// runtime error). A program that runs to completion exits 0.
func runFile(fileName string) {
	src, err := os.ReadFile(fileName)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file %s: %v\n", fileName, err)
		os.Exit(74)
	}

	reporter := diag.NewReporter()
	reporter.SetSource(fileName, string(src))

	lex := lexer.NewLexer(string(src), reporter)
	tokens := lex.ConsumeTokens()
	if reporter.HadError {
		os.Exit(65)
	}

	par := parser.NewParser(tokens, reporter)
	statements := par.Parse()
	if reporter.HadError {
		os.Exit(65)
	}
	if len(statements) == 0 {
		return
	}

	evaluator := eval.NewEvaluator(reporter)
	res := resolver.NewResolver(evaluator, reporter)
	res.ResolveProgram(statements)
	if reporter.HadError {
		os.Exit(65)
	}

	evaluator.Run(statements)
	if reporter.HadRuntimeError {
		os.Exit(70)
	}
}
