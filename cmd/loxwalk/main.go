// Command loxwalk is the thin external entry point spec.md §0/§6
// describes as out of core scope: it dispatches a sub-command, reads a
// source file, drives internal/pipeline, and picks an exit code. All of
// the actual tokenizing/parsing/resolving/interpreting happens in the
// internal packages this file only wires together.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/mgrafton/loxwalk/internal/ast"
	"github.com/mgrafton/loxwalk/internal/config"
	"github.com/mgrafton/loxwalk/internal/diagnostics"
	"github.com/mgrafton/loxwalk/internal/evaluator"
	"github.com/mgrafton/loxwalk/internal/parser"
	"github.com/mgrafton/loxwalk/internal/pipeline"
	"github.com/mgrafton/loxwalk/internal/prettyprinter"
	"github.com/mgrafton/loxwalk/internal/resolver"
	"github.com/mgrafton/loxwalk/internal/scanner"
	"github.com/mgrafton/loxwalk/internal/token"
)

// colorize is true when stderr is an interactive terminal, the same
// judgment REPL-capable CLIs in this corpus make before adding ANSI
// color to diagnostic output.
var colorize = isatty.IsTerminal(os.Stderr.Fd())

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <tokenize|parse|evaluate|run> <file> [-trace] [-stats]\n", os.Args[0])
		os.Exit(1)
	}

	command := os.Args[1]
	var filePath string
	var trace, stats bool
	for _, arg := range os.Args[2:] {
		switch arg {
		case "-trace":
			trace = true
		case "-stats":
			stats = true
		default:
			filePath = arg
		}
	}
	if filePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: missing source file")
		os.Exit(1)
	}
	if !strings.HasSuffix(filePath, config.SourceFileExt) {
		fmt.Fprintf(os.Stderr, "Warning: %s does not have the %s extension\n", filePath, config.SourceFileExt)
	}

	source, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "tokenize":
		runTokenize(string(source), stats)
	case "parse":
		runParse(string(source))
	case "evaluate":
		runEvaluate(string(source), trace)
	case "run":
		runProgram(string(source), trace, stats)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func runTokenize(source string, stats bool) {
	sc := scanner.New(source)
	tokens, errs := sc.ScanTokens()
	for _, tok := range tokens {
		fmt.Println(formatToken(tok))
	}
	for _, e := range errs {
		printError(e)
	}
	if stats {
		fmt.Fprintf(os.Stderr, "scanned %s tokens\n", humanize.Comma(int64(len(tokens))))
	}
	if len(errs) > 0 {
		os.Exit(config.ExitDataErr)
	}
}

func runParse(source string) {
	ctx := pipeline.NewContext(source)
	sc := scanner.New(source)
	tokens, scanErrs := sc.ScanTokens()
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx.Errors = append(ctx.Errors, scanErrs...)

	p := parser.New(ctx.TokenStream, ctx)
	expr := p.ParseExpression()

	for _, e := range ctx.Errors {
		printError(e)
	}
	if ctx.HasErrors() {
		os.Exit(config.ExitDataErr)
	}
	fmt.Println(prettyprinter.Print(expr))
}

func runEvaluate(source string, trace bool) {
	ctx := pipeline.NewContext(source)
	sc := scanner.New(source)
	tokens, scanErrs := sc.ScanTokens()
	ctx.TokenStream = scanner.NewTokenStream(tokens)
	ctx.Errors = append(ctx.Errors, scanErrs...)

	p := parser.New(ctx.TokenStream, ctx)
	ctx.Expression = p.ParseExpression()

	if ctx.HasErrors() {
		for _, e := range ctx.Errors {
			printError(e)
		}
		os.Exit(config.ExitDataErr)
	}

	// A bare expression (the `evaluate` sub-command's grammar) can
	// contain no var/fun/class declarations, so there is no local scope
	// for the resolver to annotate; every name in it resolves against
	// globals at evaluation time.
	ctx.Depths = map[ast.Expression]int{}

	pl := pipeline.New(&evaluator.ExprProcessor{Trace: trace})
	ctx = pl.Run(ctx)

	reportAndExit(ctx, trace)
}

func runProgram(source string, trace, stats bool) {
	ctx := pipeline.NewContext(source)

	pl := pipeline.New(
		&scanner.Processor{},
		&parser.Processor{},
		&resolver.Processor{},
		&evaluator.Processor{Trace: trace},
	)
	ctx = pl.Run(ctx)

	if stats {
		fmt.Fprintf(os.Stderr, "executed %s statements\n", humanize.Comma(int64(len(ctx.Statements))))
	}
	reportAndExit(ctx, trace)
}

func reportAndExit(ctx *pipeline.Context, trace bool) {
	if !ctx.HasErrors() {
		os.Exit(config.ExitOK)
	}
	exitCode := config.ExitDataErr
	for _, e := range ctx.Errors {
		printError(e)
		if trace {
			for _, line := range e.Trace {
				fmt.Fprintf(os.Stderr, "  %s\n", line)
			}
		}
		if e.ExitCode() > exitCode {
			exitCode = e.ExitCode()
		}
	}
	os.Exit(exitCode)
}

func formatToken(tok token.Token) string {
	literal := "null"
	switch tok.Type {
	case token.STRING:
		literal = fmt.Sprintf("%v", tok.Literal)
	case token.NUMBER:
		literal = prettyprinter.Print(&ast.Literal{Token: tok, Value: tok.Literal})
	}
	return fmt.Sprintf("%s %s %s", tok.Type, tok.Lexeme, literal)
}

func printError(e *diagnostics.Error) {
	if colorize {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m\n", e.Error())
		return
	}
	fmt.Fprintln(os.Stderr, e.Error())
}
