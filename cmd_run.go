package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"monke/evaluator"
	"monke/lexer"
	"monke/object"
	"monke/parser"
)

// runCmd implements the `run` subcommand: lex, parse, and evaluate a file
// with the tree-walking evaluator.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute monke code from a source file with the tree-walking evaluator" }
func (*runCmd) Usage() string {
	return `run <file>:
  Execute monke code.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	p := parser.New(lex)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "Oops! Parsing Error!:")
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return subcommands.ExitFailure
	}

	env := object.NewEnvironment()
	result := evaluator.Eval(program, env)
	if result != nil {
		fmt.Fprintln(os.Stdout, result.Inspect())
	}

	return subcommands.ExitSuccess
}
