package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"monke/compiler"
	"monke/lexer"
	"monke/parser"
	"monke/vm"
)

// runCompiledCmd implements the `runc` subcommand: lex, parse, compile to
// bytecode, and execute with the stack VM.
type runCompiledCmd struct{}

func (*runCompiledCmd) Name() string { return "runc" }
func (*runCompiledCmd) Synopsis() string {
	return "Execute monke code from a source file with the bytecode VM"
}
func (*runCompiledCmd) Usage() string {
	return `runc <file>:
  Execute monke code.
`
}
func (r *runCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	comp := compiler.New()
	if err := comp.Compile(program); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	machine := vm.New(comp.Bytecode())
	if err := machine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return subcommands.ExitFailure
	}

	fmt.Fprintln(os.Stdout, machine.LastPoppedStackElem().Inspect())

	return subcommands.ExitSuccess
}
