package main

import (
	"context"
	"flag"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"monke/ast"
	"monke/compiler"
	"monke/object"
	"monke/vm"
)

// replCompiledCmd implements the `replc` subcommand: an interactive
// session backed by the bytecode compiler and stack VM, with globals and
// the symbol table persisted across lines.
type replCompiledCmd struct{}

func (*replCompiledCmd) Name() string { return "replc" }
func (*replCompiledCmd) Synopsis() string {
	return "Start an interactive REPL session using the bytecode compiler and VM"
}
func (*replCompiledCmd) Usage() string {
	return `replc:
  Start an interactive REPL session using the bytecode compiler and VM.
`
}
func (r *replCompiledCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bannerColor.Fprintln(stdout, monkeFace)
	promptColor.Fprintln(stdout, "Welcome to monke (compiled)! Type `exit` to quit, `clear` to clear the screen.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "monke >> ",
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		errorColor.Fprintf(stdout, "💥 %s\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	constants := []object.Value{}
	globals := make([]object.Value, vm.GlobalsSize)
	symbolTable := compiler.NewSymbolTable()
	for i, b := range object.Builtins {
		symbolTable.DefineBuiltin(i, b.Name)
	}

	runReplLoop(rl, func(program *ast.Program) {
		comp := compiler.NewWithState(symbolTable, constants)
		if err := comp.Compile(program); err != nil {
			errorColor.Fprintln(stdout, err.Error())
			return
		}

		code := comp.Bytecode()
		constants = code.Constants

		machine := vm.NewWithGlobalsStore(code, globals)
		if err := machine.Run(); err != nil {
			errorColor.Fprintln(stdout, err.Error())
			return
		}

		resultColor.Fprintf(stdout, "[Output]: %s\n", machine.LastPoppedStackElem().Inspect())
	})

	return subcommands.ExitSuccess
}
