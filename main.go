// Command monke is the CLI entry point for the monke language: a
// tree-walking evaluator and an equivalent bytecode compiler + stack VM,
// dispatched across five subcommands.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&runCmd{}, "")
	subcommands.Register(&runCompiledCmd{}, "")
	subcommands.Register(&replCmd{}, "")
	subcommands.Register(&replCompiledCmd{}, "")
	subcommands.Register(&emitBytecodeCmd{}, "")

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
