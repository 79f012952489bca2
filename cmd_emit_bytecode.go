package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"monke/compiler"
	"monke/lexer"
	"monke/parser"
)

// emitBytecodeCmd implements the `emit` subcommand: compile a file and
// write its disassembly plus a raw hex dump to disk.
type emitBytecodeCmd struct {
	outDir string
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode disassembly for a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `emit <file>:
  Compile a file and write its disassembly (.dmnc) and raw bytecode (.mnc).
`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.outDir, "out", "", "directory to write the .dmnc/.mnc files to; defaults to the source file's directory")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}
	monkeFile := args[0]

	data, err := os.ReadFile(monkeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file:\n\t%v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	p := parser.New(lex)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "💥 Parsing error:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "\t%v\n", e)
		}
		return subcommands.ExitFailure
	}

	comp := compiler.New()
	if err := comp.Compile(program); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Compilation error:\n\t%v\n", err)
		return subcommands.ExitFailure
	}

	base := strings.TrimSuffix(monkeFile, filepath.Ext(monkeFile))
	if cmd.outDir != "" {
		base = filepath.Join(cmd.outDir, filepath.Base(base))
	}

	bytecode := comp.Bytecode()

	disassembly := bytecode.Instructions.String()
	if err := os.WriteFile(base+".dmnc", []byte(disassembly), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Bytecode disassemble error:\n\t%s\n", err.Error())
		return subcommands.ExitFailure
	}

	dump := hex.EncodeToString(bytecode.Instructions)
	if err := os.WriteFile(base+".mnc", []byte(dump), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 Dump bytecode error:\n\t%s\n", err.Error())
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

