package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"monke/ast"
	"monke/evaluator"
	"monke/lexer"
	"monke/object"
	"monke/parser"
	"monke/token"
)

const monkeFace = `            __,__
   .--.  .-"     "-.  .--.
  / .. \/  .-. .-.  \/ .. \
 | |  '|  /   Y   \  |'  | |
 | \   \  \ 0 | 0 /  /   / |
  \ '- ,\.-"""""""-./, -' /
   ''-' /_   ^ ^   _\ '-''
       |  \._   _./  |
       \   \ '~' /   /
        '._ '-=-' _.'
           '-----'
`

// replCmd implements the `repl` subcommand: an interactive session backed
// by the tree-walking evaluator.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive tree-walking REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive REPL session using the tree-walking evaluator.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bannerColor.Fprintln(stdout, monkeFace)
	promptColor.Fprintln(stdout, "Welcome to monke! Type `exit` to quit, `clear` to clear the screen.")

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

	env := object.NewEnvironment()

	runReplLoop(rl, func(program *ast.Program) {
		result := evaluator.Eval(program, env)
		if result != nil {
			resultColor.Fprintf(stdout, "[Output] %s\n", result.Inspect())
		}
	})

	return subcommands.ExitSuccess
}

// scanAll drains lex into a token slice, including the trailing EOF.
func scanAll(lex *lexer.Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := lex.NextToken()
		toks = append(toks, tok)
		if tok.TokenType == token.EOF {
			return toks
		}
	}
}

// runReplLoop owns the readline/multi-line-buffering protocol shared by
// the interp and vm REPLs: it accumulates lines until braces balance and
// the trailing token doesn't obviously expect a continuation, parses the
// result once, and hands the finished *ast.Program to evalProgram.
func runReplLoop(rl *readline.Instance, evalProgram func(*ast.Program)) {
	var buffer strings.Builder

	for {
		if buffer.Len() > 0 {
			rl.SetPrompt("...... ")
		} else {
			rl.SetPrompt("monke >> ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buffer.Len() > 0 {
				buffer.Reset()
				continue
			}
			break
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			errorColor.Fprintf(stdout, "💥 %s\n", err)
			break
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "exit" && buffer.Len() == 0 {
			break
		}
		if trimmed == "clear" && buffer.Len() == 0 {
			fmt.Fprint(stdout, "\033[H\033[2J")
			continue
		}
		if trimmed == "" && buffer.Len() == 0 {
			continue
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		toks := scanAll(lexer.New(source))
		if !isInputReady(toks) {
			continue
		}

		p := parser.New(lexer.New(source))
		program := p.ParseProgram()

		if errs := p.Errors(); len(errs) > 0 {
			eofTok := toks[len(toks)-1]
			if allParseErrorsAtEOF(errs, eofTok.Line, eofTok.Column) {
				continue
			}
			errorColor.Fprintln(stdout, "Oops! Parsing Error!:")
			for _, e := range errs {
				errorColor.Fprintln(stdout, e)
			}
			buffer.Reset()
			continue
		}

		rl.SaveHistory(source)
		buffer.Reset()

		evalProgram(program)
	}
}
