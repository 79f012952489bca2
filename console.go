package main

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// stdout wraps os.Stdout with go-colorable so fatih/color's ANSI codes
// render on Windows consoles that don't natively support them.
var stdout io.Writer = colorable.NewColorableStdout()

// colorsEnabled gates REPL/error coloring on whether stdout is an actual
// terminal, so redirecting output to a file or pipe stays plain text.
var colorsEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

var (
	bannerColor = color.New(color.FgGreen)
	promptColor = color.New(color.FgCyan)
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.FgYellow)
)

func init() {
	color.NoColor = !colorsEnabled
}
