package parser

import "fmt"

// ParseError reports a syntax error encountered while building the AST. It
// carries the source position so the REPL and file runner can point at the
// offending token.
type ParseError struct {
	Message string
	Line    int32
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("💥 Monke Syntax error [line %d, column %d]: %s", e.Line, e.Column, e.Message)
}
