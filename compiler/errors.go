package compiler

import "fmt"

// SemanticError reports a problem discovered while compiling an AST that
// is syntactically valid but cannot be turned into bytecode (an unresolved
// identifier, a malformed if-expression).
type SemanticError struct {
	Message string
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("💥 SemanticError: %s", e.Message)
}

// DeveloperError marks an invariant the compiler itself is responsible
// for upholding (an AST node type Compile has no case for) — if one
// surfaces, it is a bug in the compiler, not the input program.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
