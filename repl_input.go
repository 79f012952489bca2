package main

import (
	"monke/parser"
	"monke/token"
)

// isInputReady checks whether a REPL line buffer is syntactically complete
// enough to attempt parsing: braces must be balanced, and the last
// non-EOF token must not be one that obviously expects a continuation
// (an operator, an opening paren/brace, or a keyword that starts a
// construct). Grounded on the teacher's cmd_repl_compiled.go helper of
// the same name.
func isInputReady(tokens []token.Token) bool {
	braceBalance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
	}
	if braceBalance > 0 {
		return false
	}

	last := lastNonEOF(tokens)
	if last == nil {
		return true
	}

	switch last.TokenType {
	case token.ASSIGN,
		token.ADD,
		token.SUB,
		token.MULT,
		token.DIV,
		token.BANG,
		token.EQUAL,
		token.NOT_EQUAL,
		token.LESS,
		token.LARGER,
		token.COMMA,
		token.LPA,
		token.LCUR,
		token.IF,
		token.ELSE,
		token.FUNC,
		token.RETURN,
		token.LET:
		return false
	}

	return true
}

func lastNonEOF(tokens []token.Token) *token.Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].TokenType != token.EOF {
			return &tokens[i]
		}
	}
	return nil
}

// allParseErrorsAtEOF reports whether every parse error occurred at the
// position of the EOF token, meaning the user simply hasn't finished
// typing rather than made a genuine mistake.
func allParseErrorsAtEOF(errs []*parser.ParseError, eofLine int32, eofColumn int) bool {
	if len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		if e.Line != eofLine || e.Column != eofColumn {
			return false
		}
	}
	return true
}
