// Package diag holds the compiler's error taxonomy. Every error is fatal:
// the first one aborts compilation and no output is produced.
package diag

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/vasc/internal/compiler/token"
)

type Kind int

const (
	Lex Kind = iota
	Syntax
	Semantic
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "Lex"
	case Syntax:
		return "Syntax"
	case Semantic:
		return "Semantic"
	}
	return "Unknown"
}

type Error struct {
	Kind   Kind
	Msg    string
	Line   int
	Column int
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s Error: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s Error: %s (line %d, col %d)", e.Kind, e.Msg, e.Line, e.Column)
}

func newError(kind Kind, line, col int, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line, Column: col}
}

func LexErrorf(line, col int, format string, args ...any) *Error {
	return newError(Lex, line, col, format, args...)
}

// SyntaxErrorf reports a syntax error positioned at tok.
func SyntaxErrorf(tok token.Token, format string, args ...any) *Error {
	return newError(Syntax, tok.Line, tok.Column, format, args...)
}

// SemanticErrorf reports a semantic error positioned at tok.
func SemanticErrorf(tok token.Token, format string, args ...any) *Error {
	return newError(Semantic, tok.Line, tok.Column, format, args...)
}

// Is reports whether err (or anything it wraps) is a compiler error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Warning is a non-fatal diagnostic surfaced alongside successful output.
type Warning struct {
	Msg    string
	Line   int
	Column int
}

func (w Warning) String() string {
	return fmt.Sprintf("%s (line %d, col %d)", w.Msg, w.Line, w.Column)
}
