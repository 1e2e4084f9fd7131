package token

import "fmt"

type TokenType string

const (
	// Keywords
	TokenLet         TokenType = "Let"         // var
	TokenFree        TokenType = "Free"        // free
	TokenConditional TokenType = "Conditional" // if

	// Literals & Identifiers
	TokenIdent        TokenType = "Identifier"   // Identifier (e.g. variable name)
	TokenSizedLiteral TokenType = "SizedLiteral" // 43

	// Operators
	TokenAssign   TokenType = "Assignment" // =
	TokenEquality TokenType = "Equality"   // ==

	// Delimiters
	TokenBlockStart TokenType = "BlockStart" // {
	TokenBlockEnd   TokenType = "BlockEnd"   // }
	TokenExprStart  TokenType = "ExprStart"  // (
	TokenExprEnd    TokenType = "ExprEnd"    // )

	// Special
	TokenDirective TokenType = "PreprocessorDirective" // # ... to end of line
	// NOTE: TokenNone is what an empty identifier buffer maps to.
	// The lexer discards it, so it never reaches the code generator.
	TokenNone TokenType = "None"
)

type Token struct {
	Type    TokenType
	Literal string // identifier name, digit run, or raw directive text
	Value   uint64 // only set for TokenSizedLiteral
	Line    int
	Column  int
}

func (t Token) String() string {
	switch t.Type {
	case TokenIdent:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	case TokenSizedLiteral:
		return fmt.Sprintf("%s(%d)", t.Type, t.Value)
	case TokenDirective:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	}
	return string(t.Type)
}

// IsOpen reports whether the token opens a block or an expression.
func (t Token) IsOpen() bool {
	return t.Type == TokenBlockStart || t.Type == TokenExprStart
}

// keywords maps identifier strings to their corresponding token types.
var keywords = map[string]TokenType{
	"var":  TokenLet,
	"free": TokenFree,
	"if":   TokenConditional,
}

// LookupIdent checks if an identifier is a keyword, returning the keyword's
// token type, TokenNone for an empty buffer, or TokenIdent otherwise.
func LookupIdent(ident string) TokenType {
	if ident == "" {
		return TokenNone
	}
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}
