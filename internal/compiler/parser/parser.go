package parser

import (
	"github.com/arnavsurve/vasc/internal/compiler/ast"
	"github.com/arnavsurve/vasc/internal/compiler/brackets"
	"github.com/arnavsurve/vasc/internal/compiler/diag"
	"github.com/arnavsurve/vasc/internal/compiler/token"
)

// Cursor is an explicit position over a bracket-resolved token sequence.
// Accessors fail with a syntax error instead of reading past the end.
type Cursor struct {
	tokens []token.Token
	pairs  brackets.Pairs
	pos    int
}

func NewCursor(tokens []token.Token, pairs brackets.Pairs) *Cursor {
	return &Cursor{tokens: tokens, pairs: pairs}
}

func (c *Cursor) Pos() int   { return c.pos }
func (c *Cursor) Done() bool { return c.pos >= len(c.tokens) }

// Current returns the token under the cursor. Callers check Done first.
func (c *Cursor) Current() token.Token { return c.tokens[c.pos] }

func (c *Cursor) Advance() { c.pos++ }

// Next advances one token and returns it. what names the construct that
// needed the token, for the end-of-input message.
func (c *Cursor) Next(what string) (token.Token, error) {
	c.pos++
	if c.Done() {
		return token.Token{}, diag.SyntaxErrorf(c.last(), "unexpected end of input after %s", what)
	}
	return c.tokens[c.pos], nil
}

// Expect advances one token and requires it to be of type want.
func (c *Cursor) Expect(want token.TokenType, what string) (token.Token, error) {
	tok, err := c.Next(what)
	if err != nil {
		return tok, err
	}
	if tok.Type != want {
		return tok, diag.SyntaxErrorf(tok, "expected %s after %s, got %s", want, what, tok)
	}
	return tok, nil
}

// MatchingEnd returns the resolved close index for the opening delimiter
// under the cursor.
func (c *Cursor) MatchingEnd() (int, bool) {
	return c.pairs.Match(c.pos)
}

func (c *Cursor) last() token.Token {
	if len(c.tokens) == 0 {
		return token.Token{}
	}
	return c.tokens[len(c.tokens)-1]
}

// ParseCondition recognizes `( SizedLiteral == SizedLiteral )` starting with
// the cursor on the `if` token, and leaves the cursor just past the `)`.
func ParseCondition(c *Cursor) (*ast.InfixExpression, error) {
	open, err := c.Expect(token.TokenExprStart, "conditional")
	if err != nil {
		return nil, err
	}
	end, ok := c.MatchingEnd()
	if !ok {
		return nil, diag.SyntaxErrorf(open, "unresolved expression bracket")
	}

	left, err := parseOperand(c, "'('")
	if err != nil {
		return nil, err
	}

	op, err := c.Next("left operand")
	if err != nil {
		return nil, err
	}
	if op.Type != token.TokenEquality {
		return nil, diag.SyntaxErrorf(op, "unsupported operator %s, only == is supported", op)
	}

	right, err := parseOperand(c, "'=='")
	if err != nil {
		return nil, err
	}

	closing, err := c.Next("right operand")
	if err != nil {
		return nil, err
	}
	if c.Pos() != end {
		return nil, diag.SyntaxErrorf(closing, "expected ')' to close conditional expression, got %s", closing)
	}
	c.Advance()

	return &ast.InfixExpression{Token: op, Left: left, Operator: op.Literal, Right: right}, nil
}

func parseOperand(c *Cursor, after string) (*ast.IntegerLiteral, error) {
	tok, err := c.Expect(token.TokenSizedLiteral, after)
	if err != nil {
		return nil, err
	}
	return &ast.IntegerLiteral{Token: tok, Value: tok.Value}, nil
}
