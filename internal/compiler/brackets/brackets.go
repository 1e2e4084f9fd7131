// Package brackets pairs block and expression delimiters in a lexed token
// sequence. The pairing lives in a side table; tokens are left untouched.
package brackets

import (
	"github.com/arnavsurve/vasc/internal/compiler/diag"
	"github.com/arnavsurve/vasc/internal/compiler/token"
)

// Pairs maps the index of every opening delimiter to the index of its
// matching close.
type Pairs map[int]int

// Match returns the closing index for the opening delimiter at open.
func (p Pairs) Match(open int) (int, bool) {
	end, ok := p[open]
	return end, ok
}

// Resolve makes one forward pass over tokens. Blocks and expressions are
// matched on independent stacks, so `{ ( } )` resolves.
func Resolve(tokens []token.Token) (Pairs, error) {
	pairs := make(Pairs)
	var blocks, exprs []int

	for i, tok := range tokens {
		switch tok.Type {
		case token.TokenBlockStart:
			blocks = append(blocks, i)
		case token.TokenExprStart:
			exprs = append(exprs, i)
		case token.TokenBlockEnd:
			open, err := pop(&blocks, tok)
			if err != nil {
				return nil, err
			}
			pairs[open] = i
		case token.TokenExprEnd:
			open, err := pop(&exprs, tok)
			if err != nil {
				return nil, err
			}
			pairs[open] = i
		}
	}

	for _, pending := range [][]int{blocks, exprs} {
		if len(pending) > 0 {
			open := tokens[pending[len(pending)-1]]
			return nil, diag.SyntaxErrorf(open, "incomplete bracket pair: %s is never closed", open.Type)
		}
	}

	return pairs, nil
}

func pop(stack *[]int, closing token.Token) (int, error) {
	s := *stack
	if len(s) == 0 {
		return 0, diag.SyntaxErrorf(closing, "unpaired end bracket %s", closing.Type)
	}
	open := s[len(s)-1]
	*stack = s[:len(s)-1]
	return open, nil
}
