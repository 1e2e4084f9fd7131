package brackets

import (
	"strings"
	"testing"

	"github.com/arnavsurve/vasc/internal/compiler/diag"
	"github.com/arnavsurve/vasc/internal/compiler/lexer"
	"github.com/arnavsurve/vasc/internal/compiler/token"
)

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, _, err := lexer.Lex(input)
	if err != nil {
		t.Fatalf("Lex(%q) unexpected error: %v", input, err)
	}
	return tokens
}

func TestResolvePairs(t *testing.T) {
	tests := []struct {
		input    string
		expected Pairs
	}{
		{"", Pairs{}},
		{"if (1 == 1) { }", Pairs{1: 5, 6: 7}},
		{"{ { } } ( )", Pairs{0: 3, 1: 2, 4: 5}},
		// blocks and expressions use independent stacks
		{"{ ( } )", Pairs{0: 2, 1: 3}},
		{"if (1 == 2) { if (3 == 3) { free b; } }", Pairs{1: 5, 6: 17, 8: 12, 13: 16}},
	}

	for _, tt := range tests {
		tokens := lex(t, tt.input)
		pairs, err := Resolve(tokens)
		if err != nil {
			t.Fatalf("Resolve(%q) unexpected error: %v", tt.input, err)
		}
		if len(pairs) != len(tt.expected) {
			t.Fatalf("Resolve(%q) expected %d pairs, got=%v", tt.input, len(tt.expected), pairs)
		}
		for open, end := range tt.expected {
			got, ok := pairs.Match(open)
			if !ok || got != end {
				t.Errorf("Resolve(%q) pair for %d expected=%d, got=%d (ok=%v)", tt.input, open, end, got, ok)
			}
			if !tokens[open].IsOpen() {
				t.Errorf("Resolve(%q) key %d is not an opening token: %s", tt.input, open, tokens[open])
			}
		}
	}
}

func TestResolveDoesNotMutateTokens(t *testing.T) {
	tokens := lex(t, "if (1 == 1) { }")
	before := make([]token.Token, len(tokens))
	copy(before, tokens)

	if _, err := Resolve(tokens); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range tokens {
		if tokens[i] != before[i] {
			t.Errorf("token %d changed: %v -> %v", i, before[i], tokens[i])
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"}", "unpaired end bracket BlockEnd"},
		{")", "unpaired end bracket ExprEnd"},
		{"( ) )", "unpaired end bracket ExprEnd"},
		{"if (1 == 1) {", "incomplete bracket pair: BlockStart"},
		{"if (1 == 1 { }", "incomplete bracket pair: ExprStart"},
	}

	for _, tt := range tests {
		pairs, err := Resolve(lex(t, tt.input))
		if err == nil {
			t.Fatalf("Resolve(%q) expected an error, got=%v", tt.input, pairs)
		}
		if !diag.Is(err, diag.Syntax) {
			t.Errorf("Resolve(%q) expected a Syntax error, got=%v", tt.input, err)
		}
		if !strings.Contains(err.Error(), tt.msg) {
			t.Errorf("Resolve(%q) error expected to contain %q, got=%q", tt.input, tt.msg, err.Error())
		}
	}
}
