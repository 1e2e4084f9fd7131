package scope

import (
	"testing"

	"github.com/arnavsurve/vasc/internal/compiler/symbols"
)

func TestDefineLookupRemove(t *testing.T) {
	s := NewScope("global")

	if err := s.Define("x", symbols.SymbolInfo{Slot: 2}); err != nil {
		t.Fatalf("Define(x) unexpected error: %v", err)
	}
	if err := s.Define("x", symbols.SymbolInfo{Slot: 3}); err == nil {
		t.Fatalf("Define(x) twice expected an error")
	}

	info, ok := s.Lookup("x")
	if !ok || info.Slot != 2 {
		t.Fatalf("Lookup(x) expected slot 2, got=%+v ok=%v", info, ok)
	}

	removed, err := s.Remove("x")
	if err != nil {
		t.Fatalf("Remove(x) unexpected error: %v", err)
	}
	if removed.Slot != 2 {
		t.Errorf("Remove(x) expected slot 2, got=%d", removed.Slot)
	}
	if _, err := s.Remove("x"); err == nil {
		t.Errorf("Remove(x) of a freed name expected an error")
	}

	// a freed name may be declared again
	if err := s.Define("x", symbols.SymbolInfo{Slot: 0}); err != nil {
		t.Errorf("Define(x) after Remove unexpected error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() expected=1, got=%d", s.Len())
	}
}
