package scope

import (
	"fmt"

	"github.com/arnavsurve/vasc/internal/compiler/symbols"
)

// --- Scope ---
// A Scope tracks the variables that are currently live. Names leave the scope
// when they are freed, after which they may be declared again.
type Scope struct {
	Symbols map[string]symbols.SymbolInfo
	Name    string
}

func NewScope(name string) *Scope {
	return &Scope{
		Symbols: make(map[string]symbols.SymbolInfo),
		Name:    name,
	}
}

// Define adds a live symbol.
// It returns an error if the symbol is already live.
func (s *Scope) Define(name string, info symbols.SymbolInfo) error {
	if _, exists := s.Symbols[name]; exists {
		return fmt.Errorf("redefinition of variable '%s'", name)
	}
	s.Symbols[name] = info
	return nil
}

func (s *Scope) Lookup(name string) (symbols.SymbolInfo, bool) {
	info, ok := s.Symbols[name]
	return info, ok
}

// Remove drops a live symbol and returns what it held.
func (s *Scope) Remove(name string) (symbols.SymbolInfo, error) {
	info, ok := s.Symbols[name]
	if !ok {
		return symbols.SymbolInfo{}, fmt.Errorf("freeing undefined variable '%s'", name)
	}
	delete(s.Symbols, name)
	return info, nil
}

func (s *Scope) Len() int {
	return len(s.Symbols)
}
