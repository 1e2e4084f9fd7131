package symbols

import "github.com/arnavsurve/vasc/internal/compiler/token"

type SymbolInfo struct {
	Slot int         // memory slot holding the variable's value
	Decl token.Token // identifier token from the declaring `var`
}
