package emitter

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/vasc/internal/compiler/ast"
	"github.com/arnavsurve/vasc/internal/compiler/brackets"
	"github.com/arnavsurve/vasc/internal/compiler/diag"
	"github.com/arnavsurve/vasc/internal/compiler/parser"
	"github.com/arnavsurve/vasc/internal/compiler/scope"
	"github.com/arnavsurve/vasc/internal/compiler/slots"
	"github.com/arnavsurve/vasc/internal/compiler/symbols"
	"github.com/arnavsurve/vasc/internal/compiler/token"
)

const (
	scratchReg = "rax" // value pulled from another variable's slot
	leftReg    = "rbx" // left comparison operand
	rightReg   = "rcx" // right comparison operand
	resultReg  = "rdx" // comparison result, inverted before branching
)

// Context is the per-compilation state: live variables and slot occupancy.
type Context struct {
	Scope *scope.Scope
	Slots *slots.Allocator
}

func NewContext() *Context {
	return &Context{
		Scope: scope.NewScope("global"),
		Slots: slots.NewAllocator(),
	}
}

type Emitter struct {
	builder strings.Builder
	ctx     *Context
	cursor  *parser.Cursor

	// closing index of every block we are currently inside, innermost last
	blockEnds []int
}

func NewEmitter(ctx *Context) *Emitter {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Emitter{ctx: ctx}
}

func (e *Emitter) Context() *Context { return e.ctx }

// Emit generates pseudo-assembly for a bracket-resolved token sequence.
// The first error aborts generation and no text is returned.
func (e *Emitter) Emit(tokens []token.Token, pairs brackets.Pairs) (string, error) {
	e.builder.Reset()
	e.blockEnds = e.blockEnds[:0]
	e.cursor = parser.NewCursor(tokens, pairs)

	for !e.cursor.Done() {
		if err := e.emitStatement(); err != nil {
			return "", err
		}
		e.cursor.Advance()
	}

	return e.builder.String(), nil
}

// emitf writes one instruction line with its comment.
func (e *Emitter) emitf(comment, format string, args ...any) {
	e.builder.WriteString(fmt.Sprintf(format, args...))
	if comment != "" {
		e.builder.WriteString(" // " + comment + " //")
	}
	e.builder.WriteString("\n")
}

func (e *Emitter) emitStatement() error {
	tok := e.cursor.Current()

	switch tok.Type {
	case token.TokenLet:
		return e.emitDeclaration()
	case token.TokenFree:
		return e.emitFree()
	case token.TokenConditional:
		return e.emitConditional()
	case token.TokenDirective:
		// Directives are not evaluated; the lexer already warned.
		return nil
	case token.TokenBlockStart:
		end, ok := e.cursor.MatchingEnd()
		if !ok {
			return diag.SyntaxErrorf(tok, "unresolved block bracket")
		}
		e.blockEnds = append(e.blockEnds, end)
		return nil
	case token.TokenBlockEnd:
		return e.emitBlockEnd(tok)
	default:
		return diag.SyntaxErrorf(tok, "unrecognized token %s", tok)
	}
}

// --- Statements ---

// var <name> = <literal|identifier>
func (e *Emitter) emitDeclaration() error {
	index := e.ctx.Slots.Allocate()

	name, err := e.cursor.Expect(token.TokenIdent, "var")
	if err != nil {
		return err
	}
	if _, exists := e.ctx.Scope.Lookup(name.Literal); exists {
		return diag.SemanticErrorf(name, "redefinition of variable '%s'", name.Literal)
	}

	if _, err := e.cursor.Expect(token.TokenAssign, "variable name"); err != nil {
		return err
	}

	value, err := e.cursor.Next("'='")
	if err != nil {
		return err
	}
	switch value.Type {
	case token.TokenSizedLiteral:
		e.emitf("VARIABLE : "+name.Literal, "memset %d %d", index, value.Value)
	case token.TokenIdent:
		src, ok := e.ctx.Scope.Lookup(value.Literal)
		if !ok {
			return diag.SemanticErrorf(value, "undefined variable '%s'", value.Literal)
		}
		e.emitf("MEMORY VALUE PULL", "mov %s %d", scratchReg, src.Slot)
		e.emitf("ASSIGN MEMORY TO VARIABLE : "+name.Literal, "memset %d %s", index, scratchReg)
	default:
		return diag.SyntaxErrorf(value, "expected literal or identifier after '=', got %s", value)
	}

	if err := e.ctx.Scope.Define(name.Literal, symbols.SymbolInfo{Slot: index, Decl: name}); err != nil {
		return diag.SemanticErrorf(name, "%v", err)
	}
	return nil
}

// free <name>
func (e *Emitter) emitFree() error {
	target, err := e.cursor.Next("free")
	if err != nil {
		return err
	}
	if target.Type != token.TokenIdent {
		return diag.SemanticErrorf(target, "cannot free non-identifier %s", target)
	}

	info, err := e.ctx.Scope.Remove(target.Literal)
	if err != nil {
		return diag.SemanticErrorf(target, "%v", err)
	}
	e.ctx.Slots.Free(info.Slot)
	return nil
}

// if ( <literal> == <literal> ) { ... }
func (e *Emitter) emitConditional() error {
	cond, err := parser.ParseCondition(e.cursor)
	if err != nil {
		return err
	}
	e.emitCondition(cond)

	if e.cursor.Done() {
		return diag.SyntaxErrorf(cond.Token, "no block after conditional expression")
	}
	block := e.cursor.Current()
	end, ok := e.cursor.MatchingEnd()
	if block.Type != token.TokenBlockStart || !ok {
		return diag.SyntaxErrorf(block, "no block after conditional expression, got %s", block)
	}

	e.emitf("SKIP BLOCK WHEN CONDITION FALSE", "jgt %s 0 %d", resultReg, end)
	e.blockEnds = append(e.blockEnds, end)
	return nil
}

// emitCondition loads both operands through scratch slots, compares them and
// inverts the result so that a nonzero resultReg means "skip the block".
func (e *Emitter) emitCondition(cond *ast.InfixExpression) {
	left := e.emitOperand(cond.Left, leftReg, "LEFT OPERAND")
	right := e.emitOperand(cond.Right, rightReg, "RIGHT OPERAND")

	// registers hold the values now
	e.ctx.Slots.Free(left)
	e.ctx.Slots.Free(right)

	e.emitf("COMPARE OPERANDS", "eq %s %s %s", resultReg, leftReg, rightReg)
	e.emitf("INVERT FOR BRANCH", "not %s", resultReg)
}

func (e *Emitter) emitOperand(operand ast.Expression, reg, role string) int {
	slot := e.ctx.Slots.Allocate()
	e.emitf("SCRATCH : "+role, "memset %d %s", slot, operand.String())
	e.emitf("LOAD "+role, "mov %s %d", reg, slot)
	return slot
}

func (e *Emitter) emitBlockEnd(tok token.Token) error {
	n := len(e.blockEnds)
	if n == 0 {
		return diag.SyntaxErrorf(tok, "unpaired end bracket %s", tok.Type)
	}
	e.blockEnds = e.blockEnds[:n-1]
	e.emitf("END OF BLOCK", "label %d", e.cursor.Pos())
	return nil
}
