package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/arnavsurve/vasc/internal/compiler/diag"
	"github.com/arnavsurve/vasc/internal/compiler/token"
)

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           rune // current char, 0 at EOF

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)

	// pending identifier buffer and the position of its first rune
	current     []rune
	currentLine int
	currentCol  int

	tokens   []token.Token
	warnings []diag.Warning
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Lex runs a fresh lexer over input.
func Lex(input string) ([]token.Token, []diag.Warning, error) {
	return NewLexer(input).Tokenize()
}

// readChar advances the lexer's position and updates the current character
// It handles EOF and tracks line/column numbers correctly
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		return
	}

	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() (rune, bool) {
	if l.readPosition >= len(l.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r, true
}

// Tokenize consumes the whole input. Directive warnings are returned
// alongside the tokens; any error aborts lexing.
func (l *Lexer) Tokenize() ([]token.Token, []diag.Warning, error) {
	for !l.atEOF() {
		if err := l.step(); err != nil {
			return nil, nil, err
		}
	}
	l.flush()
	return l.tokens, l.warnings, nil
}

// step handles the character under the cursor. Branches that stop on a
// lookahead character leave it unconsumed for the next step.
func (l *Lexer) step() error {
	line, col := l.line, l.column

	switch ch := l.ch; {
	case ch == '=':
		l.flush()
		next, ok := l.peekChar()
		if !ok {
			return diag.LexErrorf(line, col, "unexpected end of input after '='")
		}
		if next == '=' {
			l.readChar()
			l.emit(token.TokenEquality, "==", line, col)
		} else {
			l.emit(token.TokenAssign, "=", line, col)
		}
		l.readChar()
	case isDigit(ch):
		l.flush()
		return l.readLiteral(line, col)
	case ch == ';':
		l.flush()
		l.readChar()
	case ch == '{':
		l.flushAndEmit(token.TokenBlockStart, line, col)
	case ch == '}':
		l.flushAndEmit(token.TokenBlockEnd, line, col)
	case ch == '(':
		l.flushAndEmit(token.TokenExprStart, line, col)
	case ch == ')':
		l.flushAndEmit(token.TokenExprEnd, line, col)
	case ch == '#':
		l.flush()
		l.readDirective(line, col)
	case ch == '\\':
		l.skipLine()
	case unicode.IsSpace(ch):
		l.flush()
		l.readChar()
	case unicode.IsLetter(ch):
		if len(l.current) == 0 {
			l.currentLine, l.currentCol = line, col
		}
		l.current = append(l.current, ch)
		l.readChar()
	default:
		return diag.LexErrorf(line, col, "unrecognized character %q", ch)
	}
	return nil
}

func (l *Lexer) flushAndEmit(tokenType token.TokenType, line, col int) {
	l.flush()
	l.emit(tokenType, string(l.ch), line, col)
	l.readChar()
}

// flush converts the pending identifier buffer into a token through keyword
// lookup. An empty buffer maps to TokenNone and is dropped.
func (l *Lexer) flush() {
	ident := string(l.current)
	l.current = l.current[:0]

	tokenType := token.LookupIdent(ident)
	if tokenType == token.TokenNone {
		return
	}
	l.emit(tokenType, ident, l.currentLine, l.currentCol)
}

func (l *Lexer) emit(tokenType token.TokenType, literal string, line, col int) {
	l.tokens = append(l.tokens, token.Token{Type: tokenType, Literal: literal, Line: line, Column: col})
}

func (l *Lexer) readLiteral(line, col int) error {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]

	value, err := strconv.ParseUint(literal, 10, 64)
	if err != nil {
		return diag.LexErrorf(line, col, "literal %s does not fit in an unsigned integer", literal)
	}
	l.tokens = append(l.tokens, token.Token{
		Type:    token.TokenSizedLiteral,
		Literal: literal,
		Value:   value,
		Line:    line,
		Column:  col,
	})
	return nil
}

func (l *Lexer) readDirective(line, col int) {
	l.readChar() // Consume '#'
	start := l.position
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
	raw := l.input[start:l.position]

	l.emit(token.TokenDirective, raw, line, col)
	l.warnings = append(l.warnings, diag.Warning{
		Msg:    "preprocessor directives are not evaluated: #" + raw,
		Line:   line,
		Column: col,
	})
}

// skipLine discards everything up to the next line terminator.
func (l *Lexer) skipLine() {
	for l.ch != '\n' && !l.atEOF() {
		l.readChar()
	}
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
